package iavl

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/iov-one/timedescrow/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeCommitStore(t testing.TB) (CommitStore, func()) {
	tmpDir, err := ioutil.TempDir("", "iavl-adapter-")
	require.NoError(t, err)
	commit := NewCommitStore(tmpDir, "base")
	return commit, func() {
		commit.Close()
		os.RemoveAll(tmpDir)
	}
}

func assertGetHas(t testing.TB, kv store.ReadOnlyKVStore, key, val []byte, has bool) {
	t.Helper()
	got, err := kv.Get(key)
	require.NoError(t, err)
	assert.Equal(t, val, got)
	exists, err := kv.Has(key)
	require.NoError(t, err)
	assert.Equal(t, has, exists)
}

func TestCacheGetSet(t *testing.T) {
	commit := MemCommitStore()
	base := commit.Adapter()

	k, v := []byte("french"), []byte("fry")
	assertGetHas(t, base, k, nil, false)
	require.NoError(t, base.Set(k, v))
	assertGetHas(t, base, k, v, true)

	cache := base.CacheWrap()
	k2, v2 := []byte("LA"), []byte("Dodgers")
	require.NoError(t, cache.Set(k2, v2))
	assertGetHas(t, cache, k2, v2, true)
	assertGetHas(t, base, k2, nil, false)

	require.NoError(t, cache.Write())
	assertGetHas(t, base, k2, v2, true)

	discarded := base.CacheWrap()
	require.NoError(t, discarded.Delete(k))
	assertGetHas(t, discarded, k, nil, false)
	discarded.Discard()
	assertGetHas(t, base, k, v, true)
}

func TestCommitOnlyExposesSavedVersion(t *testing.T) {
	commit := MemCommitStore()

	cache := commit.CacheWrap()
	require.NoError(t, cache.Set([]byte("escrow"), []byte("funded")))
	require.NoError(t, cache.Write())

	// not committed yet
	got, err := commit.Get([]byte("escrow"))
	require.NoError(t, err)
	assert.Nil(t, got)

	id, err := commit.Commit()
	require.NoError(t, err)
	assert.EqualValues(t, 1, id.Version)
	assert.NotEmpty(t, id.Hash)

	got, err = commit.Get([]byte("escrow"))
	require.NoError(t, err)
	assert.Equal(t, []byte("funded"), got)

	latest, err := commit.LatestVersion()
	require.NoError(t, err)
	assert.Equal(t, id, latest)
}

func TestCommitStoreReload(t *testing.T) {
	commit, cleanup := makeCommitStore(t)
	defer cleanup()

	cache := commit.CacheWrap()
	require.NoError(t, cache.Set([]byte("a"), []byte("1")))
	require.NoError(t, cache.Write())
	first, err := commit.Commit()
	require.NoError(t, err)

	cache = commit.CacheWrap()
	require.NoError(t, cache.Delete([]byte("a")))
	require.NoError(t, cache.Set([]byte("b"), []byte("2")))
	require.NoError(t, cache.Write())
	second, err := commit.Commit()
	require.NoError(t, err)

	assert.EqualValues(t, first.Version+1, second.Version)
	assert.NotEqual(t, first.Hash, second.Hash)

	// a fresh tree over the same database sees the last version
	reloaded := CommitStore{db: commit.db, tree: newTree(commit.db)}
	require.NoError(t, reloaded.LoadLatestVersion())
	latest, err := reloaded.LatestVersion()
	require.NoError(t, err)
	assert.Equal(t, second, latest)
	assertGetHas(t, reloaded.Adapter(), []byte("a"), nil, false)
	assertGetHas(t, reloaded.Adapter(), []byte("b"), []byte("2"), true)
}
