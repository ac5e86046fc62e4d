package store

import (
	"testing"

	"github.com/iov-one/timedescrow/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustGet(t testing.TB, kv ReadOnlyKVStore, key []byte) []byte {
	t.Helper()
	v, err := kv.Get(key)
	require.NoError(t, err)
	return v
}

func mustHas(t testing.TB, kv ReadOnlyKVStore, key []byte) bool {
	t.Helper()
	ok, err := kv.Has(key)
	require.NoError(t, err)
	return ok
}

func TestCacheWrapLayers(t *testing.T) {
	base := MemStore()
	wallet, custody := []byte("wallet"), []byte("custody")
	require.NoError(t, base.Set(wallet, []byte("50")))

	cache := base.CacheWrap()
	assert.Equal(t, []byte("50"), mustGet(t, cache, wallet))

	// a transfer staged in the cache is invisible below
	require.NoError(t, cache.Delete(wallet))
	require.NoError(t, cache.Set(custody, []byte("50")))
	assert.False(t, mustHas(t, cache, wallet))
	assert.True(t, mustHas(t, cache, custody))
	assert.True(t, mustHas(t, base, wallet))
	assert.False(t, mustHas(t, base, custody))

	require.NoError(t, cache.Write())
	assert.Nil(t, mustGet(t, base, wallet))
	assert.Equal(t, []byte("50"), mustGet(t, base, custody))

	// the written cache is empty and reads through again
	require.NoError(t, base.Set(wallet, []byte("7")))
	assert.Equal(t, []byte("7"), mustGet(t, cache, wallet))
}

func TestCacheWrapDiscard(t *testing.T) {
	base := MemStore()
	cache := base.CacheWrap()

	require.NoError(t, cache.Set([]byte("a"), []byte("1")))
	cache.Discard()
	assert.False(t, mustHas(t, cache, []byte("a")))

	// a discarded write must not leak into a later one
	require.NoError(t, cache.Set([]byte("b"), []byte("2")))
	require.NoError(t, cache.Write())
	assert.Nil(t, mustGet(t, base, []byte("a")))
	assert.Equal(t, []byte("2"), mustGet(t, base, []byte("b")))
}

func TestCacheWrapNested(t *testing.T) {
	base := MemStore()
	outer := base.CacheWrap()
	inner := outer.CacheWrap()

	require.NoError(t, inner.Set([]byte("k"), []byte("v")))
	require.NoError(t, inner.Write())
	assert.Equal(t, []byte("v"), mustGet(t, outer, []byte("k")))
	assert.Nil(t, mustGet(t, base, []byte("k")))

	outer.Discard()
	assert.Nil(t, mustGet(t, outer, []byte("k")))
}

func TestCacheWrapOverwrite(t *testing.T) {
	kv := MemStore()
	key := []byte("key")

	require.NoError(t, kv.Set(key, []byte("first")))
	require.NoError(t, kv.Set(key, []byte("second")))
	assert.Equal(t, []byte("second"), mustGet(t, kv, key))

	require.NoError(t, kv.Delete(key))
	assert.Nil(t, mustGet(t, kv, key))
	require.NoError(t, kv.Set(key, []byte("third")))
	assert.Equal(t, []byte("third"), mustGet(t, kv, key))
}

func TestCacheWrapNilKey(t *testing.T) {
	kv := MemStore()
	assert.True(t, errors.ErrDatabase.Is(kv.Set(nil, []byte("x"))))
	assert.True(t, errors.ErrDatabase.Is(kv.Delete(nil)))
}
