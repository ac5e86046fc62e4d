package app

import (
	"testing"
	"time"

	"github.com/iov-one/timedescrow"
	"github.com/iov-one/timedescrow/errors"
	"github.com/iov-one/timedescrow/store"
	"github.com/iov-one/timedescrow/store/iavl"
	"github.com/iov-one/timedescrow/x/cash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	abci "github.com/tendermint/tendermint/abci/types"
)

func TestCommitStore(t *testing.T) {
	cs := NewCommitStore(iavl.MemCommitStore())
	k, v := []byte("key"), []byte("value")

	require.NoError(t, cs.DeliverStore().Set(k, v))
	// check and deliver are independent until commit
	got, err := cs.CheckStore().Get(k)
	require.NoError(t, err)
	assert.Nil(t, got)

	id, err := cs.Commit()
	require.NoError(t, err)
	assert.Equal(t, int64(1), id.Version)
	assert.NotEmpty(t, id.Hash)

	info, err := cs.CommitInfo()
	require.NoError(t, err)
	assert.Equal(t, id, info)

	got, err = cs.CheckStore().Get(k)
	require.NoError(t, err)
	assert.Equal(t, v, got)
}

func TestAppMeta(t *testing.T) {
	db := store.MemStore()

	id, err := loadChainID(db)
	require.NoError(t, err)
	assert.Equal(t, "", id)
	assert.True(t, errors.ErrInput.Is(saveChainID(db, "bad")))
	require.NoError(t, saveChainID(db, "escrow-chain"))
	id, err = loadChainID(db)
	require.NoError(t, err)
	assert.Equal(t, "escrow-chain", id)
	assert.True(t, errors.ErrImmutable.Is(saveChainID(db, "other-chain")))

	blockTime, err := loadBlockTime(db)
	require.NoError(t, err)
	assert.True(t, blockTime.IsZero())
	now := time.Unix(1500, 42)
	require.NoError(t, saveBlockTime(db, now))
	blockTime, err = loadBlockTime(db)
	require.NoError(t, err)
	assert.True(t, now.Equal(blockTime))

	require.NoError(t, db.Set(blockTimeKey, []byte("garbage")))
	_, err = loadBlockTime(db)
	assert.True(t, errors.ErrModel.Is(err))
}

func TestAppInitChain(t *testing.T) {
	kv := iavl.MemCommitStore()
	newApp := func() *App {
		return NewApp("demo", kv, timedescrow.NewQueryRouter(), nil, TxDecoder, nil, false)
	}
	a := newApp()

	assert.Panics(t, func() {
		a.InitChain(abci.RequestInitChain{ChainId: "demo-chain"})
	}, "app state is required")

	genesis := time.Unix(1000, 0)
	a.InitChain(abci.RequestInitChain{Time: genesis, ChainId: "demo-chain", AppStateBytes: []byte(`{}`)})
	assert.Equal(t, "demo-chain", a.ChainID())
	assert.NoError(t, a.ready())
	a.Commit()

	info := a.Info(abci.RequestInfo{})
	assert.Equal(t, "demo", info.Data)
	assert.Equal(t, int64(1), info.LastBlockHeight)

	assert.Panics(t, func() {
		a.InitChain(abci.RequestInitChain{ChainId: "demo-chain", AppStateBytes: []byte(`{}`)})
	}, "chain can be initialized only once")

	restarted := newApp()
	assert.Equal(t, "demo-chain", restarted.ChainID())
	assert.NoError(t, restarted.ready())
	now, ok := timedescrow.BlockTime(restarted.blockCtx)
	require.True(t, ok)
	assert.True(t, genesis.Equal(now))
}

func TestResultSet(t *testing.T) {
	models := []timedescrow.Model{
		timedescrow.Pair([]byte("a"), []byte("1")),
		timedescrow.Pair([]byte("b"), []byte("2")),
	}
	keys, values := splitResults(models)
	raw, err := values.Marshal()
	require.NoError(t, err)

	var got ResultSet
	require.NoError(t, got.Unmarshal(raw))
	assert.Equal(t, [][]byte{[]byte("1"), []byte("2")}, got.Results)
	assert.Equal(t, [][]byte{[]byte("a"), []byte("b")}, keys.Results)

	empty, err := (&ResultSet{}).Marshal()
	require.NoError(t, err)
	assert.True(t, errors.ErrNotFound.Is(UnmarshalOneResult(empty, &cash.Wallet{})))
}
