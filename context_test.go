package timedescrow_test

import (
	"context"
	"testing"
	"time"

	"github.com/iov-one/timedescrow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/log"
)

func TestContext(t *testing.T) {
	bg := context.Background()

	logger := log.NewTMLogger(log.NewSyncWriter(nil))
	ctx := timedescrow.WithLogger(bg, logger)
	assert.Equal(t, timedescrow.DefaultLogger, timedescrow.GetLogger(bg))
	assert.Equal(t, logger, timedescrow.GetLogger(ctx))

	_, ok := timedescrow.GetHeight(ctx)
	assert.False(t, ok)
	ctx = timedescrow.WithHeight(ctx, 7)
	height, ok := timedescrow.GetHeight(ctx)
	require.True(t, ok)
	assert.EqualValues(t, 7, height)
	assert.Panics(t, func() { timedescrow.WithHeight(ctx, 8) })

	_, ok = timedescrow.ChainID(ctx)
	assert.False(t, ok)
	assert.Panics(t, func() { timedescrow.WithChainID(ctx, "no") })
	ctx = timedescrow.WithChainID(ctx, "escrow-chain")
	id, ok := timedescrow.ChainID(ctx)
	require.True(t, ok)
	assert.Equal(t, "escrow-chain", id)
	assert.Panics(t, func() { timedescrow.WithChainID(ctx, "other-chain") })
}

func TestBlockTime(t *testing.T) {
	bg := context.Background()
	_, ok := timedescrow.BlockTime(bg)
	assert.False(t, ok)

	_, ok = timedescrow.BlockTime(timedescrow.WithBlockTime(bg, time.Time{}))
	assert.False(t, ok, "zero time is unset")

	ctx := timedescrow.WithBlockTime(bg, time.Unix(1234, 500))
	assert.Equal(t, timedescrow.UnixTime(1234), timedescrow.BlockNow(ctx))
}
