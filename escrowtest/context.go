package escrowtest

import (
	"context"
	"time"

	"github.com/iov-one/timedescrow"
)

// ChainID is used by all contexts created by this package.
const ChainID = "escrow-test-chain"

// Ctx returns a context as the application builds it for a block at given
// height and time.
func Ctx(height int64, now time.Time) timedescrow.Context {
	ctx := context.Background()
	ctx = timedescrow.WithHeight(ctx, height)
	ctx = timedescrow.WithChainID(ctx, ChainID)
	return timedescrow.WithBlockTime(ctx, now)
}
