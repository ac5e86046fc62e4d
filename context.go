package timedescrow

import (
	"context"
	"regexp"
	"time"

	"github.com/tendermint/tendermint/libs/log"
)

// Context carries the block environment into every handler: height, block
// time, chain ID and a logger. Handlers must never read the wall clock.
type Context = context.Context

type ctxKey uint8

const (
	heightKey ctxKey = iota + 1
	blockTimeKey
	chainIDKey
	loggerKey
)

var (
	// DefaultLogger is returned by GetLogger when the context holds none.
	DefaultLogger = log.NewNopLogger()

	// IsValidChainID reports whether a chain ID may be used in genesis.
	IsValidChainID = regexp.MustCompile(`^[a-zA-Z0-9_\-]{6,20}$`).MatchString
)

// WithHeight attaches the block height. A height can be set only once.
func WithHeight(ctx Context, height int64) Context {
	if _, ok := GetHeight(ctx); ok {
		panic("block height already set")
	}
	return context.WithValue(ctx, heightKey, height)
}

// GetHeight returns the block height, if set.
func GetHeight(ctx Context) (int64, bool) {
	h, ok := ctx.Value(heightKey).(int64)
	return h, ok
}

// WithBlockTime attaches the block header time.
func WithBlockTime(ctx Context, t time.Time) Context {
	return context.WithValue(ctx, blockTimeKey, t)
}

// BlockTime returns the block header time. A zero time counts as unset.
func BlockTime(ctx Context) (time.Time, bool) {
	t, ok := ctx.Value(blockTimeKey).(time.Time)
	if !ok || t.IsZero() {
		return time.Time{}, false
	}
	return t, true
}

// BlockNow is the escrow clock. It panics without a block time, the
// application always provides one before dispatching an instruction.
func BlockNow(ctx Context) UnixTime {
	t, ok := BlockTime(ctx)
	if !ok {
		panic("block time is not present")
	}
	return AsUnixTime(t)
}

// WithChainID attaches the chain ID. It panics on an invalid ID or when
// one is already set.
func WithChainID(ctx Context, chainID string) Context {
	if _, ok := ChainID(ctx); ok {
		panic("chain id already set")
	}
	if !IsValidChainID(chainID) {
		panic("invalid chain id: " + chainID)
	}
	return context.WithValue(ctx, chainIDKey, chainID)
}

// ChainID returns the chain ID, if set.
func ChainID(ctx Context) (string, bool) {
	id, ok := ctx.Value(chainIDKey).(string)
	return id, ok
}

// WithLogger attaches a logger.
func WithLogger(ctx Context, logger log.Logger) Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// WithLogInfo extends the context logger with given key value pairs.
func WithLogInfo(ctx Context, keyvals ...interface{}) Context {
	return WithLogger(ctx, GetLogger(ctx).With(keyvals...))
}

// GetLogger returns the context logger or DefaultLogger.
func GetLogger(ctx Context) log.Logger {
	if l, ok := ctx.Value(loggerKey).(log.Logger); ok {
		return l
	}
	return DefaultLogger
}
