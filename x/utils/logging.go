package utils

import (
	"time"

	"github.com/iov-one/timedescrow"
	"github.com/iov-one/timedescrow/errors"
)

// Logging writes one log line per instruction with its path, duration and
// outcome. A panic below it is turned into ErrPanic before being logged, so
// a faulty handler fails the transaction instead of the node.
type Logging struct{}

var _ timedescrow.Decorator = Logging{}

func NewLogging() Logging {
	return Logging{}
}

// Check logs failures as errors and successes as debug.
func (Logging) Check(ctx timedescrow.Context, store timedescrow.KVStore, tx timedescrow.Tx, next timedescrow.Checker) (res *timedescrow.CheckResult, err error) {
	start := time.Now()
	defer func() {
		var msg string
		if err == nil {
			msg = res.Log
		}
		logResult(ctx, tx, start, msg, err, true)
	}()
	defer errors.Recover(&err)
	return next.Check(ctx, store, tx)
}

// Deliver logs failures as errors and successes as info.
func (Logging) Deliver(ctx timedescrow.Context, store timedescrow.KVStore, tx timedescrow.Tx, next timedescrow.Deliverer) (res *timedescrow.DeliverResult, err error) {
	start := time.Now()
	defer func() {
		var msg string
		if err == nil {
			msg = res.Log
		}
		logResult(ctx, tx, start, msg, err, false)
	}()
	defer errors.Recover(&err)
	return next.Deliver(ctx, store, tx)
}

func logResult(ctx timedescrow.Context, tx timedescrow.Tx, start time.Time, msg string, err error, check bool) {
	logger := timedescrow.GetLogger(ctx).With(
		"path", timedescrow.GetPath(tx),
		"duration", time.Since(start)/time.Microsecond,
	)
	switch {
	case err != nil:
		logger.With("err", err).Error(msg)
	case check:
		logger.Debug(msg)
	default:
		logger.Info(msg)
	}
}
