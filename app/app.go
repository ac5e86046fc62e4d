/*
Package app wires the escrow extension into an ABCI application.

App implements the ABCI connection on top of a versioned commit store.
Stack builds the handler it runs: the escrow dispatcher behind a fixed set
of decorators.
*/
package app

import (
	"path/filepath"
	"strings"

	"github.com/iov-one/timedescrow"
	"github.com/iov-one/timedescrow/errors"
	"github.com/iov-one/timedescrow/store/iavl"
	"github.com/iov-one/timedescrow/x/cash"
	"github.com/iov-one/timedescrow/x/escrow"
	"github.com/iov-one/timedescrow/x/sigs"
	"github.com/iov-one/timedescrow/x/utils"
	"github.com/prometheus/client_golang/prometheus"
)

// Name is returned by the ABCI Info call.
const Name = "escrowd"

// Stack returns the escrow dispatcher behind the decorators every
// instruction passes, outermost first:
//
//   metrics, logging with panic recovery, check savepoint,
//   signature verification, deliver savepoint
//
// The deliver savepoint sits below signature verification, so a failed
// instruction still consumes the sequence of its signers. Metrics are
// registered with reg.
func Stack(reg prometheus.Registerer) (timedescrow.Handler, error) {
	metrics, err := utils.NewMetrics(reg)
	if err != nil {
		return nil, err
	}
	bank := cash.NewController(cash.NewBucket(cdc))
	var h timedescrow.Handler = escrow.NewDispatcher(cdc, sigs.Authenticate{}, bank)
	return decorate(h,
		metrics,
		utils.NewLogging(),
		utils.Savepoint{OnCheck: true},
		sigs.NewDecorator(cdc),
		utils.Savepoint{OnDeliver: true},
	), nil
}

// decorate wraps h so that the first decorator runs first.
func decorate(h timedescrow.Handler, ds ...timedescrow.Decorator) timedescrow.Handler {
	for i := len(ds) - 1; i >= 0; i-- {
		h = step{d: ds[i], next: h}
	}
	return h
}

// step calls one decorator around the rest of the stack.
type step struct {
	d    timedescrow.Decorator
	next timedescrow.Handler
}

func (s step) Check(ctx timedescrow.Context, store timedescrow.KVStore, tx timedescrow.Tx) (*timedescrow.CheckResult, error) {
	return s.d.Check(ctx, store, tx, s.next)
}

func (s step) Deliver(ctx timedescrow.Context, store timedescrow.KVStore, tx timedescrow.Tx) (*timedescrow.DeliverResult, error) {
	return s.d.Deliver(ctx, store, tx, s.next)
}

// QueryRouter serves "/escrows" with its indexes, "/wallets" and "/auth".
func QueryRouter() timedescrow.QueryRouter {
	qr := timedescrow.NewQueryRouter()
	escrow.RegisterQuery(cdc, qr)
	cash.RegisterQuery(cdc, qr)
	sigs.RegisterQuery(cdc, qr)
	return qr
}

// Initializers loads the genesis sections of all extensions.
func Initializers() timedescrow.Initializer {
	return timedescrow.ChainInitializers(
		cash.NewInitializer(cdc),
		escrow.NewInitializer(cdc),
	)
}

// Application constructs the ABCI application using the database at
// dbPath. An empty path keeps all data in memory.
func Application(h timedescrow.Handler, dbPath string, debug bool) (*App, error) {
	kv, err := CommitKVStore(dbPath)
	if err != nil {
		return nil, err
	}
	return NewApp(Name, kv, QueryRouter(), Initializers(), TxDecoder, h, debug), nil
}

// CommitKVStore opens the iavl store at dbPath. A trailing extension,
// such as ".db", is dropped because the backend adds its own. An empty path
// keeps everything in memory.
func CommitKVStore(dbPath string) (timedescrow.CommitKVStore, error) {
	if dbPath == "" {
		return iavl.MemCommitStore(), nil
	}
	abs, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "database path %q", dbPath)
	}
	abs = strings.TrimSuffix(abs, filepath.Ext(abs))
	return iavl.NewCommitStore(filepath.Dir(abs), filepath.Base(abs)), nil
}
