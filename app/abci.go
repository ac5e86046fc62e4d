package app

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/iov-one/timedescrow"
	"github.com/iov-one/timedescrow/errors"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// App is the ABCI application. It runs transactions through the handler
// stack on top of a versioned commit store.
//
// Failures of calls that carry no user input (Info, InitChain, BeginBlock,
// Commit) leave the node in an unknown state and panic.
type App struct {
	name     string
	store    *CommitStore
	genesis  timedescrow.Initializer
	queries  timedescrow.QueryRouter
	decode   timedescrow.TxDecoder
	handler  timedescrow.Handler
	debug    bool
	logger   log.Logger
	chainID  string
	baseCtx  timedescrow.Context
	blockCtx timedescrow.Context
}

var _ abci.Application = (*App)(nil)

// NewApp loads the latest state from store. A restarted node gets back
// its chain ID and the time of the last block, so CheckTx works before the
// next block begins.
func NewApp(
	name string,
	store timedescrow.CommitKVStore,
	queries timedescrow.QueryRouter,
	genesis timedescrow.Initializer,
	decode timedescrow.TxDecoder,
	handler timedescrow.Handler,
	debug bool,
) *App {
	a := &App{
		name:     name,
		store:    NewCommitStore(store),
		genesis:  genesis,
		queries:  queries,
		decode:   decode,
		handler:  handler,
		debug:    debug,
		baseCtx:  context.Background(),
		blockCtx: context.Background(),
	}
	a.WithLogger(log.NewNopLogger())

	chainID, err := loadChainID(a.store.DeliverStore())
	if err != nil {
		panic(err)
	}
	if chainID != "" {
		a.setChainID(chainID)
	}
	blockTime, err := loadBlockTime(a.store.DeliverStore())
	if err != nil {
		panic(err)
	}
	info, err := a.store.CommitInfo()
	if err != nil {
		panic(err)
	}
	a.enterBlock(info.Version, blockTime)
	return a
}

// WithLogger sets the logger of the application and of every transaction.
func (a *App) WithLogger(logger log.Logger) *App {
	a.logger = logger
	a.baseCtx = timedescrow.WithLogger(a.baseCtx, logger)
	a.blockCtx = timedescrow.WithLogger(a.blockCtx, logger)
	return a
}

// ChainID returns the chain ID set at genesis, empty before.
func (a *App) ChainID() string {
	return a.chainID
}

func (a *App) setChainID(chainID string) {
	a.chainID = chainID
	a.baseCtx = timedescrow.WithChainID(a.baseCtx, chainID)
}

// enterBlock sets the context of the running block. The zero time leaves
// the block time unset.
func (a *App) enterBlock(height int64, now time.Time) {
	ctx := timedescrow.WithHeight(a.baseCtx, height)
	if !now.IsZero() {
		ctx = timedescrow.WithBlockTime(ctx, now)
	}
	a.blockCtx = ctx
}

// ready fails until the chain has a chain ID and a block time.
func (a *App) ready() error {
	if _, ok := timedescrow.ChainID(a.blockCtx); !ok {
		return errors.Wrap(errors.ErrState, "no block begun: chain not initialized")
	}
	if _, ok := timedescrow.BlockTime(a.blockCtx); !ok {
		return errors.Wrap(errors.ErrState, "no block begun: block time unknown")
	}
	return nil
}

func (a *App) loadTx(raw []byte) (tx timedescrow.Tx, err error) {
	defer errors.Recover(&err)
	if err := a.ready(); err != nil {
		return nil, err
	}
	return a.decode(raw)
}

// CheckTx validates a transaction against the mempool state at the time of
// the last block.
func (a *App) CheckTx(raw []byte) abci.ResponseCheckTx {
	tx, err := a.loadTx(raw)
	if err != nil {
		return timedescrow.CheckResponse(nil, err, a.debug)
	}
	ctx := timedescrow.WithLogInfo(a.blockCtx, "call", "check_tx")
	res, err := a.handler.Check(ctx, a.store.CheckStore(), tx)
	return timedescrow.CheckResponse(res, err, a.debug)
}

// DeliverTx executes a transaction of the running block.
func (a *App) DeliverTx(raw []byte) abci.ResponseDeliverTx {
	tx, err := a.loadTx(raw)
	if err != nil {
		return timedescrow.DeliverResponse(nil, err, a.debug)
	}
	ctx := timedescrow.WithLogInfo(a.blockCtx, "call", "deliver_tx")
	res, err := a.handler.Deliver(ctx, a.store.DeliverStore(), tx)
	return timedescrow.DeliverResponse(res, err, a.debug)
}

// InitChain stores the chain ID and loads the genesis app_state. It is
// called once, never on restart.
func (a *App) InitChain(req abci.RequestInitChain) abci.ResponseInitChain {
	if err := a.initChain(req); err != nil {
		panic(err)
	}
	return abci.ResponseInitChain{}
}

func (a *App) initChain(req abci.RequestInitChain) error {
	if a.chainID != "" {
		return errors.Wrapf(errors.ErrImmutable, "chain %s already initialized", a.chainID)
	}
	if len(req.AppStateBytes) == 0 {
		return errors.Wrap(errors.ErrEmpty, "app_state missing in genesis")
	}
	var opts timedescrow.Options
	if err := json.Unmarshal(req.AppStateBytes, &opts); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}

	db := a.store.DeliverStore()
	if err := saveChainID(db, req.ChainId); err != nil {
		return err
	}
	if !req.Time.IsZero() {
		if err := saveBlockTime(db, req.Time); err != nil {
			return err
		}
	}
	if a.genesis != nil {
		if err := a.genesis.FromGenesis(opts, db); err != nil {
			return errors.Wrap(err, "genesis")
		}
	}

	a.setChainID(req.ChainId)
	a.enterBlock(0, req.Time)
	a.logger.Info("Chain initialized", "chain_id", req.ChainId, "genesis_time", req.Time)
	return nil
}

// BeginBlock sets height and time for the transactions of the block and
// stores the time, so a restarted node starts from it.
func (a *App) BeginBlock(req abci.RequestBeginBlock) abci.ResponseBeginBlock {
	now := req.Header.GetTime()
	if err := saveBlockTime(a.store.DeliverStore(), now); err != nil {
		panic(err)
	}
	a.enterBlock(req.Header.GetHeight(), now)
	return abci.ResponseBeginBlock{}
}

// EndBlock never changes the validator set.
func (a *App) EndBlock(abci.RequestEndBlock) abci.ResponseEndBlock {
	return abci.ResponseEndBlock{}
}

func (a *App) Commit() abci.ResponseCommit {
	id, err := a.store.Commit()
	if err != nil {
		panic(err)
	}
	a.logger.Debug("Commit synced", "height", id.Version, "hash", fmt.Sprintf("%X", id.Hash))
	return abci.ResponseCommit{Data: id.Hash}
}

func (a *App) Info(abci.RequestInfo) abci.ResponseInfo {
	info, err := a.store.CommitInfo()
	if err != nil {
		panic(err)
	}
	a.logger.Info("Info synced", "height", info.Version, "hash", fmt.Sprintf("%X", info.Hash))
	return abci.ResponseInfo{
		Data:             a.name,
		Version:          timedescrow.Version,
		LastBlockHeight:  info.Version,
		LastBlockAppHash: info.Hash,
	}
}

func (a *App) SetOption(abci.RequestSetOption) abci.ResponseSetOption {
	return abci.ResponseSetOption{Log: "not supported"}
}

// Query reads committed state. The path is "/<bucket>" or
// "/<bucket>/<index>", optionally followed by "?<mod>". Key and Value of
// the response are ResultSets of equal length.
func (a *App) Query(req abci.RequestQuery) abci.ResponseQuery {
	path, mod := req.Path, timedescrow.KeyQueryMod
	if i := strings.Index(path, "?"); i >= 0 {
		path, mod = path[:i], path[i+1:]
	}
	qh := a.queries.Handler(path)
	if qh == nil {
		return a.queryError(errors.Wrapf(errors.ErrNotFound, "query path %q", req.Path))
	}

	info, err := a.store.CommitInfo()
	if err != nil {
		return a.queryError(err)
	}
	db := a.store.committed.CacheWrap()
	defer db.Discard()

	models, err := qh.Query(db, mod, req.Data)
	if err != nil {
		return a.queryError(err)
	}
	keys, values := splitResults(models)
	res := abci.ResponseQuery{Height: info.Version}
	if res.Key, err = keys.Marshal(); err != nil {
		return a.queryError(err)
	}
	if res.Value, err = values.Marshal(); err != nil {
		return a.queryError(err)
	}
	return res
}

func (a *App) queryError(err error) abci.ResponseQuery {
	code, log := errors.ABCIInfo(err, a.debug)
	return abci.ResponseQuery{Code: code, Log: log}
}
