package escrow

import (
	"fmt"

	"github.com/iov-one/timedescrow"
	"github.com/iov-one/timedescrow/errors"
	"github.com/iov-one/timedescrow/x"
	"github.com/iov-one/timedescrow/x/cash"
	amino "github.com/tendermint/go-amino"
	"github.com/tendermint/tendermint/libs/common"
)

// gasCost is charged on check and on delivery of every action.
var gasCost = map[Action]int64{
	ActionInitialize: 300,
	ActionFund:       100,
}

// Tags attached to every successful delivery.
const (
	TagID     = "escrow.id"
	TagAction = "escrow.action"
	TagStatus = "escrow.status"
)

// base holds what all escrow handlers share.
type base struct {
	guard  Guard
	bucket Bucket
	conf   ConfigBucket
	exec   Executor
}

func newBase(cdc *amino.Codec, auth x.Authenticator, bank cash.Controller) base {
	return base{
		guard:  NewGuard(auth),
		bucket: NewBucket(cdc),
		conf:   NewConfigBucket(cdc),
		exec:   NewExecutor(bank),
	}
}

// loadActive returns the escrow with given ID if it is in the required
// state and the caller may act on it.
func (b base) loadActive(ctx timedescrow.Context, db timedescrow.ReadOnlyKVStore, id []byte, want Status, action Action) (*Escrow, Role, error) {
	e, err := b.bucket.Get(db, id)
	if err != nil {
		return nil, 0, errors.Wrapf(err, "escrow %X", id)
	}
	if e.Status != want {
		return nil, 0, errors.Wrapf(errors.ErrState, "cannot %s %s escrow", action, e.Status)
	}
	role, err := b.guard.Authorize(ctx, e, action)
	if err != nil {
		return nil, 0, err
	}
	return e, role, nil
}

func (b base) result(id []byte, action Action, e *Escrow) *timedescrow.DeliverResult {
	return &timedescrow.DeliverResult{
		Data:    id,
		Log:     fmt.Sprintf("escrow %X %s", id, e.Status),
		GasUsed: gasCost[action],
		Tags: []common.KVPair{
			{Key: []byte(TagID), Value: []byte(fmt.Sprintf("%X", id))},
			{Key: []byte(TagAction), Value: []byte(action.String())},
			{Key: []byte(TagStatus), Value: []byte(e.Status.String())},
		},
	}
}

// InitializeHandler creates a new, not yet funded, escrow record.
type InitializeHandler struct {
	base
}

var _ timedescrow.Handler = InitializeHandler{}

// Check validates the new record without storing it.
func (h InitializeHandler) Check(ctx timedescrow.Context, db timedescrow.KVStore, tx timedescrow.Tx) (*timedescrow.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &timedescrow.CheckResult{GasWanted: gasCost[ActionInitialize]}, nil
}

// Deliver stores the escrow record under its derived ID.
func (h InitializeHandler) Deliver(ctx timedescrow.Context, db timedescrow.KVStore, tx timedescrow.Tx) (*timedescrow.DeliverResult, error) {
	id, escrow, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.bucket.Save(db, id, escrow); err != nil {
		return nil, errors.Wrap(err, "cannot store escrow")
	}
	return h.result(id, ActionInitialize, escrow), nil
}

// validate does all common pre-processing between Check and Deliver.
func (h InitializeHandler) validate(ctx timedescrow.Context, db timedescrow.KVStore, tx timedescrow.Tx) ([]byte, *Escrow, error) {
	var msg InitializeMsg
	if err := timedescrow.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}

	// apply a default for depositor
	depositor := msg.Depositor
	if len(depositor) == 0 {
		signer := x.MainSigner(ctx, h.guard.auth)
		if signer == nil {
			return nil, nil, errors.Wrap(errors.ErrUnauthorized, "no signer")
		}
		depositor = signer.Address()
	}

	escrow := &Escrow{
		Depositor:   depositor,
		Beneficiary: msg.Beneficiary,
		Arbiter:     msg.Arbiter,
		Seed:        msg.Seed,
		ReleaseTime: msg.ReleaseTime,
		ExpiryTime:  msg.ExpiryTime,
		Status:      StatusInitialized,
		CreatedAt:   timedescrow.BlockNow(ctx),
		Memo:        msg.Memo,
	}
	if _, err := h.guard.Authorize(ctx, escrow, ActionInitialize); err != nil {
		return nil, nil, err
	}

	id := EscrowID(depositor, msg.Seed)
	switch ok, err := h.bucket.Has(db, id); {
	case err != nil:
		return nil, nil, err
	case ok:
		return nil, nil, errors.Wrapf(errors.ErrDuplicate, "escrow %X with seed %d", id, msg.Seed)
	}
	return id, escrow, nil
}

// FundHandler moves the escrow amount from the depositor into custody.
type FundHandler struct {
	base
}

var _ timedescrow.Handler = FundHandler{}

// Check verifies the escrow can be funded and that the depositor can cover
// the amount. No value is moved.
func (h FundHandler) Check(ctx timedescrow.Context, db timedescrow.KVStore, tx timedescrow.Tx) (*timedescrow.CheckResult, error) {
	id, escrow, amount, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.exec.CanDeposit(db, id, escrow, amount); err != nil {
		return nil, err
	}
	return &timedescrow.CheckResult{GasWanted: gasCost[ActionFund]}, nil
}

// Deliver moves the funds into custody and marks the escrow as funded.
func (h FundHandler) Deliver(ctx timedescrow.Context, db timedescrow.KVStore, tx timedescrow.Tx) (*timedescrow.DeliverResult, error) {
	id, escrow, amount, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.exec.Deposit(db, id, escrow, amount); err != nil {
		return nil, err
	}
	if err := h.bucket.Save(db, id, escrow); err != nil {
		return nil, errors.Wrap(err, "cannot store escrow")
	}
	return h.result(id, ActionFund, escrow), nil
}

func (h FundHandler) validate(ctx timedescrow.Context, db timedescrow.KVStore, tx timedescrow.Tx) ([]byte, *Escrow, uint64, error) {
	var msg FundMsg
	if err := timedescrow.LoadMsg(tx, &msg); err != nil {
		return nil, nil, 0, errors.Wrap(err, "load msg")
	}
	escrow, _, err := h.loadActive(ctx, db, msg.EscrowID, StatusInitialized, ActionFund)
	if err != nil {
		return nil, nil, 0, err
	}
	conf, err := h.conf.Load(db)
	if err != nil {
		return nil, nil, 0, errors.Wrap(err, "cannot load configuration")
	}
	if msg.Amount < conf.MinAmount {
		return nil, nil, 0, errors.Wrapf(errors.ErrInput, "amount %d below minimum %d", msg.Amount, conf.MinAmount)
	}
	return msg.EscrowID, escrow, msg.Amount, nil
}

// ReleaseHandler pays the held funds to the beneficiary once the release
// time is reached. Anyone may trigger it.
type ReleaseHandler struct {
	base
}

var _ timedescrow.Handler = ReleaseHandler{}

// Check verifies the release time and that the beneficiary can receive the
// held funds.
func (h ReleaseHandler) Check(ctx timedescrow.Context, db timedescrow.KVStore, tx timedescrow.Tx) (*timedescrow.CheckResult, error) {
	id, escrow, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.exec.CanPayout(db, id, escrow, escrow.Beneficiary); err != nil {
		return nil, err
	}
	return &timedescrow.CheckResult{GasWanted: gasCost[ActionRelease]}, nil
}

// Deliver moves all held funds to the beneficiary.
func (h ReleaseHandler) Deliver(ctx timedescrow.Context, db timedescrow.KVStore, tx timedescrow.Tx) (*timedescrow.DeliverResult, error) {
	id, escrow, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.exec.Payout(db, id, escrow, escrow.Beneficiary, StatusReleased); err != nil {
		return nil, err
	}
	if err := h.bucket.Save(db, id, escrow); err != nil {
		return nil, errors.Wrap(err, "cannot store escrow")
	}
	return h.result(id, ActionRelease, escrow), nil
}

func (h ReleaseHandler) validate(ctx timedescrow.Context, db timedescrow.KVStore, tx timedescrow.Tx) ([]byte, *Escrow, error) {
	var msg ReleaseMsg
	if err := timedescrow.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	escrow, _, err := h.loadActive(ctx, db, msg.EscrowID, StatusFunded, ActionRelease)
	if err != nil {
		return nil, nil, err
	}
	if now := timedescrow.BlockNow(ctx); !CanRelease(now, escrow) {
		return nil, nil, errors.Wrapf(ErrTimeNotReached, "now %d, release at %d", now, escrow.ReleaseTime)
	}
	return msg.EscrowID, escrow, nil
}

// RefundHandler returns the held funds to the depositor. The arbiter may do
// it at any time, the depositor only after the escrow expired.
type RefundHandler struct {
	base
}

var _ timedescrow.Handler = RefundHandler{}

// Check verifies the caller may refund and that the depositor can receive
// the held funds.
func (h RefundHandler) Check(ctx timedescrow.Context, db timedescrow.KVStore, tx timedescrow.Tx) (*timedescrow.CheckResult, error) {
	id, escrow, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.exec.CanPayout(db, id, escrow, escrow.Depositor); err != nil {
		return nil, err
	}
	return &timedescrow.CheckResult{GasWanted: gasCost[ActionRefund]}, nil
}

// Deliver moves all held funds back to the depositor.
func (h RefundHandler) Deliver(ctx timedescrow.Context, db timedescrow.KVStore, tx timedescrow.Tx) (*timedescrow.DeliverResult, error) {
	id, escrow, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.exec.Payout(db, id, escrow, escrow.Depositor, StatusRefunded); err != nil {
		return nil, err
	}
	if err := h.bucket.Save(db, id, escrow); err != nil {
		return nil, errors.Wrap(err, "cannot store escrow")
	}
	return h.result(id, ActionRefund, escrow), nil
}

func (h RefundHandler) validate(ctx timedescrow.Context, db timedescrow.KVStore, tx timedescrow.Tx) ([]byte, *Escrow, error) {
	var msg RefundMsg
	if err := timedescrow.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	escrow, role, err := h.loadActive(ctx, db, msg.EscrowID, StatusFunded, ActionRefund)
	if err != nil {
		return nil, nil, err
	}
	if role == RoleDepositor {
		if now := timedescrow.BlockNow(ctx); !CanExpire(now, escrow) {
			return nil, nil, errors.Wrapf(ErrExpiryNotReached, "now %d, expires at %d", now, escrow.ExpiryTime)
		}
	}
	return msg.EscrowID, escrow, nil
}

// CancelHandler closes an escrow that was never funded.
type CancelHandler struct {
	base
}

var _ timedescrow.Handler = CancelHandler{}

// Check verifies the escrow is still unfunded and the depositor signed.
func (h CancelHandler) Check(ctx timedescrow.Context, db timedescrow.KVStore, tx timedescrow.Tx) (*timedescrow.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &timedescrow.CheckResult{GasWanted: gasCost[ActionCancel]}, nil
}

// Deliver marks the escrow as cancelled. There is nothing to pay out.
func (h CancelHandler) Deliver(ctx timedescrow.Context, db timedescrow.KVStore, tx timedescrow.Tx) (*timedescrow.DeliverResult, error) {
	id, escrow, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	escrow.Status = StatusCancelled
	if err := h.bucket.Save(db, id, escrow); err != nil {
		return nil, errors.Wrap(err, "cannot store escrow")
	}
	return h.result(id, ActionCancel, escrow), nil
}

func (h CancelHandler) validate(ctx timedescrow.Context, db timedescrow.KVStore, tx timedescrow.Tx) ([]byte, *Escrow, error) {
	var msg CancelMsg
	if err := timedescrow.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	escrow, _, err := h.loadActive(ctx, db, msg.EscrowID, StatusInitialized, ActionCancel)
	if err != nil {
		return nil, nil, err
	}
	return msg.EscrowID, escrow, nil
}
