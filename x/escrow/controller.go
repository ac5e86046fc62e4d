package escrow

import (
	"github.com/iov-one/timedescrow"
	"github.com/iov-one/timedescrow/errors"
	"github.com/iov-one/timedescrow/x/cash"
)

// Executor moves value in and out of the custody account of an escrow and
// updates the record to match. The record must be saved by the caller in
// the same store, so that both changes are committed or discarded together.
type Executor struct {
	bank cash.Controller
}

// NewExecutor returns an executor moving value with given controller.
func NewExecutor(bank cash.Controller) Executor {
	return Executor{bank: bank}
}

// Deposit moves amount from the depositor into custody and marks the escrow
// as funded.
func (x Executor) Deposit(db timedescrow.KVStore, id []byte, e *Escrow, amount uint64) error {
	if amount == 0 {
		return errors.Wrap(errors.ErrInput, "amount must be positive")
	}
	if err := x.bank.MoveCoins(db, e.Depositor, CustodyAddress(id), amount); err != nil {
		return errors.Wrap(err, "cannot deposit")
	}
	e.Amount = amount
	e.HoldingBalance = amount
	e.Status = StatusFunded
	return nil
}

// CanDeposit returns the error Deposit would fail with, without writing.
func (x Executor) CanDeposit(db timedescrow.ReadOnlyKVStore, id []byte, e *Escrow, amount uint64) error {
	if amount == 0 {
		return errors.Wrap(errors.ErrInput, "amount must be positive")
	}
	return errors.Wrap(x.bank.CanMove(db, e.Depositor, CustodyAddress(id), amount), "cannot deposit")
}

// CanPayout returns the error Payout would fail with, without writing.
func (x Executor) CanPayout(db timedescrow.ReadOnlyKVStore, id []byte, e *Escrow, to timedescrow.Address) error {
	return errors.Wrap(x.bank.CanMove(db, CustodyAddress(id), to, e.HoldingBalance), "cannot pay out")
}

// Payout moves everything held by the escrow to the recipient and moves the
// escrow into the given terminal state.
func (x Executor) Payout(db timedescrow.KVStore, id []byte, e *Escrow, to timedescrow.Address, final Status) error {
	if !final.IsTerminal() {
		return errors.Wrapf(errors.ErrHuman, "payout into %s", final)
	}
	if err := x.bank.MoveCoins(db, CustodyAddress(id), to, e.HoldingBalance); err != nil {
		return errors.Wrap(err, "cannot pay out")
	}
	e.HoldingBalance = 0
	e.Status = final
	return nil
}
