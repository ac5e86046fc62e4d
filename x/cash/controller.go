package cash

import (
	"github.com/iov-one/timedescrow"
	"github.com/iov-one/timedescrow/errors"
)

// Controller is the functionality needed by other extensions to move value.
type Controller interface {
	Balance(db timedescrow.ReadOnlyKVStore, addr timedescrow.Address) (uint64, error)
	CanMove(db timedescrow.ReadOnlyKVStore, src, dest timedescrow.Address, amount uint64) error
	MoveCoins(db timedescrow.KVStore, src, dest timedescrow.Address, amount uint64) error
	IssueCoins(db timedescrow.KVStore, dest timedescrow.Address, amount uint64) error
}

// BaseController is the default Controller working on the wallet bucket.
type BaseController struct {
	bucket Bucket
}

var _ Controller = BaseController{}

// NewController returns a controller using given bucket.
func NewController(bucket Bucket) BaseController {
	return BaseController{bucket: bucket}
}

// Balance returns the coins held by an address, zero for unknown addresses.
func (c BaseController) Balance(db timedescrow.ReadOnlyKVStore, addr timedescrow.Address) (uint64, error) {
	w, err := c.bucket.Get(db, addr)
	if err != nil || w == nil {
		return 0, err
	}
	return w.Coins, nil
}

// CanMove reports the error MoveCoins would return, without writing.
func (c BaseController) CanMove(db timedescrow.ReadOnlyKVStore, src, dest timedescrow.Address, amount uint64) error {
	_, _, err := c.transfer(db, src, dest, amount)
	return err
}

// MoveCoins moves amount from src to dest. Both wallets are updated or
// neither is: a missing sender, a short balance or an overflowing
// recipient leaves the store untouched.
func (c BaseController) MoveCoins(db timedescrow.KVStore, src, dest timedescrow.Address, amount uint64) error {
	sender, recipient, err := c.transfer(db, src, dest, amount)
	if err != nil {
		return err
	}
	if recipient == nil {
		// moving to self only has to pass the balance check
		return nil
	}
	if err := c.bucket.Save(db, src, sender); err != nil {
		return err
	}
	return c.bucket.Save(db, dest, recipient)
}

// transfer returns both wallets with amount applied. The recipient is nil
// when moving to self.
func (c BaseController) transfer(db timedescrow.ReadOnlyKVStore, src, dest timedescrow.Address, amount uint64) (*Wallet, *Wallet, error) {
	if amount == 0 {
		return nil, nil, errors.Wrap(errors.ErrInvalidAmount, "non-positive amount")
	}
	sender, err := c.bucket.Get(db, src)
	if err != nil {
		return nil, nil, err
	}
	if sender == nil {
		return nil, nil, errors.Wrapf(errors.ErrInsufficientAmount, "empty account %s", src)
	}
	if err := sender.Subtract(amount); err != nil {
		return nil, nil, err
	}
	if src.Equals(dest) {
		return sender, nil, nil
	}
	recipient, err := c.bucket.GetOrCreate(db, dest)
	if err != nil {
		return nil, nil, err
	}
	if err := recipient.Add(amount); err != nil {
		return nil, nil, err
	}
	return sender, recipient, nil
}

// IssueCoins attempts to add the given amount of coins to
// the destination address. Fails if it overflows the wallet.
func (c BaseController) IssueCoins(db timedescrow.KVStore, dest timedescrow.Address, amount uint64) error {
	recipient, err := c.bucket.GetOrCreate(db, dest)
	if err != nil {
		return err
	}
	if err := recipient.Add(amount); err != nil {
		return err
	}
	return c.bucket.Save(db, dest, recipient)
}
