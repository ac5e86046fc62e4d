package cash

import (
	"github.com/iov-one/timedescrow"
	"github.com/iov-one/timedescrow/errors"
	"github.com/iov-one/timedescrow/orm"
	amino "github.com/tendermint/go-amino"
)

// BucketName is where we store the balances
const BucketName = "cash"

// Wallet holds the balance of a single address.
type Wallet struct {
	Coins uint64 `json:"coins"`
}

var _ orm.Model = (*Wallet)(nil)

// Validate always passes, any unsigned balance is valid.
func (w *Wallet) Validate() error {
	return nil
}

// Add increases the balance, failing instead of wrapping around.
func (w *Wallet) Add(amount uint64) error {
	sum, err := checkedAdd(w.Coins, amount)
	if err != nil {
		return err
	}
	w.Coins = sum
	return nil
}

// Subtract decreases the balance, failing if there is not enough.
func (w *Wallet) Subtract(amount uint64) error {
	diff, err := checkedSub(w.Coins, amount)
	if err != nil {
		return err
	}
	w.Coins = diff
	return nil
}

// Bucket stores wallets under their address.
type Bucket struct {
	orm.Bucket
}

// NewBucket initializes a cash.Bucket with default name
func NewBucket(cdc *amino.Codec) Bucket {
	return Bucket{
		Bucket: orm.NewBucket(BucketName, cdc, func() orm.Model { return &Wallet{} }),
	}
}

// Get returns the wallet stored under given address, or nil.
func (b Bucket) Get(db timedescrow.ReadOnlyKVStore, addr timedescrow.Address) (*Wallet, error) {
	var w Wallet
	switch err := b.One(db, addr, &w); {
	case err == nil:
		return &w, nil
	case errors.ErrNotFound.Is(err):
		return nil, nil
	default:
		return nil, err
	}
}

// GetOrCreate returns the wallet stored under given address, or an empty
// one if there is none yet.
func (b Bucket) GetOrCreate(db timedescrow.ReadOnlyKVStore, addr timedescrow.Address) (*Wallet, error) {
	w, err := b.Get(db, addr)
	if err != nil || w != nil {
		return w, err
	}
	return &Wallet{}, nil
}

// Save stores the wallet under the given address.
func (b Bucket) Save(db timedescrow.KVStore, addr timedescrow.Address, w *Wallet) error {
	if err := addr.Validate(); err != nil {
		return errors.Wrap(err, "wallet address")
	}
	return b.Put(db, addr, w)
}
