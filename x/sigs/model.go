package sigs

import (
	"github.com/iov-one/timedescrow"
	"github.com/iov-one/timedescrow/crypto"
	"github.com/iov-one/timedescrow/errors"
	"github.com/iov-one/timedescrow/orm"
	amino "github.com/tendermint/go-amino"
)

// BucketName is the bucket holding one Account per key that ever signed.
const BucketName = "sigs"

// maxSequence keeps sequences exact in javascript clients, 2^53 - 1.
const maxSequence = 1<<53 - 1

// Account is the replay protection state of one public key. Sequence is
// the value the next signature of that key must carry.
type Account struct {
	Pubkey   *crypto.PublicKey `json:"pubkey"`
	Sequence int64             `json:"sequence"`
}

var _ orm.Model = (*Account)(nil)

func (a *Account) Validate() error {
	var errs error
	switch {
	case a.Sequence < 0:
		errs = errors.AppendField(errs, "Sequence", ErrInvalidSequence)
	case a.Sequence > 0 && a.Pubkey == nil:
		errs = errors.Append(errs, errors.Field("Sequence", ErrInvalidSequence, "used without a key"))
	}
	if a.Pubkey != nil {
		errs = errors.AppendField(errs, "Pubkey", a.Pubkey.Validate())
	}
	return errs
}

// Use consumes seq, which must be the expected sequence.
func (a *Account) Use(seq int64) error {
	if seq != a.Sequence {
		return errors.Wrapf(ErrInvalidSequence, "got %d, want %d", seq, a.Sequence)
	}
	if a.Sequence >= maxSequence {
		return errors.Wrap(errors.ErrOverflow, "sequence exhausted")
	}
	a.Sequence++
	return nil
}

// Bucket stores accounts under the address of their key.
type Bucket struct {
	orm.Bucket
}

func NewBucket(cdc *amino.Codec) Bucket {
	return Bucket{
		Bucket: orm.NewBucket(BucketName, cdc, func() orm.Model { return &Account{} }),
	}
}

// GetOrCreate loads the account of pub. A key that never signed gets a
// fresh account at sequence zero.
func (b Bucket) GetOrCreate(db timedescrow.ReadOnlyKVStore, pub *crypto.PublicKey) (*Account, error) {
	var acc Account
	switch err := b.One(db, pub.Address(), &acc); {
	case err == nil:
		return &acc, nil
	case errors.ErrNotFound.Is(err):
		return &Account{Pubkey: pub}, nil
	default:
		return nil, err
	}
}

func (b Bucket) Save(db timedescrow.KVStore, acc *Account) error {
	if acc.Pubkey == nil {
		return errors.Wrap(errors.ErrModel, "account without key")
	}
	return b.Put(db, acc.Pubkey.Address(), acc)
}
