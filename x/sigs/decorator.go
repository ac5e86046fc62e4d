/*
Package sigs verifies the signatures of a transaction and keeps one sequence
number per public key, so a signed escrow instruction cannot be replayed.

The verified signers are passed down the stack in the context and read back
through Authenticate.
*/
package sigs

import (
	"context"

	"github.com/iov-one/timedescrow"
	"github.com/iov-one/timedescrow/errors"
	"github.com/iov-one/timedescrow/x"
	amino "github.com/tendermint/go-amino"
)

// signatureVerifyCost is the gas charged for every verified signature.
const signatureVerifyCost = 500

// RegisterQuery exposes the sequence of every key under "/auth".
func RegisterQuery(cdc *amino.Codec, qr timedescrow.QueryRouter) {
	NewBucket(cdc).Register("auth", qr)
}

type signersKey struct{}

// Authenticate reports the signers verified by Decorator.
type Authenticate struct{}

var _ x.Authenticator = Authenticate{}

func (Authenticate) GetConditions(ctx timedescrow.Context) []timedescrow.Condition {
	signers, _ := ctx.Value(signersKey{}).([]timedescrow.Condition)
	return signers
}

func (a Authenticate) HasAddress(ctx timedescrow.Context, addr timedescrow.Address) bool {
	for _, c := range a.GetConditions(ctx) {
		if addr.Equals(c.Address()) {
			return true
		}
	}
	return false
}

// Decorator rejects transactions without a valid signature and bumps the
// sequence of every signer.
type Decorator struct {
	bucket Bucket
}

var _ timedescrow.Decorator = Decorator{}

func NewDecorator(cdc *amino.Codec) Decorator {
	return Decorator{bucket: NewBucket(cdc)}
}

func (d Decorator) Check(ctx timedescrow.Context, store timedescrow.KVStore, tx timedescrow.Tx, next timedescrow.Checker) (*timedescrow.CheckResult, error) {
	ctx, n, err := d.verify(ctx, store, tx)
	if err != nil {
		return nil, err
	}
	res, err := next.Check(ctx, store, tx)
	if err != nil {
		return nil, err
	}
	res.GasWanted += int64(n * signatureVerifyCost)
	return res, nil
}

func (d Decorator) Deliver(ctx timedescrow.Context, store timedescrow.KVStore, tx timedescrow.Tx, next timedescrow.Deliverer) (*timedescrow.DeliverResult, error) {
	ctx, n, err := d.verify(ctx, store, tx)
	if err != nil {
		return nil, err
	}
	res, err := next.Deliver(ctx, store, tx)
	if err != nil {
		return nil, err
	}
	res.GasUsed += int64(n * signatureVerifyCost)
	return res, nil
}

// verify returns ctx extended with the signers and their count.
func (d Decorator) verify(ctx timedescrow.Context, store timedescrow.KVStore, tx timedescrow.Tx) (timedescrow.Context, int, error) {
	stx, ok := tx.(SignedTx)
	if !ok {
		return nil, 0, errors.Wrapf(errors.ErrUnauthorized, "%T carries no signatures", tx)
	}
	chainID, ok := timedescrow.ChainID(ctx)
	if !ok {
		return nil, 0, errors.Wrap(errors.ErrState, "chain id not set")
	}
	signers, err := VerifyTxSignatures(store, d.bucket, stx, chainID)
	if err != nil {
		return nil, 0, errors.Wrap(err, "cannot verify signatures")
	}
	if len(signers) == 0 {
		return nil, 0, errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	return context.WithValue(ctx, signersKey{}, signers), len(signers), nil
}
