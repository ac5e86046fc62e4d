package utils

import (
	"github.com/iov-one/timedescrow"
	"github.com/iov-one/timedescrow/errors"
)

// Savepoint runs the rest of the stack on a cache of the store and writes
// it back only when the call succeeded. A failed transfer can therefore
// never leave one wallet debited and the other not credited.
//
// Check and deliver are enabled separately, which lets the signature
// sequence bump of a check survive while deliver stays all or nothing.
type Savepoint struct {
	OnCheck, OnDeliver bool
}

var _ timedescrow.Decorator = Savepoint{}

func (s Savepoint) Check(ctx timedescrow.Context, store timedescrow.KVStore, tx timedescrow.Tx, next timedescrow.Checker) (*timedescrow.CheckResult, error) {
	var res *timedescrow.CheckResult
	err := atomically(s.OnCheck, store, func(db timedescrow.KVStore) (err error) {
		res, err = next.Check(ctx, db, tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s Savepoint) Deliver(ctx timedescrow.Context, store timedescrow.KVStore, tx timedescrow.Tx, next timedescrow.Deliverer) (*timedescrow.DeliverResult, error) {
	var res *timedescrow.DeliverResult
	err := atomically(s.OnDeliver, store, func(db timedescrow.KVStore) (err error) {
		res, err = next.Deliver(ctx, db, tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// atomically calls fn on a cache of store when enabled and the store can be
// cached, otherwise on store itself.
func atomically(enabled bool, store timedescrow.KVStore, fn func(timedescrow.KVStore) error) error {
	cstore, ok := store.(timedescrow.CacheableKVStore)
	if !enabled || !ok {
		return fn(store)
	}
	cache := cstore.CacheWrap()
	if err := fn(cache); err != nil {
		cache.Discard()
		return err
	}
	return errors.Wrap(cache.Write(), "write savepoint")
}
