/*
Package store holds the in memory layer of state: a btree backed cache wrap
used for check and deliver state, for savepoints and in tests.
*/
package store

import (
	"bytes"

	"github.com/google/btree"
	"github.com/iov-one/timedescrow"
	"github.com/iov-one/timedescrow/errors"
)

// Shorter names for the state interfaces.
type (
	ReadOnlyKVStore  = timedescrow.ReadOnlyKVStore
	KVStore          = timedescrow.KVStore
	CacheableKVStore = timedescrow.CacheableKVStore
	KVCacheWrap      = timedescrow.KVCacheWrap
	CommitKVStore    = timedescrow.CommitKVStore
	CommitID         = timedescrow.CommitID
)

const degree = 2

// pending is one staged write. Deleted entries hide the parent value.
type pending struct {
	key     []byte
	value   []byte
	deleted bool
}

func (p pending) Less(than btree.Item) bool {
	return bytes.Compare(p.key, than.(pending).key) < 0
}

// CacheWrap stages writes in a btree until Write or Discard.
type CacheWrap struct {
	staged *btree.BTree
	// parent is nil for a root store held only in memory.
	parent KVStore
}

var _ KVCacheWrap = (*CacheWrap)(nil)

// NewCacheWrap stages writes on top of parent.
func NewCacheWrap(parent KVStore) *CacheWrap {
	return &CacheWrap{staged: btree.New(degree), parent: parent}
}

// MemStore returns an empty store without persistence. Writing it is a
// no-op, its data stays in memory.
func MemStore() CacheableKVStore {
	return NewCacheWrap(nil)
}

func (c *CacheWrap) lookup(key []byte) (pending, bool) {
	item := c.staged.Get(pending{key: key})
	if item == nil {
		return pending{}, false
	}
	return item.(pending), true
}

// Get implements KVStore.
func (c *CacheWrap) Get(key []byte) ([]byte, error) {
	if p, ok := c.lookup(key); ok {
		if p.deleted {
			return nil, nil
		}
		return p.value, nil
	}
	if c.parent == nil {
		return nil, nil
	}
	return c.parent.Get(key)
}

// Has implements KVStore.
func (c *CacheWrap) Has(key []byte) (bool, error) {
	if p, ok := c.lookup(key); ok {
		return !p.deleted, nil
	}
	if c.parent == nil {
		return false, nil
	}
	return c.parent.Has(key)
}

// Set implements KVStore.
func (c *CacheWrap) Set(key, value []byte) error {
	if key == nil {
		return errors.Wrap(errors.ErrDatabase, "nil key")
	}
	c.staged.ReplaceOrInsert(pending{key: key, value: value})
	return nil
}

// Delete implements KVStore.
func (c *CacheWrap) Delete(key []byte) error {
	if key == nil {
		return errors.Wrap(errors.ErrDatabase, "nil key")
	}
	c.staged.ReplaceOrInsert(pending{key: key, deleted: true})
	return nil
}

// CacheWrap stages another layer on top of this one.
func (c *CacheWrap) CacheWrap() KVCacheWrap {
	return NewCacheWrap(c)
}

// Write applies staged writes to the parent in key order.
func (c *CacheWrap) Write() error {
	if c.parent == nil {
		return nil
	}
	var err error
	c.staged.Ascend(func(item btree.Item) bool {
		p := item.(pending)
		if p.deleted {
			err = c.parent.Delete(p.key)
		} else {
			err = c.parent.Set(p.key, p.value)
		}
		return err == nil
	})
	c.Discard()
	return err
}

// Discard drops all staged writes.
func (c *CacheWrap) Discard() {
	c.staged = btree.New(degree)
}
