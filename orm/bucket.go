package orm

import (
	"fmt"
	"regexp"

	"github.com/iov-one/timedescrow"
	"github.com/iov-one/timedescrow/errors"
	amino "github.com/tendermint/go-amino"
)

var validName = regexp.MustCompile(`^[a-z_]{3,20}$`).MatchString

// Model is anything that can be stored in a bucket.
type Model interface {
	// Validate is called before every write.
	Validate() error
}

// Bucket stores models of one type under "<name>:<key>". Index entries are
// written to the same store as the model, so a cache wrap covers both.
// Records are never removed: escrows stay in their terminal state.
type Bucket struct {
	name     string
	cdc      *amino.Codec
	newModel func() Model
	indexes  map[string]compactIndex
}

// NewBucket creates a bucket. newModel returns a pointer the codec can
// decode into.
func NewBucket(name string, cdc *amino.Codec, newModel func() Model) Bucket {
	if !validName(name) || len(name) > 10 {
		panic(fmt.Sprintf("invalid bucket name %q", name))
	}
	return Bucket{name: name, cdc: cdc, newModel: newModel}
}

// WithIndex returns a copy of the bucket maintaining one more index.
func (b Bucket) WithIndex(name string, indexer Indexer, unique bool) Bucket {
	if !validName(name) {
		panic(fmt.Sprintf("invalid index name %q", name))
	}
	if _, dup := b.indexes[name]; dup {
		panic(fmt.Sprintf("index %q of %s added twice", name, b.name))
	}
	indexes := map[string]compactIndex{
		name: {name: b.name + "_" + name, index: indexer, unique: unique, cdc: b.cdc},
	}
	for n, idx := range b.indexes {
		indexes[n] = idx
	}
	b.indexes = indexes
	return b
}

// DBKey returns the store key of the model saved under key.
func (b Bucket) DBKey(key []byte) []byte {
	return prefixed(b.name+":", key)
}

// prefixed returns a new slice, so keys built from one prefix never share
// memory.
func prefixed(prefix string, key []byte) []byte {
	out := make([]byte, 0, len(prefix)+len(key))
	return append(append(out, prefix...), key...)
}

// One decodes the model saved under key into dest, or returns ErrNotFound.
func (b Bucket) One(db timedescrow.ReadOnlyKVStore, key []byte, dest Model) error {
	raw, err := db.Get(b.DBKey(key))
	switch {
	case err != nil:
		return err
	case raw == nil:
		return errors.Wrapf(errors.ErrNotFound, "%s %X", b.name, key)
	}
	if err := b.cdc.UnmarshalBinaryBare(raw, dest); err != nil {
		return errors.Wrapf(errors.ErrDatabase, "%s %X: %s", b.name, key, err)
	}
	return nil
}

func (b Bucket) Has(db timedescrow.ReadOnlyKVStore, key []byte) (bool, error) {
	if len(key) == 0 {
		return false, errors.Wrap(errors.ErrInput, "empty key")
	}
	return db.Has(b.DBKey(key))
}

// Put validates m and saves it under key. Every index moves from the
// previous version of the model, if any, to m.
func (b Bucket) Put(db timedescrow.KVStore, key []byte, m Model) error {
	if len(key) == 0 {
		return errors.Wrap(errors.ErrInput, "empty key")
	}
	if err := m.Validate(); err != nil {
		return errors.Wrapf(err, "%s model", b.name)
	}
	prev := b.newModel()
	switch err := b.One(db, key, prev); {
	case errors.ErrNotFound.Is(err):
		prev = nil
	case err != nil:
		return err
	}
	for _, idx := range b.indexes {
		if err := idx.move(db, key, prev, m); err != nil {
			return err
		}
	}
	raw, err := b.cdc.MarshalBinaryBare(m)
	if err != nil {
		return errors.Wrapf(errors.ErrModel, "encode %s: %s", b.name, err)
	}
	return db.Set(b.DBKey(key), raw)
}

// ByIndex returns the keys of all models the named index maps value to.
func (b Bucket) ByIndex(db timedescrow.ReadOnlyKVStore, name string, value []byte) ([][]byte, error) {
	idx, ok := b.indexes[name]
	if !ok {
		return nil, errors.Wrapf(errors.ErrHuman, "%s has no index %s", b.name, name)
	}
	return idx.keys(db, value)
}
