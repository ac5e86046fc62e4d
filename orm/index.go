package orm

import (
	"bytes"

	"github.com/iov-one/timedescrow"
	"github.com/iov-one/timedescrow/errors"
	amino "github.com/tendermint/go-amino"
)

// Indexer returns the index value of a model. A nil value leaves the model
// out of the index, for example an escrow without arbiter.
type Indexer func(Model) ([]byte, error)

// compactIndex keeps everything indexed under one value in a single record
// at "_i.<name>:<value>": the primary key itself for a unique index, a
// MultiRef otherwise. Lookups are a single read and never iterate.
type compactIndex struct {
	name   string
	index  Indexer
	unique bool
	cdc    *amino.Codec
}

func (i compactIndex) dbKey(value []byte) []byte {
	return prefixed("_i."+i.name+":", value)
}

// move updates the index for the model under pk changing from prev to
// next. prev is nil for a new model.
func (i compactIndex) move(db timedescrow.KVStore, pk []byte, prev, next Model) error {
	var from []byte
	if prev != nil {
		v, err := i.index(prev)
		if err != nil {
			return err
		}
		from = v
	}
	to, err := i.index(next)
	if err != nil {
		return err
	}
	if prev != nil && bytes.Equal(from, to) {
		return nil
	}
	if len(from) != 0 {
		if err := i.remove(db, from, pk); err != nil {
			return err
		}
	}
	if len(to) != 0 {
		return i.insert(db, to, pk)
	}
	return nil
}

func (i compactIndex) keys(db timedescrow.ReadOnlyKVStore, value []byte) ([][]byte, error) {
	raw, err := db.Get(i.dbKey(value))
	if err != nil || raw == nil {
		return nil, err
	}
	if i.unique {
		return [][]byte{raw}, nil
	}
	refs, err := i.decode(raw)
	if err != nil {
		return nil, err
	}
	return refs.Refs, nil
}

func (i compactIndex) insert(db timedescrow.KVStore, value, pk []byte) error {
	key := i.dbKey(value)
	raw, err := db.Get(key)
	if err != nil {
		return err
	}
	if i.unique {
		if raw != nil {
			return errors.Wrapf(errors.ErrDuplicate, "index %s value %X", i.name, value)
		}
		return db.Set(key, pk)
	}
	var refs MultiRef
	if raw != nil {
		if err := i.cdc.UnmarshalBinaryBare(raw, &refs); err != nil {
			return errors.Wrapf(errors.ErrDatabase, "index %s: %s", i.name, err)
		}
	}
	if err := refs.Add(pk); err != nil {
		return err
	}
	return i.save(db, key, &refs)
}

func (i compactIndex) remove(db timedescrow.KVStore, value, pk []byte) error {
	key := i.dbKey(value)
	raw, err := db.Get(key)
	switch {
	case err != nil:
		return err
	case raw == nil:
		return errors.Wrapf(errors.ErrNotFound, "index %s value %X", i.name, value)
	case i.unique:
		return db.Delete(key)
	}
	refs, err := i.decode(raw)
	if err != nil {
		return err
	}
	if err := refs.Remove(pk); err != nil {
		return err
	}
	if len(refs.Refs) == 0 {
		return db.Delete(key)
	}
	return i.save(db, key, refs)
}

func (i compactIndex) decode(raw []byte) (*MultiRef, error) {
	var refs MultiRef
	if err := i.cdc.UnmarshalBinaryBare(raw, &refs); err != nil {
		return nil, errors.Wrapf(errors.ErrDatabase, "index %s: %s", i.name, err)
	}
	return &refs, nil
}

func (i compactIndex) save(db timedescrow.KVStore, key []byte, refs *MultiRef) error {
	raw, err := i.cdc.MarshalBinaryBare(refs)
	if err != nil {
		return errors.Wrapf(errors.ErrDatabase, "index %s: %s", i.name, err)
	}
	return db.Set(key, raw)
}
