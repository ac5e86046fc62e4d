package orm

import (
	"github.com/iov-one/timedescrow"
	"github.com/iov-one/timedescrow/errors"
)

var _ timedescrow.QueryHandler = Bucket{}

// Register serves the bucket at "/<name>" and each index at
// "/<name>/<index>". An empty name falls back to the bucket name.
func (b Bucket) Register(name string, r timedescrow.QueryRouter) {
	if name == "" {
		name = b.name
	}
	root := "/" + name
	r.Register(root, b)
	for idxName := range b.indexes {
		r.Register(root+"/"+idxName, indexQuery{bucket: b, index: idxName})
	}
}

// Query looks up one primary key.
func (b Bucket) Query(db timedescrow.ReadOnlyKVStore, mod string, data []byte) ([]timedescrow.Model, error) {
	if mod != timedescrow.KeyQueryMod {
		return nil, errors.Wrapf(errors.ErrInput, "unsupported query mod %q", mod)
	}
	return b.readRaw(db, [][]byte{data})
}

func (b Bucket) readRaw(db timedescrow.ReadOnlyKVStore, keys [][]byte) ([]timedescrow.Model, error) {
	var res []timedescrow.Model
	for _, k := range keys {
		key := b.DBKey(k)
		value, err := db.Get(key)
		if err != nil {
			return nil, err
		}
		// return nothing on miss
		if value == nil {
			continue
		}
		res = append(res, timedescrow.Pair(key, value))
	}
	return res, nil
}

// indexQuery resolves an index value into all the models it references.
type indexQuery struct {
	bucket Bucket
	index  string
}

func (q indexQuery) Query(db timedescrow.ReadOnlyKVStore, mod string, data []byte) ([]timedescrow.Model, error) {
	if mod != timedescrow.KeyQueryMod {
		return nil, errors.Wrapf(errors.ErrInput, "unsupported query mod %q", mod)
	}
	keys, err := q.bucket.ByIndex(db, q.index, data)
	if err != nil {
		return nil, err
	}
	return q.bucket.readRaw(db, keys)
}
