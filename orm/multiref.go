package orm

import (
	"bytes"
	"sort"

	"github.com/iov-one/timedescrow/errors"
)

// MultiRef holds the primary keys of all escrows sharing one value of a
// non unique index, for example every escrow with the same arbiter. Refs is
// kept sorted so that every node stores the same bytes.
type MultiRef struct {
	Refs [][]byte `json:"refs"`
}

// search returns the position of ref in Refs, or where it belongs.
func (m *MultiRef) search(ref []byte) (int, bool) {
	i := sort.Search(len(m.Refs), func(i int) bool {
		return bytes.Compare(m.Refs[i], ref) >= 0
	})
	return i, i < len(m.Refs) && bytes.Equal(m.Refs[i], ref)
}

// Add inserts ref, failing with ErrDuplicate if it is present.
func (m *MultiRef) Add(ref []byte) error {
	i, ok := m.search(ref)
	if ok {
		return errors.Wrapf(errors.ErrDuplicate, "reference %X", ref)
	}
	m.Refs = append(m.Refs[:i], append([][]byte{ref}, m.Refs[i:]...)...)
	return nil
}

// Remove deletes ref, failing with ErrNotFound if it is absent.
func (m *MultiRef) Remove(ref []byte) error {
	i, ok := m.search(ref)
	if !ok {
		return errors.Wrapf(errors.ErrNotFound, "reference %X", ref)
	}
	m.Refs = append(m.Refs[:i], m.Refs[i+1:]...)
	return nil
}
