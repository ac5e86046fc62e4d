package app

import (
	"time"

	"github.com/iov-one/timedescrow"
	"github.com/iov-one/timedescrow/errors"
)

// CommitStore keeps the committed tree and the two caches in front of it:
// deliver collects the writes of the current block, check the writes of
// mempool validation. Both are rebuilt on every commit.
type CommitStore struct {
	committed timedescrow.CommitKVStore
	deliver   timedescrow.KVCacheWrap
	check     timedescrow.KVCacheWrap
}

// NewCommitStore loads the latest version of store or panics.
func NewCommitStore(store timedescrow.CommitKVStore) *CommitStore {
	if err := store.LoadLatestVersion(); err != nil {
		panic(err)
	}
	return &CommitStore{
		committed: store,
		deliver:   store.CacheWrap(),
		check:     store.CacheWrap(),
	}
}

// CommitInfo returns the latest committed height and hash.
func (cs *CommitStore) CommitInfo() (timedescrow.CommitID, error) {
	return cs.committed.LatestVersion()
}

// Commit persists the deliver cache as a new version. Pending check writes
// are dropped.
func (cs *CommitStore) Commit() (timedescrow.CommitID, error) {
	if err := cs.deliver.Write(); err != nil {
		return timedescrow.CommitID{}, err
	}
	cs.check.Discard()
	id, err := cs.committed.Commit()
	if err != nil {
		return id, err
	}
	cs.deliver = cs.committed.CacheWrap()
	cs.check = cs.committed.CacheWrap()
	return id, nil
}

func (cs *CommitStore) CheckStore() timedescrow.CacheableKVStore {
	return cs.check
}

func (cs *CommitStore) DeliverStore() timedescrow.CacheableKVStore {
	return cs.deliver
}

// Keys under "_es:" hold application data outside of any bucket.
var (
	chainIDKey   = []byte("_es:chainID")
	blockTimeKey = []byte("_es:blockTime")
)

// loadChainID returns the stored chain ID, empty before genesis.
func loadChainID(kv timedescrow.ReadOnlyKVStore) (string, error) {
	raw, err := kv.Get(chainIDKey)
	if err != nil {
		return "", errors.Wrap(err, "load chain id")
	}
	return string(raw), nil
}

// saveChainID stores the chain ID once.
func saveChainID(kv timedescrow.KVStore, chainID string) error {
	if !timedescrow.IsValidChainID(chainID) {
		return errors.Wrapf(errors.ErrInput, "chain id %q", chainID)
	}
	switch ok, err := kv.Has(chainIDKey); {
	case err != nil:
		return errors.Wrap(err, "load chain id")
	case ok:
		return errors.Wrap(errors.ErrImmutable, "chain id is set at genesis only")
	}
	return errors.Wrap(kv.Set(chainIDKey, []byte(chainID)), "save chain id")
}

// loadBlockTime returns the time of the last begun block, or the genesis
// time before the first block. The zero time means neither is known.
func loadBlockTime(kv timedescrow.ReadOnlyKVStore) (time.Time, error) {
	var t time.Time
	raw, err := kv.Get(blockTimeKey)
	if err != nil || raw == nil {
		return t, errors.Wrap(err, "load block time")
	}
	if err := t.UnmarshalBinary(raw); err != nil {
		return t, errors.Wrap(errors.ErrModel, err.Error())
	}
	return t, nil
}

func saveBlockTime(kv timedescrow.KVStore, t time.Time) error {
	raw, err := t.UTC().MarshalBinary()
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	return errors.Wrap(kv.Set(blockTimeKey, raw), "save block time")
}
