package timedescrow

// ReadOnlyKVStore reads state. Get returns nil for a missing key.
type ReadOnlyKVStore interface {
	Get(key []byte) ([]byte, error)
	Has(key []byte) (bool, error)
}

// KVStore reads and writes state. Handlers receive one per instruction.
type KVStore interface {
	ReadOnlyKVStore
	Set(key, value []byte) error
	Delete(key []byte) error
}

// CacheableKVStore can stage writes in a cache wrap.
type CacheableKVStore interface {
	KVStore
	CacheWrap() KVCacheWrap
}

// KVCacheWrap stages writes on top of another store. Reads see the staged
// writes first. Write applies all of them to the parent, Discard drops
// them. Either way the wrap is empty afterwards and may be reused.
type KVCacheWrap interface {
	CacheableKVStore
	Write() error
	Discard()
}

// CommitKVStore is the versioned root state of the chain. Blocks write
// through a CacheWrap and Commit persists a new version.
type CommitKVStore interface {
	// Get reads the last committed version.
	Get(key []byte) ([]byte, error)
	CacheWrap() KVCacheWrap
	Commit() (CommitID, error)
	// LoadLatestVersion opens the newest complete version on disk.
	LoadLatestVersion() error
	LatestVersion() (CommitID, error)
}

// CommitID identifies a committed version by height and merkle root.
type CommitID struct {
	Version int64
	Hash    []byte
}
