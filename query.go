package timedescrow

import "fmt"

// Query modifiers, the part of a query path after "?".
const (
	// KeyQueryMod looks up one exact key.
	KeyQueryMod = ""
	// PrefixQueryMod asks for a key range. Compact buckets cannot serve it.
	PrefixQueryMod = "prefix"
)

// Model is one key/value pair returned by a query.
type Model struct {
	Key   []byte
	Value []byte
}

// Pair builds a Model.
func Pair(key, value []byte) Model {
	return Model{Key: key, Value: value}
}

// QueryHandler reads from committed state. It must never write.
type QueryHandler interface {
	Query(db ReadOnlyKVStore, mod string, data []byte) ([]Model, error)
}

// QueryRouter maps ABCI query paths, like "/escrows/arbiter", to the
// bucket or index serving them.
type QueryRouter struct {
	routes map[string]QueryHandler
}

// NewQueryRouter returns a router without routes.
func NewQueryRouter() QueryRouter {
	return QueryRouter{routes: make(map[string]QueryHandler)}
}

// Register binds a handler to path. Paths are registered once at startup,
// registering a path twice is a programming error and panics.
func (r QueryRouter) Register(path string, h QueryHandler) {
	if _, dup := r.routes[path]; dup {
		panic(fmt.Sprintf("query path %q registered twice", path))
	}
	r.routes[path] = h
}

// Handler returns the handler bound to path or nil.
func (r QueryRouter) Handler(path string) QueryHandler {
	return r.routes[path]
}
