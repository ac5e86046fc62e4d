package timedescrow

import "encoding/json"

// Checker validates an instruction against current state without moving
// value. It backs the mempool check.
type Checker interface {
	Check(ctx Context, store KVStore, tx Tx) (*CheckResult, error)
}

// Deliverer executes an instruction inside a block.
type Deliverer interface {
	Deliver(ctx Context, store KVStore, tx Tx) (*DeliverResult, error)
}

// Handler runs one kind of instruction. Check and Deliver must agree on
// every rejection, only Deliver may write.
type Handler interface {
	Checker
	Deliverer
}

// Decorator wraps every instruction with shared behaviour, such as
// signature verification or rollback on failure. It decides whether and
// how to call next.
type Decorator interface {
	Check(ctx Context, store KVStore, tx Tx, next Checker) (*CheckResult, error)
	Deliver(ctx Context, store KVStore, tx Tx, next Deliverer) (*DeliverResult, error)
}

// Options is the genesis app_state, one raw json section per extension.
type Options map[string]json.RawMessage

// ReadOptions decodes the section stored under key into obj. A missing
// section leaves obj untouched.
func (o Options) ReadOptions(key string, obj interface{}) error {
	raw, ok := o[key]
	if !ok || len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, obj)
}

// Initializer loads the genesis section of an extension.
type Initializer interface {
	FromGenesis(opts Options, db KVStore) error
}

// Initializers runs each initializer in order and stops at the first
// failure.
type Initializers []Initializer

var _ Initializer = Initializers(nil)

// ChainInitializers groups initializers into one.
func ChainInitializers(inits ...Initializer) Initializer {
	return Initializers(inits)
}

// FromGenesis implements Initializer.
func (all Initializers) FromGenesis(opts Options, db KVStore) error {
	for _, i := range all {
		if err := i.FromGenesis(opts, db); err != nil {
			return err
		}
	}
	return nil
}
