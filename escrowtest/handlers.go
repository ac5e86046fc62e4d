package escrowtest

import "github.com/iov-one/timedescrow"

// Handler counts the calls it gets and answers with the configured results.
// With Write set, each call stores that pair first, which lets a test see
// whether a decorator rolled it back.
type Handler struct {
	Checks, Delivers int

	CheckResult   timedescrow.CheckResult
	CheckErr      error
	DeliverResult timedescrow.DeliverResult
	DeliverErr    error
	Panic         interface{}

	Write *Pair
}

// Pair is written by Handler on every call.
type Pair struct {
	Key, Value []byte
}

var _ timedescrow.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx timedescrow.Context, db timedescrow.KVStore, tx timedescrow.Tx) (*timedescrow.CheckResult, error) {
	h.Checks++
	if err := h.run(db); err != nil {
		return nil, err
	}
	res := h.CheckResult
	return &res, h.CheckErr
}

func (h *Handler) Deliver(ctx timedescrow.Context, db timedescrow.KVStore, tx timedescrow.Tx) (*timedescrow.DeliverResult, error) {
	h.Delivers++
	if err := h.run(db); err != nil {
		return nil, err
	}
	res := h.DeliverResult
	return &res, h.DeliverErr
}

func (h *Handler) run(db timedescrow.KVStore) error {
	if h.Write != nil {
		if err := db.Set(h.Write.Key, h.Write.Value); err != nil {
			return err
		}
	}
	if h.Panic != nil {
		panic(h.Panic)
	}
	return nil
}
