package escrowtest

import (
	"context"

	"github.com/iov-one/timedescrow"
)

type signersKey struct{}

// WithSigners attaches conditions to ctx that Auth reports as signed. The
// first one is the main signer.
func WithSigners(ctx timedescrow.Context, conds ...timedescrow.Condition) timedescrow.Context {
	return context.WithValue(ctx, signersKey{}, conds)
}

// Auth authenticates the conditions attached with WithSigners, followed by
// Static on every context.
type Auth struct {
	Static []timedescrow.Condition
}

func (a Auth) GetConditions(ctx timedescrow.Context) []timedescrow.Condition {
	signed, _ := ctx.Value(signersKey{}).([]timedescrow.Condition)
	if len(a.Static) == 0 {
		return signed
	}
	return append(append([]timedescrow.Condition{}, signed...), a.Static...)
}

func (a Auth) HasAddress(ctx timedescrow.Context, addr timedescrow.Address) bool {
	for _, c := range a.GetConditions(ctx) {
		if addr.Equals(c.Address()) {
			return true
		}
	}
	return false
}
