package x

import (
	"github.com/iov-one/timedescrow"
)

// Authenticator tells handlers who signed the running transaction. Handlers
// take it as a constructor argument so tests can plug in fixed signers.
type Authenticator interface {
	// GetConditions lists the signed conditions, the main signer first.
	GetConditions(timedescrow.Context) []timedescrow.Condition
	// HasAddress reports whether any signed condition maps to addr.
	HasAddress(timedescrow.Context, timedescrow.Address) bool
}

// MainSigner returns the first signed condition, or nil when the
// transaction carries no signature.
func MainSigner(ctx timedescrow.Context, auth Authenticator) timedescrow.Condition {
	signers := auth.GetConditions(ctx)
	if len(signers) == 0 {
		return nil
	}
	return signers[0]
}
