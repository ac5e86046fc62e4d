package escrowtest

import (
	"github.com/iov-one/timedescrow"
	"github.com/iov-one/timedescrow/crypto"
)

// NewKey returns a fresh ed25519 private key.
func NewKey() *crypto.PrivateKey {
	return crypto.GenPrivKeyEd25519()
}

// NewCondition returns the signature condition of a fresh key.
func NewCondition() timedescrow.Condition {
	return NewKey().PublicKey().Condition()
}
