// Package crypto holds the key types used to sign transactions. Keys are
// plain structs so they can be serialized with the application codec.
package crypto

import (
	"github.com/iov-one/timedescrow"
)

// ExtensionName is used for the Conditions we get from signatures
const ExtensionName = "sigs"

// PubKey represents a crypto public key we use
type PubKey interface {
	Verify(message []byte, sig *Signature) bool
	Condition() timedescrow.Condition
}

// Signer is the functionality we use from a private key
// No serializing to support hardware devices as well.
type Signer interface {
	Sign(message []byte) (*Signature, error)
	PublicKey() *PublicKey
}

// Address is a shortcut for the address of the key condition. It returns nil
// for an empty key.
func (p *PublicKey) Address() timedescrow.Address {
	c := p.Condition()
	if c == nil {
		return nil
	}
	return c.Address()
}
