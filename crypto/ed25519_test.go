package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerify(t *testing.T) {
	depositor := GenPrivKeyEd25519()
	release := []byte("escrow/release")
	refund := []byte("escrow/refund")

	releaseSig, err := depositor.Sign(release)
	require.NoError(t, err)
	refundSig, err := depositor.Sign(refund)
	require.NoError(t, err)

	cases := map[string]struct {
		key  *PublicKey
		msg  []byte
		sig  *Signature
		want bool
	}{
		"own message":     {key: depositor.PublicKey(), msg: release, sig: releaseSig, want: true},
		"other message":   {key: depositor.PublicKey(), msg: release, sig: refundSig},
		"other key":       {key: GenPrivKeyEd25519().PublicKey(), msg: release, sig: releaseSig},
		"empty signature": {key: depositor.PublicKey(), msg: release, sig: &Signature{}},
		"nil signature":   {key: depositor.PublicKey(), msg: release},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.key.Verify(tc.msg, tc.sig))
		})
	}

	_, err = (&PrivateKey{Ed25519: []byte{1, 2, 3}}).Sign(release)
	assert.Error(t, err, "truncated key")
}

func TestKeyAddress(t *testing.T) {
	a, b := GenPrivKeyEd25519().PublicKey(), GenPrivKeyEd25519().PublicKey()
	require.NoError(t, a.Validate())
	require.NoError(t, a.Condition().Validate())
	assert.Len(t, a.Address(), 20)
	assert.NotEqual(t, a.Address(), b.Address())

	var blank PublicKey
	assert.Error(t, blank.Validate())
	assert.Nil(t, blank.Condition())
	assert.Nil(t, blank.Address())
}

func TestKeyFromSeed(t *testing.T) {
	// ed25519 public key of the all zero seed
	zeroPub := []byte{59, 106, 39, 188, 206, 182, 164, 45, 98, 163, 168, 208, 42, 111, 13, 115, 101, 50, 21, 119, 29, 226, 67, 166, 58, 192, 72, 161, 139, 89, 218, 41}

	key := PrivKeyEd25519FromSeed(make([]byte, 32))
	assert.Equal(t, zeroPub, []byte(key.PublicKey().Ed25519))
	assert.Equal(t, key.Ed25519, PrivKeyEd25519FromSeed(make([]byte, 32)).Ed25519)

	assert.Panics(t, func() { PrivKeyEd25519FromSeed([]byte{0}) })
}
