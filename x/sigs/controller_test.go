package sigs

import (
	"testing"

	"github.com/iov-one/timedescrow/crypto"
	"github.com/iov-one/timedescrow/errors"
	"github.com/iov-one/timedescrow/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	amino "github.com/tendermint/go-amino"
)

func TestBuildSignBytes(t *testing.T) {
	a, err := BuildSignBytes([]byte("tx"), "test-chain", 1)
	require.NoError(t, err)
	b, err := BuildSignBytes([]byte("tx"), "test-chain", 2)
	require.NoError(t, err)
	c, err := BuildSignBytes([]byte("tx"), "other-chain", 1)
	require.NoError(t, err)

	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b, "sequence must change sign bytes")
	assert.NotEqual(t, a, c, "chain id must change sign bytes")

	_, err = BuildSignBytes([]byte("tx"), "test-chain", -1)
	assert.True(t, ErrInvalidSequence.Is(err))
	_, err = BuildSignBytes([]byte("tx"), "bad", 0)
	assert.True(t, errors.ErrInput.Is(err))
}

func TestVerifySignature(t *testing.T) {
	bucket := NewBucket(amino.NewCodec())
	db := store.MemStore()
	chainID := "verify-chain"
	bz := []byte("signed")

	priv := crypto.GenPrivKeyEd25519()
	other := crypto.GenPrivKeyEd25519()
	tx := NewStdTx(bz)

	sig0, err := SignTx(priv, tx, chainID, 0)
	require.NoError(t, err)
	sig1, err := SignTx(priv, tx, chainID, 1)
	require.NoError(t, err)
	forged, err := SignTx(other, tx, chainID, 0)
	require.NoError(t, err)
	forged.Pubkey = priv.PublicKey()

	cases := []struct {
		name    string
		sig     *StdSignature
		wantErr *errors.Error
	}{
		{"wrong sequence", sig1, ErrInvalidSequence},
		{"forged key", forged, errors.ErrUnauthorized},
		{"first use", sig0, nil},
		{"replay", sig0, ErrInvalidSequence},
		{"next sequence", sig1, nil},
		{"missing", &StdSignature{}, errors.ErrUnauthorized},
	}
	for _, tc := range cases {
		cond, err := VerifySignature(db, bucket, tc.sig, bz, chainID)
		if !tc.wantErr.Is(err) {
			t.Fatalf("%s: unexpected error: %+v", tc.name, err)
		}
		if tc.wantErr == nil {
			assert.Equal(t, priv.PublicKey().Condition(), cond, tc.name)
		}
	}

	acc, err := bucket.GetOrCreate(db, priv.PublicKey())
	require.NoError(t, err)
	assert.EqualValues(t, 2, acc.Sequence)
}

func TestAccountUse(t *testing.T) {
	key := crypto.GenPrivKeyEd25519().PublicKey()

	cases := map[string]struct {
		acc     Account
		seq     int64
		wantErr *errors.Error
		wantSeq int64
	}{
		"expected sequence": {
			acc:     Account{Pubkey: key, Sequence: 4},
			seq:     4,
			wantSeq: 5,
		},
		"replayed sequence": {
			acc:     Account{Pubkey: key, Sequence: 4},
			seq:     3,
			wantErr: ErrInvalidSequence,
			wantSeq: 4,
		},
		"exhausted": {
			acc:     Account{Pubkey: key, Sequence: maxSequence},
			seq:     maxSequence,
			wantErr: errors.ErrOverflow,
			wantSeq: maxSequence,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.acc.Use(tc.seq)
			if !tc.wantErr.Is(err) {
				t.Fatalf("want %q error, got %+v", tc.wantErr, err)
			}
			assert.Equal(t, tc.wantSeq, tc.acc.Sequence)
			assert.NoError(t, tc.acc.Validate())
		})
	}

	unkeyed := &Account{Sequence: 3}
	assert.True(t, ErrInvalidSequence.Is(unkeyed.Validate()))
}
