package sigs

import (
	"crypto/sha512"
	"encoding/binary"

	"github.com/iov-one/timedescrow"
	"github.com/iov-one/timedescrow/crypto"
	"github.com/iov-one/timedescrow/errors"
)

// SignCodeV1 starts every signed payload. It versions the layout built by
// BuildSignBytes.
var SignCodeV1 = []byte{0, 0xCA, 0xFE, 0}

// VerifyTxSignatures verifies every signature of tx and returns the signer
// conditions in signature order. Any invalid signature fails the whole
// transaction.
func VerifyTxSignatures(db timedescrow.KVStore, bucket Bucket, tx SignedTx, chainID string) ([]timedescrow.Condition, error) {
	payload, err := tx.GetSignBytes()
	if err != nil {
		return nil, err
	}
	var signers []timedescrow.Condition
	for i, sig := range tx.GetSignatures() {
		c, err := VerifySignature(db, bucket, sig, payload, chainID)
		if err != nil {
			return nil, errors.Wrapf(err, "signature %d", i)
		}
		signers = append(signers, c)
	}
	return signers, nil
}

// VerifySignature checks sig over payload and, when valid, stores the next
// sequence of the signing key.
func VerifySignature(db timedescrow.KVStore, bucket Bucket, sig *StdSignature, payload []byte, chainID string) (timedescrow.Condition, error) {
	if err := sig.Validate(); err != nil {
		return nil, err
	}
	digest, err := BuildSignBytes(payload, chainID, sig.Sequence)
	if err != nil {
		return nil, err
	}
	if !sig.Pubkey.Verify(digest, sig.Signature) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "invalid signature")
	}

	account, err := bucket.GetOrCreate(db, sig.Pubkey)
	if err != nil {
		return nil, err
	}
	if err := account.Use(sig.Sequence); err != nil {
		return nil, err
	}
	if err := bucket.Save(db, account); err != nil {
		return nil, err
	}
	return sig.Pubkey.Condition(), nil
}

// BuildSignBytes returns the sha512 digest that is signed for payload:
//
//   SignCodeV1 | uint8 len(chainID) | chainID | uint64 BE sequence | payload
//
// Binding the chain ID and sequence keeps a signature from being replayed
// on another chain or twice on this one.
func BuildSignBytes(payload []byte, chainID string, seq int64) ([]byte, error) {
	if seq < 0 {
		return nil, errors.Wrap(ErrInvalidSequence, "negative")
	}
	if !timedescrow.IsValidChainID(chainID) {
		return nil, errors.Wrapf(errors.ErrInput, "chain id %q", chainID)
	}

	var seqBytes [8]byte
	binary.BigEndian.PutUint64(seqBytes[:], uint64(seq))

	h := sha512.New()
	h.Write(SignCodeV1)
	h.Write([]byte{uint8(len(chainID))})
	h.Write([]byte(chainID))
	h.Write(seqBytes[:])
	h.Write(payload)
	return h.Sum(nil), nil
}

// SignTx signs tx for chainID with the given sequence of signer.
func SignTx(signer crypto.Signer, tx SignedTx, chainID string, seq int64) (*StdSignature, error) {
	payload, err := tx.GetSignBytes()
	if err != nil {
		return nil, err
	}
	digest, err := BuildSignBytes(payload, chainID, seq)
	if err != nil {
		return nil, err
	}
	sig, err := signer.Sign(digest)
	if err != nil {
		return nil, err
	}
	return &StdSignature{Pubkey: signer.PublicKey(), Signature: sig, Sequence: seq}, nil
}
