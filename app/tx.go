package app

import (
	"github.com/iov-one/timedescrow"
	"github.com/iov-one/timedescrow/errors"
	"github.com/iov-one/timedescrow/x/escrow"
	"github.com/iov-one/timedescrow/x/sigs"
	amino "github.com/tendermint/go-amino"
)

// cdc encodes transactions, query results and all stored models.
var cdc = MakeCodec()

// MakeCodec returns a codec that knows every instruction the application
// accepts. Messages are encoded as amino registered concrete types of the
// timedescrow.Msg interface, so an unknown instruction cannot be decoded.
func MakeCodec() *amino.Codec {
	c := amino.NewCodec()
	c.RegisterInterface((*timedescrow.Msg)(nil), nil)
	escrow.RegisterCodec(c)
	return c
}

// Tx is the transaction format of the application: one instruction and the
// signatures authorizing it.
type Tx struct {
	Msg        timedescrow.Msg      `json:"msg"`
	Signatures []*sigs.StdSignature `json:"signatures"`
}

var _ timedescrow.Tx = (*Tx)(nil)
var _ sigs.SignedTx = (*Tx)(nil)

// GetMsg returns the instruction carried by this transaction.
func (tx *Tx) GetMsg() (timedescrow.Msg, error) {
	if tx.Msg == nil {
		return nil, errors.Wrap(errors.ErrInput, "missing message")
	}
	return tx.Msg, nil
}

// GetSignatures returns all signatures of the transaction.
func (tx *Tx) GetSignatures() []*sigs.StdSignature {
	return tx.Signatures
}

// GetSignBytes returns the encoding of the transaction without signatures.
func (tx *Tx) GetSignBytes() ([]byte, error) {
	unsigned := Tx{Msg: tx.Msg}
	raw, err := cdc.MarshalBinaryBare(unsigned)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return raw, nil
}

// Marshal returns the wire encoding of the transaction.
func (tx *Tx) Marshal() ([]byte, error) {
	raw, err := cdc.MarshalBinaryBare(tx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return raw, nil
}

// TxDecoder creates a Tx and unmarshals bytes into it
func TxDecoder(raw []byte) (timedescrow.Tx, error) {
	var tx Tx
	if err := cdc.UnmarshalBinaryBare(raw, &tx); err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return &tx, nil
}
