package sigs

import (
	"github.com/iov-one/timedescrow"
	"github.com/iov-one/timedescrow/escrowtest"
)

// StdTx is a minimal signed transaction used by the tests.
type StdTx struct {
	escrowtest.Tx
	Raw        []byte
	Signatures []*StdSignature
}

var _ SignedTx = (*StdTx)(nil)

func NewStdTx(raw []byte) *StdTx {
	return &StdTx{
		Tx:  escrowtest.Tx{Msg: &escrowtest.Msg{RoutePath: "test/signed"}},
		Raw: raw,
	}
}

func (tx *StdTx) GetSignBytes() ([]byte, error) {
	return tx.Raw, nil
}

func (tx *StdTx) GetSignatures() []*StdSignature {
	return tx.Signatures
}

// SigCheckHandler stores the seen signers on each call
type SigCheckHandler struct {
	Signers []timedescrow.Condition
}

var _ timedescrow.Handler = (*SigCheckHandler)(nil)

func (s *SigCheckHandler) Check(ctx timedescrow.Context, store timedescrow.KVStore, tx timedescrow.Tx) (*timedescrow.CheckResult, error) {
	s.Signers = Authenticate{}.GetConditions(ctx)
	return &timedescrow.CheckResult{}, nil
}

func (s *SigCheckHandler) Deliver(ctx timedescrow.Context, store timedescrow.KVStore, tx timedescrow.Tx) (*timedescrow.DeliverResult, error) {
	s.Signers = Authenticate{}.GetConditions(ctx)
	return &timedescrow.DeliverResult{}, nil
}
