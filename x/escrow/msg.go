package escrow

import (
	"github.com/iov-one/timedescrow"
	"github.com/iov-one/timedescrow/errors"
	amino "github.com/tendermint/go-amino"
)

const (
	pathInitialize = "escrow/initialize"
	pathFund       = "escrow/fund"
	pathRelease    = "escrow/release"
	pathRefund     = "escrow/refund"
	pathCancel     = "escrow/cancel"
)

// RegisterCodec registers all escrow instructions as implementations of
// timedescrow.Msg. The interface itself must be registered by the caller.
func RegisterCodec(cdc *amino.Codec) {
	cdc.RegisterConcrete(&InitializeMsg{}, pathInitialize, nil)
	cdc.RegisterConcrete(&FundMsg{}, pathFund, nil)
	cdc.RegisterConcrete(&ReleaseMsg{}, pathRelease, nil)
	cdc.RegisterConcrete(&RefundMsg{}, pathRefund, nil)
	cdc.RegisterConcrete(&CancelMsg{}, pathCancel, nil)
}

// InitializeMsg creates a new escrow. The escrow ID is derived from the
// depositor and the seed.
type InitializeMsg struct {
	// Depositor defaults to the main signer when not set.
	Depositor   timedescrow.Address  `json:"depositor,omitempty"`
	Seed        uint64               `json:"seed"`
	Beneficiary timedescrow.Address  `json:"beneficiary"`
	Arbiter     timedescrow.Address  `json:"arbiter,omitempty"`
	ReleaseTime timedescrow.UnixTime `json:"release_time"`
	// ExpiryTime zero means the escrow never expires.
	ExpiryTime timedescrow.UnixTime `json:"expiry_time,omitempty"`
	Memo       string               `json:"memo,omitempty"`
}

var _ timedescrow.Msg = (*InitializeMsg)(nil)

// Path returns the routing path for this message.
func (*InitializeMsg) Path() string {
	return pathInitialize
}

// Validate makes sure that this is sensible
func (m *InitializeMsg) Validate() error {
	var errs error
	if len(m.Depositor) != 0 {
		errs = errors.AppendField(errs, "Depositor", m.Depositor.Validate())
	}
	errs = errors.AppendField(errs, "Beneficiary", m.Beneficiary.Validate())
	if len(m.Arbiter) != 0 {
		errs = errors.AppendField(errs, "Arbiter", m.Arbiter.Validate())
	}
	errs = errors.AppendField(errs, "ReleaseTime", validateTimes(m.ReleaseTime, m.ExpiryTime))
	if len(m.Memo) > maxMemoSize {
		errs = errors.Append(errs, errors.Field("Memo", errors.ErrInput, "cannot be longer than %d", maxMemoSize))
	}
	return errs
}

// FundMsg moves the escrow amount from the depositor into custody.
type FundMsg struct {
	EscrowID []byte `json:"escrow_id"`
	Amount   uint64 `json:"amount"`
}

var _ timedescrow.Msg = (*FundMsg)(nil)

// Path returns the routing path for this message.
func (*FundMsg) Path() string {
	return pathFund
}

// Validate makes sure that this is sensible
func (m *FundMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "EscrowID", validateEscrowID(m.EscrowID))
	if m.Amount == 0 {
		errs = errors.Append(errs, errors.Field("Amount", errors.ErrInput, "must be positive"))
	}
	return errs
}

// ReleaseMsg pays the held funds to the beneficiary.
type ReleaseMsg struct {
	EscrowID []byte `json:"escrow_id"`
}

var _ timedescrow.Msg = (*ReleaseMsg)(nil)

// Path returns the routing path for this message.
func (*ReleaseMsg) Path() string {
	return pathRelease
}

// Validate makes sure that this is sensible
func (m *ReleaseMsg) Validate() error {
	return errors.AppendField(nil, "EscrowID", validateEscrowID(m.EscrowID))
}

// RefundMsg returns the held funds to the depositor.
type RefundMsg struct {
	EscrowID []byte `json:"escrow_id"`
}

var _ timedescrow.Msg = (*RefundMsg)(nil)

// Path returns the routing path for this message.
func (*RefundMsg) Path() string {
	return pathRefund
}

// Validate makes sure that this is sensible
func (m *RefundMsg) Validate() error {
	return errors.AppendField(nil, "EscrowID", validateEscrowID(m.EscrowID))
}

// CancelMsg withdraws an escrow that was not funded.
type CancelMsg struct {
	EscrowID []byte `json:"escrow_id"`
}

var _ timedescrow.Msg = (*CancelMsg)(nil)

// Path returns the routing path for this message.
func (*CancelMsg) Path() string {
	return pathCancel
}

// Validate makes sure that this is sensible
func (m *CancelMsg) Validate() error {
	return errors.AppendField(nil, "EscrowID", validateEscrowID(m.EscrowID))
}
