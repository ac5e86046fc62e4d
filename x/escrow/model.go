package escrow

import (
	"encoding/binary"
	"fmt"

	"github.com/iov-one/timedescrow"
	"github.com/iov-one/timedescrow/errors"
	"github.com/iov-one/timedescrow/orm"
	amino "github.com/tendermint/go-amino"
	"golang.org/x/crypto/blake2b"
)

const (
	// BucketName is where the escrow records are stored.
	BucketName = "esc"

	maxMemoSize = 128
)

// Status is the position of an escrow in its lifecycle.
type Status int32

const (
	StatusUninitialized Status = iota
	StatusInitialized
	StatusFunded
	StatusReleased
	StatusRefunded
	StatusCancelled
)

var statusNames = map[Status]string{
	StatusUninitialized: "uninitialized",
	StatusInitialized:   "initialized",
	StatusFunded:        "funded",
	StatusReleased:      "released",
	StatusRefunded:      "refunded",
	StatusCancelled:     "cancelled",
}

func (s Status) String() string {
	if n, ok := statusNames[s]; ok {
		return n
	}
	return fmt.Sprintf("status(%d)", int32(s))
}

// IsTerminal returns true for states no transition leaves.
func (s Status) IsTerminal() bool {
	return s == StatusReleased || s == StatusRefunded || s == StatusCancelled
}

// Escrow is the record of a single escrow agreement.
type Escrow struct {
	Depositor      timedescrow.Address  `json:"depositor"`
	Beneficiary    timedescrow.Address  `json:"beneficiary"`
	Arbiter        timedescrow.Address  `json:"arbiter,omitempty"`
	Seed           uint64               `json:"seed"`
	Amount         uint64               `json:"amount"`
	HoldingBalance uint64               `json:"holding_balance"`
	ReleaseTime    timedescrow.UnixTime `json:"release_time"`
	ExpiryTime     timedescrow.UnixTime `json:"expiry_time,omitempty"`
	Status         Status               `json:"status"`
	CreatedAt      timedescrow.UnixTime `json:"created_at"`
	Memo           string               `json:"memo,omitempty"`
}

var _ orm.Model = (*Escrow)(nil)

// Validate ensures the escrow is valid. Next to the attributes, the status
// must agree with the amount held.
func (e *Escrow) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Depositor", e.Depositor.Validate())
	errs = errors.AppendField(errs, "Beneficiary", e.Beneficiary.Validate())
	if len(e.Arbiter) != 0 {
		errs = errors.AppendField(errs, "Arbiter", e.Arbiter.Validate())
	}
	errs = errors.AppendField(errs, "ReleaseTime", validateTimes(e.ReleaseTime, e.ExpiryTime))
	errs = errors.AppendField(errs, "CreatedAt", e.CreatedAt.Validate())
	if len(e.Memo) > maxMemoSize {
		errs = errors.Append(errs, errors.Field("Memo", errors.ErrInput, "cannot be longer than %d", maxMemoSize))
	}
	if errs != nil {
		return errs
	}

	switch e.Status {
	case StatusInitialized, StatusCancelled:
		if e.Amount != 0 || e.HoldingBalance != 0 {
			return errors.Wrapf(errors.ErrState, "%s escrow cannot hold value", e.Status)
		}
	case StatusFunded:
		if e.Amount == 0 || e.HoldingBalance != e.Amount {
			return errors.Wrap(errors.ErrState, "funded escrow must hold the full amount")
		}
	case StatusReleased, StatusRefunded:
		if e.Amount == 0 || e.HoldingBalance != 0 {
			return errors.Wrapf(errors.ErrState, "%s escrow must be paid out", e.Status)
		}
	default:
		return errors.Wrapf(errors.ErrState, "cannot store %s escrow", e.Status)
	}
	return nil
}

// validateTimes checks that the release time is set and that the expiry, if
// set, comes strictly after it.
func validateTimes(release, expiry timedescrow.UnixTime) error {
	if release == 0 {
		return errors.Wrap(errors.ErrInput, "release time is required")
	}
	if err := release.Validate(); err != nil {
		return errors.Wrap(err, "release time")
	}
	if expiry == 0 {
		return nil
	}
	if err := expiry.Validate(); err != nil {
		return errors.Wrap(err, "expiry time")
	}
	if expiry <= release {
		return errors.Wrapf(errors.ErrInput, "expiry %d must be after release %d", expiry, release)
	}
	return nil
}

// EscrowID derives the ID of an escrow from its depositor and a seed chosen
// by the depositor. The same pair always gives the same ID.
func EscrowID(depositor timedescrow.Address, seed uint64) []byte {
	var s [8]byte
	binary.BigEndian.PutUint64(s[:], seed)

	h, _ := blake2b.New256(nil)
	h.Write([]byte("escrow"))
	h.Write(depositor)
	h.Write(s[:])
	return h.Sum(nil)[:timedescrow.AddressLength]
}

// Condition calculates the condition of the custody account of an escrow
// given its ID.
func Condition(id []byte) timedescrow.Condition {
	return timedescrow.NewCondition("escrow", "seq", id)
}

// CustodyAddress returns the address holding the funds of an escrow.
func CustodyAddress(id []byte) timedescrow.Address {
	return Condition(id).Address()
}

func validateEscrowID(id []byte) error {
	if len(id) != timedescrow.AddressLength {
		return errors.Wrapf(errors.ErrInput, "escrow id %X", id)
	}
	return nil
}

// Bucket stores escrow records by ID, indexed by all parties.
type Bucket struct {
	orm.Bucket
}

// NewBucket returns the escrow bucket.
func NewBucket(cdc *amino.Codec) Bucket {
	b := orm.NewBucket(BucketName, cdc, func() orm.Model { return &Escrow{} }).
		WithIndex("depositor", idxDepositor, false).
		WithIndex("beneficiary", idxBeneficiary, false).
		WithIndex("arbiter", idxArbiter, false)
	return Bucket{Bucket: b}
}

// Get loads the escrow with given ID. ErrNotFound is returned for unknown
// IDs.
func (b Bucket) Get(db timedescrow.ReadOnlyKVStore, id []byte) (*Escrow, error) {
	var e Escrow
	if err := b.One(db, id, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// Save validates and stores the escrow.
func (b Bucket) Save(db timedescrow.KVStore, id []byte, e *Escrow) error {
	return b.Put(db, id, e)
}

func toEscrow(m orm.Model) (*Escrow, error) {
	e, ok := m.(*Escrow)
	if !ok || e == nil {
		return nil, errors.Wrapf(errors.ErrHuman, "can only take index of Escrow, got %T", m)
	}
	return e, nil
}

func idxDepositor(m orm.Model) ([]byte, error) {
	e, err := toEscrow(m)
	if err != nil {
		return nil, err
	}
	return e.Depositor, nil
}

func idxBeneficiary(m orm.Model) ([]byte, error) {
	e, err := toEscrow(m)
	if err != nil {
		return nil, err
	}
	return e.Beneficiary, nil
}

func idxArbiter(m orm.Model) ([]byte, error) {
	e, err := toEscrow(m)
	if err != nil {
		return nil, err
	}
	if len(e.Arbiter) == 0 {
		return nil, nil
	}
	return e.Arbiter, nil
}
