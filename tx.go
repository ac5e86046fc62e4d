package timedescrow

import (
	"reflect"

	"github.com/iov-one/timedescrow/errors"
)

// Msg is one instruction, such as funding or releasing an escrow.
type Msg interface {
	// Path routes the instruction and names it in tags and logs, for
	// example "escrow/release".
	Path() string
	// Validate checks everything that does not need state.
	Validate() error
}

// Tx is a signed envelope around exactly one Msg.
type Tx interface {
	GetMsg() (Msg, error)
}

// TxDecoder parses raw transaction bytes.
type TxDecoder func(raw []byte) (Tx, error)

// GetPath returns the path of the carried instruction, or "(missing)".
func GetPath(tx Tx) string {
	if msg, err := tx.GetMsg(); err == nil && msg != nil {
		return msg.Path()
	}
	return "(missing)"
}

// LoadMsg copies the instruction carried by tx into dest, which must be a
// pointer to the expected message type, and validates it.
func LoadMsg(tx Tx, dest interface{}) error {
	msg, err := tx.GetMsg()
	if err != nil {
		return errors.Wrap(err, "cannot get transaction message")
	}
	if msg == nil {
		return errors.Wrap(errors.ErrState, "nil message")
	}

	out := reflect.ValueOf(dest)
	if out.Kind() != reflect.Ptr || out.IsNil() {
		return errors.Wrapf(errors.ErrType, "cannot load into %T", dest)
	}
	in := reflect.Indirect(reflect.ValueOf(msg))
	if !in.Type().AssignableTo(out.Elem().Type()) {
		return errors.Wrapf(errors.ErrType, "want %T message, got %T", dest, msg)
	}
	out.Elem().Set(in)

	if err := msg.Validate(); err != nil {
		return errors.Wrap(err, "invalid message")
	}
	return nil
}
