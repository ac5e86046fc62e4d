package errors

import (
	"fmt"
	"reflect"

	"github.com/pkg/errors"
)

// Root errors. Codes are part of the client protocol and never change.
var (
	// ErrUnauthorized: the signers may not perform the instruction.
	ErrUnauthorized = Register(2, "unauthorized")
	// ErrNotFound: the addressed escrow or account does not exist.
	ErrNotFound = Register(3, "not found")
	// ErrModel: a record failed validation before being stored.
	ErrModel = Register(5, "invalid model")
	// ErrDuplicate: a record with the same key already exists.
	ErrDuplicate = Register(6, "duplicate")
	// ErrHuman: a code path that correct wiring never reaches.
	ErrHuman = Register(7, "coding error")
	// ErrImmutable: genesis state was already written.
	ErrImmutable = Register(8, "cannot be modified")
	// ErrEmpty: a required value is missing.
	ErrEmpty = Register(9, "value is empty")
	// ErrState: the escrow is not in a status that allows the instruction.
	ErrState = Register(10, "invalid state")
	// ErrType: a value has an unexpected type.
	ErrType = Register(11, "invalid type")
	// ErrInsufficientAmount: an account cannot cover a transfer.
	ErrInsufficientAmount = Register(12, "insufficient amount")
	// ErrInvalidAmount: an amount that can never be moved, such as zero.
	ErrInvalidAmount = Register(13, "invalid amount")
	// ErrInput: a malformed instruction or argument.
	ErrInput = Register(14, "invalid input")
	// ErrOverflow: a balance would not fit into its type.
	ErrOverflow = Register(16, "value overflow")
	// ErrDatabase: the storage layer failed.
	ErrDatabase = Register(17, "database")
	// ErrPanic: a recovered panic.
	ErrPanic = Register(111222, "panic")
)

// registry holds every root error by code. Code 1 is reserved for errors
// that carry no code at all.
var registry = map[uint32]*Error{
	internalABCICode: {code: internalABCICode, desc: internalABCILog},
}

// Register declares a root error. Extensions call it from package level
// vars, a code used twice panics at startup.
func Register(code uint32, description string) *Error {
	if prev, ok := registry[code]; ok {
		panic(fmt.Sprintf("error code %d already registered as %q", code, prev.desc))
	}
	e := &Error{code: code, desc: description}
	registry[code] = e
	return e
}

// Error is a root error kind. Runtime errors wrap one of them.
type Error struct {
	code uint32
	desc string
}

func (e *Error) Error() string {
	return e.desc
}

// ABCICode is the response code of this kind.
func (e *Error) ABCICode() uint32 {
	return e.code
}

// New is a shortcut for Wrap(e, description).
func (e *Error) New(description string) error {
	return Wrap(e, description)
}

// Is reports whether err is of this kind. Wrapping layers are unwound
// through Cause and a group matches if any member does. A nil kind only
// matches a nil error.
func (e *Error) Is(err error) bool {
	if e == nil {
		return isNilErr(err)
	}
	for err != nil {
		if err == e {
			return true
		}
		if g, ok := err.(group); ok {
			for _, member := range g {
				if e.Is(member) {
					return true
				}
			}
			return false
		}
		c, ok := err.(causer)
		if !ok {
			return false
		}
		err = c.Cause()
	}
	return false
}

// Wrap adds context to err and returns nil for a nil err. The innermost
// wrap records a stack trace.
func Wrap(err error, description string) error {
	if err == nil {
		return nil
	}
	if stackTrace(err) == nil {
		err = errors.WithStack(err)
	}
	return &wrapped{msg: description, cause: err}
}

// Wrapf is Wrap with a format string.
func Wrapf(err error, format string, args ...interface{}) error {
	return Wrap(err, fmt.Sprintf(format, args...))
}

// Recover turns a panic into an ErrPanic stored in err. Use with defer.
func Recover(err *error) {
	if r := recover(); r != nil {
		*err = Wrapf(ErrPanic, "%v", r)
	}
}

type wrapped struct {
	msg   string
	cause error
}

func (w *wrapped) Error() string {
	return w.msg + ": " + w.cause.Error()
}

func (w *wrapped) Cause() error {
	return w.cause
}

// Format prints the stack trace for %+v.
func (w *wrapped) Format(s fmt.State, verb rune) {
	if verb == 'v' && s.Flag('+') {
		fmt.Fprintf(s, "%s: %+v", w.msg, w.cause)
		return
	}
	fmt.Fprint(s, w.Error())
}

type causer interface {
	Cause() error
}

func stackTrace(err error) errors.StackTrace {
	for err != nil {
		if st, ok := err.(interface{ StackTrace() errors.StackTrace }); ok {
			return st.StackTrace()
		}
		c, ok := err.(causer)
		if !ok {
			return nil
		}
		err = c.Cause()
	}
	return nil
}

// isNilErr also catches a typed nil pointer stored in the interface.
func isNilErr(err error) bool {
	if err == nil {
		return true
	}
	v := reflect.ValueOf(err)
	return v.Kind() == reflect.Ptr && v.IsNil()
}
