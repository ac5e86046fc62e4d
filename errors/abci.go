package errors

import "fmt"

const (
	// SuccessABCICode is the response code of an accepted instruction.
	SuccessABCICode uint32 = 0

	internalABCICode uint32 = 1
	internalABCILog         = "internal error"
)

// ABCIInfo returns the response code and log for err. Errors that do not
// wrap a registered kind get code 1 and, unless debug is set, a generic
// log so that no internals leak to clients. Debug logs carry the stack
// trace.
func ABCIInfo(err error, debug bool) (uint32, string) {
	if isNilErr(err) {
		return SuccessABCICode, ""
	}
	code := abciCode(err)
	switch {
	case debug:
		return code, fmt.Sprintf("%+v", err)
	case code == internalABCICode:
		return code, internalABCILog
	default:
		return code, err.Error()
	}
}

type coder interface {
	ABCICode() uint32
}

func abciCode(err error) uint32 {
	for err != nil {
		if c, ok := err.(coder); ok {
			return c.ABCICode()
		}
		next, ok := err.(causer)
		if !ok {
			break
		}
		err = next.Cause()
	}
	return internalABCICode
}
