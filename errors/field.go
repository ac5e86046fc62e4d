package errors

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Field attributes err to an attribute of an instruction or record, for
// example "ReleaseTime". It returns nil for a nil err.
func Field(name string, err error, description string, args ...interface{}) error {
	if isNilErr(err) {
		return nil
	}
	if stackTrace(err) == nil {
		err = errors.WithStack(err)
	}
	if len(args) > 0 {
		description = fmt.Sprintf(description, args...)
	}
	return &fieldError{name: name, desc: description, cause: err}
}

// AppendField adds a field error to errs, see Append.
func AppendField(errs error, name string, err error) error {
	return Append(errs, Field(name, err, ""))
}

type fieldError struct {
	name  string
	desc  string
	cause error
}

func (e *fieldError) Error() string {
	if e.desc == "" {
		return fmt.Sprintf("field %q: %s", e.name, e.cause)
	}
	return fmt.Sprintf("field %q: %s: %s", e.name, e.desc, e.cause)
}

func (e *fieldError) Cause() error {
	return e.cause
}

// Append collects validation failures so that a client learns about all
// bad fields at once. Nil errors are dropped, a single error is returned
// as is and no error gives nil.
func Append(errs ...error) error {
	var g group
	for _, err := range errs {
		switch e := err.(type) {
		case group:
			g = append(g, e...)
		default:
			if !isNilErr(err) {
				g = append(g, err)
			}
		}
	}
	switch len(g) {
	case 0:
		return nil
	case 1:
		return g[0]
	default:
		return g
	}
}

// group is a list of errors. The first one decides the response code.
type group []error

func (g group) Error() string {
	lines := make([]string, len(g))
	for i, err := range g {
		lines[i] = "* " + err.Error()
	}
	return fmt.Sprintf("%d errors occurred:\n\t%s\n", len(g), strings.Join(lines, "\n\t"))
}

// ABCICode returns the code of the first error.
func (g group) ABCICode() uint32 {
	return abciCode(g[0])
}
