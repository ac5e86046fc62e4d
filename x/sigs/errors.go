package sigs

import "github.com/iov-one/timedescrow/errors"

// ErrInvalidSequence is returned when a signature sequence does not match
// the one stored for the key.
var ErrInvalidSequence = errors.Register(120, "invalid sequence number")
