package escrow

import "github.com/iov-one/timedescrow/errors"

// Escrow takes the 1010-1020 error code range.
var (
	// ErrTimeNotReached is returned when a release is requested before
	// the release time.
	ErrTimeNotReached = errors.Register(1010, "release time not reached")

	// ErrExpiryNotReached is returned when a depositor requests a refund
	// before the escrow expired.
	ErrExpiryNotReached = errors.Register(1011, "expiry time not reached")
)
