package escrow

import "github.com/iov-one/timedescrow"

// CanRelease returns true if the beneficiary may be paid at given time.
// The release time itself already qualifies.
func CanRelease(now timedescrow.UnixTime, e *Escrow) bool {
	return now >= e.ReleaseTime
}

// CanExpire returns true if the escrow has an expiry time and it was
// reached at given time.
func CanExpire(now timedescrow.UnixTime, e *Escrow) bool {
	return e.ExpiryTime != 0 && now >= e.ExpiryTime
}
