package timedescrow

import (
	"encoding/json"
	"time"

	"github.com/iov-one/timedescrow/errors"
)

// UnixTime is a point in time with seconds precision, counted from the
// epoch. Escrow deadlines and block time are compared in this unit.
type UnixTime int64

// AsUnixTime drops the sub second part of t.
func AsUnixTime(t time.Time) UnixTime {
	return UnixTime(t.Unix())
}

// Time converts back to the standard library representation.
func (t UnixTime) Time() time.Time {
	return time.Unix(int64(t), 0).UTC()
}

// Validate rejects moments before the epoch.
func (t UnixTime) Validate() error {
	if t < 0 {
		return errors.Wrapf(errors.ErrInput, "time %d is before epoch", t)
	}
	return nil
}

// UnmarshalJSON reads seconds since epoch or, which is handier in a
// genesis file, an RFC3339 string.
func (t *UnixTime) UnmarshalJSON(raw []byte) error {
	var v UnixTime
	var seconds int64
	var stamp time.Time
	switch {
	case json.Unmarshal(raw, &seconds) == nil:
		v = UnixTime(seconds)
	case json.Unmarshal(raw, &stamp) == nil:
		v = AsUnixTime(stamp)
	default:
		return errors.Wrapf(errors.ErrInput, "time %s: want seconds or RFC3339", raw)
	}
	if err := v.Validate(); err != nil {
		return err
	}
	*t = v
	return nil
}

func (t UnixTime) String() string {
	return t.Time().Format(time.RFC3339)
}
