package timedescrow

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/iov-one/timedescrow/crypto/bech32"
	"github.com/iov-one/timedescrow/errors"
)

// AddressLength is the size of every address derived from a condition.
const AddressLength = 20

// conditionFormat matches "<extension>/<type>/<data>". Data is binary and
// may contain any byte, including a newline.
var conditionFormat = regexp.MustCompile(`(?s)^([a-zA-Z0-9_\-]{3,8})/([a-zA-Z0-9_\-]{3,8})/(.+)$`)

// Condition names who may authorize an instruction. Signatures produce a
// condition per signing key and every escrow owns one for its custody
// account. Both extension and type are short ascii words, data is opaque.
type Condition []byte

// NewCondition joins extension, type and data into a condition.
func NewCondition(ext, typ string, data []byte) Condition {
	c := make(Condition, 0, len(ext)+len(typ)+len(data)+2)
	c = append(c, ext...)
	c = append(c, '/')
	c = append(c, typ...)
	c = append(c, '/')
	return append(c, data...)
}

func (c Condition) split() (ext, typ string, data []byte, ok bool) {
	m := conditionFormat.FindSubmatch(c)
	if m == nil {
		return "", "", nil, false
	}
	return string(m[1]), string(m[2]), m[3], true
}

// Validate fails with ErrInput unless the condition is well formed.
func (c Condition) Validate() error {
	if _, _, _, ok := c.split(); !ok {
		return errors.Wrapf(errors.ErrInput, "condition %X", []byte(c))
	}
	return nil
}

// Address returns the account controlled by this condition.
func (c Condition) Address() Address {
	if c == nil {
		return nil
	}
	sum := sha256.Sum256(c)
	return Address(sum[:AddressLength])
}

// Equals reports whether both conditions are byte identical.
func (c Condition) Equals(o Condition) bool {
	return bytes.Equal(c, o)
}

// String prints extension and type as text and data as upper case hex.
func (c Condition) String() string {
	ext, typ, data, ok := c.split()
	if !ok {
		return fmt.Sprintf("Invalid Condition: %X", []byte(c))
	}
	return fmt.Sprintf("%s/%s/%X", ext, typ, data)
}

// parseCondition reads back the String representation.
func parseCondition(s string) (Condition, error) {
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return nil, errors.Wrapf(errors.ErrInput, "condition %q: want ext/type/data", s)
	}
	data, err := hex.DecodeString(parts[2])
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "condition data: %s", err)
	}
	c := NewCondition(parts[0], parts[1], data)
	return c, c.Validate()
}

// Address identifies an account: a wallet, a signer or escrow custody.
type Address []byte

// Equals reports whether both addresses are byte identical.
func (a Address) Equals(o Address) bool {
	return bytes.Equal(a, o)
}

// Validate fails with ErrInput for anything but AddressLength bytes.
func (a Address) Validate() error {
	if len(a) != AddressLength {
		return errors.Wrapf(errors.ErrInput, "address must be %d bytes, got %d", AddressLength, len(a))
	}
	return nil
}

// String returns upper case hex. Use Bech32 for a checksummed form.
func (a Address) String() string {
	if len(a) == 0 {
		return "(nil)"
	}
	return strings.ToUpper(hex.EncodeToString(a))
}

// Bech32 encodes the address with given human readable part.
func (a Address) Bech32(hrp string) (string, error) {
	raw, err := bech32.Encode(hrp, a)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// MarshalJSON writes the address as a hex string.
func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(strings.ToUpper(hex.EncodeToString(a)))
}

// UnmarshalJSON accepts any form understood by ParseAddress.
func (a *Address) UnmarshalJSON(raw []byte) error {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return errors.Wrap(errors.ErrInput, "address must be a json string")
	}
	addr, err := ParseAddress(s)
	if err != nil {
		return err
	}
	*a = addr
	return nil
}

// ParseAddress decodes a plain hex address or one prefixed by its
// encoding: "hex:", "cond:" (a condition string) or "bech32:". An empty
// value decodes to a nil address.
func ParseAddress(s string) (Address, error) {
	format, value := "hex", s
	if i := strings.IndexByte(s, ':'); i >= 0 {
		format, value = s[:i], s[i+1:]
	}
	if value == "" {
		return nil, nil
	}

	var addr Address
	switch format {
	case "hex":
		raw, err := hex.DecodeString(value)
		if err != nil {
			return nil, errors.Wrap(errors.ErrInput, "address is not hex")
		}
		addr = raw
	case "cond":
		c, err := parseCondition(value)
		if err != nil {
			return nil, err
		}
		addr = c.Address()
	case "bech32":
		_, raw, err := bech32.Decode(value)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrInput, "bech32 address: %s", err)
		}
		addr = raw
	default:
		return nil, errors.Wrapf(errors.ErrType, "unknown address format %q", format)
	}
	if err := addr.Validate(); err != nil {
		return nil, err
	}
	return addr, nil
}
