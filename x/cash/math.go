package cash

import (
	"math/bits"

	"github.com/iov-one/timedescrow/errors"
)

func checkedAdd(a, b uint64) (uint64, error) {
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		return 0, errors.Wrapf(errors.ErrOverflow, "%d + %d", a, b)
	}
	return sum, nil
}

func checkedSub(a, b uint64) (uint64, error) {
	diff, borrow := bits.Sub64(a, b, 0)
	if borrow != 0 {
		return 0, errors.Wrapf(errors.ErrInsufficientAmount, "have %d, need %d", a, b)
	}
	return diff, nil
}
