package money

import (
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// Amount is a monetary amount in minor units (cents).
// Balances and transfer amounts are stored this way so that arithmetic is
// exact; decimal strings only exist at the API boundary.
type Amount int64

// Parsing errors.
var (
	// ErrMalformed is returned when the input is not a decimal number
	ErrMalformed = errors.New("money: malformed amount")

	// ErrTooPrecise is returned when the input has more than two fraction digits
	ErrTooPrecise = errors.New("money: more than two decimal places")

	// ErrOutOfRange is returned when the amount does not fit in minor units
	ErrOutOfRange = errors.New("money: amount out of range")
)

var (
	maxMinor = decimal.NewFromInt(math.MaxInt64)
	minMinor = decimal.NewFromInt(math.MinInt64)
)

// Parse converts a decimal string such as "1000.00" or "-5.5" into minor
// units. Signed values are accepted; the sign is the caller's concern.
func Parse(s string) (Amount, error) {
	if s == "" {
		return 0, ErrMalformed
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformed, s)
	}

	shifted := d.Shift(2)
	if !shifted.IsInteger() {
		return 0, fmt.Errorf("%w: %q", ErrTooPrecise, s)
	}
	if shifted.GreaterThan(maxMinor) || shifted.LessThan(minMinor) {
		return 0, fmt.Errorf("%w: %q", ErrOutOfRange, s)
	}

	return Amount(shifted.IntPart()), nil
}

// MustParse is Parse for seed data and tests; it panics on invalid input.
func MustParse(s string) Amount {
	a, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return a
}

// String formats the amount with exactly two fraction digits ("800.00").
func (a Amount) String() string {
	return decimal.New(int64(a), -2).StringFixed(2)
}
