package mathutil

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

// ErrInvalidAmount is returned when an amount string can't be parsed.
var ErrInvalidAmount = errors.New("invalid amount")

// ParseAmount parses a base-10 string of base units into a uint256.
func ParseAmount(s string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if !InRange(v) {
		return nil, fmt.Errorf("%w: %s", ErrOutOfRange, s)
	}
	return v, nil
}

// ParseAmounts parses every element of s with ParseAmount.
func ParseAmounts(s []string) ([]*big.Int, error) {
	out := make([]*big.Int, 0, len(s))
	for _, a := range s {
		v, err := ParseAmount(a)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// FormatAmounts returns the base-10 representation of every element of x.
func FormatAmounts(x []*big.Int) []string {
	out := make([]string, 0, len(x))
	for _, v := range x {
		out = append(out, v.String())
	}
	return out
}

// FromDecimalString converts a human readable amount (ie. "1.5") into base
// units given the number of decimals. Digits beyond precision are truncated.
func FromDecimalString(s string, decimals int32) (*big.Int, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidAmount, err)
	}
	if d.IsNegative() {
		return nil, fmt.Errorf("%w: %s", ErrOutOfRange, s)
	}
	v := d.Shift(decimals).Truncate(0).BigInt()
	if !InRange(v) {
		return nil, fmt.Errorf("%w: %s", ErrOutOfRange, s)
	}
	return v, nil
}

// ToDecimal converts base units into a decimal.Decimal with the given
// number of decimals.
func ToDecimal(x *big.Int, decimals int32) decimal.Decimal {
	return decimal.NewFromBigInt(x, -decimals)
}
