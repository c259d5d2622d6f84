package stationmath

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/tdex-network/stationd/pkg/mathutil"
)

func validatePrices(prices []*big.Int) error {
	if len(prices) == 0 {
		return fmt.Errorf("%w: empty price vector", ErrDimensionMismatch)
	}
	for i, p := range prices {
		if p == nil || p.Sign() <= 0 {
			return fmt.Errorf("%w: price at index %d must be positive", ErrInvalidPrice, i)
		}
		if !mathutil.InRange(p) {
			return fmt.Errorf("%w: price at index %d", ErrArithmeticOverflow, i)
		}
	}
	return nil
}

type namedVector struct {
	name   string
	values []*big.Int
}

func validateLengths(n int, vectors ...namedVector) error {
	for _, v := range vectors {
		if len(v.values) != n {
			return fmt.Errorf(
				"%w: %s has length %d, expected %d",
				ErrDimensionMismatch, v.name, len(v.values), n,
			)
		}
	}
	return nil
}

func validateRanges(vectors ...namedVector) error {
	for _, v := range vectors {
		if err := validateAmounts(v.name, v.values...); err != nil {
			return err
		}
	}
	return nil
}

func validateIndexes(indexIn, indexOut, n int) error {
	if indexIn < 0 || indexIn >= n {
		return fmt.Errorf("%w: token index in %d out of range", ErrDimensionMismatch, indexIn)
	}
	if indexOut < 0 || indexOut >= n {
		return fmt.Errorf("%w: token index out %d out of range", ErrDimensionMismatch, indexOut)
	}
	if indexIn == indexOut {
		return fmt.Errorf("%w: token index in and out must differ", ErrDimensionMismatch)
	}
	return nil
}

func validateAmounts(name string, amounts ...*big.Int) error {
	for i, a := range amounts {
		if !mathutil.InRange(a) {
			return fmt.Errorf("%w: %s at index %d", ErrArithmeticOverflow, name, i)
		}
	}
	return nil
}

// wrapMathErr maps mathutil errors to the package sentinel errors.
func wrapMathErr(err error) error {
	switch {
	case errors.Is(err, mathutil.ErrOutOfRange):
		return fmt.Errorf("%w: %s", ErrArithmeticOverflow, err)
	case errors.Is(err, mathutil.ErrDivByZero):
		return fmt.Errorf("%w: %s", ErrDivisionByZero, err)
	default:
		return err
	}
}
