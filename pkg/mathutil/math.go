package mathutil

import (
	"errors"
	"math/big"
)

var (
	// ErrOutOfRange is returned when a value or an intermediate result does
	// not fit in an unsigned 256-bit integer.
	ErrOutOfRange = errors.New("value out of uint256 range")
	// ErrDivByZero is returned when dividing by zero.
	ErrDivByZero = errors.New("division by zero")
)

var (
	// MaxUint256 is the biggest representable fixed-point value.
	MaxUint256 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))
	// One represents the unit of an 18-decimal fixed-point number.
	One = new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)
)

// InRange returns whether x is a valid unsigned 256-bit integer.
func InRange(x *big.Int) bool {
	return x != nil && x.Sign() >= 0 && x.Cmp(MaxUint256) <= 0
}

// Add returns x + y, failing if the sum exceeds MaxUint256.
func Add(x, y *big.Int) (*big.Int, error) {
	z := new(big.Int).Add(x, y)
	if !InRange(z) {
		return nil, ErrOutOfRange
	}
	return z, nil
}

// Mul returns x * y, failing if the product exceeds MaxUint256.
func Mul(x, y *big.Int) (*big.Int, error) {
	z := new(big.Int).Mul(x, y)
	if !InRange(z) {
		return nil, ErrOutOfRange
	}
	return z, nil
}

// DivDown returns floor(x / y).
func DivDown(x, y *big.Int) (*big.Int, error) {
	if y.Sign() == 0 {
		return nil, ErrDivByZero
	}
	return new(big.Int).Quo(x, y), nil
}

// DivUp returns ceil(x / y) for non-negative operands.
func DivUp(x, y *big.Int) (*big.Int, error) {
	if y.Sign() == 0 {
		return nil, ErrDivByZero
	}
	q, r := new(big.Int).QuoRem(x, y, new(big.Int))
	if r.Sign() != 0 {
		q.Add(q, big.NewInt(1))
	}
	return q, nil
}

// MulDivDown returns floor(x * y / z). The product x * y must fit in 256 bits.
func MulDivDown(x, y, z *big.Int) (*big.Int, error) {
	p, err := Mul(x, y)
	if err != nil {
		return nil, err
	}
	return DivDown(p, z)
}

// MulDivUp returns ceil(x * y / z). The product x * y must fit in 256 bits.
func MulDivUp(x, y, z *big.Int) (*big.Int, error) {
	p, err := Mul(x, y)
	if err != nil {
		return nil, err
	}
	return DivUp(p, z)
}

// DotProduct returns Σ x_i * y_i. Both slices must have the same length.
func DotProduct(x, y []*big.Int) (*big.Int, error) {
	sum := new(big.Int)
	for i := range x {
		p, err := Mul(x[i], y[i])
		if err != nil {
			return nil, err
		}
		if sum, err = Add(sum, p); err != nil {
			return nil, err
		}
	}
	return sum, nil
}

// Sum returns Σ x_i.
func Sum(x []*big.Int) (*big.Int, error) {
	sum := new(big.Int)
	for _, v := range x {
		var err error
		if sum, err = Add(sum, v); err != nil {
			return nil, err
		}
	}
	return sum, nil
}

// Min returns a copy of the smallest between x and y.
func Min(x, y *big.Int) *big.Int {
	if x.Cmp(y) <= 0 {
		return new(big.Int).Set(x)
	}
	return new(big.Int).Set(y)
}

// ZeroVector returns a vector of n zeros.
func ZeroVector(n int) []*big.Int {
	v := make([]*big.Int, n)
	for i := range v {
		v[i] = new(big.Int)
	}
	return v
}

// CopyVector returns a deep copy of x.
func CopyVector(x []*big.Int) []*big.Int {
	v := make([]*big.Int, len(x))
	for i := range x {
		v[i] = new(big.Int).Set(x[i])
	}
	return v
}
