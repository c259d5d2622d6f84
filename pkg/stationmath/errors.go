package stationmath

import "errors"

var (
	// ErrDimensionMismatch is returned when balance, price and amount vectors
	// have different lengths or a token index is out of range.
	ErrDimensionMismatch = errors.New("dimension mismatch")
	// ErrInvalidPrice is returned when a price is zero or negative.
	ErrInvalidPrice = errors.New("invalid price")
	// ErrDivisionByZero is returned when the pool share supply or the current
	// pool value is zero outside of the bootstrap path.
	ErrDivisionByZero = errors.New("division by zero")
	// ErrInsufficientBalance is returned when a withdrawal exceeds the
	// balance of a token.
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrArithmeticOverflow is returned when a value or an intermediate result
	// exceeds the fixed-point representable range.
	ErrArithmeticOverflow = errors.New("arithmetic overflow")
)
