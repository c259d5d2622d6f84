package mathutil

import "math/big"

// FeeByDivisor returns floor(amount / divisor). A zero divisor disables the
// fee and yields zero without dividing.
func FeeByDivisor(amount *big.Int, divisor uint64) *big.Int {
	if divisor == 0 {
		return new(big.Int)
	}
	return new(big.Int).Quo(amount, new(big.Int).SetUint64(divisor))
}

// LessFee returns amount - fee, failing if the fee is bigger than the amount.
func LessFee(amount, fee *big.Int) (*big.Int, error) {
	if fee.Cmp(amount) > 0 {
		return nil, ErrOutOfRange
	}
	return new(big.Int).Sub(amount, fee), nil
}

// LessFees applies LessFee element-wise.
func LessFees(amounts, fees []*big.Int) ([]*big.Int, error) {
	out := make([]*big.Int, len(amounts))
	for i := range amounts {
		v, err := LessFee(amounts[i], fees[i])
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
