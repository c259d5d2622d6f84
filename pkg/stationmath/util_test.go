package stationmath_test

import (
	"math/big"
)

// e18 returns n * 10^18 as *big.Int, n may be fractional with up to 18 digits.
func e18(n float64) *big.Int {
	f := new(big.Float).SetPrec(256).SetFloat64(n)
	f.Mul(f, new(big.Float).SetPrec(256).SetInt(big.NewInt(1e18)))
	v, _ := f.Int(nil)
	return v
}

func ints(v ...int64) []*big.Int {
	out := make([]*big.Int, 0, len(v))
	for _, i := range v {
		out = append(out, big.NewInt(i))
	}
	return out
}

func vec(v ...*big.Int) []*big.Int {
	return v
}

func str(s string) *big.Int {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic("invalid number " + s)
	}
	return v
}
