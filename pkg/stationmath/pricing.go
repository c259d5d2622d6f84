// Package stationmath implements the pricing and accounting formulas of an
// oracle priced multi-asset pool. Every function is pure: inputs are read,
// never mutated, and results are freshly allocated.
//
// All values are unsigned fixed-point integers sharing the same scaling
// factor within a call. Prices come from an external oracle and conversions
// are plain price ratios, without any bonding curve slippage.
package stationmath

import (
	"math/big"

	"github.com/tdex-network/stationd/pkg/mathutil"
)

// InGivenOut returns the amount of token indexIn that must be paid to receive
// amountOut of token indexOut:
//
//	amountIn = amountOut * prices[indexOut] / prices[indexIn]
//
// The result is rounded up, in favor of the pool.
func InGivenOut(
	indexIn, indexOut int, amountOut *big.Int, prices []*big.Int,
) (*big.Int, error) {
	if err := validateSwap(indexIn, indexOut, amountOut, prices); err != nil {
		return nil, err
	}
	if amountOut.Sign() == 0 {
		return new(big.Int), nil
	}

	amountIn, err := mathutil.MulDivUp(amountOut, prices[indexOut], prices[indexIn])
	if err != nil {
		return nil, wrapMathErr(err)
	}
	return amountIn, nil
}

// OutGivenIn returns the amount of token indexOut received in exchange for
// amountIn of token indexIn:
//
//	amountOut = amountIn * prices[indexIn] / prices[indexOut]
//
// The result is rounded down, in favor of the pool.
func OutGivenIn(
	indexIn, indexOut int, amountIn *big.Int, prices []*big.Int,
) (*big.Int, error) {
	if err := validateSwap(indexIn, indexOut, amountIn, prices); err != nil {
		return nil, err
	}
	if amountIn.Sign() == 0 {
		return new(big.Int), nil
	}

	amountOut, err := mathutil.MulDivDown(amountIn, prices[indexIn], prices[indexOut])
	if err != nil {
		return nil, wrapMathErr(err)
	}
	return amountOut, nil
}

func validateSwap(indexIn, indexOut int, amount *big.Int, prices []*big.Int) error {
	if err := validateIndexes(indexIn, indexOut, len(prices)); err != nil {
		return err
	}
	if err := validatePrices(prices); err != nil {
		return err
	}
	return validateAmounts("amount", amount)
}
