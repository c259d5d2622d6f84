package stationmath

import (
	"math/big"

	"github.com/tdex-network/stationd/pkg/mathutil"
)

// CalculateSwapFeeAmount returns the fee charged on a batch of swaps, that is
// the smaller between the total amount moving in and the total amount moving
// out of the pool:
//
//	fee = min(Σ amountsIn_i, Σ amountsOut_i)
//
// The amplification parameter is accepted for future curve based fee tiers
// and does not affect the result.
func CalculateSwapFeeAmount(
	balances, amountsIn, amountsOut []*big.Int, amp uint64, prices []*big.Int,
) (*big.Int, error) {
	vectors := []namedVector{
		{"balances", balances}, {"amountsIn", amountsIn}, {"amountsOut", amountsOut},
	}
	if err := validateLengths(len(prices), vectors...); err != nil {
		return nil, err
	}
	if err := validatePrices(prices); err != nil {
		return nil, err
	}
	if err := validateRanges(vectors...); err != nil {
		return nil, err
	}

	totalIn, err := mathutil.Sum(amountsIn)
	if err != nil {
		return nil, wrapMathErr(err)
	}
	totalOut, err := mathutil.Sum(amountsOut)
	if err != nil {
		return nil, wrapMathErr(err)
	}

	return mathutil.Min(totalIn, totalOut), nil
}

// CalculateWithdrawFee returns the fee withheld from each withdrawn amount:
//
//	fees_i = amountsOut_i / withdrawFeeRate
//
// The rate is a divisor, not a percentage: a bigger rate means a smaller
// fee. A zero rate disables the fee and all fees are zero.
func CalculateWithdrawFee(
	amountsOut []*big.Int, withdrawFeeRate uint64, prices []*big.Int,
) ([]*big.Int, error) {
	vector := namedVector{"amountsOut", amountsOut}
	if err := validateLengths(len(prices), vector); err != nil {
		return nil, err
	}
	if err := validatePrices(prices); err != nil {
		return nil, err
	}
	if err := validateRanges(vector); err != nil {
		return nil, err
	}

	fees := make([]*big.Int, len(amountsOut))
	for i, a := range amountsOut {
		fees[i] = mathutil.FeeByDivisor(a, withdrawFeeRate)
	}
	return fees, nil
}
