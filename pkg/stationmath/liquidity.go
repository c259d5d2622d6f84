package stationmath

import (
	"fmt"
	"math/big"

	"github.com/tdex-network/stationd/pkg/mathutil"
)

// BptOutForAllTokensIn returns the amount of pool shares minted for
// depositing amountsIn into a pool with the given balances and share supply.
// Shares are minted by aggregate price-weighted value, regardless of how the
// deposit is distributed across tokens:
//
//	bptOut = totalBPT * Σ(amountsIn_i * prices_i) / Σ(balances_i * prices_i)
//
// The result is rounded down. When totalBPT is zero the pool is bootstrapped
// by minting one share per unit of 18-decimal price-normalized value, that
// is Σ(amountsIn_i * prices_i) / 1e18, ignoring any existing balance.
func BptOutForAllTokensIn(
	balances, amountsIn []*big.Int, totalBPT *big.Int, prices []*big.Int,
) (*big.Int, error) {
	if err := validateLiquidity(balances, amountsIn, "amountsIn", totalBPT, prices); err != nil {
		return nil, err
	}

	valueAdded, err := mathutil.DotProduct(amountsIn, prices)
	if err != nil {
		return nil, wrapMathErr(err)
	}
	if valueAdded.Sign() == 0 {
		return new(big.Int), nil
	}

	if totalBPT.Sign() == 0 {
		bptOut, err := mathutil.DivDown(valueAdded, mathutil.One)
		if err != nil {
			return nil, wrapMathErr(err)
		}
		return bptOut, nil
	}

	currentValue, err := mathutil.DotProduct(balances, prices)
	if err != nil {
		return nil, wrapMathErr(err)
	}
	if currentValue.Sign() == 0 {
		return nil, fmt.Errorf("%w: pool value is zero", ErrDivisionByZero)
	}

	bptOut, err := mathutil.MulDivDown(totalBPT, valueAdded, currentValue)
	if err != nil {
		return nil, wrapMathErr(err)
	}
	return bptOut, nil
}

// BptInForAllTokensOut returns the amount of pool shares to burn for
// withdrawing amountsOut, together with the amounts actually withdrawn:
//
//	bptIn = totalBPT * Σ(amountsOut_i * prices_i) / Σ(balances_i * prices_i)
//
// The result is rounded up. A withdrawal exceeding any token balance fails
// with ErrInsufficientBalance, amounts are never clamped.
func BptInForAllTokensOut(
	balances, amountsOut []*big.Int, totalBPT *big.Int, prices []*big.Int,
) (*big.Int, []*big.Int, error) {
	if err := validateLiquidity(balances, amountsOut, "amountsOut", totalBPT, prices); err != nil {
		return nil, nil, err
	}
	for i := range amountsOut {
		if amountsOut[i].Cmp(balances[i]) > 0 {
			return nil, nil, fmt.Errorf(
				"%w: amount out %s exceeds balance %s at index %d",
				ErrInsufficientBalance, amountsOut[i], balances[i], i,
			)
		}
	}

	amountsOutActual := mathutil.CopyVector(amountsOut)

	valueRemoved, err := mathutil.DotProduct(amountsOut, prices)
	if err != nil {
		return nil, nil, wrapMathErr(err)
	}
	if valueRemoved.Sign() == 0 {
		return new(big.Int), amountsOutActual, nil
	}

	if totalBPT.Sign() == 0 {
		return nil, nil, fmt.Errorf("%w: pool share supply is zero", ErrDivisionByZero)
	}

	currentValue, err := mathutil.DotProduct(balances, prices)
	if err != nil {
		return nil, nil, wrapMathErr(err)
	}
	if currentValue.Sign() == 0 {
		return nil, nil, fmt.Errorf("%w: pool value is zero", ErrDivisionByZero)
	}

	bptIn, err := mathutil.MulDivUp(totalBPT, valueRemoved, currentValue)
	if err != nil {
		return nil, nil, wrapMathErr(err)
	}
	return bptIn, amountsOutActual, nil
}

// AmountsInForExactBptOut returns the token amounts to deposit, in the same
// proportion as the current balances, to mint exactly bptOut pool shares:
//
//	amountsIn_i = balances_i * bptOut / totalBPT
//
// Amounts are rounded up so that the value per share never decreases.
func AmountsInForExactBptOut(
	balances []*big.Int, bptOut, totalBPT *big.Int,
) ([]*big.Int, error) {
	if len(balances) == 0 {
		return nil, fmt.Errorf("%w: empty balance vector", ErrDimensionMismatch)
	}
	if err := validateRanges(namedVector{"balances", balances}); err != nil {
		return nil, err
	}
	if err := validateAmounts("bpt", bptOut, totalBPT); err != nil {
		return nil, err
	}

	if bptOut.Sign() == 0 {
		return mathutil.ZeroVector(len(balances)), nil
	}
	if totalBPT.Sign() == 0 {
		return nil, fmt.Errorf("%w: pool share supply is zero", ErrDivisionByZero)
	}

	amountsIn := make([]*big.Int, len(balances))
	for i, b := range balances {
		a, err := mathutil.MulDivUp(b, bptOut, totalBPT)
		if err != nil {
			return nil, wrapMathErr(err)
		}
		amountsIn[i] = a
	}
	return amountsIn, nil
}

func validateLiquidity(
	balances, amounts []*big.Int, amountsName string,
	totalBPT *big.Int, prices []*big.Int,
) error {
	vectors := []namedVector{{"balances", balances}, {amountsName, amounts}}
	if err := validateLengths(len(prices), vectors...); err != nil {
		return err
	}
	if err := validatePrices(prices); err != nil {
		return err
	}
	if err := validateRanges(vectors...); err != nil {
		return err
	}
	return validateAmounts("totalBPT", totalBPT)
}
