package domain

import (
	"fmt"
	"math/big"

	"github.com/tdex-network/stationd/pkg/mathutil"
	"github.com/tdex-network/stationd/pkg/payload"
	"github.com/tdex-network/stationd/pkg/stationmath"
)

type SwapKind int

const (
	// SwapGivenIn swaps an exact amount of the token in.
	SwapGivenIn SwapKind = iota
	// SwapGivenOut swaps for an exact amount of the token out.
	SwapGivenOut
)

func (k SwapKind) String() string {
	switch k {
	case SwapGivenIn:
		return "GivenIn"
	case SwapGivenOut:
		return "GivenOut"
	default:
		return "Unknown"
	}
}

// JoinResult contains the amounts deposited into the pool and the shares
// minted for them.
type JoinResult struct {
	Kind      payload.JoinKind
	AmountsIn []*big.Int
	BptOut    *big.Int
}

// ExitResult contains the outcome of an exit: the shares burned, the amounts
// withdrawn, the fees withheld and the net amounts paid out.
type ExitResult struct {
	BptIn      *big.Int
	AmountsOut []*big.Int
	Fees       []*big.Int
	AmountsNet []*big.Int
}

// SwapResult contains the amounts exchanged by a swap.
type SwapResult struct {
	Kind      SwapKind
	IndexIn   int
	IndexOut  int
	AmountIn  *big.Int
	AmountOut *big.Int
}

// Join deposits tokens into the pool according to the given request and
// mints the related pool shares.
func (p *Pool) Join(req payload.JoinRequest, prices []*big.Int) (*JoinResult, error) {
	balances, err := p.GetBalances()
	if err != nil {
		return nil, err
	}
	totalBPT, err := p.GetTotalBPT()
	if err != nil {
		return nil, err
	}

	var amountsIn []*big.Int
	var bptOut *big.Int

	req = derefJoin(req)
	switch r := req.(type) {
	case payload.InitJoin:
		if p.Initialized {
			return nil, ErrPoolAlreadyInitialized
		}
		amountsIn = r.AmountsIn
		bptOut, err = stationmath.BptOutForAllTokensIn(
			balances, amountsIn, totalBPT, prices,
		)
	case payload.ProportionalJoin:
		if !p.Initialized {
			return nil, ErrPoolNotInitialized
		}
		if r.BptAmountOut == nil || r.BptAmountOut.Sign() == 0 {
			return nil, ErrPoolZeroAmount
		}
		bptOut = r.BptAmountOut
		amountsIn, err = stationmath.AmountsInForExactBptOut(balances, bptOut, totalBPT)
	case payload.AllTokensJoin:
		if !p.Initialized {
			return nil, ErrPoolNotInitialized
		}
		amountsIn = r.AmountsIn
		bptOut, err = stationmath.BptOutForAllTokensIn(
			balances, amountsIn, totalBPT, prices,
		)
	default:
		return nil, fmt.Errorf("%w: join %T", ErrPoolUnknownRequest, req)
	}
	if err != nil {
		return nil, err
	}
	if bptOut.Sign() == 0 {
		return nil, ErrPoolZeroShares
	}

	newBalances := make([]*big.Int, len(balances))
	for i := range balances {
		if newBalances[i], err = mathutil.Add(balances[i], amountsIn[i]); err != nil {
			return nil, fmt.Errorf("%w: balance at index %d", stationmath.ErrArithmeticOverflow, i)
		}
	}
	newTotalBPT, err := mathutil.Add(totalBPT, bptOut)
	if err != nil {
		return nil, fmt.Errorf("%w: total bpt", stationmath.ErrArithmeticOverflow)
	}

	p.setState(newBalances, newTotalBPT)
	p.Initialized = true

	return &JoinResult{
		Kind:      req.Kind(),
		AmountsIn: mathutil.CopyVector(amountsIn),
		BptOut:    new(big.Int).Set(bptOut),
	}, nil
}

// PreviewJoin returns the outcome of a join without changing the pool.
func (p *Pool) PreviewJoin(req payload.JoinRequest, prices []*big.Int) (*JoinResult, error) {
	return p.Clone().Join(req, prices)
}

// Exit withdraws tokens from the pool by burning shares. The withdraw fee is
// withheld from the amounts out and stays in the pool.
func (p *Pool) Exit(req payload.ExitRequest, prices []*big.Int) (*ExitResult, error) {
	if !p.Initialized {
		return nil, ErrPoolNotInitialized
	}

	var amountsOut []*big.Int
	req = derefExit(req)
	switch r := req.(type) {
	case payload.ProportionalExit:
		amountsOut = r.AmountsOut
	default:
		return nil, fmt.Errorf("%w: exit %T", ErrPoolUnknownRequest, req)
	}

	balances, err := p.GetBalances()
	if err != nil {
		return nil, err
	}
	totalBPT, err := p.GetTotalBPT()
	if err != nil {
		return nil, err
	}

	bptIn, amountsOutActual, err := stationmath.BptInForAllTokensOut(
		balances, amountsOut, totalBPT, prices,
	)
	if err != nil {
		return nil, err
	}
	if bptIn.Sign() == 0 {
		return nil, ErrPoolZeroAmount
	}
	if bptIn.Cmp(totalBPT) > 0 {
		return nil, ErrPoolInsufficientShares
	}

	fees, err := stationmath.CalculateWithdrawFee(amountsOutActual, p.WithdrawFeeRate, prices)
	if err != nil {
		return nil, err
	}
	amountsNet, err := mathutil.LessFees(amountsOutActual, fees)
	if err != nil {
		return nil, fmt.Errorf("%w: fee exceeds amount", stationmath.ErrArithmeticOverflow)
	}

	newBalances := make([]*big.Int, len(balances))
	for i := range balances {
		newBalances[i] = new(big.Int).Sub(balances[i], amountsNet[i])
	}
	newTotalBPT := new(big.Int).Sub(totalBPT, bptIn)

	p.setState(newBalances, newTotalBPT)

	return &ExitResult{
		BptIn:      bptIn,
		AmountsOut: amountsOutActual,
		Fees:       fees,
		AmountsNet: amountsNet,
	}, nil
}

// PreviewExit returns the outcome of an exit without changing the pool.
func (p *Pool) PreviewExit(req payload.ExitRequest, prices []*big.Int) (*ExitResult, error) {
	return p.Clone().Exit(req, prices)
}

// Swap exchanges tokens at the given oracle prices. Depending on kind,
// amount is either the exact amount in or the exact amount out.
func (p *Pool) Swap(
	indexIn, indexOut int, amount *big.Int, kind SwapKind, prices []*big.Int,
) (*SwapResult, error) {
	if !p.Initialized {
		return nil, ErrPoolNotInitialized
	}
	if amount == nil || amount.Sign() == 0 {
		return nil, ErrPoolZeroAmount
	}

	balances, err := p.GetBalances()
	if err != nil {
		return nil, err
	}
	if len(prices) != len(balances) {
		return nil, fmt.Errorf(
			"%w: got %d prices for %d tokens",
			stationmath.ErrDimensionMismatch, len(prices), len(balances),
		)
	}

	var amountIn, amountOut *big.Int
	switch kind {
	case SwapGivenIn:
		amountIn = new(big.Int).Set(amount)
		amountOut, err = stationmath.OutGivenIn(indexIn, indexOut, amount, prices)
	case SwapGivenOut:
		amountOut = new(big.Int).Set(amount)
		amountIn, err = stationmath.InGivenOut(indexIn, indexOut, amount, prices)
	default:
		return nil, ErrPoolInvalidSwapKind
	}
	if err != nil {
		return nil, err
	}
	if amountOut.Sign() == 0 {
		return nil, ErrPoolZeroAmount
	}
	if amountOut.Cmp(balances[indexOut]) > 0 {
		return nil, fmt.Errorf(
			"%w: amount out %s exceeds balance %s",
			stationmath.ErrInsufficientBalance, amountOut, balances[indexOut],
		)
	}

	newBalanceIn, err := mathutil.Add(balances[indexIn], amountIn)
	if err != nil {
		return nil, fmt.Errorf("%w: balance in", stationmath.ErrArithmeticOverflow)
	}
	balances[indexIn] = newBalanceIn
	balances[indexOut] = new(big.Int).Sub(balances[indexOut], amountOut)

	totalBPT, err := p.GetTotalBPT()
	if err != nil {
		return nil, err
	}
	p.setState(balances, totalBPT)

	return &SwapResult{
		Kind:      kind,
		IndexIn:   indexIn,
		IndexOut:  indexOut,
		AmountIn:  amountIn,
		AmountOut: amountOut,
	}, nil
}

// PreviewSwap returns the outcome of a swap without changing the pool.
func (p *Pool) PreviewSwap(
	indexIn, indexOut int, amount *big.Int, kind SwapKind, prices []*big.Int,
) (*SwapResult, error) {
	return p.Clone().Swap(indexIn, indexOut, amount, kind, prices)
}

// SwapFee returns the fee for a batch of swaps moving amountsIn into and
// amountsOut out of the pool.
func (p *Pool) SwapFee(amountsIn, amountsOut, prices []*big.Int) (*big.Int, error) {
	balances, err := p.GetBalances()
	if err != nil {
		return nil, err
	}
	return stationmath.CalculateSwapFeeAmount(
		balances, amountsIn, amountsOut, p.Amp, prices,
	)
}

// Value returns Σ(balances_i * prices_i) / 1e18, the pool value in the
// oracle unit of account.
func (p *Pool) Value(prices []*big.Int) (*big.Int, error) {
	balances, err := p.GetBalances()
	if err != nil {
		return nil, err
	}
	if len(prices) != len(balances) {
		return nil, stationmath.ErrDimensionMismatch
	}
	v, err := mathutil.DotProduct(balances, prices)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", stationmath.ErrArithmeticOverflow, err)
	}
	return new(big.Int).Quo(v, mathutil.One), nil
}

// derefJoin turns pointer requests into their value form. Nil pointers are
// returned untouched and rejected as unknown requests.
func derefJoin(req payload.JoinRequest) payload.JoinRequest {
	switch r := req.(type) {
	case *payload.InitJoin:
		if r != nil {
			return *r
		}
	case *payload.ProportionalJoin:
		if r != nil {
			return *r
		}
	case *payload.AllTokensJoin:
		if r != nil {
			return *r
		}
	}
	return req
}

func derefExit(req payload.ExitRequest) payload.ExitRequest {
	if r, ok := req.(*payload.ProportionalExit); ok && r != nil {
		return *r
	}
	return req
}
