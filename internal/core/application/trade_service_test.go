package application_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/tdex-network/stationd/internal/core/application"
	"github.com/tdex-network/stationd/internal/core/domain"
	"github.com/tdex-network/stationd/pkg/stationmath"
)

func TestSwap(t *testing.T) {
	cfg := newTestConfig(t)
	poolID := newInitializedPool(t, cfg)
	tradeSvc := cfg.TradeService()

	events, stop := cfg.PubSubService().Listen(application.EventAny)
	defer stop()

	tests := []struct {
		name              string
		req               application.SwapRequest
		expectedAmountIn  string
		expectedAmountOut string
		expectedBalances  []string
	}{
		{
			name: "given_in",
			req: application.SwapRequest{
				PoolID:   poolID,
				TokenIn:  tokenA,
				TokenOut: tokenB,
				Kind:     application.SwapGivenIn,
				Amount:   e18(1).String(),
			},
			expectedAmountIn:  e18(1).String(),
			expectedAmountOut: e17(5).String(),
			expectedBalances:  []string{e18(11).String(), e17(45).String()},
		},
		{
			name: "given_out",
			req: application.SwapRequest{
				PoolID:   poolID,
				TokenIn:  tokenA,
				TokenOut: tokenB,
				Kind:     application.SwapGivenOut,
				Amount:   e18(1).String(),
			},
			expectedAmountIn:  e18(2).String(),
			expectedAmountOut: e18(1).String(),
			expectedBalances:  []string{e18(13).String(), e17(35).String()},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			preview, err := tradeSvc.PreviewSwap(ctx, tt.req)
			require.NoError(t, err)
			require.Equal(t, tt.expectedAmountIn, preview.AmountIn)
			require.Equal(t, tt.expectedAmountOut, preview.AmountOut)

			swap, err := tradeSvc.Swap(ctx, tt.req)
			require.NoError(t, err)
			require.Equal(t, *preview, *swap)

			event := receiveEvent(t, events)
			require.Equal(t, application.EventPoolSwap, event.Topic)
			require.Equal(t, swap, event.Data)

			pool, err := cfg.OperatorService().GetPool(ctx, poolID)
			require.NoError(t, err)
			require.Equal(t, tt.expectedBalances, pool.Balances)
			require.Equal(t, e18(20).String(), pool.TotalBPT)
		})
	}
}

func TestFailingSwap(t *testing.T) {
	cfg := newTestConfig(t)
	poolID := newInitializedPool(t, cfg)
	emptyPoolID := newPricedPool(t, cfg)
	tradeSvc := cfg.TradeService()

	unknownToken := "0x0000000000000000000000000000000000000001"

	tests := []struct {
		name string
		req  application.SwapRequest
		err  error
	}{
		{
			name: "invalid_kind",
			req:  swapRequest(poolID, tokenA, tokenB, "EXACT", e18(1).String()),
			err:  application.ErrInvalidRequest,
		},
		{
			name: "same_token",
			req:  swapRequest(poolID, tokenA, tokenA, application.SwapGivenIn, e18(1).String()),
			err:  application.ErrInvalidRequest,
		},
		{
			name: "zero_amount",
			req:  swapRequest(poolID, tokenA, tokenB, application.SwapGivenIn, "0"),
			err:  application.ErrInvalidRequest,
		},
		{
			name: "unknown_pool",
			req:  swapRequest(uuid.New().String(), tokenA, tokenB, application.SwapGivenIn, "1"),
			err:  domain.ErrPoolNotFound,
		},
		{
			name: "unknown_token",
			req:  swapRequest(poolID, unknownToken, tokenB, application.SwapGivenIn, "1"),
			err:  domain.ErrPoolUnknownToken,
		},
		{
			name: "not_initialized",
			req:  swapRequest(emptyPoolID, tokenA, tokenB, application.SwapGivenIn, "1"),
			err:  domain.ErrPoolNotInitialized,
		},
		{
			name: "insufficient_balance",
			req:  swapRequest(poolID, tokenA, tokenB, application.SwapGivenIn, e18(11).String()),
			err:  stationmath.ErrInsufficientBalance,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tradeSvc.PreviewSwap(ctx, tt.req)
			require.ErrorIs(t, err, tt.err)

			_, err = tradeSvc.Swap(ctx, tt.req)
			require.ErrorIs(t, err, tt.err)
		})
	}

	pool, err := cfg.OperatorService().GetPool(ctx, poolID)
	require.NoError(t, err)
	require.Equal(t, []string{e18(10).String(), e18(5).String()}, pool.Balances)
}

func TestSwapNotPriced(t *testing.T) {
	cfg := newTestConfig(t)
	pool, err := cfg.OperatorService().CreatePool(ctx, application.CreatePoolRequest{
		Name:   "unpriced",
		Tokens: []string{tokenA, tokenB},
		Amp:    1,
	})
	require.NoError(t, err)

	_, err = cfg.TradeService().PreviewSwap(
		ctx, swapRequest(pool.ID, tokenA, tokenB, application.SwapGivenIn, "1"),
	)
	require.ErrorIs(t, err, application.ErrPoolNotPriced)
}

func TestQuoteSwapFee(t *testing.T) {
	cfg := newTestConfig(t)
	poolID := newInitializedPool(t, cfg)

	fee, err := cfg.TradeService().QuoteSwapFee(ctx, application.SwapFeeRequest{
		PoolID:     poolID,
		AmountsIn:  []string{e18(1).String(), "0"},
		AmountsOut: []string{"0", e17(5).String()},
	})
	require.NoError(t, err)
	require.Equal(t, e17(5).String(), fee.Fee)

	_, err = cfg.TradeService().QuoteSwapFee(ctx, application.SwapFeeRequest{
		PoolID:     poolID,
		AmountsIn:  []string{e18(1).String()},
		AmountsOut: []string{"0", e17(5).String()},
	})
	require.ErrorIs(t, err, stationmath.ErrDimensionMismatch)
}

func swapRequest(poolID, tokenIn, tokenOut, kind, amount string) application.SwapRequest {
	return application.SwapRequest{
		PoolID:   poolID,
		TokenIn:  tokenIn,
		TokenOut: tokenOut,
		Kind:     kind,
		Amount:   amount,
	}
}
