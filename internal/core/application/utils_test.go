package application_test

import (
	"context"
	"math/big"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"github.com/tdex-network/stationd/internal/core/application"
	"github.com/tdex-network/stationd/pkg/payload"
	"github.com/tdex-network/stationd/pkg/stats"
)

const (
	tokenA = "0x6B175474E89094C44Da98b954EedeAC495271d0F"
	tokenB = "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"
	tokenC = "0xdAC17F958D2ee523a2206206994597C13D831ec7"
)

var ctx = context.Background()

func newTestConfig(t *testing.T) *application.Config {
	metrics, err := stats.NewMetrics(prometheus.NewRegistry())
	require.NoError(t, err)

	cfg := &application.Config{
		DBType:  application.DBInMemory,
		Metrics: metrics,
	}
	require.NoError(t, cfg.Validate())
	t.Cleanup(cfg.Close)
	return cfg
}

// newPricedPool creates a pool of tokenA and tokenB priced 1 and 2.
func newPricedPool(t *testing.T, cfg *application.Config) string {
	pool, err := cfg.OperatorService().CreatePool(ctx, application.CreatePoolRequest{
		Name:            "a-b",
		Tokens:          []string{tokenA, tokenB},
		Amp:             10,
		WithdrawFeeRate: 20,
	})
	require.NoError(t, err)

	_, err = cfg.OperatorService().UpdatePrices(ctx, application.UpdatePricesRequest{
		PoolID: pool.ID,
		Prices: []string{e18(1).String(), e18(2).String()},
	})
	require.NoError(t, err)
	return pool.ID
}

// newInitializedPool creates a priced pool with balances 10 A and 5 B and
// 20 shares.
func newInitializedPool(t *testing.T, cfg *application.Config) string {
	poolID := newPricedPool(t, cfg)
	_, err := cfg.LiquidityService().Join(ctx, application.LiquidityRequest{
		PoolID:  poolID,
		Payload: joinPayload(t, payload.InitJoin{AmountsIn: []*big.Int{e18(10), e18(5)}}),
	})
	require.NoError(t, err)
	return poolID
}

func joinPayload(t *testing.T, req payload.JoinRequest) string {
	s, err := payload.EncodeJoinHex(req)
	require.NoError(t, err)
	return s
}

func exitPayload(t *testing.T, req payload.ExitRequest) string {
	s, err := payload.EncodeExitHex(req)
	require.NoError(t, err)
	return s
}

func e18(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), big.NewInt(1e18))
}

// e17 returns n * 1e17.
func e17(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), big.NewInt(1e17))
}

func receiveEvent(t *testing.T, ch <-chan application.Event) application.Event {
	select {
	case e := <-ch:
		return e
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for event")
	}
	return application.Event{}
}
