package application

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/tdex-network/stationd/internal/core/domain"
	"github.com/tdex-network/stationd/internal/core/ports"
	"github.com/tdex-network/stationd/pkg/mathutil"
)

// getPrices returns the latest oracle prices of the given pool.
func getPrices(
	ctx context.Context, repoManager ports.RepoManager, pool *domain.Pool,
) ([]*big.Int, error) {
	pv, err := repoManager.PriceRepository().GetPrices(ctx, pool.ID)
	if err != nil {
		if errors.Is(err, domain.ErrPricesNotFound) {
			return nil, ErrPoolNotPriced
		}
		return nil, err
	}
	prices, err := pv.GetPrices()
	if err != nil {
		return nil, err
	}
	if len(prices) != len(pool.Tokens) {
		return nil, fmt.Errorf(
			"%w: got %d prices for %d tokens",
			ErrPricesDimension, len(prices), len(pool.Tokens),
		)
	}
	return prices, nil
}

func getPoolInfo(
	ctx context.Context, repoManager ports.RepoManager, pool domain.Pool,
) (*PoolInfo, error) {
	info := newPoolInfo(pool)

	pv, err := repoManager.PriceRepository().GetPrices(ctx, pool.ID)
	if err != nil {
		if errors.Is(err, domain.ErrPricesNotFound) {
			return info, nil
		}
		return nil, err
	}
	info.Prices = pv.Prices
	info.PricesUpdatedAt = pv.UpdatedAt

	prices, err := pv.GetPrices()
	if err != nil {
		return nil, err
	}
	if value, err := pool.Value(prices); err == nil {
		info.Value = value.String()
	}
	return info, nil
}

func formatAmounts(v []*big.Int) []string {
	return mathutil.FormatAmounts(v)
}
