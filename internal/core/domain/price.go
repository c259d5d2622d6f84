package domain

import (
	"fmt"
	"math/big"
	"time"

	"github.com/tdex-network/stationd/pkg/mathutil"
)

// PriceVector holds the latest oracle prices of a pool, one per token, as
// 18-decimal fixed-point base-10 strings.
type PriceVector struct {
	PoolID    string
	Prices    []string
	UpdatedAt int64
}

// NewPriceVector validates the given prices and returns a price vector for
// the pool.
func NewPriceVector(poolID string, prices []*big.Int) (*PriceVector, error) {
	if len(prices) == 0 {
		return nil, ErrPriceVectorEmpty
	}
	for i, p := range prices {
		if p == nil || p.Sign() <= 0 || !mathutil.InRange(p) {
			return nil, fmt.Errorf("%w: index %d", ErrPriceVectorInvalidPrice, i)
		}
	}
	return &PriceVector{
		PoolID:    poolID,
		Prices:    formatVector(prices),
		UpdatedAt: time.Now().Unix(),
	}, nil
}

// GetPrices returns the prices as integers.
func (pv PriceVector) GetPrices() ([]*big.Int, error) {
	prices, err := parseVector(pv.Prices)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrPriceVectorInvalidPrice, err)
	}
	return prices, nil
}
