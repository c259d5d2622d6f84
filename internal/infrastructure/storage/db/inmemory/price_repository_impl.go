package inmemory

import (
	"context"
	"sync"

	"github.com/tdex-network/stationd/internal/core/domain"
)

type PriceRepositoryImpl struct {
	prices map[string]domain.PriceVector

	lock *sync.RWMutex
}

func NewPriceRepositoryImpl() *PriceRepositoryImpl {
	return &PriceRepositoryImpl{
		prices: map[string]domain.PriceVector{},
		lock:   &sync.RWMutex{},
	}
}

func (r *PriceRepositoryImpl) UpdatePrices(
	_ context.Context, prices domain.PriceVector,
) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	prices.Prices = append([]string(nil), prices.Prices...)
	r.prices[prices.PoolID] = prices
	return nil
}

func (r *PriceRepositoryImpl) GetPrices(
	_ context.Context, poolID string,
) (*domain.PriceVector, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	prices, ok := r.prices[poolID]
	if !ok {
		return nil, domain.ErrPricesNotFound
	}
	prices.Prices = append([]string(nil), prices.Prices...)
	return &prices, nil
}

func (r *PriceRepositoryImpl) DeletePrices(_ context.Context, poolID string) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	delete(r.prices, poolID)
	return nil
}
