package dbbadger

import (
	"context"
	"errors"

	"github.com/tdex-network/stationd/internal/core/domain"
	"github.com/timshannon/badgerhold/v4"
)

type priceRepositoryImpl struct {
	store *badgerhold.Store
}

// NewPriceRepositoryImpl initialize a badger implementation of the
// domain.PriceRepository
func NewPriceRepositoryImpl(store *badgerhold.Store) domain.PriceRepository {
	return &priceRepositoryImpl{store}
}

func (r *priceRepositoryImpl) UpdatePrices(
	_ context.Context, prices domain.PriceVector,
) error {
	return r.store.Upsert(prices.PoolID, prices)
}

func (r *priceRepositoryImpl) GetPrices(
	_ context.Context, poolID string,
) (*domain.PriceVector, error) {
	var prices domain.PriceVector
	if err := r.store.Get(poolID, &prices); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, domain.ErrPricesNotFound
		}
		return nil, err
	}
	return &prices, nil
}

func (r *priceRepositoryImpl) DeletePrices(_ context.Context, poolID string) error {
	if err := r.store.Delete(poolID, domain.PriceVector{}); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil
		}
		return err
	}
	return nil
}
