package postgresdb

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/tdex-network/stationd/internal/core/domain"
)

const (
	upsertPricesQuery = `INSERT INTO price_vector (pool_id, prices, updated_at)
VALUES ($1, $2, $3)
ON CONFLICT (pool_id) DO UPDATE SET prices = EXCLUDED.prices, updated_at = EXCLUDED.updated_at`

	selectPricesQuery = `SELECT pool_id, prices, updated_at FROM price_vector WHERE pool_id = $1`

	deletePricesQuery = `DELETE FROM price_vector WHERE pool_id = $1`
)

type priceRepositoryImpl struct {
	db *pgxpool.Pool
}

func NewPriceRepositoryImpl(db *pgxpool.Pool) domain.PriceRepository {
	return &priceRepositoryImpl{db}
}

func (r *priceRepositoryImpl) UpdatePrices(
	ctx context.Context, prices domain.PriceVector,
) error {
	_, err := r.db.Exec(
		ctx, upsertPricesQuery, prices.PoolID, prices.Prices, prices.UpdatedAt,
	)
	return err
}

func (r *priceRepositoryImpl) GetPrices(
	ctx context.Context, poolID string,
) (*domain.PriceVector, error) {
	var prices domain.PriceVector
	if err := r.db.QueryRow(ctx, selectPricesQuery, poolID).Scan(
		&prices.PoolID, &prices.Prices, &prices.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPricesNotFound
		}
		return nil, err
	}
	return &prices, nil
}

func (r *priceRepositoryImpl) DeletePrices(ctx context.Context, poolID string) error {
	_, err := r.db.Exec(ctx, deletePricesQuery, poolID)
	return err
}
