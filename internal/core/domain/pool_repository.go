package domain

import "context"

// PoolRepository is the abstraction for any kind of database intended to
// persist Pools.
type PoolRepository interface {
	// AddPool adds a new pool to the repository.
	AddPool(ctx context.Context, pool *Pool) error
	// GetPool returns the pool with the given id.
	GetPool(ctx context.Context, poolID string) (*Pool, error)
	// GetAllPools returns all pools.
	GetAllPools(ctx context.Context) ([]Pool, error)
	// UpdatePool updates the state of a pool. The closure function runs
	// against a consistent snapshot and the returned pool is committed
	// atomically, concurrent updates to the same pool are serialized.
	UpdatePool(
		ctx context.Context,
		poolID string, updateFn func(p *Pool) (*Pool, error),
	) error
	// DeletePool removes a pool from the repository. checkFn, if not nil,
	// runs against the current pool with the same isolation of UpdatePool
	// and the pool is kept if it returns an error.
	DeletePool(
		ctx context.Context, poolID string, checkFn func(p *Pool) error,
	) error
}

// PriceRepository persists the latest price vector of every pool.
type PriceRepository interface {
	// UpdatePrices stores the given price vector, replacing the previous one.
	UpdatePrices(ctx context.Context, prices PriceVector) error
	// GetPrices returns the latest price vector of a pool.
	GetPrices(ctx context.Context, poolID string) (*PriceVector, error)
	// DeletePrices removes the price vector of a pool, if any.
	DeletePrices(ctx context.Context, poolID string) error
}
