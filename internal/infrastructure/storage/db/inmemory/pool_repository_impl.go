package inmemory

import (
	"context"
	"sort"
	"sync"

	"github.com/tdex-network/stationd/internal/core/domain"
)

// PoolRepositoryImpl represents an in memory storage
type PoolRepositoryImpl struct {
	pools map[string]domain.Pool

	lock *sync.RWMutex
}

// NewPoolRepositoryImpl returns a new empty PoolRepositoryImpl
func NewPoolRepositoryImpl() *PoolRepositoryImpl {
	return &PoolRepositoryImpl{
		pools: map[string]domain.Pool{},
		lock:  &sync.RWMutex{},
	}
}

func (r *PoolRepositoryImpl) AddPool(_ context.Context, pool *domain.Pool) error {
	if pool == nil {
		return ErrPoolInvalidRequest
	}

	r.lock.Lock()
	defer r.lock.Unlock()

	if _, ok := r.pools[pool.ID]; ok {
		return domain.ErrPoolAlreadyExists
	}
	r.pools[pool.ID] = *pool.Clone()
	return nil
}

func (r *PoolRepositoryImpl) GetPool(_ context.Context, poolID string) (*domain.Pool, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	return r.getPool(poolID)
}

// GetAllPools returns all pools sorted by creation time.
func (r *PoolRepositoryImpl) GetAllPools(_ context.Context) ([]domain.Pool, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	pools := make([]domain.Pool, 0, len(r.pools))
	for _, p := range r.pools {
		pools = append(pools, *p.Clone())
	}
	sort.SliceStable(pools, func(i, j int) bool {
		if pools[i].CreatedAt == pools[j].CreatedAt {
			return pools[i].ID < pools[j].ID
		}
		return pools[i].CreatedAt < pools[j].CreatedAt
	})
	return pools, nil
}

// UpdatePool runs updateFn while holding the write lock, so that concurrent
// updates are serialized. The stored pool is left untouched if updateFn
// fails.
func (r *PoolRepositoryImpl) UpdatePool(
	_ context.Context,
	poolID string,
	updateFn func(p *domain.Pool) (*domain.Pool, error),
) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	currentPool, err := r.getPool(poolID)
	if err != nil {
		return err
	}

	updatedPool, err := updateFn(currentPool)
	if err != nil {
		return err
	}
	if updatedPool == nil {
		return ErrPoolInvalidRequest
	}

	r.pools[poolID] = *updatedPool.Clone()
	return nil
}

func (r *PoolRepositoryImpl) DeletePool(
	_ context.Context, poolID string, checkFn func(p *domain.Pool) error,
) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	pool, err := r.getPool(poolID)
	if err != nil {
		return err
	}
	if checkFn != nil {
		if err := checkFn(pool); err != nil {
			return err
		}
	}
	delete(r.pools, poolID)
	return nil
}

func (r *PoolRepositoryImpl) getPool(poolID string) (*domain.Pool, error) {
	pool, ok := r.pools[poolID]
	if !ok {
		return nil, domain.ErrPoolNotFound
	}
	return pool.Clone(), nil
}
