package dbbadger

import (
	"context"
	"errors"
	"sync"

	"github.com/tdex-network/stationd/internal/core/domain"
	"github.com/timshannon/badgerhold/v4"
)

type poolRepositoryImpl struct {
	store *badgerhold.Store
	// serializes read-modify-write cycles of UpdatePool.
	lock *sync.Mutex
}

// NewPoolRepositoryImpl initialize a badger implementation of the
// domain.PoolRepository
func NewPoolRepositoryImpl(store *badgerhold.Store) domain.PoolRepository {
	return &poolRepositoryImpl{store, &sync.Mutex{}}
}

func (r *poolRepositoryImpl) AddPool(_ context.Context, pool *domain.Pool) error {
	if pool == nil {
		return ErrPoolInvalidRequest
	}
	if err := r.store.Insert(pool.ID, *pool); err != nil {
		if errors.Is(err, badgerhold.ErrKeyExists) {
			return domain.ErrPoolAlreadyExists
		}
		return err
	}
	return nil
}

func (r *poolRepositoryImpl) GetPool(_ context.Context, poolID string) (*domain.Pool, error) {
	var pool domain.Pool
	if err := r.store.Get(poolID, &pool); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, domain.ErrPoolNotFound
		}
		return nil, err
	}
	return &pool, nil
}

func (r *poolRepositoryImpl) GetAllPools(_ context.Context) ([]domain.Pool, error) {
	var pools []domain.Pool
	query := (&badgerhold.Query{}).SortBy("CreatedAt", "ID")
	if err := r.store.Find(&pools, query); err != nil {
		return nil, err
	}
	if pools == nil {
		pools = []domain.Pool{}
	}
	return pools, nil
}

// UpdatePool reads and writes the pool within the same badger transaction,
// nothing is committed if updateFn fails.
func (r *poolRepositoryImpl) UpdatePool(
	_ context.Context,
	poolID string,
	updateFn func(p *domain.Pool) (*domain.Pool, error),
) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	tx := r.store.Badger().NewTransaction(true)
	defer tx.Discard()

	var pool domain.Pool
	if err := r.store.TxGet(tx, poolID, &pool); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return domain.ErrPoolNotFound
		}
		return err
	}

	updatedPool, err := updateFn(&pool)
	if err != nil {
		return err
	}
	if updatedPool == nil {
		return ErrPoolInvalidRequest
	}

	if err := r.store.TxUpdate(tx, poolID, *updatedPool); err != nil {
		return err
	}
	return tx.Commit()
}

// DeletePool shares the lock of UpdatePool so that checkFn and the removal
// can't interleave with an update of the same pool.
func (r *poolRepositoryImpl) DeletePool(
	_ context.Context, poolID string, checkFn func(p *domain.Pool) error,
) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	tx := r.store.Badger().NewTransaction(true)
	defer tx.Discard()

	var pool domain.Pool
	if err := r.store.TxGet(tx, poolID, &pool); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return domain.ErrPoolNotFound
		}
		return err
	}
	if checkFn != nil {
		if err := checkFn(&pool); err != nil {
			return err
		}
	}

	if err := r.store.TxDelete(tx, poolID, domain.Pool{}); err != nil {
		return err
	}
	return tx.Commit()
}
