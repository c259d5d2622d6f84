package db_test

import (
	"context"
	"errors"
	"math/big"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tdex-network/stationd/internal/core/domain"
	"github.com/tdex-network/stationd/pkg/payload"
)

var ctx = context.Background()

func TestPoolRepositoryImplementations(t *testing.T) {
	repoManagers := createRepoManagers(t)

	for i := range repoManagers {
		repoManager := repoManagers[i]

		t.Run(repoManager.name, func(t *testing.T) {
			t.Parallel()

			repo := repoManager.PoolRepository()

			t.Run("add_and_get_pool", func(t *testing.T) {
				testAddAndGetPool(t, repo)
			})
			t.Run("get_all_pools", func(t *testing.T) {
				testGetAllPools(t, repo)
			})
			t.Run("update_pool", func(t *testing.T) {
				testUpdatePool(t, repo)
			})
			t.Run("update_pool_rollback", func(t *testing.T) {
				testUpdatePoolRollback(t, repo)
			})
			t.Run("concurrent_updates", func(t *testing.T) {
				testConcurrentUpdates(t, repo)
			})
			t.Run("delete_pool", func(t *testing.T) {
				testDeletePool(t, repo)
			})
		})
	}
}

func TestPriceRepositoryImplementations(t *testing.T) {
	repoManagers := createRepoManagers(t)

	for i := range repoManagers {
		repoManager := repoManagers[i]

		t.Run(repoManager.name, func(t *testing.T) {
			t.Parallel()

			repo := repoManager.PriceRepository()
			poolID := makeRandomPool(t).ID

			_, err := repo.GetPrices(ctx, poolID)
			require.ErrorIs(t, err, domain.ErrPricesNotFound)

			pv, err := domain.NewPriceVector(poolID, []*big.Int{e18(1), e18(2)})
			require.NoError(t, err)
			require.NoError(t, repo.UpdatePrices(ctx, *pv))

			got, err := repo.GetPrices(ctx, poolID)
			require.NoError(t, err)
			require.Equal(t, pv.Prices, got.Prices)
			require.Equal(t, pv.UpdatedAt, got.UpdatedAt)

			pv, err = domain.NewPriceVector(poolID, []*big.Int{e18(3), e18(4)})
			require.NoError(t, err)
			require.NoError(t, repo.UpdatePrices(ctx, *pv))

			got, err = repo.GetPrices(ctx, poolID)
			require.NoError(t, err)
			require.Equal(t, pv.Prices, got.Prices)

			require.NoError(t, repo.DeletePrices(ctx, poolID))
			require.NoError(t, repo.DeletePrices(ctx, poolID))
			_, err = repo.GetPrices(ctx, poolID)
			require.ErrorIs(t, err, domain.ErrPricesNotFound)
		})
	}
}

func testAddAndGetPool(t *testing.T, repo domain.PoolRepository) {
	pool := makeRandomPool(t)

	_, err := repo.GetPool(ctx, pool.ID)
	require.ErrorIs(t, err, domain.ErrPoolNotFound)

	require.NoError(t, repo.AddPool(ctx, pool))

	err = repo.AddPool(ctx, pool)
	require.ErrorIs(t, err, domain.ErrPoolAlreadyExists)

	got, err := repo.GetPool(ctx, pool.ID)
	require.NoError(t, err)
	require.Equal(t, *pool, *got)
}

func testGetAllPools(t *testing.T, repo domain.PoolRepository) {
	pools := []*domain.Pool{makeRandomPool(t), makeRandomPool(t)}
	pools[0].CreatedAt = 1
	pools[1].CreatedAt = 2
	for i := len(pools) - 1; i >= 0; i-- {
		require.NoError(t, repo.AddPool(ctx, pools[i]))
	}

	all, err := repo.GetAllPools(ctx)
	require.NoError(t, err)

	indexes := make(map[string]int)
	for i, p := range all {
		indexes[p.ID] = i
	}
	first, ok := indexes[pools[0].ID]
	require.True(t, ok)
	second, ok := indexes[pools[1].ID]
	require.True(t, ok)
	require.Less(t, first, second)
}

func testUpdatePool(t *testing.T, repo domain.PoolRepository) {
	pool := makeRandomPool(t)
	require.NoError(t, repo.AddPool(ctx, pool))

	err := repo.UpdatePool(ctx, pool.ID, func(p *domain.Pool) (*domain.Pool, error) {
		if _, err := p.Join(
			payload.InitJoin{AmountsIn: []*big.Int{e18(1), e18(2), e18(3)}},
			[]*big.Int{e18(1), e18(1), e18(1)},
		); err != nil {
			return nil, err
		}
		p.ChangeWithdrawFeeRate(50)
		return p, nil
	})
	require.NoError(t, err)

	got, err := repo.GetPool(ctx, pool.ID)
	require.NoError(t, err)
	require.True(t, got.IsInitialized())
	require.Equal(t, uint64(50), got.WithdrawFeeRate)
	require.Equal(t, e18(6).String(), got.TotalBPT)
	require.Equal(t, []string{e18(1).String(), e18(2).String(), e18(3).String()}, got.Balances)

	err = repo.UpdatePool(ctx, "unknown", func(p *domain.Pool) (*domain.Pool, error) {
		return p, nil
	})
	require.ErrorIs(t, err, domain.ErrPoolNotFound)
}

func testUpdatePoolRollback(t *testing.T, repo domain.PoolRepository) {
	pool := makeRandomPool(t)
	require.NoError(t, repo.AddPool(ctx, pool))

	errUpdate := errors.New("update failed")
	err := repo.UpdatePool(ctx, pool.ID, func(p *domain.Pool) (*domain.Pool, error) {
		p.ChangeWithdrawFeeRate(1)
		p.Balances[0] = "1"
		return nil, errUpdate
	})
	require.ErrorIs(t, err, errUpdate)

	got, err := repo.GetPool(ctx, pool.ID)
	require.NoError(t, err)
	require.Equal(t, *pool, *got)
}

func testConcurrentUpdates(t *testing.T, repo domain.PoolRepository) {
	pool := makeRandomPool(t)
	require.NoError(t, repo.AddPool(ctx, pool))

	prices := []*big.Int{e18(1), e18(1), e18(1)}
	err := repo.UpdatePool(ctx, pool.ID, func(p *domain.Pool) (*domain.Pool, error) {
		_, err := p.Join(
			payload.InitJoin{AmountsIn: []*big.Int{e18(10), e18(10), e18(10)}}, prices,
		)
		return p, err
	})
	require.NoError(t, err)

	numOfJoins := 10
	wg := &sync.WaitGroup{}
	wg.Add(numOfJoins)
	for i := 0; i < numOfJoins; i++ {
		go func() {
			defer wg.Done()
			err := repo.UpdatePool(ctx, pool.ID, func(p *domain.Pool) (*domain.Pool, error) {
				_, err := p.Join(
					payload.AllTokensJoin{AmountsIn: []*big.Int{e18(1), e18(0), e18(0)}}, prices,
				)
				return p, err
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := repo.GetPool(ctx, pool.ID)
	require.NoError(t, err)
	require.Equal(t, e18(20).String(), got.Balances[0])
	require.Equal(t, e18(40).String(), got.TotalBPT)
}

func testDeletePool(t *testing.T, repo domain.PoolRepository) {
	pool := makeRandomPool(t)
	require.NoError(t, repo.AddPool(ctx, pool))

	errNotEmpty := errors.New("pool not empty")
	err := repo.DeletePool(ctx, pool.ID, func(p *domain.Pool) error {
		require.Equal(t, pool.ID, p.ID)
		return errNotEmpty
	})
	require.ErrorIs(t, err, errNotEmpty)

	got, err := repo.GetPool(ctx, pool.ID)
	require.NoError(t, err)
	require.Equal(t, pool.ID, got.ID)

	var checked bool
	require.NoError(t, repo.DeletePool(ctx, pool.ID, func(p *domain.Pool) error {
		checked = true
		return nil
	}))
	require.True(t, checked)

	_, err = repo.GetPool(ctx, pool.ID)
	require.ErrorIs(t, err, domain.ErrPoolNotFound)

	err = repo.DeletePool(ctx, pool.ID, nil)
	require.ErrorIs(t, err, domain.ErrPoolNotFound)
}
