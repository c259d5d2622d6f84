package inmemory

import (
	"github.com/tdex-network/stationd/internal/core/domain"
	"github.com/tdex-network/stationd/internal/core/ports"
)

type repoManager struct {
	poolRepository  domain.PoolRepository
	priceRepository domain.PriceRepository
}

func NewRepoManager() ports.RepoManager {
	return &repoManager{
		poolRepository:  NewPoolRepositoryImpl(),
		priceRepository: NewPriceRepositoryImpl(),
	}
}

func (r *repoManager) PoolRepository() domain.PoolRepository {
	return r.poolRepository
}

func (r *repoManager) PriceRepository() domain.PriceRepository {
	return r.priceRepository
}

func (r *repoManager) Close() {}
