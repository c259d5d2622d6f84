package ports

import "github.com/tdex-network/stationd/internal/core/domain"

// RepoManager gives access to the repositories of every persisted entity.
type RepoManager interface {
	PoolRepository() domain.PoolRepository
	PriceRepository() domain.PriceRepository

	Close()
}
