package application

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/stationd/internal/core/domain"
	"github.com/tdex-network/stationd/internal/core/ports"
	"github.com/tdex-network/stationd/pkg/stats"
)

type OperatorService interface {
	CreatePool(ctx context.Context, req CreatePoolRequest) (*PoolInfo, error)
	GetPool(ctx context.Context, poolID string) (*PoolInfo, error)
	ListPools(ctx context.Context) ([]PoolInfo, error)
	UpdatePrices(ctx context.Context, req UpdatePricesRequest) (*domain.PriceVector, error)
	UpdateWithdrawFeeRate(
		ctx context.Context, req UpdateWithdrawFeeRateRequest,
	) (*PoolInfo, error)
	DropPool(ctx context.Context, poolID string) error
}

type operatorService struct {
	repoManager ports.RepoManager
	pubsub      PubSubService
	metrics     *stats.Metrics
}

func NewOperatorService(
	repoManager ports.RepoManager, pubsub PubSubService, metrics *stats.Metrics,
) OperatorService {
	return &operatorService{repoManager, pubsub, metrics}
}

func (o *operatorService) CreatePool(
	ctx context.Context, req CreatePoolRequest,
) (info *PoolInfo, err error) {
	defer func(start time.Time) {
		o.metrics.Observe("create_pool", start, err)
	}(time.Now())

	if err := req.Validate(); err != nil {
		return nil, wrapValidationErr(err)
	}

	pool, err := domain.NewPool(req.Name, req.Tokens, req.Amp, req.WithdrawFeeRate)
	if err != nil {
		return nil, err
	}
	if err := o.repoManager.PoolRepository().AddPool(ctx, pool); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"pool":   pool.ID,
		"name":   pool.Name,
		"tokens": pool.Tokens,
	}).Info("created pool")

	return newPoolInfo(*pool), nil
}

func (o *operatorService) GetPool(
	ctx context.Context, poolID string,
) (*PoolInfo, error) {
	pool, err := o.repoManager.PoolRepository().GetPool(ctx, poolID)
	if err != nil {
		return nil, err
	}
	return getPoolInfo(ctx, o.repoManager, *pool)
}

func (o *operatorService) ListPools(ctx context.Context) ([]PoolInfo, error) {
	pools, err := o.repoManager.PoolRepository().GetAllPools(ctx)
	if err != nil {
		return nil, err
	}

	infos := make([]PoolInfo, 0, len(pools))
	for _, pool := range pools {
		info, err := getPoolInfo(ctx, o.repoManager, pool)
		if err != nil {
			return nil, err
		}
		infos = append(infos, *info)
	}
	return infos, nil
}

func (o *operatorService) UpdatePrices(
	ctx context.Context, req UpdatePricesRequest,
) (pv *domain.PriceVector, err error) {
	defer func(start time.Time) {
		o.metrics.Observe("update_prices", start, err)
	}(time.Now())

	if err := req.Validate(); err != nil {
		return nil, wrapValidationErr(err)
	}
	prices, err := parseAmounts(req.Prices)
	if err != nil {
		return nil, err
	}

	// Prices are stored while the pool is locked so that they can't outlive
	// a concurrent DropPool.
	if err := o.repoManager.PoolRepository().UpdatePool(
		ctx, req.PoolID, func(p *domain.Pool) (*domain.Pool, error) {
			if len(prices) != len(p.Tokens) {
				return nil, ErrPricesDimension
			}
			pv, err = domain.NewPriceVector(p.ID, prices)
			if err != nil {
				return nil, err
			}
			if err := o.repoManager.PriceRepository().UpdatePrices(ctx, *pv); err != nil {
				return nil, err
			}
			return p, nil
		},
	); err != nil {
		return nil, err
	}

	o.metrics.PricesUpdated(pv.PoolID)
	o.pubsub.Publish(EventPricesUpdated, map[string]interface{}{
		"pool_id":    pv.PoolID,
		"prices":     pv.Prices,
		"updated_at": pv.UpdatedAt,
	})

	log.WithField("pool", pv.PoolID).Debugf("updated prices %v", pv.Prices)
	return pv, nil
}

func (o *operatorService) UpdateWithdrawFeeRate(
	ctx context.Context, req UpdateWithdrawFeeRateRequest,
) (*PoolInfo, error) {
	if err := req.Validate(); err != nil {
		return nil, wrapValidationErr(err)
	}

	var updated domain.Pool
	if err := o.repoManager.PoolRepository().UpdatePool(
		ctx, req.PoolID, func(p *domain.Pool) (*domain.Pool, error) {
			p.ChangeWithdrawFeeRate(req.Rate)
			updated = *p
			return p, nil
		},
	); err != nil {
		return nil, err
	}

	log.WithField("pool", req.PoolID).Infof("withdraw fee rate set to %d", req.Rate)
	return getPoolInfo(ctx, o.repoManager, updated)
}

// DropPool removes a pool and its prices. Only pools without outstanding
// shares can be dropped.
func (o *operatorService) DropPool(ctx context.Context, poolID string) error {
	if err := o.repoManager.PoolRepository().DeletePool(
		ctx, poolID, func(p *domain.Pool) error {
			totalBPT, err := p.GetTotalBPT()
			if err != nil {
				return err
			}
			if totalBPT.Sign() > 0 {
				return ErrPoolNotEmpty
			}
			return nil
		},
	); err != nil {
		return err
	}
	if err := o.repoManager.PriceRepository().DeletePrices(ctx, poolID); err != nil {
		return err
	}

	log.WithField("pool", poolID).Info("dropped pool")
	return nil
}
