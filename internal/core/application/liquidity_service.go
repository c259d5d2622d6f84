package application

import (
	"context"
	"math/big"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/stationd/internal/core/domain"
	"github.com/tdex-network/stationd/internal/core/ports"
	"github.com/tdex-network/stationd/pkg/payload"
	"github.com/tdex-network/stationd/pkg/stats"
)

// LiquidityService adds and removes liquidity with encoded join and exit
// payloads. Payloads are decoded once here and the typed requests are
// handed to the pool.
type LiquidityService interface {
	PreviewJoin(ctx context.Context, req LiquidityRequest) (*JoinInfo, error)
	Join(ctx context.Context, req LiquidityRequest) (*JoinInfo, error)
	PreviewExit(ctx context.Context, req LiquidityRequest) (*ExitInfo, error)
	Exit(ctx context.Context, req LiquidityRequest) (*ExitInfo, error)
}

type liquidityService struct {
	repoManager ports.RepoManager
	pubsub      PubSubService
	metrics     *stats.Metrics
}

func NewLiquidityService(
	repoManager ports.RepoManager, pubsub PubSubService, metrics *stats.Metrics,
) LiquidityService {
	return &liquidityService{repoManager, pubsub, metrics}
}

func (l *liquidityService) PreviewJoin(
	ctx context.Context, req LiquidityRequest,
) (*JoinInfo, error) {
	joinReq, err := decodeJoin(req)
	if err != nil {
		return nil, err
	}

	pool, err := l.repoManager.PoolRepository().GetPool(ctx, req.PoolID)
	if err != nil {
		return nil, err
	}
	prices, err := l.joinPrices(ctx, pool, joinReq)
	if err != nil {
		return nil, err
	}

	result, err := pool.PreviewJoin(joinReq, prices)
	if err != nil {
		return nil, err
	}
	return newJoinInfo(pool.ID, result, pool.TotalBPT, true), nil
}

func (l *liquidityService) Join(
	ctx context.Context, req LiquidityRequest,
) (info *JoinInfo, err error) {
	defer func(start time.Time) {
		l.metrics.Observe("join", start, err)
	}(time.Now())

	joinReq, err := decodeJoin(req)
	if err != nil {
		return nil, err
	}

	if err := l.repoManager.PoolRepository().UpdatePool(
		ctx, req.PoolID, func(p *domain.Pool) (*domain.Pool, error) {
			prices, err := l.joinPrices(ctx, p, joinReq)
			if err != nil {
				return nil, err
			}
			result, err := p.Join(joinReq, prices)
			if err != nil {
				return nil, err
			}
			info = newJoinInfo(p.ID, result, p.TotalBPT, false)
			return p, nil
		},
	); err != nil {
		return nil, err
	}

	l.metrics.Join(info.PoolID, info.Kind)
	l.pubsub.Publish(EventPoolJoin, info)

	log.WithFields(log.Fields{
		"pool":    info.PoolID,
		"kind":    info.Kind,
		"bpt_out": info.BptOut,
	}).Debug("join executed")

	return info, nil
}

func (l *liquidityService) PreviewExit(
	ctx context.Context, req LiquidityRequest,
) (*ExitInfo, error) {
	exitReq, err := decodeExit(req)
	if err != nil {
		return nil, err
	}

	pool, err := l.repoManager.PoolRepository().GetPool(ctx, req.PoolID)
	if err != nil {
		return nil, err
	}
	prices, err := getPrices(ctx, l.repoManager, pool)
	if err != nil {
		return nil, err
	}

	result, err := pool.PreviewExit(exitReq, prices)
	if err != nil {
		return nil, err
	}
	totalBPT, err := pool.GetTotalBPT()
	if err != nil {
		return nil, err
	}
	return newExitInfo(
		pool.ID, result, new(big.Int).Sub(totalBPT, result.BptIn).String(),
	), nil
}

func (l *liquidityService) Exit(
	ctx context.Context, req LiquidityRequest,
) (info *ExitInfo, err error) {
	defer func(start time.Time) {
		l.metrics.Observe("exit", start, err)
	}(time.Now())

	exitReq, err := decodeExit(req)
	if err != nil {
		return nil, err
	}

	if err := l.repoManager.PoolRepository().UpdatePool(
		ctx, req.PoolID, func(p *domain.Pool) (*domain.Pool, error) {
			prices, err := getPrices(ctx, l.repoManager, p)
			if err != nil {
				return nil, err
			}
			result, err := p.Exit(exitReq, prices)
			if err != nil {
				return nil, err
			}
			info = newExitInfo(p.ID, result, p.TotalBPT)
			return p, nil
		},
	); err != nil {
		return nil, err
	}

	l.metrics.Exit(info.PoolID)
	l.pubsub.Publish(EventPoolExit, info)

	log.WithFields(log.Fields{
		"pool":   info.PoolID,
		"bpt_in": info.BptIn,
	}).Debug("exit executed")

	return info, nil
}

// joinPrices returns the oracle prices needed by the given join request.
// Proportional joins don't depend on prices and work on unpriced pools.
func (l *liquidityService) joinPrices(
	ctx context.Context, pool *domain.Pool, req payload.JoinRequest,
) ([]*big.Int, error) {
	if req.Kind() == payload.JoinProportionalIn {
		return nil, nil
	}
	return getPrices(ctx, l.repoManager, pool)
}

func decodeJoin(req LiquidityRequest) (payload.JoinRequest, error) {
	if err := req.Validate(); err != nil {
		return nil, wrapValidationErr(err)
	}
	return payload.DecodeJoinHex(req.Payload)
}

func decodeExit(req LiquidityRequest) (payload.ExitRequest, error) {
	if err := req.Validate(); err != nil {
		return nil, wrapValidationErr(err)
	}
	return payload.DecodeExitHex(req.Payload)
}

// newJoinInfo builds the join summary. When preview is set, totalBPT is the
// supply before the join and the minted shares are added to it.
func newJoinInfo(
	poolID string, result *domain.JoinResult, totalBPT string, preview bool,
) *JoinInfo {
	total := totalBPT
	if preview {
		if supply, ok := new(big.Int).SetString(totalBPT, 10); ok {
			total = supply.Add(supply, result.BptOut).String()
		}
	}
	return &JoinInfo{
		PoolID:    poolID,
		Kind:      result.Kind.String(),
		AmountsIn: formatAmounts(result.AmountsIn),
		BptOut:    result.BptOut.String(),
		TotalBPT:  total,
	}
}

func newExitInfo(poolID string, result *domain.ExitResult, totalBPT string) *ExitInfo {
	return &ExitInfo{
		PoolID:     poolID,
		BptIn:      result.BptIn.String(),
		AmountsOut: formatAmounts(result.AmountsOut),
		Fees:       formatAmounts(result.Fees),
		AmountsNet: formatAmounts(result.AmountsNet),
		TotalBPT:   totalBPT,
	}
}
