package application

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/stationd/internal/core/domain"
	"github.com/tdex-network/stationd/internal/core/ports"
	"github.com/tdex-network/stationd/pkg/stats"
)

type TradeService interface {
	PreviewSwap(ctx context.Context, req SwapRequest) (*SwapInfo, error)
	Swap(ctx context.Context, req SwapRequest) (*SwapInfo, error)
	QuoteSwapFee(ctx context.Context, req SwapFeeRequest) (*SwapFeeInfo, error)
}

type tradeService struct {
	repoManager ports.RepoManager
	pubsub      PubSubService
	metrics     *stats.Metrics
}

func NewTradeService(
	repoManager ports.RepoManager, pubsub PubSubService, metrics *stats.Metrics,
) TradeService {
	return &tradeService{repoManager, pubsub, metrics}
}

// PreviewSwap returns the amounts a swap would exchange at the current
// oracle prices without changing the pool.
func (t *tradeService) PreviewSwap(
	ctx context.Context, req SwapRequest,
) (*SwapInfo, error) {
	if err := req.Validate(); err != nil {
		return nil, wrapValidationErr(err)
	}

	pool, err := t.repoManager.PoolRepository().GetPool(ctx, req.PoolID)
	if err != nil {
		return nil, err
	}
	prices, err := getPrices(ctx, t.repoManager, pool)
	if err != nil {
		return nil, err
	}
	indexIn, indexOut, err := swapIndexes(pool, req)
	if err != nil {
		return nil, err
	}
	amount, err := parseAmounts([]string{req.Amount})
	if err != nil {
		return nil, err
	}

	result, err := pool.PreviewSwap(indexIn, indexOut, amount[0], req.swapKind(), prices)
	if err != nil {
		return nil, err
	}
	return newSwapInfo(pool, req, result), nil
}

// Swap exchanges tokens with the pool at the current oracle prices.
func (t *tradeService) Swap(
	ctx context.Context, req SwapRequest,
) (info *SwapInfo, err error) {
	defer func(start time.Time) {
		t.metrics.Observe("swap", start, err)
	}(time.Now())

	if err := req.Validate(); err != nil {
		return nil, wrapValidationErr(err)
	}
	amount, err := parseAmounts([]string{req.Amount})
	if err != nil {
		return nil, err
	}

	if err := t.repoManager.PoolRepository().UpdatePool(
		ctx, req.PoolID, func(p *domain.Pool) (*domain.Pool, error) {
			prices, err := getPrices(ctx, t.repoManager, p)
			if err != nil {
				return nil, err
			}
			indexIn, indexOut, err := swapIndexes(p, req)
			if err != nil {
				return nil, err
			}
			result, err := p.Swap(indexIn, indexOut, amount[0], req.swapKind(), prices)
			if err != nil {
				return nil, err
			}
			info = newSwapInfo(p, req, result)
			return p, nil
		},
	); err != nil {
		return nil, err
	}

	t.metrics.Swap(info.PoolID, info.Kind)
	t.pubsub.Publish(EventPoolSwap, info)

	log.WithFields(log.Fields{
		"pool":       info.PoolID,
		"kind":       info.Kind,
		"amount_in":  info.AmountIn,
		"amount_out": info.AmountOut,
	}).Debug("swap executed")

	return info, nil
}

// QuoteSwapFee returns the fee owed for a batch of swaps moving the given
// amounts into and out of the pool.
func (t *tradeService) QuoteSwapFee(
	ctx context.Context, req SwapFeeRequest,
) (*SwapFeeInfo, error) {
	if err := req.Validate(); err != nil {
		return nil, wrapValidationErr(err)
	}
	amountsIn, err := parseAmounts(req.AmountsIn)
	if err != nil {
		return nil, err
	}
	amountsOut, err := parseAmounts(req.AmountsOut)
	if err != nil {
		return nil, err
	}

	pool, err := t.repoManager.PoolRepository().GetPool(ctx, req.PoolID)
	if err != nil {
		return nil, err
	}
	prices, err := getPrices(ctx, t.repoManager, pool)
	if err != nil {
		return nil, err
	}

	fee, err := pool.SwapFee(amountsIn, amountsOut, prices)
	if err != nil {
		return nil, err
	}
	return &SwapFeeInfo{PoolID: pool.ID, Fee: fee.String()}, nil
}

func swapIndexes(pool *domain.Pool, req SwapRequest) (int, int, error) {
	indexIn, err := pool.TokenIndex(req.TokenIn)
	if err != nil {
		return -1, -1, err
	}
	indexOut, err := pool.TokenIndex(req.TokenOut)
	if err != nil {
		return -1, -1, err
	}
	return indexIn, indexOut, nil
}

func newSwapInfo(
	pool *domain.Pool, req SwapRequest, result *domain.SwapResult,
) *SwapInfo {
	return &SwapInfo{
		PoolID:    pool.ID,
		TokenIn:   pool.Tokens[result.IndexIn],
		TokenOut:  pool.Tokens[result.IndexOut],
		Kind:      req.Kind,
		AmountIn:  result.AmountIn.String(),
		AmountOut: result.AmountOut.String(),
	}
}
