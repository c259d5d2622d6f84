package httpinterface

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/tdex-network/stationd/internal/core/application"
)

const maxBodySize = 1 << 20

type handler struct {
	operatorSvc  application.OperatorService
	tradeSvc     application.TradeService
	liquiditySvc application.LiquidityService
	pubsubSvc    application.PubSubService
}

func newHandler(
	operatorSvc application.OperatorService,
	tradeSvc application.TradeService,
	liquiditySvc application.LiquidityService,
	pubsubSvc application.PubSubService,
) *handler {
	return &handler{operatorSvc, tradeSvc, liquiditySvc, pubsubSvc}
}

type listPoolsResponse struct {
	Pools []application.PoolInfo `json:"pools"`
}

type pricesResponse struct {
	PoolID    string   `json:"pool_id"`
	Prices    []string `json:"prices"`
	UpdatedAt int64    `json:"updated_at"`
}

type addWebhookResponse struct {
	ID string `json:"id"`
}

type listWebhooksResponse struct {
	Webhooks []application.WebhookInfo `json:"webhooks"`
}

func (h *handler) createPool(w http.ResponseWriter, r *http.Request) {
	var req application.CreatePoolRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	pool, err := h.operatorSvc.CreatePool(r.Context(), req)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, pool)
}

func (h *handler) listPools(w http.ResponseWriter, r *http.Request) {
	pools, err := h.operatorSvc.ListPools(r.Context())
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listPoolsResponse{pools})
}

func (h *handler) getPool(w http.ResponseWriter, r *http.Request) {
	pool, err := h.operatorSvc.GetPool(r.Context(), poolID(r))
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pool)
}

func (h *handler) dropPool(w http.ResponseWriter, r *http.Request) {
	if err := h.operatorSvc.DropPool(r.Context(), poolID(r)); err != nil {
		writeAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) updatePrices(w http.ResponseWriter, r *http.Request) {
	var req application.UpdatePricesRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	req.PoolID = poolID(r)

	prices, err := h.operatorSvc.UpdatePrices(r.Context(), req)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pricesResponse{
		PoolID:    prices.PoolID,
		Prices:    prices.Prices,
		UpdatedAt: prices.UpdatedAt,
	})
}

func (h *handler) updateWithdrawFeeRate(w http.ResponseWriter, r *http.Request) {
	var req application.UpdateWithdrawFeeRateRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	req.PoolID = poolID(r)

	pool, err := h.operatorSvc.UpdateWithdrawFeeRate(r.Context(), req)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pool)
}

func (h *handler) previewSwap(w http.ResponseWriter, r *http.Request) {
	h.doSwap(w, r, h.tradeSvc.PreviewSwap)
}

func (h *handler) swap(w http.ResponseWriter, r *http.Request) {
	h.doSwap(w, r, h.tradeSvc.Swap)
}

func (h *handler) quoteSwapFee(w http.ResponseWriter, r *http.Request) {
	var req application.SwapFeeRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	req.PoolID = poolID(r)

	fee, err := h.tradeSvc.QuoteSwapFee(r.Context(), req)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, fee)
}

func (h *handler) previewJoin(w http.ResponseWriter, r *http.Request) {
	h.doLiquidity(w, r, func(req application.LiquidityRequest) (interface{}, error) {
		return h.liquiditySvc.PreviewJoin(r.Context(), req)
	})
}

func (h *handler) join(w http.ResponseWriter, r *http.Request) {
	h.doLiquidity(w, r, func(req application.LiquidityRequest) (interface{}, error) {
		return h.liquiditySvc.Join(r.Context(), req)
	})
}

func (h *handler) previewExit(w http.ResponseWriter, r *http.Request) {
	h.doLiquidity(w, r, func(req application.LiquidityRequest) (interface{}, error) {
		return h.liquiditySvc.PreviewExit(r.Context(), req)
	})
}

func (h *handler) exit(w http.ResponseWriter, r *http.Request) {
	h.doLiquidity(w, r, func(req application.LiquidityRequest) (interface{}, error) {
		return h.liquiditySvc.Exit(r.Context(), req)
	})
}

func (h *handler) addWebhook(w http.ResponseWriter, r *http.Request) {
	var req application.AddWebhookRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	id, err := h.pubsubSvc.AddWebhook(r.Context(), req)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, addWebhookResponse{id})
}

func (h *handler) listWebhooks(w http.ResponseWriter, r *http.Request) {
	event := r.URL.Query().Get("event")
	hooks, err := h.pubsubSvc.ListWebhooks(r.Context(), event)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listWebhooksResponse{hooks})
}

func (h *handler) removeWebhook(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.pubsubSvc.RemoveWebhook(r.Context(), id); err != nil {
		writeAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) doSwap(
	w http.ResponseWriter, r *http.Request,
	swapFn func(context.Context, application.SwapRequest) (*application.SwapInfo, error),
) {
	var req application.SwapRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	req.PoolID = poolID(r)

	swap, err := swapFn(r.Context(), req)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, swap)
}

func (h *handler) doLiquidity(
	w http.ResponseWriter, r *http.Request,
	fn func(req application.LiquidityRequest) (interface{}, error),
) {
	var req application.LiquidityRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	req.PoolID = poolID(r)

	res, err := fn(req)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func poolID(r *http.Request) string {
	return mux.Vars(r)["id"]
}

func decodeBody(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodySize))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: malformed body: %s", application.ErrInvalidRequest, err)
	}
	return nil
}
