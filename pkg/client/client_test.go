package client_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/require"
	"github.com/tdex-network/stationd/pkg/client"
)

var ctx = context.Background()

const poolID = "1b4e28ba-2fa1-11d2-883f-0016d3cca427"

func TestClient(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/pools", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			var req client.CreatePoolRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			writeJSON(w, http.StatusCreated, client.Pool{
				ID: poolID, Name: req.Name, Tokens: req.Tokens, Amp: req.Amp,
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string][]client.Pool{
			"pools": {{ID: poolID}},
		})
	})
	mux.HandleFunc("/v1/pools/"+poolID+"/swap", func(w http.ResponseWriter, r *http.Request) {
		var req client.SwapRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		writeJSON(w, http.StatusOK, client.Swap{
			PoolID:    poolID,
			TokenIn:   req.TokenIn,
			TokenOut:  req.TokenOut,
			Kind:      req.Kind,
			AmountIn:  req.Amount,
			AmountOut: "500",
		})
	})
	mux.HandleFunc("/v1/pools/"+poolID+"/join", func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "0x00", req["payload"])
		writeJSON(w, http.StatusOK, client.Join{PoolID: poolID, BptOut: "20"})
	})
	mux.HandleFunc("/v1/pools/"+poolID, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("/v1/webhooks", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "POOL_SWAP", r.URL.Query().Get("event"))
		writeJSON(w, http.StatusOK, map[string][]client.Webhook{
			"webhooks": {{ID: "hook", Event: "POOL_SWAP"}},
		})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c, err := client.New(srv.URL, client.WithRateLimit(0))
	require.NoError(t, err)

	pool, err := c.CreatePool(ctx, client.CreatePoolRequest{
		Name: "a-b", Tokens: []string{"a", "b"}, Amp: 10,
	})
	require.NoError(t, err)
	require.Equal(t, poolID, pool.ID)
	require.Equal(t, "a-b", pool.Name)

	pools, err := c.ListPools(ctx)
	require.NoError(t, err)
	require.Len(t, pools, 1)

	swap, err := c.Swap(ctx, poolID, client.SwapRequest{
		TokenIn: "a", TokenOut: "b", Kind: client.SwapGivenIn, Amount: "1000",
	})
	require.NoError(t, err)
	require.Equal(t, "1000", swap.AmountIn)
	require.Equal(t, "500", swap.AmountOut)

	join, err := c.Join(ctx, poolID, "0x00")
	require.NoError(t, err)
	require.Equal(t, "20", join.BptOut)

	require.NoError(t, c.DropPool(ctx, poolID))

	hooks, err := c.ListWebhooks(ctx, "POOL_SWAP")
	require.NoError(t, err)
	require.Len(t, hooks, 1)
}

func TestClientErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "pool not found"})
	}))
	defer srv.Close()

	c, err := client.New(srv.URL)
	require.NoError(t, err)

	_, err = c.GetPool(ctx, poolID)
	require.Error(t, err)

	var apiErr *client.APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	require.Equal(t, "pool not found", apiErr.Message)

	_, err = client.New("localhost:9945")
	require.Error(t, err)
}

func TestClientCircuitBreaker(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "boom"})
	}))
	defer srv.Close()

	c, err := client.New(srv.URL, client.WithRateLimit(0))
	require.NoError(t, err)

	for i := 0; i < 11; i++ {
		_, err := c.ListPools(ctx)
		require.Error(t, err)
	}

	_, err = c.ListPools(ctx)
	require.ErrorIs(t, err, gobreaker.ErrOpenState)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
