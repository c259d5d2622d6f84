package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"github.com/tdex-network/stationd/pkg/circuitbreaker"
	"go.uber.org/ratelimit"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultRateLimit = 100
)

// Client talks with the REST interface of the daemon. Transport failures and
// 5xx responses are counted by a circuit breaker, outgoing requests are
// throttled by a rate limiter.
type Client struct {
	baseURL    string
	httpClient *http.Client
	cb         *gobreaker.CircuitBreaker
	limiter    ratelimit.Limiter
}

type Option func(c *Client)

// WithHTTPClient makes the client use the given http client, for example
// to trust a self-signed TLS certificate.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithRateLimit sets the max number of requests per second.
func WithRateLimit(rps int) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = ratelimit.NewUnlimited()
			return
		}
		c.limiter = ratelimit.New(rps)
	}
}

func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid daemon url: %s", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("daemon url must use either http or https scheme")
	}

	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
		cb:         circuitbreaker.NewCircuitBreaker("client"),
		limiter:    ratelimit.New(defaultRateLimit),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) CreatePool(ctx context.Context, req CreatePoolRequest) (*Pool, error) {
	pool := &Pool{}
	if err := c.do(ctx, http.MethodPost, "/v1/pools", req, pool); err != nil {
		return nil, err
	}
	return pool, nil
}

func (c *Client) ListPools(ctx context.Context) ([]Pool, error) {
	var resp struct {
		Pools []Pool `json:"pools"`
	}
	if err := c.do(ctx, http.MethodGet, "/v1/pools", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Pools, nil
}

func (c *Client) GetPool(ctx context.Context, poolID string) (*Pool, error) {
	pool := &Pool{}
	if err := c.do(ctx, http.MethodGet, poolPath(poolID, ""), nil, pool); err != nil {
		return nil, err
	}
	return pool, nil
}

func (c *Client) DropPool(ctx context.Context, poolID string) error {
	return c.do(ctx, http.MethodDelete, poolPath(poolID, ""), nil, nil)
}

func (c *Client) UpdatePrices(
	ctx context.Context, poolID string, prices []string,
) (*Prices, error) {
	body := map[string][]string{"prices": prices}
	resp := &Prices{}
	if err := c.do(
		ctx, http.MethodPut, poolPath(poolID, "prices"), body, resp,
	); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) UpdateWithdrawFeeRate(
	ctx context.Context, poolID string, rate uint64,
) (*Pool, error) {
	body := map[string]uint64{"rate": rate}
	pool := &Pool{}
	if err := c.do(
		ctx, http.MethodPut, poolPath(poolID, "withdraw-fee"), body, pool,
	); err != nil {
		return nil, err
	}
	return pool, nil
}

func (c *Client) PreviewSwap(
	ctx context.Context, poolID string, req SwapRequest,
) (*Swap, error) {
	return c.swap(ctx, poolPath(poolID, "swap/preview"), req)
}

func (c *Client) Swap(
	ctx context.Context, poolID string, req SwapRequest,
) (*Swap, error) {
	return c.swap(ctx, poolPath(poolID, "swap"), req)
}

func (c *Client) QuoteSwapFee(
	ctx context.Context, poolID string, amountsIn, amountsOut []string,
) (*SwapFee, error) {
	body := map[string][]string{
		"amounts_in":  amountsIn,
		"amounts_out": amountsOut,
	}
	fee := &SwapFee{}
	if err := c.do(
		ctx, http.MethodPost, poolPath(poolID, "swap-fee"), body, fee,
	); err != nil {
		return nil, err
	}
	return fee, nil
}

func (c *Client) PreviewJoin(
	ctx context.Context, poolID, payload string,
) (*Join, error) {
	return c.join(ctx, poolPath(poolID, "join/preview"), payload)
}

func (c *Client) Join(ctx context.Context, poolID, payload string) (*Join, error) {
	return c.join(ctx, poolPath(poolID, "join"), payload)
}

func (c *Client) PreviewExit(
	ctx context.Context, poolID, payload string,
) (*Exit, error) {
	return c.exit(ctx, poolPath(poolID, "exit/preview"), payload)
}

func (c *Client) Exit(ctx context.Context, poolID, payload string) (*Exit, error) {
	return c.exit(ctx, poolPath(poolID, "exit"), payload)
}

func (c *Client) AddWebhook(
	ctx context.Context, event, endpoint, secret string,
) (string, error) {
	body := map[string]string{
		"event":    event,
		"endpoint": endpoint,
		"secret":   secret,
	}
	var resp struct {
		ID string `json:"id"`
	}
	if err := c.do(ctx, http.MethodPost, "/v1/webhooks", body, &resp); err != nil {
		return "", err
	}
	return resp.ID, nil
}

func (c *Client) RemoveWebhook(ctx context.Context, id string) error {
	path := fmt.Sprintf("/v1/webhooks/%s", url.PathEscape(id))
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

func (c *Client) ListWebhooks(ctx context.Context, event string) ([]Webhook, error) {
	path := "/v1/webhooks"
	if event != "" {
		path = fmt.Sprintf("%s?event=%s", path, url.QueryEscape(event))
	}
	var resp struct {
		Webhooks []Webhook `json:"webhooks"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Webhooks, nil
}

func (c *Client) swap(ctx context.Context, path string, req SwapRequest) (*Swap, error) {
	swap := &Swap{}
	if err := c.do(ctx, http.MethodPost, path, req, swap); err != nil {
		return nil, err
	}
	return swap, nil
}

func (c *Client) join(ctx context.Context, path, payload string) (*Join, error) {
	join := &Join{}
	body := map[string]string{"payload": payload}
	if err := c.do(ctx, http.MethodPost, path, body, join); err != nil {
		return nil, err
	}
	return join, nil
}

func (c *Client) exit(ctx context.Context, path, payload string) (*Exit, error) {
	exit := &Exit{}
	body := map[string]string{"payload": payload}
	if err := c.do(ctx, http.MethodPost, path, body, exit); err != nil {
		return nil, err
	}
	return exit, nil
}

type response struct {
	status int
	body   []byte
}

func (c *Client) do(
	ctx context.Context, method, path string, body, resp interface{},
) error {
	var buf []byte
	if body != nil {
		var err error
		if buf, err = json.Marshal(body); err != nil {
			return err
		}
	}

	c.limiter.Take()

	// Only transport errors and 5xx responses count as failures for the
	// circuit breaker.
	res, err := c.cb.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(
			ctx, method, c.baseURL+path, bytes.NewReader(buf),
		)
		if err != nil {
			return nil, err
		}
		if buf != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		rs, err := c.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer rs.Body.Close()

		rsBody, err := io.ReadAll(rs.Body)
		if err != nil {
			return nil, err
		}
		r := &response{rs.StatusCode, rsBody}
		if rs.StatusCode >= http.StatusInternalServerError {
			return r, parseError(r)
		}
		return r, nil
	})
	if err != nil {
		return err
	}

	r := res.(*response)
	if r.status < http.StatusOK || r.status >= http.StatusMultipleChoices {
		return parseError(r)
	}
	if resp == nil || len(r.body) <= 0 {
		return nil
	}
	return json.Unmarshal(r.body, resp)
}

func parseError(r *response) error {
	var errResp struct {
		Error string `json:"error"`
	}
	msg := strings.TrimSpace(string(r.body))
	if err := json.Unmarshal(r.body, &errResp); err == nil && errResp.Error != "" {
		msg = errResp.Error
	}
	return &APIError{r.status, msg}
}

func poolPath(poolID, action string) string {
	path := fmt.Sprintf("/v1/pools/%s", url.PathEscape(poolID))
	if action != "" {
		path = fmt.Sprintf("%s/%s", path, action)
	}
	return path
}
