package client

import "fmt"

const (
	SwapGivenIn  = "GIVEN_IN"
	SwapGivenOut = "GIVEN_OUT"
)

type CreatePoolRequest struct {
	Name            string   `json:"name"`
	Tokens          []string `json:"tokens"`
	Amp             uint64   `json:"amp"`
	WithdrawFeeRate uint64   `json:"withdraw_fee_rate"`
}

type SwapRequest struct {
	TokenIn  string `json:"token_in"`
	TokenOut string `json:"token_out"`
	Kind     string `json:"kind"`
	Amount   string `json:"amount"`
}

type Pool struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Tokens          []string `json:"tokens"`
	Amp             uint64   `json:"amp"`
	WithdrawFeeRate uint64   `json:"withdraw_fee_rate"`
	Balances        []string `json:"balances"`
	TotalBPT        string   `json:"total_bpt"`
	Initialized     bool     `json:"initialized"`
	CreatedAt       int64    `json:"created_at"`
	Prices          []string `json:"prices,omitempty"`
	PricesUpdatedAt int64    `json:"prices_updated_at,omitempty"`
	Value           string   `json:"value,omitempty"`
}

type Prices struct {
	PoolID    string   `json:"pool_id"`
	Prices    []string `json:"prices"`
	UpdatedAt int64    `json:"updated_at"`
}

type Swap struct {
	PoolID    string `json:"pool_id"`
	TokenIn   string `json:"token_in"`
	TokenOut  string `json:"token_out"`
	Kind      string `json:"kind"`
	AmountIn  string `json:"amount_in"`
	AmountOut string `json:"amount_out"`
}

type SwapFee struct {
	PoolID string `json:"pool_id"`
	Fee    string `json:"fee"`
}

type Join struct {
	PoolID    string   `json:"pool_id"`
	Kind      string   `json:"kind"`
	AmountsIn []string `json:"amounts_in"`
	BptOut    string   `json:"bpt_out"`
	TotalBPT  string   `json:"total_bpt"`
}

type Exit struct {
	PoolID     string   `json:"pool_id"`
	BptIn      string   `json:"bpt_in"`
	AmountsOut []string `json:"amounts_out"`
	Fees       []string `json:"fees"`
	AmountsNet []string `json:"amounts_net"`
	TotalBPT   string   `json:"total_bpt"`
}

type Webhook struct {
	ID        string `json:"id"`
	Event     string `json:"event"`
	Endpoint  string `json:"endpoint"`
	IsSecured bool   `json:"is_secured"`
}

// APIError is returned for every response with a non 2xx status code.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d: %s", e.StatusCode, e.Message)
}
