package application

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/tdex-network/stationd/internal/core/domain"
	"github.com/tdex-network/stationd/pkg/mathutil"
)

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

func (r CreatePoolRequest) Validate() error {
	return validation.ValidateStruct(
		&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 64)),
		validation.Field(
			&r.Tokens,
			validation.Required,
			validation.Length(domain.MinPoolTokens, domain.MaxPoolTokens),
			validation.Each(validation.By(validateAddress)),
		),
		validation.Field(&r.Amp, validation.Required),
	)
}

type UpdatePricesRequest struct {
	PoolID string   `json:"pool_id"`
	Prices []string `json:"prices"`
}

func (r UpdatePricesRequest) Validate() error {
	return validation.ValidateStruct(
		&r,
		validation.Field(&r.PoolID, validation.Required, is.UUID),
		validation.Field(
			&r.Prices,
			validation.Required,
			validation.Each(validation.By(validatePositiveAmount)),
		),
	)
}

type UpdateWithdrawFeeRateRequest struct {
	PoolID string `json:"pool_id"`
	Rate   uint64 `json:"rate"`
}

func (r UpdateWithdrawFeeRateRequest) Validate() error {
	return validation.ValidateStruct(
		&r,
		validation.Field(&r.PoolID, validation.Required, is.UUID),
	)
}

type SwapRequest struct {
	PoolID   string `json:"pool_id"`
	TokenIn  string `json:"token_in"`
	TokenOut string `json:"token_out"`
	Kind     string `json:"kind"`
	Amount   string `json:"amount"`
}

func (r SwapRequest) Validate() error {
	return validation.ValidateStruct(
		&r,
		validation.Field(&r.PoolID, validation.Required, is.UUID),
		validation.Field(&r.TokenIn, validation.Required, validation.By(validateAddress)),
		validation.Field(
			&r.TokenOut,
			validation.Required,
			validation.By(validateAddress),
			validation.By(func(v interface{}) error {
				if strings.EqualFold(v.(string), r.TokenIn) {
					return fmt.Errorf("must differ from token in")
				}
				return nil
			}),
		),
		validation.Field(&r.Kind, validation.Required, validation.In(SwapGivenIn, SwapGivenOut)),
		validation.Field(&r.Amount, validation.Required, validation.By(validatePositiveAmount)),
	)
}

func (r SwapRequest) swapKind() domain.SwapKind {
	if r.Kind == SwapGivenOut {
		return domain.SwapGivenOut
	}
	return domain.SwapGivenIn
}

type SwapFeeRequest struct {
	PoolID     string   `json:"pool_id"`
	AmountsIn  []string `json:"amounts_in"`
	AmountsOut []string `json:"amounts_out"`
}

func (r SwapFeeRequest) Validate() error {
	return validation.ValidateStruct(
		&r,
		validation.Field(&r.PoolID, validation.Required, is.UUID),
		validation.Field(&r.AmountsIn, validation.Required, validation.Each(validation.By(validateAmount))),
		validation.Field(&r.AmountsOut, validation.Required, validation.Each(validation.By(validateAmount))),
	)
}

// LiquidityRequest carries a hex encoded join or exit payload for a pool.
type LiquidityRequest struct {
	PoolID  string `json:"pool_id"`
	Payload string `json:"payload"`
}

func (r LiquidityRequest) Validate() error {
	return validation.ValidateStruct(
		&r,
		validation.Field(&r.PoolID, validation.Required, is.UUID),
		validation.Field(&r.Payload, validation.Required, validation.By(validateHexPayload)),
	)
}

type AddWebhookRequest struct {
	Event    string `json:"event"`
	Endpoint string `json:"endpoint"`
	Secret   string `json:"secret"`
}

func (r AddWebhookRequest) Validate() error {
	return validation.ValidateStruct(
		&r,
		validation.Field(&r.Event, validation.Required, validation.In(supportedEvents()...)),
		validation.Field(&r.Endpoint, validation.Required, is.URL),
	)
}

// PoolInfo is a pool along with its latest oracle prices, if any.
type PoolInfo struct {
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
	// Value of the pool in the oracle unit of account, empty if not priced.
	Value string `json:"value,omitempty"`
}

func newPoolInfo(p domain.Pool) *PoolInfo {
	return &PoolInfo{
		ID:              p.ID,
		Name:            p.Name,
		Tokens:          p.Tokens,
		Amp:             p.Amp,
		WithdrawFeeRate: p.WithdrawFeeRate,
		Balances:        p.Balances,
		TotalBPT:        p.TotalBPT,
		Initialized:     p.Initialized,
		CreatedAt:       p.CreatedAt,
	}
}

type SwapInfo struct {
	PoolID    string `json:"pool_id"`
	TokenIn   string `json:"token_in"`
	TokenOut  string `json:"token_out"`
	Kind      string `json:"kind"`
	AmountIn  string `json:"amount_in"`
	AmountOut string `json:"amount_out"`
}

type SwapFeeInfo struct {
	PoolID string `json:"pool_id"`
	Fee    string `json:"fee"`
}

type JoinInfo struct {
	PoolID    string   `json:"pool_id"`
	Kind      string   `json:"kind"`
	AmountsIn []string `json:"amounts_in"`
	BptOut    string   `json:"bpt_out"`
	TotalBPT  string   `json:"total_bpt"`
}

type ExitInfo struct {
	PoolID     string   `json:"pool_id"`
	BptIn      string   `json:"bpt_in"`
	AmountsOut []string `json:"amounts_out"`
	Fees       []string `json:"fees"`
	AmountsNet []string `json:"amounts_net"`
	TotalBPT   string   `json:"total_bpt"`
}

type WebhookInfo struct {
	ID        string `json:"id"`
	Event     string `json:"event"`
	Endpoint  string `json:"endpoint"`
	IsSecured bool   `json:"is_secured"`
}

func validateAddress(v interface{}) error {
	s, _ := v.(string)
	if !common.IsHexAddress(s) {
		return fmt.Errorf("must be a hex address")
	}
	return nil
}

func validateAmount(v interface{}) error {
	s, _ := v.(string)
	if _, err := mathutil.ParseAmount(s); err != nil {
		return err
	}
	return nil
}

func validatePositiveAmount(v interface{}) error {
	s, _ := v.(string)
	n, err := mathutil.ParseAmount(s)
	if err != nil {
		return err
	}
	if n.Sign() == 0 {
		return fmt.Errorf("must be greater than zero")
	}
	return nil
}

func validateHexPayload(v interface{}) error {
	s, _ := v.(string)
	if !strings.HasPrefix(s, "0x") || len(s)%2 != 0 {
		return fmt.Errorf("must be 0x-prefixed hex")
	}
	return nil
}

func parseAmounts(amounts []string) ([]*big.Int, error) {
	v, err := mathutil.ParseAmounts(amounts)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRequest, err)
	}
	return v, nil
}
