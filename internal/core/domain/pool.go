package domain

import (
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/tdex-network/stationd/pkg/mathutil"
)

const (
	MinPoolTokens = 2
	MaxPoolTokens = 8
)

// Pool is the ledger of a multi-asset pool: the token balances it holds and
// the supply of pool shares (BPT) issued against them.
// Amounts are stored as base-10 strings of 18-decimal fixed-point integers.
type Pool struct {
	// Unique identifier.
	ID string
	// Human readable name.
	Name string
	// Checksummed hex addresses of the pool tokens. The order defines the
	// index used for balances and prices.
	Tokens []string
	// Amplification parameter.
	Amp uint64
	// Divisor applied to withdrawn amounts to compute the exit fee. Zero
	// disables the fee.
	WithdrawFeeRate uint64
	// Token balances held by the pool.
	Balances []string
	// Total supply of pool shares.
	TotalBPT string
	// Whether the pool has been bootstrapped by an Init join.
	Initialized bool
	// Unix timestamp of creation.
	CreatedAt int64
}

// NewPool returns a new empty pool for the given tokens.
func NewPool(
	name string, tokens []string, amp, withdrawFeeRate uint64,
) (*Pool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrPoolInvalidName
	}
	if len(tokens) < MinPoolTokens || len(tokens) > MaxPoolTokens {
		return nil, ErrPoolInvalidTokens
	}
	if amp == 0 {
		return nil, ErrPoolInvalidAmp
	}

	normalized := make([]string, 0, len(tokens))
	seen := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		if !common.IsHexAddress(t) {
			return nil, fmt.Errorf("%w: %q", ErrPoolInvalidToken, t)
		}
		addr := common.HexToAddress(t).Hex()
		if seen[addr] {
			return nil, fmt.Errorf("%w: %s", ErrPoolDuplicatedToken, addr)
		}
		seen[addr] = true
		normalized = append(normalized, addr)
	}

	return &Pool{
		ID:              uuid.New().String(),
		Name:            name,
		Tokens:          normalized,
		Amp:             amp,
		WithdrawFeeRate: withdrawFeeRate,
		Balances:        formatVector(mathutil.ZeroVector(len(normalized))),
		TotalBPT:        "0",
		CreatedAt:       time.Now().Unix(),
	}, nil
}

// IsInitialized returns whether the pool has been bootstrapped.
func (p *Pool) IsInitialized() bool {
	return p.Initialized
}

// TokenIndex returns the position of the given token in the pool.
func (p *Pool) TokenIndex(token string) (int, error) {
	if common.IsHexAddress(token) {
		addr := common.HexToAddress(token).Hex()
		for i, t := range p.Tokens {
			if t == addr {
				return i, nil
			}
		}
	}
	return -1, fmt.Errorf("%w: %s", ErrPoolUnknownToken, token)
}

// GetBalances returns the pool balances as integers.
func (p *Pool) GetBalances() ([]*big.Int, error) {
	balances, err := parseVector(p.Balances)
	if err != nil {
		return nil, fmt.Errorf("%w: balances: %s", ErrPoolCorruptedState, err)
	}
	if len(balances) != len(p.Tokens) {
		return nil, fmt.Errorf(
			"%w: got %d balances for %d tokens",
			ErrPoolCorruptedState, len(balances), len(p.Tokens),
		)
	}
	return balances, nil
}

// GetTotalBPT returns the supply of pool shares.
func (p *Pool) GetTotalBPT() (*big.Int, error) {
	total, err := mathutil.ParseAmount(p.TotalBPT)
	if err != nil {
		return nil, fmt.Errorf("%w: total bpt: %s", ErrPoolCorruptedState, err)
	}
	return total, nil
}

// ChangeWithdrawFeeRate updates the exit fee divisor.
func (p *Pool) ChangeWithdrawFeeRate(rate uint64) {
	p.WithdrawFeeRate = rate
}

// Clone returns a deep copy of the pool.
func (p *Pool) Clone() *Pool {
	clone := *p
	clone.Tokens = append([]string(nil), p.Tokens...)
	clone.Balances = append([]string(nil), p.Balances...)
	return &clone
}

func (p *Pool) setState(balances []*big.Int, totalBPT *big.Int) {
	p.Balances = formatVector(balances)
	p.TotalBPT = totalBPT.String()
}

func parseVector(v []string) ([]*big.Int, error) {
	return mathutil.ParseAmounts(v)
}

func formatVector(v []*big.Int) []string {
	return mathutil.FormatAmounts(v)
}
