// Package payload encodes and decodes the tagged instructions carried by
// pool joins and exits.
//
// A payload is the ABI encoding of a leading uint256 tag followed by the
// variant arguments, either a uint256[] amounts vector or a single uint256.
package payload

import "math/big"

type JoinKind uint8

const (
	// JoinInit bootstraps an empty pool with the given amounts.
	JoinInit JoinKind = iota
	// JoinProportionalIn mints an exact amount of shares by depositing
	// every token in proportion to the current balances.
	JoinProportionalIn
	// JoinAllTokensIn deposits arbitrary amounts and mints shares by value.
	JoinAllTokensIn
)

func (k JoinKind) String() string {
	switch k {
	case JoinInit:
		return "Init"
	case JoinProportionalIn:
		return "ProportionalIn"
	case JoinAllTokensIn:
		return "AllTokensIn"
	default:
		return "Unknown"
	}
}

type ExitKind uint8

const (
	// ExitProportionalOut withdraws the given amounts by burning shares.
	ExitProportionalOut ExitKind = iota
)

func (k ExitKind) String() string {
	if k == ExitProportionalOut {
		return "ProportionalOut"
	}
	return "Unknown"
}

// JoinRequest is one of InitJoin, ProportionalJoin or AllTokensJoin.
type JoinRequest interface {
	Kind() JoinKind
}

// ExitRequest is the decoded exit instruction. ProportionalExit is the
// only variant.
type ExitRequest interface {
	Kind() ExitKind
}

type InitJoin struct {
	AmountsIn []*big.Int
}

func (InitJoin) Kind() JoinKind { return JoinInit }

type ProportionalJoin struct {
	BptAmountOut *big.Int
}

func (ProportionalJoin) Kind() JoinKind { return JoinProportionalIn }

type AllTokensJoin struct {
	AmountsIn []*big.Int
}

func (AllTokensJoin) Kind() JoinKind { return JoinAllTokensIn }

type ProportionalExit struct {
	AmountsOut []*big.Int
}

func (ProportionalExit) Kind() ExitKind { return ExitProportionalOut }
