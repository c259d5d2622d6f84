package payload

import (
	"bytes"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/tdex-network/stationd/pkg/mathutil"
)

var (
	// ErrUnknownKind is returned when decoding a payload whose tag does not
	// match any known variant.
	ErrUnknownKind = errors.New("unknown payload kind")
	// ErrMalformedPayload is returned when a payload is not a canonical ABI
	// encoding of one of the variants.
	ErrMalformedPayload = errors.New("malformed payload")
	// ErrInvalidRequest is returned when encoding a nil request or one with
	// amounts outside the uint256 range.
	ErrInvalidRequest = errors.New("invalid request")
)

var (
	uint256Ty    = mustNewType("uint256")
	uint256ArrTy = mustNewType("uint256[]")

	tagArgs    = abi.Arguments{{Type: uint256Ty}}
	vectorArgs = abi.Arguments{{Type: uint256Ty}, {Type: uint256ArrTy}}
	scalarArgs = abi.Arguments{{Type: uint256Ty}, {Type: uint256Ty}}
)

func mustNewType(t string) abi.Type {
	typ, err := abi.NewType(t, "", nil)
	if err != nil {
		panic(err)
	}
	return typ
}

// EncodeJoin returns the ABI encoding of the given join request.
func EncodeJoin(req JoinRequest) ([]byte, error) {
	switch r := req.(type) {
	case InitJoin:
		return encodeVector(uint64(JoinInit), r.AmountsIn)
	case *InitJoin:
		return encodeVector(uint64(JoinInit), r.AmountsIn)
	case ProportionalJoin:
		return encodeScalar(uint64(JoinProportionalIn), r.BptAmountOut)
	case *ProportionalJoin:
		return encodeScalar(uint64(JoinProportionalIn), r.BptAmountOut)
	case AllTokensJoin:
		return encodeVector(uint64(JoinAllTokensIn), r.AmountsIn)
	case *AllTokensJoin:
		return encodeVector(uint64(JoinAllTokensIn), r.AmountsIn)
	default:
		return nil, fmt.Errorf("%w: unsupported join request %T", ErrInvalidRequest, req)
	}
}

// EncodeExit returns the ABI encoding of the given exit request.
func EncodeExit(req ExitRequest) ([]byte, error) {
	switch r := req.(type) {
	case ProportionalExit:
		return encodeVector(uint64(ExitProportionalOut), r.AmountsOut)
	case *ProportionalExit:
		return encodeVector(uint64(ExitProportionalOut), r.AmountsOut)
	default:
		return nil, fmt.Errorf("%w: unsupported exit request %T", ErrInvalidRequest, req)
	}
}

// DecodeJoin parses a join payload into its typed variant.
func DecodeJoin(data []byte) (JoinRequest, error) {
	tag, err := decodeTag(data)
	if err != nil {
		return nil, err
	}

	switch JoinKind(tag) {
	case JoinInit:
		amounts, err := decodeVector(data)
		if err != nil {
			return nil, err
		}
		return InitJoin{AmountsIn: amounts}, nil
	case JoinProportionalIn:
		amount, err := decodeScalar(data)
		if err != nil {
			return nil, err
		}
		return ProportionalJoin{BptAmountOut: amount}, nil
	case JoinAllTokensIn:
		amounts, err := decodeVector(data)
		if err != nil {
			return nil, err
		}
		return AllTokensJoin{AmountsIn: amounts}, nil
	default:
		return nil, fmt.Errorf("%w: join tag %d", ErrUnknownKind, tag)
	}
}

// DecodeExit parses an exit payload into its typed variant.
func DecodeExit(data []byte) (ExitRequest, error) {
	tag, err := decodeTag(data)
	if err != nil {
		return nil, err
	}

	if ExitKind(tag) != ExitProportionalOut {
		return nil, fmt.Errorf("%w: exit tag %d", ErrUnknownKind, tag)
	}
	amounts, err := decodeVector(data)
	if err != nil {
		return nil, err
	}
	return ProportionalExit{AmountsOut: amounts}, nil
}

// EncodeJoinHex is like EncodeJoin but returns a 0x-prefixed hex string.
func EncodeJoinHex(req JoinRequest) (string, error) {
	buf, err := EncodeJoin(req)
	if err != nil {
		return "", err
	}
	return hexutil.Encode(buf), nil
}

// EncodeExitHex is like EncodeExit but returns a 0x-prefixed hex string.
func EncodeExitHex(req ExitRequest) (string, error) {
	buf, err := EncodeExit(req)
	if err != nil {
		return "", err
	}
	return hexutil.Encode(buf), nil
}

// DecodeJoinHex decodes a 0x-prefixed hex join payload.
func DecodeJoinHex(s string) (JoinRequest, error) {
	buf, err := hexutil.Decode(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedPayload, err)
	}
	return DecodeJoin(buf)
}

// DecodeExitHex decodes a 0x-prefixed hex exit payload.
func DecodeExitHex(s string) (ExitRequest, error) {
	buf, err := hexutil.Decode(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedPayload, err)
	}
	return DecodeExit(buf)
}

func encodeVector(tag uint64, amounts []*big.Int) ([]byte, error) {
	for i, a := range amounts {
		if !mathutil.InRange(a) {
			return nil, fmt.Errorf(
				"%w: amount at index %d out of uint256 range", ErrInvalidRequest, i,
			)
		}
	}
	if amounts == nil {
		amounts = []*big.Int{}
	}
	return vectorArgs.Pack(new(big.Int).SetUint64(tag), amounts)
}

func encodeScalar(tag uint64, amount *big.Int) ([]byte, error) {
	if !mathutil.InRange(amount) {
		return nil, fmt.Errorf("%w: amount out of uint256 range", ErrInvalidRequest)
	}
	return scalarArgs.Pack(new(big.Int).SetUint64(tag), amount)
}

func decodeTag(data []byte) (uint64, error) {
	if len(data) == 0 || len(data)%32 != 0 {
		return 0, fmt.Errorf(
			"%w: length %d is not a positive multiple of 32", ErrMalformedPayload, len(data),
		)
	}
	values, err := tagArgs.Unpack(data)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrMalformedPayload, err)
	}
	tag := values[0].(*big.Int)
	if !tag.IsUint64() || tag.Uint64() > 255 {
		return 0, fmt.Errorf("%w: tag %s", ErrUnknownKind, tag)
	}
	return tag.Uint64(), nil
}

func decodeVector(data []byte) ([]*big.Int, error) {
	values, err := vectorArgs.Unpack(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedPayload, err)
	}
	amounts, ok := values[1].([]*big.Int)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected amounts type %T", ErrMalformedPayload, values[1])
	}
	if err := checkCanonical(data, vectorArgs, values...); err != nil {
		return nil, err
	}
	return amounts, nil
}

func decodeScalar(data []byte) (*big.Int, error) {
	values, err := scalarArgs.Unpack(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedPayload, err)
	}
	if err := checkCanonical(data, scalarArgs, values...); err != nil {
		return nil, err
	}
	return values[1].(*big.Int), nil
}

// checkCanonical rejects payloads with trailing bytes or non standard
// offsets by re-encoding the decoded values.
func checkCanonical(data []byte, args abi.Arguments, values ...interface{}) error {
	buf, err := args.Pack(values...)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrMalformedPayload, err)
	}
	if !bytes.Equal(buf, data) {
		return fmt.Errorf("%w: non canonical encoding", ErrMalformedPayload)
	}
	return nil
}
