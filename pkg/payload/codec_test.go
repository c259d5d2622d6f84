package payload_test

import (
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
	"github.com/tdex-network/stationd/pkg/payload"
)

func word(n int64) string {
	return common.Bytes2Hex(common.LeftPadBytes(big.NewInt(n).Bytes(), 32))
}

func words(n ...int64) string {
	parts := make([]string, 0, len(n))
	for _, v := range n {
		parts = append(parts, word(v))
	}
	return "0x" + strings.Join(parts, "")
}

func amounts(v ...int64) []*big.Int {
	out := make([]*big.Int, 0, len(v))
	for _, i := range v {
		out = append(out, big.NewInt(i))
	}
	return out
}

func TestEncodeJoin(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		req         payload.JoinRequest
		expectedHex string
	}{
		{
			name:        "init",
			req:         payload.InitJoin{AmountsIn: amounts(1, 2)},
			expectedHex: words(0, 64, 2, 1, 2),
		},
		{
			name:        "proportional_in",
			req:         payload.ProportionalJoin{BptAmountOut: big.NewInt(5)},
			expectedHex: words(1, 5),
		},
		{
			name:        "all_tokens_in",
			req:         &payload.AllTokensJoin{AmountsIn: amounts(7, 0, 9)},
			expectedHex: words(2, 64, 3, 7, 0, 9),
		},
		{
			name:        "init_without_amounts",
			req:         payload.InitJoin{},
			expectedHex: words(0, 64, 0),
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			hex, err := payload.EncodeJoinHex(tt.req)
			require.NoError(t, err)
			require.Equal(t, tt.expectedHex, hex)

			req, err := payload.DecodeJoinHex(hex)
			require.NoError(t, err)
			require.Equal(t, tt.req.Kind(), req.Kind())
		})
	}
}

func TestDecodeJoin(t *testing.T) {
	t.Parallel()

	req, err := payload.DecodeJoinHex(words(0, 64, 2, 1, 2))
	require.NoError(t, err)
	initJoin, ok := req.(payload.InitJoin)
	require.True(t, ok)
	require.Len(t, initJoin.AmountsIn, 2)
	require.Equal(t, "1", initJoin.AmountsIn[0].String())
	require.Equal(t, "2", initJoin.AmountsIn[1].String())

	req, err = payload.DecodeJoinHex(words(1, 5))
	require.NoError(t, err)
	propJoin, ok := req.(payload.ProportionalJoin)
	require.True(t, ok)
	require.Equal(t, "5", propJoin.BptAmountOut.String())

	req, err = payload.DecodeJoinHex(words(2, 64, 1, 3))
	require.NoError(t, err)
	allJoin, ok := req.(payload.AllTokensJoin)
	require.True(t, ok)
	require.Equal(t, "3", allJoin.AmountsIn[0].String())
}

func TestEncodeDecodeExit(t *testing.T) {
	t.Parallel()

	hex, err := payload.EncodeExitHex(payload.ProportionalExit{AmountsOut: amounts(5, 11)})
	require.NoError(t, err)
	require.Equal(t, words(0, 64, 2, 5, 11), hex)

	req, err := payload.DecodeExitHex(hex)
	require.NoError(t, err)
	exit, ok := req.(payload.ProportionalExit)
	require.True(t, ok)
	require.Equal(t, payload.ExitProportionalOut, exit.Kind())
	require.Len(t, exit.AmountsOut, 2)
	require.Equal(t, "11", exit.AmountsOut[1].String())
}

func TestFailingDecode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		hex           string
		exit          bool
		expectedError error
	}{
		{"empty", "0x", false, payload.ErrMalformedPayload},
		{"not_hex", "0xzz", false, payload.ErrMalformedPayload},
		{"missing_prefix", word(1) + word(5), false, payload.ErrMalformedPayload},
		{"not_word_aligned", words(1, 5) + "00", false, payload.ErrMalformedPayload},
		{"unknown_join_tag", words(3, 5), false, payload.ErrUnknownKind},
		{"unknown_exit_tag", words(1, 5), true, payload.ErrUnknownKind},
		{"trailing_word", words(1, 5, 0), false, payload.ErrMalformedPayload},
		{"truncated_vector", words(0, 64, 2, 1), false, payload.ErrMalformedPayload},
		{"scalar_body_for_vector_kind", words(0, 5), false, payload.ErrMalformedPayload},
		{"tag_only", words(1), false, payload.ErrMalformedPayload},
		{"truncated_exit", words(0, 64, 3, 1, 2), true, payload.ErrMalformedPayload},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var err error
			if tt.exit {
				_, err = payload.DecodeExitHex(tt.hex)
			} else {
				_, err = payload.DecodeJoinHex(tt.hex)
			}
			require.ErrorIs(t, err, tt.expectedError)
		})
	}
}

func TestFailingEncode(t *testing.T) {
	t.Parallel()

	_, err := payload.EncodeJoin(nil)
	require.ErrorIs(t, err, payload.ErrInvalidRequest)

	_, err = payload.EncodeJoin(payload.InitJoin{AmountsIn: amounts(1, -1)})
	require.ErrorIs(t, err, payload.ErrInvalidRequest)

	_, err = payload.EncodeJoin(payload.ProportionalJoin{})
	require.ErrorIs(t, err, payload.ErrInvalidRequest)

	_, err = payload.EncodeExit(nil)
	require.ErrorIs(t, err, payload.ErrInvalidRequest)
}
