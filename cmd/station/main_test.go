package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tdex-network/stationd/pkg/client"
)

const poolID = "1b4e28ba-2fa1-11d2-883f-0016d3cca427"

func TestPayloadCommands(t *testing.T) {
	setTestDatadir(t)

	tests := []struct {
		name     string
		encode   []string
		decode   string
		expected decodedPayload
	}{
		{
			name:   "init",
			encode: []string{"payload", "encode-join", "--kind", "init", "--amount", "10", "--amount", "5"},
			decode: "decode-join",
			expected: decodedPayload{
				Kind:      "Init",
				AmountsIn: []string{"10", "5"},
			},
		},
		{
			name:   "proportional",
			encode: []string{"payload", "encode-join", "--kind", "proportional", "--shares", "2"},
			decode: "decode-join",
			expected: decodedPayload{
				Kind:   "ProportionalIn",
				Shares: "2",
			},
		},
		{
			name:   "exit",
			encode: []string{"payload", "encode-exit", "--amount", "1", "--amount", "0"},
			decode: "decode-exit",
			expected: decodedPayload{
				Kind:       "ProportionalOut",
				AmountsOut: []string{"1", "0"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := runCommand(t, tt.encode...)
			require.True(t, strings.HasPrefix(data, "0x"))

			out := runCommand(t, "payload", tt.decode, data)
			var decoded decodedPayload
			require.NoError(t, json.Unmarshal([]byte(out), &decoded))
			require.Equal(t, tt.expected, decoded)
		})
	}
}

func TestFailingPayloadCommands(t *testing.T) {
	setTestDatadir(t)

	tests := []struct {
		name string
		args []string
	}{
		{"unknown_kind", []string{"payload", "encode-join", "--kind", "all"}},
		{"invalid_amount", []string{"payload", "encode-join", "--kind", "tokens", "--amount", "1.5"}},
		{"missing_payload", []string{"payload", "decode-join"}},
		{"malformed_payload", []string{"payload", "decode-exit", "0x00"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newApp()
			app.Writer = &bytes.Buffer{}
			err := app.Run(append([]string{"station"}, tt.args...))
			require.Error(t, err)
		})
	}
}

func TestConfigCommands(t *testing.T) {
	setTestDatadir(t)

	app := newApp()
	app.Writer = &bytes.Buffer{}
	require.Error(t, app.Run([]string{"station", "config"}))

	runCommand(t, "config", "init", "--rpcserver", "http://localhost:9000")
	runCommand(t, "config", "set", "pool", poolID)

	out := runCommand(t, "config")
	require.Contains(t, out, "rpcserver: http://localhost:9000")
	require.Contains(t, out, "pool: "+poolID)
	require.Contains(t, out, "decimals: 18")
}

func TestPoolCommands(t *testing.T) {
	setTestDatadir(t)

	var swapReq client.SwapRequest
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/pools/"+poolID, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(client.Pool{ID: poolID, TotalBPT: "20"})
	})
	mux.HandleFunc("/v1/pools/"+poolID+"/swap/preview", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&swapReq))
		json.NewEncoder(w).Encode(client.Swap{PoolID: poolID, AmountIn: swapReq.Amount})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	runCommand(t, "config", "init", "--rpcserver", srv.URL, "--decimals", "6")

	app := newApp()
	app.Writer = &bytes.Buffer{}
	require.Error(t, app.Run([]string{"station", "pool", "show"}))

	out := runCommand(t, "pool", "show", "--pool", poolID)
	var pool client.Pool
	require.NoError(t, json.Unmarshal([]byte(out), &pool))
	require.Equal(t, "20", pool.TotalBPT)

	runCommand(t, "config", "set", "pool", poolID)
	runCommand(
		t, "swap", "preview",
		"--token_in", "0x6B175474E89094C44Da98b954EedeAC495271d0F",
		"--token_out", "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48",
		"--amount", "1.5",
	)
	require.Equal(t, "1500000", swapReq.Amount)
	require.Equal(t, client.SwapGivenIn, swapReq.Kind)
}

func setTestDatadir(t *testing.T) {
	prevDatadir, prevStatePath := stationDataDir, statePath
	stationDataDir = t.TempDir()
	statePath = filepath.Join(stationDataDir, "state.json")
	t.Cleanup(func() {
		stationDataDir, statePath = prevDatadir, prevStatePath
	})
}

func runCommand(t *testing.T, args ...string) string {
	out := &bytes.Buffer{}
	app := newApp()
	app.Writer = out
	require.NoError(t, app.Run(append([]string{"station"}, args...)))
	return strings.TrimSpace(out.String())
}
