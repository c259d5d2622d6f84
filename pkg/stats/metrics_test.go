package stats_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"github.com/tdex-network/stationd/pkg/stats"
)

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := stats.NewMetrics(reg)
	require.NoError(t, err)

	m.Swap("pool", "GIVEN_IN")
	m.Swap("pool", "GIVEN_IN")
	m.Join("pool", "INIT")
	m.Exit("pool")
	m.PricesUpdated("pool")
	m.Observe("swap", time.Now(), nil)
	m.Observe("swap", time.Now(), errors.New("failed"))

	count, err := testutil.GatherAndCount(reg)
	require.NoError(t, err)
	require.Equal(t, 6, count)

	expected := `
# HELP stationd_swaps_total number of executed swaps
# TYPE stationd_swaps_total counter
stationd_swaps_total{kind="GIVEN_IN",pool="pool"} 2
# HELP stationd_failed_operations_total number of operations that returned an error
# TYPE stationd_failed_operations_total counter
stationd_failed_operations_total{operation="swap"} 1
`
	err = testutil.GatherAndCompare(
		reg, strings.NewReader(expected),
		"stationd_swaps_total", "stationd_failed_operations_total",
	)
	require.NoError(t, err)

	// Registering twice must fail.
	_, err = stats.NewMetrics(reg)
	require.Error(t, err)
}

func TestNilMetrics(t *testing.T) {
	var m *stats.Metrics
	require.NotPanics(t, func() {
		m.Swap("pool", "GIVEN_OUT")
		m.Join("pool", "ALL_TOKENS_IN")
		m.Exit("pool")
		m.PricesUpdated("pool")
		m.Observe("exit", time.Now(), nil)
	})
}

func TestDumpMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := stats.NewMetrics(reg)
	require.NoError(t, err)
	m.Swap("pool", "GIVEN_OUT")

	dir := t.TempDir()
	require.NoError(t, stats.DumpMetrics(dir, reg))
	// Every dump is appended to the previous ones.
	require.NoError(t, stats.DumpMetrics(dir, reg))

	buf, err := os.ReadFile(filepath.Join(dir, stats.MetricsFilename))
	require.NoError(t, err)
	line := `stationd_swaps_total{kind="GIVEN_OUT",pool="pool"} 1`
	require.Equal(t, 2, strings.Count(string(buf), line))
}

func TestReadRuntimeStats(t *testing.T) {
	s := stats.ReadRuntimeStats()
	require.Positive(t, s.Goroutines)
	require.Positive(t, s.HeapAllocMiB)
}
