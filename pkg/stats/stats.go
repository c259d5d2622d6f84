package stats

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	log "github.com/sirupsen/logrus"
)

// MetricsFilename is the file, relative to the dump dir, where DumpMetrics
// appends the gathered metrics.
const MetricsFilename = "metrics.prom"

const mebibyte = 1 << 20

// RuntimeStats is a snapshot of the memory and scheduler state of the daemon.
type RuntimeStats struct {
	TotalAllocMiB float64
	HeapAllocMiB  float64
	HeapObjects   uint64
	NumGC         uint32
	Goroutines    int
}

// ReadRuntimeStats takes a snapshot of the current runtime stats.
func ReadRuntimeStats() RuntimeStats {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return RuntimeStats{
		TotalAllocMiB: float64(m.TotalAlloc) / mebibyte,
		HeapAllocMiB:  float64(m.HeapAlloc) / mebibyte,
		HeapObjects:   m.HeapObjects,
		NumGC:         m.NumGC,
		Goroutines:    runtime.NumGoroutine(),
	}
}

func (s RuntimeStats) fields() log.Fields {
	return log.Fields{
		"total_alloc_mib": s.TotalAllocMiB,
		"heap_alloc_mib":  s.HeapAllocMiB,
		"heap_objects":    s.HeapObjects,
		"num_gc":          s.NumGC,
		"goroutines":      s.Goroutines,
	}
}

// EnableMemoryStatistics logs a runtime snapshot every interval until ctx is
// done, then appends the metrics of the default registry to
// MetricsFilename in dumpDir.
func EnableMemoryStatistics(
	ctx context.Context, interval time.Duration, dumpDir string,
) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				log.WithFields(ReadRuntimeStats().fields()).Info("runtime stats")
			case <-ctx.Done():
				if err := DumpMetrics(dumpDir, prometheus.DefaultGatherer); err != nil {
					log.WithError(err).Warn("failed to dump metrics on shutdown")
				}
				return
			}
		}
	}()
}

// DumpMetrics appends every metric family of gatherer to MetricsFilename in
// dir using the prometheus text exposition format.
func DumpMetrics(dir string, gatherer prometheus.Gatherer) error {
	families, err := gatherer.Gather()
	if err != nil {
		return err
	}

	f, err := os.OpenFile(
		filepath.Join(dir, MetricsFilename),
		os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644,
	)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return w.Flush()
}
