package stats

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "stationd"

// Metrics collects the counters of the pool operations. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	swaps      *prometheus.CounterVec
	joins      *prometheus.CounterVec
	exits      *prometheus.CounterVec
	failures   *prometheus.CounterVec
	priceFeeds *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

// NewMetrics creates the pool collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		swaps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "swaps_total",
			Help:      "number of executed swaps",
		}, []string{"pool", "kind"}),
		joins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "joins_total",
			Help:      "number of executed joins",
		}, []string{"pool", "kind"}),
		exits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "exits_total",
			Help:      "number of executed exits",
		}, []string{"pool"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "failed_operations_total",
			Help:      "number of operations that returned an error",
		}, []string{"operation"}),
		priceFeeds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "price_updates_total",
			Help:      "number of oracle price vector updates",
		}, []string{"pool"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_seconds",
			Help:      "duration of pool operations",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
	}

	for _, c := range []prometheus.Collector{
		m.swaps, m.joins, m.exits, m.failures, m.priceFeeds, m.duration,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) Swap(poolID, kind string) {
	if m == nil {
		return
	}
	m.swaps.WithLabelValues(poolID, kind).Inc()
}

func (m *Metrics) Join(poolID, kind string) {
	if m == nil {
		return
	}
	m.joins.WithLabelValues(poolID, kind).Inc()
}

func (m *Metrics) Exit(poolID string) {
	if m == nil {
		return
	}
	m.exits.WithLabelValues(poolID).Inc()
}

func (m *Metrics) PricesUpdated(poolID string) {
	if m == nil {
		return
	}
	m.priceFeeds.WithLabelValues(poolID).Inc()
}

// Observe records the duration of operation started at start and counts it
// as failed if err is not nil. It's meant to be deferred.
func (m *Metrics) Observe(operation string, start time.Time, err error) {
	if m == nil {
		return
	}
	m.duration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	if err != nil {
		m.failures.WithLabelValues(operation).Inc()
	}
}
