package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	AnalyzeLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "idx",
			Subsystem: "analyzer",
			Name:      "latency_seconds",
			Help:      "Latency of analyzer operations",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20},
		},
		[]string{"operation"},
	)

	SubSignalResults = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "idx",
			Subsystem: "analyzer",
			Name:      "sub_signal_total",
			Help:      "Sub-signal outcomes by signal and availability",
		},
		[]string{"signal", "outcome"},
	)

	CacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "idx",
			Subsystem: "analyzer",
			Name:      "cache_lookups_total",
			Help:      "Response cache lookups by result",
		},
		[]string{"kind", "result"},
	)
)

// Register adds the analyzer collectors to the default registry once.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(AnalyzeLatency, SubSignalResults, CacheLookups)
	})
}

// ObserveSubSignal records a sub-signal outcome such as "available", "timeout" or "error".
func ObserveSubSignal(signal, outcome string) {
	SubSignalResults.WithLabelValues(signal, outcome).Inc()
}
