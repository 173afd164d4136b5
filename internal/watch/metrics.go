package watch

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contains the Prometheus metrics for a watcher. Keeping them in one
// struct keeps the watcher struct itself small.
type Metrics struct {
	SwapCounter   *prometheus.GaugeVec
	ErrorsTotal   *prometheus.CounterVec
	TickDuration  *prometheus.HistogramVec
	SwapsRecorded *prometheus.CounterVec
}

// NewMetrics creates and registers the watcher metrics against the given
// registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		SwapCounter: promauto.With(reg).NewGaugeVec(prometheus.GaugeOpts{
			Name: "deferswap_watch_swap_counter",
			Help: "The swap counter last read from the pool.",
		}, []string{"pool"}),

		ErrorsTotal: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "deferswap_watch_errors_total",
			Help: "Total errors encountered by the watcher, labeled by type.",
		}, []string{"pool", "type"}),

		TickDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "deferswap_watch_tick_duration_seconds",
			Help:    "A histogram of the time one poll cycle takes.",
			Buckets: prometheus.DefBuckets,
		}, []string{"pool"}),

		SwapsRecorded: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "deferswap_watch_swaps_recorded_total",
			Help: "A counter of swap snapshots written to storage.",
		}, []string{"pool"}),
	}
}
