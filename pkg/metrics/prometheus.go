package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	fetchesTotal *prometheus.CounterVec
	fetchPages   *prometheus.CounterVec
	errorsTotal  *prometheus.CounterVec
	cacheHits    *prometheus.CounterVec
	cacheMisses  *prometheus.CounterVec
	lastRate     *prometheus.GaugeVec
	latency      *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		fetchesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fxpulse_fetches_total",
				Help: "Total number of completed history fetches per currency",
			},
			[]string{"currency"},
		),
		fetchPages: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fxpulse_fetch_pages_total",
				Help: "Total number of source pages requested per currency",
			},
			[]string{"currency"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fxpulse_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		cacheHits: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fxpulse_cache_hits_total",
				Help: "Quote cache hits per currency",
			},
			[]string{"currency"},
		),
		cacheMisses: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fxpulse_cache_misses_total",
				Help: "Quote cache misses per currency",
			},
			[]string{"currency"},
		),
		lastRate: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "fxpulse_last_rate",
				Help: "Most recent stored rate for a currency against the base",
			},
			[]string{"currency"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fxpulse_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordFetch records a completed fetch and the pages it needed.
func (r *Recorder) RecordFetch(currency string, pages int) {
	r.fetchesTotal.WithLabelValues(currency).Inc()
	r.fetchPages.WithLabelValues(currency).Add(float64(pages))
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordCacheHit records a quote cache hit.
func (r *Recorder) RecordCacheHit(currency string) {
	r.cacheHits.WithLabelValues(currency).Inc()
}

// RecordCacheMiss records a quote cache miss.
func (r *Recorder) RecordCacheMiss(currency string) {
	r.cacheMisses.WithLabelValues(currency).Inc()
}

// RecordLastRate records the latest rate for a currency.
func (r *Recorder) RecordLastRate(currency string, rate float64) {
	r.lastRate.WithLabelValues(currency).Set(rate)
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
