package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	analysesTotal  *prometheus.CounterVec
	cacheRequests  *prometheus.CounterVec
	providerErrors *prometheus.CounterVec
	stageLatency   *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		analysesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "uws_analyses_total",
				Help: "Total number of completed stock analyses",
			},
			[]string{"verdict"},
		),
		cacheRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "uws_cache_requests_total",
				Help: "Cache lookups by kind and outcome",
			},
			[]string{"kind", "result"},
		),
		providerErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "uws_provider_errors_total",
				Help: "Upstream provider failures by stage",
			},
			[]string{"provider"},
		),
		stageLatency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "uws_stage_duration_seconds",
				Help:    "Duration of pipeline stages in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"stage"},
		),
	}
}

// RecordAnalysis records a completed analysis and its verdict.
func (r *Recorder) RecordAnalysis(verdict string) {
	r.analysesTotal.WithLabelValues(verdict).Inc()
}

// RecordCache records a cache lookup outcome.
func (r *Recorder) RecordCache(kind string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	r.cacheRequests.WithLabelValues(kind, result).Inc()
}

// RecordProviderError records an upstream provider failure.
func (r *Recorder) RecordProviderError(provider string) {
	r.providerErrors.WithLabelValues(provider).Inc()
}

// RecordStageLatency records pipeline stage latency in seconds.
func (r *Recorder) RecordStageLatency(stage string, seconds float64) {
	r.stageLatency.WithLabelValues(stage).Observe(seconds)
}
