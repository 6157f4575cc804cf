package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Page serving counters
	PageRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "page_requests_total",
			Help: "Total number of page requests",
		},
		[]string{"page_type"},
	)

	PageResults = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "page_results_total",
			Help: "Total number of page requests by freshness outcome",
		},
		[]string{"page_type", "status"}, // hit, stale, miss, bypass
	)

	PageRegenerations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "page_regenerations_total",
			Help: "Total number of page regenerations by outcome",
		},
		[]string{"page_type", "outcome"}, // ok, not_found, degraded, error
	)

	// Upstream query failures by error classification
	QueryFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "content_query_failures_total",
			Help: "Total number of content query failures",
		},
		[]string{"kind"},
	)

	// Invalidation requests accepted via the revalidation endpoint
	Invalidations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "invalidations_total",
			Help: "Total number of accepted invalidation requests",
		},
		[]string{"target"}, // path or tag
	)

	// View tracking requests (no persistence behind them)
	ViewTracks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "view_tracks_total",
			Help: "Total number of accepted view-tracking requests",
		},
	)

	// Generation latency
	GenerationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "page_generation_duration_seconds",
			Help:    "Duration of page generation",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"page_type"},
	)
)

// RecordPageRequest records one page request.
func RecordPageRequest(pageType string) {
	PageRequests.WithLabelValues(pageType).Inc()
}

// RecordPageResult records how a page request was satisfied.
func RecordPageResult(pageType, status string) {
	PageResults.WithLabelValues(pageType, status).Inc()
}

// RecordRegeneration records the outcome of a page regeneration.
func RecordRegeneration(pageType, outcome string) {
	PageRegenerations.WithLabelValues(pageType, outcome).Inc()
}

// RecordQueryFailure records an upstream query failure by classification.
func RecordQueryFailure(kind string) {
	QueryFailures.WithLabelValues(kind).Inc()
}

// RecordInvalidation records an accepted invalidation request.
func RecordInvalidation(target string) {
	Invalidations.WithLabelValues(target).Inc()
}

// RecordViewTrack records an accepted view-tracking request.
func RecordViewTrack() {
	ViewTracks.Inc()
}

// TimeGeneration returns a timer function for measuring one generation.
func TimeGeneration(pageType string) func() {
	timer := prometheus.NewTimer(GenerationDuration.WithLabelValues(pageType))
	return func() {
		timer.ObserveDuration()
	}
}
