// file: internal/metrics/metrics.go
// version: 1.0.0
// guid: d20d4657-738a-481e-9a3e-eddaefdb87b8

package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	matcherQueries = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "mission_scanner",
		Name:      "matcher_queries_total",
		Help:      "Total number of fuzzy match query evaluations",
	})
	matcherResults = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mission_scanner",
		Name:      "matcher_results_total",
		Help:      "Total number of match results that produced suggestions, by match type",
	}, []string{"type"})
	matcherChunkFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "mission_scanner",
		Name:      "matcher_batch_chunk_failures_total",
		Help:      "Total number of batch chunks abandoned after a panic",
	})
	suggestionsGenerated = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "mission_scanner",
		Name:      "suggestions_generated_total",
		Help:      "Total number of replacement suggestions produced for missing classes",
	})
	missionsValidated = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "mission_scanner",
		Name:      "missions_validated_total",
		Help:      "Total number of missions run through dependency validation",
	})
	validationDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "mission_scanner",
		Name:      "validation_duration_seconds",
		Help:      "Histogram of per-mission validation durations in seconds",
		Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12), // ~1ms up to a few seconds
	})

	catalogClassesGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "mission_scanner",
		Name:      "catalog_classes",
		Help:      "Number of classes in the active catalog",
	})
	missingClassesGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "mission_scanner",
		Name:      "missing_classes",
		Help:      "Distinct missing classes found by the most recent validation run",
	})
)

// Register initializes metrics with the global Prometheus registry (idempotent)
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(matcherQueries, matcherResults, matcherChunkFailures,
			suggestionsGenerated, missionsValidated, validationDuration,
			catalogClassesGauge, missingClassesGauge)
	})
}

// Matcher helpers
func IncMatcherQuery()                { matcherQueries.Inc() }
func IncMatcherResult(matchType string) { matcherResults.WithLabelValues(matchType).Inc() }
func IncMatcherChunkFailure()         { matcherChunkFailures.Inc() }

// Suggestion and validation helpers
func AddSuggestionsGenerated(n int) { suggestionsGenerated.Add(float64(n)) }
func IncMissionValidated()          { missionsValidated.Inc() }
func ObserveValidationDuration(d time.Duration) {
	validationDuration.Observe(d.Seconds())
}

// Gauges
func SetCatalogClasses(n int) { catalogClassesGauge.Set(float64(n)) }
func SetMissingClasses(n int) { missingClassesGauge.Set(float64(n)) }
