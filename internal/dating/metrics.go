package dating

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	compatibilityScores = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "matching_compatibility_scores",
			Help:    "Distribution of overall compatibility scores",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
	)

	scoreCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "matching_score_cache_lookups_total",
			Help: "Compatibility score cache lookups by result",
		},
		[]string{"result"},
	)

	profileViewsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "matching_profile_views_total",
			Help: "Total number of recorded profile views by action",
		},
		[]string{"action"},
	)

	tasteRebuilds = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "matching_taste_rebuilds_total",
			Help: "Taste profile rebuilds by outcome",
		},
		[]string{"outcome"},
	)

	tasteConfidence = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "matching_taste_confidence",
			Help:    "Confidence of rebuilt taste profiles",
			Buckets: prometheus.LinearBuckets(0, 0.1, 11),
		},
	)

	hotpicksGenerated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "matching_hotpicks_generated_total",
			Help: "Total number of hotpicks generated",
		},
	)

	operationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "matching_operation_duration_seconds",
			Help: "Duration of matching service operations",
		},
		[]string{"operation"},
	)
)

func RecordCompatibilityScore(score int) {
	compatibilityScores.Observe(float64(score))
}

func RecordScoreCacheLookup(hit bool) {
	if hit {
		scoreCacheLookups.WithLabelValues("hit").Inc()
		return
	}
	scoreCacheLookups.WithLabelValues("miss").Inc()
}

func RecordProfileView(action string) {
	profileViewsTotal.WithLabelValues(action).Inc()
}

func RecordTasteRebuild(err error, confidence float64) {
	if err != nil {
		tasteRebuilds.WithLabelValues("error").Inc()
		return
	}
	tasteRebuilds.WithLabelValues("ok").Inc()
	tasteConfidence.Observe(confidence)
}

func RecordHotpicks(n int) {
	hotpicksGenerated.Add(float64(n))
}

func RecordOperationDuration(operation string, start time.Time) {
	operationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}
