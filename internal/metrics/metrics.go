package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	namespace = "modboard"
)

var (
	refreshDurationBuckets = []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 15, 30}

	// Refresh Metrics
	RefreshDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "refresh_duration_seconds",
		Help:      "Time taken for a full bot API refresh cycle to settle.",
		Buckets:   refreshDurationBuckets,
	})

	RefreshRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "refresh_runs_total",
		Help:      "Count of refresh cycles.",
	}, []string{"status"})

	RefreshLastSuccessTimestamp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "refresh_last_success_timestamp_seconds",
		Help:      "Unix timestamp of the last refresh cycle in which every resource succeeded.",
	})

	ResourceFetchFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "resource_fetch_failures_total",
		Help:      "Count of failed resource fetches, by resource.",
	}, []string{"resource"})

	StaleResponsesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "stale_responses_total",
		Help:      "Responses discarded because a newer request for the same resource was issued.",
	}, []string{"resource"})

	// Resource Metrics
	ResourceItems = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "resource_items",
		Help:      "Number of items in the last applied copy of each collection.",
	}, []string{"resource"})

	// Mutation Metrics
	MutationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "mutations_total",
		Help:      "Count of mutations relayed to the bot API.",
	}, []string{"operation", "status"})
)
