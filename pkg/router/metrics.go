package router

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Router metrics, registered with the default Prometheus registry. The dev
// server exposes them on /metrics.
var (
	navigationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "wayfind",
		Subsystem: "router",
		Name:      "navigations_total",
		Help:      "Total number of processed route transitions.",
	})

	matchMissesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "wayfind",
		Subsystem: "router",
		Name:      "match_misses_total",
		Help:      "Total number of pathnames no route matched.",
	})

	loadDurationSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "wayfind",
		Subsystem: "router",
		Name:      "load_duration_seconds",
		Help:      "Duration of page module loads, committed or not.",
		Buckets:   prometheus.DefBuckets,
	})

	loadErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "wayfind",
		Subsystem: "router",
		Name:      "load_errors_total",
		Help:      "Total number of failed page or layout module loads.",
	})

	staleLoadsDiscardedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "wayfind",
		Subsystem: "router",
		Name:      "stale_loads_discarded_total",
		Help:      "Total number of load results discarded because a newer navigation superseded them.",
	})
)
