package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Operation counters, exposed at /metrics. Labels stay low-cardinality:
// outcome is one of ok/rejected/error.
var (
	reconcileRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "training",
		Name:      "reconcile_runs_total",
		Help:      "Calendar reconciliation runs by outcome.",
	}, []string{"outcome"})

	completions = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "training",
		Name:      "completions_total",
		Help:      "Calendar entries transitioned to Completed by roster uploads.",
	})

	calendarResets = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "training",
		Name:      "calendar_resets_total",
		Help:      "Bulk calendar status resets.",
	})
)
