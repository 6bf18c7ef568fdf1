// Package metrics defines the Prometheus instrumentation for the pricing API.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ScheduleComputations counts schedule generations by request source and outcome.
	ScheduleComputations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "schedule_computations_total",
			Help: "Number of amortization schedule computations",
		},
		[]string{"source", "status"},
	)

	// CacheLookups counts schedule cache lookups by outcome.
	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "schedule_cache_lookups_total",
			Help: "Number of schedule cache lookups",
		},
		[]string{"result"},
	)

	// RatingLookupMisses counts PD/LGD lookups outside the defined scales.
	RatingLookupMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "rating_lookup_misses_total",
			Help: "Number of PD/LGD lookups outside the defined scales",
		},
	)
)
