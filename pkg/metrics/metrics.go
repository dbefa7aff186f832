package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Cache

	CacheHitsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "missions_cache_hits_total",
			Help: "Total number of dashboard cache hits",
		},
	)

	CacheMissesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "missions_cache_misses_total",
			Help: "Total number of dashboard cache misses, expired entries included",
		},
	)

	CacheEvictionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "missions_cache_evictions_total",
			Help: "Total number of cache entries removed",
		},
		[]string{"reason"}, // invalidate, sweep, clear
	)

	CacheEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "missions_cache_entries",
			Help: "Current number of cache entries",
		},
	)

	// Completion pipeline

	CompletionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "missions_completions_total",
			Help: "Total number of complete-today calls by outcome",
		},
		[]string{"outcome"}, // day_done, mission_completed
	)

	BadgesAwardedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "missions_badges_awarded_total",
			Help: "Total number of badges awarded",
		},
	)

	BadgeEvaluationFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "missions_badge_evaluation_failures_total",
			Help: "Badge evaluations that failed after a completion and were swallowed",
		},
	)
)

const (
	OutcomeDayDone          = "day_done"
	OutcomeMissionCompleted = "mission_completed"

	EvictInvalidate = "invalidate"
	EvictSweep      = "sweep"
	EvictClear      = "clear"
)
