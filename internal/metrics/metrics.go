package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Monitor Cycle Metrics
var (
	// CyclesTotal tracks completed monitor cycles by outcome (success/error)
	CyclesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "monitor_cycles_total",
			Help: "Total monitor cycles by outcome",
		},
		[]string{"outcome"},
	)

	// CycleDuration tracks full cycle duration in seconds
	CycleDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "monitor_cycle_duration_seconds",
			Help:    "Monitor cycle duration in seconds",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10, 30, 60},
		},
	)

	// InteractionsFetched tracks interactions returned by the social feed
	InteractionsFetched = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "monitor_interactions_fetched_total",
			Help: "Total interactions fetched from the social feed",
		},
	)

	// AuthorsProcessed tracks per-author processing results (updated/skipped)
	AuthorsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "monitor_authors_processed_total",
			Help: "Authors processed per cycle by result",
		},
		[]string{"result"},
	)
)

// Downstream Metrics
var (
	// ScoreSubmissions tracks on-chain score submissions by status
	ScoreSubmissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "monitor_score_submissions_total",
			Help: "On-chain score submissions by status",
		},
		[]string{"status"},
	)

	// NotificationsSent tracks score-change notifications by status
	NotificationsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "monitor_notifications_total",
			Help: "Score-change notifications by status",
		},
		[]string{"status"},
	)
)

// Store Metrics
var (
	// StoreOpsTotal tracks score store operations by operation and status
	StoreOpsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "score_store_operations_total",
			Help: "Score store operations by operation and status",
		},
		[]string{"operation", "status"},
	)
)
