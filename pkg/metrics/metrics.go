package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// NotificationsCreated counts notifications persisted by type.
	NotificationsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "creatorlane_notifications_created_total",
			Help: "Total number of notifications created",
		},
		[]string{"type"},
	)

	// NotificationsRead counts read transitions (detail fetch or explicit mark).
	NotificationsRead = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "creatorlane_notifications_read_total",
			Help: "Total number of notifications transitioned to read",
		},
	)

	// ModerationActions counts moderation decisions on flagged content (resolve|dismiss).
	ModerationActions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "creatorlane_moderation_actions_total",
			Help: "Total number of moderation decisions",
		},
		[]string{"action"},
	)

	// RoleChecks counts role gate outcomes per required role (allowed|denied).
	RoleChecks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "creatorlane_role_checks_total",
			Help: "Total number of role gate evaluations",
		},
		[]string{"role", "result"},
	)

	// APILatency measures HTTP request latencies.
	APILatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "creatorlane_api_latency_seconds",
			Help:    "API endpoint latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)
