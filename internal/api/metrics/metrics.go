// Package metrics defines and registers all custom Prometheus metrics for the
// task tracker API. It is the single source of truth for metric names, labels,
// and help strings. Metrics register themselves with the default registry via
// promauto at package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "tasktracker"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// RegistrationsTotal counts registration attempts.
// Label:
//   - result: "created", "duplicate" or "error"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by result.",
	},
	[]string{"result"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "ok", "invalid_credentials" or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ── Task metrics ──────────────────────────────────────────────────────────────

// TaskMutationsTotal counts task mutations that reached the service layer.
// Labels:
//   - action: "create", "update" or "delete"
//   - result: "ok", "forbidden" or "error"
var TaskMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "task_mutations_total",
		Help:      "Total number of task create/update/delete operations, by action and result.",
	},
	[]string{"action", "result"},
)

// ── Notification metrics ──────────────────────────────────────────────────────

// NotificationsTotal counts individual notification sends.
// Label:
//   - result: "sent", "failed" or "deduped"
var NotificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_total",
		Help:      "Total number of notification sends attempted, by result.",
	},
	[]string{"result"},
)

// NotificationBatchDuration measures how long a full notification fan-out
// takes, from first send to the last one completing.
var NotificationBatchDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "notification_batch_duration_seconds",
		Help:      "Duration of a complete notification fan-out batch.",
		Buckets:   prometheus.DefBuckets,
	},
)
