// Package metrics defines and registers the custom Prometheus metrics of the
// login API. It is the single source of truth for metric names, labels, and
// help strings.
//
// Metrics are registered with the default registry on package init via
// promauto, so importing the package is enough.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "login"

// ── Authentication metrics ────────────────────────────────────────────────────

// LoginAttemptsTotal counts login attempts by outcome.
// Label:
//   - result: "success", "invalid_credentials", "rejected_input" or "missing_field"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "attempts_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts registration attempts by outcome.
// Label:
//   - result: "created", "exists", "failed" or "missing_field"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by result.",
	},
	[]string{"result"},
)

// ValidationRejectionsTotal counts inputs rejected by the credential validator.
// The rule is never exposed to API callers; this metric is the only place it shows.
// Labels:
//   - field: "email" or "password"
//   - reason: the rule that fired (e.g. "sql_injection", "whitespace")
var ValidationRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "validation_rejections_total",
		Help:      "Total number of credential inputs rejected by the validator.",
	},
	[]string{"field", "reason"},
)

// ── Store metrics ─────────────────────────────────────────────────────────────

// StoreOperationsTotal counts credential store calls.
// Labels:
//   - operation: "find", "exists", "create", "delete"
//   - result: "ok", "not_found", "conflict" or "error"
var StoreOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "store_operations_total",
		Help:      "Total number of credential store operations, by result.",
	},
	[]string{"operation", "result"},
)

// StoreOperationDuration measures credential store latency.
// Label:
//   - operation: "find", "exists", "create", "delete"
var StoreOperationDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "store_operation_duration_seconds",
		Help:      "Duration of credential store operations.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"operation"},
)
