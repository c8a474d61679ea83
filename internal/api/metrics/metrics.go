// Package metrics defines the custom Prometheus metrics of the bookmarks API.
// Request-level metrics (latency, status codes) come from the echoprometheus
// middleware; this package only carries domain counters.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "bookmarks"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthAttemptsTotal counts signup and login attempts.
// Labels:
//   - operation: "signup" or "login"
//   - result: "success", "duplicate_email", "not_registered", "invalid_credentials", "error"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of signup and login attempts, by outcome.",
	},
	[]string{"operation", "result"},
)

// ── Content metrics ───────────────────────────────────────────────────────────

// ContentOperationsTotal counts content mutations.
// Labels:
//   - operation: "create", "edit", "delete"
//   - type: the content type written, or "" for delete
var ContentOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "content_operations_total",
		Help:      "Total number of successful content mutations.",
	},
	[]string{"operation", "type"},
)

// ContentOwnershipDenialsTotal counts edit/delete attempts on another user's content.
var ContentOwnershipDenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "content_ownership_denials_total",
		Help:      "Total number of edit or delete attempts rejected because the caller is not the owner.",
	},
	[]string{"operation"},
)

// IdempotentReplaysTotal counts create requests answered from the idempotency store.
var IdempotentReplaysTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "content_idempotent_replays_total",
		Help:      "Total number of create requests that replayed a previous result.",
	},
)

// ListResultSize observes how many records a list query returned.
// Label:
//   - scope: "owner" or "type"
var ListResultSize = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "content_list_result_size",
		Help:      "Number of records returned by list queries.",
		Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 250, 500, 1000},
	},
	[]string{"scope"},
)
