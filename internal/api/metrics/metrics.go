// Package metrics defines and registers all custom Prometheus metrics for
// the ticket service. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default registry at package init via
// promauto, so importing any instrumented package is enough to expose them
// on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "ticket"

// ── Upstream call metrics ─────────────────────────────────────────────────────

// UpstreamRequestsTotal counts outbound calls to the session service and the
// user directory.
// Labels:
//   - service: "session" or "user"
//   - outcome: "ok", "invalid_token", "timeout", "unavailable", "not_found"
var UpstreamRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upstream_requests_total",
		Help:      "Total number of outbound upstream calls, by service and outcome.",
	},
	[]string{"service", "outcome"},
)

// UpstreamRequestDuration measures the wall time of one outbound call.
// Label:
//   - service: "session" or "user"
var UpstreamRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upstream_request_duration_seconds",
		Help:      "Duration of outbound upstream calls.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
	[]string{"service"},
)

// ── Authorization metrics ─────────────────────────────────────────────────────

// AuthDecisionsTotal counts terminal access decisions.
// Labels:
//   - policy:  "owner_or_admin" or "admin_only"
//   - outcome: "allowed_owner", "allowed_admin", "denied", "error"
var AuthDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_decisions_total",
		Help:      "Total number of access decisions, by policy level and outcome.",
	},
	[]string{"policy", "outcome"},
)

// ── Ticket metrics ────────────────────────────────────────────────────────────

// TicketsCreatedTotal counts newly opened tickets.
var TicketsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tickets_created_total",
		Help:      "Total number of tickets created.",
	},
)

// TicketsIdempotentReplaysTotal counts creates answered from the
// idempotency store instead of opening a new ticket.
var TicketsIdempotentReplaysTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tickets_idempotent_replays_total",
		Help:      "Total number of ticket creates replayed via Idempotency-Key.",
	},
)
