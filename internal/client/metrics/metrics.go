// Package metrics defines the Prometheus instruments for outbound API calls.
// It is the single source of truth for metric names, labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "instalite"

// Outcome labels for RequestsTotal.
const (
	OutcomeOK              = "ok"
	OutcomeError           = "error"
	OutcomeUnauthenticated = "unauthenticated"
	OutcomeAuthRejected    = "auth_rejected"
)

// RequestsTotal counts outbound API calls by operation and outcome.
// "unauthenticated" is counted even though no network request is made:
// the short-circuit is still a call the application attempted.
var RequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "requests_total",
		Help:      "Total number of API calls, by operation and outcome.",
	},
	[]string{"operation", "outcome"},
)

// RequestDuration measures wall time of API calls that reached the network.
var RequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "request_duration_seconds",
		Help:      "Duration of API calls from request start to decoded response.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"operation"},
)

// InFlightRejections counts mutations refused because an identical request
// was still pending.
var InFlightRejections = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "inflight_rejections_total",
		Help:      "Total number of duplicate mutations rejected while pending.",
	},
	[]string{"operation"},
)
