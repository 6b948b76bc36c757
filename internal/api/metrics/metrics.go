// Package metrics defines the custom Prometheus metrics of the store-rating
// API. Everything is registered on the default registry at import time via
// promauto; HTTP request metrics come from echoprometheus in the router.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "storerating"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "invalid_credentials" or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// SignupsTotal counts accounts created, by role.
var SignupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of accounts created, by role.",
	},
	[]string{"role"},
)

// ── Rating metrics ────────────────────────────────────────────────────────────

// RatingsSubmittedTotal counts accepted ratings.
// Label:
//   - score: "1" … "5"
var RatingsSubmittedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ratings_submitted_total",
		Help:      "Total number of ratings accepted, by score.",
	},
	[]string{"score"},
)

// AggregateQueueDepth is the number of recomputes waiting across all workers.
var AggregateQueueDepth = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "aggregate_queue_depth",
		Help:      "Current number of store rating recomputes pending in the dispatcher.",
	},
)

// AggregateDuration measures one recompute from dequeue to persistence.
// Label:
//   - result: "ok" or "error"
var AggregateDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "aggregate_duration_seconds",
		Help:      "Duration of a store overall rating recompute.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"result"},
)

// PassthroughRequestsTotal counts bodies echoed by POST /api.
var PassthroughRequestsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "passthrough_requests_total",
		Help:      "Total number of requests echoed by the passthrough endpoint.",
	},
)

// ObserveRating records an accepted rating.
func ObserveRating(score int) {
	RatingsSubmittedTotal.WithLabelValues(strconv.Itoa(score)).Inc()
}

// DispatcherObserver feeds dispatcher telemetry into the aggregate metrics.
type DispatcherObserver struct{}

func (DispatcherObserver) QueueDepth(delta float64) {
	AggregateQueueDepth.Add(delta)
}

func (DispatcherObserver) Processed(d time.Duration, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	AggregateDuration.WithLabelValues(result).Observe(d.Seconds())
}
