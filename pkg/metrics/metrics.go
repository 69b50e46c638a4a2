// Package metrics holds the worker's Prometheus collectors. They register on
// the default registry and are served by the ops server at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ReservationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "settlement_reservations_total",
		Help: "Reserve calls, labeled by observed status",
	}, []string{"status"})

	ReconcileSlicesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "settlement_reconcile_slices_total",
		Help: "Conversion slice outcomes per reconcile pass",
	}, []string{"outcome"})

	ReconcileDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "settlement_reconcile_duration_seconds",
		Help:    "Latency of a full reconcile invocation",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	})

	RefundsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "settlement_refunds_total",
		Help: "Refund triggers, labeled by kind and result",
	}, []string{"kind", "result"})

	SubmissionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "settlement_submissions_total",
		Help: "Ledger submissions, labeled by chain and path taken",
	}, []string{"chain", "path"})

	LockEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "settlement_lock_events_total",
		Help: "Distributed lock acquire failures, extension failures and lost locks",
	}, []string{"event"})

	ExchangeCallsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "settlement_exchange_calls_total",
		Help: "Exchange API calls, labeled by operation and result",
	}, []string{"operation", "result"})

	QueueDeliveriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "settlement_queue_deliveries_total",
		Help: "Consumed queue messages, labeled by topic and ack decision",
	}, []string{"topic", "decision"})
)
