// README: Prometheus metrics for the order flow and HTTP layer.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	DraftsSaved = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wasel_drafts_saved_total",
		Help: "Draft skeleton and segment writes.",
	})
	OrdersConfirmed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wasel_orders_confirmed_total",
		Help: "Permanent order records written.",
	})
	IncompleteWarnings = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wasel_incomplete_warnings_total",
		Help: "Gated actions rejected below 100% completion.",
	})
	PaymentsSimulated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wasel_payments_simulated_total",
		Help: "Simulated charges executed.",
	})
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "wasel_http_request_duration_seconds",
		Help:    "HTTP request latency by route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})
)
