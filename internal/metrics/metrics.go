// Package metrics holds the Prometheus collectors exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wims_http_requests_total",
		Help: "HTTP requests by method, route and status code.",
	}, []string{"method", "route", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "wims_http_request_duration_seconds",
		Help:    "HTTP request latency by method and route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	StockMovements = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wims_stock_movements_total",
		Help: "Recorded stock movements by type.",
	}, []string{"type"})

	AlertsRaised = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wims_inventory_alerts_total",
		Help: "Inventory alerts raised by type.",
	}, []string{"type"})

	OrderTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wims_order_transitions_total",
		Help: "Order status changes by resulting status.",
	}, []string{"status"})

	JobsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wims_jobs_processed_total",
		Help: "Background jobs by type and outcome.",
	}, []string{"type", "outcome"})
)
