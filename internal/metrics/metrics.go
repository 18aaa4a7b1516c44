// Package metrics exposes Prometheus instrumentation for the inventory core.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	StockMovementsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stock_movements_total",
		Help: "Total number of recorded stock movements",
	}, []string{"type"})

	StockMovementsFailed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stock_movements_failed_total",
		Help: "Total number of rejected stock movements",
	}, []string{"reason"})

	StockAlertsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stock_alerts_total",
		Help: "Total number of stock alerts emitted by observers",
	}, []string{"kind"})

	ProductsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "products_created_total",
		Help: "Total number of products created",
	})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
)
