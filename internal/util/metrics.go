package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CustomersCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "crm_customers_created_total",
		Help: "Total number of customers created",
	})

	CustomerValidationFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "crm_customer_validation_failures_total",
		Help: "Total number of rejected customer inputs",
	}, []string{"reason"})

	ProductsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "crm_products_created_total",
		Help: "Total number of products created",
	})

	ProductValidationFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "crm_product_validation_failures_total",
		Help: "Total number of rejected product inputs",
	}, []string{"reason"})

	OrdersCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "crm_orders_created_total",
		Help: "Total number of orders created",
	})

	OrdersFailedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "crm_orders_failed_total",
		Help: "Total number of failed order creations",
	}, []string{"reason"})

	LowStockSweepsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "crm_low_stock_sweeps_total",
		Help: "Total number of low-stock replenishment sweeps",
	})

	LowStockProductsUpdated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "crm_low_stock_products_updated_total",
		Help: "Total number of products topped up by replenishment sweeps",
	})

	HeartbeatsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "crm_heartbeats_total",
		Help: "Total number of heartbeat job runs",
	}, []string{"status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
)
