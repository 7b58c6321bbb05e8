package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// StorefrontMetrics records request latency plus cart and order activity.
type StorefrontMetrics struct {
	requestDuration *prometheus.HistogramVec
	cartOps         *prometheus.CounterVec
	orders          *prometheus.CounterVec
}

// NewStorefrontMetrics registers the storefront metrics on the provided registerer.
func NewStorefrontMetrics(reg prometheus.Registerer) *StorefrontMetrics {
	if reg == nil {
		return &StorefrontMetrics{}
	}
	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
	cartOps := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_operations_total",
		Help: "Cart mutations by operation.",
	}, []string{"operation"})
	orders := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_submitted_total",
		Help: "Order submissions by outcome.",
	}, []string{"outcome"})
	reg.MustRegister(requestDuration, cartOps, orders)
	return &StorefrontMetrics{
		requestDuration: requestDuration,
		cartOps:         cartOps,
		orders:          orders,
	}
}

// ObserveRequest records the latency of a completed HTTP request.
func (m *StorefrontMetrics) ObserveRequest(method, route, status string, duration time.Duration) {
	if m == nil || m.requestDuration == nil {
		return
	}
	m.requestDuration.WithLabelValues(normalizeLabel(method), normalizeLabel(route), normalizeLabel(status)).Observe(duration.Seconds())
}

// IncCartOperation increments the counter for the named cart mutation.
func (m *StorefrontMetrics) IncCartOperation(operation string) {
	if m == nil || m.cartOps == nil {
		return
	}
	m.cartOps.WithLabelValues(normalizeLabel(operation)).Inc()
}

// IncOrderPlaced increments the counter for orders accepted upstream.
func (m *StorefrontMetrics) IncOrderPlaced() {
	if m == nil || m.orders == nil {
		return
	}
	m.orders.WithLabelValues("placed").Inc()
}

// IncOrderMock increments the counter for fabricated fallback orders.
func (m *StorefrontMetrics) IncOrderMock() {
	if m == nil || m.orders == nil {
		return
	}
	m.orders.WithLabelValues("mock").Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
