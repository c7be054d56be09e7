// Package metrics holds the Prometheus collectors exported by the storefront.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "storefront"

// Metrics groups every collector so tests can use an isolated registry.
type Metrics struct {
	StoreOperations    *prometheus.CounterVec
	CatalogMutations   *prometheus.CounterVec
	OrderEvents        *prometheus.CounterVec
	CartOperations     *prometheus.CounterVec
	WishlistOperations *prometheus.CounterVec
	AdminLogins        *prometheus.CounterVec
	HTTPRequests       *prometheus.CounterVec
	HTTPDuration       *prometheus.HistogramVec
}

// New creates the collectors and registers them with reg. A nil reg skips
// registration.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		StoreOperations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_operations_total",
			Help:      "Store adapter operations by key, operation and result.",
		}, []string{"key", "op", "result"}),
		CatalogMutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_mutations_total",
			Help:      "Catalog add/update/delete operations.",
		}, []string{"op"}),
		OrderEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_events_total",
			Help:      "Orders created and fulfilled.",
		}, []string{"event"}),
		CartOperations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cart_operations_total",
			Help:      "Cart mutations by operation.",
		}, []string{"op"}),
		WishlistOperations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "wishlist_operations_total",
			Help:      "Wishlist mutations by operation.",
		}, []string{"op"}),
		AdminLogins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "admin_logins_total",
			Help:      "Admin login attempts by result.",
		}, []string{"result"}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
	}

	if reg != nil {
		reg.MustRegister(
			m.StoreOperations,
			m.CatalogMutations,
			m.OrderEvents,
			m.CartOperations,
			m.WishlistOperations,
			m.AdminLogins,
			m.HTTPRequests,
			m.HTTPDuration,
		)
	}

	return m
}

// NewNop returns unregistered collectors, for callers that do not export metrics.
func NewNop() *Metrics {
	return New(nil)
}
