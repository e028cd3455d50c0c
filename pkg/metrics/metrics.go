package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all application metrics
type Metrics struct {
	// Backend client metrics
	BackendRequests *prometheus.CounterVec
	BackendLatency  *prometheus.HistogramVec
	ListCacheHits   *prometheus.CounterVec

	// Engine metrics
	CollectionSize  *prometheus.GaugeVec
	RefreshFailures *prometheus.CounterVec
	WritesRejected  *prometheus.CounterVec
}

// NewMetrics creates and registers all application metrics
func NewMetrics(namespace string) *Metrics {
	return NewMetricsWith(namespace, prometheus.DefaultRegisterer)
}

// NewMetricsWith registers the metrics against an explicit registerer.
// Tests pass their own registry to avoid duplicate registration panics.
func NewMetricsWith(namespace string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		BackendRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "backend_requests_total",
			Help:      "Total number of backend REST requests",
		}, []string{"resource", "operation", "status"}),
		BackendLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "backend_request_duration_seconds",
			Help:      "Duration of backend REST requests",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}, []string{"resource", "operation"}),
		ListCacheHits: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "list_cache_hits_total",
			Help:      "Number of list calls served from the local cache",
		}, []string{"resource"}),
		CollectionSize: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "collection_size",
			Help:      "Current number of records held for a resource",
		}, []string{"resource"}),
		RefreshFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "refresh_failures_total",
			Help:      "Number of failed collection refreshes",
		}, []string{"resource"}),
		WritesRejected: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "writes_rejected_total",
			Help:      "Writes rejected because another write was in flight",
		}, []string{"resource"}),
	}
}
