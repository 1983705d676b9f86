package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors shared by middleware and services.
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	RateLimitHits   *prometheus.CounterVec
	DownloadsTotal  *prometheus.CounterVec
	DownloadBytes   prometheus.Histogram
}

// NewMetrics registers the collectors on registry.
func NewMetrics(registry prometheus.Registerer, namespace string) *Metrics {
	factory := promauto.With(registry)

	return &Metrics{
		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled",
		}, []string{"method", "route", "status"}),

		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),

		RateLimitHits: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "rate_limit_hits_total",
			Help:      "Requests rejected by the rate limiter",
		}, []string{"route"}),

		DownloadsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "download",
			Name:      "requests_total",
			Help:      "Blob downloads by outcome",
		}, []string{"outcome"}),

		DownloadBytes: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "download",
			Name:      "size_bytes",
			Help:      "Size of downloaded blobs",
			Buckets:   prometheus.ExponentialBuckets(1024, 4, 8),
		}),
	}
}
