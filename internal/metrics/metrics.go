// Package metrics exposes Prometheus instrumentation for outbound API calls.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is what the API client reports to. Nop satisfies it when metrics
// are off.
type Recorder interface {
	RecordRequest(method, route string, status int, duration time.Duration)
	RecordTransportError(method, route string)
	RecordRejectedWithoutToken(route string)
}

// Collector records request counts and latency into a Prometheus registry.
type Collector struct {
	requests        *prometheus.CounterVec
	latency         *prometheus.HistogramVec
	transportErrors *prometheus.CounterVec
	rejected        *prometheus.CounterVec
}

// NewCollector creates a Collector and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fusion_client_requests_total",
			Help: "API requests by method, route and HTTP status.",
		}, []string{"method", "route", "status_code"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "fusion_client_request_duration_seconds",
			Help:    "API request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		transportErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fusion_client_transport_errors_total",
			Help: "API requests that failed before a response was received.",
		}, []string{"method", "route"}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fusion_client_rejected_without_token_total",
			Help: "Protected calls refused locally because no session token was present.",
		}, []string{"route"}),
	}

	reg.MustRegister(c.requests, c.latency, c.transportErrors, c.rejected)

	return c
}

func (c *Collector) RecordRequest(method, route string, status int, duration time.Duration) {
	c.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.latency.WithLabelValues(method, route).Observe(duration.Seconds())
}

func (c *Collector) RecordTransportError(method, route string) {
	c.transportErrors.WithLabelValues(method, route).Inc()
}

func (c *Collector) RecordRejectedWithoutToken(route string) {
	c.rejected.WithLabelValues(route).Inc()
}

// Handler returns an HTTP handler serving the registry in the Prometheus
// exposition format.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// Nop discards everything.
type Nop struct{}

func (Nop) RecordRequest(string, string, int, time.Duration) {}
func (Nop) RecordTransportError(string, string)              {}
func (Nop) RecordRejectedWithoutToken(string)                {}
