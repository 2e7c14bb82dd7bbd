// Package obs provides opt-in Prometheus metrics for issued S3 requests.
package obs

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds a self-contained Prometheus registry and the collectors for
// request outcomes. A nil *Metrics is valid and records nothing, so the
// client can treat metrics as optional.
type Metrics struct {
	reg      *prometheus.Registry
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
	errors   *prometheus.CounterVec
}

// New creates a Metrics instance with a fresh registry and registers collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "s3browse",
		Name:      "requests_total",
		Help:      "Total number of S3 requests issued, partitioned by operation and status code.",
	}, []string{"op", "code"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "s3browse",
		Name:      "request_duration_seconds",
		Help:      "Histogram of S3 request latencies.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"op"})
	errors := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "s3browse",
		Name:      "errors_total",
		Help:      "Total number of failed operations, partitioned by operation and error kind.",
	}, []string{"op", "kind"})

	_ = reg.Register(requests)
	_ = reg.Register(latency)
	_ = reg.Register(errors)

	return &Metrics{
		reg:      reg,
		requests: requests,
		latency:  latency,
		errors:   errors,
	}
}

// ObserveRequest records one completed HTTP exchange.
func (m *Metrics) ObserveRequest(op string, code int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(op, strconv.Itoa(code)).Inc()
	m.latency.WithLabelValues(op).Observe(elapsed.Seconds())
}

// ObserveError records one failed operation by error kind
// (transport, auth, not_found, format, status).
func (m *Metrics) ObserveError(op, kind string) {
	if m == nil {
		return
	}
	m.errors.WithLabelValues(op, kind).Inc()
}

// Handler returns an http.Handler serving the internal registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}

// Registry returns the underlying Prometheus registry for advanced usage.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.reg
}
