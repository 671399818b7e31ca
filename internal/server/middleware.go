// Package server provides HTTP server setup, routing, and middleware.
package server

import (
	"net/http"
	"strconv"

	"github.com/felixge/httpsnoop"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the per-request collectors recorded by MetricsMiddleware.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	sent     prometheus.Counter
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "requestlog_http_requests_total",
			Help: "HTTP requests served, by method and status code",
		}, []string{"method", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "requestlog_http_request_duration_seconds",
			Help:    "Time spent serving HTTP requests",
			Buckets: prometheus.DefBuckets,
		}, []string{"method"}),
		sent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "requestlog_http_response_bytes_total",
			Help: "Response body bytes written",
		}),
	}
	reg.MustRegister(m.requests, m.duration, m.sent)
	return m
}

// MetricsMiddleware records status, latency and size of every response.
func MetricsMiddleware(m *Metrics, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		snoop := httpsnoop.CaptureMetrics(next, w, r)
		m.requests.WithLabelValues(r.Method, strconv.Itoa(snoop.Code)).Inc()
		m.duration.WithLabelValues(r.Method).Observe(snoop.Duration.Seconds())
		m.sent.Add(float64(snoop.Written))
	})
}
