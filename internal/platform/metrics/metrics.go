// Package metrics defines the Prometheus collectors exported on /metrics.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Outcome labels for data-client calls.
const (
	StatusOK      = "ok"
	StatusNoRow   = "ok_no_row"
	StatusError   = "error"
	OperationList = "list"
	OperationAdd  = "insert"
)

// ClientMetrics tracks calls made to the book storage backend.
type ClientMetrics struct {
	RequestsTotal   *prometheus.CounterVec   // by operation and status
	RequestDuration *prometheus.HistogramVec // by operation
}

// HTTPMetrics tracks requests served by the web surface.
type HTTPMetrics struct {
	RequestsTotal   *prometheus.CounterVec // by method, route, code
	RequestDuration *prometheus.HistogramVec
}

// Metrics bundles every collector together with the registry they live in.
type Metrics struct {
	Registry *prometheus.Registry
	Client   *ClientMetrics
	HTTP     *HTTPMetrics
}

// New creates a fresh registry with Go/process collectors and the
// application metrics registered on it.
func New() (*Metrics, error) {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		Registry: reg,
		Client: &ClientMetrics{
			RequestsTotal: prometheus.NewCounterVec(
				prometheus.CounterOpts{
					Name: "booklog_client_requests_total",
					Help: "Calls to the book storage backend by operation and outcome",
				},
				[]string{"operation", "status"},
			),
			RequestDuration: prometheus.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "booklog_client_request_duration_seconds",
					Help:    "Latency of calls to the book storage backend",
					Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
				},
				[]string{"operation"},
			),
		},
		HTTP: &HTTPMetrics{
			RequestsTotal: prometheus.NewCounterVec(
				prometheus.CounterOpts{
					Name: "booklog_http_requests_total",
					Help: "HTTP requests by method, route pattern and status code",
				},
				[]string{"method", "route", "code"},
			),
			RequestDuration: prometheus.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "booklog_http_request_duration_seconds",
					Help:    "HTTP request latency by route pattern",
					Buckets: prometheus.DefBuckets,
				},
				[]string{"route"},
			),
		},
	}

	for _, c := range []prometheus.Collector{
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.Client.RequestsTotal,
		m.Client.RequestDuration,
		m.HTTP.RequestsTotal,
		m.HTTP.RequestDuration,
	} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("register metrics: %w", err)
		}
	}

	return m, nil
}
