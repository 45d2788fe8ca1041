// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package metrics provides Prometheus collectors for provider dispatch and
// the HTTP front door.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metric names.
const (
	MetricProviderRequests  = "metasearch_provider_requests_total"
	MetricProviderFailures  = "metasearch_provider_failures_total"
	MetricProviderResults   = "metasearch_provider_results_total"
	MetricProviderDuration  = "metasearch_provider_duration_seconds"
	MetricHTTPRequests      = "metasearch_http_requests_total"
	MetricHTTPDuration = "metasearch_http_request_duration_seconds"
)

// Metrics holds the collectors. All methods are safe for concurrent use.
type Metrics struct {
	providerRequests *prometheus.CounterVec
	providerFailures *prometheus.CounterVec
	providerResults  *prometheus.CounterVec
	providerDuration *prometheus.HistogramVec
	httpRequests     *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
}

// NewMetrics creates the collectors. They are not registered; call Register.
func NewMetrics() *Metrics {
	return &Metrics{
		providerRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricProviderRequests,
				Help: "Provider dispatches by source",
			},
			[]string{"source"},
		),
		providerFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricProviderFailures,
				Help: "Provider dispatches that failed, by source",
			},
			[]string{"source"},
		),
		providerResults: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricProviderResults,
				Help: "Records returned by providers, by source",
			},
			[]string{"source"},
		),
		providerDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    MetricProviderDuration,
				Help:    "Provider dispatch latency in seconds",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 15},
			},
			[]string{"source"},
		),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricHTTPRequests,
				Help: "HTTP requests served",
			},
			[]string{"method", "path", "status"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    MetricHTTPDuration,
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{0.01, 0.1, 0.5, 1, 2, 5, 15},
			},
			[]string{"method", "path"},
		),
	}
}

// Register registers every collector with reg.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	for _, c := range m.Collectors() {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// Collectors returns all collectors.
func (m *Metrics) Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.providerRequests,
		m.providerFailures,
		m.providerResults,
		m.providerDuration,
		m.httpRequests,
		m.httpDuration,
	}
}

// ObserveDispatch records one provider call. It satisfies search.Recorder.
func (m *Metrics) ObserveDispatch(source string, took time.Duration, count int, err error) {
	m.providerRequests.WithLabelValues(source).Inc()
	m.providerDuration.WithLabelValues(source).Observe(took.Seconds())
	if err != nil {
		m.providerFailures.WithLabelValues(source).Inc()
		return
	}
	m.providerResults.WithLabelValues(source).Add(float64(count))
}

// ObserveHTTP records one served request. path should be the route
// template, not the raw URL, to keep label cardinality bounded.
func (m *Metrics) ObserveHTTP(method, path string, status int, took time.Duration) {
	m.httpRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, path).Observe(took.Seconds())
}
