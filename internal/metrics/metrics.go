// Package metrics provides Prometheus metrics for remote listings, admin
// probes and the REST surface.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	// Namespace for all gitscm metrics
	namespace = "gitscm"

	resultSuccess = "success"
	resultFailure = "failure"
)

// Metrics holds the collectors registered for one process.
type Metrics struct {
	registry *prometheus.Registry

	// ListingTotal tracks remote listings by protocol and result
	ListingTotal *prometheus.CounterVec

	// ListingDuration tracks remote listing latency
	ListingDuration *prometheus.HistogramVec

	// ListingRefs tracks how many references the last listings returned
	ListingRefs prometheus.Histogram

	// AdminProbeTotal tracks admin index fetches by result
	AdminProbeTotal *prometheus.CounterVec

	// AdminProbeDuration tracks admin index latency
	AdminProbeDuration prometheus.Histogram

	// HTTPRequestsTotal tracks REST requests by route and status code
	HTTPRequestsTotal *prometheus.CounterVec
}

// New creates the collectors and registers them, plus the Go and process
// collectors, on a dedicated registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		ListingTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "listing_total",
				Help:      "Total number of remote repository listings",
			},
			[]string{"protocol", "result"},
		),
		ListingDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "listing_duration_seconds",
				Help:      "Duration of remote repository listings in seconds",
				Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
			},
			[]string{"protocol"},
		),
		ListingRefs: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "listing_refs",
				Help:      "Number of references advertised by listed remotes",
				Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
			},
		),
		AdminProbeTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "admin_probe_total",
				Help:      "Total number of admin index requests",
			},
			[]string{"result"},
		),
		AdminProbeDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "admin_probe_duration_seconds",
				Help:      "Duration of admin index requests in seconds",
				Buckets:   prometheus.DefBuckets,
			},
		),
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of REST requests",
			},
			[]string{"method", "route", "code"},
		),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.ListingTotal,
		m.ListingDuration,
		m.ListingRefs,
		m.AdminProbeTotal,
		m.AdminProbeDuration,
		m.HTTPRequestsTotal,
	)

	return m
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordListing records one remote listing.
func (m *Metrics) RecordListing(protocol string, refs int, duration float64, err error) {
	if err != nil {
		m.ListingTotal.WithLabelValues(protocol, resultFailure).Inc()
	} else {
		m.ListingTotal.WithLabelValues(protocol, resultSuccess).Inc()
		m.ListingRefs.Observe(float64(refs))
	}
	m.ListingDuration.WithLabelValues(protocol).Observe(duration)
}

// RecordAdminProbe records one admin index fetch.
func (m *Metrics) RecordAdminProbe(duration float64, err error) {
	result := resultSuccess
	if err != nil {
		result = resultFailure
	}
	m.AdminProbeTotal.WithLabelValues(result).Inc()
	m.AdminProbeDuration.Observe(duration)
}

// RecordHTTPRequest records one REST request.
func (m *Metrics) RecordHTTPRequest(method, route string, code int) {
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
}
