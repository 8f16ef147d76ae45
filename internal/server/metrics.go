package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rshade/ecotrack/internal/activity"
)

const metricsNamespace = "ecotrack"

// Metrics holds the server's Prometheus collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestInFlight prometheus.Gauge

	parseTotal    *prometheus.CounterVec
	parseItems    prometheus.Histogram
	parseCO2e     *prometheus.HistogramVec
	cacheRequests *prometheus.CounterVec
}

// NewMetrics registers every collector on a fresh registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		requestTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total HTTP requests processed.",
			},
			[]string{"method", "route", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request duration in seconds.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		requestInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: metricsNamespace,
				Subsystem: "http",
				Name:      "in_flight_requests",
				Help:      "Number of in-flight HTTP requests.",
			},
		),
		parseTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: "parser",
				Name:      "parses_total",
				Help:      "Parsed activity descriptions by resolved category and match outcome.",
			},
			[]string{"category", "matched"},
		),
		parseItems: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Subsystem: "parser",
				Name:      "items",
				Help:      "Items extracted per parse.",
				Buckets:   []float64{0, 1, 2, 3, 5, 8},
			},
		),
		parseCO2e: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Subsystem: "parser",
				Name:      "co2e_kg",
				Help:      "Estimated kg CO2e per parse.",
				Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 500},
			},
			[]string{"category"},
		),
		cacheRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: "cache",
				Name:      "requests_total",
				Help:      "Parse cache lookups by result.",
			},
			[]string{"result"},
		),
	}

	registry.MustRegister(
		m.requestTotal,
		m.requestDuration,
		m.requestInFlight,
		m.parseTotal,
		m.parseItems,
		m.parseCO2e,
		m.cacheRequests,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveRequest records one finished HTTP request.
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	m.requestTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ObserveParse records one parse result.
func (m *Metrics) ObserveParse(a activity.Activity) {
	category := a.Category.String()
	m.parseTotal.WithLabelValues(category, strconv.FormatBool(!a.IsEmpty())).Inc()
	m.parseItems.Observe(float64(len(a.Items)))
	m.parseCO2e.WithLabelValues(category).Observe(a.TotalCO2Impact)
}

// ObserveCache records a cache hit or miss.
func (m *Metrics) ObserveCache(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheRequests.WithLabelValues(result).Inc()
}
