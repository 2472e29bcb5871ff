package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// Metrics holds all Prometheus metrics for the API. Each instance owns its
// registry so servers and tests never collide on registration.
type Metrics struct {
	registry *prometheus.Registry

	// HTTP request metrics
	httpRequestsTotal    *prometheus.CounterVec
	httpRequestDuration  *prometheus.HistogramVec
	httpRequestsInFlight *prometheus.GaugeVec

	// Library file metrics
	fileLoadsTotal   *prometheus.CounterVec
	fileLoadDuration prometheus.Histogram
	fileEntries      prometheus.Gauge
	fileSizeBytes    prometheus.Gauge
	fileUnknownKeys  prometheus.Gauge
	fileDiagnostics  prometheus.Gauge

	// API key authentication metrics
	authRequestsTotal *prometheus.CounterVec

	// Health check metrics
	healthChecksTotal *prometheus.CounterVec
}

// NewMetrics creates all Prometheus metrics on a fresh registry
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		httpRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scratchlive_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status_code"},
		),

		httpRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "scratchlive_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),

		httpRequestsInFlight: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "scratchlive_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"method", "endpoint"},
		),

		fileLoadsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scratchlive_file_loads_total",
				Help: "Total number of library file loads",
			},
			[]string{"status"},
		),

		fileLoadDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "scratchlive_file_load_duration_seconds",
				Help:    "Time to read and parse the library file",
				Buckets: prometheus.DefBuckets,
			},
		),

		fileEntries: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "scratchlive_file_entries",
				Help: "Number of entries in the loaded file",
			},
		),

		fileSizeBytes: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "scratchlive_file_size_bytes",
				Help: "Encoded size of the loaded file in bytes",
			},
		),

		fileUnknownKeys: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "scratchlive_file_unknown_keys",
				Help: "Number of distinct unknown field keys in the loaded file",
			},
		),

		fileDiagnostics: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "scratchlive_file_diagnostics",
				Help: "Number of diagnostics raised while loading the file",
			},
		),

		authRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scratchlive_auth_requests_total",
				Help: "Total number of authentication requests",
			},
			[]string{"status"},
		),

		healthChecksTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scratchlive_health_checks_total",
				Help: "Total number of health checks",
			},
			[]string{"status"},
		),
	}
}

// Handler serves the metrics in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the registry the metrics are registered on
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, endpoint string, statusCode int, duration time.Duration) {
	statusCodeStr := strconv.Itoa(statusCode)

	m.httpRequestsTotal.WithLabelValues(method, endpoint, statusCodeStr).Inc()
	m.httpRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordFileLoad records a load attempt and, on success, the file's shape
func (m *Metrics) RecordFileLoad(success bool, duration time.Duration, entries, size, unknownKeys, diagnostics int) {
	status := statusSuccess
	if !success {
		status = statusError
	}
	m.fileLoadsTotal.WithLabelValues(status).Inc()
	m.fileLoadDuration.Observe(duration.Seconds())
	if !success {
		return
	}
	m.fileEntries.Set(float64(entries))
	m.fileSizeBytes.Set(float64(size))
	m.fileUnknownKeys.Set(float64(unknownKeys))
	m.fileDiagnostics.Set(float64(diagnostics))
}

// RecordAuthRequest records an authentication request
func (m *Metrics) RecordAuthRequest(success bool) {
	status := statusSuccess
	if !success {
		status = statusError
	}
	m.authRequestsTotal.WithLabelValues(status).Inc()
}

// RecordHealthCheck records a health check
func (m *Metrics) RecordHealthCheck(success bool) {
	status := statusSuccess
	if !success {
		status = statusError
	}
	m.healthChecksTotal.WithLabelValues(status).Inc()
}

// InstrumentHandler instruments an HTTP handler with metrics
func (m *Metrics) InstrumentHandler(method, endpoint string, handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		gauge := m.httpRequestsInFlight.WithLabelValues(method, endpoint)
		gauge.Inc()
		defer gauge.Dec()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		handler(rw, r)

		m.RecordHTTPRequest(method, endpoint, rw.statusCode, time.Since(start))
	}
}

// InstrumentAuthMiddleware instruments the authentication middleware
func (m *Metrics) InstrumentAuthMiddleware(next func(http.Handler) http.Handler) func(http.Handler) http.Handler {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next(h).ServeHTTP(rw, r)
			m.RecordAuthRequest(rw.statusCode != http.StatusUnauthorized)
		})
	}
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
