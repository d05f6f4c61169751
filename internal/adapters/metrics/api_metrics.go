package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// APIMetricsCollector tracks calls to the game backend. The code label is the
// envelope code, not the HTTP status: the backend answers 200 for most errors.
type APIMetricsCollector struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	errorsTotal     *prometheus.CounterVec
	rateLimitWait   prometheus.Histogram
}

// NewAPIMetricsCollector creates a new API metrics collector
func NewAPIMetricsCollector() *APIMetricsCollector {
	return &APIMetricsCollector{
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "api_requests_total",
				Help:      "Backend calls by endpoint and envelope code",
			},
			[]string{"method", "endpoint", "code"},
		),

		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "api_request_duration_seconds",
				Help:      "Round trip time of backend calls",
				Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
			},
			[]string{"endpoint"},
		),

		// class is auth, network or api
		errorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "api_errors_total",
				Help:      "Failed backend calls by endpoint and error class",
			},
			[]string{"endpoint", "class"},
		),

		rateLimitWait: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "api_rate_limit_wait_seconds",
				Help:      "Time a call waited for the client-side token bucket",
				Buckets:   []float64{0.001, 0.01, 0.1, 0.5, 1, 2},
			},
		),
	}
}

// Register adds the collector's metrics to the global registry
func (c *APIMetricsCollector) Register() error {
	if Registry == nil {
		return nil
	}

	for _, metric := range []prometheus.Collector{c.requestsTotal, c.requestDuration, c.errorsTotal, c.rateLimitWait} {
		if err := Registry.Register(metric); err != nil {
			return err
		}
	}
	return nil
}

// RecordAPIRequest records a call that produced an envelope
func (c *APIMetricsCollector) RecordAPIRequest(method, endpoint string, code int, duration float64) {
	c.requestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(code)).Inc()
	c.requestDuration.WithLabelValues(endpoint).Observe(duration)
}

// RecordAPIError records a failed call by class
func (c *APIMetricsCollector) RecordAPIError(endpoint, class string) {
	c.errorsTotal.WithLabelValues(endpoint, class).Inc()
}

// RecordRateLimitWait records time spent in the token bucket
func (c *APIMetricsCollector) RecordRateLimitWait(_, _ string, duration float64) {
	c.rateLimitWait.Observe(duration)
}
