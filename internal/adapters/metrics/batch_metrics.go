package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/andrescamacho/eartask-go/internal/domain/batch"
)

// BatchMetricsCollector records sequential batch runs.
// It satisfies the runner's RunRecorder port.
type BatchMetricsCollector struct {
	callsTotal   *prometheus.CounterVec
	callDuration *prometheus.HistogramVec
	runsTotal    *prometheus.CounterVec
	runItems     *prometheus.HistogramVec
}

// NewBatchMetricsCollector creates a new batch metrics collector
func NewBatchMetricsCollector() *BatchMetricsCollector {
	return &BatchMetricsCollector{
		callsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "batch_calls_total",
				Help:      "Total number of batch calls by kind and outcome",
			},
			[]string{"kind", "outcome"},
		),

		callDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "batch_call_duration_seconds",
				Help:      "Duration of a single batch call, pacing excluded",
				Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1.0, 2.0, 5.0, 10.0},
			},
			[]string{"kind"},
		),

		// Runs by how they ended: completed or stopped_early
		runsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "batch_runs_total",
				Help:      "Total number of batch runs by kind and ending",
			},
			[]string{"kind", "ending"},
		),

		runItems: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "batch_run_attempted_calls",
				Help:      "Number of calls attempted per batch run",
				Buckets:   []float64{1, 2, 3, 5, 10, 20, 50},
			},
			[]string{"kind"},
		),
	}
}

// Register registers all batch metrics with the Prometheus registry
func (c *BatchMetricsCollector) Register() error {
	if Registry == nil {
		return nil // Metrics not enabled
	}

	metrics := []prometheus.Collector{
		c.callsTotal,
		c.callDuration,
		c.runsTotal,
		c.runItems,
	}

	for _, metric := range metrics {
		if err := Registry.Register(metric); err != nil {
			return err
		}
	}

	return nil
}

// RecordCall records one batch call
func (c *BatchMetricsCollector) RecordCall(kind batch.Kind, success bool, duration time.Duration) {
	outcome := "success"
	if !success {
		outcome = "failure"
	}
	c.callsTotal.WithLabelValues(string(kind), outcome).Inc()
	c.callDuration.WithLabelValues(string(kind)).Observe(duration.Seconds())
}

// RecordRun records the end of a batch run
func (c *BatchMetricsCollector) RecordRun(kind batch.Kind, progress batch.Progress, stoppedEarly bool) {
	ending := "completed"
	if stoppedEarly {
		ending = "stopped_early"
	}
	c.runsTotal.WithLabelValues(string(kind), ending).Inc()
	c.runItems.WithLabelValues(string(kind)).Observe(float64(progress.Current))
}
