package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	// Namespace for all metrics
	namespace = "eartask"
	// Subsystem for client-side metrics
	subsystem = "client"
)

var (
	// Registry is the global Prometheus registry for all metrics
	Registry *prometheus.Registry
)

// InitRegistry initializes the Prometheus registry
// Should be called once at application startup if metrics are enabled
func InitRegistry() {
	Registry = prometheus.NewRegistry()
}

// GetRegistry returns the global Prometheus registry
// Returns nil if metrics are not initialized
func GetRegistry() *prometheus.Registry {
	return Registry
}

// IsEnabled returns true if metrics collection is enabled
func IsEnabled() bool {
	return Registry != nil
}

// Collectors groups every collector the client registers
type Collectors struct {
	API     *APIMetricsCollector
	Command *CommandMetricsCollector
	Batch   *BatchMetricsCollector
}

// NewCollectors creates and registers all collectors.
// Returns nil collectors (and no error) when metrics are disabled.
func NewCollectors() (*Collectors, error) {
	if !IsEnabled() {
		return &Collectors{}, nil
	}

	c := &Collectors{
		API:     NewAPIMetricsCollector(),
		Command: NewCommandMetricsCollector(),
		Batch:   NewBatchMetricsCollector(),
	}

	for _, register := range []func() error{c.API.Register, c.Command.Register, c.Batch.Register} {
		if err := register(); err != nil {
			return nil, err
		}
	}

	return c, nil
}
