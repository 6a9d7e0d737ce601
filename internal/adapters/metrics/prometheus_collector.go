package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/tarwn/consuming-logs/internal/domain/world"
)

const (
	// Namespace for all metrics
	namespace = "plantsim"
	// Subsystem for tick driver metrics
	subsystem = "simulator"
)

var (
	// Registry is the global Prometheus registry for all metrics
	Registry *prometheus.Registry

	// globalSimulationCollector is the singleton simulation metrics collector
	// Set by SetGlobalSimulationCollector() when metrics are enabled
	globalSimulationCollector SimulationMetricsRecorder
)

// SimulationMetricsRecorder defines the interface for recording tick metrics.
// Application code records through the package-level functions below.
type SimulationMetricsRecorder interface {
	RecordTickCompleted(durationSeconds float64)
	RecordTickFailed(durationSeconds float64)
	RecordTickDropped()
	RecordDecision(step string, actions int)
	RecordEventPublished(eventType string)
	RecordPlantStatus(status world.Status)
}

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

// SetGlobalSimulationCollector sets the global simulation metrics collector.
// Passing nil turns recording off again.
func SetGlobalSimulationCollector(collector SimulationMetricsRecorder) {
	globalSimulationCollector = collector
}

// RecordTickCompleted records a tick that ran to completion
func RecordTickCompleted(durationSeconds float64) {
	if globalSimulationCollector != nil {
		globalSimulationCollector.RecordTickCompleted(durationSeconds)
	}
}

// RecordTickFailed records a tick aborted by an action error
func RecordTickFailed(durationSeconds float64) {
	if globalSimulationCollector != nil {
		globalSimulationCollector.RecordTickFailed(durationSeconds)
	}
}

// RecordTickDropped records a tick request rejected by the reentrancy guard
func RecordTickDropped() {
	if globalSimulationCollector != nil {
		globalSimulationCollector.RecordTickDropped()
	}
}

// RecordDecision records the number of actions a decide step produced
func RecordDecision(step string, actions int) {
	if globalSimulationCollector != nil {
		globalSimulationCollector.RecordDecision(step, actions)
	}
}

// RecordEventPublished records one published event
func RecordEventPublished(eventType string) {
	if globalSimulationCollector != nil {
		globalSimulationCollector.RecordEventPublished(eventType)
	}
}

// RecordPlantStatus refreshes the cash, inventory and partition gauges
func RecordPlantStatus(status world.Status) {
	if globalSimulationCollector != nil {
		globalSimulationCollector.RecordPlantStatus(status)
	}
}
