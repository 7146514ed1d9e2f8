package callgate

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vnykmshr/callpace/pkg/metrics"
	"github.com/vnykmshr/callpace/pkg/pacing/pacer"
)

// MetricsGate wraps a Gate with Prometheus metrics collection.
type MetricsGate struct {
	gate     *Gate
	name     string
	registry *metrics.Registry
	enabled  bool
}

// NewWithMetrics creates a new gate with metrics enabled.
func NewWithMetrics(p pacer.Pacer, name string) Gater {
	// Use a separate registry for each metrics-enabled component to avoid conflicts
	registry := prometheus.NewRegistry()
	metricsConfig := metrics.Config{
		Enabled:  true,
		Registry: registry,
	}

	return NewWithConfigAndMetrics(p, name, metricsConfig)
}

// NewWithConfigAndMetrics creates a new gate with custom metrics config.
func NewWithConfigAndMetrics(p pacer.Pacer, name string, metricsConfig metrics.Config) Gater {
	baseGate, err := NewSafe(p)
	if err != nil {
		panic("invalid gate configuration: " + err.Error())
	}

	if !metricsConfig.Enabled {
		return baseGate
	}

	registry := metrics.DefaultRegistry
	if metricsConfig.Registry != nil {
		registry = metrics.NewRegistry(metricsConfig.Registry)
	}

	return &MetricsGate{
		gate:     baseGate,
		name:     name,
		registry: registry,
		enabled:  true,
	}
}

// Do acquires a permit, runs op, and records the call outcome and duration.
// The duration covers op alone, not the permit wait.
func (mg *MetricsGate) Do(ctx context.Context, op Operation) error {
	if !mg.enabled {
		return mg.gate.Do(ctx, op)
	}

	return mg.gate.Do(ctx, func(ctx context.Context) error {
		mg.registry.GateCalls.WithLabelValues(mg.name).Inc()

		start := time.Now()
		err := op(ctx)
		mg.registry.GateCallDuration.WithLabelValues(mg.name).Observe(time.Since(start).Seconds())

		if err != nil {
			mg.registry.GateFailures.WithLabelValues(mg.name).Inc()
		}
		return err
	})
}

// Pacer returns the pacer this gate schedules operations with.
func (mg *MetricsGate) Pacer() pacer.Pacer {
	return mg.gate.Pacer()
}

// EnableMetrics enables metrics collection.
func (mg *MetricsGate) EnableMetrics(config metrics.Config) error {
	mg.enabled = config.Enabled

	if config.Registry != nil {
		mg.registry = metrics.NewRegistry(config.Registry)
	}

	return nil
}

// DisableMetrics disables metrics collection.
func (mg *MetricsGate) DisableMetrics() {
	mg.enabled = false
}

// MetricsEnabled returns true if metrics are currently enabled.
func (mg *MetricsGate) MetricsEnabled() bool {
	return mg.enabled
}
