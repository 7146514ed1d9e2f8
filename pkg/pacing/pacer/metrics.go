package pacer

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vnykmshr/callpace/pkg/metrics"
)

// MetricsPacer wraps a Pacer with Prometheus metrics collection.
type MetricsPacer struct {
	pacer    Pacer
	name     string
	registry *metrics.Registry
	enabled  bool
}

// NewWithMetrics creates a new pacer with metrics enabled.
func NewWithMetrics(config Config, name string) Pacer {
	// Use a separate registry for each metrics-enabled component to avoid conflicts
	registry := prometheus.NewRegistry()
	metricsConfig := metrics.Config{
		Enabled:  true,
		Registry: registry,
	}

	return NewWithConfigAndMetrics(config, name, metricsConfig)
}

// NewWithConfigAndMetrics creates a new pacer with custom config and metrics.
func NewWithConfigAndMetrics(config Config, name string, metricsConfig metrics.Config) Pacer {
	basePacer, err := NewWithConfigSafe(config)
	if err != nil {
		panic("invalid pacer configuration: " + err.Error())
	}

	if !metricsConfig.Enabled {
		return basePacer
	}

	registry := metrics.DefaultRegistry
	if metricsConfig.Registry != nil {
		registry = metrics.NewRegistry(metricsConfig.Registry)
	}

	mp := &MetricsPacer{
		pacer:    basePacer,
		name:     name,
		registry: registry,
		enabled:  true,
	}

	mp.updateMetrics()

	return mp
}

// updateMetrics updates the current state gauges.
func (mp *MetricsPacer) updateMetrics() {
	if !mp.enabled {
		return
	}

	mp.registry.PacerInFlight.WithLabelValues(mp.name).Set(float64(mp.pacer.InFlight()))
	mp.registry.PacerWaiting.WithLabelValues(mp.name).Set(float64(mp.pacer.Waiting()))
}

// Acquire blocks until a permit is granted or ctx is done.
func (mp *MetricsPacer) Acquire(ctx context.Context) error {
	if !mp.enabled {
		return mp.pacer.Acquire(ctx)
	}

	mode := mp.pacer.Mode().String()
	mp.registry.PacerWaiting.WithLabelValues(mp.name).Inc()

	start := time.Now()
	err := mp.pacer.Acquire(ctx)
	duration := time.Since(start)

	mp.registry.PacerWaiting.WithLabelValues(mp.name).Dec()
	mp.registry.PacerWaitTime.WithLabelValues(mode, mp.name).Observe(duration.Seconds())

	if err == nil {
		mp.registry.PacerGrants.WithLabelValues(mode, mp.name).Inc()
	} else {
		mp.registry.PacerCanceled.WithLabelValues(mode, mp.name).Inc()
	}

	mp.updateMetrics()

	return err
}

// TryAcquire takes a permit without blocking.
func (mp *MetricsPacer) TryAcquire() bool {
	granted := mp.pacer.TryAcquire()

	if mp.enabled {
		mode := mp.pacer.Mode().String()
		if granted {
			mp.registry.PacerGrants.WithLabelValues(mode, mp.name).Inc()
		} else {
			mp.registry.PacerDenied.WithLabelValues(mode, mp.name).Inc()
		}
		mp.updateMetrics()
	}

	return granted
}

// Complete frees the concurrency slot held by a granted permit.
func (mp *MetricsPacer) Complete() {
	mp.pacer.Complete()

	if mp.enabled {
		mp.updateMetrics()
	}
}

// Enabled reports whether pacing is applied at all.
func (mp *MetricsPacer) Enabled() bool {
	return mp.pacer.Enabled()
}

// Mode returns the configured scheduling mode.
func (mp *MetricsPacer) Mode() Mode {
	return mp.pacer.Mode()
}

// Interval returns the minimum time between successive permit grants.
func (mp *MetricsPacer) Interval() time.Duration {
	return mp.pacer.Interval()
}

// Compensation returns the extra delay added after each grant in Concurrent mode.
func (mp *MetricsPacer) Compensation() time.Duration {
	return mp.pacer.Compensation()
}

// MaxConcurrency returns the outstanding-permit bound in Concurrent mode.
func (mp *MetricsPacer) MaxConcurrency() int {
	return mp.pacer.MaxConcurrency()
}

// InFlight returns the number of permits currently outstanding.
func (mp *MetricsPacer) InFlight() int {
	inFlight := mp.pacer.InFlight()

	if mp.enabled {
		mp.registry.PacerInFlight.WithLabelValues(mp.name).Set(float64(inFlight))
	}

	return inFlight
}

// Waiting returns the number of callers queued for a permit.
func (mp *MetricsPacer) Waiting() int {
	return mp.pacer.Waiting()
}

// EnableMetrics enables metrics collection.
func (mp *MetricsPacer) EnableMetrics(config metrics.Config) error {
	mp.enabled = config.Enabled

	if config.Registry != nil {
		mp.registry = metrics.NewRegistry(config.Registry)
	}

	if mp.enabled {
		mp.updateMetrics()
	}

	return nil
}

// DisableMetrics disables metrics collection.
func (mp *MetricsPacer) DisableMetrics() {
	mp.enabled = false
}

// MetricsEnabled returns true if metrics are currently enabled.
func (mp *MetricsPacer) MetricsEnabled() bool {
	return mp.enabled
}
