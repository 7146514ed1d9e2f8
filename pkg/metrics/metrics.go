// Package metrics provides Prometheus instrumentation for callpace components.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds all metric instances for callpace components.
type Registry struct {
	// Pacer Metrics
	PacerGrants   *prometheus.CounterVec
	PacerDenied   *prometheus.CounterVec
	PacerWaitTime *prometheus.HistogramVec
	PacerInFlight *prometheus.GaugeVec
	PacerWaiting  *prometheus.GaugeVec
	PacerCanceled *prometheus.CounterVec

	// Call Gate Metrics
	GateCalls        *prometheus.CounterVec
	GateFailures     *prometheus.CounterVec
	GateCallDuration *prometheus.HistogramVec

	// Distributed Pacing Metrics
	DistributedGrants    *prometheus.CounterVec
	DistributedRedisErrs *prometheus.CounterVec
	DistributedFallbacks *prometheus.CounterVec
}

// DefaultRegistry is the default metrics registry used by callpace components.
var DefaultRegistry *Registry

func init() {
	DefaultRegistry = NewRegistry(prometheus.DefaultRegisterer)
}

// NewRegistry creates a new metrics registry with the given Prometheus registerer.
func NewRegistry(reg prometheus.Registerer) *Registry {
	factory := promauto.With(reg)

	return &Registry{
		// Pacer Metrics
		PacerGrants: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "callpace",
				Subsystem: "pacer",
				Name:      "grants_total",
				Help:      "Total number of permits granted",
			},
			[]string{"mode", "pacer_name"},
		),

		PacerDenied: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "callpace",
				Subsystem: "pacer",
				Name:      "denied_total",
				Help:      "Total number of non-blocking permit requests denied",
			},
			[]string{"mode", "pacer_name"},
		),

		PacerWaitTime: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "callpace",
				Subsystem: "pacer",
				Name:      "wait_duration_seconds",
				Help:      "Time spent waiting for a permit grant",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"mode", "pacer_name"},
		),

		PacerInFlight: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "callpace",
				Subsystem: "pacer",
				Name:      "in_flight",
				Help:      "Number of permits currently outstanding",
			},
			[]string{"pacer_name"},
		),

		PacerWaiting: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "callpace",
				Subsystem: "pacer",
				Name:      "waiting",
				Help:      "Number of callers queued for a permit",
			},
			[]string{"pacer_name"},
		),

		PacerCanceled: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "callpace",
				Subsystem: "pacer",
				Name:      "canceled_total",
				Help:      "Total number of waits abandoned by context cancellation",
			},
			[]string{"mode", "pacer_name"},
		),

		// Call Gate Metrics
		GateCalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "callpace",
				Subsystem: "gate",
				Name:      "calls_total",
				Help:      "Total number of calls issued through the gate",
			},
			[]string{"gate_name"},
		),

		GateFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "callpace",
				Subsystem: "gate",
				Name:      "failures_total",
				Help:      "Total number of gated calls that returned an error",
			},
			[]string{"gate_name"},
		),

		GateCallDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "callpace",
				Subsystem: "gate",
				Name:      "call_duration_seconds",
				Help:      "Time spent executing gated calls, excluding the permit wait",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"gate_name"},
		),

		// Distributed Pacing Metrics
		DistributedGrants: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "callpace",
				Subsystem: "distributed",
				Name:      "grants_total",
				Help:      "Total number of permits granted by the shared gate",
			},
			[]string{"key"},
		),

		DistributedRedisErrs: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "callpace",
				Subsystem: "distributed",
				Name:      "redis_errors_total",
				Help:      "Total number of Redis errors during pacing decisions",
			},
			[]string{"key"},
		),

		DistributedFallbacks: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "callpace",
				Subsystem: "distributed",
				Name:      "fallbacks_total",
				Help:      "Total number of decisions made by the local fallback pacer",
			},
			[]string{"key"},
		),
	}
}
