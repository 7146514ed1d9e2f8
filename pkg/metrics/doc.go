// Package metrics provides Prometheus instrumentation for callpace components.
//
// This package enables monitoring and observability for callpace's pacing,
// call gating, and distributed pacing components through Prometheus metrics.
//
// # Overview
//
// The metrics package provides automatic instrumentation for:
//   - Permit pacing (grants, denials, wait times, cancellations)
//   - In-flight tracking (outstanding permits, queued callers)
//   - Gated calls (call counts, failures, call durations)
//   - Distributed pacing (shared-gate grants, Redis errors, local fallbacks)
//
// # Quick Start
//
// Enable metrics by using the metrics-enabled constructors:
//
//	// Pacer with metrics
//	p := pacer.NewWithMetrics(pacer.Config{
//		Enabled:  true,
//		Mode:     pacer.Serialized,
//		Interval: 500 * time.Millisecond,
//	}, "api_budget")
//
//	// Call gate with metrics
//	gate := callgate.NewWithMetrics(p, "api_gate")
//
// Then expose metrics via HTTP:
//
//	http.Handle("/metrics", promhttp.Handler())
//	log.Fatal(http.ListenAndServe(":8080", nil))
//
// # Custom Registry
//
// Use a custom Prometheus registry for isolation:
//
//	registry := prometheus.NewRegistry()
//	config := metrics.Config{
//		Enabled:  true,
//		Registry: registry,
//	}
//
//	p := pacer.NewWithConfigAndMetrics(pacerConfig, "api_budget", config)
//
// # Available Metrics
//
// ## Pacer Metrics
//
//   - callpace_pacer_grants_total: Total number of permits granted
//   - callpace_pacer_denied_total: Total number of non-blocking permit requests denied
//   - callpace_pacer_wait_duration_seconds: Time spent waiting for a permit grant
//   - callpace_pacer_in_flight: Number of permits currently outstanding
//   - callpace_pacer_waiting: Number of callers queued for a permit
//   - callpace_pacer_canceled_total: Total number of waits abandoned by cancellation
//
// ## Call Gate Metrics
//
//   - callpace_gate_calls_total: Total number of calls issued through the gate
//   - callpace_gate_failures_total: Total number of gated calls that returned an error
//   - callpace_gate_call_duration_seconds: Time spent executing gated calls
//
// ## Distributed Pacing Metrics
//
//   - callpace_distributed_grants_total: Total number of permits granted by the shared gate
//   - callpace_distributed_redis_errors_total: Total number of Redis errors during pacing decisions
//   - callpace_distributed_fallbacks_total: Total number of decisions made by the local fallback pacer
//
// # Labels
//
// Metrics include relevant labels for filtering and aggregation:
//
//   - mode: "serialized" or "concurrent"
//   - pacer_name: User-provided name for the pacer instance
//   - gate_name: User-provided name for the gate instance
//   - key: Redis key identifying the shared gate
//
// # Runtime Control
//
// Components implementing the Instrumentable interface support runtime control:
//
//	p := pacer.NewWithMetrics(config, "api_budget")
//	mp := p.(*pacer.MetricsPacer)
//	mp.DisableMetrics()           // Stop collecting metrics
//	mp.EnableMetrics(config)      // Re-enable with new config
//	enabled := mp.MetricsEnabled() // Check current state
//
// # Performance
//
// Metrics collection is designed for minimal overhead:
//   - Metrics are updated only when operations occur
//   - No background goroutines or timers
//   - Conditional metrics updates based on enabled state
package metrics
