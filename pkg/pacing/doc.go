/*
Package pacing provides client-side call pacing primitives for Go applications.

This package offers three layers for keeping outbound calls inside a backend's
published budget:

  - pacer: Permit pacing with serialized or bounded-concurrency scheduling
  - callgate: Gated execution that ties permits to individual operations
  - distributed: One shared call budget across multiple instances, via Redis

Serialized vs Concurrent:

Serialized mode issues one call at a time, each spaced from the previous grant
by a minimum interval. It never exceeds the budget:

	p, _ := pacer.NewSerializedSafe(500 * time.Millisecond) // 2 calls/sec
	_ = p.Acquire(ctx)
	// Issue the call

Concurrent mode lets several calls overlap while grants stay spaced in time,
trading strict budget precision for throughput:

	p, _ := pacer.NewConcurrentSafe(100*time.Millisecond, 3, 50*time.Millisecond)
	_ = p.Acquire(ctx)
	defer p.Complete()
	// Issue the call

Most callers should wrap a pacer in a gate rather than manage permits by hand:

	gate, _ := callgate.NewSafe(p)
	err := gate.Do(ctx, func(ctx context.Context) error {
		return client.Fetch(ctx, url)
	})

All pacing primitives grant permits in strict arrival order, are safe for
concurrent use, and integrate with the context package for cancellation and
timeouts.
*/
package pacing
