/*
Package pacer provides permit pacing for calls against a fixed rate budget.

A pacer spaces permit grants so that outbound calls never exceed a backend's
published call rate. It runs in one of two modes: Serialized, where one call
is issued at a time and successive grants are separated by a minimum interval,
or Concurrent, where up to a bounded number of calls may be in flight while
grants are still spaced in time.

Basic usage:

	p, err := pacer.NewSerializedSafe(500 * time.Millisecond) // 2 calls/sec
	if err != nil {
		log.Fatal(err)
	}

	if err := p.Acquire(ctx); err != nil {
		return err // canceled while waiting
	}
	// Issue the call.

Concurrent mode:

	// Up to 3 calls in flight, grants spaced 100ms apart, with an extra
	// 50ms per grant to absorb the call's own execution time.
	p, err := pacer.NewConcurrentSafe(100*time.Millisecond, 3, 50*time.Millisecond)
	if err != nil {
		log.Fatal(err)
	}

	if err := p.Acquire(ctx); err != nil {
		return err
	}
	defer p.Complete() // frees the slot on every exit path

	// Issue the call.

Ordering:

Permits are granted strictly in arrival order. Waiters form a FIFO queue and
are woken by whichever event satisfies their condition, a timer tick when the
pacing gate reopens or a slot release when an in-flight call completes. There
is no polling.

Cancellation:

A waiter whose context is canceled is removed from the queue without
disturbing the ordering of the remaining waiters, and its would-be
concurrency slot is never counted as held.

Disabled pacing:

	p, _ := pacer.NewWithConfigSafe(pacer.Config{Enabled: false})
	_ = p.Acquire(ctx) // returns immediately, no state is tracked

Error Handling:

Construction fails with a ValidationError for a negative interval, a negative
compensation, or MaxConcurrency below 1 in Concurrent mode. Acquire only
fails when its context is done; the pacer imposes no timeout of its own.

Thread Safety:

All operations are safe for concurrent use. Internal state is guarded by a
mutex that is never held across a wait or a wrapped call.
*/
package pacer
