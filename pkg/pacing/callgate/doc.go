/*
Package callgate runs operations under a pacing discipline.

A gate pairs a pacer with the acquire-run-release pattern so that callers
never manage permits by hand. Every operation issued through the gate waits
for its permit, runs, and releases its concurrency slot on every exit path,
including errors and panics.

Basic usage:

	p, err := pacer.NewConcurrentSafe(100*time.Millisecond, 3, 0)
	if err != nil {
		log.Fatal(err)
	}
	gate, err := callgate.NewSafe(p)
	if err != nil {
		log.Fatal(err)
	}

	err = gate.Do(ctx, func(ctx context.Context) error {
		return client.Fetch(ctx, url)
	})

Operations that produce a value use the generic form:

	body, err := callgate.Do(ctx, gate, func(ctx context.Context) ([]byte, error) {
		return client.Get(ctx, url)
	})

Error Handling:

The error returned by an operation passes through the gate unchanged, so
errors.Is and errors.As work against the operation's own error types. When
the permit wait is abandoned, the operation never runs and the context's
error is returned instead.

Thread Safety:

A single gate may be shared freely across goroutines. All operations issued
through it draw from the same call budget.
*/
package callgate
