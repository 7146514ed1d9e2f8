package callgate

import (
	"context"

	"github.com/vnykmshr/callpace/pkg/pacing/pacer"
)

// Do acquires a permit, runs op, and releases the permit's slot when op
// returns or panics. The error from op is returned unchanged.
func (g *Gate) Do(ctx context.Context, op Operation) error {
	if err := g.pacer.Acquire(ctx); err != nil {
		return err
	}
	defer g.pacer.Complete()

	return op(ctx)
}

// Pacer returns the pacer this gate schedules operations with.
func (g *Gate) Pacer() pacer.Pacer {
	return g.pacer
}

// Do runs an operation that produces a value through g. On a failed permit
// wait it returns the zero value and the context's error; otherwise it
// returns whatever op returns, unchanged.
func Do[T any](ctx context.Context, g Gater, op func(ctx context.Context) (T, error)) (T, error) {
	var result T
	err := g.Do(ctx, func(ctx context.Context) error {
		var opErr error
		result, opErr = op(ctx)
		return opErr
	})
	return result, err
}
