package callgate

import (
	"context"

	"github.com/vnykmshr/callpace/pkg/common/validation"
	"github.com/vnykmshr/callpace/pkg/pacing/pacer"
)

// Operation is a unit of work issued through a gate, typically one outbound
// API call.
type Operation func(ctx context.Context) error

// Gater runs operations under a pacing discipline. Implementations guarantee
// that the concurrency slot taken for an operation is released on every exit
// path, including errors and panics.
type Gater interface {
	// Do acquires a permit, runs op, and releases the permit's slot. The
	// error returned by op is passed through unchanged. If the permit wait
	// is abandoned, op never runs and the context's error is returned.
	Do(ctx context.Context, op Operation) error

	// Pacer returns the pacer this gate schedules operations with.
	Pacer() pacer.Pacer
}

// Gate is the standard Gater implementation. A single gate may be shared by
// any number of goroutines; all of their operations draw from the same call
// budget.
type Gate struct {
	pacer pacer.Pacer
}

// NewSafe creates a gate that paces operations with p.
func NewSafe(p pacer.Pacer) (*Gate, error) {
	if err := validation.ValidateNotNil("callgate", "pacer", p); err != nil {
		return nil, err
	}
	return &Gate{pacer: p}, nil
}
