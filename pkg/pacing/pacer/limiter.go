package pacer

import (
	"context"
	"sync"
	"time"

	"github.com/vnykmshr/callpace/pkg/common/errors"
	"github.com/vnykmshr/callpace/pkg/common/validation"
)

// Mode selects how permits are scheduled.
type Mode int

const (
	// Serialized grants one permit at a time, each spaced from the previous
	// grant by the configured interval. Intervals are measured from grant to
	// grant, not from completion of the wrapped call.
	Serialized Mode = iota

	// Concurrent allows up to MaxConcurrency permits to be outstanding at
	// once, while grant issuance is still spaced by the interval plus the
	// configured compensation.
	Concurrent
)

// String returns the lowercase name of the mode.
func (m Mode) String() string {
	switch m {
	case Serialized:
		return "serialized"
	case Concurrent:
		return "concurrent"
	default:
		return "unknown"
	}
}

// Pacer hands out permits for calls against a shared rate budget. It spaces
// permit grants in time and, in Concurrent mode, bounds how many permits may
// be outstanding simultaneously.
type Pacer interface {
	// Acquire blocks until a permit is granted or ctx is done. Permits are
	// granted strictly in arrival order; no caller is skipped once queued.
	// It returns ctx.Err() if the wait is abandoned, in which case no slot
	// is held on the caller's behalf.
	Acquire(ctx context.Context) error

	// TryAcquire takes a permit without blocking. It fails when the pacing
	// gate is still closed, no concurrency slot is free, or other callers
	// are already queued; it never overtakes a waiter.
	TryAcquire() bool

	// Complete reports that the call issued under a previously granted
	// permit has finished, freeing its concurrency slot for the next
	// queued waiter. It is a no-op in Serialized mode and when pacing is
	// disabled. It panics if called more times than Acquire succeeded.
	Complete()

	// Enabled reports whether pacing is applied at all.
	Enabled() bool

	// Mode returns the configured scheduling mode.
	Mode() Mode

	// Interval returns the minimum time between successive permit grants.
	Interval() time.Duration

	// Compensation returns the extra delay added after each grant in
	// Concurrent mode.
	Compensation() time.Duration

	// MaxConcurrency returns the outstanding-permit bound in Concurrent
	// mode, or 0 in Serialized mode.
	MaxConcurrency() int

	// InFlight returns the number of permits currently outstanding.
	InFlight() int

	// Waiting returns the number of callers queued for a permit.
	Waiting() int
}

// Clock provides the current time. It can be mocked for testing.
type Clock interface {
	Now() time.Time
}

// SystemClock implements Clock using the system time.
type SystemClock struct{}

// Now returns the current system time.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// Config holds configuration options for creating a new Pacer.
// A Config is fixed at construction; the pacer never mutates it.
type Config struct {
	// Enabled controls whether pacing is applied. A disabled pacer grants
	// every permit immediately and tracks no state.
	Enabled bool

	// Mode selects Serialized or Concurrent scheduling.
	Mode Mode

	// Interval is the minimum time between successive permit grants,
	// derived from the backend's published call budget (e.g. 2 calls/sec
	// means 500ms). Zero disables the time gate entirely.
	Interval time.Duration

	// MaxConcurrency bounds the number of outstanding permits.
	// Only meaningful in Concurrent mode, where it must be at least 1.
	MaxConcurrency int

	// Compensation is a fixed delay added after each grant to approximate
	// the wrapped call's own execution time. Only meaningful in Concurrent
	// mode.
	Compensation time.Duration

	// Clock provides the current time. If nil, SystemClock is used.
	Clock Clock
}

// waiter represents one caller queued for a permit.
type waiter struct {
	ready   chan struct{}
	granted bool
}

// pacer implements the Pacer interface with a FIFO waiter queue and a
// timer-driven dispatcher.
type pacer struct {
	mu          sync.Mutex
	cfg         Config
	gateOpensAt time.Time
	inFlight    int
	waiters     []*waiter
	timerArmed  bool
}

// NewSerializedSafe creates a pacer that grants one permit per interval with
// strict arrival ordering. This is the recommended constructor when the
// backend budget must never be exceeded.
func NewSerializedSafe(interval time.Duration) (Pacer, error) {
	return NewWithConfigSafe(Config{
		Enabled:  true,
		Mode:     Serialized,
		Interval: interval,
	})
}

// NewConcurrentSafe creates a pacer that allows up to maxConcurrency calls in
// flight while spacing grants by interval plus compensation.
func NewConcurrentSafe(interval time.Duration, maxConcurrency int, compensation time.Duration) (Pacer, error) {
	return NewWithConfigSafe(Config{
		Enabled:        true,
		Mode:           Concurrent,
		Interval:       interval,
		MaxConcurrency: maxConcurrency,
		Compensation:   compensation,
	})
}

// NewWithConfigSafe creates a new pacer with validation that returns an error
// instead of panicking. This is the recommended way to create pacers for
// production use.
func NewWithConfigSafe(config Config) (Pacer, error) {
	if err := validation.ValidateNonNegativeDuration("pacer", "interval", config.Interval); err != nil {
		return nil, err
	}
	if config.Mode == Concurrent {
		if config.MaxConcurrency < 1 {
			return nil, errors.NewValidationError("pacer", "maxConcurrency", config.MaxConcurrency, "must be at least 1").
				WithHint("maxConcurrency bounds how many calls may be in flight at once")
		}
		if err := validation.ValidateNonNegativeDuration("pacer", "compensation", config.Compensation); err != nil {
			return nil, err
		}
	}
	if config.Clock == nil {
		config.Clock = SystemClock{}
	}

	return &pacer{cfg: config}, nil
}
