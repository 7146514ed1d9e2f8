package pacer

import (
	"context"
	"time"

	cpctx "github.com/vnykmshr/callpace/pkg/common/context"
)

// Acquire blocks until a permit is granted or ctx is done.
func (p *pacer) Acquire(ctx context.Context) error {
	if !p.cfg.Enabled {
		return nil
	}

	if cpctx.IsCanceled(ctx) {
		return ctx.Err()
	}

	p.mu.Lock()

	// Fast path: gate open, slot free, nobody queued ahead of us.
	now := p.cfg.Clock.Now()
	if len(p.waiters) == 0 && p.grantable(now) {
		p.grant(now)
		p.mu.Unlock()
		return nil
	}

	// Slow path: join the FIFO queue and wait to be dispatched.
	w := &waiter{ready: make(chan struct{})}
	p.waiters = append(p.waiters, w)
	p.dispatch(now)
	p.mu.Unlock()

	select {
	case <-w.ready:
		return nil
	case <-ctx.Done():
		p.abandon(w)
		return ctx.Err()
	}
}

// TryAcquire takes a permit without blocking. It never overtakes queued
// waiters.
func (p *pacer) TryAcquire() bool {
	if !p.cfg.Enabled {
		return true
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.cfg.Clock.Now()
	if len(p.waiters) > 0 || !p.grantable(now) {
		return false
	}
	p.grant(now)
	return true
}

// Complete frees the concurrency slot held by a granted permit.
func (p *pacer) Complete() {
	if !p.cfg.Enabled || p.cfg.Mode != Concurrent {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.inFlight == 0 {
		panic("pacer: Complete called without a matching Acquire")
	}
	p.inFlight--
	p.dispatch(p.cfg.Clock.Now())
}

// Enabled reports whether pacing is applied at all.
func (p *pacer) Enabled() bool {
	return p.cfg.Enabled
}

// Mode returns the configured scheduling mode.
func (p *pacer) Mode() Mode {
	return p.cfg.Mode
}

// Interval returns the minimum time between successive permit grants.
func (p *pacer) Interval() time.Duration {
	return p.cfg.Interval
}

// Compensation returns the extra delay added after each grant in Concurrent mode.
func (p *pacer) Compensation() time.Duration {
	return p.cfg.Compensation
}

// MaxConcurrency returns the outstanding-permit bound in Concurrent mode.
func (p *pacer) MaxConcurrency() int {
	if p.cfg.Mode != Concurrent {
		return 0
	}
	return p.cfg.MaxConcurrency
}

// InFlight returns the number of permits currently outstanding.
func (p *pacer) InFlight() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.inFlight
}

// Waiting returns the number of callers queued for a permit.
func (p *pacer) Waiting() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.waiters)
}

// slotFree reports whether a concurrency slot is available.
// Serialized mode has no slot bound; only the time gate applies.
// Must be called with p.mu held.
func (p *pacer) slotFree() bool {
	return p.cfg.Mode != Concurrent || p.inFlight < p.cfg.MaxConcurrency
}

// grantable reports whether a permit can be granted right now.
// Must be called with p.mu held.
func (p *pacer) grantable(now time.Time) bool {
	return p.slotFree() && !now.Before(p.gateOpensAt)
}

// grant records a permit grant: the gate closes for the interval (plus
// compensation in Concurrent mode) and the slot count is taken.
// Must be called with p.mu held.
func (p *pacer) grant(now time.Time) {
	if p.cfg.Mode == Concurrent {
		p.inFlight++
		p.gateOpensAt = now.Add(p.cfg.Interval + p.cfg.Compensation)
		return
	}
	p.gateOpensAt = now.Add(p.cfg.Interval)
}

// dispatch grants permits to queued waiters in FIFO order while the gate is
// open and a slot is free, then arms a timer for the next gate opening if the
// head waiter is blocked on time alone. Must be called with p.mu held.
func (p *pacer) dispatch(now time.Time) {
	for len(p.waiters) > 0 && p.grantable(now) {
		w := p.waiters[0]
		p.waiters = p.waiters[1:]
		p.grant(now)
		w.granted = true
		close(w.ready)
	}

	// If waiters remain and only the time gate blocks them, schedule a
	// wakeup for when it reopens. When no slot is free, the next Complete
	// call re-dispatches instead.
	if len(p.waiters) > 0 && p.slotFree() && !p.timerArmed {
		delay := p.gateOpensAt.Sub(now)
		if delay < 0 {
			delay = 0
		}
		p.timerArmed = true
		time.AfterFunc(delay, p.onGateOpen)
	}
}

// onGateOpen runs when the pacing gate reopens.
func (p *pacer) onGateOpen() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.timerArmed = false
	p.dispatch(p.cfg.Clock.Now())
}

// abandon removes a canceled waiter from the queue. If the grant raced with
// cancellation, the unused permit's slot is handed back so it is never
// counted as held.
func (p *pacer) abandon(w *waiter) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if w.granted {
		if p.cfg.Mode == Concurrent {
			p.inFlight--
			p.dispatch(p.cfg.Clock.Now())
		}
		return
	}

	for i, queued := range p.waiters {
		if queued == w {
			p.waiters = append(p.waiters[:i], p.waiters[i+1:]...)
			break
		}
	}
	p.dispatch(p.cfg.Clock.Now())
}
