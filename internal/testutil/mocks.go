package testutil

import (
	"context"
	"sync"
	"time"
)

// MockClock implements Clock interface for testing with controllable time.
// This avoids actual time delays in pacing tests.
type MockClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewMockClock creates a new MockClock starting at the given time.
// If zero time is provided, uses current time.
func NewMockClock(start time.Time) *MockClock {
	if start.IsZero() {
		start = time.Now()
	}
	return &MockClock{now: start}
}

// Now returns the current mock time.
func (m *MockClock) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Advance moves the mock clock forward by the given duration.
func (m *MockClock) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
}

// Set sets the mock clock to a specific time.
func (m *MockClock) Set(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = t
}

// MockOperation is a test operation that can simulate various call conditions
// including delays, errors, and call counting.
type MockOperation struct {
	mu         sync.Mutex
	callDelay  time.Duration
	errorOnNth int
	callCount  int
	callTimes  []time.Time
	err        error
}

// NewMockOperation creates a new MockOperation.
func NewMockOperation() *MockOperation {
	return &MockOperation{}
}

// Run implements the operation signature with configurable behavior.
// It records the time of every invocation.
func (mo *MockOperation) Run(ctx context.Context) error {
	mo.mu.Lock()
	mo.callCount++
	n := mo.callCount
	mo.callTimes = append(mo.callTimes, time.Now())
	delay := mo.callDelay
	err := mo.err
	errorOnNth := mo.errorOnNth
	mo.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	if err != nil && (errorOnNth == 0 || n == errorOnNth) {
		return err
	}
	return nil
}

// CallCount returns the number of Run invocations.
func (mo *MockOperation) CallCount() int {
	mo.mu.Lock()
	defer mo.mu.Unlock()
	return mo.callCount
}

// CallTimes returns the recorded invocation times.
func (mo *MockOperation) CallTimes() []time.Time {
	mo.mu.Lock()
	defer mo.mu.Unlock()
	times := make([]time.Time, len(mo.callTimes))
	copy(times, mo.callTimes)
	return times
}

// SetCallDelay configures a delay for each invocation.
func (mo *MockOperation) SetCallDelay(delay time.Duration) {
	mo.mu.Lock()
	defer mo.mu.Unlock()
	mo.callDelay = delay
}

// SetError configures every invocation to return the given error.
func (mo *MockOperation) SetError(err error) {
	mo.mu.Lock()
	defer mo.mu.Unlock()
	mo.err = err
	mo.errorOnNth = 0
}

// SetErrorOnNth configures only the nth invocation to return the given error.
func (mo *MockOperation) SetErrorOnNth(n int, err error) {
	mo.mu.Lock()
	defer mo.mu.Unlock()
	mo.err = err
	mo.errorOnNth = n
}

// Reset clears counters and configured behavior.
func (mo *MockOperation) Reset() {
	mo.mu.Lock()
	defer mo.mu.Unlock()
	mo.callCount = 0
	mo.callTimes = nil
	mo.callDelay = 0
	mo.errorOnNth = 0
	mo.err = nil
}
