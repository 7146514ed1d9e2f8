package pacer_test

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/vnykmshr/callpace/pkg/pacing/pacer"
)

// Example demonstrates basic serialized pacing
func Example() {
	// Space calls at least 10ms apart, one at a time
	p, err := pacer.NewSerializedSafe(10 * time.Millisecond)
	if err != nil {
		panic(fmt.Sprintf("Failed to create pacer: %v", err))
	}

	ctx := context.Background()
	start := time.Now()
	for i := 0; i < 3; i++ {
		if err := p.Acquire(ctx); err != nil {
			fmt.Printf("Acquire failed: %v\n", err)
			return
		}
		// Issue the call here.
	}

	fmt.Printf("3 calls spaced over at least 20ms: %v\n", time.Since(start) >= 20*time.Millisecond)

	// Output: 3 calls spaced over at least 20ms: true
}

// Example_concurrent demonstrates bounded in-flight calls
func Example_concurrent() {
	// Up to 2 calls in flight, grants spaced 5ms apart
	p, err := pacer.NewConcurrentSafe(5*time.Millisecond, 2, 0)
	if err != nil {
		panic(fmt.Sprintf("Failed to create pacer: %v", err))
	}

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			if err := p.Acquire(context.Background()); err != nil {
				return
			}
			defer p.Complete()

			// Simulate the call.
			time.Sleep(20 * time.Millisecond)
		}()
	}
	wg.Wait()

	fmt.Println("All calls completed")
	fmt.Printf("In flight after drain: %d\n", p.InFlight())

	// Output:
	// All calls completed
	// In flight after drain: 0
}

// Example_tryAcquire demonstrates non-blocking permit checks
func Example_tryAcquire() {
	p, err := pacer.NewSerializedSafe(time.Second)
	if err != nil {
		panic(fmt.Sprintf("Failed to create pacer: %v", err))
	}

	if p.TryAcquire() {
		fmt.Println("First permit granted")
	}
	if !p.TryAcquire() {
		fmt.Println("Second permit denied - gate still closed")
	}

	// Output:
	// First permit granted
	// Second permit denied - gate still closed
}

// Example_disabled demonstrates a pass-through pacer
func Example_disabled() {
	// Useful for tests or environments without a call budget
	p, err := pacer.NewWithConfigSafe(pacer.Config{Enabled: false})
	if err != nil {
		panic(fmt.Sprintf("Failed to create pacer: %v", err))
	}

	if err := p.Acquire(context.Background()); err == nil {
		fmt.Println("Granted immediately")
	}

	// Output: Granted immediately
}
