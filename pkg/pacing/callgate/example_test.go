package callgate_test

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vnykmshr/callpace/pkg/pacing/callgate"
	"github.com/vnykmshr/callpace/pkg/pacing/pacer"
)

// Example demonstrates issuing calls through a gate
func Example() {
	// 2 calls per second, one at a time
	p, err := pacer.NewSerializedSafe(500 * time.Millisecond)
	if err != nil {
		panic(fmt.Sprintf("Failed to create pacer: %v", err))
	}
	gate, err := callgate.NewSafe(p)
	if err != nil {
		panic(fmt.Sprintf("Failed to create gate: %v", err))
	}

	err = gate.Do(context.Background(), func(ctx context.Context) error {
		fmt.Println("Issuing API call")
		return nil
	})
	if err == nil {
		fmt.Println("Call succeeded")
	}

	// Output:
	// Issuing API call
	// Call succeeded
}

// Example_errorPassthrough demonstrates that operation errors survive the gate
func Example_errorPassthrough() {
	p, err := pacer.NewSerializedSafe(time.Millisecond)
	if err != nil {
		panic(fmt.Sprintf("Failed to create pacer: %v", err))
	}
	gate, err := callgate.NewSafe(p)
	if err != nil {
		panic(fmt.Sprintf("Failed to create gate: %v", err))
	}

	notFound := errors.New("resource not found")
	err = gate.Do(context.Background(), func(ctx context.Context) error {
		return notFound
	})

	fmt.Printf("Same error came back: %v\n", errors.Is(err, notFound))

	// Output: Same error came back: true
}

// Example_typedResult demonstrates the generic form for calls that return values
func Example_typedResult() {
	p, err := pacer.NewSerializedSafe(time.Millisecond)
	if err != nil {
		panic(fmt.Sprintf("Failed to create pacer: %v", err))
	}
	gate, err := callgate.NewSafe(p)
	if err != nil {
		panic(fmt.Sprintf("Failed to create gate: %v", err))
	}

	stats, err := callgate.Do(context.Background(), gate, func(ctx context.Context) (map[string]int, error) {
		// Fetch and decode the response here.
		return map[string]int{"wins": 42}, nil
	})
	if err != nil {
		panic(err)
	}

	fmt.Printf("wins: %d\n", stats["wins"])

	// Output: wins: 42
}
