/*
Package callpace provides client-side pacing for calls against rate-limited
backend APIs.

Call Pacing (pkg/pacing):
  - pacer: Permit pacing with serialized or bounded-concurrent scheduling
  - callgate: Wraps API operations so each call transparently takes a permit
  - distributed: Multi-instance pacing coordination with Redis

Example usage:

	import (
		"github.com/vnykmshr/callpace/pkg/pacing/callgate"
		"github.com/vnykmshr/callpace/pkg/pacing/pacer"
	)

	p, _ := pacer.NewSerializedSafe(500 * time.Millisecond) // 2 calls/sec
	gate, _ := callgate.NewSafe(p)

	err := gate.Do(ctx, func(ctx context.Context) error {
		return client.FetchReport(ctx, id)
	})
*/
package callpace
