/*
Package distributed provides permit pacing shared across multiple application
instances, coordinated through Redis.

Where the pacer package spaces calls made by a single process, a distributed
pacer enforces one call budget for a whole fleet. The gate keeps the timestamp
of the most recent grant in Redis; a grant succeeds only when at least the
configured interval has passed since any instance's previous grant. The
decision runs as an atomic Lua script with client-supplied time, so pacing is
unaffected by the Redis server's clock.

Basic usage:

	client := redis.NewClient(&redis.Options{Addr: "localhost:6379"})

	dp, err := distributed.New(distributed.Config{
		Redis:    client,
		Key:      "myapp:api_budget",
		Interval: 500 * time.Millisecond, // 2 calls/sec fleet-wide
	})
	if err != nil {
		log.Fatal(err)
	}
	defer dp.Close()

	if err := dp.Acquire(ctx); err != nil {
		return err
	}
	// Issue the call.

Fallback:

When Redis is unreachable and FallbackToLocal is set with a LocalPacer, pacing
decisions degrade to the local pacer instead of failing. Each instance then
enforces the budget on its own; the fleet may briefly exceed the shared rate.

Fairness:

Blocked instances re-contend for the gate when it reopens; there is no global
FIFO across instances. Within one process, wrap the distributed pacer behind a
local serialized pacer when strict ordering matters.
*/
package distributed
