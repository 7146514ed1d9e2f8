package distributed

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisIntervalGate implements distributed pacing with a shared last-grant
// timestamp in Redis. A grant succeeds only when at least the configured
// interval has passed since the previous grant by any instance.
type redisIntervalGate struct {
	config Config
	keys   map[string]string

	// Lua script for the atomic check-and-grant decision
	checkAndGrantScript *redis.Script
}

// newRedisIntervalGate creates a new Redis-backed interval gate.
func newRedisIntervalGate(config Config) (DistributedPacer, error) {
	rig := &redisIntervalGate{
		config: config,
		keys:   redisKeys(config.Key),
	}

	// Initialize Lua script
	rig.checkAndGrantScript = redis.NewScript(luaIntervalCheckAndGrant)

	// Initialize in Redis
	if err := rig.initialize(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to initialize interval gate: %w", err)
	}

	return rig, nil
}

// initialize sets up the initial state in Redis.
func (rig *redisIntervalGate) initialize(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, rig.config.RedisTimeout)
	defer cancel()

	pipe := rig.config.Redis.Pipeline()

	// Store configuration
	pipe.HSet(ctx, rig.keys["config"], map[string]interface{}{
		"interval": rig.config.Interval.Microseconds(),
	})
	pipe.Expire(ctx, rig.keys["config"], rig.config.KeyTTL)

	// Initialize stats
	pipe.HSet(ctx, rig.keys["stats"], map[string]interface{}{
		"total_requests":   0,
		"granted_requests": 0,
		"denied_requests":  0,
	})
	pipe.Expire(ctx, rig.keys["stats"], rig.config.KeyTTL)

	// Register this instance
	pipe.SAdd(ctx, rig.keys["instances"], rig.config.InstanceID)
	pipe.Expire(ctx, rig.keys["instances"], rig.config.KeyTTL)

	_, err := pipe.Exec(ctx)
	if err != nil {
		return &RedisError{"initialize", err}
	}

	return nil
}

// tryGrant runs the check-and-grant script once. It returns whether the grant
// succeeded and, if not, how long until the gate reopens.
func (rig *redisIntervalGate) tryGrant(ctx context.Context) (bool, time.Duration, error) {
	ctx, cancel := context.WithTimeout(ctx, rig.config.RedisTimeout)
	defer cancel()

	// The decision uses client-supplied time so Redis server clock settings
	// do not affect pacing.
	now := time.Now()

	result, err := rig.checkAndGrantScript.Run(ctx, rig.config.Redis, []string{
		rig.keys["last"],
		rig.keys["stats"],
	},
		now.UnixMicro(),
		rig.config.Interval.Microseconds(),
		int(rig.config.KeyTTL.Seconds()),
	).Result()

	if err != nil {
		return false, 0, &RedisError{"try_grant", err}
	}

	values, ok := result.([]interface{})
	if !ok || len(values) != 2 {
		return false, 0, &RedisError{"try_grant", fmt.Errorf("unexpected script result %v", result)}
	}

	granted, _ := values[0].(int64)
	waitMicros, _ := values[1].(int64)

	return granted == 1, time.Duration(waitMicros) * time.Microsecond, nil
}

// Acquire blocks until the shared gate grants a permit or ctx is done.
func (rig *redisIntervalGate) Acquire(ctx context.Context) error {
	for {
		granted, wait, err := rig.tryGrant(ctx)
		if err != nil {
			// Fallback to local pacing if configured
			if rig.config.FallbackToLocal && rig.config.LocalPacer != nil {
				return rig.config.LocalPacer.Acquire(ctx)
			}
			return err
		}
		if granted {
			return nil
		}

		// Another instance may take the gate before it reopens, so cap the
		// sleep and re-contend.
		if wait <= 0 || wait > rig.config.RetryInterval {
			wait = rig.config.RetryInterval
		}

		timer := time.NewTimer(wait)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		}
	}
}

// TryAcquire reports whether the shared gate granted a permit right now.
func (rig *redisIntervalGate) TryAcquire(ctx context.Context) bool {
	granted, _, err := rig.tryGrant(ctx)
	if err != nil {
		// Fallback to local pacing if configured
		if rig.config.FallbackToLocal && rig.config.LocalPacer != nil {
			return rig.config.LocalPacer.TryAcquire()
		}
		return false
	}
	return granted
}

// SetInterval changes the minimum time between grants across all instances.
func (rig *redisIntervalGate) SetInterval(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		return &ConfigError{"interval must be positive"}
	}

	ctx, cancel := context.WithTimeout(ctx, rig.config.RedisTimeout)
	defer cancel()

	err := rig.config.Redis.HSet(ctx, rig.keys["config"], "interval", interval.Microseconds()).Err()
	if err != nil {
		return &RedisError{"set_interval", err}
	}

	rig.config.Interval = interval
	return nil
}

// Stats returns current pacer statistics.
func (rig *redisIntervalGate) Stats(ctx context.Context) (*Stats, error) {
	ctx, cancel := context.WithTimeout(ctx, rig.config.RedisTimeout)
	defer cancel()

	pipe := rig.config.Redis.Pipeline()

	configCmd := pipe.HGetAll(ctx, rig.keys["config"])
	instancesCmd := pipe.SMembers(ctx, rig.keys["instances"])
	statsCmd := pipe.HGetAll(ctx, rig.keys["stats"])
	lastCmd := pipe.Get(ctx, rig.keys["last"])

	_, err := pipe.Exec(ctx)
	if err != nil && err != redis.Nil {
		return nil, &RedisError{"stats", err}
	}

	configMap := configCmd.Val()
	intervalMicros, _ := strconv.ParseInt(configMap["interval"], 10, 64)

	instances := instancesCmd.Val()

	statsMap := statsCmd.Val()
	totalRequests, _ := strconv.ParseInt(statsMap["total_requests"], 10, 64)
	grantedRequests, _ := strconv.ParseInt(statsMap["granted_requests"], 10, 64)
	deniedRequests, _ := strconv.ParseInt(statsMap["denied_requests"], 10, 64)

	lastMicros, _ := strconv.ParseInt(lastCmd.Val(), 10, 64)

	return &Stats{
		Interval:        time.Duration(intervalMicros) * time.Microsecond,
		LastGrant:       time.UnixMicro(lastMicros),
		TotalRequests:   totalRequests,
		GrantedRequests: grantedRequests,
		DeniedRequests:  deniedRequests,
		ActiveInstances: instances,
	}, nil
}

// Reset clears the pacer state.
func (rig *redisIntervalGate) Reset(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, rig.config.RedisTimeout)
	defer cancel()

	keys := make([]string, 0, len(rig.keys))
	for _, key := range rig.keys {
		keys = append(keys, key)
	}

	err := rig.config.Redis.Del(ctx, keys...).Err()
	if err != nil {
		return &RedisError{"reset", err}
	}

	return rig.initialize(ctx)
}

// Close cleanly shuts down the pacer.
func (rig *redisIntervalGate) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), rig.config.RedisTimeout)
	defer cancel()

	return rig.config.Redis.SRem(ctx, rig.keys["instances"], rig.config.InstanceID).Err()
}

// Lua script for the interval gate decision
const luaIntervalCheckAndGrant = `
-- KEYS[1]: last grant timestamp key
-- KEYS[2]: stats key
-- ARGV[1]: now (microseconds, client supplied)
-- ARGV[2]: interval (microseconds)
-- ARGV[3]: key TTL (seconds)

local last_key = KEYS[1]
local stats_key = KEYS[2]

local now = tonumber(ARGV[1])
local interval = tonumber(ARGV[2])
local ttl = tonumber(ARGV[3])

local last = tonumber(redis.call('GET', last_key) or "0")
local elapsed = now - last

redis.call('HINCRBY', stats_key, 'total_requests', 1)

if last == 0 or elapsed >= interval then
    -- Take the gate
    redis.call('SET', last_key, now, 'EX', ttl)
    redis.call('HINCRBY', stats_key, 'granted_requests', 1)

    return {1, 0}
else
    redis.call('HINCRBY', stats_key, 'denied_requests', 1)

    return {0, interval - elapsed}
end
`
