package distributed

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// DistributedPacer provides permit pacing across multiple application
// instances using Redis as the coordination backend. All instances draw
// from one shared call budget.
type DistributedPacer interface {
	// Acquire blocks until the shared gate grants a permit or ctx is done.
	Acquire(ctx context.Context) error

	// TryAcquire reports whether the shared gate granted a permit right now.
	TryAcquire(ctx context.Context) bool

	// SetInterval changes the minimum time between grants across all instances.
	SetInterval(ctx context.Context, interval time.Duration) error

	// Stats returns current pacer statistics.
	Stats(ctx context.Context) (*Stats, error)

	// Reset clears the pacer state (useful for testing).
	Reset(ctx context.Context) error

	// Close cleanly shuts down the pacer and releases resources.
	Close() error
}

// Stats holds distributed pacer statistics.
type Stats struct {
	Interval        time.Duration
	LastGrant       time.Time
	TotalRequests   int64
	GrantedRequests int64
	DeniedRequests  int64
	ActiveInstances []string
}

// LocalPacer is the minimal pacing surface used when Redis is unavailable.
type LocalPacer interface {
	Acquire(ctx context.Context) error
	TryAcquire() bool
}

// Config holds configuration for distributed pacers.
type Config struct {
	// Redis client for coordination
	Redis redis.UniversalClient

	// Key is the Redis key prefix for this pacer
	Key string

	// Interval is the minimum time between grants across all instances
	Interval time.Duration

	// InstanceID uniquely identifies this application instance
	InstanceID string

	// FallbackToLocal enables local pacing if Redis is unavailable
	FallbackToLocal bool

	// LocalPacer is used when Redis is unavailable (if FallbackToLocal is true)
	LocalPacer LocalPacer

	// RedisTimeout is the timeout for Redis operations
	RedisTimeout time.Duration

	// RetryInterval caps how long a blocked Acquire sleeps between gate checks
	// (defaults to 100ms)
	RetryInterval time.Duration

	// KeyTTL is how long Redis keys should live (defaults to 1 hour)
	KeyTTL time.Duration
}

// DefaultConfig returns a default distributed pacer configuration.
func DefaultConfig() Config {
	return Config{
		InstanceID:      generateInstanceID(),
		FallbackToLocal: true,
		RedisTimeout:    500 * time.Millisecond,
		RetryInterval:   100 * time.Millisecond,
		KeyTTL:          time.Hour,
	}
}

// New creates a new distributed pacer coordinated through Redis.
func New(config Config) (DistributedPacer, error) {
	if err := validateConfig(config); err != nil {
		return nil, err
	}

	config = applyConfigDefaults(config)

	return newRedisIntervalGate(config)
}

// validateConfig validates the pacer configuration.
func validateConfig(config Config) error {
	if config.Redis == nil {
		return &ConfigError{"redis client is required"}
	}
	if config.Key == "" {
		return &ConfigError{"key is required"}
	}
	if config.Interval <= 0 {
		return &ConfigError{"interval must be positive"}
	}
	return nil
}

// applyConfigDefaults sets default values for unspecified config fields.
func applyConfigDefaults(config Config) Config {
	if config.InstanceID == "" {
		config.InstanceID = generateInstanceID()
	}
	if config.RedisTimeout == 0 {
		config.RedisTimeout = 500 * time.Millisecond
	}
	if config.RetryInterval == 0 {
		config.RetryInterval = 100 * time.Millisecond
	}
	if config.KeyTTL == 0 {
		config.KeyTTL = time.Hour
	}
	return config
}

// ConfigError represents a configuration error.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return "distributed pacer config error: " + e.Message
}

// RedisError represents a Redis operation error.
type RedisError struct {
	Operation string
	Err       error
}

func (e *RedisError) Error() string {
	return "redis error in " + e.Operation + ": " + e.Err.Error()
}

func (e *RedisError) Unwrap() error {
	return e.Err
}
