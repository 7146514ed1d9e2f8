package distributed

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestValidateConfig(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
	defer func() { _ = rdb.Close() }()

	tests := []struct {
		name    string
		config  Config
		wantErr string
	}{
		{
			name:    "missing redis client",
			config:  Config{Key: "budget", Interval: time.Second},
			wantErr: "redis client is required",
		},
		{
			name:    "missing key",
			config:  Config{Redis: rdb, Interval: time.Second},
			wantErr: "key is required",
		},
		{
			name:    "zero interval",
			config:  Config{Redis: rdb, Key: "budget"},
			wantErr: "interval must be positive",
		},
		{
			name:    "negative interval",
			config:  Config{Redis: rdb, Key: "budget", Interval: -time.Second},
			wantErr: "interval must be positive",
		},
		{
			name:   "valid",
			config: Config{Redis: rdb, Key: "budget", Interval: time.Second},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateConfig(tt.config)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}

			if err == nil {
				t.Fatal("expected error, got nil")
			}
			var cerr *ConfigError
			if !errors.As(err, &cerr) {
				t.Fatalf("expected ConfigError, got %T", err)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want contains %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	// Validation failures must surface before any Redis traffic.
	dp, err := New(Config{})
	if err == nil {
		t.Fatal("expected error for empty config")
	}
	if dp != nil {
		t.Error("expected nil pacer on error")
	}
}

func TestApplyConfigDefaults(t *testing.T) {
	config := applyConfigDefaults(Config{Key: "budget", Interval: time.Second})

	if config.InstanceID == "" {
		t.Error("InstanceID should be generated")
	}
	if config.RedisTimeout != 500*time.Millisecond {
		t.Errorf("RedisTimeout = %v, want 500ms", config.RedisTimeout)
	}
	if config.RetryInterval != 100*time.Millisecond {
		t.Errorf("RetryInterval = %v, want 100ms", config.RetryInterval)
	}
	if config.KeyTTL != time.Hour {
		t.Errorf("KeyTTL = %v, want 1h", config.KeyTTL)
	}

	// Explicit values survive
	config = applyConfigDefaults(Config{
		InstanceID:    "custom",
		RedisTimeout:  time.Second,
		RetryInterval: time.Millisecond,
		KeyTTL:        time.Minute,
	})
	if config.InstanceID != "custom" || config.RedisTimeout != time.Second ||
		config.RetryInterval != time.Millisecond || config.KeyTTL != time.Minute {
		t.Errorf("explicit config values were overwritten: %+v", config)
	}
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.InstanceID == "" {
		t.Error("InstanceID should be generated")
	}
	if !config.FallbackToLocal {
		t.Error("FallbackToLocal should default to true")
	}
	if config.RedisTimeout != 500*time.Millisecond {
		t.Errorf("RedisTimeout = %v, want 500ms", config.RedisTimeout)
	}
	if config.KeyTTL != time.Hour {
		t.Errorf("KeyTTL = %v, want 1h", config.KeyTTL)
	}
}

func TestConfigError(t *testing.T) {
	err := &ConfigError{"interval must be positive"}
	want := "distributed pacer config error: interval must be positive"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestRedisError(t *testing.T) {
	cause := errors.New("connection refused")
	err := &RedisError{Operation: "try_grant", Err: cause}

	want := "redis error in try_grant: connection refused"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if !errors.Is(err, cause) {
		t.Error("RedisError should wrap its cause")
	}
}

func TestGenerateInstanceID(t *testing.T) {
	first := generateInstanceID()
	second := generateInstanceID()

	if first == "" {
		t.Fatal("instance ID should not be empty")
	}
	if first == second {
		t.Error("instance IDs should be unique")
	}
}

func TestRedisKeys(t *testing.T) {
	keys := redisKeys("myapp:budget")

	want := map[string]string{
		"last":      "myapp:budget:last_grant",
		"config":    "myapp:budget:config",
		"stats":     "myapp:budget:stats",
		"instances": "myapp:budget:instances",
	}
	for name, key := range want {
		if keys[name] != key {
			t.Errorf("keys[%q] = %q, want %q", name, keys[name], key)
		}
	}
}
