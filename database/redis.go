package database

import (
	"HospitalAdmin/config"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ErrLockNotAcquired is returned when a lock stays held by someone else
// after every retry.
var ErrLockNotAcquired = errors.New("failed to acquire lock")

type RedisConfig struct {
	URL          string
	PoolSize     int
	DialTimeout  time.Duration
	MinIdleConns int
	ReadTimeout  time.Duration
	MaxRetries   int
}

// LoadRedisConfig maps the application config onto Redis options with defaults.
func LoadRedisConfig(cfg *config.AppConfig) RedisConfig {
	poolSize := cfg.RedisPoolSize
	if poolSize <= 0 {
		poolSize = 10
	}
	return RedisConfig{
		URL:          cfg.RedisAddress,
		PoolSize:     poolSize,
		DialTimeout:  30 * time.Second,
		MinIdleConns: 5,
		ReadTimeout:  10 * time.Second,
		MaxRetries:   3,
	}
}

// NewRedisClient creates a Redis client with the provided configuration
func NewRedisClient(ctx context.Context, cfg RedisConfig) (*redis.Client, error) {
	opt, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	opt.PoolSize = cfg.PoolSize
	opt.MinIdleConns = cfg.MinIdleConns
	opt.DialTimeout = cfg.DialTimeout
	opt.ReadTimeout = cfg.ReadTimeout
	opt.MaxRetries = cfg.MaxRetries

	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping Redis server: %w", err)
	}

	log.Info().
		Int("pool_size", cfg.PoolSize).
		Int("min_idle_conns", cfg.MinIdleConns).
		Dur("dial_timeout", cfg.DialTimeout).
		Dur("read_timeout", cfg.ReadTimeout).
		Int("max_retries", cfg.MaxRetries).
		Msg("redis client initialized")
	return client, nil
}

// Locker hands out short lived distributed locks backed by Redis.
type Locker struct {
	client     *redis.Client
	ttl        time.Duration
	maxRetries int
	retryDelay time.Duration
}

func NewLocker(client *redis.Client) *Locker {
	return &Locker{
		client:     client,
		ttl:        10 * time.Second,
		maxRetries: 3,
		retryDelay: 200 * time.Millisecond,
	}
}

// NewLock acquires a distributed lock using Redis
func (l *Locker) NewLock(ctx context.Context, key string, value string) (bool, error) {
	if l.client == nil {
		return false, errors.New("Redis client is not initialized")
	}
	return l.client.SetNX(ctx, key, value, l.ttl).Result()
}

const releaseLockScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
else
	return 0
end
`

var releaseLock = redis.NewScript(releaseLockScript)

// ReleaseLock releases a distributed lock using Redis with Lua scripting
func (l *Locker) ReleaseLock(ctx context.Context, key string, value string) error {
	if l.client == nil {
		return errors.New("Redis client is not initialized")
	}

	result, err := releaseLock.Run(ctx, l.client, []string{key}, value).Result()
	if err != nil {
		return fmt.Errorf("failed to release lock: %w", err)
	}
	if n, ok := result.(int64); !ok || n == 0 {
		return errors.New("lock release failed: not the lock owner")
	}
	return nil
}

// WithLock runs fn while holding key, retrying acquisition a few times.
func (l *Locker) WithLock(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	value := uuid.New().String()

	var locked bool
	var err error
	for i := 0; i < l.maxRetries; i++ {
		locked, err = l.NewLock(ctx, key, value)
		if err == nil && locked {
			break
		}
		if i < l.maxRetries-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(l.retryDelay):
			}
		}
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrLockNotAcquired, err)
	}
	if !locked {
		return ErrLockNotAcquired
	}

	defer func() {
		if err := l.ReleaseLock(context.WithoutCancel(ctx), key, value); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("failed to release lock")
		}
	}()

	return fn(ctx)
}

// MonitorRedisPool logs the connection pool statistics for monitoring
func MonitorRedisPool(client *redis.Client) {
	stats := client.PoolStats()
	log.Debug().
		Uint32("total", stats.TotalConns).
		Uint32("idle", stats.IdleConns).
		Uint32("stale", stats.StaleConns).
		Msg("redis pool stats")
}
