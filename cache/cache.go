package cache

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
)

var errNoClient = errors.New("Redis client is not initialized")

type Cache struct {
	client *redis.Client
}

// NewCache wraps client, which must not be nil.
func NewCache(client *redis.Client) (*Cache, error) {
	if client == nil {
		return nil, errNoClient
	}
	return &Cache{client: client}, nil
}

func (c *Cache) Delete(ctx context.Context, key string) error {
	if c.client == nil {
		return errNoClient
	}
	return c.client.Del(ctx, key).Err()
}

// DeleteAll removes every key matching pattern.
func (c *Cache) DeleteAll(ctx context.Context, pattern string) error {
	if c.client == nil {
		return errNoClient
	}
	// SCAN keeps large keyspaces from blocking the server
	iter := c.client.Scan(ctx, 0, pattern, 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

func (c *Cache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	if c.client == nil {
		return errNoClient
	}
	return c.client.Set(ctx, key, value, expiration).Err()
}

// Get returns the stored value. A missing key yields ok == false and no error.
func (c *Cache) Get(ctx context.Context, key string) (string, bool, error) {
	if c.client == nil {
		return "", false, errNoClient
	}
	val, err := c.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (c *Cache) DeleteBatch(ctx context.Context, keys ...string) error {
	if c.client == nil {
		return errNoClient
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

// Append pushes value onto the list at key and refreshes its expiry.
func (c *Cache) Append(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	if c.client == nil {
		return errNoClient
	}
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, key, value)
		pipe.Expire(ctx, key, expiration)
		return nil
	})
	return err
}

// Drain returns every value of the list at key, oldest first, and removes it.
func (c *Cache) Drain(ctx context.Context, key string) ([]string, error) {
	if c.client == nil {
		return nil, errNoClient
	}
	var values *redis.StringSliceCmd
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		values = pipe.LRange(ctx, key, 0, -1)
		pipe.Del(ctx, key)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return values.Val(), nil
}
