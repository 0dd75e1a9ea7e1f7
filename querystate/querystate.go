package querystate

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

// Key identifies one listing: an entity and its active filters.
type Key struct {
	Entity  string
	Filters map[string]string
}

func NewKey(entity string, filters map[string]string) Key {
	return Key{Entity: entity, Filters: filters}
}

// String is the canonical cache key. Filters are sorted and empty values
// dropped, so equal filter sets share a key and any change yields a new one.
func (k Key) String() string {
	values := url.Values{}
	for name, v := range k.Filters {
		if v != "" {
			values.Set(name, v)
		}
	}
	return "query:" + k.Entity + ":" + values.Encode()
}

// Store persists successful results. cache.Cache implements it.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, key string) error
	DeleteAll(ctx context.Context, pattern string) error
}

// Result is what a screen renders: data, whether a fetch is running and the
// error of the last fetch.
type Result[T any] struct {
	Data      T     `json:"data"`
	IsLoading bool  `json:"is_loading"`
	Error     error `json:"-"`
	Cached    bool  `json:"cached"`
	// Shared is set when the data came from a fetch another caller ran.
	Shared bool `json:"-"`
}

// fetchTimeout bounds a shared fetch, which no longer follows the
// cancellation of the request that started it.
const fetchTimeout = 30 * time.Second

// Client caches the latest successful result per key and runs at most one
// fetch per key at a time.
type Client struct {
	store Store
	ttl   time.Duration
	group singleflight.Group

	mu       sync.Mutex
	inflight map[string]int
	// epoch counts invalidations per entity; a fetch that started in an
	// older epoch does not cache its result.
	epoch map[string]uint64
}

func NewClient(store Store, ttl time.Duration) *Client {
	return &Client{store: store, ttl: ttl, inflight: make(map[string]int), epoch: make(map[string]uint64)}
}

// Fetcher loads the data of a key.
type Fetcher[T any] func(ctx context.Context) (T, error)

// Fetch returns the cached result of key or runs fn. Concurrent callers for
// the same key share one call to fn, which runs detached from the caller's
// cancellation. Only successful results are cached.
func Fetch[T any](ctx context.Context, c *Client, key Key, fn Fetcher[T]) Result[T] {
	k := key.String()
	if data, ok := lookup[T](ctx, c, k); ok {
		return Result[T]{Data: data, Cached: true}
	}

	// Do runs the function in this goroutine, so ran is only set for the
	// caller that actually fetched.
	ran := false
	v, err, _ := c.group.Do(k, func() (interface{}, error) {
		ran = true
		started := c.track(key.Entity, k, 1)
		defer c.track(key.Entity, k, -1)

		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), fetchTimeout)
		defer cancel()

		data, err := fn(fetchCtx)
		if err != nil {
			return data, err
		}
		if c.currentEpoch(key.Entity) == started {
			c.save(fetchCtx, k, data)
			// an Invalidate that ran during the save must win
			if c.currentEpoch(key.Entity) != started {
				c.drop(fetchCtx, k)
			}
		}
		return data, nil
	})
	data, _ := v.(T)
	return Result[T]{Data: data, Error: err, Shared: !ran}
}

// Refetch drops the cached result of key and fetches it again, without
// joining a fetch that started before the call.
func Refetch[T any](ctx context.Context, c *Client, key Key, fn Fetcher[T]) Result[T] {
	k := key.String()
	c.mu.Lock()
	c.epoch[key.Entity]++
	c.mu.Unlock()
	c.group.Forget(k)
	c.drop(ctx, k)
	return Fetch(ctx, c, key, fn)
}

// Invalidate drops every cached listing of entity. Related entities are not
// touched.
func (c *Client) Invalidate(ctx context.Context, entity string) error {
	prefix := "query:" + entity + ":"
	c.mu.Lock()
	c.epoch[entity]++
	for k := range c.inflight {
		if strings.HasPrefix(k, prefix) {
			c.group.Forget(k)
		}
	}
	c.mu.Unlock()
	if c.store == nil {
		return nil
	}
	return c.store.DeleteAll(ctx, prefix+"*")
}

// Snapshot reports the cached data of key, if any, and whether a fetch for
// it is running. It never fetches.
func Snapshot[T any](ctx context.Context, c *Client, key Key) Result[T] {
	k := key.String()
	data, ok := lookup[T](ctx, c, k)
	return Result[T]{Data: data, Cached: ok, IsLoading: c.loading(k)}
}

func (c *Client) loading(k string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inflight[k] > 0
}

// track adjusts the in-flight count of k and returns the entity's epoch.
func (c *Client) track(entity, k string, delta int) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.inflight[k] += delta
	if c.inflight[k] <= 0 {
		delete(c.inflight, k)
	}
	return c.epoch[entity]
}

func (c *Client) currentEpoch(entity string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.epoch[entity]
}

func lookup[T any](ctx context.Context, c *Client, k string) (T, bool) {
	var data T
	if c.store == nil {
		return data, false
	}
	raw, ok, err := c.store.Get(ctx, k)
	if err != nil {
		log.Warn().Err(err).Str("key", k).Msg("query cache read failed")
		return data, false
	}
	if !ok {
		return data, false
	}
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		log.Warn().Err(err).Str("key", k).Msg("discarding undecodable cached result")
		return data, false
	}
	return data, true
}

func (c *Client) save(ctx context.Context, k string, data interface{}) {
	if c.store == nil {
		return
	}
	raw, err := json.Marshal(data)
	if err != nil {
		log.Warn().Err(err).Str("key", k).Msg("query result not cacheable")
		return
	}
	if err := c.store.Set(ctx, k, raw, c.ttl); err != nil {
		log.Warn().Err(err).Str("key", k).Msg("query cache write failed")
	}
}

func (c *Client) drop(ctx context.Context, k string) {
	if c.store == nil {
		return
	}
	if err := c.store.Delete(ctx, k); err != nil {
		log.Warn().Err(err).Str("key", k).Msg("query cache delete failed")
	}
}
