package querystate

import (
	"HospitalAdmin/cache"
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ward struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func newTestClient(t *testing.T) (*Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rc := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rc.Close() })
	c, err := cache.NewCache(rc)
	require.NoError(t, err)
	return NewClient(c, time.Minute), mr
}

func TestKey_Canonical(t *testing.T) {
	a := NewKey("patients", map[string]string{"search": "ada", "patient_type": "", "status": "x"})
	b := NewKey("patients", map[string]string{"status": "x", "search": "ada"})
	assert.Equal(t, a.String(), b.String())
	assert.Equal(t, "query:patients:search=ada&status=x", a.String())

	c := NewKey("patients", map[string]string{"search": "adb", "status": "x"})
	assert.NotEqual(t, a.String(), c.String())
	assert.Equal(t, "query:patients:", NewKey("patients", nil).String())
}

func TestFetch_CachesSuccess(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()
	key := NewKey("wards", nil)

	var calls int32
	fn := func(ctx context.Context) ([]ward, error) {
		atomic.AddInt32(&calls, 1)
		return []ward{{ID: "w1", Name: "Cardiology Ward"}}, nil
	}

	first := Fetch(ctx, client, key, fn)
	require.NoError(t, first.Error)
	assert.False(t, first.Cached)
	second := Fetch(ctx, client, key, fn)
	require.NoError(t, second.Error)
	assert.True(t, second.Cached)
	assert.Equal(t, first.Data, second.Data)
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
}

func TestFetch_DoesNotCacheFailure(t *testing.T) {
	client, mr := newTestClient(t)
	ctx := context.Background()
	key := NewKey("wards", nil)

	failed := Fetch(ctx, client, key, func(ctx context.Context) ([]ward, error) {
		return []ward{}, errors.New("backend down")
	})
	assert.Error(t, failed.Error)
	assert.NotNil(t, failed.Data)
	assert.Empty(t, failed.Data)
	assert.False(t, mr.Exists(key.String()))

	ok := Fetch(ctx, client, key, func(ctx context.Context) ([]ward, error) {
		return []ward{{ID: "w1"}}, nil
	})
	require.NoError(t, ok.Error)
	assert.Len(t, ok.Data, 1)
}

func TestFetch_DeduplicatesInFlight(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()
	key := NewKey("beds", map[string]string{"ward_id": "w1"})

	var calls int32
	release := make(chan struct{})
	started := make(chan struct{})
	fn := func(ctx context.Context) ([]ward, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			close(started)
		}
		<-release
		return []ward{{ID: "b1"}}, nil
	}

	var wg sync.WaitGroup
	results := make([]Result[[]ward], 5)
	wg.Add(1)
	go func() {
		defer wg.Done()
		results[0] = Fetch(ctx, client, key, fn)
	}()
	<-started
	assert.True(t, Snapshot[[]ward](ctx, client, key).IsLoading)

	for i := 1; i < len(results); i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = Fetch(ctx, client, key, fn)
		}(i)
	}
	// let the followers reach the shared call
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
	for _, r := range results {
		require.NoError(t, r.Error)
		assert.Equal(t, "b1", r.Data[0].ID)
	}
	assert.False(t, Snapshot[[]ward](ctx, client, key).IsLoading)
}

func TestFetch_LeaderCancellationDoesNotFailFollowers(t *testing.T) {
	client, mr := newTestClient(t)
	key := NewKey("wards", nil)

	release := make(chan struct{})
	started := make(chan struct{})
	var calls int32
	fn := func(ctx context.Context) ([]ward, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			close(started)
		}
		<-release
		if err := ctx.Err(); err != nil {
			return []ward{}, err
		}
		return []ward{{ID: "w1"}}, nil
	}

	leaderCtx, cancel := context.WithCancel(context.Background())
	var leader, follower Result[[]ward]
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		leader = Fetch(leaderCtx, client, key, fn)
	}()
	<-started

	wg.Add(1)
	go func() {
		defer wg.Done()
		follower = Fetch(context.Background(), client, key, fn)
	}()
	time.Sleep(50 * time.Millisecond)
	cancel()
	close(release)
	wg.Wait()

	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
	require.NoError(t, leader.Error)
	require.NoError(t, follower.Error)
	assert.False(t, leader.Shared)
	assert.True(t, follower.Shared)
	assert.Equal(t, "w1", follower.Data[0].ID)
	assert.True(t, mr.Exists(key.String()))
}

// racingStore invalidates the entity while a result is being saved.
type racingStore struct {
	Store
	onSet func()
}

func (s *racingStore) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	if s.onSet != nil {
		s.onSet()
	}
	return s.Store.Set(ctx, key, value, expiration)
}

func TestFetch_InvalidateDuringSaveWins(t *testing.T) {
	mr := miniredis.RunT(t)
	rc := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rc.Close() })
	c, err := cache.NewCache(rc)
	require.NoError(t, err)

	store := &racingStore{Store: c}
	client := NewClient(store, time.Minute)
	ctx := context.Background()
	store.onSet = func() {
		store.onSet = nil
		require.NoError(t, client.Invalidate(ctx, "wards"))
	}

	key := NewKey("wards", nil)
	result := Fetch(ctx, client, key, func(ctx context.Context) ([]ward, error) {
		return []ward{{ID: "stale"}}, nil
	})
	require.NoError(t, result.Error)
	assert.False(t, mr.Exists(key.String()))
	assert.False(t, Snapshot[[]ward](ctx, client, key).Cached)
}

func TestRefetch_BypassesCache(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()
	key := NewKey("wards", nil)

	name := "Old"
	fn := func(ctx context.Context) ([]ward, error) {
		return []ward{{ID: "w1", Name: name}}, nil
	}
	Fetch(ctx, client, key, fn)

	name = "New"
	assert.Equal(t, "Old", Fetch(ctx, client, key, fn).Data[0].Name)
	refreshed := Refetch(ctx, client, key, fn)
	require.NoError(t, refreshed.Error)
	assert.Equal(t, "New", refreshed.Data[0].Name)
	assert.Equal(t, "New", Snapshot[[]ward](ctx, client, key).Data[0].Name)
}

func TestInvalidate_OnlyTouchesEntity(t *testing.T) {
	client, mr := newTestClient(t)
	ctx := context.Background()
	fn := func(ctx context.Context) ([]ward, error) { return []ward{{ID: "x"}}, nil }

	wards := NewKey("wards", nil)
	filtered := NewKey("wards", map[string]string{"search": "icu"})
	beds := NewKey("beds", nil)
	Fetch(ctx, client, wards, fn)
	Fetch(ctx, client, filtered, fn)
	Fetch(ctx, client, beds, fn)

	require.NoError(t, client.Invalidate(ctx, "wards"))
	assert.False(t, mr.Exists(wards.String()))
	assert.False(t, mr.Exists(filtered.String()))
	assert.True(t, mr.Exists(beds.String()))
}

func TestFetch_WithoutStore(t *testing.T) {
	client := NewClient(nil, time.Minute)
	var calls int
	fn := func(ctx context.Context) ([]ward, error) {
		calls++
		return []ward{}, nil
	}
	Fetch(context.Background(), client, NewKey("wards", nil), fn)
	Fetch(context.Background(), client, NewKey("wards", nil), fn)
	assert.Equal(t, 2, calls)
	assert.NoError(t, client.Invalidate(context.Background(), "wards"))
}
