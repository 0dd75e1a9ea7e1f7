package database

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLocker(t *testing.T) (*Locker, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewLocker(client), mr
}

func TestWithLock_ReleasesAfterRun(t *testing.T) {
	locker, mr := newTestLocker(t)
	ctx := context.Background()

	ran := false
	err := locker.WithLock(ctx, "bed_lock:1", func(ctx context.Context) error {
		ran = true
		assert.True(t, mr.Exists("bed_lock:1"))
		return nil
	})
	require.NoError(t, err)
	assert.True(t, ran)
	assert.False(t, mr.Exists("bed_lock:1"))
}

func TestWithLock_PropagatesError(t *testing.T) {
	locker, mr := newTestLocker(t)
	boom := errors.New("boom")

	err := locker.WithLock(context.Background(), "bed_lock:2", func(ctx context.Context) error {
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.False(t, mr.Exists("bed_lock:2"))
}

func TestWithLock_HeldElsewhere(t *testing.T) {
	locker, mr := newTestLocker(t)
	locker.retryDelay = 0
	require.NoError(t, mr.Set("bed_lock:3", "someone-else"))

	called := false
	err := locker.WithLock(context.Background(), "bed_lock:3", func(ctx context.Context) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, ErrLockNotAcquired)
	assert.False(t, called)

	// the foreign holder keeps its lock
	got, _ := mr.Get("bed_lock:3")
	assert.Equal(t, "someone-else", got)
}

func TestReleaseLock_NotOwner(t *testing.T) {
	locker, mr := newTestLocker(t)
	require.NoError(t, mr.Set("k", "owner"))

	err := locker.ReleaseLock(context.Background(), "k", "intruder")
	assert.Error(t, err)
	assert.True(t, mr.Exists("k"))
}

func TestTranslateError(t *testing.T) {
	fk := fmt.Errorf("delete ward: %w", &pgconn.PgError{Code: "23503"})
	assert.ErrorIs(t, TranslateError(fk), ErrForeignKey)

	dup := &pgconn.PgError{Code: "23505"}
	assert.ErrorIs(t, TranslateError(dup), ErrUnique)

	plain := errors.New("connection reset")
	assert.Equal(t, plain, TranslateError(plain))
	assert.NoError(t, TranslateError(nil))
}
