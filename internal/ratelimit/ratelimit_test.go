package ratelimit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func newRedisBackend(t *testing.T) (*RedisBackend, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisBackend(client), mr
}

// backends runs fn against both implementations.
func backends(t *testing.T, fn func(t *testing.T, b Backend)) {
	t.Run("memory", func(t *testing.T) { fn(t, NewMemoryBackend()) })
	t.Run("redis", func(t *testing.T) {
		b, _ := newRedisBackend(t)
		fn(t, b)
	})
}

func TestBackend_SlidingWindow(t *testing.T) {
	backends(t, func(t *testing.T, b Backend) {
		ctx := context.Background()
		w := Window{Name: "test", Limit: 3, Period: time.Minute}
		clock := newClock()

		for i, want := range []int{2, 1, 0} {
			r, err := b.Hit(ctx, "1.2.3.4", w, clock.Now())
			require.NoError(t, err)
			assert.False(t, r.Blocked, "hit %d", i)
			assert.Equal(t, want, r.Remaining, "hit %d", i)
			clock.Advance(10 * time.Second)
		}

		r, err := b.Hit(ctx, "1.2.3.4", w, clock.Now())
		require.NoError(t, err)
		assert.True(t, r.Blocked)
		assert.Equal(t, 0, r.Remaining)

		// The first hit leaves the window; the blocked one never counted.
		clock.Advance(30 * time.Second)
		r, err = b.Hit(ctx, "1.2.3.4", w, clock.Now())
		require.NoError(t, err)
		assert.False(t, r.Blocked)
		assert.Equal(t, 0, r.Remaining)
	})
}

func TestBackend_KeysAreIndependent(t *testing.T) {
	backends(t, func(t *testing.T, b Backend) {
		ctx := context.Background()
		w := Window{Name: "test", Limit: 1, Period: time.Minute}
		now := newClock().Now()

		r, err := b.Hit(ctx, "a", w, now)
		require.NoError(t, err)
		assert.False(t, r.Blocked)

		r, err = b.Hit(ctx, "b", w, now)
		require.NoError(t, err)
		assert.False(t, r.Blocked)

		r, err = b.Hit(ctx, "a", w, now)
		require.NoError(t, err)
		assert.True(t, r.Blocked)
	})
}

func TestMemoryBackend_ForgetsIdleKeys(t *testing.T) {
	b := NewMemoryBackend()
	ctx := context.Background()
	w := Window{Name: "minute", Limit: 5, Period: time.Minute}
	clock := newClock()

	for _, ip := range []string{"10.0.0.1", "10.0.0.2", "10.0.0.3"} {
		_, err := b.Hit(ctx, ip, w, clock.Now())
		require.NoError(t, err)
	}
	assert.Equal(t, 3, b.keys())

	// Only the caller that keeps coming back is still tracked.
	clock.Advance(2 * time.Minute)
	_, err := b.Hit(ctx, "10.0.0.9", w, clock.Now())
	require.NoError(t, err)
	assert.Equal(t, 1, b.keys())

	r, err := b.Hit(ctx, "10.0.0.1", w, clock.Now())
	require.NoError(t, err)
	assert.Equal(t, 4, r.Remaining, "an expired key starts from an empty window")
}

func TestRedisBackend_ExpiresKeys(t *testing.T) {
	b, mr := newRedisBackend(t)
	w := Window{Name: "minute", Limit: 5, Period: time.Minute}

	_, err := b.Hit(context.Background(), "1.2.3.4", w, time.Now())
	require.NoError(t, err)

	key := windowKey("1.2.3.4", w)
	assert.True(t, mr.Exists(key))
	assert.Equal(t, time.Minute, mr.TTL(key))

	mr.FastForward(2 * time.Minute)
	assert.False(t, mr.Exists(key))
}

func TestRedisBackend_BlockedHitIsRemoved(t *testing.T) {
	b, mr := newRedisBackend(t)
	w := Window{Name: "minute", Limit: 1, Period: time.Minute}
	now := time.Now()

	for i := 0; i < 3; i++ {
		_, err := b.Hit(context.Background(), "k", w, now)
		require.NoError(t, err)
	}
	members, err := mr.ZMembers(windowKey("k", w))
	require.NoError(t, err)
	assert.Len(t, members, 1)
}

func TestLimiter_TightestWindowWins(t *testing.T) {
	clock := newClock()
	l := New(NewMemoryBackend(),
		WithClock(clock.Now),
		WithWindows(
			Window{Name: "short", Limit: 2, Period: time.Second},
			Window{Name: "long", Limit: 3, Period: time.Hour},
		),
	)
	ctx := context.Background()

	r, err := l.Limit(ctx, "ip")
	require.NoError(t, err)
	assert.Equal(t, Result{Remaining: 1}, r)

	r, err = l.Limit(ctx, "ip")
	require.NoError(t, err)
	assert.Equal(t, Result{Remaining: 0}, r)

	r, err = l.Limit(ctx, "ip")
	require.NoError(t, err)
	assert.True(t, r.Blocked, "short window exhausted")

	// Short window clears. The blocked request above still consumed the
	// long window, so this is its third and final slot.
	clock.Advance(2 * time.Second)
	r, err = l.Limit(ctx, "ip")
	require.NoError(t, err)
	assert.True(t, r.Blocked, "long window exhausted")
	assert.Equal(t, 0, r.Remaining)
}

func TestLimiter_DefaultWindows(t *testing.T) {
	l := New(NewMemoryBackend(), WithClock(newClock().Now))
	ctx := context.Background()

	var r Result
	var err error
	for i := 0; i < 15; i++ {
		r, err = l.Limit(ctx, "ip")
		require.NoError(t, err)
		require.False(t, r.Blocked, "request %d", i+1)
	}
	assert.Equal(t, 0, r.Remaining)

	r, err = l.Limit(ctx, "ip")
	require.NoError(t, err)
	assert.True(t, r.Blocked)
}

type failingBackend struct{}

func (failingBackend) Hit(context.Context, string, Window, time.Time) (Result, error) {
	return Result{}, errors.New("connection refused")
}

func TestLimiter_BackendError(t *testing.T) {
	_, err := New(failingBackend{}).Limit(context.Background(), "ip")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "minute window")
}

func TestNewBackend(t *testing.T) {
	ctx := context.Background()

	b, err := NewBackend(ctx, Config{})
	require.NoError(t, err)
	assert.IsType(t, &MemoryBackend{}, b)

	mr := miniredis.RunT(t)
	b, err = NewBackend(ctx, Config{RedisURL: "redis://" + mr.Addr()})
	require.NoError(t, err)
	require.IsType(t, &RedisBackend{}, b)
	require.NoError(t, b.(*RedisBackend).Close())

	_, err = NewBackend(ctx, Config{RedisURL: "not a url"})
	assert.Error(t, err)
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("CURIO_REDIS_URL", "redis://localhost:6379/0")
	assert.Equal(t, "redis://localhost:6379/0", ConfigFromEnv().RedisURL)
}
