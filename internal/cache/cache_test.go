package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/lumiforge/tierhub-backend/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*RedisClient, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := NewRedis(&config.Config{RedisAddr: mr.Addr()})
	require.NotNil(t, c)
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestNewRedis_NoAddr(t *testing.T) {
	assert.Nil(t, NewRedis(&config.Config{}))
}

func TestRedisClient_GetSetDel(t *testing.T) {
	c, _ := newTestRedis(t)
	ctx := context.Background()

	require.NoError(t, c.Ping(ctx))

	_, err := c.Get(ctx, "plans:all")
	assert.ErrorIs(t, err, ErrCacheMiss)

	require.NoError(t, c.Set(ctx, "plans:all", "[]", time.Minute))
	val, err := c.Get(ctx, "plans:all")
	require.NoError(t, err)
	assert.Equal(t, "[]", val)

	require.NoError(t, c.Del(ctx, "plans:all"))
	_, err = c.Get(ctx, "plans:all")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestRateLimiter_FixedWindow(t *testing.T) {
	c, mr := newTestRedis(t)
	ctx := context.Background()
	l := NewRateLimiter(c, "login:", 3, time.Minute)

	for i := 0; i < 3; i++ {
		ok, err := l.Allow(ctx, "a@example.com")
		require.NoError(t, err)
		assert.True(t, ok, "attempt %d", i+1)
	}
	ok, err := l.Allow(ctx, "a@example.com")
	require.NoError(t, err)
	assert.False(t, ok)

	// other subjects are independent
	ok, err = l.Allow(ctx, "b@example.com")
	require.NoError(t, err)
	assert.True(t, ok)

	mr.FastForward(61 * time.Second)
	ok, err = l.Allow(ctx, "a@example.com")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRateLimiter_Reset(t *testing.T) {
	c, _ := newTestRedis(t)
	ctx := context.Background()
	l := NewRateLimiter(c, "login:", 1, time.Minute)

	_, _ = l.Allow(ctx, "a@example.com")
	ok, _ := l.Allow(ctx, "a@example.com")
	assert.False(t, ok)

	require.NoError(t, l.Reset(ctx, "a@example.com"))
	ok, _ = l.Allow(ctx, "a@example.com")
	assert.True(t, ok)
}

func TestRateLimiter_CounterAlwaysExpires(t *testing.T) {
	c, mr := newTestRedis(t)
	ctx := context.Background()
	l := NewRateLimiter(c, "verify:", 5, time.Minute)

	for i := 0; i < 3; i++ {
		_, err := l.Allow(ctx, "a@example.com")
		require.NoError(t, err)
	}
	got, err := mr.Get("verify:a@example.com")
	require.NoError(t, err)
	assert.Equal(t, "3", got)

	// the TTL is set with the key and later attempts do not extend the window
	ttl := mr.TTL("verify:a@example.com")
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, time.Minute)

	mr.FastForward(30 * time.Second)
	_, err = l.Allow(ctx, "a@example.com")
	require.NoError(t, err)
	assert.LessOrEqual(t, mr.TTL("verify:a@example.com"), 30*time.Second)
}

func TestRateLimiter_Nil(t *testing.T) {
	var l *RateLimiter
	ok, err := l.Allow(context.Background(), "x")
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Nil(t, NewRateLimiter(nil, "login:", 1, time.Minute))
}
