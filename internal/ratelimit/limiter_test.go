package ratelimit_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/devmatch/backend/internal/ratelimit"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*ratelimit.RedisStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return ratelimit.NewRedisStore(client), mr
}

func TestLimiter_AllowsUpToLimit(t *testing.T) {
	store, _ := newTestStore(t)
	limiter := ratelimit.NewLimiter(store, 3)
	ctx := context.Background()
	userID := uuid.New()

	for i := 0; i < 3; i++ {
		retryAfter, ok, err := limiter.AllowLike(ctx, userID)
		require.NoError(t, err)
		assert.True(t, ok, "like %d should be allowed", i+1)
		assert.Zero(t, retryAfter)
	}

	retryAfter, ok, err := limiter.AllowLike(ctx, userID)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Greater(t, retryAfter, int64(0))
}

func TestLimiter_WindowExpiry(t *testing.T) {
	store, mr := newTestStore(t)
	limiter := ratelimit.NewLimiter(store, 1)
	ctx := context.Background()
	userID := uuid.New()

	_, ok, err := limiter.AllowLike(ctx, userID)
	require.NoError(t, err)
	require.True(t, ok)

	_, ok, err = limiter.AllowLike(ctx, userID)
	require.NoError(t, err)
	require.False(t, ok)

	mr.FastForward(time.Minute + time.Second)

	_, ok, err = limiter.AllowLike(ctx, userID)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestLimiter_PerUserIsolation(t *testing.T) {
	store, _ := newTestStore(t)
	limiter := ratelimit.NewLimiter(store, 1)
	ctx := context.Background()

	_, ok, err := limiter.AllowLike(ctx, uuid.New())
	require.NoError(t, err)
	require.True(t, ok)

	_, ok, err = limiter.AllowLike(ctx, uuid.New())
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestLimiter_ZeroLimitDisables(t *testing.T) {
	limiter := ratelimit.NewLimiter(nil, 0)

	for i := 0; i < 10; i++ {
		_, ok, err := limiter.AllowLike(context.Background(), uuid.New())
		require.NoError(t, err)
		assert.True(t, ok)
	}
}
