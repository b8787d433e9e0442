package cache_test

import (
	"context"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notekeeper/internal/adapters/cache"
	"notekeeper/internal/config"
)

func mockRedisServer(t *testing.T) (*miniredis.Miniredis, *config.RedisConfig) {
	t.Helper()

	s, err := miniredis.Run()
	require.NoError(t, err)

	t.Cleanup(func() {
		s.Close()
	})

	host, portStr, _ := strings.Cut(s.Addr(), ":")
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)

	return s, &config.RedisConfig{
		Host:       host,
		Port:       port,
		DefaultTTL: 30 * time.Second,
	}
}

func TestNewRedisCache_Success(t *testing.T) {
	_, cfg := mockRedisServer(t)
	ctx := context.Background()

	redisCache, err := cache.NewRedisCache(ctx, cfg)

	require.NoError(t, err)
	require.NotNil(t, redisCache)
	assert.NoError(t, redisCache.Close())
}

func TestNewRedisCache_ConnectionFailure(t *testing.T) {
	ctx := context.Background()

	cfg := &config.RedisConfig{
		Host: "nonexistent.host",
		Port: 12345,
	}

	redisCache, err := cache.NewRedisCache(ctx, cfg)

	assert.Error(t, err)
	assert.Nil(t, redisCache)
	assert.Contains(t, err.Error(), "failed to connect to redis")
}

func TestRedisCache_GetSet(t *testing.T) {
	s, cfg := mockRedisServer(t)
	ctx := context.Background()

	redisCache, err := cache.NewRedisCache(ctx, cfg)
	require.NoError(t, err)
	defer redisCache.Close()

	t.Run("set then get round trip", func(t *testing.T) {
		err := redisCache.Set(ctx, "notes:alice", `[{"id":"note-1"}]`, time.Minute)
		require.NoError(t, err)

		value, err := redisCache.Get(ctx, "notes:alice")
		require.NoError(t, err)
		assert.Equal(t, `[{"id":"note-1"}]`, value)
	})

	t.Run("absent key is an empty string, not an error", func(t *testing.T) {
		value, err := redisCache.Get(ctx, "notes:missing")
		require.NoError(t, err)
		assert.Empty(t, value)
	})

	t.Run("zero ttl falls back to the configured default", func(t *testing.T) {
		err := redisCache.Set(ctx, "notes:default-ttl", "value", 0)
		require.NoError(t, err)

		ttl := s.TTL("notes:default-ttl")
		assert.Greater(t, ttl.Seconds(), 0.0)
		assert.LessOrEqual(t, ttl.Seconds(), cfg.DefaultTTL.Seconds())
	})

	t.Run("expired key reads as absent", func(t *testing.T) {
		err := redisCache.Set(ctx, "notes:expiring", "value", time.Second)
		require.NoError(t, err)

		s.FastForward(2 * time.Second)

		value, err := redisCache.Get(ctx, "notes:expiring")
		require.NoError(t, err)
		assert.Empty(t, value)
	})
}

func TestRedisCache_Delete(t *testing.T) {
	_, cfg := mockRedisServer(t)
	ctx := context.Background()

	redisCache, err := cache.NewRedisCache(ctx, cfg)
	require.NoError(t, err)
	defer redisCache.Close()

	require.NoError(t, redisCache.Set(ctx, "key-1", "one", time.Minute))
	require.NoError(t, redisCache.Set(ctx, "key-2", "two", time.Minute))

	t.Run("removes the given keys", func(t *testing.T) {
		err := redisCache.Delete(ctx, "key-1", "key-2")
		require.NoError(t, err)

		value, err := redisCache.Get(ctx, "key-1")
		require.NoError(t, err)
		assert.Empty(t, value)
	})

	t.Run("no keys is a no-op", func(t *testing.T) {
		assert.NoError(t, redisCache.Delete(ctx))
	})
}
