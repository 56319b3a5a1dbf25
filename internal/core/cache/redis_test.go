package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"recipe-parser/internal/infrastructure/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisStore_Integration(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set, skipping redis integration test")
	}

	store, err := NewRedisStore(&config.CacheConfig{
		Enabled:   true,
		Backend:   config.CacheBackendRedis,
		TTL:       time.Minute,
		RedisAddr: addr,
	})
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	key := "test:" + time.Now().Format(time.RFC3339Nano)

	_, err = store.Get(ctx, key)
	assert.ErrorIs(t, err, ErrMiss)

	require.NoError(t, store.Set(ctx, key, `{"recipes":[]}`))
	val, err := store.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, `{"recipes":[]}`, val)
	assert.Equal(t, config.CacheBackendRedis, store.GetStats()["backend"])
}
