package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"podfeed-api/pkg/config"
)

func newTestCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)

	cache, err := NewRedisCache(config.RedisConfig{Address: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = cache.Close() })

	return cache, mr
}

func TestNewRedisCache_InvalidAddress(t *testing.T) {
	cache, err := NewRedisCache(config.RedisConfig{Address: ""})

	assert.Error(t, err)
	assert.Nil(t, cache)
}

func TestNewRedisCache_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	cache, err := NewRedisCache(config.RedisConfig{Address: addr})

	assert.Error(t, err)
	assert.Nil(t, cache)
}

func TestRedisCache_SetGet(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "abc", []byte(`{"title":"x"}`), time.Minute))

	got, err := cache.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, `{"title":"x"}`, string(got))
	assert.True(t, mr.Exists("podfeed:abc"))
}

func TestRedisCache_GetMissing(t *testing.T) {
	cache, _ := newTestCache(t)

	_, err := cache.Get(context.Background(), "missing")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisCache_TTLExpiry(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "abc", []byte("v"), 5*time.Minute))
	mr.FastForward(5*time.Minute + time.Second)

	_, err := cache.Get(ctx, "abc")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisCache_Delete(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "abc", []byte("v"), time.Minute))
	require.NoError(t, cache.Delete(ctx, "abc"))
	require.NoError(t, cache.Delete(ctx, "never-set"))

	_, err := cache.Get(ctx, "abc")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisCache_Ping(t *testing.T) {
	cache, mr := newTestCache(t)

	assert.NoError(t, cache.Ping(context.Background()))

	mr.Close()
	assert.Error(t, cache.Ping(context.Background()))
}
