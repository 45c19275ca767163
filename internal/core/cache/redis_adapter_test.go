package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisAdapter(t *testing.T) (*RedisAdapter, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	adapter, err := NewRedisAdapter("redis://" + mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { adapter.Close() })

	return adapter, mr
}

func TestRedisAdapter_GetSet(t *testing.T) {
	adapter, _ := newTestRedisAdapter(t)
	ctx := context.Background()

	key := "banners:main"
	value := []byte(`[{"id":1}]`)

	require.NoError(t, adapter.Set(ctx, key, value, 10*time.Second))

	retrieved, err := adapter.Get(ctx, key)
	assert.NoError(t, err)
	assert.Equal(t, value, retrieved)
}

func TestRedisAdapter_GetNotFound(t *testing.T) {
	adapter, _ := newTestRedisAdapter(t)

	_, err := adapter.Get(context.Background(), "non_existent_key")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "key not found")
}

func TestRedisAdapter_Delete(t *testing.T) {
	adapter, _ := newTestRedisAdapter(t)
	ctx := context.Background()

	key := "delete_test"
	require.NoError(t, adapter.Set(ctx, key, []byte("value"), 0))

	assert.NoError(t, adapter.Delete(ctx, key))

	_, err := adapter.Get(ctx, key)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisAdapter_DeletePrefix(t *testing.T) {
	adapter, mr := newTestRedisAdapter(t)
	ctx := context.Background()

	require.NoError(t, adapter.Set(ctx, "banners:main", []byte("a"), 0))
	require.NoError(t, adapter.Set(ctx, "banners:section", []byte("b"), 0))
	require.NoError(t, adapter.Set(ctx, "admin:banners", []byte("c"), 0))

	removed, err := adapter.DeletePrefix(ctx, "banners")
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	assert.False(t, mr.Exists("banners:main"))
	assert.False(t, mr.Exists("banners:section"))
	assert.True(t, mr.Exists("admin:banners"))
}

func TestRedisAdapter_DeletePrefix_NoMatch(t *testing.T) {
	adapter, _ := newTestRedisAdapter(t)

	removed, err := adapter.DeletePrefix(context.Background(), "nothing")
	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestRedisAdapter_TTL(t *testing.T) {
	adapter, mr := newTestRedisAdapter(t)
	ctx := context.Background()

	key := "ttl_test"
	require.NoError(t, adapter.Set(ctx, key, []byte("expires_soon"), 1*time.Second))

	_, err := adapter.Get(ctx, key)
	assert.NoError(t, err)

	mr.FastForward(2 * time.Second)

	_, err = adapter.Get(ctx, key)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisAdapter_Ping(t *testing.T) {
	adapter, _ := newTestRedisAdapter(t)
	assert.NoError(t, adapter.Ping(context.Background()))
}

func TestRedisAdapter_InvalidURL(t *testing.T) {
	_, err := NewRedisAdapter("invalid://url")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse Redis URL")
}
