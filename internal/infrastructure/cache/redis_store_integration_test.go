//go:build integration

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

func TestRedisStore_Integration(t *testing.T) {
	ctx := context.Background()

	container, err := tcredis.Run(ctx, "redis:7-alpine")
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err)
	opts, err := redis.ParseURL(uri)
	require.NoError(t, err)

	store := NewRedisStore(redis.NewClient(opts), "")
	defer store.Close()

	_, ok, err := store.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, "cnpj:11222333000181", []byte(`{}`), time.Minute))
	value, ok, err := store.Get(ctx, "cnpj:11222333000181")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{}`, string(value))

	ttl, err := store.GetClient().TTL(ctx, defaultKeyPrefix+"cnpj:11222333000181").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	require.NoError(t, store.Delete(ctx, "cnpj:11222333000181"))
	_, ok, err = store.Get(ctx, "cnpj:11222333000181")
	require.NoError(t, err)
	assert.False(t, ok)
}
