//go:build integration

package storage

import (
	"context"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

func newRedisClient(t *testing.T) *redis.Client {
	t.Helper()
	ctx := context.Background()

	container, err := tcredis.Run(ctx, "redis:7-alpine")
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err)
	opts, err := redis.ParseURL(uri)
	require.NoError(t, err)

	client := redis.NewClient(opts)
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, client.Ping(ctx).Err())
	return client
}

func TestRedisBlobStore_Integration(t *testing.T) {
	client := newRedisClient(t)
	testBlobStoreContract(t, NewRedisBlobStore(client))

	t.Run("prefix namespaces keys", func(t *testing.T) {
		ctx := context.Background()
		store := NewRedisBlobStore(client, WithKeyPrefix("finapp:"))
		require.NoError(t, store.Put(ctx, "finapp_persons", []byte("[]")))

		raw, err := client.Get(ctx, "finapp:finapp_persons").Result()
		require.NoError(t, err)
		assert.Equal(t, "[]", raw)
	})
}
