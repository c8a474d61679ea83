//go:build integration

package redis

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func startRedis(t *testing.T) *redis.Client {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForListeningPort("6379/tcp"),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "6379")
	require.NoError(t, err)

	client, err := Connect(ctx, Config{Addr: fmt.Sprintf("%s:%s", host, port.Port())})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestIdempotencyStore_Integration(t *testing.T) {
	ctx := context.Background()
	client := startRedis(t)

	store := NewIdempotencyStore(client, time.Hour)
	owner, other := primitive.NewObjectID(), primitive.NewObjectID()
	contentID := primitive.NewObjectID()
	redisKey := "idem:content:" + owner.Hex() + ":k1"

	_, reserved, err := store.Reserve(ctx, owner, "k1")
	require.NoError(t, err)
	assert.True(t, reserved)

	got, reserved, err := store.Reserve(ctx, owner, "k1")
	require.NoError(t, err)
	assert.False(t, reserved, "second reservation loses")
	assert.True(t, got.IsZero(), "pending until completed")

	ttl, err := client.TTL(ctx, redisKey).Result()
	require.NoError(t, err)
	assert.LessOrEqual(t, ttl, reservationTTL)

	_, reserved, err = store.Reserve(ctx, other, "k1")
	require.NoError(t, err)
	assert.True(t, reserved, "keys are scoped per owner")

	require.NoError(t, store.Complete(ctx, owner, "k1", contentID))
	got, reserved, err = store.Reserve(ctx, owner, "k1")
	require.NoError(t, err)
	assert.False(t, reserved)
	assert.Equal(t, contentID, got)

	ttl, err = client.TTL(ctx, redisKey).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, reservationTTL)
	assert.LessOrEqual(t, ttl, time.Hour)

	require.NoError(t, store.Release(ctx, owner, "k1"))
	_, reserved, err = store.Reserve(ctx, owner, "k1")
	require.NoError(t, err)
	assert.True(t, reserved, "released key can be claimed again")
}

func TestIdempotencyStore_ConcurrentReserve_Integration(t *testing.T) {
	ctx := context.Background()
	client := startRedis(t)
	store := NewIdempotencyStore(client, time.Hour)
	owner := primitive.NewObjectID()

	const n = 16
	var (
		wg  sync.WaitGroup
		won atomic.Int32
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, reserved, err := store.Reserve(ctx, owner, "k1")
			assert.NoError(t, err)
			if reserved {
				won.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 1, won.Load())
}
