package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/bpmnpath/pkg/adapters/redis"
	"github.com/aretw0/bpmnpath/pkg/domain"
	contract "github.com/aretw0/bpmnpath/pkg/ports/tests"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err, "Failed to start miniredis")
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func TestRedisCache_Contract(t *testing.T) {
	_, client := setup(t)

	cache := redis.NewFromClient(client)
	contract.DefinitionCacheContractTest(t, cache)
}

func TestRedisCache_TTLAndPrefix(t *testing.T) {
	mr, client := setup(t)
	ctx := context.Background()

	cache := redis.NewFromClient(client, redis.WithTTL(time.Minute), redis.WithPrefix("test:"))
	require.NoError(t, cache.Ping(ctx))

	err := cache.Put(ctx, "invoice", &domain.Definition{ID: "invoice:1", Key: "invoice", XML: "<definitions/>"})
	require.NoError(t, err)

	assert.True(t, mr.Exists("test:invoice"))
	assert.Equal(t, time.Minute, mr.TTL("test:invoice"))

	mr.FastForward(2 * time.Minute)

	_, err = cache.Get(ctx, "invoice")
	assert.ErrorIs(t, err, domain.ErrCacheMiss)
}

func TestRedisCache_CorruptValue(t *testing.T) {
	mr, client := setup(t)

	require.NoError(t, mr.Set("bpmnpath:definition:broken", "{not json"))

	cache := redis.NewFromClient(client)
	_, err := cache.Get(context.Background(), "broken")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrCacheMiss)
}
