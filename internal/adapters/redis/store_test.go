package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/formica/internal/adapters/redis"
	"github.com/aretw0/formica/internal/testutils"
	"github.com/aretw0/formica/pkg/codec"
	"github.com/aretw0/formica/pkg/domain"
	"github.com/aretw0/formica/pkg/ports"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T, opts ...redis.Option) (*miniredis.Miniredis, *redis.Store) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})
	store := redis.NewFromClient(client, opts...)
	t.Cleanup(func() { _ = store.Close() })
	return mr, store
}

func TestRedisStore_Contract(t *testing.T) {
	_, store := setup(t)
	ports.RunPopulationStoreContract(t, store)
}

func TestRedisStore_Keys(t *testing.T) {
	mr, store := setup(t, redis.WithPrefix("test:"))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "gen", testutils.RandomTrees(t, 1, 2, 1, 3)))

	assert.True(t, mr.Exists("test:gen"))
	members, err := mr.ZMembers("test:index")
	require.NoError(t, err)
	assert.Equal(t, []string{"gen"}, members)
}

func TestRedisStore_TTL(t *testing.T) {
	mr, store := setup(t, redis.WithTTL(time.Minute))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "short", nil))
	assert.Equal(t, time.Minute, mr.TTL(redis.DefaultPrefix+"short"))

	mr.FastForward(2 * time.Minute)
	_, err := store.Load(ctx, "short")
	assert.ErrorIs(t, err, domain.ErrPopulationNotFound)
}

func TestRedisStore_CorruptPayload(t *testing.T) {
	mr, store := setup(t)
	require.NoError(t, mr.Set(redis.DefaultPrefix+"bad", "not json"))

	_, err := store.Load(context.Background(), "bad")
	assert.ErrorIs(t, err, codec.ErrMalformed)
}
