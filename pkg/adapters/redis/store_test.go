package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/Anmol09876/abacus/pkg/adapters/redis"
	"github.com/Anmol09876/abacus/pkg/domain"
	"github.com/Anmol09876/abacus/pkg/ports"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, opts ...redis.Option) *redis.Store {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err, "failed to start miniredis")
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	return redis.NewFromClient(client, opts...)
}

func TestRedisStore_Contract(t *testing.T) {
	ports.RunStateStoreContract(t, newTestStore(t))
}

func TestRedisStore_TTLIndexPruning(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	store := redis.NewFromClient(client, redis.WithTTL(time.Second))

	ctx := context.Background()
	require.NoError(t, store.Save(ctx, "ephemeral", domain.NewState("ephemeral")))

	sessions, err := store.List(ctx)
	require.NoError(t, err)
	require.Contains(t, sessions, "ephemeral")

	// Advance past the TTL; both the value and the index entry must go.
	mr.FastForward(2 * time.Second)

	sessions, err = store.List(ctx)
	require.NoError(t, err)
	require.NotContains(t, sessions, "ephemeral")

	_, err = store.Load(ctx, "ephemeral")
	require.ErrorIs(t, err, domain.ErrSessionNotFound)
}
