package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewRedisStoreWithClient(client, zap.NewNop())
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store, mr
}

func TestRedisStoreGetSet(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	t.Run("miss on unknown key", func(t *testing.T) {
		value, ok := store.Get(ctx, "eligibility:PAT-001:INS-001")
		assert.False(t, ok)
		assert.Empty(t, value)
	})

	t.Run("set then get", func(t *testing.T) {
		ok := store.Set(ctx, "eligibility:PAT-001:INS-001", `{"is_eligible":true}`, time.Hour)
		require.True(t, ok)

		value, ok := store.Get(ctx, "eligibility:PAT-001:INS-001")
		require.True(t, ok)
		assert.Equal(t, `{"is_eligible":true}`, value)
	})
}

func TestRedisStoreTTL(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	require.True(t, store.Set(ctx, "k", "v", time.Hour))

	mr.FastForward(time.Hour + time.Second)

	_, ok := store.Get(ctx, "k")
	assert.False(t, ok)
}

func TestRedisStoreServerDown(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	require.True(t, store.Set(ctx, "k", "v", time.Hour))
	mr.Close()

	// Unreachable server degrades to miss and dropped write, never an error
	_, ok := store.Get(ctx, "k")
	assert.False(t, ok)
	assert.False(t, store.Set(ctx, "k2", "v2", time.Hour))
}

func TestDisabledStore(t *testing.T) {
	var store Store = Disabled{}
	ctx := context.Background()

	assert.False(t, store.Set(ctx, "k", "v", time.Hour))
	_, ok := store.Get(ctx, "k")
	assert.False(t, ok)
}
