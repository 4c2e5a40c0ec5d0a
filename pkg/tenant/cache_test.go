package tenant_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/rosterkit/pkg/tenant"
)

func TestInMemoryCache(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("set and get", func(t *testing.T) {
		t.Parallel()

		cache := tenant.NewInMemoryCache()
		defer cache.Close()

		want := &tenant.Tenant{ID: uuid.New(), Slug: "riverside"}
		cache.Set(ctx, "riverside", want, time.Minute)

		got, ok := cache.Get(ctx, "riverside")
		require.True(t, ok)
		assert.Equal(t, want, got)
	})

	t.Run("miss on unknown key", func(t *testing.T) {
		t.Parallel()

		cache := tenant.NewInMemoryCache()
		defer cache.Close()

		_, ok := cache.Get(ctx, "ghost")
		assert.False(t, ok)
	})

	t.Run("expired entries are dropped", func(t *testing.T) {
		t.Parallel()

		cache := tenant.NewInMemoryCache()
		defer cache.Close()

		cache.Set(ctx, "riverside", &tenant.Tenant{ID: uuid.New()}, -time.Second)

		_, ok := cache.Get(ctx, "riverside")
		assert.False(t, ok)
	})

	t.Run("delete removes entry", func(t *testing.T) {
		t.Parallel()

		cache := tenant.NewInMemoryCache()
		defer cache.Close()

		cache.Set(ctx, "riverside", &tenant.Tenant{ID: uuid.New()}, time.Minute)
		cache.Delete(ctx, "riverside")

		_, ok := cache.Get(ctx, "riverside")
		assert.False(t, ok)
	})

	t.Run("evicts when full", func(t *testing.T) {
		t.Parallel()

		cache := tenant.NewInMemoryCacheWithSize(2)
		defer cache.Close()

		cache.Set(ctx, "a", &tenant.Tenant{Slug: "a"}, time.Minute)
		cache.Set(ctx, "b", &tenant.Tenant{Slug: "b"}, 2*time.Minute)
		cache.Set(ctx, "c", &tenant.Tenant{Slug: "c"}, 3*time.Minute)

		// "a" was closest to expiry and should be the eviction victim.
		_, ok := cache.Get(ctx, "a")
		assert.False(t, ok)

		_, ok = cache.Get(ctx, "b")
		assert.True(t, ok)
		_, ok = cache.Get(ctx, "c")
		assert.True(t, ok)
	})
}

func TestNoopCache(t *testing.T) {
	t.Parallel()

	cache := tenant.NewNoopCache()
	cache.Set(context.Background(), "riverside", &tenant.Tenant{}, time.Minute)

	_, ok := cache.Get(context.Background(), "riverside")
	assert.False(t, ok)
	assert.NoError(t, cache.Close())
}
