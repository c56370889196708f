package redis_a_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	redis_a "github.com/ammerola/swifttrack-be/internal/adapters/redis_adapter"
	"github.com/ammerola/swifttrack-be/internal/core/analysis"
	"github.com/ammerola/swifttrack-be/internal/core/ports"
	"github.com/ammerola/swifttrack-be/test/helpers"
)

func newTestCache(t *testing.T) (*redis_a.Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return redis_a.NewCache(client, 5*time.Minute, helpers.TestLogger()), mr
}

func TestCache_SetAndGet(t *testing.T) {
	ctx := context.Background()
	cache, _ := newTestCache(t)

	alerts := analysis.Notifications{
		LowStock: []analysis.LowStockAlert{{ID: "QR12345", Name: "Wireless Mouse", Quantity: 5, Threshold: 20}},
		Expiring: []analysis.ExpiryAlert{},
	}

	require.NoError(t, cache.Set(ctx, ports.LatestAlertsKey, alerts))

	var got analysis.Notifications
	require.NoError(t, cache.Get(ctx, ports.LatestAlertsKey, &got))
	assert.Equal(t, alerts.LowStock, got.LowStock)
	assert.Equal(t, 1, got.Total())

	stats := cache.Stats()
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Sets)
}

func TestCache_GetMissing(t *testing.T) {
	cache, _ := newTestCache(t)

	var out string
	err := cache.Get(context.Background(), "analysis:nothing", &out)

	assert.ErrorIs(t, err, redis_a.ErrCacheMiss)
	assert.Equal(t, int64(1), cache.Stats().Misses)
}

func TestCache_SetWithTTL(t *testing.T) {
	ctx := context.Background()
	cache, mr := newTestCache(t)

	require.NoError(t, cache.SetWithTTL(ctx, "ttl:test", "value", 100*time.Millisecond))

	assert.Positive(t, mr.TTL("ttl:test"))

	mr.FastForward(200 * time.Millisecond)

	var result string
	assert.ErrorIs(t, cache.Get(ctx, "ttl:test", &result), redis_a.ErrCacheMiss)
}

func TestCache_DeletePattern(t *testing.T) {
	ctx := context.Background()
	cache, mr := newTestCache(t)

	keysToDelete := []string{"analysis:abc", "analysis:aging:2024-06-15", "analysis:analytics"}
	keysToKeep := []string{"dash:main", "alerts:latest"}

	for _, key := range append(keysToDelete, keysToKeep...) {
		require.NoError(t, cache.Set(ctx, key, "value"))
	}

	require.NoError(t, cache.DeletePattern(ctx, "analysis:*"))

	for _, key := range keysToDelete {
		assert.False(t, mr.Exists(key), key)
	}
	for _, key := range keysToKeep {
		assert.True(t, mr.Exists(key), key)
	}
}

func TestCache_GetOrSet(t *testing.T) {
	ctx := context.Background()
	cache, _ := newTestCache(t)

	fetchCount := 0
	fetch := func() (interface{}, error) {
		fetchCount++
		return analysis.ABCSummary{Rows: []analysis.ABCRow{}}, nil
	}

	var first analysis.ABCSummary
	require.NoError(t, cache.GetOrSet(ctx, "analysis:abc", &first, fetch, time.Minute))
	assert.Equal(t, 1, fetchCount)

	var second analysis.ABCSummary
	require.NoError(t, cache.GetOrSet(ctx, "analysis:abc", &second, fetch, time.Minute))
	assert.Equal(t, 1, fetchCount)
	assert.NotNil(t, second.Rows)
}

func TestCache_GetOrSet_FetchError(t *testing.T) {
	cache, mr := newTestCache(t)

	var out string
	err := cache.GetOrSet(context.Background(), "analysis:broken", &out, func() (interface{}, error) {
		return nil, errors.New("database unavailable")
	}, time.Minute)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "database unavailable")
	assert.False(t, mr.Exists("analysis:broken"))
}

func TestCache_GetOrSet_RedisDown(t *testing.T) {
	cache, mr := newTestCache(t)
	mr.Close()

	var out string
	err := cache.GetOrSet(context.Background(), "dash:main", &out, func() (interface{}, error) {
		return "computed", nil
	}, time.Minute)

	require.NoError(t, err)
	assert.Equal(t, "computed", out)
}

func TestCacheManager_InvalidateInventoryCache(t *testing.T) {
	tests := []struct {
		name        string
		itemID      string
		invalidated []string
		kept        []string
	}{
		{
			name:        "single_item",
			itemID:      "QR12345",
			invalidated: []string{"inv:QR12345", "dash:main", "analysis:abc", "report:profit-margins"},
			kept:        []string{"inv:QR67890", "alerts:latest"},
		},
		{
			name:        "all_items",
			itemID:      "",
			invalidated: []string{"inv:QR12345", "inv:QR67890", "dash:main", "analysis:abc"},
			kept:        []string{"alerts:latest"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			cache, _ := newTestCache(t)
			manager := redis_a.NewCacheManager(cache, helpers.TestLogger())

			for _, key := range append(append([]string{}, tt.invalidated...), tt.kept...) {
				require.NoError(t, cache.Set(ctx, key, "value"))
			}

			require.NoError(t, manager.InvalidateInventoryCache(ctx, tt.itemID))

			for _, key := range tt.invalidated {
				var out string
				assert.ErrorIs(t, cache.Get(ctx, key, &out), redis_a.ErrCacheMiss, key)
			}
			for _, key := range tt.kept {
				var out string
				assert.NoError(t, cache.Get(ctx, key, &out), key)
			}
		})
	}
}

func TestCacheManager_Warmup(t *testing.T) {
	cache, _ := newTestCache(t)
	manager := redis_a.NewCacheManager(cache, helpers.TestLogger())

	warmed := manager.Warmup(context.Background(), map[string]func(context.Context) error{
		"dashboard": func(context.Context) error { return nil },
		"analytics": func(context.Context) error { return errors.New("boom") },
	})

	assert.Equal(t, 1, warmed)
}
