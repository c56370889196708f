package ports

import (
	"context"
	"strings"
	"time"
)

// CacheKeyPrefix namespaces cached views so a family can be dropped by pattern
type CacheKeyPrefix string

const (
	PrefixInventory CacheKeyPrefix = "inv"
	PrefixDashboard CacheKeyPrefix = "dash"
	PrefixAnalysis  CacheKeyPrefix = "analysis"
	PrefixAlerts    CacheKeyPrefix = "alerts"
	PrefixReport    CacheKeyPrefix = "report"
)

// LatestAlertsKey holds the most recent alert sweep written by the worker.
// Inventory invalidation leaves it in place.
var LatestAlertsKey = BuildKey(PrefixAlerts, "latest")

// BuildKey joins prefix and parts with ':'
func BuildKey(prefix CacheKeyPrefix, parts ...string) string {
	return strings.Join(append([]string{string(prefix)}, parts...), ":")
}

// CacheRepository stores JSON-encoded views under prefixed keys. A miss is
// reported as an error the caller can test for.
type CacheRepository interface {
	Get(ctx context.Context, key string, dest interface{}) error
	// Set uses the repository's default TTL.
	Set(ctx context.Context, key string, value interface{}) error
	SetWithTTL(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	// GetOrSet serves dest from the cache, falling back to fetch on a miss
	// or when the cache is unreachable.
	GetOrSet(ctx context.Context, key string, dest interface{},
		fetch func() (interface{}, error), ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	DeletePattern(ctx context.Context, pattern string) error
}

// CacheInvalidator drops cached views that depend on inventory state
type CacheInvalidator interface {
	InvalidateInventoryCache(ctx context.Context, itemID string) error
}
