package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"storefront-banners/internal/core/cache"
	"storefront-banners/internal/core/metrics"
	"storefront-banners/internal/features/banners/domain"
)

// keyNamespace separates query results from anything else sharing the cache backend.
const keyNamespace = "query:"

// CacheQueryStore implements ports.QueryCache on top of the core Cache port.
// Values are stored as JSON with a freshness TTL.
type CacheQueryStore struct {
	cache   cache.Cache
	ttl     time.Duration
	metrics *metrics.Metrics
}

// NewCacheQueryStore creates a query cache. m may be nil.
func NewCacheQueryStore(c cache.Cache, ttl time.Duration, m *metrics.Metrics) *CacheQueryStore {
	return &CacheQueryStore{
		cache:   c,
		ttl:     ttl,
		metrics: m,
	}
}

// Load decodes the cached value for key into dst.
func (s *CacheQueryStore) Load(ctx context.Context, key domain.QueryKey, dst any) (bool, error) {
	data, err := s.cache.Get(ctx, storageKey(key))
	if errors.Is(err, cache.ErrNotFound) {
		s.observe(key, "miss")
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to load query %s: %w", key, err)
	}

	if err := json.Unmarshal(data, dst); err != nil {
		// A corrupt entry is treated as stale.
		s.observe(key, "miss")
		return false, nil
	}

	s.observe(key, "hit")
	return true, nil
}

// Store encodes and stores value under key.
func (s *CacheQueryStore) Store(ctx context.Context, key domain.QueryKey, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode query %s: %w", key, err)
	}
	if err := s.cache.Set(ctx, storageKey(key), data, s.ttl); err != nil {
		return fmt.Errorf("failed to store query %s: %w", key, err)
	}
	return nil
}

// Invalidate removes the group's own entry and every entry below it.
func (s *CacheQueryStore) Invalidate(ctx context.Context, group domain.QueryKey) error {
	base := storageKey(group)

	if err := s.cache.Delete(ctx, base); err != nil {
		return fmt.Errorf("failed to invalidate %s: %w", group, err)
	}
	if _, err := s.cache.DeletePrefix(ctx, base+":"); err != nil {
		return fmt.Errorf("failed to invalidate %s: %w", group, err)
	}

	if s.metrics != nil {
		s.metrics.CacheInvalidations.Inc()
	}
	return nil
}

func (s *CacheQueryStore) observe(key domain.QueryKey, result string) {
	if s.metrics != nil {
		s.metrics.CacheLookups.WithLabelValues(key.String(), result).Inc()
	}
}

func storageKey(key domain.QueryKey) string {
	return keyNamespace + key.String()
}
