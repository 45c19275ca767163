package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryAdapter implements the Cache interface with an in-process go-cache store.
// It is used when no Redis URL is configured.
type MemoryAdapter struct {
	store *gocache.Cache
}

// NewMemoryAdapter creates an in-memory cache that purges expired entries every cleanupInterval.
func NewMemoryAdapter(cleanupInterval time.Duration) *MemoryAdapter {
	return &MemoryAdapter{
		store: gocache.New(gocache.NoExpiration, cleanupInterval),
	}
}

// Get retrieves a value by key.
func (m *MemoryAdapter) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := m.store.Get(key)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	data, ok := v.([]byte)
	if !ok {
		return nil, fmt.Errorf("unexpected value type %T for key %s", v, key)
	}
	return data, nil
}

// Set stores a copy of value. TTL of 0 means no expiration.
func (m *MemoryAdapter) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = gocache.NoExpiration
	}
	m.store.Set(key, append([]byte(nil), value...), ttl)
	return nil
}

// Delete removes a value by key.
func (m *MemoryAdapter) Delete(_ context.Context, key string) error {
	m.store.Delete(key)
	return nil
}

// DeletePrefix removes every key starting with prefix.
func (m *MemoryAdapter) DeletePrefix(_ context.Context, prefix string) (int, error) {
	removed := 0
	for key := range m.store.Items() {
		if strings.HasPrefix(key, prefix) {
			m.store.Delete(key)
			removed++
		}
	}
	return removed, nil
}

// Ping always succeeds for the in-process store.
func (m *MemoryAdapter) Ping(context.Context) error {
	return nil
}

// Close drops every entry.
func (m *MemoryAdapter) Close() error {
	m.store.Flush()
	return nil
}
