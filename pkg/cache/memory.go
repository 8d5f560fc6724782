package cache

import (
	"context"
	"sync"
	"time"

	expirable "github.com/go-pkgz/expirable-cache/v3"
)

// MemoryCache is an in-process ObjectCache, one expirable cache per namespace
type MemoryCache struct {
	mu     sync.Mutex
	spaces map[string]expirable.Cache[string, []byte]
}

// NewMemoryCache makes an empty memory cache
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{spaces: map[string]expirable.Cache[string, []byte]{}}
}

// Get returns a copy of value unless missing or expired
func (m *MemoryCache) Get(_ context.Context, namespace, key string) ([]byte, bool, error) {
	c, ok := m.space(namespace, false)
	if !ok {
		return nil, false, nil
	}
	val, ok := c.Get(key)
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), val...), true, nil
}

// Set stores a copy of value, ttl <= 0 means no expiration
func (m *MemoryCache) Set(_ context.Context, namespace, key string, value []byte, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0 // zero falls back to the cache default, which never evicts
	}
	c, _ := m.space(namespace, true)
	c.Set(key, append([]byte(nil), value...), ttl)
	return nil
}

// Delete removes a key
func (m *MemoryCache) Delete(_ context.Context, namespace, key string) error {
	if c, ok := m.space(namespace, false); ok {
		c.Invalidate(key)
	}
	return nil
}

// Flush removes all keys of the namespace
func (m *MemoryCache) Flush(_ context.Context, namespace string) error {
	if c, ok := m.space(namespace, false); ok {
		c.Purge()
	}
	return nil
}

// space returns the namespace cache, creating it when asked
func (m *MemoryCache) space(namespace string, create bool) (expirable.Cache[string, []byte], bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.spaces[namespace]
	if !ok && create {
		c = expirable.NewCache[string, []byte]()
		m.spaces[namespace] = c
		ok = true
	}
	return c, ok
}
