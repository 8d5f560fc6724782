package cache

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/feedpress/pkg/domain"
)

//go:generate moq -out mocks/object_cache.go -pkg mocks -skip-ensure -fmt goimports . ObjectCache

// Namespace groups feed cache entries in the object cache
const Namespace = "feeds"

// ObjectCache is a ttl key-value store partitioned by namespace
type ObjectCache interface {
	Get(ctx context.Context, namespace, key string) ([]byte, bool, error)
	Set(ctx context.Context, namespace, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, namespace, key string) error
	Flush(ctx context.Context, namespace string) error
}

// FeedCache memoizes parsed feed items by feed url.
// Backend failures are logged and reported as a miss, cache never breaks the pipeline.
type FeedCache struct {
	store ObjectCache // nil disables caching
	ttl   time.Duration
	now   func() time.Time
}

// NewFeedCache makes a feed cache over the given store, nil store makes a cache that always misses
func NewFeedCache(store ObjectCache, ttl time.Duration) *FeedCache {
	return &FeedCache{store: store, ttl: ttl, now: time.Now}
}

// Key returns cache key for a feed url
func Key(feedURL string) string {
	hash := sha256.Sum256([]byte(feedURL))
	return fmt.Sprintf("feed:%x", hash[:8])
}

// Get returns cached items for the feed url
func (c *FeedCache) Get(ctx context.Context, feedURL string) ([]domain.FeedItem, bool) {
	if c.store == nil || c.ttl <= 0 {
		return nil, false
	}
	key := Key(feedURL)
	data, ok, err := c.store.Get(ctx, Namespace, key)
	if err != nil {
		lgr.Printf("[WARN] cache get %s: %v", feedURL, err)
		return nil, false
	}
	if !ok {
		return nil, false
	}

	var entry domain.CacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		lgr.Printf("[WARN] drop invalid cache entry for %s: %v", feedURL, err)
		if err := c.store.Delete(ctx, Namespace, key); err != nil {
			lgr.Printf("[WARN] cache delete %s: %v", feedURL, err)
		}
		return nil, false
	}
	if entry.Expired(c.now()) {
		return nil, false
	}
	return entry.Items, true
}

// Put stores items for the feed url with configured ttl
func (c *FeedCache) Put(ctx context.Context, feedURL string, items []domain.FeedItem) {
	if c.store == nil || c.ttl <= 0 {
		return
	}
	key := Key(feedURL)
	data, err := json.Marshal(domain.CacheEntry{Key: key, Items: items, ExpiresAt: c.now().Add(c.ttl)})
	if err != nil {
		lgr.Printf("[WARN] cache encode %s: %v", feedURL, err)
		return
	}
	if err := c.store.Set(ctx, Namespace, key, data, c.ttl); err != nil {
		lgr.Printf("[WARN] cache set %s: %v", feedURL, err)
	}
}

// Delete removes cached items of the feed url
func (c *FeedCache) Delete(ctx context.Context, feedURL string) error {
	if c.store == nil {
		return nil
	}
	if err := c.store.Delete(ctx, Namespace, Key(feedURL)); err != nil {
		return fmt.Errorf("delete cached feed %s: %w", feedURL, err)
	}
	return nil
}

// Clear removes all cached feeds
func (c *FeedCache) Clear(ctx context.Context) error {
	if c.store == nil {
		return nil
	}
	if err := c.store.Flush(ctx, Namespace); err != nil {
		return fmt.Errorf("clear feed cache: %w", err)
	}
	return nil
}
