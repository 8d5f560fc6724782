package domain

import "time"

// FeedSource represents a configured feed. Identity is the URL, Position defines processing order.
type FeedSource struct {
	ID          int64     `json:"id"`
	URL         string    `json:"url"`
	DisplayName string    `json:"name,omitempty"`
	Position    int       `json:"position"`
	CreatedAt   time.Time `json:"created_at"`
}

// Name returns a human-readable identifier for the feed
func (f FeedSource) Name() string {
	if f.DisplayName != "" {
		return f.DisplayName
	}
	return f.URL
}

// FetchState keeps conditional GET validators for a feed URL
type FetchState struct {
	FeedURL      string
	LastModified string
	ETag         string
	UpdatedAt    time.Time
}

// CacheEntry is a cached set of parsed items for a feed
type CacheEntry struct {
	Key       string     `json:"key"`
	Items     []FeedItem `json:"items"`
	ExpiresAt time.Time  `json:"expires_at"`
}

// Expired reports whether the entry is past its expiration time
func (c CacheEntry) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && now.After(c.ExpiresAt)
}
