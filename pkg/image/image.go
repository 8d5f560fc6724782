package image

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/feedpress/pkg/domain"
)

//go:generate moq -out mocks/downloader.go -pkg mocks -skip-ensure -fmt goimports . Downloader
//go:generate moq -out mocks/strategy.go -pkg mocks -skip-ensure -fmt goimports . Strategy

// ErrNoImage is returned when no candidate produced an image
var ErrNoImage = errors.New("no image")

// Image is a downloaded representative image
type Image struct {
	URL         string
	ContentType string
	Data        []byte
}

// Strategy produces candidate image urls for an item, in preference order
type Strategy interface {
	Name() string
	Candidates(ctx context.Context, item domain.FeedItem) ([]string, error)
}

// Downloader retrieves and validates a single image url
type Downloader interface {
	Download(ctx context.Context, imageURL string) (*Image, error)
}

// Resolver walks strategies in order and returns the first candidate that downloads
type Resolver struct {
	strategies []Strategy
	downloader Downloader
}

// NewResolver makes a resolver with the given downloader and strategies in priority order
func NewResolver(downloader Downloader, strategies ...Strategy) *Resolver {
	return &Resolver{strategies: strategies, downloader: downloader}
}

// DefaultStrategies returns feed-declared strategies followed by optional extra ones
func DefaultStrategies(extra ...Strategy) []Strategy {
	return append([]Strategy{FeedThumbnail{}, MediaContent{}}, extra...)
}

// Resolve returns the first image materialized by the strategy chain.
// ErrNoImage is returned if nothing worked, strategy and download failures are only logged.
func (r *Resolver) Resolve(ctx context.Context, item domain.FeedItem) (*Image, error) {
	tried := map[string]bool{}
	for _, s := range r.strategies {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("resolve image: %w", err)
		}
		candidates, err := s.Candidates(ctx, item)
		if err != nil {
			lgr.Printf("[DEBUG] image strategy %s failed for %s: %v", s.Name(), item.Link, err)
			continue
		}
		for _, c := range candidates {
			if c == "" || tried[c] {
				continue
			}
			tried[c] = true
			img, err := r.downloader.Download(ctx, c)
			if err != nil {
				lgr.Printf("[DEBUG] image candidate %s from %s rejected: %v", c, s.Name(), err)
				continue
			}
			return img, nil
		}
	}
	return nil, ErrNoImage
}

// FeedThumbnail uses the thumbnail declared by the feed
type FeedThumbnail struct{}

// Name returns strategy name
func (FeedThumbnail) Name() string { return "feed-thumbnail" }

// Candidates returns the item thumbnail without query string
func (FeedThumbnail) Candidates(_ context.Context, item domain.FeedItem) ([]string, error) {
	return single(StripQuery(item.ThumbnailURL)), nil
}

// MediaContent uses the media:content url declared by the feed
type MediaContent struct{}

// Name returns strategy name
func (MediaContent) Name() string { return "media-content" }

// Candidates returns the media content url without query string
func (MediaContent) Candidates(_ context.Context, item domain.FeedItem) ([]string, error) {
	return single(StripQuery(item.MediaContentURL)), nil
}

// StripQuery removes query string and fragment from a url
func StripQuery(link string) string {
	link = strings.TrimSpace(link)
	if link == "" {
		return ""
	}
	u, err := url.Parse(link)
	if err != nil {
		if i := strings.IndexAny(link, "?#"); i >= 0 {
			return link[:i]
		}
		return link
	}
	u.RawQuery = ""
	u.ForceQuery = false
	u.Fragment = ""
	u.RawFragment = ""
	return u.String()
}

func single(s string) []string {
	if s == "" {
		return nil
	}
	return []string{s}
}
