package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"
	"golang.org/x/sync/singleflight"

	"github.com/umputun/feedpress/pkg/domain"
	"github.com/umputun/feedpress/pkg/feed"
)

//go:generate moq -out mocks/sources.go -pkg mocks -skip-ensure -fmt goimports . Sources
//go:generate moq -out mocks/feed_importer.go -pkg mocks -skip-ensure -fmt goimports . FeedImporter
//go:generate moq -out mocks/journal.go -pkg mocks -skip-ensure -fmt goimports . Journal
//go:generate moq -out mocks/settings.go -pkg mocks -skip-ensure -fmt goimports . Settings

// Sources lists feeds in processing order
type Sources interface {
	List(ctx context.Context) ([]domain.FeedSource, error)
}

// Fetcher retrieves feed bodies
type Fetcher interface {
	Fetch(ctx context.Context, feedURL string) (feed.FetchResult, error)
	FetchRaw(ctx context.Context, feedURL string) ([]byte, error)
}

// FeedCache memoizes parsed items by feed url
type FeedCache interface {
	Get(ctx context.Context, feedURL string) ([]domain.FeedItem, bool)
	Put(ctx context.Context, feedURL string, items []domain.FeedItem)
}

// FeedImporter turns items into posts
type FeedImporter interface {
	ImportFeed(ctx context.Context, src domain.FeedSource, items []domain.FeedItem, limit int) (domain.ImportResult, error)
}

// Journal records pipeline events and keeps its size bounded
type Journal interface {
	Log(level domain.Level, format string, args ...any)
	Trim() (int, error)
}

// Settings stores run bookkeeping
type Settings interface {
	SetSetting(ctx context.Context, key, value string) error
}

// Params defines pipeline dependencies
type Params struct {
	Sources  Sources
	Fetcher  Fetcher
	Cache    FeedCache
	Importer FeedImporter
	Journal  Journal
	Settings Settings // optional
	Limit    int      // items imported per feed, 0 means all
}

// Pipeline processes configured feeds: cache, fetch, parse, import
type Pipeline struct {
	Params
	group singleflight.Group
	now   func() time.Time
}

// New makes a pipeline
func New(p Params) *Pipeline {
	return &Pipeline{Params: p, now: time.Now}
}

// Run processes all feeds sequentially in list order. A failed feed is journaled and the run proceeds.
func (p *Pipeline) Run(ctx context.Context) domain.RunReport {
	report := domain.RunReport{Started: p.now(), Feeds: []domain.FeedReport{}}
	defer p.finishRun(ctx, &report)

	sources, err := p.Sources.List(ctx)
	if err != nil {
		p.Journal.Log(domain.LevelError, "can't list feeds: %v", err)
		return report
	}
	p.Journal.Log(domain.LevelInfo, "run started, %d feeds", len(sources))

	for _, src := range sources {
		if ctx.Err() != nil {
			p.Journal.Log(domain.LevelWarning, "run interrupted: %v", ctx.Err())
			break
		}
		report.Feeds = append(report.Feeds, p.RunFeed(ctx, src))
	}
	return report
}

// RunFeed processes a single feed
func (p *Pipeline) RunFeed(ctx context.Context, src domain.FeedSource) domain.FeedReport {
	rep := domain.FeedReport{Source: src}

	items, ok := p.Cache.Get(ctx, src.URL)
	if ok {
		rep.FromCache = true
		p.Journal.Log(domain.LevelDebug, "feed %s: %d items from cache", src.Name(), len(items))
	} else {
		res, err := p.fetch(ctx, src.URL)
		if err != nil {
			p.Journal.Log(domain.LevelError, "feed %s: %v", src.Name(), err)
			rep.Error = err.Error()
			return rep
		}
		if res.NotModified {
			p.Journal.Log(domain.LevelInfo, "feed %s: not modified", src.Name())
			rep.NotModified = true
			return rep
		}

		parsed, err := feed.Parse(res.Body)
		if err != nil {
			p.Journal.Log(domain.LevelError, "feed %s: %v", src.Name(), err)
			rep.Error = err.Error()
			return rep
		}
		if parsed.Recovered {
			p.Journal.Log(domain.LevelWarning, "feed %s: recovered %d items from malformed feed: %s",
				src.Name(), len(parsed.Items), strings.Join(parsed.Diagnostics, "; "))
		}
		items = parsed.Items
		p.Cache.Put(ctx, src.URL, items)
	}

	rep.Items = len(items)
	result, err := p.Importer.ImportFeed(ctx, src, items, p.Limit)
	rep.Result = result
	if err != nil {
		p.Journal.Log(domain.LevelError, "feed %s: %v", src.Name(), err)
		rep.Error = err.Error()
	}
	return rep
}

// Preview fetches and parses a feed without touching validators, cache or posts.
// Returns at most n items, n <= 0 returns all.
func (p *Pipeline) Preview(ctx context.Context, feedURL string, n int) ([]domain.FeedItem, error) {
	body, _, err := shared(ctx, &p.group, "raw:"+feedURL, func(ctx context.Context) ([]byte, error) {
		return p.Fetcher.FetchRaw(ctx, feedURL)
	})
	if err != nil {
		return nil, fmt.Errorf("preview %s: %w", feedURL, err)
	}
	parsed, err := feed.Parse(body)
	if err != nil {
		return nil, fmt.Errorf("preview %s: %w", feedURL, err)
	}
	items := parsed.Items
	if n > 0 && len(items) > n {
		items = items[:n]
	}
	return items, nil
}

// fetch shares a single in-flight request between concurrent callers of the same url
func (p *Pipeline) fetch(ctx context.Context, feedURL string) (feed.FetchResult, error) {
	res, isShared, err := shared(ctx, &p.group, feedURL, func(ctx context.Context) (feed.FetchResult, error) {
		return p.Fetcher.Fetch(ctx, feedURL)
	})
	if isShared {
		lgr.Printf("[DEBUG] shared fetch of %s", feedURL)
	}
	return res, err
}

// shared runs fn once per key for all concurrent callers. The call is detached from
// caller cancellation and bounded by the fetcher timeout, a caller whose ctx is done
// stops waiting while others still get the result.
func shared[T any](ctx context.Context, g *singleflight.Group, key string, fn func(context.Context) (T, error)) (T, bool, error) {
	ch := g.DoChan(key, func() (any, error) {
		return fn(context.WithoutCancel(ctx))
	})
	var zero T
	select {
	case <-ctx.Done():
		return zero, false, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Shared, res.Err
		}
		return res.Val.(T), res.Shared, nil
	}
}

func (p *Pipeline) finishRun(ctx context.Context, report *domain.RunReport) {
	report.Finished = p.now()
	p.Journal.Log(domain.LevelInfo, "run finished in %v, imported %d posts from %d feeds",
		report.Finished.Sub(report.Started).Round(time.Millisecond), report.Imported(), len(report.Feeds))

	if removed, err := p.Journal.Trim(); err != nil {
		lgr.Printf("[WARN] can't trim journal: %v", err)
	} else if removed > 0 {
		lgr.Printf("[DEBUG] trimmed %d journal entries", removed)
	}

	if p.Settings != nil {
		// run bookkeeping must be written even if the run context is done
		if err := p.Settings.SetSetting(context.WithoutCancel(ctx), domain.SettingLastRun, report.Finished.UTC().Format(time.RFC3339)); err != nil {
			lgr.Printf("[WARN] can't save last run time: %v", err)
		}
	}
}
