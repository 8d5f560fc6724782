package image

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-pkgz/lgr"
	"github.com/temoto/robotstxt"
	"golang.org/x/net/html/charset"

	"github.com/umputun/feedpress/pkg/domain"
	"github.com/umputun/feedpress/pkg/feed"
)

// DefaultScrapePattern is a listing page pattern used by many blog engines
const DefaultScrapePattern = "{origin}/page/{n}/"

// PageScrapeParams defines listing page scraping settings
type PageScrapeParams struct {
	Pattern       string // supports {origin} and {n} placeholders
	MaxPages      int
	RespectRobots bool
	UserAgent     string
	Timeout       time.Duration
}

// PageScrape looks for the first image on paginated listing pages of the item's site.
// It is consulted only for items without any feed-declared image.
type PageScrape struct {
	client        *http.Client
	pattern       string
	maxPages      int
	respectRobots bool
	userAgent     string

	mu     sync.Mutex
	robots map[string]*robotstxt.Group // by origin, nil group allows everything
}

// NewPageScrape makes a page scrape strategy, zero params get defaults
func NewPageScrape(p PageScrapeParams) *PageScrape {
	if p.Pattern == "" {
		p.Pattern = DefaultScrapePattern
	}
	if p.MaxPages <= 0 {
		p.MaxPages = 3
	}
	if p.Timeout <= 0 {
		p.Timeout = 30 * time.Second
	}
	if p.UserAgent == "" {
		p.UserAgent = "Feedpress/1.0"
	}
	return &PageScrape{
		client:        &http.Client{Timeout: p.Timeout},
		pattern:       p.Pattern,
		maxPages:      p.MaxPages,
		respectRobots: p.RespectRobots,
		userAgent:     p.UserAgent,
		robots:        map[string]*robotstxt.Group{},
	}
}

// Name returns strategy name
func (p *PageScrape) Name() string { return "page-scrape" }

// Candidates returns the first image found on listing pages derived from the item link origin
func (p *PageScrape) Candidates(ctx context.Context, item domain.FeedItem) ([]string, error) {
	if item.ThumbnailURL != "" || item.MediaContentURL != "" {
		return nil, nil
	}
	u, err := url.Parse(item.Link)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, fmt.Errorf("item link %q is not an absolute http url", item.Link)
	}
	origin := u.Scheme + "://" + u.Host

	for n := 1; n <= p.maxPages; n++ {
		pageURL := strings.NewReplacer("{origin}", origin, "{n}", strconv.Itoa(n)).Replace(p.pattern)
		if p.respectRobots && !p.allowed(ctx, origin, pageURL) {
			lgr.Printf("[DEBUG] robots.txt disallows %s", pageURL)
			continue
		}
		src, err := p.firstImage(ctx, pageURL)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil, err
			}
			lgr.Printf("[DEBUG] scrape %s: %v", pageURL, err)
			continue
		}
		if src != "" {
			return []string{src}, nil
		}
	}
	return nil, nil
}

// firstImage returns absolute url of the first <img src> on the page, empty if none
func (p *PageScrape) firstImage(ctx context.Context, pageURL string) (string, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return "", fmt.Errorf("parse page url: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", p.userAgent)
	feed.SetBrowserHeaders(req, feed.AcceptPage)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("get page: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	reader, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return "", fmt.Errorf("detect charset: %w", err)
	}
	doc, err := goquery.NewDocumentFromReader(reader)
	if err != nil {
		return "", fmt.Errorf("parse page: %w", err)
	}

	result := ""
	doc.Find("img[src]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		src := strings.TrimSpace(s.AttrOr("src", ""))
		if src == "" || strings.HasPrefix(src, "data:") {
			return true
		}
		ref, err := url.Parse(src)
		if err != nil {
			return true
		}
		result = base.ResolveReference(ref).String()
		return false
	})
	return result, nil
}

// allowed checks robots.txt of the origin, loaded once per origin.
// unreachable robots.txt allows everything.
func (p *PageScrape) allowed(ctx context.Context, origin, pageURL string) bool {
	p.mu.Lock()
	group, ok := p.robots[origin]
	p.mu.Unlock()
	if !ok {
		group = p.loadRobots(ctx, origin)
		p.mu.Lock()
		p.robots[origin] = group
		p.mu.Unlock()
	}
	if group == nil {
		return true
	}
	u, err := url.Parse(pageURL)
	if err != nil {
		return false
	}
	return group.Test(u.EscapedPath())
}

func (p *PageScrape) loadRobots(ctx context.Context, origin string) *robotstxt.Group {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, origin+"/robots.txt", http.NoBody)
	if err != nil {
		return nil
	}
	req.Header.Set("User-Agent", p.userAgent)
	resp, err := p.client.Do(req)
	if err != nil {
		lgr.Printf("[DEBUG] can't load robots.txt for %s: %v", origin, err)
		return nil
	}
	defer resp.Body.Close()

	data, err := robotstxt.FromResponse(resp)
	if err != nil {
		lgr.Printf("[DEBUG] can't parse robots.txt for %s: %v", origin, err)
		return nil
	}
	return data.FindGroup(p.userAgent)
}
