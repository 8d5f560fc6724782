package content

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-shiori/go-readability"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"

	"github.com/umputun/feedpress/pkg/feed"
)

// Article is a full text extracted from an item page
type Article struct {
	Title string
	HTML  string
	Text  string
}

// HTTPExtractor extracts article content from URLs using trafilatura with readability as fallback
type HTTPExtractor struct {
	client    *http.Client
	userAgent string
	maxSize   int64
}

// NewHTTPExtractor creates a new content extractor
func NewHTTPExtractor(timeout time.Duration, userAgent string) *HTTPExtractor {
	if userAgent == "" {
		userAgent = "Mozilla/5.0 (compatible; Feedpress/1.0)"
	}
	return &HTTPExtractor{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
		maxSize:   5 * 1024 * 1024,
	}
}

// Extract retrieves the page and extracts the main article content
func (e *HTTPExtractor) Extract(ctx context.Context, urlStr string) (*Article, error) {
	parsedURL, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("parse URL: %w", err)
	}
	if parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, fmt.Errorf("invalid URL: %s", urlStr)
	}

	page, err := e.download(ctx, urlStr)
	if err != nil {
		return nil, err
	}

	article, err := extractTrafilatura(page, parsedURL)
	if err == nil {
		return article, nil
	}
	lgr.Printf("[DEBUG] trafilatura failed for %s, trying readability: %v", urlStr, err)

	article, rerr := extractReadability(page, parsedURL)
	if rerr != nil {
		return nil, fmt.Errorf("extract content from %s: %w", urlStr, errors.Join(err, rerr))
	}
	return article, nil
}

func (e *HTTPExtractor) download(ctx context.Context, urlStr string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", e.userAgent)
	feed.SetBrowserHeaders(req, feed.AcceptPage)

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch URL %s: %w", urlStr, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code %d for URL %s", resp.StatusCode, urlStr)
	}

	// pages in legacy charsets are converted to utf-8
	reader, err := charset.NewReader(io.LimitReader(resp.Body, e.maxSize), resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, fmt.Errorf("detect charset of %s: %w", urlStr, err)
	}
	page, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", urlStr, err)
	}
	return page, nil
}

func extractTrafilatura(page []byte, pageURL *url.URL) (*Article, error) {
	opts := trafilatura.Options{
		EnableFallback:  true,
		ExcludeComments: true,
		IncludeImages:   true,
		IncludeLinks:    true,
		Deduplicate:     true,
		OriginalURL:     pageURL,
	}
	result, err := trafilatura.Extract(bytes.NewReader(page), opts)
	if err != nil {
		return nil, fmt.Errorf("trafilatura: %w", err)
	}
	if result == nil || strings.TrimSpace(result.ContentText) == "" {
		return nil, errors.New("trafilatura: no text content")
	}

	res := &Article{Title: result.Metadata.Title, Text: strings.TrimSpace(result.ContentText)}
	if result.ContentNode != nil {
		var buf bytes.Buffer
		for c := result.ContentNode.FirstChild; c != nil; c = c.NextSibling {
			if err := html.Render(&buf, c); err != nil {
				return nil, fmt.Errorf("render content: %w", err)
			}
		}
		res.HTML = strings.TrimSpace(buf.String())
	}
	if res.HTML == "" {
		res.HTML = textToHTML(res.Text)
	}
	return res, nil
}

func extractReadability(page []byte, pageURL *url.URL) (*Article, error) {
	article, err := readability.FromReader(bytes.NewReader(page), pageURL)
	if err != nil {
		return nil, fmt.Errorf("readability: %w", err)
	}
	text := StripTags(article.Content)
	if text == "" {
		return nil, errors.New("readability: no text content")
	}
	return &Article{Title: article.Title, HTML: strings.TrimSpace(article.Content), Text: text}, nil
}

// textToHTML wraps text paragraphs into <p> elements
func textToHTML(text string) string {
	var sb strings.Builder
	for _, para := range strings.Split(text, "\n") {
		if para = strings.TrimSpace(para); para != "" {
			sb.WriteString("<p>")
			sb.WriteString(html.EscapeString(para))
			sb.WriteString("</p>")
		}
	}
	return sb.String()
}
