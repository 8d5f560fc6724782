package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/feedpress/pkg/domain"
)

//go:generate moq -out mocks/validator_store.go -pkg mocks -skip-ensure -fmt goimports . ValidatorStore

// ValidatorStore keeps conditional GET validators per feed url
type ValidatorStore interface {
	GetState(ctx context.Context, feedURL string) (domain.FetchState, error)
	SaveState(ctx context.Context, state domain.FetchState) error
}

// FetchResult is the outcome of a successful fetch
type FetchResult struct {
	Body        []byte
	NotModified bool
}

// FetchError reports a failed feed request, either transport failure or unexpected status
type FetchError struct {
	URL        string
	StatusCode int // zero for transport failures
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// FetcherParams defines fetcher settings
type FetcherParams struct {
	Timeout     time.Duration
	UserAgent   string
	MaxBodySize int64
	Store       ValidatorStore
}

// Fetcher downloads feed documents with conditional GET
type Fetcher struct {
	client      *http.Client
	userAgent   string
	maxBodySize int64
	store       ValidatorStore
}

// NewFetcher creates a new feed fetcher
func NewFetcher(params FetcherParams) *Fetcher {
	if params.Timeout == 0 {
		params.Timeout = 30 * time.Second
	}
	if params.MaxBodySize == 0 {
		params.MaxBodySize = 10 * 1024 * 1024
	}
	if params.UserAgent == "" {
		params.UserAgent = "Feedpress/1.0"
	}
	return &Fetcher{
		client: &http.Client{
			Timeout: params.Timeout,
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		userAgent:   params.UserAgent,
		maxBodySize: params.MaxBodySize,
		store:       params.Store,
	}
}

// Fetch retrieves the feed document. Previously recorded validators are sent with the request,
// 304 response results in NotModified with validators untouched, 2xx updates validators present in the response.
func (f *Fetcher) Fetch(ctx context.Context, feedURL string) (FetchResult, error) {
	state := domain.FetchState{FeedURL: feedURL}
	if f.store != nil {
		st, err := f.store.GetState(ctx, feedURL)
		if err != nil {
			lgr.Printf("[WARN] can't load validators for %s, fetching unconditionally: %v", feedURL, err)
		} else {
			state = st
		}
	}

	resp, err := f.do(ctx, feedURL, state)
	if err != nil {
		return FetchResult{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotModified {
		lgr.Printf("[DEBUG] feed %s not modified", feedURL)
		return FetchResult{NotModified: true}, nil
	}

	body, err := f.readBody(feedURL, resp)
	if err != nil {
		return FetchResult{}, err
	}

	if f.store != nil {
		newState := domain.FetchState{
			FeedURL:      feedURL,
			LastModified: resp.Header.Get("Last-Modified"),
			ETag:         resp.Header.Get("ETag"),
		}
		if newState.LastModified != "" || newState.ETag != "" {
			if err := f.store.SaveState(ctx, newState); err != nil {
				lgr.Printf("[WARN] can't save validators for %s: %v", feedURL, err)
			}
		}
	}

	return FetchResult{Body: body}, nil
}

// FetchRaw retrieves the feed document unconditionally, stored validators are neither sent nor updated
func (f *Fetcher) FetchRaw(ctx context.Context, feedURL string) ([]byte, error) {
	resp, err := f.do(ctx, feedURL, domain.FetchState{})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotModified {
		return nil, &FetchError{URL: feedURL, StatusCode: resp.StatusCode}
	}
	return f.readBody(feedURL, resp)
}

func (f *Fetcher) do(ctx context.Context, feedURL string, state domain.FetchState) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, http.NoBody)
	if err != nil {
		return nil, &FetchError{URL: feedURL, Err: fmt.Errorf("create request: %w", err)}
	}

	req.Header.Set("User-Agent", f.userAgent)
	SetBrowserHeaders(req, AcceptFeed)

	if state.LastModified != "" {
		req.Header.Set("If-Modified-Since", state.LastModified)
	}
	if state.ETag != "" {
		req.Header.Set("If-None-Match", state.ETag)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: feedURL, Err: err}
	}

	if resp.StatusCode != http.StatusNotModified && (resp.StatusCode < 200 || resp.StatusCode > 299) {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		_ = resp.Body.Close()
		return nil, &FetchError{URL: feedURL, StatusCode: resp.StatusCode}
	}
	return resp, nil
}

func (f *Fetcher) readBody(feedURL string, resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodySize+1))
	if err != nil {
		return nil, &FetchError{URL: feedURL, Err: fmt.Errorf("read body: %w", err)}
	}
	if int64(len(body)) > f.maxBodySize {
		return nil, &FetchError{URL: feedURL, Err: fmt.Errorf("body exceeds %d bytes", f.maxBodySize)}
	}
	return body, nil
}
