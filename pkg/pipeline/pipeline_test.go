package pipeline

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/feedpress/pkg/cache"
	"github.com/umputun/feedpress/pkg/domain"
	"github.com/umputun/feedpress/pkg/feed"
	"github.com/umputun/feedpress/pkg/pipeline/mocks"
)

const testRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
	<title>Test Feed</title>
	<item><title>Item 1</title><link>https://example.com/1</link><guid>g1</guid></item>
	<item><title>Item 2</title><link>https://example.com/2</link><guid>g2</guid></item>
	<item><title>Item 3</title><link>https://example.com/3</link><guid>g3</guid></item>
</channel>
</rss>`

// stateStore keeps validators in memory
type stateStore struct {
	mu     sync.Mutex
	states map[string]domain.FetchState
}

func (s *stateStore) GetState(_ context.Context, feedURL string) (domain.FetchState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st, ok := s.states[feedURL]; ok {
		return st, nil
	}
	return domain.FetchState{FeedURL: feedURL}, nil
}

func (s *stateStore) SaveState(_ context.Context, state domain.FetchState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[state.FeedURL] = state
	return nil
}

type fixture struct {
	pipe     *Pipeline
	journal  *mocks.JournalMock
	importer *mocks.FeedImporterMock
	settings *mocks.SettingsMock
	sources  []domain.FeedSource
}

func newFixture(t *testing.T, ttl time.Duration, timeout time.Duration, urls ...string) *fixture {
	t.Helper()
	f := &fixture{}
	for i, u := range urls {
		f.sources = append(f.sources, domain.FeedSource{ID: int64(i + 1), URL: u, Position: i})
	}
	f.journal = &mocks.JournalMock{
		LogFunc:  func(domain.Level, string, ...any) {},
		TrimFunc: func() (int, error) { return 0, nil },
	}
	f.importer = &mocks.FeedImporterMock{
		ImportFeedFunc: func(_ context.Context, _ domain.FeedSource, items []domain.FeedItem, limit int) (domain.ImportResult, error) {
			n := len(items)
			if limit > 0 && n > limit {
				n = limit
			}
			return domain.ImportResult{Imported: n}, nil
		},
	}
	f.settings = &mocks.SettingsMock{SetSettingFunc: func(context.Context, string, string) error { return nil }}

	var store cache.ObjectCache
	if ttl > 0 {
		store = cache.NewMemoryCache()
	}
	f.pipe = New(Params{
		Sources: &mocks.SourcesMock{ListFunc: func(context.Context) ([]domain.FeedSource, error) {
			return f.sources, nil
		}},
		Fetcher:  feed.NewFetcher(feed.FetcherParams{Timeout: timeout, Store: &stateStore{states: map[string]domain.FetchState{}}}),
		Cache:    cache.NewFeedCache(store, ttl),
		Importer: f.importer,
		Journal:  f.journal,
		Settings: f.settings,
	})
	return f
}

func (f *fixture) logged(level domain.Level) []string {
	var res []string
	for _, c := range f.journal.LogCalls() {
		if c.Level == level {
			res = append(res, fmt.Sprintf(c.Format, c.Args...))
		}
	}
	return res
}

func TestPipeline_Run(t *testing.T) {
	t.Run("feeds processed in order", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(testRSS))
		}))
		defer srv.Close()

		f := newFixture(t, 0, time.Second, srv.URL+"/a", srv.URL+"/b")
		f.pipe.Limit = 2
		report := f.pipe.Run(context.Background())

		require.Len(t, report.Feeds, 2)
		assert.Equal(t, srv.URL+"/a", report.Feeds[0].Source.URL)
		assert.Equal(t, srv.URL+"/b", report.Feeds[1].Source.URL)
		assert.Equal(t, 3, report.Feeds[0].Items)
		assert.Equal(t, 4, report.Imported())
		assert.False(t, report.Finished.Before(report.Started))

		calls := f.importer.ImportFeedCalls()
		require.Len(t, calls, 2)
		assert.Equal(t, 2, calls[0].Limit)
		assert.Len(t, calls[0].Items, 3)
		assert.Equal(t, "g1", calls[0].Items[0].GUID)

		assert.Len(t, f.journal.TrimCalls(), 1)
		require.Len(t, f.settings.SetSettingCalls(), 1)
		assert.Equal(t, domain.SettingLastRun, f.settings.SetSettingCalls()[0].Key)
	})

	t.Run("not modified feed produces no import", func(t *testing.T) {
		var requests atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requests.Add(1)
			if r.Header.Get("If-None-Match") == `"v1"` {
				w.WriteHeader(http.StatusNotModified)
				return
			}
			w.Header().Set("ETag", `"v1"`)
			_, _ = w.Write([]byte(testRSS))
		}))
		defer srv.Close()

		f := newFixture(t, 0, time.Second, srv.URL)
		first := f.pipe.Run(context.Background())
		require.Len(t, first.Feeds, 1)
		assert.False(t, first.Feeds[0].NotModified)

		second := f.pipe.Run(context.Background())
		require.Len(t, second.Feeds, 1)
		assert.True(t, second.Feeds[0].NotModified)
		assert.Zero(t, second.Imported())
		assert.Empty(t, second.Feeds[0].Error)
		assert.Len(t, f.importer.ImportFeedCalls(), 1, "import skipped on 304")
		assert.Equal(t, int32(2), requests.Load())
	})

	t.Run("failed feeds are journaled and run proceeds", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/error":
				w.WriteHeader(http.StatusInternalServerError)
			case "/garbage":
				_, _ = w.Write([]byte("not a feed"))
			default:
				_, _ = w.Write([]byte(testRSS))
			}
		}))
		defer srv.Close()

		f := newFixture(t, 0, time.Second, srv.URL+"/error", srv.URL+"/garbage", srv.URL+"/ok")
		report := f.pipe.Run(context.Background())

		require.Len(t, report.Feeds, 3)
		assert.Contains(t, report.Feeds[0].Error, "unexpected status 500")
		assert.Contains(t, report.Feeds[1].Error, "unparseable")
		assert.Empty(t, report.Feeds[2].Error)
		assert.Equal(t, 3, report.Imported())
		assert.Len(t, f.logged(domain.LevelError), 2)
		assert.Len(t, f.importer.ImportFeedCalls(), 1)
	})

	t.Run("fetch timeout", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/slow" {
				time.Sleep(300 * time.Millisecond)
			}
			_, _ = w.Write([]byte(testRSS))
		}))
		defer srv.Close()

		f := newFixture(t, 0, 50*time.Millisecond, srv.URL+"/slow", srv.URL+"/fast")
		report := f.pipe.Run(context.Background())

		require.Len(t, report.Feeds, 2)
		assert.NotEmpty(t, report.Feeds[0].Error)
		assert.Empty(t, report.Feeds[1].Error)
		assert.Equal(t, 3, report.Imported())
	})

	t.Run("cache hit skips fetch", func(t *testing.T) {
		var requests atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requests.Add(1)
			_, _ = w.Write([]byte(testRSS))
		}))
		defer srv.Close()

		f := newFixture(t, time.Hour, time.Second, srv.URL)
		first := f.pipe.Run(context.Background())
		require.Len(t, first.Feeds, 1)
		assert.False(t, first.Feeds[0].FromCache)

		second := f.pipe.Run(context.Background())
		require.Len(t, second.Feeds, 1)
		assert.True(t, second.Feeds[0].FromCache)
		assert.Equal(t, 3, second.Feeds[0].Items)
		assert.Equal(t, int32(1), requests.Load())
		assert.Len(t, f.importer.ImportFeedCalls(), 2, "cached items still go through import")
	})

	t.Run("list failure", func(t *testing.T) {
		f := newFixture(t, 0, time.Second)
		f.pipe.Sources = &mocks.SourcesMock{ListFunc: func(context.Context) ([]domain.FeedSource, error) {
			return nil, errors.New("db down")
		}}
		report := f.pipe.Run(context.Background())
		assert.Empty(t, report.Feeds)
		require.Len(t, f.logged(domain.LevelError), 1)
		assert.Contains(t, f.logged(domain.LevelError)[0], "db down")
		assert.Len(t, f.journal.TrimCalls(), 1)
	})

	t.Run("canceled context stops run", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		f := newFixture(t, 0, time.Second, "http://127.0.0.1:1/a", "http://127.0.0.1:1/b")
		report := f.pipe.Run(ctx)
		assert.Empty(t, report.Feeds)
		assert.NotEmpty(t, f.logged(domain.LevelWarning))
		assert.Len(t, f.settings.SetSettingCalls(), 1)
	})

	t.Run("importer error recorded", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(testRSS))
		}))
		defer srv.Close()

		f := newFixture(t, 0, time.Second, srv.URL)
		f.importer.ImportFeedFunc = func(context.Context, domain.FeedSource, []domain.FeedItem, int) (domain.ImportResult, error) {
			return domain.ImportResult{Imported: 1}, context.DeadlineExceeded
		}
		report := f.pipe.Run(context.Background())
		require.Len(t, report.Feeds, 1)
		assert.Equal(t, 1, report.Imported())
		assert.Contains(t, report.Feeds[0].Error, "deadline exceeded")
	})
}

func TestPipeline_RunFeed_Recovered(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<rss><channel><item><title>A & B</title><link>https://example.com/x</link></item></channel>`))
	}))
	defer srv.Close()

	f := newFixture(t, 0, time.Second, srv.URL)
	rep := f.pipe.RunFeed(context.Background(), f.sources[0])
	assert.Empty(t, rep.Error)
	assert.Equal(t, 1, rep.Items)
	require.Len(t, f.logged(domain.LevelWarning), 1)
	assert.Contains(t, f.logged(domain.LevelWarning)[0], "recovered 1 items")
}

func TestPipeline_SharedFetch(t *testing.T) {
	var requests atomic.Int32
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		<-release
		_, _ = w.Write([]byte(testRSS))
	}))
	defer srv.Close()

	f := newFixture(t, 0, 5*time.Second, srv.URL)
	var wg sync.WaitGroup
	reports := make([]domain.FeedReport, 5)
	for i := range reports {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			reports[i] = f.pipe.RunFeed(context.Background(), f.sources[0])
		}(i)
	}

	// let all goroutines join the in-flight request before it completes
	require.Eventually(t, func() bool { return requests.Load() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), requests.Load())
	for _, rep := range reports {
		assert.Empty(t, rep.Error)
		assert.Equal(t, 3, rep.Items)
	}
}

func TestPipeline_SharedFetchCanceledCaller(t *testing.T) {
	var requests atomic.Int32
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		<-release
		_, _ = w.Write([]byte(testRSS))
	}))
	defer srv.Close()
	defer func() {
		select {
		case <-release:
		default:
			close(release)
		}
	}()

	f := newFixture(t, 0, 5*time.Second, srv.URL)

	ctx, cancel := context.WithCancel(context.Background())
	first := make(chan domain.FeedReport, 1)
	go func() { first <- f.pipe.RunFeed(ctx, f.sources[0]) }()
	require.Eventually(t, func() bool { return requests.Load() == 1 }, time.Second, 5*time.Millisecond)

	second := make(chan domain.FeedReport, 1)
	go func() { second <- f.pipe.RunFeed(context.Background(), f.sources[0]) }()
	time.Sleep(50 * time.Millisecond) // second caller joins the in-flight request

	cancel()
	select {
	case rep := <-first:
		assert.Contains(t, rep.Error, context.Canceled.Error())
		assert.Zero(t, rep.Items)
	case <-time.After(time.Second):
		t.Fatal("canceled caller still waits for the shared fetch")
	}

	close(release)
	select {
	case rep := <-second:
		assert.Empty(t, rep.Error, "other caller is not affected by cancellation")
		assert.Equal(t, 3, rep.Items)
	case <-time.After(time.Second):
		t.Fatal("second caller got no result")
	}
	assert.Equal(t, int32(1), requests.Load())
}

func TestPipeline_Preview(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("If-None-Match"))
		w.Header().Set("ETag", `"v1"`)
		if r.URL.Path == "/bad" {
			_, _ = w.Write([]byte("garbage"))
			return
		}
		_, _ = w.Write([]byte(testRSS))
	}))
	defer srv.Close()

	f := newFixture(t, time.Hour, time.Second, srv.URL)

	items, err := f.pipe.Preview(context.Background(), srv.URL, 2)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Item 1", items[0].Title)

	items, err = f.pipe.Preview(context.Background(), srv.URL, 0)
	require.NoError(t, err)
	assert.Len(t, items, 3)

	_, err = f.pipe.Preview(context.Background(), srv.URL+"/bad", 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "preview")

	assert.Empty(t, f.importer.ImportFeedCalls())

	// preview leaves no validators or cache behind, the next run does a full fetch
	rep := f.pipe.RunFeed(context.Background(), f.sources[0])
	assert.False(t, rep.FromCache)
	assert.False(t, rep.NotModified)
}
