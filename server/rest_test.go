package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/feedpress/pkg/domain"
	"github.com/umputun/feedpress/pkg/repository"
)

func do(t *testing.T, srv *Server, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rdr io.Reader = http.NoBody
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rdr)
	rec := httptest.NewRecorder()
	srv.router.ServeHTTP(rec, req)
	return rec
}

func TestStatusHandler(t *testing.T) {
	t.Run("with last run", func(t *testing.T) {
		deps := newDeps()
		deps.scheduler.LastReportFunc = func() (domain.RunReport, bool) {
			return domain.RunReport{Feeds: []domain.FeedReport{
				{Result: domain.ImportResult{Imported: 3}},
				{Error: "fetch failed"},
			}}, true
		}
		rec := do(t, deps.server(""), http.MethodGet, "/api/v1/status", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var resp statusResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "ok", resp.Status)
		assert.Equal(t, "test", resp.Version)
		assert.Equal(t, "1h0m0s", resp.Interval)
		assert.True(t, testNextRun.Equal(resp.NextRun))
		assert.Equal(t, int64(42), resp.Posts)
		assert.Equal(t, int64(1024), resp.JournalSize)
		require.NotNil(t, resp.LastRun)
		assert.Equal(t, 2, resp.LastRun.Feeds)
		assert.Equal(t, 3, resp.LastRun.Imported)
		assert.Equal(t, 1, resp.LastRun.Failed)
	})

	t.Run("store failure is degraded", func(t *testing.T) {
		deps := newDeps()
		deps.posts.CountFunc = func(context.Context) (int64, error) { return 0, errors.New("db down") }
		rec := do(t, deps.server(""), http.MethodGet, "/api/v1/status", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"status":"degraded"`)
		assert.NotContains(t, rec.Body.String(), "last_run")
	})
}

func TestFeedsHandlers(t *testing.T) {
	t.Run("list", func(t *testing.T) {
		rec := do(t, newDeps().server(""), http.MethodGet, "/api/v1/feeds", "")
		require.Equal(t, http.StatusOK, rec.Code)
		var feeds []domain.FeedSource
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &feeds))
		require.Len(t, feeds, 2)
		assert.Equal(t, "https://example.com/a.xml", feeds[0].URL)
	})

	t.Run("add", func(t *testing.T) {
		deps := newDeps()
		deps.feeds.AddFunc = func(_ context.Context, src *domain.FeedSource) error {
			src.ID, src.Position = 3, 2
			return nil
		}
		rec := do(t, deps.server(""), http.MethodPost, "/api/v1/feeds", `{"url":" https://example.com/c.xml ","name":"C"}`)
		require.Equal(t, http.StatusCreated, rec.Code)

		require.Len(t, deps.feeds.AddCalls(), 1)
		assert.Equal(t, "https://example.com/c.xml", deps.feeds.AddCalls()[0].Src.URL)
		assert.Equal(t, "C", deps.feeds.AddCalls()[0].Src.DisplayName)
		assert.Contains(t, rec.Body.String(), `"id":3`)
		require.Len(t, deps.journal.LogCalls(), 1)
	})

	t.Run("add rejects invalid url", func(t *testing.T) {
		tbl := []string{`{"url":""}`, `{"url":"ftp://example.com/f"}`, `{"url":"/relative"}`, `not json`}
		for _, body := range tbl {
			deps := newDeps()
			rec := do(t, deps.server(""), http.MethodPost, "/api/v1/feeds", body)
			assert.Equal(t, http.StatusBadRequest, rec.Code, body)
			assert.Empty(t, deps.feeds.AddCalls())
		}
	})

	t.Run("delete", func(t *testing.T) {
		deps := newDeps()
		deps.feeds.RemoveFunc = func(_ context.Context, id int64) error {
			if id == 1 {
				return nil
			}
			return fmt.Errorf("feed source %d: %w", id, repository.ErrNotFound)
		}
		srv := deps.server("")

		assert.Equal(t, http.StatusNoContent, do(t, srv, http.MethodDelete, "/api/v1/feeds/1", "").Code)
		assert.Equal(t, http.StatusNotFound, do(t, srv, http.MethodDelete, "/api/v1/feeds/7", "").Code)
		assert.Equal(t, http.StatusBadRequest, do(t, srv, http.MethodDelete, "/api/v1/feeds/abc", "").Code)
		assert.Len(t, deps.feeds.RemoveCalls(), 2)
	})

	t.Run("reorder", func(t *testing.T) {
		deps := newDeps()
		deps.feeds.ReorderFunc = func(_ context.Context, ids []int64) error {
			if len(ids) > 0 && ids[0] == 99 {
				return fmt.Errorf("feed source 99: %w", repository.ErrNotFound)
			}
			return nil
		}
		srv := deps.server("")

		rec := do(t, srv, http.MethodPost, "/api/v1/feeds/reorder", `{"ids":[2,1]}`)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Len(t, deps.feeds.ReorderCalls(), 1)
		assert.Equal(t, []int64{2, 1}, deps.feeds.ReorderCalls()[0].Ids)
		assert.Len(t, deps.feeds.ListCalls(), 1, "reordered list returned")

		assert.Equal(t, http.StatusBadRequest, do(t, srv, http.MethodPost, "/api/v1/feeds/reorder", `{"ids":[99]}`).Code)
		assert.Equal(t, http.StatusBadRequest, do(t, srv, http.MethodPost, "/api/v1/feeds/reorder", `{"ids":[]}`).Code)
	})

	t.Run("list failure", func(t *testing.T) {
		deps := newDeps()
		deps.feeds.ListFunc = func(context.Context) ([]domain.FeedSource, error) { return nil, errors.New("db down") }
		rec := do(t, deps.server(""), http.MethodGet, "/api/v1/feeds", "")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), "db down")
	})
}

func TestPreviewHandler(t *testing.T) {
	deps := newDeps()
	deps.previewer.PreviewFunc = func(_ context.Context, feedURL string, n int) ([]domain.FeedItem, error) {
		if strings.Contains(feedURL, "broken") {
			return nil, errors.New("preview: feed is unparseable")
		}
		return []domain.FeedItem{{Title: "one", Link: "https://example.com/1"}}, nil
	}
	srv := deps.server("")

	rec := do(t, srv, http.MethodGet, "/api/v1/feeds/preview?url=https://example.com/feed&n=3", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var items []domain.FeedItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "one", items[0].Title)
	assert.Equal(t, 3, deps.previewer.PreviewCalls()[0].N)

	do(t, srv, http.MethodGet, "/api/v1/feeds/preview?url=https://example.com/feed&n=500", "")
	assert.Equal(t, defaultPreviewItems, deps.previewer.PreviewCalls()[1].N, "out of range n falls back to default")

	assert.Equal(t, http.StatusBadGateway, do(t, srv, http.MethodGet, "/api/v1/feeds/preview?url=https://example.com/broken", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(t, srv, http.MethodGet, "/api/v1/feeds/preview", "").Code)
}

func TestRunAndScheduleHandlers(t *testing.T) {
	t.Run("run now", func(t *testing.T) {
		deps := newDeps()
		deps.scheduler.RunNowFunc = func(context.Context) domain.RunReport {
			return domain.RunReport{Feeds: []domain.FeedReport{{Items: 3, Result: domain.ImportResult{Imported: 2, Skipped: 1}}}}
		}
		rec := do(t, deps.server(""), http.MethodPost, "/api/v1/run", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var report domain.RunReport
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
		require.Len(t, report.Feeds, 1)
		assert.Equal(t, 2, report.Feeds[0].Result.Imported)
		assert.Equal(t, 1, report.Feeds[0].Result.Skipped)
		assert.Len(t, deps.scheduler.RunNowCalls(), 1)
	})

	t.Run("reschedule", func(t *testing.T) {
		deps := newDeps()
		deps.scheduler.RescheduleFunc = func(_ context.Context, interval string) error {
			if interval == "daily" {
				return nil
			}
			return fmt.Errorf("reschedule: unknown interval %q", interval)
		}
		srv := deps.server("")

		rec := do(t, srv, http.MethodPut, "/api/v1/schedule", `{"interval":"daily"}`)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"next_run"`)

		rec = do(t, srv, http.MethodPut, "/api/v1/schedule", `{"interval":"monthly"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "unknown interval")
		assert.Len(t, deps.scheduler.RescheduleCalls(), 2)
	})
}

func TestPostsHandler(t *testing.T) {
	deps := newDeps()
	srv := deps.server("")

	rec := do(t, srv, http.MethodGet, "/api/v1/posts?feed=https://example.com/a.xml&limit=5&offset=10", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, deps.posts.ListCalls(), 1)
	assert.Equal(t, repository.PostFilter{FeedURL: "https://example.com/a.xml", Limit: 5, Offset: 10}, deps.posts.ListCalls()[0].Filter)

	var resp struct {
		Posts []domain.Post `json:"posts"`
		Total int64         `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(42), resp.Total)
	require.Len(t, resp.Posts, 1)
	assert.Equal(t, "first", resp.Posts[0].Title)

	do(t, srv, http.MethodGet, "/api/v1/posts?limit=1000&offset=-5", "")
	assert.Equal(t, repository.PostFilter{Limit: defaultPostsLimit}, deps.posts.ListCalls()[1].Filter)
}

func TestLogsHandlers(t *testing.T) {
	t.Run("entries", func(t *testing.T) {
		deps := newDeps()
		deps.journal.EntriesFunc = func(minLevel domain.Level, limit int) ([]domain.LogEntry, error) {
			return []domain.LogEntry{{Time: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Level: domain.LevelWarning, Message: "slow feed"}}, nil
		}
		srv := deps.server("")

		rec := do(t, srv, http.MethodGet, "/api/v1/logs?level=warning&limit=10", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"level":"warning"`)
		assert.Contains(t, rec.Body.String(), "slow feed")
		require.Len(t, deps.journal.EntriesCalls(), 1)
		assert.Equal(t, domain.LevelWarning, deps.journal.EntriesCalls()[0].MinLevel)
		assert.Equal(t, 10, deps.journal.EntriesCalls()[0].Limit)

		do(t, srv, http.MethodGet, "/api/v1/logs", "")
		assert.Equal(t, domain.LevelDebug, deps.journal.EntriesCalls()[1].MinLevel)
		assert.Equal(t, defaultLogEntries, deps.journal.EntriesCalls()[1].Limit)

		assert.Equal(t, http.StatusBadRequest, do(t, srv, http.MethodGet, "/api/v1/logs?level=loud", "").Code)
	})

	t.Run("clear", func(t *testing.T) {
		deps := newDeps()
		deps.journal.ClearFunc = func() error { return nil }
		assert.Equal(t, http.StatusNoContent, do(t, deps.server(""), http.MethodDelete, "/api/v1/logs", "").Code)
		assert.Len(t, deps.journal.ClearCalls(), 1)

		deps.journal.ClearFunc = func() error { return errors.New("read-only") }
		assert.Equal(t, http.StatusInternalServerError, do(t, deps.server(""), http.MethodDelete, "/api/v1/logs", "").Code)
	})

	t.Run("export", func(t *testing.T) {
		deps := newDeps()
		deps.journal.ExportFunc = func(w io.Writer) error {
			_, err := io.WriteString(w, "2024-01-01 00:00:00 [INFO] run started\n")
			return err
		}
		rec := do(t, deps.server(""), http.MethodGet, "/api/v1/logs/export", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "2024-01-01 00:00:00 [INFO] run started\n", rec.Body.String())
		assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment; filename=feedpress-")
		assert.Contains(t, rec.Header().Get("Content-Type"), "text/plain")
	})
}

func TestClearCacheHandler(t *testing.T) {
	deps := newDeps()
	srv := deps.server("")
	assert.Equal(t, http.StatusNoContent, do(t, srv, http.MethodDelete, "/api/v1/cache", "").Code)
	assert.Len(t, deps.cache.ClearCalls(), 1)

	deps.cache.ClearFunc = func(context.Context) error { return errors.New("redis down") }
	rec := do(t, srv, http.MethodDelete, "/api/v1/cache", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "redis down")
}
