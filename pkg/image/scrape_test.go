package image

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/feedpress/pkg/domain"
)

func TestPageScrape_Candidates(t *testing.T) {
	t.Run("first image from second listing page", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNotFound) })
		mux.HandleFunc("/page/1/", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`<html><body><p>no images</p><img src="data:image/gif;base64,R0lGOD"></body></html>`))
		})
		mux.HandleFunc("/page/2/", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`<html><body><img src="/img/a.png"><img src="/img/b.png"></body></html>`))
		})
		server := httptest.NewServer(mux)
		defer server.Close()

		ps := NewPageScrape(PageScrapeParams{RespectRobots: true, Timeout: time.Second})
		res, err := ps.Candidates(context.Background(), domain.FeedItem{Link: server.URL + "/2024/01/post"})
		require.NoError(t, err)
		assert.Equal(t, []string{server.URL + "/img/a.png"}, res)
	})

	t.Run("skipped when feed has an image", func(t *testing.T) {
		var requests atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { requests.Add(1) }))
		defer server.Close()

		ps := NewPageScrape(PageScrapeParams{})
		res, err := ps.Candidates(context.Background(), domain.FeedItem{Link: server.URL + "/post", ThumbnailURL: "https://x/a.png"})
		require.NoError(t, err)
		assert.Empty(t, res)
		assert.Zero(t, requests.Load())
	})

	t.Run("robots.txt disallows listing pages", func(t *testing.T) {
		var pages atomic.Int32
		mux := http.NewServeMux()
		mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("User-agent: *\nDisallow: /page/\n"))
		})
		mux.HandleFunc("/page/", func(w http.ResponseWriter, _ *http.Request) {
			pages.Add(1)
			_, _ = w.Write([]byte(`<img src="/a.png">`))
		})
		server := httptest.NewServer(mux)
		defer server.Close()

		ps := NewPageScrape(PageScrapeParams{RespectRobots: true, Timeout: time.Second})
		res, err := ps.Candidates(context.Background(), domain.FeedItem{Link: server.URL + "/post"})
		require.NoError(t, err)
		assert.Empty(t, res)
		assert.Zero(t, pages.Load())
	})

	t.Run("page limit and custom pattern", func(t *testing.T) {
		var pages atomic.Int32
		mux := http.NewServeMux()
		mux.HandleFunc("/archive", func(w http.ResponseWriter, _ *http.Request) {
			pages.Add(1)
			_, _ = w.Write([]byte(`<p>nothing here</p>`))
		})
		server := httptest.NewServer(mux)
		defer server.Close()

		ps := NewPageScrape(PageScrapeParams{Pattern: "{origin}/archive?p={n}", MaxPages: 2, Timeout: time.Second})
		res, err := ps.Candidates(context.Background(), domain.FeedItem{Link: server.URL + "/post"})
		require.NoError(t, err)
		assert.Empty(t, res)
		assert.Equal(t, int32(2), pages.Load())
	})

	t.Run("invalid item link", func(t *testing.T) {
		ps := NewPageScrape(PageScrapeParams{})
		_, err := ps.Candidates(context.Background(), domain.FeedItem{Link: "/relative/post"})
		require.Error(t, err)
	})
}
