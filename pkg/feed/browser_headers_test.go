package feed

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetBrowserHeaders(t *testing.T) {
	t.Run("feed", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, "https://example.com/rss", http.NoBody)
		SetBrowserHeaders(req, AcceptFeed)
		assert.Equal(t, AcceptFeed, req.Header.Get("Accept"))
		assert.Contains(t, acceptLanguages, req.Header.Get("Accept-Language"))
		assert.Empty(t, req.Header.Get("Sec-Fetch-Mode"))
		assert.Empty(t, req.Header.Get("Accept-Encoding"), "left to transport")
	})

	t.Run("page", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, "https://example.com/post", http.NoBody)
		SetBrowserHeaders(req, AcceptPage)
		assert.Equal(t, AcceptPage, req.Header.Get("Accept"))
		assert.Equal(t, "navigate", req.Header.Get("Sec-Fetch-Mode"))
		assert.Equal(t, "document", req.Header.Get("Sec-Fetch-Dest"))
		assert.Equal(t, "no-cache", req.Header.Get("Cache-Control"))
	})
}
