package content

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

const articlePage = `<!DOCTYPE html>
<html>
<head><title>Test Article</title></head>
<body>
	<nav><a href="/">Home</a> <a href="/about">About</a></nav>
	<article>
		<h1>Test Article Title</h1>
		<p>This is the main content of the article. It talks about feeds and how they get imported into the site.</p>
		<p>It has multiple paragraphs, each one long enough to look like real prose written by a real person.</p>
		<p>The third paragraph closes the story and mentions that every imported post starts as a draft.</p>
	</article>
	<footer>Copyright footer</footer>
</body>
</html>`

func TestHTTPExtractor_Extract(t *testing.T) {
	tests := []struct {
		name       string
		page       string
		statusCode int
		wantText   string
		wantErr    bool
	}{
		{name: "successful extraction", page: articlePage, statusCode: http.StatusOK, wantText: "main content of the article"},
		{name: "server error", page: "error", statusCode: http.StatusInternalServerError, wantErr: true},
		{name: "not found", page: "not found", statusCode: http.StatusNotFound, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Contains(t, r.Header.Get("Accept"), "text/html")
				assert.Equal(t, "test-agent", r.Header.Get("User-Agent"))
				w.Header().Set("Content-Type", "text/html; charset=utf-8")
				w.WriteHeader(tt.statusCode)
				_, _ = w.Write([]byte(tt.page))
			}))
			defer server.Close()

			extractor := NewHTTPExtractor(10*time.Second, "test-agent")
			article, err := extractor.Extract(context.Background(), server.URL)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Contains(t, article.Text, tt.wantText)
			assert.Contains(t, article.HTML, "<p>")
			assert.NotContains(t, article.Text, "Copyright footer")
		})
	}
}

func TestHTTPExtractor_Extract_LegacyCharset(t *testing.T) {
	page, err := charmap.Windows1251.NewEncoder().String(strings.Replace(articlePage,
		"This is the main content", "Привет, это основной текст", 1))
	require.NoError(t, err)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=windows-1251")
		_, _ = w.Write([]byte(page))
	}))
	defer server.Close()

	article, err := NewHTTPExtractor(10*time.Second, "").Extract(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Contains(t, article.Text, "Привет, это основной текст")
}

func TestHTTPExtractor_Extract_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		_, _ = w.Write([]byte(articlePage))
	}))
	defer server.Close()

	extractor := NewHTTPExtractor(100*time.Millisecond, "")
	_, err := extractor.Extract(context.Background(), server.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Client.Timeout")
}

func TestHTTPExtractor_Extract_InvalidURL(t *testing.T) {
	extractor := NewHTTPExtractor(time.Second, "")

	tests := []struct {
		name string
		url  string
	}{
		{name: "empty url", url: ""},
		{name: "no scheme", url: "not-a-url"},
		{name: "unreachable host", url: "http://127.0.0.1:1/test"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := extractor.Extract(context.Background(), tt.url)
			require.Error(t, err)
		})
	}
}

func TestHTTPExtractor_Extract_ContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
			_, _ = w.Write([]byte(articlePage))
		}
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewHTTPExtractor(5*time.Second, "").Extract(ctx, server.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "context canceled")
}

func TestTextToHTML(t *testing.T) {
	assert.Equal(t, "<p>one</p><p>a &lt;b&gt;</p>", textToHTML("one\n\n  a <b>  \n"))
	assert.Empty(t, textToHTML("  \n "))
}
