package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	configPath := filepath.Join(t.TempDir(), "test-config.yml")
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o600))
	return configPath
}

func TestLoad(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		configPath := writeConfig(t, `
server:
  listen: ":9090"
  timeout: 45s

schedule:
  interval: twicedaily

feeds:
  - url: https://example.com/feed1.xml
    name: Feed1
  - url: https://example.com/feed2.xml

import:
  limit: 5
  post_status: publish
  category_ids: [3, 7]

filter:
  unwanted_elements: [script, style]
  iframe_policy: placeholder
  max_content_length: 500

images:
  page_scrape:
    enabled: true
    max_pages: 2
`)
		cfg, err := Load(configPath)
		require.NoError(t, err)
		require.NotNil(t, cfg)

		assert.Equal(t, ":9090", cfg.Server.Listen)
		assert.Equal(t, 45*time.Second, cfg.Server.Timeout)
		assert.Equal(t, "twicedaily", cfg.Schedule.Interval)
		require.Len(t, cfg.Feeds, 2)
		assert.Equal(t, "Feed1", cfg.Feeds[0].Name)
		assert.Equal(t, "https://example.com/feed2.xml", cfg.Feeds[1].Name, "name defaults to url")

		assert.Equal(t, 5, cfg.Import.Limit)
		assert.Equal(t, "publish", cfg.Import.PostStatus)
		assert.Equal(t, []int64{3, 7}, cfg.Import.CategoryIDs)

		assert.Equal(t, []string{"script", "style"}, cfg.Filter.UnwantedElements)
		assert.Equal(t, "placeholder", cfg.Filter.IframePolicy)
		assert.Equal(t, 500, cfg.Filter.MaxContentLength)
		assert.True(t, cfg.Filter.RemoveEmptyParagraphs)

		assert.True(t, cfg.Images.PageScrape.Enabled)
		assert.Equal(t, 2, cfg.Images.PageScrape.MaxPages)
		assert.Equal(t, "{origin}/page/{n}/", cfg.Images.PageScrape.Pattern)
		assert.True(t, cfg.Images.PageScrape.RespectRobots)
	})

	t.Run("defaults", func(t *testing.T) {
		configPath := writeConfig(t, `
feeds:
  - url: https://example.com/feed.xml
`)
		cfg, err := Load(configPath)
		require.NoError(t, err)

		assert.Equal(t, ":8080", cfg.Server.Listen)
		assert.Equal(t, 30*time.Second, cfg.Server.Timeout)
		assert.Equal(t, "hourly", cfg.Schedule.Interval)
		assert.Equal(t, 10, cfg.Import.Limit)
		assert.Equal(t, "draft", cfg.Import.PostStatus)
		assert.Equal(t, 55, cfg.Import.ExcerptWords)
		assert.Equal(t, "remove", cfg.Filter.IframePolicy)
		assert.Equal(t, "none", cfg.Filter.Allowlist)
		assert.True(t, cfg.Filter.ScrubMalicious)
		assert.True(t, cfg.Images.Enabled)
		assert.Equal(t, 3, cfg.Images.Retries)
		assert.False(t, cfg.Images.PageScrape.Enabled)
		assert.Equal(t, 3, cfg.Images.PageScrape.MaxPages)
		assert.Equal(t, "sqlite", cfg.Cache.Backend)
		assert.Equal(t, 30*time.Minute, cfg.Cache.TTL)
		assert.Equal(t, "info", cfg.Journal.MinLevel)
		assert.Equal(t, 5000, cfg.Journal.MaxEntries)
		assert.False(t, cfg.LLM.Enabled)
	})

	t.Run("explicit zero limit and disabled flags", func(t *testing.T) {
		configPath := writeConfig(t, `
import:
  limit: 0
filter:
  remove_empty_paragraphs: false
images:
  enabled: false
`)
		cfg, err := Load(configPath)
		require.NoError(t, err)
		assert.Equal(t, 0, cfg.Import.Limit)
		assert.False(t, cfg.Filter.RemoveEmptyParagraphs)
		assert.False(t, cfg.Images.Enabled)
	})

	t.Run("env expansion", func(t *testing.T) {
		t.Setenv("FEEDPRESS_TEST_PASSWORD", "secret")
		configPath := writeConfig(t, `
server:
  admin_password: ${FEEDPRESS_TEST_PASSWORD}
`)
		cfg, err := Load(configPath)
		require.NoError(t, err)
		assert.Equal(t, "secret", cfg.Server.AdminPassword)
	})

	t.Run("file not found", func(t *testing.T) {
		cfg, err := Load("/nonexistent/config.yml")
		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "read config file")
	})

	t.Run("invalid yaml", func(t *testing.T) {
		configPath := writeConfig(t, "feeds:\n  - url: [unclosed\n")
		cfg, err := Load(configPath)
		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "parse config")
	})

	t.Run("invalid values", func(t *testing.T) {
		tests := []struct {
			name    string
			content string
			errMsg  string
		}{
			{name: "bad interval", content: "schedule:\n  interval: fortnightly\n", errMsg: "schedule.interval"},
			{name: "short interval", content: "schedule:\n  interval: 10s\n", errMsg: "shorter than 1 minute"},
			{name: "relative feed url", content: "feeds:\n  - url: /feed.xml\n", errMsg: "invalid url"},
			{name: "duplicate feed", content: "feeds:\n  - url: https://a.com/f\n  - url: https://a.com/f\n", errMsg: "duplicate url"},
			{name: "bad status", content: "import:\n  post_status: trash\n", errMsg: "import.post_status"},
			{name: "negative limit", content: "import:\n  limit: -1\n", errMsg: "import.limit"},
			{name: "bad iframe policy", content: "filter:\n  iframe_policy: keep\n", errMsg: "filter.iframe_policy"},
			{name: "relative base url", content: "filter:\n  base_url: /blog\n", errMsg: "filter.base_url"},
			{name: "bad cache backend", content: "cache:\n  backend: memcached\n", errMsg: "cache.backend"},
			{name: "bad journal level", content: "journal:\n  min_level: trace\n", errMsg: "journal.min_level"},
			{name: "llm without endpoint", content: "llm:\n  enabled: true\n  model: m\n", errMsg: "llm.endpoint"},
			{name: "page scrape without placeholder", content: "images:\n  page_scrape:\n    enabled: true\n    pattern: https://a.com/list\n", errMsg: "{n}"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := Load(writeConfig(t, tt.content))
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			})
		}
	})
}

func TestParseInterval(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{in: "hourly", want: time.Hour},
		{in: "TwiceDaily", want: 12 * time.Hour},
		{in: "daily", want: 24 * time.Hour},
		{in: " weekly ", want: 7 * 24 * time.Hour},
		{in: "45m", want: 45 * time.Minute},
		{in: "30s", wantErr: true},
		{in: "monthly", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseInterval(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConfig_GetFeeds(t *testing.T) {
	cfg := &Config{Feeds: []Feed{{URL: "https://example.com/a"}, {URL: "https://example.com/b", Name: "B"}}}
	feeds := cfg.GetFeeds()
	require.Len(t, feeds, 2)
	assert.Equal(t, "B", feeds[1].Name)
}

func TestConfig_GetServerConfig(t *testing.T) {
	cfg := &Config{Server: ServerConfig{Listen: ":9000", Timeout: time.Minute}}
	listen, timeout := cfg.GetServerConfig()
	assert.Equal(t, ":9000", listen)
	assert.Equal(t, time.Minute, timeout)
}
