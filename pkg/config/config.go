package config

import (
	"fmt"
	"net/url"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"
	"gopkg.in/yaml.v3"
)

//go:generate go run ../../cmd/schema -o schema.json

// Config holds the application configuration
type Config struct {
	Server   ServerConfig   `yaml:"server" json:"server" jsonschema:"description=Admin API server configuration"`
	Database DatabaseConfig `yaml:"database" json:"database" jsonschema:"description=Database configuration"`
	Schedule ScheduleConfig `yaml:"schedule" json:"schedule" jsonschema:"description=Scheduler configuration"`
	Feeds    []Feed         `yaml:"feeds" json:"feeds" jsonschema:"description=Initial feed list in processing order"`
	Fetch    FetchConfig    `yaml:"fetch" json:"fetch" jsonschema:"description=Feed fetching configuration"`
	Import   ImportConfig   `yaml:"import" json:"import" jsonschema:"description=Post import configuration"`
	Filter   FilterConfig   `yaml:"filter" json:"filter" jsonschema:"description=Content filter configuration"`
	Images   ImagesConfig   `yaml:"images" json:"images" jsonschema:"description=Thumbnail resolution configuration"`
	Cache    CacheConfig    `yaml:"cache" json:"cache" jsonschema:"description=Feed cache configuration"`
	Journal  JournalConfig  `yaml:"journal" json:"journal" jsonschema:"description=Import log configuration"`
	LLM      LLMConfig      `yaml:"llm" json:"llm" jsonschema:"description=Optional LLM tag assignment"`
}

// ServerConfig holds admin API settings
type ServerConfig struct {
	Listen        string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
	Timeout       time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP server timeout"`
	AdminUser     string        `yaml:"admin_user" json:"admin_user" jsonschema:"default=admin,description=Basic auth user for admin API"`
	AdminPassword string        `yaml:"admin_password" json:"admin_password" jsonschema:"description=Basic auth password, empty disables auth"`
}

// DatabaseConfig holds database settings
type DatabaseConfig struct {
	DSN             string `yaml:"dsn" json:"dsn" jsonschema:"default=file:feedpress.db?cache=shared&mode=rwc,description=Database connection string"`
	MaxOpenConns    int    `yaml:"max_open_conns" json:"max_open_conns" jsonschema:"default=10,description=Maximum number of open connections"`
	MaxIdleConns    int    `yaml:"max_idle_conns" json:"max_idle_conns" jsonschema:"default=5,description=Maximum number of idle connections"`
	ConnMaxLifetime int    `yaml:"conn_max_lifetime" json:"conn_max_lifetime" jsonschema:"default=3600,description=Connection maximum lifetime in seconds"`
}

// ScheduleConfig holds scheduler settings
type ScheduleConfig struct {
	Interval   string `yaml:"interval" json:"interval" jsonschema:"default=hourly,description=Named interval (hourly twicedaily daily weekly) or duration"`
	RunOnStart bool   `yaml:"run_on_start" json:"run_on_start" jsonschema:"default=false,description=Run the pipeline right after start"`
}

// Feed is a feed entry of the initial feed list
type Feed struct {
	URL  string `yaml:"url" json:"url" jsonschema:"required,description=Feed URL"`
	Name string `yaml:"name" json:"name" jsonschema:"description=Display name"`
}

// FetchConfig holds feed fetching settings
type FetchConfig struct {
	Timeout     time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=Feed request timeout"`
	UserAgent   string        `yaml:"user_agent" json:"user_agent" jsonschema:"default=Feedpress/1.0,description=User agent for feed requests"`
	MaxBodySize int64         `yaml:"max_body_size" json:"max_body_size" jsonschema:"default=10485760,description=Maximum feed body size in bytes"`
}

// ImportConfig holds post creation settings
type ImportConfig struct {
	Limit           int           `yaml:"limit" json:"limit" jsonschema:"default=10,minimum=0,description=Maximum items imported per feed and run (0 means all)"`
	PostStatus      string        `yaml:"post_status" json:"post_status" jsonschema:"default=draft,enum=draft,enum=pending,enum=publish,enum=private,description=Status of created posts"`
	AuthorID        int64         `yaml:"author_id" json:"author_id" jsonschema:"default=1,description=Default author of created posts"`
	CategoryIDs     []int64       `yaml:"category_ids" json:"category_ids" jsonschema:"description=Default categories of created posts"`
	ExcerptWords    int           `yaml:"excerpt_words" json:"excerpt_words" jsonschema:"default=55,minimum=1,description=Excerpt length in words"`
	ExtractFullText bool          `yaml:"extract_full_text" json:"extract_full_text" jsonschema:"default=false,description=Extract full article text when feed has no full content"`
	ExtractTimeout  time.Duration `yaml:"extract_timeout" json:"extract_timeout" jsonschema:"default=30s,description=Full text extraction timeout"`
}

// FilterConfig holds content filter settings
type FilterConfig struct {
	UnwantedElements      []string `yaml:"unwanted_elements" json:"unwanted_elements" jsonschema:"description=Elements removed from content"`
	UnwantedAttributes    []string `yaml:"unwanted_attributes" json:"unwanted_attributes" jsonschema:"description=Attributes stripped from all elements"`
	IframePolicy          string   `yaml:"iframe_policy" json:"iframe_policy" jsonschema:"default=remove,enum=remove,enum=placeholder,enum=allow,description=What to do with iframes"`
	MaxContentLength      int      `yaml:"max_content_length" json:"max_content_length" jsonschema:"default=0,minimum=0,description=Truncate text beyond this many characters (0 means unlimited)"`
	BaseURL               string   `yaml:"base_url" json:"base_url" jsonschema:"description=Prefix for relative links"`
	RemoveEmptyParagraphs bool     `yaml:"remove_empty_paragraphs" json:"remove_empty_paragraphs" jsonschema:"default=true,description=Drop paragraphs without text"`
	Allowlist             string   `yaml:"allowlist" json:"allowlist" jsonschema:"default=none,enum=none,enum=ugc,description=Allowlist sanitization applied after filtering"`
	ScrubMalicious        bool     `yaml:"scrub_malicious" json:"scrub_malicious" jsonschema:"default=true,description=Run denylist scrub for scripts and injections"`
}

// PageScrapeConfig holds listing page scraping settings
type PageScrapeConfig struct {
	Enabled       bool   `yaml:"enabled" json:"enabled" jsonschema:"default=false,description=Scrape listing pages for an image when feed has none"`
	Pattern       string `yaml:"pattern" json:"pattern" jsonschema:"default={origin}/page/{n}/,description=Listing page URL pattern"`
	MaxPages      int    `yaml:"max_pages" json:"max_pages" jsonschema:"default=3,minimum=1,description=Maximum listing pages scanned"`
	RespectRobots bool   `yaml:"respect_robots" json:"respect_robots" jsonschema:"default=true,description=Check robots.txt before scraping"`
}

// ImagesConfig holds thumbnail resolution settings
type ImagesConfig struct {
	Enabled      bool             `yaml:"enabled" json:"enabled" jsonschema:"default=true,description=Resolve and attach thumbnails"`
	Retries      int              `yaml:"retries" json:"retries" jsonschema:"default=3,minimum=1,description=Download attempts per image"`
	InitialDelay time.Duration    `yaml:"initial_delay" json:"initial_delay" jsonschema:"default=500ms,description=Initial backoff delay"`
	MaxDelay     time.Duration    `yaml:"max_delay" json:"max_delay" jsonschema:"default=5s,description=Maximum backoff delay"`
	Timeout      time.Duration    `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=Image request timeout"`
	MaxSize      int64            `yaml:"max_size" json:"max_size" jsonschema:"default=5242880,description=Maximum image size in bytes"`
	UserAgents   []string         `yaml:"user_agents" json:"user_agents" jsonschema:"description=User agent pool rotated per attempt"`
	PageScrape   PageScrapeConfig `yaml:"page_scrape" json:"page_scrape" jsonschema:"description=Listing page scraping fallback"`
}

// CacheConfig holds feed cache settings
type CacheConfig struct {
	Backend   string        `yaml:"backend" json:"backend" jsonschema:"default=sqlite,enum=sqlite,enum=memory,enum=redis,enum=none,description=Cache backend"`
	TTL       time.Duration `yaml:"ttl" json:"ttl" jsonschema:"default=30m,description=Cached feed lifetime"`
	RedisAddr string        `yaml:"redis_addr" json:"redis_addr" jsonschema:"default=localhost:6379,description=Redis address"`
	RedisDB   int           `yaml:"redis_db" json:"redis_db" jsonschema:"default=0,description=Redis database"`
}

// JournalConfig holds import log settings
type JournalConfig struct {
	Path       string        `yaml:"path" json:"path" jsonschema:"default=feedpress.log,description=Import log file"`
	MinLevel   string        `yaml:"min_level" json:"min_level" jsonschema:"default=info,enum=debug,enum=info,enum=warning,enum=error,description=Minimal level written"`
	MaxAge     time.Duration `yaml:"max_age" json:"max_age" jsonschema:"default=720h,description=Entries older than this are trimmed"`
	MaxEntries int           `yaml:"max_entries" json:"max_entries" jsonschema:"default=5000,description=Maximum kept entries"`
}

// LLMConfig holds optional LLM tagging settings
type LLMConfig struct {
	Enabled      bool          `yaml:"enabled" json:"enabled" jsonschema:"default=false,description=Assign tags with LLM"`
	Endpoint     string        `yaml:"endpoint" json:"endpoint" jsonschema:"description=OpenAI-compatible API endpoint"`
	APIKey       string        `yaml:"api_key" json:"api_key" jsonschema:"description=API key (can use environment variable)"`
	Model        string        `yaml:"model" json:"model" jsonschema:"description=Model name (e.g. gpt-4o-mini or llama3)"`
	Temperature  float64       `yaml:"temperature" json:"temperature" jsonschema:"default=0.3,description=Temperature for response generation"`
	MaxTokens    int           `yaml:"max_tokens" json:"max_tokens" jsonschema:"default=200,description=Maximum tokens in response"`
	Timeout      time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=Request timeout"`
	MaxTags      int           `yaml:"max_tags" json:"max_tags" jsonschema:"default=5,description=Maximum tags per post"`
	SystemPrompt string        `yaml:"system_prompt" json:"system_prompt" jsonschema:"description=System prompt for the LLM (optional)"`
}

var (
	namedIntervals = []string{"hourly", "twicedaily", "daily", "weekly"}
	iframePolicies = []string{"remove", "placeholder", "allow"}
	allowlists     = []string{"none", "ugc"}
	cacheBackends  = []string{"sqlite", "memory", "redis", "none"}
	postStatuses   = []string{"draft", "pending", "publish", "private"}
	journalLevels  = []string{"debug", "info", "warning", "error"}
)

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	cfg := Config{}
	// booleans defaulting to true are set before unmarshal, yaml keeps them unless present
	cfg.Filter.RemoveEmptyParagraphs = true
	cfg.Filter.ScrubMalicious = true
	cfg.Images.Enabled = true
	cfg.Images.PageScrape.RespectRobots = true
	cfg.Import.Limit = 10

	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.SetDefaults()

	// validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// verify against embedded schema
	if err := VerifyAgainstEmbeddedSchema(&cfg); err != nil {
		lgr.Printf("[WARN] schema validation failed: %v", err)
	}

	return &cfg, nil
}

// SetDefaults fills zero values with defaults
func (c *Config) SetDefaults() {
	// set defaults for server
	if c.Server.Listen == "" {
		c.Server.Listen = ":8080"
	}
	if c.Server.Timeout == 0 {
		c.Server.Timeout = 30 * time.Second
	}
	if c.Server.AdminUser == "" {
		c.Server.AdminUser = "admin"
	}

	// set defaults for database
	if c.Database.DSN == "" {
		c.Database.DSN = "file:feedpress.db?cache=shared&mode=rwc&_txlock=immediate"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 10
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 3600
	}

	if c.Schedule.Interval == "" {
		c.Schedule.Interval = "hourly"
	}

	// feed names default to URL
	for i := range c.Feeds {
		c.Feeds[i].URL = strings.TrimSpace(c.Feeds[i].URL)
		if c.Feeds[i].Name == "" {
			c.Feeds[i].Name = c.Feeds[i].URL
		}
	}

	if c.Fetch.Timeout == 0 {
		c.Fetch.Timeout = 30 * time.Second
	}
	if c.Fetch.UserAgent == "" {
		c.Fetch.UserAgent = "Feedpress/1.0"
	}
	if c.Fetch.MaxBodySize == 0 {
		c.Fetch.MaxBodySize = 10 * 1024 * 1024
	}

	if c.Import.PostStatus == "" {
		c.Import.PostStatus = "draft"
	}
	if c.Import.AuthorID == 0 {
		c.Import.AuthorID = 1
	}
	if c.Import.ExcerptWords == 0 {
		c.Import.ExcerptWords = 55
	}
	if c.Import.ExtractTimeout == 0 {
		c.Import.ExtractTimeout = 30 * time.Second
	}

	if c.Filter.IframePolicy == "" {
		c.Filter.IframePolicy = "remove"
	}
	if c.Filter.Allowlist == "" {
		c.Filter.Allowlist = "none"
	}

	if c.Images.Retries == 0 {
		c.Images.Retries = 3
	}
	if c.Images.InitialDelay == 0 {
		c.Images.InitialDelay = 500 * time.Millisecond
	}
	if c.Images.MaxDelay == 0 {
		c.Images.MaxDelay = 5 * time.Second
	}
	if c.Images.Timeout == 0 {
		c.Images.Timeout = 30 * time.Second
	}
	if c.Images.MaxSize == 0 {
		c.Images.MaxSize = 5 * 1024 * 1024
	}
	if c.Images.PageScrape.Pattern == "" {
		c.Images.PageScrape.Pattern = "{origin}/page/{n}/"
	}
	if c.Images.PageScrape.MaxPages == 0 {
		c.Images.PageScrape.MaxPages = 3
	}

	if c.Cache.Backend == "" {
		c.Cache.Backend = "sqlite"
	}
	if c.Cache.TTL == 0 {
		c.Cache.TTL = 30 * time.Minute
	}
	if c.Cache.RedisAddr == "" {
		c.Cache.RedisAddr = "localhost:6379"
	}

	if c.Journal.Path == "" {
		c.Journal.Path = "feedpress.log"
	}
	if c.Journal.MinLevel == "" {
		c.Journal.MinLevel = "info"
	}
	if c.Journal.MaxAge == 0 {
		c.Journal.MaxAge = 30 * 24 * time.Hour
	}
	if c.Journal.MaxEntries == 0 {
		c.Journal.MaxEntries = 5000
	}

	// set defaults for LLM
	if c.LLM.Temperature == 0 {
		c.LLM.Temperature = 0.3
	}
	if c.LLM.MaxTokens == 0 {
		c.LLM.MaxTokens = 200
	}
	if c.LLM.Timeout == 0 {
		c.LLM.Timeout = 30 * time.Second
	}
	if c.LLM.MaxTags == 0 {
		c.LLM.MaxTags = 5
	}
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	if cfg.Server.Timeout < time.Second {
		return fmt.Errorf("server timeout must be at least 1 second")
	}

	if _, err := ParseInterval(cfg.Schedule.Interval); err != nil {
		return fmt.Errorf("schedule.interval: %w", err)
	}

	seen := make(map[string]bool, len(cfg.Feeds))
	for i, f := range cfg.Feeds {
		u, err := url.Parse(f.URL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("feeds[%d]: invalid url %q", i, f.URL)
		}
		if seen[f.URL] {
			return fmt.Errorf("feeds[%d]: duplicate url %q", i, f.URL)
		}
		seen[f.URL] = true
	}

	if cfg.Fetch.Timeout < time.Second {
		return fmt.Errorf("fetch timeout must be at least 1 second")
	}

	if cfg.Import.Limit < 0 {
		return fmt.Errorf("import.limit must be non-negative")
	}
	if !slices.Contains(postStatuses, cfg.Import.PostStatus) {
		return fmt.Errorf("import.post_status must be one of %v", postStatuses)
	}
	if cfg.Import.ExcerptWords < 1 {
		return fmt.Errorf("import.excerpt_words must be at least 1")
	}

	if !slices.Contains(iframePolicies, cfg.Filter.IframePolicy) {
		return fmt.Errorf("filter.iframe_policy must be one of %v", iframePolicies)
	}
	if !slices.Contains(allowlists, cfg.Filter.Allowlist) {
		return fmt.Errorf("filter.allowlist must be one of %v", allowlists)
	}
	if cfg.Filter.MaxContentLength < 0 {
		return fmt.Errorf("filter.max_content_length must be non-negative")
	}
	if cfg.Filter.BaseURL != "" {
		if u, err := url.Parse(cfg.Filter.BaseURL); err != nil || u.Scheme == "" {
			return fmt.Errorf("filter.base_url must be an absolute url")
		}
	}

	if cfg.Images.Retries < 1 {
		return fmt.Errorf("images.retries must be at least 1")
	}
	if cfg.Images.PageScrape.Enabled && !strings.Contains(cfg.Images.PageScrape.Pattern, "{n}") {
		return fmt.Errorf("images.page_scrape.pattern must contain {n}")
	}

	if !slices.Contains(cacheBackends, cfg.Cache.Backend) {
		return fmt.Errorf("cache.backend must be one of %v", cacheBackends)
	}
	if !slices.Contains(journalLevels, cfg.Journal.MinLevel) {
		return fmt.Errorf("journal.min_level must be one of %v", journalLevels)
	}

	if cfg.LLM.Enabled {
		if cfg.LLM.Endpoint == "" {
			return fmt.Errorf("llm.endpoint is required")
		}
		if cfg.LLM.Model == "" {
			return fmt.Errorf("llm.model is required")
		}
		if cfg.LLM.Temperature < 0 || cfg.LLM.Temperature > 2 {
			return fmt.Errorf("llm.temperature must be between 0 and 2")
		}
	}

	return nil
}

// ParseInterval converts a named interval or a duration string to time.Duration
func ParseInterval(s string) (time.Duration, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "hourly":
		return time.Hour, nil
	case "twicedaily":
		return 12 * time.Hour, nil
	case "daily":
		return 24 * time.Hour, nil
	case "weekly":
		return 7 * 24 * time.Hour, nil
	}

	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("unknown interval %q, use one of %v or a duration", s, namedIntervals)
	}
	if d < time.Minute {
		return 0, fmt.Errorf("interval %s is shorter than 1 minute", d)
	}
	return d, nil
}

// GetServerConfig returns server configuration
func (c *Config) GetServerConfig() (listen string, timeout time.Duration) {
	return c.Server.Listen, c.Server.Timeout
}

// GetFeeds returns the initial feed list
func (c *Config) GetFeeds() []Feed {
	return c.Feeds
}
