package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"

	"github.com/umputun/feedpress/pkg/cache"
	"github.com/umputun/feedpress/pkg/config"
	"github.com/umputun/feedpress/pkg/content"
	"github.com/umputun/feedpress/pkg/domain"
	"github.com/umputun/feedpress/pkg/feed"
	"github.com/umputun/feedpress/pkg/image"
	"github.com/umputun/feedpress/pkg/importer"
	"github.com/umputun/feedpress/pkg/journal"
	"github.com/umputun/feedpress/pkg/llm"
	"github.com/umputun/feedpress/pkg/pipeline"
	"github.com/umputun/feedpress/pkg/repository"
	"github.com/umputun/feedpress/pkg/scheduler"
	"github.com/umputun/feedpress/server"
)

// Opts with all CLI options
type Opts struct {
	Config string `short:"c" long:"config" env:"CONFIG" default:"feedpress.yml" description:"configuration file"`
	Listen string `short:"l" long:"listen" env:"LISTEN" description:"listen address, overrides config"`
	Once   bool   `long:"once" description:"run the pipeline once and exit"`

	// common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

func main() {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	setupLog(opts.Debug, opts.NoColor)
	lgr.Printf("[INFO] starting feedpress version %s", revision)

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		lgr.Print("[INFO] termination signal received")
		cancel()
	}()

	err := run(ctx, opts)
	cancel()
	if err != nil {
		lgr.Printf("[ERROR] %v", err)
		os.Exit(1)
	}
	lgr.Print("[INFO] shutdown complete")
}

func run(ctx context.Context, opts Opts) error {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if opts.Listen != "" {
		cfg.Server.Listen = opts.Listen
	}
	setupLog(opts.Debug, opts.NoColor, secrets(cfg)...)

	repos, err := repository.NewRepositories(ctx, repository.Config{
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetime) * time.Second,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer func() {
		if err := repos.Close(); err != nil {
			lgr.Printf("[WARN] failed to close database: %v", err)
		}
	}()

	if err := seedFeeds(ctx, repos.FeedSource, cfg.Feeds); err != nil {
		return err
	}

	minLevel, _ := domain.ParseLevel(cfg.Journal.MinLevel)
	jrnl, err := journal.New(journal.Params{
		Path:       cfg.Journal.Path,
		MinLevel:   minLevel,
		MaxAge:     cfg.Journal.MaxAge,
		MaxEntries: cfg.Journal.MaxEntries,
		Echo:       true,
	})
	if err != nil {
		return fmt.Errorf("failed to open journal: %w", err)
	}

	feedCache, closeCache := makeFeedCache(ctx, cfg.Cache, repos)
	defer closeCache()

	imp, err := makeImporter(cfg, repos.Post, jrnl)
	if err != nil {
		return err
	}

	pipe := pipeline.New(pipeline.Params{
		Sources: repos.FeedSource,
		Fetcher: feed.NewFetcher(feed.FetcherParams{
			Timeout:     cfg.Fetch.Timeout,
			UserAgent:   cfg.Fetch.UserAgent,
			MaxBodySize: cfg.Fetch.MaxBodySize,
			Store:       repos.FetchState,
		}),
		Cache:    feedCache,
		Importer: imp,
		Journal:  jrnl,
		Settings: repos.Setting,
		Limit:    cfg.Import.Limit,
	})

	if opts.Once {
		report := pipe.Run(ctx)
		lgr.Printf("[INFO] imported %d posts from %d feeds", report.Imported(), len(report.Feeds))
		return nil
	}

	interval, err := config.ParseInterval(cfg.Schedule.Interval)
	if err != nil {
		return fmt.Errorf("invalid schedule interval: %w", err)
	}
	sched := scheduler.New(scheduler.Params{
		Runner:     pipe,
		Settings:   repos.Setting,
		Interval:   interval,
		RunOnStart: cfg.Schedule.RunOnStart,
	})
	sched.Start(ctx)
	defer sched.Stop()

	srv := server.New(server.Params{
		Config:        cfg,
		Feeds:         repos.FeedSource,
		Posts:         repos.Post,
		Previewer:     pipe,
		Scheduler:     sched,
		Journal:       jrnl,
		Cache:         feedCache,
		AdminUser:     cfg.Server.AdminUser,
		AdminPassword: cfg.Server.AdminPassword,
		Version:       revision,
		Debug:         opts.Debug,
	})
	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// seedFeeds adds configured feeds on the first start, later the list is managed via admin api
func seedFeeds(ctx context.Context, store *repository.FeedSourceRepository, feeds []config.Feed) error {
	existing, err := store.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list feeds: %w", err)
	}
	if len(existing) > 0 || len(feeds) == 0 {
		return nil
	}
	for _, f := range feeds {
		src := &domain.FeedSource{URL: f.URL, DisplayName: f.Name}
		if src.DisplayName == src.URL {
			src.DisplayName = ""
		}
		if err := store.Add(ctx, src); err != nil {
			return fmt.Errorf("failed to seed feed %s: %w", f.URL, err)
		}
	}
	lgr.Printf("[INFO] seeded %d feeds from config", len(feeds))
	return nil
}

// makeFeedCache selects the cache backend. An unreachable redis degrades to no caching.
func makeFeedCache(ctx context.Context, cfg config.CacheConfig, repos *repository.Repositories) (*cache.FeedCache, func()) {
	noop := func() {}
	switch cfg.Backend {
	case "none":
		return cache.NewFeedCache(nil, cfg.TTL), noop
	case "memory":
		return cache.NewFeedCache(cache.NewMemoryCache(), cfg.TTL), noop
	case "redis":
		rc, err := cache.NewRedisCache(ctx, cfg.RedisAddr, cfg.RedisDB)
		if err != nil {
			lgr.Printf("[WARN] redis cache unavailable, caching disabled: %v", err)
			return cache.NewFeedCache(nil, cfg.TTL), noop
		}
		return cache.NewFeedCache(rc, cfg.TTL), func() {
			if err := rc.Close(); err != nil {
				lgr.Printf("[WARN] failed to close redis: %v", err)
			}
		}
	default:
		if n, err := repos.ObjectCache.DeleteExpired(ctx); err != nil {
			lgr.Printf("[WARN] failed to purge expired cache entries: %v", err)
		} else if n > 0 {
			lgr.Printf("[DEBUG] purged %d expired cache entries", n)
		}
		return cache.NewFeedCache(repos.ObjectCache, cfg.TTL), noop
	}
}

// makeImporter builds the import engine with optional extraction, image and tagging stages
func makeImporter(cfg *config.Config, posts importer.PostStore, jrnl importer.Journal) (*importer.Importer, error) {
	filter, err := content.NewFilter(content.FilterOptions{
		UnwantedElements:      cfg.Filter.UnwantedElements,
		UnwantedAttributes:    cfg.Filter.UnwantedAttributes,
		IframePolicy:          content.IframePolicy(cfg.Filter.IframePolicy),
		MaxContentLength:      cfg.Filter.MaxContentLength,
		BaseURL:               cfg.Filter.BaseURL,
		RemoveEmptyParagraphs: cfg.Filter.RemoveEmptyParagraphs,
		Allowlist:             content.Allowlist(cfg.Filter.Allowlist),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create content filter: %w", err)
	}

	params := importer.Params{
		Posts:   posts,
		Filter:  filter,
		Journal: jrnl,
		Config:  cfg.Import,
		Scrub:   cfg.Filter.ScrubMalicious,
	}

	if cfg.Import.ExtractFullText {
		params.Extractor = content.NewHTTPExtractor(cfg.Import.ExtractTimeout, cfg.Fetch.UserAgent)
	}

	if cfg.Images.Enabled {
		var extra []image.Strategy
		if cfg.Images.PageScrape.Enabled {
			extra = append(extra, image.NewPageScrape(image.PageScrapeParams{
				Pattern:       cfg.Images.PageScrape.Pattern,
				MaxPages:      cfg.Images.PageScrape.MaxPages,
				RespectRobots: cfg.Images.PageScrape.RespectRobots,
				UserAgent:     cfg.Fetch.UserAgent,
				Timeout:       cfg.Images.Timeout,
			}))
		}
		downloader := image.NewDownloader(image.DownloaderParams{
			Retries:      cfg.Images.Retries,
			InitialDelay: cfg.Images.InitialDelay,
			MaxDelay:     cfg.Images.MaxDelay,
			Timeout:      cfg.Images.Timeout,
			MaxSize:      cfg.Images.MaxSize,
			UserAgents:   cfg.Images.UserAgents,
		})
		params.Images = image.NewResolver(downloader, image.DefaultStrategies(extra...)...)
	}

	if cfg.LLM.Enabled {
		params.Tagger = llm.NewTagger(cfg.LLM)
		lgr.Printf("[INFO] llm tagging enabled with model %s", cfg.LLM.Model)
	}

	return importer.New(params), nil
}

// secrets returns non-empty sensitive config values masked in logs
func secrets(cfg *config.Config) []string {
	var res []string
	for _, s := range []string{cfg.Server.AdminPassword, cfg.LLM.APIKey} {
		if s != "" {
			res = append(res, s)
		}
	}
	return res
}

func setupLog(dbg, noColor bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.CallerFile, lgr.CallerFunc, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	if !noColor {
		colorizer := lgr.Mapper{
			ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
			WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
			InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
			DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
			CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
			TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
		}
		logOpts = append(logOpts, lgr.Map(colorizer))
	}
	if len(secs) > 0 {
		logOpts = append(logOpts, lgr.Secret(secs...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
