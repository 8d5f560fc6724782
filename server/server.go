package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"

	"github.com/umputun/feedpress/pkg/domain"
	"github.com/umputun/feedpress/pkg/repository"
)

//go:generate moq -out mocks/config.go -pkg mocks -skip-ensure -fmt goimports . ConfigProvider
//go:generate moq -out mocks/feed_store.go -pkg mocks -skip-ensure -fmt goimports . FeedStore
//go:generate moq -out mocks/post_store.go -pkg mocks -skip-ensure -fmt goimports . PostStore
//go:generate moq -out mocks/previewer.go -pkg mocks -skip-ensure -fmt goimports . Previewer
//go:generate moq -out mocks/scheduler.go -pkg mocks -skip-ensure -fmt goimports . Scheduler
//go:generate moq -out mocks/journal.go -pkg mocks -skip-ensure -fmt goimports . Journal
//go:generate moq -out mocks/cache_cleaner.go -pkg mocks -skip-ensure -fmt goimports . CacheCleaner

// Server represents admin HTTP server instance
type Server struct {
	Params

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle
}

// Params defines server dependencies and settings
type Params struct {
	Config        ConfigProvider
	Feeds         FeedStore
	Posts         PostStore
	Previewer     Previewer
	Scheduler     Scheduler
	Journal       Journal
	Cache         CacheCleaner
	AdminUser     string
	AdminPassword string // empty disables basic auth
	Version       string
	Debug         bool
}

// ConfigProvider provides server configuration
type ConfigProvider interface {
	GetServerConfig() (listen string, timeout time.Duration)
}

// FeedStore manages the ordered feed list
type FeedStore interface {
	Add(ctx context.Context, src *domain.FeedSource) error
	List(ctx context.Context) ([]domain.FeedSource, error)
	Remove(ctx context.Context, id int64) error
	Reorder(ctx context.Context, ids []int64) error
}

// PostStore gives read access to imported posts
type PostStore interface {
	List(ctx context.Context, filter repository.PostFilter) ([]domain.Post, error)
	Count(ctx context.Context) (int64, error)
}

// Previewer fetches and parses a feed without importing it
type Previewer interface {
	Preview(ctx context.Context, feedURL string, n int) ([]domain.FeedItem, error)
}

// Scheduler interface for on-demand runs and schedule management
type Scheduler interface {
	RunNow(ctx context.Context) domain.RunReport
	Reschedule(ctx context.Context, interval string) error
	NextRun() time.Time
	Interval() time.Duration
	LastReport() (domain.RunReport, bool)
}

// Journal is the import log
type Journal interface {
	Log(level domain.Level, format string, args ...any)
	Entries(minLevel domain.Level, limit int) ([]domain.LogEntry, error)
	Export(w io.Writer) error
	Clear() error
	Size() (int64, error)
}

// CacheCleaner drops all cached feeds
type CacheCleaner interface {
	Clear(ctx context.Context) error
}

// New initializes a new server instance
func New(p Params) *Server {
	if p.AdminUser == "" {
		p.AdminUser = "admin"
	}
	s := &Server{Params: p, router: routegroup.New(http.NewServeMux())}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Run starts the HTTP server and handles graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	listen, timeout := s.Config.GetServerConfig()
	lgr.Printf("[INFO] starting admin server on %s", listen)

	s.lock.Lock()
	s.httpServer = &http.Server{
		Addr:              listen,
		Handler:           s.router,
		ReadHeaderTimeout: timeout,
		ReadTimeout:       timeout,
		// manual runs are synchronous and may take longer than regular requests
		WriteTimeout: 10 * timeout,
	}
	s.lock.Unlock()

	go func() {
		<-ctx.Done()
		lgr.Printf("[INFO] shutting down admin server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		s.lock.Lock()
		defer s.lock.Unlock()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			lgr.Printf("[WARN] server shutdown error: %v", err)
		}
	}()

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	return nil
}

// setupMiddleware configures standard middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(rest.AppInfo("feedpress", "umputun", s.Version))
	s.router.Use(rest.Ping)

	if s.Debug {
		s.router.Use(logger.New(logger.Log(lgr.Default()), logger.Prefix("[DEBUG]")).Handler)
	}

	s.router.Use(rest.Recoverer(lgr.Default()))
	s.router.Use(rest.Throttle(100))
	s.router.Use(rest.SizeLimit(1024 * 1024)) // 1MB
}

// setupRoutes configures admin api routes
func (s *Server) setupRoutes() {
	s.router.Mount("/api/v1").Route(func(r *routegroup.Bundle) {
		if s.AdminPassword != "" {
			r.Use(rest.BasicAuthWithUserPasswd(s.AdminUser, s.AdminPassword))
		}

		r.HandleFunc("GET /status", s.statusHandler)
		r.HandleFunc("PUT /schedule", s.rescheduleHandler)
		r.HandleFunc("POST /run", s.runHandler)

		r.HandleFunc("GET /feeds", s.listFeedsHandler)
		r.HandleFunc("POST /feeds", s.addFeedHandler)
		r.HandleFunc("DELETE /feeds/{id}", s.deleteFeedHandler)
		r.HandleFunc("POST /feeds/reorder", s.reorderFeedsHandler)
		r.HandleFunc("GET /feeds/preview", s.previewHandler)

		r.HandleFunc("GET /posts", s.listPostsHandler)

		r.HandleFunc("GET /logs", s.logsHandler)
		r.HandleFunc("DELETE /logs", s.clearLogsHandler)
		r.HandleFunc("GET /logs/export", s.exportLogsHandler)

		r.HandleFunc("DELETE /cache", s.clearCacheHandler)
	})
}

// renderJSON sends JSON response
func renderJSON(w http.ResponseWriter, _ *http.Request, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			lgr.Printf("[ERROR] can't encode response to JSON: %v", err)
		}
	}
}

// renderError sends error response as JSON
func renderError(w http.ResponseWriter, r *http.Request, err error, code int) {
	errMsg := "unknown error"
	if err != nil {
		errMsg = err.Error()
	}
	renderJSON(w, r, code, rest.JSON{"error": errMsg})
}
