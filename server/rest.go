package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/feedpress/pkg/domain"
	"github.com/umputun/feedpress/pkg/repository"
)

const (
	defaultPreviewItems = 5
	maxPreviewItems     = 50
	defaultLogEntries   = 100
	defaultPostsLimit   = 20
	maxPostsLimit       = 100
)

type statusResponse struct {
	Status      string      `json:"status"`
	Version     string      `json:"version"`
	Time        time.Time   `json:"time"`
	Interval    string      `json:"interval"`
	NextRun     time.Time   `json:"next_run"`
	Posts       int64       `json:"posts"`
	JournalSize int64       `json:"journal_size"`
	LastRun     *runSummary `json:"last_run,omitempty"`
}

type runSummary struct {
	Started  time.Time `json:"started"`
	Finished time.Time `json:"finished"`
	Feeds    int       `json:"feeds"`
	Imported int       `json:"imported"`
	Failed   int       `json:"failed_feeds"`
}

type feedRequest struct {
	URL  string `json:"url"`
	Name string `json:"name"`
}

// statusHandler returns server and scheduler status
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	resp := statusResponse{
		Status:   "ok",
		Version:  s.Version,
		Time:     time.Now().UTC(),
		Interval: s.Scheduler.Interval().String(),
		NextRun:  s.Scheduler.NextRun().UTC(),
	}

	posts, err := s.Posts.Count(r.Context())
	if err != nil {
		lgr.Printf("[WARN] can't count posts: %v", err)
		resp.Status = "degraded"
	}
	resp.Posts = posts

	if size, err := s.Journal.Size(); err == nil {
		resp.JournalSize = size
	}

	if report, ok := s.Scheduler.LastReport(); ok {
		resp.LastRun = summarize(report)
	}
	renderJSON(w, r, http.StatusOK, resp)
}

// rescheduleHandler changes the schedule interval
func (s *Server) rescheduleHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Interval string `json:"interval"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, fmt.Errorf("invalid request: %w", err), http.StatusBadRequest)
		return
	}
	if err := s.Scheduler.Reschedule(r.Context(), req.Interval); err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}
	s.Journal.Log(domain.LevelInfo, "schedule changed to %s", req.Interval)
	renderJSON(w, r, http.StatusOK, map[string]any{
		"interval": s.Scheduler.Interval().String(),
		"next_run": s.Scheduler.NextRun().UTC(),
	})
}

// runHandler runs the pipeline immediately and returns its report
func (s *Server) runHandler(w http.ResponseWriter, r *http.Request) {
	s.Journal.Log(domain.LevelInfo, "manual run requested")
	report := s.Scheduler.RunNow(r.Context())
	renderJSON(w, r, http.StatusOK, report)
}

// listFeedsHandler returns feeds in processing order
func (s *Server) listFeedsHandler(w http.ResponseWriter, r *http.Request) {
	feeds, err := s.Feeds.List(r.Context())
	if err != nil {
		lgr.Printf("[ERROR] failed to list feeds: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, feeds)
}

// addFeedHandler appends a feed to the list
func (s *Server) addFeedHandler(w http.ResponseWriter, r *http.Request) {
	var req feedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, fmt.Errorf("invalid request: %w", err), http.StatusBadRequest)
		return
	}
	feedURL, err := validateFeedURL(req.URL)
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}

	src := &domain.FeedSource{URL: feedURL, DisplayName: strings.TrimSpace(req.Name)}
	if err := s.Feeds.Add(r.Context(), src); err != nil {
		lgr.Printf("[ERROR] failed to add feed %s: %v", feedURL, err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	s.Journal.Log(domain.LevelInfo, "feed %s added at position %d", src.Name(), src.Position)
	renderJSON(w, r, http.StatusCreated, src)
}

// deleteFeedHandler removes a feed, posts imported from it are kept
func (s *Server) deleteFeedHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		renderError(w, r, errors.New("invalid feed ID"), http.StatusBadRequest)
		return
	}

	if err := s.Feeds.Remove(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			renderError(w, r, err, http.StatusNotFound)
			return
		}
		lgr.Printf("[ERROR] failed to delete feed %d: %v", id, err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	s.Journal.Log(domain.LevelInfo, "feed %d removed", id)
	w.WriteHeader(http.StatusNoContent)
}

// reorderFeedsHandler sets processing order
func (s *Server) reorderFeedsHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IDs []int64 `json:"ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, fmt.Errorf("invalid request: %w", err), http.StatusBadRequest)
		return
	}
	if len(req.IDs) == 0 {
		renderError(w, r, errors.New("ids are required"), http.StatusBadRequest)
		return
	}

	if err := s.Feeds.Reorder(r.Context(), req.IDs); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			renderError(w, r, err, http.StatusBadRequest)
			return
		}
		lgr.Printf("[ERROR] failed to reorder feeds: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	s.listFeedsHandler(w, r)
}

// previewHandler shows the first items of a feed without importing anything
func (s *Server) previewHandler(w http.ResponseWriter, r *http.Request) {
	feedURL, err := validateFeedURL(r.URL.Query().Get("url"))
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}
	n := queryInt(r, "n", defaultPreviewItems)
	if n <= 0 || n > maxPreviewItems {
		n = defaultPreviewItems
	}

	items, err := s.Previewer.Preview(r.Context(), feedURL, n)
	if err != nil {
		renderError(w, r, err, http.StatusBadGateway)
		return
	}
	renderJSON(w, r, http.StatusOK, items)
}

// listPostsHandler returns imported posts, newest first
func (s *Server) listPostsHandler(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", defaultPostsLimit)
	if limit <= 0 || limit > maxPostsLimit {
		limit = defaultPostsLimit
	}
	offset := max(queryInt(r, "offset", 0), 0)

	posts, err := s.Posts.List(r.Context(), repository.PostFilter{FeedURL: r.URL.Query().Get("feed"), Limit: limit, Offset: offset})
	if err != nil {
		lgr.Printf("[ERROR] failed to list posts: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	total, err := s.Posts.Count(r.Context())
	if err != nil {
		lgr.Printf("[WARN] can't count posts: %v", err)
	}
	renderJSON(w, r, http.StatusOK, map[string]any{"posts": posts, "total": total, "limit": limit, "offset": offset})
}

// logsHandler returns journal entries, newest first
func (s *Server) logsHandler(w http.ResponseWriter, r *http.Request) {
	level := domain.LevelDebug
	if lvl := r.URL.Query().Get("level"); lvl != "" {
		parsed, ok := domain.ParseLevel(lvl)
		if !ok {
			renderError(w, r, fmt.Errorf("unknown level %q", lvl), http.StatusBadRequest)
			return
		}
		level = parsed
	}
	limit := queryInt(r, "limit", defaultLogEntries)

	entries, err := s.Journal.Entries(level, limit)
	if err != nil {
		lgr.Printf("[ERROR] failed to read journal: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, entries)
}

// clearLogsHandler truncates the journal
func (s *Server) clearLogsHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.Journal.Clear(); err != nil {
		lgr.Printf("[ERROR] failed to clear journal: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// exportLogsHandler streams the journal as a text attachment
func (s *Server) exportLogsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=feedpress-%s.log", time.Now().UTC().Format("20060102")))
	if err := s.Journal.Export(w); err != nil {
		lgr.Printf("[ERROR] failed to export journal: %v", err)
	}
}

// clearCacheHandler drops all cached feeds
func (s *Server) clearCacheHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.Cache.Clear(r.Context()); err != nil {
		lgr.Printf("[ERROR] failed to clear cache: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	s.Journal.Log(domain.LevelInfo, "feed cache cleared")
	w.WriteHeader(http.StatusNoContent)
}

// validateFeedURL checks the url is an absolute http(s) url
func validateFeedURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", errors.New("url is required")
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return "", fmt.Errorf("invalid feed url %q", raw)
	}
	return u.String(), nil
}

func queryInt(r *http.Request, key string, def int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func summarize(report domain.RunReport) *runSummary {
	res := &runSummary{Started: report.Started, Finished: report.Finished, Feeds: len(report.Feeds), Imported: report.Imported()}
	for _, f := range report.Feeds {
		if f.Error != "" {
			res.Failed++
		}
	}
	return res
}
