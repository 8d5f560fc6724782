package domain

import "time"

// FeedItem is a normalized item parsed from a feed, it lives only within a single pipeline run
type FeedItem struct {
	Title           string   `json:"title"`
	Link            string   `json:"link"`
	GUID            string   `json:"guid"`
	Description     string   `json:"description"`
	PubDate         string   `json:"pub_date"`
	Author          string   `json:"author"`
	Categories      []string `json:"categories"`
	ThumbnailURL    string   `json:"thumbnail_url"`
	MediaContentURL string   `json:"media_content_url"`
	Content         string   `json:"content"`
}

// DedupKey returns the identifier used for deduplication, guid with link fallback
func (i FeedItem) DedupKey() string {
	if i.GUID != "" {
		return i.GUID
	}
	return i.Link
}

// Body returns full content if present, description otherwise
func (i FeedItem) Body() string {
	if i.Content != "" {
		return i.Content
	}
	return i.Description
}

// PostStatus is a publication status of a post
type PostStatus string

// enum of supported post statuses
const (
	PostStatusDraft   PostStatus = "draft"
	PostStatusPending PostStatus = "pending"
	PostStatusPublish PostStatus = "publish"
	PostStatusPrivate PostStatus = "private"
)

// Valid checks the status is one of known values
func (s PostStatus) Valid() bool {
	switch s {
	case PostStatusDraft, PostStatusPending, PostStatusPublish, PostStatusPrivate:
		return true
	}
	return false
}

// PostMeta holds source metadata persisted with a post
type PostMeta struct {
	GUID          string `json:"guid"`
	SourceLink    string `json:"source_link"`
	SourceAuthor  string `json:"source_author,omitempty"`
	CoverImageURL string `json:"cover_image_url,omitempty"`
}

// Post is an imported feed item stored in the content store
type Post struct {
	ID          int64      `json:"id"`
	FeedURL     string     `json:"feed_url"`
	Title       string     `json:"title"`
	Content     string     `json:"content"`
	Excerpt     string     `json:"excerpt"`
	PublishedAt time.Time  `json:"published_at"`
	Status      PostStatus `json:"status"`
	AuthorID    int64      `json:"author_id"`
	CategoryIDs []int64    `json:"category_ids"`
	Tags        []string   `json:"tags"`
	Meta        PostMeta   `json:"meta"`
	CreatedAt   time.Time  `json:"created_at"`
}

// PostImage is a representative image attached to a post
type PostImage struct {
	PostID      int64
	SourceURL   string
	ContentType string
	Data        []byte
	CreatedAt   time.Time
}

// ItemOutcome is a terminal state of a single item import
type ItemOutcome string

// enum of item outcomes
const (
	OutcomeSkipped ItemOutcome = "skipped"
	OutcomeCreated ItemOutcome = "created"
	OutcomeFailed  ItemOutcome = "failed"
)

// ImportResult summarizes a feed import
type ImportResult struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
	Failed   int `json:"failed"`
}

// Add records a single item outcome
func (r *ImportResult) Add(o ItemOutcome) {
	switch o {
	case OutcomeCreated:
		r.Imported++
	case OutcomeSkipped:
		r.Skipped++
	case OutcomeFailed:
		r.Failed++
	}
}

// FeedReport describes what happened to a single feed during a run
type FeedReport struct {
	Source      FeedSource   `json:"source"`
	NotModified bool         `json:"not_modified"`
	FromCache   bool         `json:"from_cache"`
	Items       int          `json:"items"`
	Result      ImportResult `json:"result"`
	Error       string       `json:"error,omitempty"`
}

// RunReport summarizes a pipeline run
type RunReport struct {
	Started  time.Time    `json:"started"`
	Finished time.Time    `json:"finished"`
	Feeds    []FeedReport `json:"feeds"`
}

// Imported returns the total number of created posts in the run
func (r RunReport) Imported() int {
	total := 0
	for _, f := range r.Feeds {
		total += f.Result.Imported
	}
	return total
}
