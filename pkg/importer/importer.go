package importer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/umputun/feedpress/pkg/config"
	"github.com/umputun/feedpress/pkg/content"
	"github.com/umputun/feedpress/pkg/domain"
	"github.com/umputun/feedpress/pkg/image"
	"github.com/umputun/feedpress/pkg/llm"
	"github.com/umputun/feedpress/pkg/repository"
)

//go:generate moq -out mocks/post_store.go -pkg mocks -skip-ensure -fmt goimports . PostStore
//go:generate moq -out mocks/extractor.go -pkg mocks -skip-ensure -fmt goimports . Extractor
//go:generate moq -out mocks/image_resolver.go -pkg mocks -skip-ensure -fmt goimports . ImageResolver
//go:generate moq -out mocks/tagger.go -pkg mocks -skip-ensure -fmt goimports . Tagger
//go:generate moq -out mocks/journal.go -pkg mocks -skip-ensure -fmt goimports . Journal

// excerptMore is appended to cut excerpts
const excerptMore = "…"

// PostStore persists imported posts
type PostStore interface {
	ExistsByGUID(ctx context.Context, guid string) (bool, error)
	CreateIfAbsent(ctx context.Context, post *domain.Post) error
	AttachImage(ctx context.Context, img *domain.PostImage) error
}

// Extractor retrieves full article content by url
type Extractor interface {
	Extract(ctx context.Context, url string) (*content.Article, error)
}

// ImageResolver finds a representative image of an item
type ImageResolver interface {
	Resolve(ctx context.Context, item domain.FeedItem) (*image.Image, error)
}

// Tagger assigns tags to a post
type Tagger interface {
	Tags(ctx context.Context, req llm.TagRequest) ([]string, error)
}

// Journal records import events
type Journal interface {
	Log(level domain.Level, format string, args ...any)
}

// Sanitizer cleans html content
type Sanitizer interface {
	Apply(rawHTML string) string
}

// Params defines importer dependencies, optional ones can be nil
type Params struct {
	Posts     PostStore
	Filter    Sanitizer
	Journal   Journal
	Config    config.ImportConfig
	Scrub     bool          // run malicious patterns scrub before filtering
	Extractor Extractor     // optional, used with Config.ExtractFullText
	Images    ImageResolver // optional
	Tagger    Tagger        // optional
}

// Importer turns feed items into posts, skipping already imported ones
type Importer struct {
	Params
	now func() time.Time
}

// New makes an importer
func New(p Params) *Importer {
	return &Importer{Params: p, now: time.Now}
}

// ImportFeed imports the first limit items of the feed in feed order, limit <= 0 imports all items.
// Single item failures are journaled and counted, they don't stop the batch.
// Error is returned only when ctx is done, the result covers items processed so far.
func (im *Importer) ImportFeed(ctx context.Context, src domain.FeedSource, items []domain.FeedItem, limit int) (domain.ImportResult, error) {
	res := domain.ImportResult{}
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return res, fmt.Errorf("import %s interrupted: %w", src.URL, err)
		}
		res.Add(im.importItem(ctx, src, item))
	}
	im.Journal.Log(domain.LevelInfo, "feed %s: imported %d, skipped %d, failed %d",
		src.Name(), res.Imported, res.Skipped, res.Failed)
	return res, nil
}

// importItem runs a single item through Parsed -> Skipped | Filtered -> Created | Failed
func (im *Importer) importItem(ctx context.Context, src domain.FeedSource, item domain.FeedItem) domain.ItemOutcome {
	guid := item.DedupKey()
	if guid == "" {
		im.Journal.Log(domain.LevelWarning, "feed %s: item %q has neither guid nor link", src.Name(), item.Title)
		return domain.OutcomeFailed
	}

	exists, err := im.Posts.ExistsByGUID(ctx, guid)
	if err != nil {
		im.Journal.Log(domain.LevelError, "feed %s: check %s: %v", src.Name(), guid, err)
		return domain.OutcomeFailed
	}
	if exists {
		im.Journal.Log(domain.LevelDebug, "feed %s: skip duplicate %s", src.Name(), guid)
		return domain.OutcomeSkipped
	}

	post, img := im.buildPost(ctx, src, item)

	if err := im.Posts.CreateIfAbsent(ctx, post); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			im.Journal.Log(domain.LevelDebug, "feed %s: skip duplicate %s, created concurrently", src.Name(), guid)
			return domain.OutcomeSkipped
		}
		im.Journal.Log(domain.LevelError, "feed %s: create post %s: %v", src.Name(), guid, err)
		return domain.OutcomeFailed
	}
	im.Journal.Log(domain.LevelInfo, "feed %s: created post %d %q", src.Name(), post.ID, post.Title)

	if img != nil {
		asset := &domain.PostImage{PostID: post.ID, SourceURL: img.URL, ContentType: img.ContentType, Data: img.Data}
		if err := im.Posts.AttachImage(ctx, asset); err != nil {
			im.Journal.Log(domain.LevelWarning, "feed %s: attach image %s to post %d: %v", src.Name(), img.URL, post.ID, err)
		}
	}
	return domain.OutcomeCreated
}

// buildPost makes a filtered post of the item, image is nil when none resolved
func (im *Importer) buildPost(ctx context.Context, src domain.FeedSource, item domain.FeedItem) (*domain.Post, *image.Image) {
	body := im.fullText(ctx, src, item)
	if im.Scrub {
		body = content.Scrub(body)
	}
	filtered := im.Filter.Apply(body)
	text := content.StripTags(filtered)

	post := &domain.Post{
		FeedURL:     src.URL,
		Title:       strings.TrimSpace(item.Title),
		Content:     filtered,
		Excerpt:     Excerpt(text, im.Config.ExcerptWords),
		PublishedAt: im.publishDate(item.PubDate),
		Status:      domain.PostStatus(im.Config.PostStatus),
		AuthorID:    im.Config.AuthorID,
		CategoryIDs: im.Config.CategoryIDs,
		Tags:        im.tags(ctx, src, item, text),
		Meta: domain.PostMeta{
			GUID:         item.DedupKey(),
			SourceLink:   item.Link,
			SourceAuthor: item.Author,
		},
	}
	if !post.Status.Valid() {
		post.Status = domain.PostStatusDraft
	}

	var img *image.Image
	if im.Images != nil {
		var err error
		img, err = im.Images.Resolve(ctx, item)
		switch {
		case err == nil:
			post.Meta.CoverImageURL = img.URL
		case errors.Is(err, image.ErrNoImage):
			im.Journal.Log(domain.LevelDebug, "feed %s: no image for %s", src.Name(), item.DedupKey())
		default:
			im.Journal.Log(domain.LevelWarning, "feed %s: resolve image for %s: %v", src.Name(), item.DedupKey(), err)
		}
	}
	return post, img
}

// fullText returns item body, extracted from the item page if enabled and the feed has no full content
func (im *Importer) fullText(ctx context.Context, src domain.FeedSource, item domain.FeedItem) string {
	if !im.Config.ExtractFullText || im.Extractor == nil || item.Content != "" || item.Link == "" {
		return item.Body()
	}
	if im.Config.ExtractTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, im.Config.ExtractTimeout)
		defer cancel()
	}
	article, err := im.Extractor.Extract(ctx, item.Link)
	if err != nil || article == nil || strings.TrimSpace(article.HTML) == "" {
		im.Journal.Log(domain.LevelWarning, "feed %s: extract %s, using feed content: %v", src.Name(), item.Link, err)
		return item.Body()
	}
	return article.HTML
}

// tags merges feed categories with llm tags, llm failures are journaled
func (im *Importer) tags(ctx context.Context, src domain.FeedSource, item domain.FeedItem, text string) []string {
	tags := llm.NormalizeTags(item.Categories, 0)
	if im.Tagger == nil {
		return tags
	}
	extra, err := im.Tagger.Tags(ctx, llm.TagRequest{Title: item.Title, Content: text, ExistingTags: tags})
	if err != nil {
		im.Journal.Log(domain.LevelWarning, "feed %s: llm tags for %s: %v", src.Name(), item.DedupKey(), err)
		return tags
	}
	return llm.NormalizeTags(append(tags, extra...), 0)
}

// publishDate parses feed date in any common format, unparsable or empty dates map to now
func (im *Importer) publishDate(pubDate string) time.Time {
	if strings.TrimSpace(pubDate) == "" {
		return im.now().UTC()
	}
	ts, err := dateparse.ParseIn(strings.TrimSpace(pubDate), time.UTC)
	if err != nil {
		return im.now().UTC()
	}
	return ts.UTC()
}

// Excerpt returns the first words of text followed by ellipsis if cut. words <= 0 uses 55.
func Excerpt(text string, words int) string {
	if words <= 0 {
		words = 55
	}
	fields := strings.Fields(text)
	if len(fields) <= words {
		return strings.Join(fields, " ")
	}
	return strings.Join(fields[:words], " ") + excerptMore
}
