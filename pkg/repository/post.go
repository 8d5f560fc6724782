package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/umputun/feedpress/pkg/domain"
)

// PostRepository handles imported posts and their images
type PostRepository struct {
	db *sqlx.DB
}

// postSQL represents a post for SQL operations
type postSQL struct {
	ID            int64           `db:"id"`
	GUID          string          `db:"guid"`
	FeedURL       string          `db:"feed_url"`
	Title         string          `db:"title"`
	Content       string          `db:"content"`
	Excerpt       string          `db:"excerpt"`
	PublishedAt   time.Time       `db:"published_at"`
	Status        string          `db:"status"`
	AuthorID      int64           `db:"author_id"`
	CategoryIDs   jsonSQL[int64]  `db:"category_ids"`
	Tags          jsonSQL[string] `db:"tags"`
	SourceLink    string          `db:"source_link"`
	SourceAuthor  string          `db:"source_author"`
	CoverImageURL string          `db:"cover_image_url"`
	CreatedAt     time.Time       `db:"created_at"`
}

// postImageSQL represents a post image for SQL operations
type postImageSQL struct {
	PostID      int64     `db:"post_id"`
	SourceURL   string    `db:"source_url"`
	ContentType string    `db:"content_type"`
	Data        []byte    `db:"data"`
	CreatedAt   time.Time `db:"created_at"`
}

// PostFilter defines listing options
type PostFilter struct {
	FeedURL string
	Limit   int
	Offset  int
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *sqlx.DB) *PostRepository {
	return &PostRepository{db: db}
}

// CreateIfAbsent inserts a post unless a post with the same guid exists.
// Returns ErrDuplicate when the guid is already taken, the check and insert are a single statement.
func (r *PostRepository) CreateIfAbsent(ctx context.Context, post *domain.Post) error {
	if post.Meta.GUID == "" {
		return fmt.Errorf("create post: empty guid")
	}
	rec := fromDomainPost(post)
	query := `
		INSERT INTO posts (
			guid, feed_url, title, content, excerpt, published_at, status, author_id,
			category_ids, tags, source_link, source_author, cover_image_url
		) VALUES (
			:guid, :feed_url, :title, :content, :excerpt, :published_at, :status, :author_id,
			:category_ids, :tags, :source_link, :source_author, :cover_image_url
		)
		ON CONFLICT(guid) DO NOTHING
	`
	var id, affected int64
	err := withLockRetry(ctx, func() error {
		res, err := r.db.NamedExecContext(ctx, query, rec)
		if err != nil {
			return err
		}
		if affected, err = res.RowsAffected(); err != nil {
			return err
		}
		id, err = res.LastInsertId()
		return err
	})
	if err != nil {
		if isUniqueError(err) {
			return fmt.Errorf("create post %q: %w", post.Meta.GUID, ErrDuplicate)
		}
		return fmt.Errorf("create post: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("create post %q: %w", post.Meta.GUID, ErrDuplicate)
	}

	post.ID = id
	if err := r.db.GetContext(ctx, &post.CreatedAt, "SELECT created_at FROM posts WHERE id = ?", id); err != nil {
		return fmt.Errorf("get post created time: %w", err)
	}
	return nil
}

// ExistsByGUID checks if a post with the guid exists
func (r *PostRepository) ExistsByGUID(ctx context.Context, guid string) (bool, error) {
	var exists bool
	if err := r.db.GetContext(ctx, &exists, "SELECT EXISTS(SELECT 1 FROM posts WHERE guid = ?)", guid); err != nil {
		return false, fmt.Errorf("check post exists: %w", err)
	}
	return exists, nil
}

// GetByGUID retrieves a post by guid
func (r *PostRepository) GetByGUID(ctx context.Context, guid string) (*domain.Post, error) {
	var rec postSQL
	err := r.db.GetContext(ctx, &rec, "SELECT * FROM posts WHERE guid = ?", guid)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("post %q: %w", guid, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get post: %w", err)
	}
	return rec.toDomain(), nil
}

// List returns posts, newest first
func (r *PostRepository) List(ctx context.Context, filter PostFilter) ([]domain.Post, error) {
	query := "SELECT * FROM posts"
	args := []any{}
	if filter.FeedURL != "" {
		query += " WHERE feed_url = ?"
		args = append(args, filter.FeedURL)
	}
	query += " ORDER BY created_at DESC, id DESC"
	if filter.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, filter.Limit, filter.Offset)
	}

	var recs []postSQL
	if err := r.db.SelectContext(ctx, &recs, query, args...); err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	res := make([]domain.Post, 0, len(recs))
	for _, rec := range recs {
		res = append(res, *rec.toDomain())
	}
	return res, nil
}

// Count returns the number of stored posts
func (r *PostRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM posts"); err != nil {
		return 0, fmt.Errorf("count posts: %w", err)
	}
	return count, nil
}

// AttachImage stores the representative image of a post, replacing the previous one
func (r *PostRepository) AttachImage(ctx context.Context, img *domain.PostImage) error {
	query := `
		INSERT INTO post_images (post_id, source_url, content_type, data)
		VALUES (:post_id, :source_url, :content_type, :data)
		ON CONFLICT(post_id) DO UPDATE SET
			source_url = excluded.source_url,
			content_type = excluded.content_type,
			data = excluded.data,
			created_at = CURRENT_TIMESTAMP
	`
	rec := postImageSQL{PostID: img.PostID, SourceURL: img.SourceURL, ContentType: img.ContentType, Data: img.Data}
	err := withLockRetry(ctx, func() error {
		_, err := r.db.NamedExecContext(ctx, query, rec)
		return err
	})
	if err != nil {
		return fmt.Errorf("attach image to post %d: %w", img.PostID, err)
	}
	return nil
}

// GetImage retrieves the image attached to a post
func (r *PostRepository) GetImage(ctx context.Context, postID int64) (*domain.PostImage, error) {
	var rec postImageSQL
	err := r.db.GetContext(ctx, &rec, "SELECT * FROM post_images WHERE post_id = ?", postID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("image of post %d: %w", postID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get post image: %w", err)
	}
	return &domain.PostImage{
		PostID:      rec.PostID,
		SourceURL:   rec.SourceURL,
		ContentType: rec.ContentType,
		Data:        rec.Data,
		CreatedAt:   rec.CreatedAt,
	}, nil
}

func fromDomainPost(p *domain.Post) *postSQL {
	status := p.Status
	if status == "" {
		status = domain.PostStatusDraft
	}
	return &postSQL{
		GUID:          p.Meta.GUID,
		FeedURL:       p.FeedURL,
		Title:         p.Title,
		Content:       p.Content,
		Excerpt:       p.Excerpt,
		PublishedAt:   p.PublishedAt.UTC(),
		Status:        string(status),
		AuthorID:      p.AuthorID,
		CategoryIDs:   jsonSQL[int64](p.CategoryIDs),
		Tags:          jsonSQL[string](p.Tags),
		SourceLink:    p.Meta.SourceLink,
		SourceAuthor:  p.Meta.SourceAuthor,
		CoverImageURL: p.Meta.CoverImageURL,
	}
}

func (p *postSQL) toDomain() *domain.Post {
	return &domain.Post{
		ID:          p.ID,
		FeedURL:     p.FeedURL,
		Title:       p.Title,
		Content:     p.Content,
		Excerpt:     p.Excerpt,
		PublishedAt: p.PublishedAt,
		Status:      domain.PostStatus(p.Status),
		AuthorID:    p.AuthorID,
		CategoryIDs: []int64(p.CategoryIDs),
		Tags:        []string(p.Tags),
		Meta: domain.PostMeta{
			GUID:          p.GUID,
			SourceLink:    p.SourceLink,
			SourceAuthor:  p.SourceAuthor,
			CoverImageURL: p.CoverImageURL,
		},
		CreatedAt: p.CreatedAt,
	}
}
