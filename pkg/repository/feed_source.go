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

// FeedSourceRepository handles the ordered list of configured feeds
type FeedSourceRepository struct {
	db *sqlx.DB
}

// feedSourceSQL represents a feed source for SQL operations
type feedSourceSQL struct {
	ID          int64     `db:"id"`
	URL         string    `db:"url"`
	DisplayName string    `db:"display_name"`
	Position    int       `db:"position"`
	CreatedAt   time.Time `db:"created_at"`
}

// NewFeedSourceRepository creates a new feed source repository
func NewFeedSourceRepository(db *sqlx.DB) *FeedSourceRepository {
	return &FeedSourceRepository{db: db}
}

// Add appends a feed to the end of the list. Adding an existing url updates its display name only.
func (r *FeedSourceRepository) Add(ctx context.Context, src *domain.FeedSource) error {
	query := `
		INSERT INTO feed_sources (url, display_name, position)
		VALUES (?, ?, (SELECT COALESCE(MAX(position), -1) + 1 FROM feed_sources))
		ON CONFLICT(url) DO UPDATE SET display_name = excluded.display_name
	`
	err := withLockRetry(ctx, func() error {
		_, err := r.db.ExecContext(ctx, query, src.URL, src.DisplayName)
		return err
	})
	if err != nil {
		return fmt.Errorf("add feed source: %w", err)
	}

	var rec feedSourceSQL
	if err := r.db.GetContext(ctx, &rec, "SELECT * FROM feed_sources WHERE url = ?", src.URL); err != nil {
		return fmt.Errorf("get added feed source: %w", err)
	}
	*src = *rec.toDomain()
	return nil
}

// Get retrieves a feed source by id
func (r *FeedSourceRepository) Get(ctx context.Context, id int64) (*domain.FeedSource, error) {
	var rec feedSourceSQL
	err := r.db.GetContext(ctx, &rec, "SELECT * FROM feed_sources WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("feed source %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get feed source: %w", err)
	}
	return rec.toDomain(), nil
}

// List returns all feed sources in processing order
func (r *FeedSourceRepository) List(ctx context.Context) ([]domain.FeedSource, error) {
	var recs []feedSourceSQL
	if err := r.db.SelectContext(ctx, &recs, "SELECT * FROM feed_sources ORDER BY position, id"); err != nil {
		return nil, fmt.Errorf("list feed sources: %w", err)
	}
	res := make([]domain.FeedSource, 0, len(recs))
	for _, rec := range recs {
		res = append(res, *rec.toDomain())
	}
	return res, nil
}

// Remove deletes a feed source by id
func (r *FeedSourceRepository) Remove(ctx context.Context, id int64) error {
	var affected int64
	err := withLockRetry(ctx, func() error {
		res, err := r.db.ExecContext(ctx, "DELETE FROM feed_sources WHERE id = ?", id)
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return fmt.Errorf("remove feed source: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("feed source %d: %w", id, ErrNotFound)
	}
	return nil
}

// Reorder sets processing order to the given id sequence. Ids not listed keep their relative order after the listed ones.
func (r *FeedSourceRepository) Reorder(ctx context.Context, ids []int64) error {
	current, err := r.List(ctx)
	if err != nil {
		return err
	}

	known := make(map[int64]bool, len(current))
	for _, src := range current {
		known[src.ID] = true
	}
	order := make([]int64, 0, len(current))
	listed := make(map[int64]bool, len(ids))
	for _, id := range ids {
		if !known[id] {
			return fmt.Errorf("feed source %d: %w", id, ErrNotFound)
		}
		if listed[id] {
			continue
		}
		listed[id] = true
		order = append(order, id)
	}
	for _, src := range current {
		if !listed[src.ID] {
			order = append(order, src.ID)
		}
	}

	err = withLockRetry(ctx, func() error {
		tx, err := r.db.BeginTxx(ctx, nil)
		if err != nil {
			return err
		}
		defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op
		for pos, id := range order {
			if _, err := tx.ExecContext(ctx, "UPDATE feed_sources SET position = ? WHERE id = ?", pos, id); err != nil {
				return err
			}
		}
		return tx.Commit()
	})
	if err != nil {
		return fmt.Errorf("reorder feed sources: %w", err)
	}
	return nil
}

func (f *feedSourceSQL) toDomain() *domain.FeedSource {
	return &domain.FeedSource{
		ID:          f.ID,
		URL:         f.URL,
		DisplayName: f.DisplayName,
		Position:    f.Position,
		CreatedAt:   f.CreatedAt,
	}
}
