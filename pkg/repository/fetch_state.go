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

// FetchStateRepository keeps conditional GET validators per feed url
type FetchStateRepository struct {
	db *sqlx.DB
}

type fetchStateSQL struct {
	FeedURL      string    `db:"feed_url"`
	LastModified string    `db:"last_modified"`
	ETag         string    `db:"etag"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// NewFetchStateRepository creates a new fetch state repository
func NewFetchStateRepository(db *sqlx.DB) *FetchStateRepository {
	return &FetchStateRepository{db: db}
}

// GetState returns stored validators for the url, zero state if nothing recorded yet
func (r *FetchStateRepository) GetState(ctx context.Context, feedURL string) (domain.FetchState, error) {
	var rec fetchStateSQL
	err := r.db.GetContext(ctx, &rec, "SELECT * FROM fetch_states WHERE feed_url = ?", feedURL)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.FetchState{FeedURL: feedURL}, nil
	}
	if err != nil {
		return domain.FetchState{}, fmt.Errorf("get fetch state: %w", err)
	}
	return domain.FetchState{FeedURL: rec.FeedURL, LastModified: rec.LastModified, ETag: rec.ETag, UpdatedAt: rec.UpdatedAt}, nil
}

// SaveState updates validators of the url. Empty values leave the stored ones untouched.
func (r *FetchStateRepository) SaveState(ctx context.Context, state domain.FetchState) error {
	query := `
		INSERT INTO fetch_states (feed_url, last_modified, etag, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(feed_url) DO UPDATE SET
			last_modified = CASE WHEN excluded.last_modified != '' THEN excluded.last_modified ELSE fetch_states.last_modified END,
			etag = CASE WHEN excluded.etag != '' THEN excluded.etag ELSE fetch_states.etag END,
			updated_at = CURRENT_TIMESTAMP
	`
	err := withLockRetry(ctx, func() error {
		_, err := r.db.ExecContext(ctx, query, state.FeedURL, state.LastModified, state.ETag)
		return err
	})
	if err != nil {
		return fmt.Errorf("save fetch state: %w", err)
	}
	return nil
}

// DeleteState forgets validators of the url
func (r *FetchStateRepository) DeleteState(ctx context.Context, feedURL string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM fetch_states WHERE feed_url = ?", feedURL); err != nil {
		return fmt.Errorf("delete fetch state: %w", err)
	}
	return nil
}
