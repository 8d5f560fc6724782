package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// ObjectCacheRepository is a namespaced key/value store with expiration
type ObjectCacheRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

type objectCacheSQL struct {
	Value     []byte     `db:"value"`
	ExpiresAt *time.Time `db:"expires_at"`
}

// NewObjectCacheRepository creates a new object cache repository
func NewObjectCacheRepository(db *sqlx.DB) *ObjectCacheRepository {
	return &ObjectCacheRepository{db: db, now: time.Now}
}

// Get returns the value stored under namespace and key. Expired values are reported as missing.
func (r *ObjectCacheRepository) Get(ctx context.Context, namespace, key string) ([]byte, bool, error) {
	var rec objectCacheSQL
	err := r.db.GetContext(ctx, &rec, "SELECT value, expires_at FROM object_cache WHERE namespace = ? AND key = ?", namespace, key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get cached object: %w", err)
	}
	if rec.ExpiresAt != nil && r.now().After(*rec.ExpiresAt) {
		return nil, false, nil
	}
	return rec.Value, true, nil
}

// Set stores value under namespace and key, ttl <= 0 means no expiration
func (r *ObjectCacheRepository) Set(ctx context.Context, namespace, key string, value []byte, ttl time.Duration) error {
	var expiresAt *time.Time
	if ttl > 0 {
		t := r.now().Add(ttl).UTC()
		expiresAt = &t
	}
	query := `
		INSERT INTO object_cache (namespace, key, value, expires_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(namespace, key) DO UPDATE SET value = excluded.value, expires_at = excluded.expires_at
	`
	err := withLockRetry(ctx, func() error {
		_, err := r.db.ExecContext(ctx, query, namespace, key, value, expiresAt)
		return err
	})
	if err != nil {
		return fmt.Errorf("set cached object: %w", err)
	}
	return nil
}

// Delete removes a single value
func (r *ObjectCacheRepository) Delete(ctx context.Context, namespace, key string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM object_cache WHERE namespace = ? AND key = ?", namespace, key); err != nil {
		return fmt.Errorf("delete cached object: %w", err)
	}
	return nil
}

// Flush removes all values of the namespace
func (r *ObjectCacheRepository) Flush(ctx context.Context, namespace string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM object_cache WHERE namespace = ?", namespace); err != nil {
		return fmt.Errorf("flush cache namespace %s: %w", namespace, err)
	}
	return nil
}

// DeleteExpired removes expired values of all namespaces and returns their number
func (r *ObjectCacheRepository) DeleteExpired(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM object_cache WHERE expires_at IS NOT NULL AND expires_at < ?", r.now().UTC())
	if err != nil {
		return 0, fmt.Errorf("delete expired objects: %w", err)
	}
	count, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("get affected rows: %w", err)
	}
	return count, nil
}
