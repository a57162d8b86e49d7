package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmitrymomot/storefront/core/storage"
)

const (
	getQuery    = `SELECT value FROM storefront_kv WHERE namespace = ? AND key = ?`
	upsertQuery = `INSERT INTO storefront_kv (namespace, key, value, updated_at)
VALUES (?, ?, ?, CURRENT_TIMESTAMP)
ON CONFLICT (namespace, key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`
	deleteQuery = `DELETE FROM storefront_kv WHERE namespace = ? AND key = ?`
)

// Storage is a storage.Storage kept in the storefront_kv table.
type Storage struct {
	db        *sql.DB
	namespace string
}

// NewStorage creates a Storage over db. Run Migrate first.
func NewStorage(db *sql.DB, namespace string) *Storage {
	return &Storage{db: db, namespace: namespace}
}

func (s *Storage) Get(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", storage.ErrEmptyKey
	}
	var v string
	err := s.db.QueryRowContext(ctx, getQuery, s.namespace, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", storage.ErrNotFound
	}
	if err != nil {
		return "", errors.Join(storage.ErrUnavailable, err)
	}
	return v, nil
}

func (s *Storage) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return storage.ErrEmptyKey
	}
	if _, err := s.db.ExecContext(ctx, upsertQuery, s.namespace, key, value); err != nil {
		return errors.Join(storage.ErrUnavailable, err)
	}
	return nil
}

func (s *Storage) Remove(ctx context.Context, key string) error {
	if key == "" {
		return storage.ErrEmptyKey
	}
	if _, err := s.db.ExecContext(ctx, deleteQuery, s.namespace, key); err != nil {
		return errors.Join(storage.ErrUnavailable, err)
	}
	return nil
}
