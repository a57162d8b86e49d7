package pg

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/storefront/core/storage"
)

const (
	getQuery    = `SELECT value FROM storefront_kv WHERE namespace = $1 AND key = $2`
	upsertQuery = `INSERT INTO storefront_kv (namespace, key, value, updated_at)
VALUES ($1, $2, $3, now())
ON CONFLICT (namespace, key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`
	deleteQuery = `DELETE FROM storefront_kv WHERE namespace = $1 AND key = $2`
)

type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Storage is a storage.Storage kept in the storefront_kv table.
// Keys are scoped by namespace so several users can share one database.
// Operations join the transaction carried by the context, if any.
type Storage struct {
	pool      *pgxpool.Pool
	namespace string
}

// NewStorage creates a Storage over pool. Run Migrate first.
func NewStorage(pool *pgxpool.Pool, namespace string) *Storage {
	return &Storage{pool: pool, namespace: namespace}
}

func (s *Storage) db(ctx context.Context) querier {
	if tx, ok := TxFromContext(ctx); ok {
		return tx
	}
	return s.pool
}

func (s *Storage) Get(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", storage.ErrEmptyKey
	}
	var v string
	err := s.db(ctx).QueryRow(ctx, getQuery, s.namespace, key).Scan(&v)
	if IsNotFoundError(err) {
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
	if _, err := s.db(ctx).Exec(ctx, upsertQuery, s.namespace, key, value); err != nil {
		return errors.Join(storage.ErrUnavailable, err)
	}
	return nil
}

func (s *Storage) Remove(ctx context.Context, key string) error {
	if key == "" {
		return storage.ErrEmptyKey
	}
	if _, err := s.db(ctx).Exec(ctx, deleteQuery, s.namespace, key); err != nil {
		return errors.Join(storage.ErrUnavailable, err)
	}
	return nil
}
