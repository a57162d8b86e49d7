// Package liststore keeps an ordered list of items as a JSON array under one storage key.
//
// The cart and the wishlist are both built on Store; they differ only in their
// identity function and in what "adding" an existing item means.
package liststore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/storefront/core/logger"
	"github.com/dmitrymomot/storefront/core/storage"
)

// ErrNilStorage is returned by New when no storage backend is given.
var ErrNilStorage = errors.New("liststore: storage is nil")

// Store persists []T under a fixed key.
type Store[T any] struct {
	backend storage.Storage
	key     string
	keyOf   func(T) string
	logger  *slog.Logger
}

// Option configures a Store.
type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger sets the logger used for degraded loads and failed saves.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// New creates a Store for key. keyOf returns the identity of an item; entries with
// equal identity are treated as the same entry by Remove and Contains.
func New[T any](backend storage.Storage, key string, keyOf func(T) string, opts ...Option) (*Store[T], error) {
	if backend == nil {
		return nil, ErrNilStorage
	}
	if key == "" {
		return nil, storage.ErrEmptyKey
	}

	o := &options{logger: logger.Discard()}
	for _, opt := range opts {
		opt(o)
	}

	return &Store[T]{
		backend: backend,
		key:     key,
		keyOf:   keyOf,
		logger:  o.logger.With(logger.Component("liststore"), logger.StorageKey(key)),
	}, nil
}

// Key returns the storage key of the list.
func (s *Store[T]) Key() string {
	return s.key
}

// Identity returns the identity of item.
func (s *Store[T]) Identity(item T) string {
	return s.keyOf(item)
}

// Load returns the persisted list. A missing slot, a corrupt value or a failing
// backend all yield an empty list; the latter two are logged.
func (s *Store[T]) Load(ctx context.Context) []T {
	raw, err := s.backend.Get(ctx, s.key)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.logger.ErrorContext(ctx, "failed to read list", logger.Error(err))
		}
		return []T{}
	}

	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		s.logger.ErrorContext(ctx, "failed to parse list, using empty list", logger.Error(err))
		return []T{}
	}
	if items == nil {
		return []T{}
	}
	return items
}

// Save overwrites the slot with items. On failure the previous value is left in place.
func (s *Store[T]) Save(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}

	raw, err := json.Marshal(items)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to encode list", logger.Error(err))
		return fmt.Errorf("liststore: encode %s: %w", s.key, err)
	}

	if err := s.backend.Set(ctx, s.key, string(raw)); err != nil {
		s.logger.ErrorContext(ctx, "failed to save list", logger.Error(err))
		return fmt.Errorf("liststore: save %s: %w", s.key, err)
	}
	return nil
}

// Update loads the list, applies fn and saves the result.
func (s *Store[T]) Update(ctx context.Context, fn func([]T) []T) error {
	return s.Save(ctx, fn(s.Load(ctx)))
}

// Remove drops every entry whose identity equals key.
func (s *Store[T]) Remove(ctx context.Context, key string) error {
	return s.Update(ctx, func(items []T) []T {
		kept := items[:0]
		for _, item := range items {
			if s.keyOf(item) != key {
				kept = append(kept, item)
			}
		}
		return kept
	})
}

// Find returns the first entry with the given identity.
func (s *Store[T]) Find(ctx context.Context, key string) (T, bool) {
	for _, item := range s.Load(ctx) {
		if s.keyOf(item) == key {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// Contains reports whether an entry with the given identity exists.
func (s *Store[T]) Contains(ctx context.Context, key string) bool {
	_, ok := s.Find(ctx, key)
	return ok
}

// Len returns the number of entries.
func (s *Store[T]) Len(ctx context.Context) int {
	return len(s.Load(ctx))
}

// Clear overwrites the slot with an empty list.
func (s *Store[T]) Clear(ctx context.Context) error {
	return s.Save(ctx, []T{})
}
