package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/storefront/core/storage"
)

// Storage is a storage.Storage backed by Redis string keys.
type Storage struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// StorageOption configures a Storage.
type StorageOption func(*Storage)

// WithPrefix namespaces every key.
func WithPrefix(prefix string) StorageOption {
	return func(s *Storage) { s.prefix = prefix }
}

// WithTTL expires values after d. Zero keeps them forever.
func WithTTL(d time.Duration) StorageOption {
	return func(s *Storage) {
		if d >= 0 {
			s.ttl = d
		}
	}
}

// NewStorage wraps client.
func NewStorage(client redis.UniversalClient, opts ...StorageOption) *Storage {
	s := &Storage{client: client}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewStorageFromConfig wraps client using the prefix and TTL of cfg.
func NewStorageFromConfig(client redis.UniversalClient, cfg Config) *Storage {
	return NewStorage(client, WithPrefix(cfg.KeyPrefix), WithTTL(cfg.TTL))
}

func (s *Storage) key(k string) string { return s.prefix + k }

func (s *Storage) Get(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", storage.ErrEmptyKey
	}
	v, err := s.client.Get(ctx, s.key(key)).Result()
	if errors.Is(err, redis.Nil) {
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
	if err := s.client.Set(ctx, s.key(key), value, s.ttl).Err(); err != nil {
		return errors.Join(storage.ErrUnavailable, err)
	}
	return nil
}

func (s *Storage) Remove(ctx context.Context, key string) error {
	if key == "" {
		return storage.ErrEmptyKey
	}
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return errors.Join(storage.ErrUnavailable, err)
	}
	return nil
}
