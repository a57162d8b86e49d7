package storage

import (
	"context"
	"sync"
)

// Memory is an in-process Storage.
type Memory struct {
	mu    sync.RWMutex
	data  map[string]string
	size  int
	quota int
}

// MemoryOption configures a Memory store.
type MemoryOption func(*Memory)

// WithQuota limits the total size of keys and values in bytes. Zero disables the limit.
func WithQuota(bytes int) MemoryOption {
	return func(m *Memory) {
		if bytes >= 0 {
			m.quota = bytes
		}
	}
}

// NewMemory creates an empty in-memory store.
func NewMemory(opts ...MemoryOption) *Memory {
	m := &Memory{data: make(map[string]string)}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Memory) Get(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", ErrEmptyKey
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.data[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (m *Memory) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return ErrEmptyKey
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	size := m.size + len(key) + len(value)
	if old, ok := m.data[key]; ok {
		size -= len(key) + len(old)
	}
	if m.quota > 0 && size > m.quota {
		return ErrQuotaExceeded
	}

	m.data[key] = value
	m.size = size
	return nil
}

func (m *Memory) Remove(ctx context.Context, key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if old, ok := m.data[key]; ok {
		m.size -= len(key) + len(old)
		delete(m.data, key)
	}
	return nil
}

// Len returns the number of stored keys.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

// Noop is a Storage without persistence. Every Get reports ErrNotFound.
type Noop struct{}

func (Noop) Get(context.Context, string) (string, error) { return "", ErrNotFound }
func (Noop) Set(context.Context, string, string) error   { return nil }
func (Noop) Remove(context.Context, string) error        { return nil }
