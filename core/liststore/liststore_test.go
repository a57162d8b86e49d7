package liststore_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/storefront/core/liststore"
	"github.com/dmitrymomot/storefront/core/storage"
)

type entry struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func entryKey(e entry) string { return strconv.Itoa(e.ID) }

type failingStorage struct {
	storage.Storage
	getErr error
	setErr error
}

func (f failingStorage) Get(ctx context.Context, key string) (string, error) {
	if f.getErr != nil {
		return "", f.getErr
	}
	return f.Storage.Get(ctx, key)
}

func (f failingStorage) Set(ctx context.Context, key, value string) error {
	if f.setErr != nil {
		return f.setErr
	}
	return f.Storage.Set(ctx, key, value)
}

func newStore(t *testing.T, backend storage.Storage, opts ...liststore.Option) *liststore.Store[entry] {
	t.Helper()
	s, err := liststore.New(backend, "entries", entryKey, opts...)
	require.NoError(t, err)
	return s
}

func TestNew(t *testing.T) {
	t.Parallel()

	_, err := liststore.New[entry](nil, "entries", entryKey)
	assert.ErrorIs(t, err, liststore.ErrNilStorage)

	_, err = liststore.New(storage.NewMemory(), "", entryKey)
	assert.ErrorIs(t, err, storage.ErrEmptyKey)
}

func TestStore_Load(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("absent slot", func(t *testing.T) {
		t.Parallel()
		s := newStore(t, storage.NewMemory())
		items := s.Load(ctx)
		assert.NotNil(t, items)
		assert.Empty(t, items)
	})

	t.Run("malformed json degrades to empty and logs", func(t *testing.T) {
		t.Parallel()
		mem := storage.NewMemory()
		require.NoError(t, mem.Set(ctx, "entries", "{not json"))

		var buf bytes.Buffer
		s := newStore(t, mem, liststore.WithLogger(slog.New(slog.NewTextHandler(&buf, nil))))

		assert.Empty(t, s.Load(ctx))
		assert.Contains(t, buf.String(), "failed to parse list")
		assert.Contains(t, buf.String(), "storage_key=entries")
	})

	t.Run("json null", func(t *testing.T) {
		t.Parallel()
		mem := storage.NewMemory()
		require.NoError(t, mem.Set(ctx, "entries", "null"))
		assert.NotNil(t, newStore(t, mem).Load(ctx))
	})

	t.Run("backend failure", func(t *testing.T) {
		t.Parallel()
		s := newStore(t, failingStorage{Storage: storage.NewMemory(), getErr: storage.ErrUnavailable})
		assert.Empty(t, s.Load(ctx))
	})

	t.Run("noop backend", func(t *testing.T) {
		t.Parallel()
		s := newStore(t, storage.Noop{})
		require.NoError(t, s.Save(ctx, []entry{{ID: 1}}))
		assert.Empty(t, s.Load(ctx))
	})
}

func TestStore_Save(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("round trip is identity", func(t *testing.T) {
		t.Parallel()
		mem := storage.NewMemory()
		s := newStore(t, mem)
		require.NoError(t, s.Save(ctx, []entry{{ID: 2, Name: "b"}, {ID: 1, Name: "a"}}))

		before, err := mem.Get(ctx, "entries")
		require.NoError(t, err)

		require.NoError(t, s.Save(ctx, s.Load(ctx)))
		after, err := mem.Get(ctx, "entries")
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})

	t.Run("failure keeps previous state", func(t *testing.T) {
		t.Parallel()
		mem := storage.NewMemory()
		require.NoError(t, newStore(t, mem).Save(ctx, []entry{{ID: 1}}))

		s := newStore(t, failingStorage{Storage: mem, setErr: storage.ErrQuotaExceeded})
		err := s.Save(ctx, []entry{{ID: 1}, {ID: 2}})
		assert.ErrorIs(t, err, storage.ErrQuotaExceeded)
		assert.Equal(t, []entry{{ID: 1}}, s.Load(ctx))
	})

	t.Run("nil is stored as empty array", func(t *testing.T) {
		t.Parallel()
		mem := storage.NewMemory()
		require.NoError(t, newStore(t, mem).Save(ctx, nil))
		raw, err := mem.Get(ctx, "entries")
		require.NoError(t, err)
		assert.Equal(t, "[]", raw)
	})
}

func TestStore_Mutations(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	s := newStore(t, storage.NewMemory())
	require.NoError(t, s.Save(ctx, []entry{{ID: 1, Name: "a"}, {ID: 2, Name: "b"}, {ID: 1, Name: "dup"}}))

	assert.True(t, s.Contains(ctx, "1"))
	assert.Equal(t, 3, s.Len(ctx))

	found, ok := s.Find(ctx, "2")
	require.True(t, ok)
	assert.Equal(t, "b", found.Name)

	require.NoError(t, s.Remove(ctx, "1"))
	assert.Equal(t, []entry{{ID: 2, Name: "b"}}, s.Load(ctx))
	assert.False(t, s.Contains(ctx, "1"))

	require.NoError(t, s.Update(ctx, func(items []entry) []entry {
		return append(items, entry{ID: 3})
	}))
	assert.Equal(t, 2, s.Len(ctx))

	require.NoError(t, s.Clear(ctx))
	assert.Zero(t, s.Len(ctx))

	_, ok = s.Find(ctx, "2")
	assert.False(t, ok)
}

func TestStore_RemovePropagatesSaveError(t *testing.T) {
	t.Parallel()
	boom := errors.New("boom")
	s := newStore(t, failingStorage{Storage: storage.NewMemory(), setErr: boom})
	assert.ErrorIs(t, s.Remove(context.Background(), "1"), boom)
}
