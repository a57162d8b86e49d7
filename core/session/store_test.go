package session_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/storefront/core/session"
	"github.com/dmitrymomot/storefront/core/storage"
)

func TestNewStore_NilBackend(t *testing.T) {
	t.Parallel()
	_, err := session.NewStore(nil)
	assert.ErrorIs(t, err, session.ErrNilStorage)
}

func TestStore_SaveAndRead(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	backend := storage.NewMemory()
	store, err := session.NewStore(backend)
	require.NoError(t, err)

	user := &session.User{ID: 7, Email: "kim@example.com", Name: "Kim", IsAdmin: 1}
	require.NoError(t, store.Save(ctx, session.Credentials{Token: "a.b.c", Email: "kim@example.com", User: user}))

	tok, err := store.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "a.b.c", tok)

	email, err := store.Email(ctx)
	require.NoError(t, err)
	assert.Equal(t, "kim@example.com", email)

	got, err := store.User(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, *user, *got)
	assert.True(t, got.Admin())

	raw, err := backend.Get(ctx, session.UserKey)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":7,"email":"kim@example.com","name":"Kim","isAdmin":1}`, raw)
}

func TestStore_SaveRequiresToken(t *testing.T) {
	t.Parallel()
	store, err := session.NewStore(storage.NewMemory())
	require.NoError(t, err)

	err = store.Save(context.Background(), session.Credentials{Token: "  ", Email: "kim@example.com"})
	assert.ErrorIs(t, err, session.ErrMissingToken)
}

func TestStore_EmptyState(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store, err := session.NewStore(storage.NewMemory())
	require.NoError(t, err)

	_, err = store.Token(ctx)
	assert.ErrorIs(t, err, session.ErrMissingToken)

	_, err = store.Email(ctx)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	u, err := store.User(ctx)
	assert.NoError(t, err)
	assert.Nil(t, u)

	status, err := store.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, session.StatusAbsent, status)
}

func TestStore_InvalidUser(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	backend := storage.NewMemory()
	require.NoError(t, backend.Set(ctx, session.UserKey, "{broken"))

	store, err := session.NewStore(backend)
	require.NoError(t, err)

	_, err = store.User(ctx)
	assert.ErrorIs(t, err, session.ErrInvalidUser)
}

func TestStore_Check(t *testing.T) {
	t.Parallel()
	store, err := session.NewStore(storage.NewMemory())
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
		want  session.Status
	}{
		{"empty", "", session.StatusAbsent},
		{"far future", tokenExpiringAt(t, now.Add(time.Hour)), session.StatusValid},
		{"inside warning window", tokenExpiringAt(t, now.Add(4*time.Minute)), session.StatusExpiringSoon},
		{"on warning boundary", tokenExpiringAt(t, now.Add(5*time.Minute)), session.StatusExpiringSoon},
		{"inside expiry buffer", tokenExpiringAt(t, now.Add(10*time.Second)), session.StatusExpired},
		{"on expiry buffer", tokenExpiringAt(t, now.Add(30*time.Second)), session.StatusExpired},
		{"just past buffer", tokenExpiringAt(t, now.Add(31*time.Second)), session.StatusExpiringSoon},
		{"past", tokenExpiringAt(t, now.Add(-time.Hour)), session.StatusExpired},
		{"garbage", "not-a-token", session.StatusExpired},
		{"missing exp", "eyJhbGciOiJIUzI1NiJ9.eyJzdWIiOiIxIn0.sig", session.StatusExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, store.Check(tt.token, now))
		})
	}
}

func TestStore_CheckWithoutBuffer(t *testing.T) {
	t.Parallel()
	store, err := session.NewStore(storage.NewMemory(), session.WithExpiryBuffer(0))
	require.NoError(t, err)

	tok := tokenExpiringAt(t, now.Add(10*time.Second))
	assert.Equal(t, session.StatusExpiringSoon, store.Check(tok, now))
	assert.Equal(t, session.StatusExpired, store.Check(tok, now.Add(10*time.Second)))
}

func TestStore_Authorize(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	backend := storage.NewMemory()
	store, err := session.NewStore(backend, session.WithClock(clock))
	require.NoError(t, err)

	_, err = store.Authorize(ctx)
	assert.ErrorIs(t, err, session.ErrMissingToken)

	valid := tokenExpiringAt(t, now.Add(time.Hour))
	require.NoError(t, store.Save(ctx, session.Credentials{Token: valid}))
	tok, err := store.Authorize(ctx)
	require.NoError(t, err)
	assert.Equal(t, valid, tok)

	require.NoError(t, store.Save(ctx, session.Credentials{Token: tokenExpiringAt(t, now.Add(-time.Minute))}))
	_, err = store.Authorize(ctx)
	assert.ErrorIs(t, err, session.ErrExpiredToken)
}

func TestStore_ExpiresAt(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store, err := session.NewStore(storage.NewMemory())
	require.NoError(t, err)

	exp := now.Add(time.Hour)
	require.NoError(t, store.Save(ctx, session.Credentials{Token: tokenExpiringAt(t, exp)}))

	got, err := store.ExpiresAt(ctx)
	require.NoError(t, err)
	assert.True(t, exp.Equal(got))
}

type failingRemove struct {
	storage.Storage
	key string
}

func (f failingRemove) Remove(ctx context.Context, key string) error {
	if key == f.key {
		return errors.New("disk full")
	}
	return f.Storage.Remove(ctx, key)
}

func TestStore_ClearKeepsGoing(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	mem := storage.NewMemory()
	store, err := session.NewStore(failingRemove{Storage: mem, key: session.EmailKey})
	require.NoError(t, err)

	require.NoError(t, store.Save(ctx, session.Credentials{
		Token: "a.b.c",
		Email: "kim@example.com",
		User:  &session.User{Name: "Kim"},
	}))

	err = store.Clear(ctx)
	require.ErrorIs(t, err, session.ErrClearSession)
	assert.Contains(t, err.Error(), "disk full")

	_, err = mem.Get(ctx, session.TokenKey)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	_, err = mem.Get(ctx, session.UserKey)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	_, err = mem.Get(ctx, session.EmailKey)
	assert.NoError(t, err)
}

func TestStatus_String(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "valid", session.StatusValid.String())
	assert.Equal(t, "expiring_soon", session.StatusExpiringSoon.String())
	assert.Equal(t, "expired", session.StatusExpired.String())
	assert.Equal(t, "absent", session.StatusAbsent.String())
	assert.Equal(t, "unknown", session.Status(42).String())
}
