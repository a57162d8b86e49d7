package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/storefront/core/api"
	"github.com/dmitrymomot/storefront/core/notify"
)

type mockAuthorizer struct {
	mock.Mock
}

func (m *mockAuthorizer) Authorize(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *mockAuthorizer) Expire(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func validAuth() *mockAuthorizer {
	a := &mockAuthorizer{}
	a.On("Authorize", mock.Anything).Return("tok-123", nil)
	return a
}

type alerts struct {
	mu       sync.Mutex
	messages []string
}

func (a *alerts) Alert(_ context.Context, _ notify.Level, msg string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.messages = append(a.messages, msg)
}

func (a *alerts) ShowBanner(context.Context, string, time.Duration) {}
func (a *alerts) DismissBanner(context.Context)                     {}
func (a *alerts) BannerVisible() bool                               { return false }

func (a *alerts) list() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.messages...)
}

func newClient(t *testing.T, h http.Handler, opts ...api.Option) (*api.Client, *alerts) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	n := &alerts{}
	c, err := api.New(append([]api.Option{api.WithBaseURL(srv.URL + "/"), api.WithNotifier(n)}, opts...)...)
	require.NoError(t, err)
	return c, n
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// captured holds a value written by a test server handler.
type captured[T any] struct {
	mu sync.Mutex
	v  T
}

func (c *captured[T]) set(v T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.v = v
}

func (c *captured[T]) update(fn func(T) T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.v = fn(c.v)
}

func (c *captured[T]) get() T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.v
}
