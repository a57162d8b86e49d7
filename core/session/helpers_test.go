package session_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/storefront/core/notify"
	"github.com/dmitrymomot/storefront/pkg/jwt"
)

var now = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return now }

func tokenExpiringAt(t *testing.T, exp time.Time) string {
	t.Helper()
	svc, err := jwt.NewFromString("test-secret")
	require.NoError(t, err)
	tok, err := svc.Generate(jwt.StandardClaims{Subject: "1", ExpiresAt: exp.Unix()})
	require.NoError(t, err)
	return tok
}

// recorder is a notify.Notifier that remembers what it was asked to show.
type recorder struct {
	mu        sync.Mutex
	alerts    []string
	banners   []string
	visible   bool
	dismissed int
}

func (r *recorder) Alert(_ context.Context, _ notify.Level, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.alerts = append(r.alerts, message)
}

func (r *recorder) ShowBanner(_ context.Context, message string, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.visible {
		return
	}
	r.visible = true
	r.banners = append(r.banners, message)
}

func (r *recorder) DismissBanner(context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.visible = false
	r.dismissed++
}

func (r *recorder) BannerVisible() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.visible
}

func (r *recorder) alertCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.alerts)
}

func (r *recorder) bannerCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.banners)
}
