package session_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/dmitrymomot/storefront/core/notify"
	"github.com/dmitrymomot/storefront/core/session"
	"github.com/dmitrymomot/storefront/core/storage"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newManager(t *testing.T, path string, opts ...session.Option) (*session.Manager, *storage.Memory, *recorder, *notify.Location) {
	t.Helper()
	backend := storage.NewMemory()
	rec := &recorder{}
	loc := notify.NewLocation(path)
	mgr, err := session.NewManager(backend, rec, loc, append([]session.Option{session.WithClock(clock)}, opts...)...)
	require.NoError(t, err)
	t.Cleanup(mgr.Stop)
	return mgr, backend, rec, loc
}

func assertCleared(t *testing.T, backend storage.Storage) {
	t.Helper()
	for _, key := range []string{session.TokenKey, session.EmailKey, session.UserKey} {
		_, err := backend.Get(context.Background(), key)
		assert.ErrorIs(t, err, storage.ErrNotFound, key)
	}
}

func TestNewManager_Validation(t *testing.T) {
	t.Parallel()
	_, err := session.NewManager(nil, &recorder{}, notify.NewLocation("/"))
	assert.ErrorIs(t, err, session.ErrNilStorage)

	_, err = session.NewManager(storage.NewMemory(), nil, notify.NewLocation("/"))
	assert.ErrorIs(t, err, session.ErrNilNotifier)

	_, err = session.NewManager(storage.NewMemory(), &recorder{}, nil)
	assert.ErrorIs(t, err, session.ErrNilNotifier)
}

func TestManager_LoginStartsMonitor(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	mgr, _, _, _ := newManager(t, "/mypage")

	require.NoError(t, mgr.Login(ctx, session.Credentials{
		Token: tokenExpiringAt(t, now.Add(time.Hour)),
		Email: "kim@example.com",
	}))
	assert.True(t, mgr.IsActive())

	mgr.Start(ctx)
	assert.True(t, mgr.IsActive(), "restart keeps a single running loop")

	mgr.Stop()
	assert.False(t, mgr.IsActive())
	mgr.Stop()
}

func TestManager_LoginWithCanceledContext(t *testing.T) {
	t.Parallel()
	mgr, _, _, _ := newManager(t, "/mypage")

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, mgr.Login(ctx, session.Credentials{Token: tokenExpiringAt(t, now.Add(time.Hour))}))
	cancel()

	assert.True(t, mgr.IsActive())
}

func TestManager_LoginRejectsEmptyToken(t *testing.T) {
	t.Parallel()
	mgr, _, _, _ := newManager(t, "/mypage")

	err := mgr.Login(context.Background(), session.Credentials{Email: "kim@example.com"})
	assert.ErrorIs(t, err, session.ErrMissingToken)
	assert.False(t, mgr.IsActive())
}

func TestManager_Logout(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	mgr, backend, rec, loc := newManager(t, "/mypage")

	require.NoError(t, mgr.Login(ctx, session.Credentials{
		Token: tokenExpiringAt(t, now.Add(time.Hour)),
		Email: "kim@example.com",
		User:  &session.User{Name: "Kim"},
	}))
	require.NoError(t, mgr.Logout(ctx))

	assert.False(t, mgr.IsActive())
	assertCleared(t, backend)
	assert.Zero(t, rec.alertCount())
	assert.Equal(t, "/mypage", loc.CurrentPath())
}

func TestMonitor_TickExpiringSoon(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	mgr, backend, rec, _ := newManager(t, "/cart", session.WithExpiryBuffer(0))

	require.NoError(t, mgr.Store().Save(ctx, session.Credentials{Token: tokenExpiringAt(t, now.Add(10*time.Second))}))

	assert.Equal(t, session.StatusExpiringSoon, mgr.Monitor().Tick(ctx))
	assert.Equal(t, session.StatusExpiringSoon, mgr.Monitor().Tick(ctx))
	assert.Equal(t, 1, rec.bannerCount())
	assert.True(t, rec.BannerVisible())

	_, err := backend.Get(ctx, session.TokenKey)
	assert.NoError(t, err)
}

func TestMonitor_TickExpiredTearsDown(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	mgr, backend, rec, loc := newManager(t, "/cart")

	require.NoError(t, mgr.Login(ctx, session.Credentials{
		Token: tokenExpiringAt(t, now.Add(-time.Hour)),
		Email: "kim@example.com",
		User:  &session.User{Name: "Kim"},
	}))
	rec.ShowBanner(ctx, "stale", time.Minute)

	assert.Equal(t, session.StatusExpired, mgr.Monitor().Tick(ctx))

	assertCleared(t, backend)
	assert.False(t, mgr.IsActive())
	assert.False(t, rec.BannerVisible())
	assert.Equal(t, 1, rec.alertCount())
	assert.Equal(t, "/login", loc.CurrentPath())

	assert.Equal(t, session.StatusAbsent, mgr.Monitor().Tick(ctx))
	assert.Equal(t, 1, rec.alertCount())
}

func TestMonitor_TickAbsentDoesNothing(t *testing.T) {
	t.Parallel()
	mgr, _, rec, loc := newManager(t, "/cart")

	assert.Equal(t, session.StatusAbsent, mgr.Monitor().Tick(context.Background()))
	assert.Zero(t, rec.alertCount())
	assert.Zero(t, rec.bannerCount())
	assert.Equal(t, "/cart", loc.CurrentPath())
}

func TestManager_ExpireOnLoginPage(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	mgr, backend, rec, loc := newManager(t, "/signin", session.WithLoginPath("/signin"))

	require.NoError(t, mgr.Store().Save(ctx, session.Credentials{Token: "a.b.c", Email: "kim@example.com"}))
	require.NoError(t, mgr.Expire(ctx))

	assertCleared(t, backend)
	assert.Zero(t, rec.alertCount())
	assert.Empty(t, loc.History())
}

func TestManager_Authorize(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	mgr, _, _, _ := newManager(t, "/")

	_, err := mgr.Authorize(ctx)
	assert.ErrorIs(t, err, session.ErrMissingToken)

	tok := tokenExpiringAt(t, now.Add(time.Hour))
	require.NoError(t, mgr.Store().Save(ctx, session.Credentials{Token: tok}))
	got, err := mgr.Authorize(ctx)
	require.NoError(t, err)
	assert.Equal(t, tok, got)
}

func TestMonitor_LoopExpiresSession(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	backend := storage.NewMemory()
	rec := &recorder{}
	loc := notify.NewLocation("/orders")

	mgr, err := session.NewManager(backend, rec, loc, session.WithCheckInterval(5*time.Millisecond))
	require.NoError(t, err)
	defer mgr.Stop()

	require.NoError(t, mgr.Login(ctx, session.Credentials{
		Token: tokenExpiringAt(t, time.Now().Add(-time.Minute)),
		Email: "kim@example.com",
	}))

	require.Eventually(t, func() bool { return loc.CurrentPath() == "/login" }, time.Second, 5*time.Millisecond)
	require.Eventually(t, func() bool { return !mgr.IsActive() }, time.Second, 5*time.Millisecond)
	assertCleared(t, backend)
	assert.Equal(t, 1, rec.alertCount())
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()
	cfg := session.DefaultConfig()
	cfg.LoginPath = "/auth"

	mgr, err := session.NewFromConfig(cfg, storage.NewMemory(), &recorder{}, notify.NewLocation("/"))
	require.NoError(t, err)
	assert.Equal(t, "/auth", mgr.LoginPath())
}

func TestNewFromConfigZeroBuffer(t *testing.T) {
	t.Parallel()
	cfg := session.DefaultConfig()
	cfg.ExpiryBuffer = 0

	mgr, err := session.NewFromConfig(cfg, storage.NewMemory(), &recorder{}, notify.NewLocation("/"), session.WithClock(clock))
	require.NoError(t, err)

	tok := tokenExpiringAt(t, now.Add(10*time.Second))
	assert.Equal(t, session.StatusExpiringSoon, mgr.Store().Check(tok, now))
}

func TestNewFromConfigDefaultBuffer(t *testing.T) {
	t.Parallel()
	mgr, err := session.NewFromConfig(session.DefaultConfig(), storage.NewMemory(), &recorder{}, notify.NewLocation("/"))
	require.NoError(t, err)

	tok := tokenExpiringAt(t, now.Add(10*time.Second))
	assert.Equal(t, session.StatusExpired, mgr.Store().Check(tok, now))
}

// syncBuffer guards log output written by the monitor.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) records(t *testing.T) []map[string]any {
	t.Helper()
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(b.buf.String()), "\n") {
		if line == "" {
			continue
		}
		var rec map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &rec))
		out = append(out, rec)
	}
	return out
}

func findRecord(recs []map[string]any, msg string) map[string]any {
	for _, r := range recs {
		if r["msg"] == msg {
			return r
		}
	}
	return nil
}

func TestMonitor_TickLogsExpiry(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	out := &syncBuffer{}
	log := slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: slog.LevelDebug}))

	mgr, _, _, _ := newManager(t, "/cart", session.WithExpiryBuffer(0), session.WithLogger(log))

	soon := now.Add(10 * time.Second)
	require.NoError(t, mgr.Store().Save(ctx, session.Credentials{Token: tokenExpiringAt(t, soon)}))
	require.Equal(t, session.StatusExpiringSoon, mgr.Monitor().Tick(ctx))

	past := now.Add(-time.Hour)
	require.NoError(t, mgr.Store().Save(ctx, session.Credentials{Token: tokenExpiringAt(t, past)}))
	require.Equal(t, session.StatusExpired, mgr.Monitor().Tick(ctx))

	recs := out.records(t)
	expiring := findRecord(recs, "session token expires soon")
	require.NotNil(t, expiring)
	assertInstant(t, soon, expiring["expires_at"])

	expired := findRecord(recs, "session token expired")
	require.NotNil(t, expired)
	assertInstant(t, past, expired["expires_at"])
}

func assertInstant(t *testing.T, want time.Time, got any) {
	t.Helper()
	s, ok := got.(string)
	require.True(t, ok, "expires_at missing")
	parsed, err := time.Parse(time.RFC3339Nano, s)
	require.NoError(t, err)
	assert.True(t, want.Equal(parsed), "want %s, got %s", want, parsed)
}
