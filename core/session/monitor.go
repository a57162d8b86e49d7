package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/dmitrymomot/storefront/core/logger"
	"github.com/dmitrymomot/storefront/core/notify"
)

// Monitor periodically checks the stored token.
// Expiring tokens raise a warning banner; expired tokens call the expire hook.
type Monitor struct {
	store    *Store
	notifier notify.Notifier
	expire   func(context.Context) error
	interval time.Duration
	ttl      time.Duration
	logger   *slog.Logger

	startMu sync.Mutex
	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
}

func newMonitor(store *Store, notifier notify.Notifier, expire func(context.Context) error, o options) *Monitor {
	return &Monitor{
		store:    store,
		notifier: notifier,
		expire:   expire,
		interval: o.cfg.CheckInterval,
		ttl:      o.cfg.BannerTTL,
		logger:   o.logger,
	}
}

// Start launches the check loop. A running loop is stopped first.
// The loop ends when Stop is called or ctx is done.
func (m *Monitor) Start(ctx context.Context) {
	m.startMu.Lock()
	defer m.startMu.Unlock()

	m.Stop()

	loopCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	m.mu.Lock()
	m.cancel = cancel
	m.done = done
	m.mu.Unlock()

	go m.run(loopCtx, done)

	m.logger.DebugContext(ctx, "session monitor started", logger.Duration(m.interval))
}

func (m *Monitor) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Tick(ctx)
		}
	}
}

// Stop ends the loop and waits for it to exit. Stopping an idle monitor is a no-op.
func (m *Monitor) Stop() {
	done := m.halt()
	if done != nil {
		<-done
	}
}

// halt cancels the loop without waiting, so it is safe to call from inside a tick.
func (m *Monitor) halt() <-chan struct{} {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	done := m.done
	m.done = nil
	return done
}

// IsActive reports whether the loop is running.
func (m *Monitor) IsActive() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cancel == nil || m.done == nil {
		return false
	}
	select {
	case <-m.done:
		return false
	default:
		return true
	}
}

// Tick evaluates the stored token once and acts on the result.
func (m *Monitor) Tick(ctx context.Context) Status {
	status, err := m.store.Status(ctx)
	if err != nil {
		m.logger.ErrorContext(ctx, "failed to read session token", logger.Error(err))
		return status
	}

	switch status {
	case StatusExpired:
		exp, _ := m.store.ExpiresAt(ctx)
		m.logger.InfoContext(ctx, "session token expired", logger.Event("session.expired"), logger.ExpiresAt(exp))
		if err := m.expire(ctx); err != nil {
			m.logger.ErrorContext(ctx, "session teardown incomplete", logger.Error(err))
		}
	case StatusExpiringSoon:
		if !m.notifier.BannerVisible() {
			exp, _ := m.store.ExpiresAt(ctx)
			m.logger.InfoContext(ctx, "session token expires soon", logger.Event("session.expiring"), logger.ExpiresAt(exp))
			m.notifier.ShowBanner(ctx, ExpiringMessage, m.ttl)
		}
	}
	return status
}
