package session

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/storefront/core/logger"
	"github.com/dmitrymomot/storefront/core/notify"
	"github.com/dmitrymomot/storefront/core/storage"
)

// Manager coordinates the session store, the expiry monitor and the user-facing side effects.
type Manager struct {
	store     *Store
	monitor   *Monitor
	notifier  notify.Notifier
	navigator notify.Navigator
	loginPath string
	logger    *slog.Logger
}

// NewManager creates a Manager persisting to backend.
func NewManager(backend storage.Storage, notifier notify.Notifier, navigator notify.Navigator, opts ...Option) (*Manager, error) {
	if backend == nil {
		return nil, ErrNilStorage
	}
	if notifier == nil || navigator == nil {
		return nil, ErrNilNotifier
	}

	o := newOptions(opts)
	m := &Manager{
		store:     newStore(backend, o),
		notifier:  notifier,
		navigator: navigator,
		loginPath: o.cfg.LoginPath,
		logger:    o.logger,
	}
	m.monitor = newMonitor(m.store, notifier, m.Expire, o)
	return m, nil
}

// NewFromConfig creates a Manager from cfg. Extra options are applied after cfg.
func NewFromConfig(cfg Config, backend storage.Storage, notifier notify.Notifier, navigator notify.Navigator, opts ...Option) (*Manager, error) {
	return NewManager(backend, notifier, navigator, append([]Option{WithConfig(cfg)}, opts...)...)
}

// Store returns the underlying store.
func (m *Manager) Store() *Store { return m.store }

// Monitor returns the expiry monitor.
func (m *Manager) Monitor() *Monitor { return m.monitor }

// LoginPath returns the path of the login view.
func (m *Manager) LoginPath() string { return m.loginPath }

// Login persists the credentials and starts monitoring.
// The monitor outlives ctx; call Logout or Stop to end it.
func (m *Manager) Login(ctx context.Context, c Credentials) error {
	if err := m.store.Save(ctx, c); err != nil {
		return err
	}
	m.monitor.Start(context.WithoutCancel(ctx))
	m.logger.InfoContext(ctx, "user logged in", logger.Email(c.Email))
	return nil
}

// Logout stops monitoring and clears the session.
func (m *Manager) Logout(ctx context.Context) error {
	m.monitor.Stop()
	m.notifier.DismissBanner(ctx)
	if err := m.store.Clear(ctx); err != nil {
		return err
	}
	m.logger.InfoContext(ctx, "user logged out")
	return nil
}

// Expire tears the session down after the token was found expired or unusable.
// The user is alerted and redirected unless already on the login view.
func (m *Manager) Expire(ctx context.Context) error {
	err := m.store.Clear(ctx)
	m.monitor.halt()
	m.notifier.DismissBanner(ctx)

	if m.navigator.CurrentPath() != m.loginPath {
		m.notifier.Alert(ctx, notify.LevelWarning, ExpiredMessage)
		m.navigator.Redirect(ctx, m.loginPath)
	}

	m.logger.InfoContext(ctx, "session expired", logger.Action("teardown"))
	return err
}

// Authorize returns a usable token or ErrMissingToken / ErrExpiredToken.
func (m *Manager) Authorize(ctx context.Context) (string, error) {
	return m.store.Authorize(ctx)
}

// Start resumes monitoring of an already stored session, e.g. after a restart.
func (m *Manager) Start(ctx context.Context) {
	m.monitor.Start(ctx)
}

// Stop ends monitoring without touching the stored session.
func (m *Manager) Stop() {
	m.monitor.Stop()
}

// IsActive reports whether the monitor is running.
func (m *Manager) IsActive() bool {
	return m.monitor.IsActive()
}
