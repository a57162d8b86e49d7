package session

import (
	"log/slog"
	"time"
)

const (
	// DefaultLoginPath is the view users are sent to after their session expires.
	DefaultLoginPath = "/login"

	// ExpiredMessage is shown once when a session is torn down.
	ExpiredMessage = "Your session has expired. Please log in again."
	// ExpiringMessage is the text of the warning banner.
	ExpiringMessage = "Your session expires soon. Log in again to keep working."
)

// Config holds session timing configuration.
type Config struct {
	CheckInterval time.Duration `env:"SESSION_CHECK_INTERVAL" envDefault:"30s"`
	ExpiryBuffer  time.Duration `env:"SESSION_EXPIRY_BUFFER" envDefault:"30s"`
	WarningWindow time.Duration `env:"SESSION_WARNING_WINDOW" envDefault:"5m"`
	BannerTTL     time.Duration `env:"SESSION_BANNER_TTL" envDefault:"10s"`
	LoginPath     string        `env:"SESSION_LOGIN_PATH" envDefault:"/login"`
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		CheckInterval: 30 * time.Second,
		ExpiryBuffer:  30 * time.Second,
		WarningWindow: 5 * time.Minute,
		BannerTTL:     10 * time.Second,
		LoginPath:     DefaultLoginPath,
	}
}

type options struct {
	cfg    Config
	logger *slog.Logger
	now    func() time.Time
}

// Option configures a Store or Manager.
type Option func(*options)

// WithConfig replaces the whole configuration. Zero durations and an empty login
// path keep their defaults, except ExpiryBuffer, where zero disables the buffer.
// A negative ExpiryBuffer keeps the default.
func WithConfig(cfg Config) Option {
	return func(o *options) {
		if cfg.CheckInterval > 0 {
			o.cfg.CheckInterval = cfg.CheckInterval
		}
		if cfg.ExpiryBuffer >= 0 {
			o.cfg.ExpiryBuffer = cfg.ExpiryBuffer
		}
		if cfg.WarningWindow > 0 {
			o.cfg.WarningWindow = cfg.WarningWindow
		}
		if cfg.BannerTTL > 0 {
			o.cfg.BannerTTL = cfg.BannerTTL
		}
		if cfg.LoginPath != "" {
			o.cfg.LoginPath = cfg.LoginPath
		}
	}
}

// WithCheckInterval sets how often the monitor inspects the token.
func WithCheckInterval(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.cfg.CheckInterval = d
		}
	}
}

// WithExpiryBuffer sets how long before the real expiry a token already counts as expired.
func WithExpiryBuffer(d time.Duration) Option {
	return func(o *options) {
		if d >= 0 {
			o.cfg.ExpiryBuffer = d
		}
	}
}

// WithWarningWindow sets how long before expiry the warning banner appears.
func WithWarningWindow(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.cfg.WarningWindow = d
		}
	}
}

// WithBannerTTL sets how long the warning banner stays visible.
func WithBannerTTL(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.cfg.BannerTTL = d
		}
	}
}

// WithLoginPath sets the login view path.
func WithLoginPath(path string) Option {
	return func(o *options) {
		if path != "" {
			o.cfg.LoginPath = path
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}
