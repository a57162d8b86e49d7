package notify

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/dmitrymomot/storefront/core/logger"
)

// Console writes alerts and banners to a terminal.
type Console struct {
	mu     sync.Mutex
	out    io.Writer
	logger *slog.Logger
	banner *time.Timer
}

// ConsoleOption configures a Console.
type ConsoleOption func(*Console)

// WithWriter sets the destination of rendered messages.
func WithWriter(w io.Writer) ConsoleOption {
	return func(c *Console) {
		if w != nil {
			c.out = w
		}
	}
}

// WithConsoleLogger sets the logger.
func WithConsoleLogger(l *slog.Logger) ConsoleOption {
	return func(c *Console) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewConsole creates a Console writing to stderr.
func NewConsole(opts ...ConsoleOption) *Console {
	c := &Console{out: os.Stderr, logger: logger.Discard()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Console) Alert(ctx context.Context, level Level, message string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	fmt.Fprintf(c.out, "[%s] %s\n", level, message)
	c.logger.InfoContext(ctx, "alert shown", logger.Key("level", string(level)), slog.String("message", message))
}

func (c *Console) ShowBanner(ctx context.Context, message string, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.banner != nil {
		return
	}

	fmt.Fprintf(c.out, "[banner] %s\n", message)
	c.logger.InfoContext(ctx, "banner shown", logger.Duration(ttl))

	var t *time.Timer
	t = time.AfterFunc(ttl, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.banner == t {
			c.banner = nil
		}
	})
	c.banner = t
}

func (c *Console) DismissBanner(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.banner == nil {
		return
	}
	c.banner.Stop()
	c.banner = nil
	c.logger.DebugContext(ctx, "banner dismissed")
}

func (c *Console) BannerVisible() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.banner != nil
}

// Location is an in-memory Navigator.
type Location struct {
	mu      sync.RWMutex
	path    string
	history []string
}

// NewLocation creates a Location starting at path.
func NewLocation(path string) *Location {
	return &Location{path: path}
}

func (l *Location) CurrentPath() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.path
}

func (l *Location) Redirect(_ context.Context, path string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.history = append(l.history, l.path)
	l.path = path
}

// History returns the paths visited before the current one.
func (l *Location) History() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]string(nil), l.history...)
}
