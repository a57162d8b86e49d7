package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/dmitrymomot/storefront/core/api"
	"github.com/dmitrymomot/storefront/core/cart"
	"github.com/dmitrymomot/storefront/core/config"
	"github.com/dmitrymomot/storefront/core/health"
	"github.com/dmitrymomot/storefront/core/logger"
	"github.com/dmitrymomot/storefront/core/notify"
	"github.com/dmitrymomot/storefront/core/session"
	"github.com/dmitrymomot/storefront/core/storage"
	"github.com/dmitrymomot/storefront/core/wishlist"
	"github.com/dmitrymomot/storefront/integration/database/pg"
	"github.com/dmitrymomot/storefront/integration/database/redis"
	"github.com/dmitrymomot/storefront/integration/database/sqlite"
)

const serviceName = "storefront"

// ErrUnknownDriver is returned for an unsupported STORAGE_DRIVER value.
var ErrUnknownDriver = errors.New("unknown storage driver")

type appConfig struct {
	Env           string `env:"APP_ENV" envDefault:"development"`
	LogLevel      string `env:"LOG_LEVEL" envDefault:"warn"`
	StorageDriver string `env:"STORAGE_DRIVER" envDefault:"sqlite"`
}

// app holds the wired components of one CLI invocation.
type app struct {
	cfg      appConfig
	log      *slog.Logger
	out      io.Writer
	console  *notify.Console
	location *notify.Location
	session  *session.Manager
	client   *api.Client
	cart     *cart.Cart
	wishlist *wishlist.Wishlist
	checks   []health.Check
	closers  []func() error
}

func newApp(ctx context.Context, out, errOut io.Writer) (*app, error) {
	var cfg appConfig
	if err := config.Load(&cfg); err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, out: out, log: newLogger(cfg, errOut)}

	backend, closer, ping, err := openStorage(ctx, cfg.StorageDriver, a.log)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, closer)
	a.checks = append(a.checks, health.Check{Name: "storage:" + cfg.StorageDriver, Fn: ping})

	a.console = notify.NewConsole(notify.WithWriter(errOut), notify.WithConsoleLogger(a.log))
	a.location = notify.NewLocation("/")

	var sessCfg session.Config
	if err := config.Load(&sessCfg); err != nil {
		return nil, errors.Join(err, a.Close())
	}
	a.session, err = session.NewFromConfig(sessCfg, backend, a.console, a.location, session.WithLogger(a.log))
	if err != nil {
		return nil, errors.Join(err, a.Close())
	}

	var apiCfg api.Config
	if err := config.Load(&apiCfg); err != nil {
		return nil, errors.Join(err, a.Close())
	}
	a.client, err = api.NewFromConfig(apiCfg,
		api.WithAuthorizer(a.session),
		api.WithNotifier(a.console),
		api.WithLogger(a.log),
	)
	if err != nil {
		return nil, errors.Join(err, a.Close())
	}
	a.checks = append(a.checks, health.Check{Name: "api", Fn: a.client.Ping})

	if a.cart, err = cart.New(backend, cart.WithLogger(a.log)); err != nil {
		return nil, errors.Join(err, a.Close())
	}
	if a.wishlist, err = wishlist.New(backend, a.log); err != nil {
		return nil, errors.Join(err, a.Close())
	}
	return a, nil
}

// Close stops the session monitor and releases the storage backend.
func (a *app) Close() error {
	if a.session != nil {
		a.session.Stop()
	}
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func newLogger(cfg appConfig, w io.Writer) *slog.Logger {
	opts := []logger.Option{logger.WithOutput(w)}
	if strings.EqualFold(cfg.Env, "production") {
		opts = append(opts, logger.WithProduction(serviceName))
	} else {
		opts = append(opts, logger.WithTextFormatter(), logger.WithAttr(slog.String("service", serviceName)))
	}
	opts = append(opts, logger.WithLevel(logger.ParseLevel(cfg.LogLevel)))
	return logger.New(opts...)
}

// openStorage returns the backend, its closer and its readiness probe.
func openStorage(ctx context.Context, driver string, log *slog.Logger) (storage.Storage, func() error, func(context.Context) error, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "memory":
		return storage.NewMemory(), func() error { return nil }, func(context.Context) error { return nil }, nil

	case "sqlite":
		var cfg sqlite.Config
		if err := config.Load(&cfg); err != nil {
			return nil, nil, nil, err
		}
		db, err := sqlite.Open(ctx, cfg)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := sqlite.Migrate(ctx, db, log); err != nil {
			return nil, nil, nil, errors.Join(err, db.Close())
		}
		return sqlite.NewStorage(db, cfg.Namespace), db.Close, db.PingContext, nil

	case "redis":
		var cfg redis.Config
		if err := config.Load(&cfg); err != nil {
			return nil, nil, nil, err
		}
		client, err := redis.Connect(ctx, cfg)
		if err != nil {
			return nil, nil, nil, err
		}
		return redis.NewStorageFromConfig(client, cfg), client.Close, redis.Healthcheck(client), nil

	case "postgres", "pg":
		var cfg pg.Config
		if err := config.Load(&cfg); err != nil {
			return nil, nil, nil, err
		}
		pool, err := pg.Connect(ctx, cfg)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := pg.Migrate(ctx, pool, cfg, log); err != nil {
			pool.Close()
			return nil, nil, nil, err
		}
		return pg.NewStorage(pool, cfg.Namespace), func() error { pool.Close(); return nil }, pg.Healthcheck(pool), nil

	default:
		return nil, nil, nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}
}
