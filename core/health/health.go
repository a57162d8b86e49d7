package health

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/dmitrymomot/storefront/core/logger"
)

// DefaultTimeout bounds a single check.
const DefaultTimeout = 5 * time.Second

// ErrNoCheckFunc is reported for a check without a function.
var ErrNoCheckFunc = errors.New("health: check has no function")

// Check is a named dependency probe.
type Check struct {
	Name    string
	Fn      func(context.Context) error
	Timeout time.Duration
}

// Result is the outcome of one check.
type Result struct {
	Name    string
	Err     error
	Elapsed time.Duration
}

// OK reports whether the check passed.
func (r Result) OK() bool { return r.Err == nil }

// Report holds the results in the order the checks were given.
type Report []Result

// Ready reports whether every check passed. An empty report is ready.
func (r Report) Ready() bool {
	for _, res := range r {
		if !res.OK() {
			return false
		}
	}
	return true
}

// Err joins the errors of failed checks.
func (r Report) Err() error {
	var errs []error
	for _, res := range r {
		if res.Err != nil {
			errs = append(errs, res.Err)
		}
	}
	return errors.Join(errs...)
}

// Run executes checks one after another. Every check runs even if an earlier one failed.
func Run(ctx context.Context, log *slog.Logger, checks ...Check) Report {
	if log == nil {
		log = logger.Discard()
	}

	report := make(Report, 0, len(checks))
	for _, c := range checks {
		res := Result{Name: c.Name}
		start := time.Now()
		res.Err = run(ctx, c)
		res.Elapsed = time.Since(start)

		if res.Err != nil {
			log.ErrorContext(ctx, "readiness check failed",
				logger.Component(c.Name),
				logger.Error(res.Err),
				logger.Duration(res.Elapsed),
			)
		}
		report = append(report, res)
	}
	return report
}

func run(ctx context.Context, c Check) error {
	if c.Fn == nil {
		return ErrNoCheckFunc
	}
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return c.Fn(ctx)
}
