package health_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/storefront/core/health"
)

func TestRun(t *testing.T) {
	t.Parallel()

	down := errors.New("connection refused")
	var ran []string

	report := health.Run(context.Background(), nil,
		health.Check{Name: "storage", Fn: func(context.Context) error {
			ran = append(ran, "storage")
			return down
		}},
		health.Check{Name: "api", Fn: func(context.Context) error {
			ran = append(ran, "api")
			return nil
		}},
	)

	require.Len(t, report, 2)
	assert.Equal(t, []string{"storage", "api"}, ran)
	assert.False(t, report.Ready())
	assert.False(t, report[0].OK())
	assert.True(t, report[1].OK())
	assert.ErrorIs(t, report.Err(), down)
}

func TestRunEmpty(t *testing.T) {
	t.Parallel()

	report := health.Run(context.Background(), nil)
	assert.True(t, report.Ready())
	assert.NoError(t, report.Err())
}

func TestRunTimeout(t *testing.T) {
	t.Parallel()

	report := health.Run(context.Background(), nil, health.Check{
		Name:    "slow",
		Timeout: 10 * time.Millisecond,
		Fn: func(ctx context.Context) error {
			<-ctx.Done()
			return ctx.Err()
		},
	})
	require.Len(t, report, 1)
	assert.ErrorIs(t, report[0].Err, context.DeadlineExceeded)
}

func TestRunMissingFunc(t *testing.T) {
	t.Parallel()

	report := health.Run(context.Background(), nil, health.Check{Name: "nothing"})
	assert.ErrorIs(t, report.Err(), health.ErrNoCheckFunc)
}
