package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/storefront/core/health"
)

// ErrNotReady is returned when a dependency check fails.
var ErrNotReady = errors.New("not ready")

func (c *cli) healthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check the storage backend and the API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			report := health.Run(cmd.Context(), c.app.log, c.app.checks...)
			for _, r := range report {
				state := "ok"
				if !r.OK() {
					state = "FAIL: " + r.Err.Error()
				}
				fmt.Fprintf(c.out, "%-16s %-8s %s\n", r.Name, r.Elapsed.Round(time.Millisecond), state)
			}
			if !report.Ready() {
				return ErrNotReady
			}
			return nil
		},
	}
}
