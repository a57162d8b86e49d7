package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/storefront/core/logger"
	"github.com/dmitrymomot/storefront/core/session"
	"github.com/dmitrymomot/storefront/core/storage"
)

func (c *cli) loginCmd() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if password == "" {
				password = os.Getenv("STOREFRONT_PASSWORD")
			}
			if strings.TrimSpace(email) == "" || password == "" {
				return errors.New("email and password are required")
			}

			res, err := c.app.client.Login(ctx, email, password)
			if err != nil {
				return err
			}
			if err := c.app.session.Login(ctx, res.Credentials()); err != nil {
				return err
			}
			fmt.Fprintf(c.out, "logged in as %s\n", res.Email)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password (or STOREFRONT_PASSWORD)")
	return cmd
}

func (c *cli) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and clear the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if _, err := c.app.session.Authorize(ctx); err == nil {
				if err := c.app.client.Logout(ctx); err != nil {
					c.app.log.WarnContext(ctx, "server logout failed", logger.Error(err))
				}
			}
			if err := c.app.session.Logout(ctx); err != nil {
				return err
			}
			fmt.Fprintln(c.out, "logged out")
			return nil
		},
	}
}

func (c *cli) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			store := c.app.session.Store()

			status, err := store.Status(ctx)
			if err != nil {
				return err
			}
			if status == session.StatusAbsent {
				fmt.Fprintln(c.out, "not logged in")
				return nil
			}

			email, err := store.Email(ctx)
			if err != nil && !errors.Is(err, storage.ErrNotFound) {
				return err
			}
			fmt.Fprintf(c.out, "email:  %s\n", email)
			fmt.Fprintf(c.out, "status: %s\n", status)
			if exp, err := store.ExpiresAt(ctx); err == nil {
				fmt.Fprintf(c.out, "expires: %s (%s)\n", exp.Format(time.RFC3339), time.Until(exp).Round(time.Second))
			}
			if u, err := store.User(ctx); err == nil && u != nil {
				fmt.Fprintf(c.out, "name:   %s\n", u.Name)
				if u.Admin() {
					fmt.Fprintln(c.out, "role:   admin")
				}
			}
			return nil
		},
	}
}

func (c *cli) watchCmd() *cobra.Command {
	var poll time.Duration
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Monitor the session token until it expires or the command is interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			mgr := c.app.session

			switch mgr.Monitor().Tick(ctx) {
			case session.StatusAbsent:
				fmt.Fprintln(c.out, "not logged in")
				return nil
			case session.StatusExpired:
				fmt.Fprintln(c.out, "session ended")
				return nil
			}

			mgr.Start(ctx)
			defer mgr.Stop()

			t := time.NewTicker(poll)
			defer t.Stop()
			for {
				select {
				case <-ctx.Done():
					return nil
				case <-t.C:
					if !mgr.IsActive() {
						fmt.Fprintln(c.out, "session ended")
						return nil
					}
				}
			}
		},
	}
	cmd.Flags().DurationVar(&poll, "poll", time.Second, "how often to check whether the monitor is still running")
	return cmd
}
