package main

import (
	"errors"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/storefront/core/config"
)

// cli carries the writers and the lazily built app shared by all subcommands.
type cli struct {
	out    io.Writer
	errOut io.Writer
	app    *app
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	c := &cli{out: out, errOut: errOut}
	var envFiles []string

	root := &cobra.Command{
		Use:           "storefront",
		Short:         "Storefront terminal client",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			config.SetEnvFiles(envFiles...)
			a, err := newApp(cmd.Context(), c.out, c.errOut)
			if err != nil {
				return err
			}
			c.app = a
			return nil
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return c.closeApp()
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)
	root.PersistentFlags().StringSliceVar(&envFiles, "env-file", []string{".env"}, "env files to load before reading configuration")

	root.AddCommand(
		c.cartCmd(),
		c.wishlistCmd(),
		c.loginCmd(),
		c.logoutCmd(),
		c.whoamiCmd(),
		c.watchCmd(),
		c.productsCmd(),
		c.ordersCmd(),
		c.checkoutCmd(),
		c.reportCmd(),
		c.healthCmd(),
	)
	c.closeOnError(root)
	return root
}

func (c *cli) closeApp() error {
	if c.app == nil {
		return nil
	}
	err := c.app.Close()
	c.app = nil
	return err
}

// closeOnError makes every command release the app when RunE fails,
// since cobra skips the post-run hooks in that case.
func (c *cli) closeOnError(cmd *cobra.Command) {
	if run := cmd.RunE; run != nil {
		cmd.RunE = func(cmd *cobra.Command, args []string) error {
			if err := run(cmd, args); err != nil {
				return errors.Join(err, c.closeApp())
			}
			return nil
		}
	}
	for _, sub := range cmd.Commands() {
		c.closeOnError(sub)
	}
}

func parseID(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}
