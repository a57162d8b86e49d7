package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/storefront/core/wishlist"
)

func (c *cli) wishlistCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wishlist",
		Short: "Manage liked products",
	}

	toggle := &cobra.Command{
		Use:   "toggle <product-id>",
		Short: "Like or unlike a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			item := wishlist.Item{ProductID: id}
			if !c.app.wishlist.Contains(ctx, id) {
				p, err := c.app.client.GetProduct(ctx, id)
				if err != nil {
					return err
				}
				item.Title, item.Image, item.Price = p.Title, p.ImageURL, p.Price.String()
			}

			added, err := c.app.wishlist.Toggle(ctx, item)
			if err != nil {
				return err
			}
			if added {
				fmt.Fprintf(c.out, "liked %d\n", id)
			} else {
				fmt.Fprintf(c.out, "unliked %d\n", id)
			}
			return nil
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "Show liked products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			items := c.app.wishlist.Items(cmd.Context())
			if len(items) == 0 {
				fmt.Fprintln(c.out, "wishlist is empty")
				return nil
			}
			for _, it := range items {
				fmt.Fprintf(c.out, "%d\t%s\t%s\n", it.ProductID, it.Title, it.Price)
			}
			return nil
		},
	}

	cmd.AddCommand(toggle, list)
	return cmd
}
