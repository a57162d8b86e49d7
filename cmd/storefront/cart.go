package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/storefront/core/cart"
)

func (c *cli) cartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Manage the local shopping cart",
	}

	var size string
	var qty int
	var syncServer bool
	add := &cobra.Command{
		Use:   "add <product-id>",
		Short: "Add a product to the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			p, err := c.app.client.GetProduct(ctx, id)
			if err != nil {
				return err
			}

			item := cart.Item{ProductID: p.ID, Size: size, Title: p.Title, Image: p.ImageURL, Price: p.Price}
			if err := c.app.cart.Add(ctx, item, qty); err != nil {
				return err
			}
			if syncServer {
				if err := c.app.client.AddCartItem(ctx, p.ID, max(qty, 1)); err != nil {
					return err
				}
			}
			fmt.Fprintf(c.out, "added %s x%d\n", p.Title, max(qty, 1))
			return nil
		},
	}
	add.Flags().StringVar(&size, "size", "", "size variant")
	add.Flags().IntVar(&qty, "qty", 1, "quantity")
	add.Flags().BoolVar(&syncServer, "sync", false, "also add the item to the server cart")

	var removeSize string
	remove := &cobra.Command{
		Use:   "remove <product-id>",
		Short: "Remove a cart line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return c.app.cart.Remove(cmd.Context(), cart.Key{ProductID: id, Size: removeSize})
		},
	}
	remove.Flags().StringVar(&removeSize, "size", "", "size variant")

	var setSize string
	set := &cobra.Command{
		Use:   "set <product-id> <quantity>",
		Short: "Set the quantity of a cart line; 0 removes it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			n, err := strconv.Atoi(args[1])
			if err != nil {
				return err
			}
			return c.app.cart.UpdateQuantity(cmd.Context(), cart.Key{ProductID: id, Size: setSize}, n)
		},
	}
	set.Flags().StringVar(&setSize, "size", "", "size variant")

	list := &cobra.Command{
		Use:   "list",
		Short: "Show the cart with totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			items := c.app.cart.Items(ctx)
			if len(items) == 0 {
				fmt.Fprintln(c.out, "cart is empty")
				return nil
			}

			tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "KEY\tTITLE\tPRICE\tQTY\tSUBTOTAL")
			for _, it := range items {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\n", it.Key(), it.Title, it.Price, it.Quantity, it.Subtotal())
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			subtotal, shipping, total := c.app.cart.Summary(ctx).Display()
			fmt.Fprintf(c.out, "subtotal %s, shipping %s, total %s\n", subtotal, shipping, total)
			return nil
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Empty the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.cart.Clear(cmd.Context())
		},
	}

	cmd.AddCommand(add, remove, set, list, clearCmd)
	return cmd
}
