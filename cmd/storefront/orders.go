package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/storefront/core/api"
)

func (c *cli) ordersCmd() *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "List orders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			var (
				orders []api.Order
				err    error
			)
			if all {
				orders, err = c.app.client.ListOrders(ctx)
			} else {
				orders, err = c.app.client.MyOrders(ctx)
			}
			if err != nil {
				return err
			}
			if len(orders) == 0 {
				fmt.Fprintln(c.out, "no orders")
				return nil
			}

			tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tDATE\tSTATUS\tITEMS\tTOTAL\tTRACKING")
			for _, o := range orders {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\t%s\n",
					o.ID, o.OrderDate, o.Status, len(o.Items), o.TotalAmount, o.Shipping.TrackingNumber)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "list every order (admin)")

	status := &cobra.Command{
		Use:   "status <order-id> <status>",
		Short: "Change the status of an order (admin)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			st, err := api.ParseOrderStatus(args[1])
			if err != nil {
				return fmt.Errorf("%w: choose one of %v", err, api.OrderStatuses)
			}
			if err := c.app.client.UpdateOrderStatus(cmd.Context(), id, st); err != nil {
				return err
			}
			fmt.Fprintf(c.out, "order %d is %s\n", id, st)
			return nil
		},
	}
	cmd.AddCommand(status)
	return cmd
}

func (c *cli) checkoutCmd() *cobra.Command {
	var ship api.ShippingInfo
	cmd := &cobra.Command{
		Use:   "checkout",
		Short: "Sync the cart to the server and place an order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			lines := api.LinesFromCart(c.app.cart.Items(ctx))
			if len(lines) == 0 {
				return api.ErrEmptyOrder
			}

			if !ship.Complete() {
				email, err := c.app.session.Store().Email(ctx)
				if err != nil {
					return errors.Join(api.ErrIncompleteShipping, err)
				}
				profile, err := c.app.client.FetchUserProfile(ctx, email)
				if err != nil {
					return err
				}
				ship = mergeShipping(ship, api.ShippingFromUser(profile.User))
			}

			order, err := c.app.client.Checkout(ctx, lines, ship)
			if err != nil {
				return err
			}
			if err := c.app.cart.Clear(ctx); err != nil {
				return err
			}
			fmt.Fprintf(c.out, "order %d placed (%s)\n", order.ID, order.Status)
			return nil
		},
	}
	cmd.Flags().StringVar(&ship.RecipientName, "name", "", "recipient name (defaults to profile)")
	cmd.Flags().StringVar(&ship.RecipientAddr, "address", "", "delivery address (defaults to profile)")
	cmd.Flags().StringVar(&ship.RecipientPhone, "phone", "", "recipient phone (defaults to profile)")
	cmd.Flags().StringVar(&ship.ShippingCompany, "carrier", api.DefaultShippingCompany, "shipping company")
	return cmd
}

// mergeShipping fills empty fields of flags from profile.
func mergeShipping(flags, profile api.ShippingInfo) api.ShippingInfo {
	if flags.RecipientName == "" {
		flags.RecipientName = profile.RecipientName
	}
	if flags.RecipientAddr == "" {
		flags.RecipientAddr = profile.RecipientAddr
	}
	if flags.RecipientPhone == "" {
		flags.RecipientPhone = profile.RecipientPhone
	}
	return flags
}
