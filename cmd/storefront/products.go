package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/storefront/core/api"
)

func (c *cli) productsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "products",
		Short: "Browse the catalogue",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List all products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			products, err := c.app.client.ListProducts(cmd.Context())
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tTITLE\tPRICE")
			for _, p := range products {
				fmt.Fprintf(tw, "%d\t%s\t%s\n", p.ID, p.Title, p.Price)
			}
			return tw.Flush()
		},
	}

	show := &cobra.Command{
		Use:   "show <product-id>",
		Short: "Show one product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			p, err := c.app.client.GetProduct(cmd.Context(), id)
			if err != nil {
				return err
			}
			c.printProduct(p)
			return nil
		},
	}

	analyze := &cobra.Command{
		Use:   "analyze <url>",
		Short: "Import a product from an external shop page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := c.app.client.AnalyzeProduct(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			c.printProduct(p)
			return nil
		},
	}

	remove := &cobra.Command{
		Use:   "delete <product-id>",
		Short: "Delete a product (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return c.app.client.DeleteProduct(cmd.Context(), id)
		},
	}

	cmd.AddCommand(list, show, analyze, remove)
	return cmd
}

func (c *cli) printProduct(p *api.Product) {
	fmt.Fprintf(c.out, "id:    %d\n", p.ID)
	fmt.Fprintf(c.out, "title: %s\n", p.Title)
	fmt.Fprintf(c.out, "price: %s\n", p.Price)
	if p.ImageURL != "" {
		fmt.Fprintf(c.out, "image: %s\n", p.ImageURL)
	}
	if p.OriginalURL != "" {
		fmt.Fprintf(c.out, "url:   %s\n", p.OriginalURL)
	}
}

func (c *cli) reportCmd() *cobra.Command {
	var r api.Report
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Send a question to the shop",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if r.Email == "" {
				r.Email, _ = c.app.session.Store().Email(ctx)
			}
			if err := c.app.client.SubmitReport(ctx, r); err != nil {
				return err
			}
			fmt.Fprintln(c.out, "report sent")
			return nil
		},
	}
	cmd.Flags().StringVar(&r.Title, "title", "", "subject")
	cmd.Flags().StringVar(&r.Content, "content", "", "message")
	cmd.Flags().StringVar(&r.Email, "email", "", "reply address (defaults to the session email)")
	cmd.Flags().StringVar(&r.RecipientEmail, "to", "", "recipient address")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("content")
	return cmd
}
