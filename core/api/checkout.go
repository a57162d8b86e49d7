package api

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/storefront/core/cart"
	"github.com/dmitrymomot/storefront/core/logger"
)

// DefaultShippingCompany is the carrier used when none is given.
const DefaultShippingCompany = "CJ대한통운"

// LinesFromCart converts cart items into order lines.
// Sizes of the same product are merged because the backend orders by product.
func LinesFromCart(items []cart.Item) []OrderLine {
	lines := make([]OrderLine, 0, len(items))
	index := make(map[int64]int, len(items))
	for _, it := range items {
		if it.Quantity < 1 {
			continue
		}
		if i, ok := index[it.ProductID]; ok {
			lines[i].Quantity += it.Quantity
			continue
		}
		index[it.ProductID] = len(lines)
		lines = append(lines, OrderLine{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	return lines
}

// Checkout syncs every line's quantity to the server cart and then places the order.
// All sync requests run concurrently and are awaited; the first failure aborts the
// checkout. Updates that already succeeded are left in place.
func (c *Client) Checkout(ctx context.Context, lines []OrderLine, shipping ShippingInfo) (*Order, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyOrder
	}
	if !shipping.Complete() {
		return nil, ErrIncompleteShipping
	}
	for _, l := range lines {
		if l.Quantity < 1 {
			return nil, fmt.Errorf("%w: product %d", ErrInvalidQuantity, l.ProductID)
		}
	}

	var g errgroup.Group
	for _, l := range lines {
		g.Go(func() error {
			if err := c.UpdateCartItem(ctx, l.ProductID, l.Quantity); err != nil {
				return fmt.Errorf("sync product %d: %w", l.ProductID, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		c.logger.ErrorContext(ctx, "checkout aborted", logger.Error(err))
		return nil, err
	}

	if shipping.ShippingCompany == "" {
		shipping.ShippingCompany = DefaultShippingCompany
	}
	if shipping.TrackingNumber == "" {
		shipping.TrackingNumber = uuid.NewString()
	}

	order, err := c.CreateOrder(ctx, CreateOrderRequest{Items: lines, Shipping: shipping})
	if err != nil {
		return nil, err
	}

	c.logger.InfoContext(ctx, "order placed",
		logger.Count("lines", len(lines)), logger.Key("order_id", order.ID))
	return order, nil
}
