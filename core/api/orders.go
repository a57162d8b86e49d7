package api

import (
	"context"
	"net/http"
	"strconv"
)

// AddCartItem adds quantity units of a product to the server-side cart.
func (c *Client) AddCartItem(ctx context.Context, productID int64, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	return c.do(ctx, http.MethodPost, "/carts/items", nil,
		WithAuth(),
		WithJSON(OrderLine{ProductID: productID, Quantity: quantity}),
	)
}

// UpdateCartItem sets the quantity of a product in the server-side cart.
// Sending the same quantity twice is harmless.
func (c *Client) UpdateCartItem(ctx context.Context, productID int64, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	return c.do(ctx, http.MethodPatch, "/carts/items/"+strconv.FormatInt(productID, 10), nil,
		WithAuth(),
		WithJSON(map[string]int{"quantity": quantity}),
	)
}

// ListOrders returns every order. Admin only.
func (c *Client) ListOrders(ctx context.Context) ([]Order, error) {
	var orders []Order
	if err := c.do(ctx, http.MethodGet, "/orders", &orders, WithAuth()); err != nil {
		return nil, err
	}
	return orders, nil
}

// MyOrders returns the orders of the signed-in user.
func (c *Client) MyOrders(ctx context.Context) ([]Order, error) {
	var orders []Order
	if err := c.do(ctx, http.MethodGet, "/orders/my", &orders, WithAuth()); err != nil {
		return nil, err
	}
	return orders, nil
}

// CreateOrder places an order.
func (c *Client) CreateOrder(ctx context.Context, req CreateOrderRequest) (*Order, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptyOrder
	}
	if !req.Shipping.Complete() {
		return nil, ErrIncompleteShipping
	}
	var o Order
	if err := c.do(ctx, http.MethodPost, "/orders", &o, WithAuth(), WithJSON(req)); err != nil {
		return nil, err
	}
	return &o, nil
}

// UpdateOrderStatus moves an order to status. Admin only.
func (c *Client) UpdateOrderStatus(ctx context.Context, orderID int64, status OrderStatus) error {
	if !status.Valid() {
		return ErrInvalidStatus
	}
	path := "/orders/" + strconv.FormatInt(orderID, 10) + "/status"
	return c.do(ctx, http.MethodPatch, path, nil,
		WithAuth(),
		WithJSON(map[string]OrderStatus{"status": status}),
	)
}

// SubmitReport sends a customer enquiry.
func (c *Client) SubmitReport(ctx context.Context, r Report) error {
	return c.do(ctx, http.MethodPost, "/reports", nil, WithAuth(), WithJSON(r))
}
