// Package cart implements the shopping cart on top of a persisted list.
//
// Lines are unique per (product, size). Adding an existing line increments its
// quantity; setting a quantity to zero or less removes the line, so no line is
// ever persisted with a non-positive quantity.
package cart

import (
	"context"
	"log/slog"
	"time"

	"github.com/dmitrymomot/storefront/core/liststore"
	"github.com/dmitrymomot/storefront/core/logger"
	"github.com/dmitrymomot/storefront/core/storage"
	"github.com/dmitrymomot/storefront/pkg/money"
)

// StorageKey is the slot the cart is persisted under.
const StorageKey = "jikgumate_cart"

// DefaultShippingFee is the flat fee added to every non-empty order summary.
const DefaultShippingFee int64 = 3000

// Cart is a persisted shopping cart.
type Cart struct {
	list        *liststore.Store[Item]
	now         func() time.Time
	shippingFee int64
	logger      *slog.Logger
}

// Option configures a Cart.
type Option func(*Cart)

// WithClock overrides the time source used to stamp new lines.
func WithClock(now func() time.Time) Option {
	return func(c *Cart) {
		if now != nil {
			c.now = now
		}
	}
}

// WithShippingFee overrides the flat shipping fee used by Summary.
func WithShippingFee(fee int64) Option {
	return func(c *Cart) {
		if fee >= 0 {
			c.shippingFee = fee
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Cart) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates a cart persisted in backend under StorageKey.
func New(backend storage.Storage, opts ...Option) (*Cart, error) {
	c := &Cart{
		now:         time.Now,
		shippingFee: DefaultShippingFee,
		logger:      logger.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}

	list, err := liststore.New(backend, StorageKey, func(i Item) string { return i.Key().String() },
		liststore.WithLogger(c.logger))
	if err != nil {
		return nil, err
	}
	c.list = list
	return c, nil
}

// Items returns the cart lines in insertion order.
func (c *Cart) Items(ctx context.Context) []Item {
	return c.list.Load(ctx)
}

// Add puts quantity units of item into the cart. Quantities below 1 count as 1.
// An existing line with the same key is incremented instead of duplicated;
// a new line is stamped with the current time.
func (c *Cart) Add(ctx context.Context, item Item, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}
	key := item.Key()

	return c.list.Update(ctx, func(items []Item) []Item {
		for i := range items {
			if items[i].Key() == key {
				items[i].Quantity += quantity
				return items
			}
		}
		item.Quantity = quantity
		item.AddedAt = c.now()
		return append(items, item)
	})
}

// Remove drops the line with the given key.
func (c *Cart) Remove(ctx context.Context, key Key) error {
	return c.list.Remove(ctx, key.String())
}

// UpdateQuantity overwrites the quantity of a line. A quantity of zero or less
// removes the line. Unknown keys are ignored.
func (c *Cart) UpdateQuantity(ctx context.Context, key Key, quantity int) error {
	if quantity <= 0 {
		return c.Remove(ctx, key)
	}

	items := c.list.Load(ctx)
	for i := range items {
		if items[i].Key() == key {
			items[i].Quantity = quantity
			return c.list.Save(ctx, items)
		}
	}
	return nil
}

// Clear empties the cart.
func (c *Cart) Clear(ctx context.Context) error {
	return c.list.Clear(ctx)
}

// Contains reports whether a line with the given key exists.
func (c *Cart) Contains(ctx context.Context, key Key) bool {
	return c.list.Contains(ctx, key.String())
}

// Total sums price times quantity over all lines. Unparseable prices count as 0.
func (c *Cart) Total(ctx context.Context) int64 {
	return total(c.list.Load(ctx))
}

// Count sums the quantities of all lines.
func (c *Cart) Count(ctx context.Context) int {
	n := 0
	for _, item := range c.list.Load(ctx) {
		n += item.Quantity
	}
	return n
}

// Summary is the checkout breakdown of the cart.
type Summary struct {
	Lines       int
	Units       int
	Subtotal    int64
	ShippingFee int64
	Total       int64
}

// Display returns the amounts formatted for the storefront.
func (s Summary) Display() (subtotal, shipping, total string) {
	return money.Won.Format(s.Subtotal), money.Won.Format(s.ShippingFee), money.Won.Format(s.Total)
}

// Summary computes the order breakdown. An empty cart has no shipping fee.
func (c *Cart) Summary(ctx context.Context) Summary {
	items := c.list.Load(ctx)

	s := Summary{Lines: len(items), Subtotal: total(items)}
	for _, item := range items {
		s.Units += item.Quantity
	}
	if len(items) > 0 {
		s.ShippingFee = c.shippingFee
	}
	s.Total = s.Subtotal + s.ShippingFee
	return s
}

func total(items []Item) int64 {
	var sum int64
	for _, item := range items {
		sum += item.Subtotal()
	}
	return sum
}
