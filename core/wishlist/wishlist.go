// Package wishlist keeps the set of products a shopper has liked.
package wishlist

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/dmitrymomot/storefront/core/liststore"
	"github.com/dmitrymomot/storefront/core/logger"
	"github.com/dmitrymomot/storefront/core/storage"
)

// StorageKey is the slot the wishlist is persisted under.
const StorageKey = "jikgumate_wishlist"

// Item is a liked product. Membership is keyed by ProductID.
type Item struct {
	ProductID int64  `json:"id"`
	Title     string `json:"title"`
	Image     string `json:"image"`
	Price     string `json:"price"`
}

// Wishlist is a persisted membership set of products.
type Wishlist struct {
	list   *liststore.Store[Item]
	logger *slog.Logger
}

// New creates a wishlist persisted in backend under StorageKey.
func New(backend storage.Storage, log *slog.Logger) (*Wishlist, error) {
	if log == nil {
		log = logger.Discard()
	}
	list, err := liststore.New(backend, StorageKey, func(i Item) string { return key(i.ProductID) },
		liststore.WithLogger(log))
	if err != nil {
		return nil, err
	}
	return &Wishlist{list: list, logger: log}, nil
}

// Items returns the liked products in the order they were first added.
func (w *Wishlist) Items(ctx context.Context) []Item {
	return w.list.Load(ctx)
}

// Add likes item. Adding a product that is already present changes nothing.
func (w *Wishlist) Add(ctx context.Context, item Item) error {
	items := w.list.Load(ctx)
	for _, existing := range items {
		if existing.ProductID == item.ProductID {
			return nil
		}
	}
	return w.list.Save(ctx, append(items, item))
}

// Remove unlikes the product.
func (w *Wishlist) Remove(ctx context.Context, productID int64) error {
	return w.list.Remove(ctx, key(productID))
}

// Contains reports whether the product is liked.
func (w *Wishlist) Contains(ctx context.Context, productID int64) bool {
	return w.list.Contains(ctx, key(productID))
}

// Toggle flips membership of item and reports whether it is now liked.
func (w *Wishlist) Toggle(ctx context.Context, item Item) (bool, error) {
	if w.Contains(ctx, item.ProductID) {
		if err := w.Remove(ctx, item.ProductID); err != nil {
			return true, err
		}
		w.logger.DebugContext(ctx, "wishlist item removed", logger.ProductID(item.ProductID))
		return false, nil
	}

	if err := w.Add(ctx, item); err != nil {
		return false, err
	}
	w.logger.DebugContext(ctx, "wishlist item added", logger.ProductID(item.ProductID))
	return true, nil
}

// Count returns the number of liked products.
func (w *Wishlist) Count(ctx context.Context) int {
	return w.list.Len(ctx)
}

// Clear removes every liked product.
func (w *Wishlist) Clear(ctx context.Context) error {
	return w.list.Clear(ctx)
}

func key(productID int64) string {
	return strconv.FormatInt(productID, 10)
}
