package cart

import (
	"strconv"
	"time"

	"github.com/dmitrymomot/storefront/pkg/money"
)

// Item is one cart line. At most one Item exists per Key.
type Item struct {
	ProductID int64       `json:"id"`
	Size      string      `json:"size,omitempty"`
	Title     string      `json:"title"`
	Image     string      `json:"image"`
	Price     money.Price `json:"price"`
	Quantity  int         `json:"quantity"`
	AddedAt   time.Time   `json:"addedAt"`
}

// Key identifies a cart line: the product and its size variant.
type Key struct {
	ProductID int64
	Size      string
}

// String renders the key as "<id>-<size>".
func (k Key) String() string {
	return strconv.FormatInt(k.ProductID, 10) + "-" + k.Size
}

// Key returns the identity of the item.
func (i Item) Key() Key {
	return Key{ProductID: i.ProductID, Size: i.Size}
}

// Subtotal returns unit price times quantity.
func (i Item) Subtotal() int64 {
	return i.Price.Amount() * int64(i.Quantity)
}
