package api

import (
	"encoding/json"
	"strings"

	"github.com/dmitrymomot/storefront/core/session"
	"github.com/dmitrymomot/storefront/pkg/money"
)

// Product is a catalogue entry. Decoding accepts the field spellings used by
// different backend endpoints: productId or id, and title, ko_name, nameKo or name.
type Product struct {
	ID          int64       `json:"productId"`
	Title       string      `json:"title"`
	NameEn      string      `json:"nameEn,omitempty"`
	Category    string      `json:"category,omitempty"`
	ImageURL    string      `json:"imageUrl,omitempty"`
	OriginalURL string      `json:"originalUrl,omitempty"`
	Price       money.Price `json:"price"`
	PriceUSD    string      `json:"priceUsd,omitempty"`
	CreatedAt   string      `json:"createdAt,omitempty"`
}

func (p *Product) UnmarshalJSON(data []byte) error {
	var w struct {
		ProductID   json.Number `json:"productId"`
		ID          json.Number `json:"id"`
		Title       string      `json:"title"`
		KoName      string      `json:"ko_name"`
		NameKo      string      `json:"nameKo"`
		Name        string      `json:"name"`
		NameEn      string      `json:"nameEn"`
		Category    string      `json:"category"`
		ImageURL    string      `json:"imageUrl"`
		Image       string      `json:"image"`
		OriginalURL string      `json:"originalUrl"`
		URL         string      `json:"url"`
		Price       money.Price `json:"price"`
		PriceUSD    json.Number `json:"priceUsd"`
		CreatedAt   string      `json:"createdAt"`
	}
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	*p = Product{
		ID:          firstInt(w.ProductID, w.ID),
		Title:       firstString(w.Title, w.KoName, w.NameKo, w.Name),
		NameEn:      w.NameEn,
		Category:    w.Category,
		ImageURL:    firstString(w.ImageURL, w.Image),
		OriginalURL: firstString(w.OriginalURL, w.URL),
		Price:       w.Price,
		PriceUSD:    w.PriceUSD.String(),
		CreatedAt:   w.CreatedAt,
	}
	return nil
}

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderPending   OrderStatus = "PENDING"
	OrderPaid      OrderStatus = "PAID"
	OrderShipped   OrderStatus = "SHIPPED"
	OrderDelivered OrderStatus = "DELIVERED"
	OrderCancelled OrderStatus = "CANCELLED"
)

// OrderStatuses lists the statuses in lifecycle order.
var OrderStatuses = []OrderStatus{OrderPending, OrderPaid, OrderShipped, OrderDelivered, OrderCancelled}

// Valid reports whether s is a known status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderPaid, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

// ParseOrderStatus accepts any letter case.
func ParseOrderStatus(s string) (OrderStatus, error) {
	st := OrderStatus(strings.ToUpper(strings.TrimSpace(s)))
	if !st.Valid() {
		return "", ErrInvalidStatus
	}
	return st, nil
}

// ShippingInfo is where an order is delivered.
type ShippingInfo struct {
	ID              int64  `json:"shippingId,omitempty"`
	OrderID         int64  `json:"orderId,omitempty"`
	RecipientName   string `json:"recipientName"`
	RecipientAddr   string `json:"recipientAddress"`
	RecipientPhone  string `json:"recipientPhone"`
	ShippingCompany string `json:"shippingCompany,omitempty"`
	TrackingNumber  string `json:"trackingNumber,omitempty"`
}

// Complete reports whether name, address and phone are all set.
func (s ShippingInfo) Complete() bool {
	return strings.TrimSpace(s.RecipientName) != "" &&
		strings.TrimSpace(s.RecipientAddr) != "" &&
		strings.TrimSpace(s.RecipientPhone) != ""
}

// ShippingFromUser builds shipping info from a stored profile.
func ShippingFromUser(u session.User) ShippingInfo {
	return ShippingInfo{
		RecipientName:  u.Name,
		RecipientAddr:  u.DefaultAddress,
		RecipientPhone: u.Phone,
	}
}

// OrderLine is one product of an order request.
type OrderLine struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

// OrderItem is one product of a placed order.
type OrderItem struct {
	ID        int64    `json:"orderItemId"`
	OrderID   int64    `json:"orderId"`
	ProductID int64    `json:"productId"`
	Quantity  int      `json:"quantity"`
	Product   *Product `json:"product,omitempty"`
}

// Order is a placed order.
type Order struct {
	ID          int64        `json:"orderId"`
	UserID      int64        `json:"userId"`
	TotalAmount json.Number  `json:"totalAmount"`
	Status      OrderStatus  `json:"status"`
	OrderDate   string       `json:"orderDate"`
	Items       []OrderItem  `json:"orderItems"`
	Shipping    ShippingInfo `json:"shippingInfo"`
}

// CreateOrderRequest is the body of POST /orders.
type CreateOrderRequest struct {
	Items    []OrderLine  `json:"items"`
	Shipping ShippingInfo `json:"shippingInfo"`
}

// LoginResult is the normalised outcome of a login call.
type LoginResult struct {
	Token string
	Email string
	User  *session.User
}

// Credentials converts the result for session.Manager.Login.
func (r LoginResult) Credentials() session.Credentials {
	return session.Credentials{Token: r.Token, Email: r.Email, User: r.User}
}

// SignupRequest is the body of POST /auth/signup.
type SignupRequest struct {
	Email          string `json:"email"`
	Password       string `json:"password"`
	Name           string `json:"name"`
	Phone          string `json:"phone,omitempty"`
	DefaultAddress string `json:"default_address,omitempty"`
}

// ProfileUpdate is the body of PATCH /users/{email}.
type ProfileUpdate struct {
	Name         string `json:"name,omitempty"`
	Email        string `json:"email,omitempty"`
	ProfileImage string `json:"profile_image,omitempty"`
}

// Report is a customer enquiry.
type Report struct {
	Title          string `json:"title"`
	Content        string `json:"content"`
	Email          string `json:"email"`
	RecipientEmail string `json:"recipientEmail,omitempty"`
}

func firstString(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstInt(vals ...json.Number) int64 {
	for _, v := range vals {
		if v == "" {
			continue
		}
		if n, err := v.Int64(); err == nil {
			return n
		}
		if f, err := v.Float64(); err == nil {
			return int64(f)
		}
	}
	return 0
}

// adminFlag maps true, 1 and "1" to 1. Anything else, null included, is 0.
func adminFlag(raw json.RawMessage) int {
	switch strings.TrimSpace(string(raw)) {
	case "true", "1", `"1"`, `"true"`:
		return 1
	}
	return 0
}
