package domain

import (
	"time"

	cartdomain "github.com/dwikikusuma/storefront/internal/cart/domain"
	catalogdomain "github.com/dwikikusuma/storefront/internal/catalog/domain"
)

type Status string

const (
	StatusPlaced    Status = "Order Placed"
	StatusPacked    Status = "Packed"
	StatusShipped   Status = "Shipped"
	StatusDelivered Status = "Delivered"
	StatusCancelled Status = "Cancelled"
)

const GuestUserID = "guest"

// Order is immutable once created. Items are deep copies of the cart at
// placement time.
type Order struct {
	ID              string                `json:"id"`
	UserID          string                `json:"userId"`
	Items           []cartdomain.CartItem `json:"items"`
	TotalAmount     int64                 `json:"totalAmount"`
	Status          Status                `json:"status"`
	CreatedAt       time.Time             `json:"createdAt"`
	ShippingAddress string                `json:"shippingAddress"`
}

// Clone returns a copy sharing no slices with o.
func (o Order) Clone() Order {
	cp := o
	cp.Items = make([]cartdomain.CartItem, len(o.Items))
	for i, it := range o.Items {
		cp.Items[i] = cartdomain.CartItem{Product: it.Product.Clone(), Quantity: it.Quantity}
	}
	return cp
}

type CreateOrderRequest struct {
	UserID          string
	Items           []OrderItemRequest
	ShippingAddress string
}

type OrderItemRequest struct {
	Product  catalogdomain.Product
	Quantity int
}

type Aggregate struct {
	Revenue int64 `json:"revenue"`
	Count   int   `json:"count"`
}
