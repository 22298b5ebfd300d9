package domain

import catalogdomain "github.com/dwikikusuma/storefront/internal/catalog/domain"

// CartItem pairs a product with a quantity. The product is the one seen when
// the item was first added; prices are re-read from the catalog on display.
type CartItem struct {
	Product  catalogdomain.Product `json:"product"`
	Quantity int                   `json:"quantity"`
}

// Line is a cart item resolved against the current catalog.
type Line struct {
	Product   catalogdomain.Product `json:"product"`
	Quantity  int                   `json:"quantity"`
	UnitPrice int64                 `json:"unitPrice"`
	LineTotal int64                 `json:"lineTotal"`
	// Orphaned is set when the product no longer exists in the catalog.
	Orphaned bool `json:"orphaned,omitempty"`
}

type Cart struct {
	Lines []Line `json:"lines"`
	Total int64  `json:"total"`
	Count int    `json:"count"`
}
