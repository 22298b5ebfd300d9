package app

import catalogdomain "github.com/dwikikusuma/storefront/internal/catalog/domain"

// ProductReader gives the cart live access to catalog prices.
type ProductReader interface {
	Get(id string) (catalogdomain.Product, bool)
}
