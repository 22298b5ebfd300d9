package app

import (
	"context"

	catalogdomain "github.com/dwikikusuma/storefront/internal/catalog/domain"
	orderdomain "github.com/dwikikusuma/storefront/internal/order/domain"
)

// Recommender returns product ids worth showing for a category. Providers may
// be slow, fail, or never answer.
type Recommender interface {
	Recommend(ctx context.Context, category catalogdomain.Category, catalog []catalogdomain.Product) ([]string, error)
}

type Summarizer interface {
	SummarizeSales(ctx context.Context, orders []orderdomain.Order) (string, error)
}
