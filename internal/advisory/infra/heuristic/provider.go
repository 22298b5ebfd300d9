package heuristic

import (
	"context"
	"fmt"
	"sort"
	"strings"

	catalogdomain "github.com/dwikikusuma/storefront/internal/catalog/domain"
	orderdomain "github.com/dwikikusuma/storefront/internal/order/domain"
)

const maxRecommendations = 4

// Provider is a local stand-in for the hosted text model: deterministic,
// instant, and good enough to exercise the advisory views offline.
type Provider struct{}

func New() *Provider { return &Provider{} }

// Recommend picks the best rated products of the category, most reviewed
// first on ties.
func (Provider) Recommend(ctx context.Context, category catalogdomain.Category, catalog []catalogdomain.Product) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var picks []catalogdomain.Product
	for _, p := range catalog {
		if p.Category == category {
			picks = append(picks, p)
		}
	}
	sort.SliceStable(picks, func(i, j int) bool {
		if picks[i].Rating != picks[j].Rating {
			return picks[i].Rating > picks[j].Rating
		}
		return picks[i].Reviews > picks[j].Reviews
	})
	if len(picks) > maxRecommendations {
		picks = picks[:maxRecommendations]
	}
	ids := make([]string, 0, len(picks))
	for _, p := range picks {
		ids = append(ids, p.ID)
	}
	return ids, nil
}

func (Provider) SummarizeSales(ctx context.Context, orders []orderdomain.Order) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(orders) == 0 {
		return "No orders yet. Feature assured products on the marketplace to get the first sale moving.", nil
	}

	var revenue int64
	units := map[catalogdomain.Category]int{}
	for _, o := range orders {
		revenue += o.TotalAmount
		for _, it := range o.Items {
			units[it.Product.Category] += it.Quantity
		}
	}

	best, bestUnits := catalogdomain.Category(""), 0
	for _, c := range catalogdomain.Categories {
		if units[c] > bestUnits {
			best, bestUnits = c, units[c]
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d orders worth ₹%d so far, averaging ₹%d per order.", len(orders), revenue, revenue/int64(len(orders)))
	if best != "" {
		fmt.Fprintf(&b, " %s leads with %d units sold; keep it well stocked.", best, bestUnits)
	}
	return b.String(), nil
}
