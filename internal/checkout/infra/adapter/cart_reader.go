package adapter

import (
	cartapp "github.com/dwikikusuma/storefront/internal/cart/app"
	cartdomain "github.com/dwikikusuma/storefront/internal/cart/domain"
	checkoutapp "github.com/dwikikusuma/storefront/internal/checkout/app"
)

type CartServiceReader struct {
	svc *cartapp.Service
}

func NewCartServiceReader(svc *cartapp.Service) *CartServiceReader {
	return &CartServiceReader{svc: svc}
}

// Lines skips orphaned items so an order is never built from a product the
// catalog no longer has.
func (r *CartServiceReader) Lines() []cartdomain.Line {
	lines := r.svc.Lines()
	out := make([]cartdomain.Line, 0, len(lines))
	for _, ln := range lines {
		if ln.Orphaned {
			continue
		}
		out = append(out, ln)
	}
	return out
}

func (r *CartServiceReader) Clear() {
	r.svc.Clear()
}

var _ checkoutapp.CartReader = (*CartServiceReader)(nil)
