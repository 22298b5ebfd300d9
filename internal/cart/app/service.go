package app

import (
	"errors"
	"fmt"

	catalogdomain "github.com/dwikikusuma/storefront/internal/catalog/domain"
	"github.com/dwikikusuma/storefront/internal/cart/domain"
)

var ErrNotFound = errors.New("item not in cart")

// Service is the cart engine. Like the catalog it relies on the storefront
// controller for serialisation.
type Service struct {
	items   []domain.CartItem
	catalog ProductReader
}

func NewService(catalog ProductReader) *Service {
	return &Service{catalog: catalog}
}

// AddItem increments the existing line for p or appends a new one.
func (s *Service) AddItem(p catalogdomain.Product) {
	if i := s.indexOf(p.ID); i >= 0 {
		s.items[i].Quantity++
		return
	}
	s.items = append(s.items, domain.CartItem{Product: p.Clone(), Quantity: 1})
}

func (s *Service) RemoveItem(productID string) {
	if i := s.indexOf(productID); i >= 0 {
		s.items = append(s.items[:i], s.items[i+1:]...)
	}
}

func (s *Service) Increment(productID string) error {
	i := s.indexOf(productID)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, productID)
	}
	s.items[i].Quantity++
	return nil
}

// Decrement lowers the quantity but never below one.
func (s *Service) Decrement(productID string) error {
	i := s.indexOf(productID)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, productID)
	}
	if s.items[i].Quantity > 1 {
		s.items[i].Quantity--
	}
	return nil
}

// Lines resolves every item against the catalog so prices are current.
func (s *Service) Lines() []domain.Line {
	out := make([]domain.Line, 0, len(s.items))
	for _, it := range s.items {
		p, ok := s.catalog.Get(it.Product.ID)
		if !ok {
			p = it.Product.Clone()
		}
		out = append(out, domain.Line{
			Product:   p,
			Quantity:  it.Quantity,
			UnitPrice: p.Price,
			LineTotal: p.Price * int64(it.Quantity),
			Orphaned:  !ok,
		})
	}
	return out
}

func (s *Service) Total() int64 {
	var total int64
	for _, ln := range s.Lines() {
		total += ln.LineTotal
	}
	return total
}

func (s *Service) Snapshot() domain.Cart {
	lines := s.Lines()
	c := domain.Cart{Lines: lines}
	for _, ln := range lines {
		c.Total += ln.LineTotal
		c.Count += ln.Quantity
	}
	return c
}

// Prune drops items whose product has left the catalog and returns their ids.
func (s *Service) Prune() []string {
	var dropped []string
	kept := s.items[:0]
	for _, it := range s.items {
		if _, ok := s.catalog.Get(it.Product.ID); ok {
			kept = append(kept, it)
			continue
		}
		dropped = append(dropped, it.Product.ID)
	}
	s.items = kept
	return dropped
}

func (s *Service) Clear() { s.items = nil }

func (s *Service) Len() int { return len(s.items) }

func (s *Service) Empty() bool { return len(s.items) == 0 }

func (s *Service) indexOf(productID string) int {
	for i, it := range s.items {
		if it.Product.ID == productID {
			return i
		}
	}
	return -1
}
