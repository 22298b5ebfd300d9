package app

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dwikikusuma/storefront/internal/catalog/domain"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

const suggestLimit = 5

// Service is the catalog store. It is not safe for concurrent use; the
// storefront controller serialises access.
type Service struct {
	products []domain.Product
	now      Clock
}

func NewService(now Clock) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{now: now}
}

// Restore replaces the whole collection, keeping the given order.
func (s *Service) Restore(products []domain.Product) {
	s.products = make([]domain.Product, 0, len(products))
	for _, p := range products {
		s.products = append(s.products, p.Clone())
	}
}

func (s *Service) Add(d domain.Draft) (domain.Product, error) {
	p := domain.Product{
		Name:          strings.TrimSpace(d.Name),
		Brand:         strings.TrimSpace(d.Brand),
		Category:      d.Category,
		Price:         d.Price,
		OriginalPrice: d.OriginalPrice,
		Rating:        d.Rating,
		Reviews:       d.Reviews,
		Images:        nonBlank(d.Images),
		Description:   d.Description,
		Stock:         d.Stock,
		IsAssured:     d.IsAssured,
	}
	if p.Category == "" {
		p.Category = domain.CategoryShoes
	}
	if d.Discount != nil {
		price, err := domain.PriceFromDiscount(p.OriginalPrice, *d.Discount)
		if err != nil {
			return domain.Product{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		p.Price = price
	}
	if err := validate(p); err != nil {
		return domain.Product{}, err
	}

	p.ID = s.nextID()
	s.products = append([]domain.Product{p}, s.products...)
	return p.Clone(), nil
}

// Replace swaps the product with the same id for p.
func (s *Service) Replace(p domain.Product) (domain.Product, error) {
	p.Name = strings.TrimSpace(p.Name)
	p.Brand = strings.TrimSpace(p.Brand)
	p.Images = nonBlank(p.Images)
	if err := validate(p); err != nil {
		return domain.Product{}, err
	}

	i := s.indexOf(p.ID)
	if i < 0 {
		return domain.Product{}, fmt.Errorf("%w: product %q", ErrNotFound, p.ID)
	}
	s.products[i] = p.Clone()
	return p.Clone(), nil
}

// Remove deletes by id and reports whether anything was removed.
func (s *Service) Remove(id string) bool {
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.products = append(s.products[:i], s.products[i+1:]...)
	return true
}

func (s *Service) Get(id string) (domain.Product, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return domain.Product{}, false
	}
	return s.products[i].Clone(), true
}

func (s *Service) List() []domain.Product {
	out := make([]domain.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, p.Clone())
	}
	return out
}

func (s *Service) Len() int { return len(s.products) }

// Search filters by name, brand and category. A blank query returns the
// full catalog; otherwise the query is matched as typed, spaces included.
func (s *Service) Search(query string) []domain.Product {
	if strings.TrimSpace(query) == "" {
		return s.List()
	}
	return s.filter(strings.ToLower(query), 0)
}

// Suggest is the type-ahead helper: Search capped to five hits, nothing for
// a blank query.
func (s *Service) Suggest(query string) []domain.Product {
	if strings.TrimSpace(query) == "" {
		return nil
	}
	return s.filter(strings.ToLower(query), suggestLimit)
}

type CategoryCount struct {
	Category domain.Category `json:"category"`
	Count    int             `json:"count"`
}

func (s *Service) CountByCategory() []CategoryCount {
	counts := make(map[domain.Category]int, len(domain.Categories))
	for _, p := range s.products {
		counts[p.Category]++
	}
	out := make([]CategoryCount, 0, len(domain.Categories))
	for _, c := range domain.Categories {
		out = append(out, CategoryCount{Category: c, Count: counts[c]})
	}
	return out
}

func (s *Service) filter(needle string, limit int) []domain.Product {
	out := make([]domain.Product, 0)
	for _, p := range s.products {
		if !p.Matches(needle) {
			continue
		}
		out = append(out, p.Clone())
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

func (s *Service) indexOf(id string) int {
	for i, p := range s.products {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// nextID derives P-<unix millis>, stepping forward until unused.
func (s *Service) nextID() string {
	ms := s.now().UnixMilli()
	for {
		id := "P-" + strconv.FormatInt(ms, 10)
		if s.indexOf(id) < 0 {
			return id
		}
		ms++
	}
}

func validate(p domain.Product) error {
	switch {
	case p.Name == "":
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	case p.Brand == "":
		return fmt.Errorf("%w: brand is required", ErrInvalidInput)
	case len(p.Images) == 0:
		return fmt.Errorf("%w: at least one image is required", ErrInvalidInput)
	case !p.Category.Valid():
		return fmt.Errorf("%w: unknown category %q", ErrInvalidInput, p.Category)
	case p.Price < 0 || p.OriginalPrice < 0:
		return fmt.Errorf("%w: prices cannot be negative", ErrInvalidInput)
	case p.Stock < 0:
		return fmt.Errorf("%w: stock cannot be negative", ErrInvalidInput)
	}
	return nil
}

func nonBlank(images []string) []string {
	out := make([]string, 0, len(images))
	for _, img := range images {
		if img = strings.TrimSpace(img); img != "" {
			out = append(out, img)
		}
	}
	return out
}
