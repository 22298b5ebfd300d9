package app

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	cartdomain "github.com/dwikikusuma/storefront/internal/cart/domain"
	catalogdomain "github.com/dwikikusuma/storefront/internal/catalog/domain"
	"github.com/dwikikusuma/storefront/internal/order/domain"
)

var (
	ErrInvalidOrder = errors.New("invalid order")
	ErrNotFound     = errors.New("order not found")
)

const idSuffixMod = 1_000_000

// Service is the order ledger: most recent order first, append only.
type Service struct {
	orders []domain.Order
	now    Clock
}

func NewService(now Clock) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{now: now}
}

func (s *Service) Restore(orders []domain.Order) {
	s.orders = make([]domain.Order, 0, len(orders))
	for _, o := range orders {
		s.orders = append(s.orders, o.Clone())
	}
}

func (s *Service) CreateOrder(ctx context.Context, req domain.CreateOrderRequest) (domain.Order, error) {
	if err := ctx.Err(); err != nil {
		return domain.Order{}, err
	}
	if len(req.Items) == 0 {
		return domain.Order{}, fmt.Errorf("%w: items must not be empty", ErrInvalidOrder)
	}

	items := make([]cartdomain.CartItem, 0, len(req.Items))
	var total int64
	for i, it := range req.Items {
		if it.Quantity <= 0 {
			return domain.Order{}, fmt.Errorf("%w: item %d: quantity must be positive, got %d", ErrInvalidOrder, i, it.Quantity)
		}
		if it.Product.Price < 0 {
			return domain.Order{}, fmt.Errorf("%w: item %d: price cannot be negative, got %d", ErrInvalidOrder, i, it.Product.Price)
		}
		items = append(items, cartdomain.CartItem{Product: it.Product.Clone(), Quantity: it.Quantity})
		total += it.Product.Price * int64(it.Quantity)
	}

	userID := strings.TrimSpace(req.UserID)
	if userID == "" {
		userID = domain.GuestUserID
	}

	now := s.now().UTC().Round(0)
	order := domain.Order{
		ID:              s.nextID(now),
		UserID:          userID,
		Items:           items,
		TotalAmount:     total,
		Status:          domain.StatusPlaced,
		CreatedAt:       now,
		ShippingAddress: req.ShippingAddress,
	}
	s.orders = append([]domain.Order{order}, s.orders...)
	return order.Clone(), nil
}

func (s *Service) List() []domain.Order {
	out := make([]domain.Order, 0, len(s.orders))
	for _, o := range s.orders {
		out = append(out, o.Clone())
	}
	return out
}

// Recent returns at most n orders, newest first.
func (s *Service) Recent(n int) []domain.Order {
	if n > len(s.orders) {
		n = len(s.orders)
	}
	out := make([]domain.Order, 0, n)
	for _, o := range s.orders[:n] {
		out = append(out, o.Clone())
	}
	return out
}

func (s *Service) Get(id string) (domain.Order, error) {
	for _, o := range s.orders {
		if o.ID == id {
			return o.Clone(), nil
		}
	}
	return domain.Order{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

func (s *Service) Len() int { return len(s.orders) }

// Aggregate is recomputed on every call.
func (s *Service) Aggregate() domain.Aggregate {
	agg := domain.Aggregate{Count: len(s.orders)}
	for _, o := range s.orders {
		agg.Revenue += o.TotalAmount
	}
	return agg
}

// LastPurchasedCategory is the category of the first item of the newest order.
func (s *Service) LastPurchasedCategory(fallback catalogdomain.Category) catalogdomain.Category {
	if len(s.orders) == 0 || len(s.orders[0].Items) == 0 {
		return fallback
	}
	if c := s.orders[0].Items[0].Product.Category; c != "" {
		return c
	}
	return fallback
}

// nextID derives MJR-<last six digits of unix millis>, stepping forward until
// unused within the ledger.
func (s *Service) nextID(at time.Time) string {
	suffix := at.UnixMilli() % idSuffixMod
	for i := 0; i < idSuffixMod; i++ {
		id := fmt.Sprintf("MJR-%06d", suffix)
		if !s.exists(id) {
			return id
		}
		suffix = (suffix + 1) % idSuffixMod
	}
	// every six digit suffix is taken; fall back to the full timestamp
	return "MJR-" + strconv.FormatInt(at.UnixNano(), 10)
}

func (s *Service) exists(id string) bool {
	for _, o := range s.orders {
		if o.ID == id {
			return true
		}
	}
	return false
}
