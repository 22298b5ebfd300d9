package app

import (
	"context"
	"errors"
	"fmt"

	cartdomain "github.com/dwikikusuma/storefront/internal/cart/domain"
	"github.com/dwikikusuma/storefront/internal/checkout/domain"
	orderdomain "github.com/dwikikusuma/storefront/internal/order/domain"
)

type CartReader interface {
	Lines() []cartdomain.Line
	Clear()
}

type OrderPlacer interface {
	PlaceOrder(ctx context.Context, req orderdomain.CreateOrderRequest) (orderdomain.Order, error)
}

var (
	ErrEmptyCart         = errors.New("cart is empty")
	ErrInvalidAddress    = errors.New("please enter a valid royal address")
	ErrInvalidPayment    = errors.New("unknown payment method")
	ErrInvalidTransition = errors.New("invalid checkout transition")
)

type Options struct {
	// Strict applies the placement address rule at the address->payment gate too.
	Strict bool
}

// Service is the checkout state machine: cart -> address -> payment -> placed.
// Failed transitions never change state.
type Service struct {
	Cart   CartReader
	Orders OrderPlacer

	strict  bool
	step    domain.Step
	address domain.ShippingAddress
	payment domain.PaymentMethod
}

func NewService(cart CartReader, orders OrderPlacer, opts Options) *Service {
	return &Service{
		Cart:    cart,
		Orders:  orders,
		strict:  opts.Strict,
		step:    domain.StepCart,
		payment: domain.PaymentCOD,
	}
}

func (s *Service) State() domain.State {
	return domain.State{Step: s.step, Address: s.address, Payment: s.payment}
}

func (s *Service) Step() domain.Step { return s.step }

// Reset returns to the cart step. Called whenever the flow is (re)entered.
func (s *Service) Reset() { s.step = domain.StepCart }

func (s *Service) ProceedToAddress() error {
	if s.step != domain.StepCart {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s.step, domain.StepAddress)
	}
	if len(s.Cart.Lines()) == 0 {
		return ErrEmptyCart
	}
	s.step = domain.StepAddress
	return nil
}

func (s *Service) UpdateAddress(addr domain.ShippingAddress) {
	s.address = addr
}

func (s *Service) ProceedToPayment() error {
	if s.step != domain.StepAddress {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s.step, domain.StepPayment)
	}
	ok := s.address.ReadyForPayment()
	if s.strict {
		ok = s.address.Deliverable()
	}
	if !ok {
		return ErrInvalidAddress
	}
	s.step = domain.StepPayment
	return nil
}

func (s *Service) SelectPayment(m domain.PaymentMethod) error {
	if !m.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidPayment, m)
	}
	s.payment = m
	return nil
}

// PlaceOrder freezes the cart into an order, clears the cart and resets the
// flow for the next session. The address belongs to this session only and is
// cleared with it.
func (s *Service) PlaceOrder(ctx context.Context, userID string) (orderdomain.Order, error) {
	if s.step != domain.StepPayment {
		return orderdomain.Order{}, fmt.Errorf("%w: %s -> placed", ErrInvalidTransition, s.step)
	}
	lines := s.Cart.Lines()
	if len(lines) == 0 {
		return orderdomain.Order{}, ErrEmptyCart
	}
	if !s.address.Deliverable() {
		return orderdomain.Order{}, ErrInvalidAddress
	}
	if !s.payment.Valid() {
		return orderdomain.Order{}, ErrInvalidPayment
	}

	items := make([]orderdomain.OrderItemRequest, 0, len(lines))
	for _, ln := range lines {
		items = append(items, orderdomain.OrderItemRequest{Product: ln.Product, Quantity: ln.Quantity})
	}

	order, err := s.Orders.PlaceOrder(ctx, orderdomain.CreateOrderRequest{
		UserID:          userID,
		Items:           items,
		ShippingAddress: s.address.String(),
	})
	if err != nil {
		return orderdomain.Order{}, fmt.Errorf("place order: %w", err)
	}

	s.Cart.Clear()
	s.step = domain.StepCart
	s.address = domain.ShippingAddress{}
	return order, nil
}
