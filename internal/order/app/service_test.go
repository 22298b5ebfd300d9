package app

import (
	"context"
	"errors"
	"testing"
	"time"

	catalogdomain "github.com/dwikikusuma/storefront/internal/catalog/domain"
	"github.com/dwikikusuma/storefront/internal/order/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var at = time.Date(2026, 10, 15, 9, 30, 0, 123456789, time.UTC)

func clockAt(t time.Time) Clock { return func() time.Time { return t } }

func shoe() catalogdomain.Product {
	return catalogdomain.Product{ID: "1", Name: "Nike Air Max Pulse", Brand: "Nike", Category: catalogdomain.CategoryShoes, Price: 10400, Images: []string{"a"}}
}

func TestCreateOrderValidation(t *testing.T) {
	svc := NewService(clockAt(at))
	ctx := context.Background()

	t.Run("no items -> invalid", func(t *testing.T) {
		_, err := svc.CreateOrder(ctx, domain.CreateOrderRequest{})
		if !errors.Is(err, ErrInvalidOrder) {
			t.Fatalf("expected ErrInvalidOrder, got %v", err)
		}
	})

	t.Run("zero quantity -> invalid", func(t *testing.T) {
		_, err := svc.CreateOrder(ctx, domain.CreateOrderRequest{
			Items: []domain.OrderItemRequest{{Product: shoe(), Quantity: 0}},
		})
		if !errors.Is(err, ErrInvalidOrder) {
			t.Fatalf("expected ErrInvalidOrder, got %v", err)
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := svc.CreateOrder(cctx, domain.CreateOrderRequest{
			Items: []domain.OrderItemRequest{{Product: shoe(), Quantity: 1}},
		})
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	})

	if svc.Len() != 0 {
		t.Fatalf("ledger must stay empty, got %d", svc.Len())
	}
}

func TestCreateOrder(t *testing.T) {
	svc := NewService(clockAt(at))

	p := shoe()
	o, err := svc.CreateOrder(context.Background(), domain.CreateOrderRequest{
		Items:           []domain.OrderItemRequest{{Product: p, Quantity: 2}},
		ShippingAddress: "B, C - 000001. Recipient: A ()",
	})
	require.NoError(t, err)

	assert.Equal(t, "MJR-600123", o.ID) // unix millis 1792056600123
	assert.Equal(t, domain.GuestUserID, o.UserID)
	assert.Equal(t, domain.StatusPlaced, o.Status)
	assert.Equal(t, int64(20800), o.TotalAmount)
	assert.Equal(t, at, o.CreatedAt)

	// the request's product must not alias the stored order
	p.Images[0] = "changed"
	got, err := svc.Get(o.ID)
	require.NoError(t, err)
	assert.Equal(t, "a", got.Items[0].Product.Images[0])
}

func TestOrderIDsUniqueWithinSession(t *testing.T) {
	svc := NewService(clockAt(at))
	req := domain.CreateOrderRequest{Items: []domain.OrderItemRequest{{Product: shoe(), Quantity: 1}}}

	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		o, err := svc.CreateOrder(context.Background(), req)
		require.NoError(t, err)
		require.False(t, seen[o.ID], "duplicate id %s", o.ID)
		seen[o.ID] = true
	}
}

func TestLedgerOrderingAndAggregate(t *testing.T) {
	svc := NewService(clockAt(at))
	ctx := context.Background()

	watch := shoe()
	watch.ID, watch.Category, watch.Price = "3", catalogdomain.CategoryWatches, 31900

	first, err := svc.CreateOrder(ctx, domain.CreateOrderRequest{UserID: "cust-1", Items: []domain.OrderItemRequest{{Product: shoe(), Quantity: 1}}})
	require.NoError(t, err)
	second, err := svc.CreateOrder(ctx, domain.CreateOrderRequest{UserID: "cust-1", Items: []domain.OrderItemRequest{{Product: watch, Quantity: 1}}})
	require.NoError(t, err)

	list := svc.List()
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)

	assert.Equal(t, domain.Aggregate{Revenue: 42300, Count: 2}, svc.Aggregate())
	assert.Equal(t, catalogdomain.CategoryWatches, svc.LastPurchasedCategory(catalogdomain.CategoryShoes))
	assert.Len(t, svc.Recent(1), 1)
	assert.Len(t, svc.Recent(10), 2)

	_, err = svc.Get("MJR-nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLastPurchasedCategoryFallback(t *testing.T) {
	svc := NewService(nil)
	assert.Equal(t, catalogdomain.CategoryShoes, svc.LastPurchasedCategory(catalogdomain.CategoryShoes))
}
