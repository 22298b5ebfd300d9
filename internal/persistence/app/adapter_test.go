package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	cartdomain "github.com/dwikikusuma/storefront/internal/cart/domain"
	catalogdomain "github.com/dwikikusuma/storefront/internal/catalog/domain"
	orderdomain "github.com/dwikikusuma/storefront/internal/order/domain"
	"github.com/dwikikusuma/storefront/internal/persistence/app"
	"github.com/dwikikusuma/storefront/internal/persistence/infra/memkv"
	"github.com/dwikikusuma/storefront/internal/persistence/seed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type brokenKV struct {
	getErr, putErr error
}

func (b brokenKV) Get(context.Context, string) ([]byte, bool, error) { return nil, false, b.getErr }
func (b brokenKV) Put(context.Context, string, []byte) error          { return b.putErr }

func TestLoadSeedsEmptyStore(t *testing.T) {
	ctx := context.Background()
	kv := memkv.New()
	a := app.NewAdapter(kv, seed.Products(), nil)

	got := a.Load(ctx)
	assert.True(t, got.Seeded)
	assert.False(t, got.Degraded)
	assert.Len(t, got.Products, 5)
	assert.Empty(t, got.Orders)

	_, found, err := kv.Get(ctx, app.KeyProducts)
	require.NoError(t, err)
	assert.True(t, found, "seed must be persisted immediately")

	again := a.Load(ctx)
	assert.False(t, again.Seeded)
	assert.Equal(t, got.Products, again.Products)
}

func TestLoadFallsBackOnCorruptData(t *testing.T) {
	ctx := context.Background()
	kv := memkv.New()
	require.NoError(t, kv.Put(ctx, app.KeyProducts, []byte("{not json")))
	require.NoError(t, kv.Put(ctx, app.KeyOrders, []byte("[{")))

	got := app.NewAdapter(kv, seed.Products(), nil).Load(ctx)
	assert.True(t, got.Seeded)
	assert.False(t, got.Degraded)
	assert.Len(t, got.Products, 5)
	assert.Empty(t, got.Orders)
}

func TestLoadFailsOpenWhenStorageIsDown(t *testing.T) {
	got := app.NewAdapter(brokenKV{getErr: errors.New("quota exceeded")}, seed.Products(), nil).Load(context.Background())
	assert.True(t, got.Degraded)
	assert.True(t, got.Seeded)
	assert.Len(t, got.Products, 5)
}

func TestLoadDegradedWhenSeedCannotBeWritten(t *testing.T) {
	got := app.NewAdapter(brokenKV{putErr: errors.New("read only")}, seed.Products(), nil).Load(context.Background())
	assert.True(t, got.Degraded)
	assert.Len(t, got.Products, 5)
}

func TestSaveReportsErrors(t *testing.T) {
	a := app.NewAdapter(brokenKV{putErr: errors.New("disk full")}, nil, nil)
	err := a.Save(context.Background(), nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "save products")
	assert.Contains(t, err.Error(), "save orders")
}

func TestRoundTripIsLossless(t *testing.T) {
	ctx := context.Background()
	kv := memkv.New()
	a := app.NewAdapter(kv, seed.Products(), nil)

	products := seed.Products()
	products = append([]catalogdomain.Product{{
		ID: "P-1", Name: "Buds", Brand: "Sony", Category: catalogdomain.CategoryElectronics,
		Price: 999, OriginalPrice: 1299, Rating: 4.25, Reviews: 3, Images: []string{"x", "y"},
		Description: "quoted \"text\" and ₹", Stock: 0,
	}}, products...)
	orders := []orderdomain.Order{{
		ID:              "MJR-123456",
		UserID:          "cust-1",
		Items:           []cartdomain.CartItem{{Product: products[1], Quantity: 3}},
		TotalAmount:     3 * products[1].Price,
		Status:          orderdomain.StatusPlaced,
		CreatedAt:       time.Date(2026, 10, 15, 9, 30, 0, 987654321, time.UTC),
		ShippingAddress: "B, C - 000001. Recipient: A (99)",
	}}

	require.NoError(t, a.Save(ctx, products, orders))

	got := a.Load(ctx)
	assert.False(t, got.Seeded)
	assert.Equal(t, products, got.Products)
	assert.Equal(t, orders, got.Orders)
}

func TestSaveEmptyLists(t *testing.T) {
	ctx := context.Background()
	kv := memkv.New()
	a := app.NewAdapter(kv, seed.Products(), nil)

	require.NoError(t, a.Save(ctx, nil, nil))
	raw, _, _ := kv.Get(ctx, app.KeyProducts)
	assert.Equal(t, "[]", string(raw))

	got := a.Load(ctx)
	assert.False(t, got.Seeded, "an empty catalog is a valid saved state")
	assert.Empty(t, got.Products)
}
