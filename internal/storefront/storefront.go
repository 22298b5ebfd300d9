package storefront

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	advisoryapp "github.com/dwikikusuma/storefront/internal/advisory/app"
	cartapp "github.com/dwikikusuma/storefront/internal/cart/app"
	cartdomain "github.com/dwikikusuma/storefront/internal/cart/domain"
	catalogapp "github.com/dwikikusuma/storefront/internal/catalog/app"
	catalogdomain "github.com/dwikikusuma/storefront/internal/catalog/domain"
	checkoutapp "github.com/dwikikusuma/storefront/internal/checkout/app"
	checkoutdomain "github.com/dwikikusuma/storefront/internal/checkout/domain"
	"github.com/dwikikusuma/storefront/internal/checkout/infra/adapter"
	"github.com/dwikikusuma/storefront/internal/events"
	identitydomain "github.com/dwikikusuma/storefront/internal/identity/domain"
	"github.com/dwikikusuma/storefront/internal/metrics"
	orderapp "github.com/dwikikusuma/storefront/internal/order/app"
	orderdomain "github.com/dwikikusuma/storefront/internal/order/domain"
	persistenceapp "github.com/dwikikusuma/storefront/internal/persistence/app"
)

type View string

const (
	ViewMarketplace View = "marketplace"
	ViewCategories  View = "categories"
	ViewCart        View = "cart"
	ViewOrders      View = "orders"
	ViewDashboard   View = "dashboard"
	ViewInventory   View = "inventory"
)

func (v View) Valid() bool {
	switch v {
	case ViewMarketplace, ViewCategories, ViewCart, ViewOrders, ViewDashboard, ViewInventory:
		return true
	}
	return false
}

const (
	recentOrders     = 3
	publishTimeout   = 2 * time.Second
	fallbackCategory = catalogdomain.CategoryShoes
)

var ErrInvalidView = errors.New("unknown view")

type Deps struct {
	Store     *persistenceapp.Adapter
	Advisory  *advisoryapp.Gateway
	Publisher events.Publisher
	Metrics   *metrics.Recorder
	Logger    *slog.Logger
	Clock     func() time.Time
	Checkout  checkoutapp.Options
}

// Storefront owns every store of one shopping session and is the only thing
// that mutates them. All methods are safe for concurrent use; they serialise
// on a single mutex.
type Storefront struct {
	mu sync.Mutex

	catalog  *catalogapp.Service
	cart     *cartapp.Service
	orders   *orderapp.Service
	checkout *checkoutapp.Service

	store     *persistenceapp.Adapter
	advisory  *advisoryapp.Gateway
	publisher events.Publisher
	metrics   *metrics.Recorder
	log       *slog.Logger

	persistent bool
	user       identitydomain.User
	view       View
}

func New(ctx context.Context, d Deps) (*Storefront, error) {
	if d.Store == nil {
		return nil, errors.New("storefront: store is required")
	}
	if d.Advisory == nil {
		return nil, errors.New("storefront: advisory gateway is required")
	}
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	if d.Publisher == nil {
		d.Publisher = events.NewLogPublisher(d.Logger)
	}
	if d.Metrics == nil {
		d.Metrics = metrics.New(nil)
	}
	if d.Clock == nil {
		d.Clock = time.Now
	}

	catalog := catalogapp.NewService(catalogapp.Clock(d.Clock))
	cart := cartapp.NewService(catalog)
	orders := orderapp.NewService(orderapp.Clock(d.Clock))
	checkout := checkoutapp.NewService(
		adapter.NewCartServiceReader(cart),
		adapter.NewOrderServicePlacer(orders),
		d.Checkout,
	)

	loaded := d.Store.Load(ctx)
	catalog.Restore(loaded.Products)
	orders.Restore(loaded.Orders)

	s := &Storefront{
		catalog:    catalog,
		cart:       cart,
		orders:     orders,
		checkout:   checkout,
		store:      d.Store,
		advisory:   d.Advisory,
		publisher:  d.Publisher,
		metrics:    d.Metrics,
		log:        d.Logger.With("component", "storefront"),
		persistent: !loaded.Degraded,
		view:       ViewMarketplace,
	}
	s.metrics.CatalogSize.Set(float64(catalog.Len()))
	return s, nil
}

// Persistent is false while snapshots cannot be written.
func (s *Storefront) Persistent() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persistent
}

func (s *Storefront) Close() { s.advisory.Close() }

// Navigate switches view. Like leaving a page, it abandons any checkout in
// progress, and it fires the advisory request the new view depends on.
func (s *Storefront) Navigate(user identitydomain.User, view View) error {
	if !view.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidView, view)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
	s.view = view
	s.checkout.Reset()
	s.refreshAdvisory()
	return nil
}

func (s *Storefront) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

// --- catalog ---

func (s *Storefront) Products() []catalogdomain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog.List()
}

func (s *Storefront) Search(query string) []catalogdomain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog.Search(query)
}

func (s *Storefront) Suggest(query string) []catalogdomain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog.Suggest(query)
}

func (s *Storefront) Product(id string) (catalogdomain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.catalog.Get(id)
	if !ok {
		return catalogdomain.Product{}, fmt.Errorf("%w: product %q", catalogapp.ErrNotFound, id)
	}
	return p, nil
}

func (s *Storefront) CategoryCounts() []catalogapp.CategoryCount {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog.CountByCategory()
}

func (s *Storefront) AddProduct(ctx context.Context, d catalogdomain.Draft) (catalogdomain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, err := s.catalog.Add(d)
	if err != nil {
		return catalogdomain.Product{}, err
	}
	s.metrics.ProductsAdded.Inc()
	s.catalogChanged(ctx)
	s.log.Info("product added", slog.String("product_id", p.ID), slog.String("name", p.Name))
	return p, nil
}

func (s *Storefront) ReplaceProduct(ctx context.Context, p catalogdomain.Product) (catalogdomain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out, err := s.catalog.Replace(p)
	if err != nil {
		return catalogdomain.Product{}, err
	}
	s.catalogChanged(ctx)
	return out, nil
}

// RemoveProduct deletes from the catalog and drops the product from the open
// cart. Placed orders keep their own copies.
func (s *Storefront) RemoveProduct(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.catalog.Remove(id) {
		return false
	}
	if dropped := s.cart.Prune(); len(dropped) > 0 {
		s.log.Info("dropped orphaned cart lines", slog.Any("product_ids", dropped))
	}
	s.metrics.ProductsRemoved.Inc()
	s.catalogChanged(ctx)
	return true
}

// --- cart ---

func (s *Storefront) Cart() cartdomain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Snapshot()
}

func (s *Storefront) AddToCart(productID string) (cartdomain.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.addToCart(productID); err != nil {
		return cartdomain.Cart{}, err
	}
	return s.cart.Snapshot(), nil
}

func (s *Storefront) IncrementItem(productID string) (cartdomain.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.cart.Increment(productID); err != nil {
		return cartdomain.Cart{}, err
	}
	return s.cart.Snapshot(), nil
}

func (s *Storefront) DecrementItem(productID string) (cartdomain.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.cart.Decrement(productID); err != nil {
		return cartdomain.Cart{}, err
	}
	return s.cart.Snapshot(), nil
}

func (s *Storefront) RemoveFromCart(productID string) cartdomain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.RemoveItem(productID)
	return s.cart.Snapshot()
}

// --- checkout ---

func (s *Storefront) Checkout() checkoutdomain.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.checkout.State()
}

func (s *Storefront) ProceedToAddress() (checkoutdomain.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkout.ProceedToAddress(); err != nil {
		s.metrics.CheckoutRejected.WithLabelValues(string(checkoutdomain.StepAddress)).Inc()
		return s.checkout.State(), err
	}
	return s.checkout.State(), nil
}

func (s *Storefront) UpdateAddress(addr checkoutdomain.ShippingAddress) checkoutdomain.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checkout.UpdateAddress(addr)
	return s.checkout.State()
}

func (s *Storefront) ProceedToPayment() (checkoutdomain.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkout.ProceedToPayment(); err != nil {
		s.metrics.CheckoutRejected.WithLabelValues(string(checkoutdomain.StepPayment)).Inc()
		return s.checkout.State(), err
	}
	return s.checkout.State(), nil
}

func (s *Storefront) SelectPayment(m checkoutdomain.PaymentMethod) (checkoutdomain.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.checkout.SelectPayment(m)
	return s.checkout.State(), err
}

// BuyNow adds the product and jumps straight to the address step.
func (s *Storefront) BuyNow(productID string) (checkoutdomain.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.addToCart(productID); err != nil {
		return s.checkout.State(), err
	}
	s.view = ViewCart
	s.checkout.Reset()
	err := s.checkout.ProceedToAddress()
	return s.checkout.State(), err
}

// PlaceOrder places the order for user (guest when zero), persists the
// ledger and moves the session to the orders view.
func (s *Storefront) PlaceOrder(ctx context.Context, user identitydomain.User) (orderdomain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	order, err := s.checkout.PlaceOrder(ctx, user.ID)
	if err != nil {
		s.metrics.CheckoutRejected.WithLabelValues("placed").Inc()
		return orderdomain.Order{}, err
	}

	s.metrics.OrdersPlaced.Inc()
	s.metrics.Revenue.Add(float64(order.TotalAmount))
	s.persist(ctx)
	s.publish(ctx, order)
	s.view = ViewOrders
	s.refreshAdvisory()

	s.log.Info("order placed",
		slog.String("order_id", order.ID),
		slog.String("user_id", order.UserID),
		slog.Int64("total", order.TotalAmount),
	)
	return order, nil
}

// --- orders and dashboard ---

func (s *Storefront) Orders() []orderdomain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.orders.List()
}

func (s *Storefront) Order(id string) (orderdomain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.orders.Get(id)
}

type Dashboard struct {
	Aggregate orderdomain.Aggregate `json:"aggregate"`
	Recent    []orderdomain.Order   `json:"recent"`
	Insights  advisoryapp.Summary   `json:"insights"`
	Products  int                   `json:"products"`
}

func (s *Storefront) Dashboard() Dashboard {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Dashboard{
		Aggregate: s.orders.Aggregate(),
		Recent:    s.orders.Recent(recentOrders),
		Insights:  s.advisory.SalesSummary(),
		Products:  s.catalog.Len(),
	}
}

type Recommendations struct {
	Products []catalogdomain.Product `json:"products"`
	Pending  bool                    `json:"pending"`
}

// Recommendations resolves the advisory ids against the current catalog,
// dropping unknown ids and keeping catalog order.
func (s *Storefront) Recommendations() Recommendations {
	s.mu.Lock()
	defer s.mu.Unlock()
	recs := s.advisory.Recommendations()
	want := make(map[string]bool, len(recs.IDs))
	for _, id := range recs.IDs {
		want[id] = true
	}
	out := Recommendations{Products: []catalogdomain.Product{}, Pending: recs.Pending}
	for _, p := range s.catalog.List() {
		if want[p.ID] {
			out.Products = append(out.Products, p)
		}
	}
	return out
}

// --- internals; callers hold mu ---

func (s *Storefront) addToCart(productID string) error {
	p, ok := s.catalog.Get(productID)
	if !ok {
		return fmt.Errorf("%w: product %q", catalogapp.ErrNotFound, productID)
	}
	s.cart.AddItem(p)
	s.metrics.CartAdds.Inc()
	return nil
}

func (s *Storefront) catalogChanged(ctx context.Context) {
	s.metrics.CatalogSize.Set(float64(s.catalog.Len()))
	s.persist(ctx)
	s.refreshAdvisory()
}

func (s *Storefront) persist(ctx context.Context) {
	err := s.store.Save(ctx, s.catalog.List(), s.orders.List())
	if err != nil {
		s.metrics.StorageErrors.Inc()
		if s.persistent {
			s.log.Warn("storage unavailable, continuing in memory", slog.Any("err", err))
		}
		s.persistent = false
		return
	}
	if !s.persistent {
		s.log.Info("storage writable again")
	}
	s.persistent = true
}

func (s *Storefront) publish(ctx context.Context, o orderdomain.Order) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := s.publisher.PublishOrderPlaced(ctx, events.NewOrderPlaced(o)); err != nil {
		s.log.Warn("publish order placed failed", slog.String("order_id", o.ID), slog.Any("err", err))
	}
}

func (s *Storefront) refreshAdvisory() {
	switch {
	case s.user.Role == identitydomain.RoleCustomer && s.view == ViewMarketplace:
		s.advisory.RequestRecommendations(s.orders.LastPurchasedCategory(fallbackCategory), s.catalog.List())
	case s.user.Role == identitydomain.RoleAdmin && s.view == ViewDashboard:
		s.advisory.RequestSalesSummary(s.orders.List())
	}
}
