package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Recorder holds the storefront's domain metrics. Each Recorder registers on
// its own registerer so tests can build as many as they like.
type Recorder struct {
	OrdersPlaced     prometheus.Counter
	Revenue          prometheus.Counter
	CartAdds         prometheus.Counter
	ProductsAdded    prometheus.Counter
	ProductsRemoved  prometheus.Counter
	StorageErrors    prometheus.Counter
	CheckoutRejected *prometheus.CounterVec
	Advisory         *prometheus.CounterVec
	CatalogSize      prometheus.Gauge
}

func New(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		OrdersPlaced: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "storefront_orders_placed_total",
			Help: "Orders placed through checkout.",
		}),
		Revenue: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "storefront_revenue_rupees_total",
			Help: "Sum of placed order totals.",
		}),
		CartAdds: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "storefront_cart_adds_total",
			Help: "Add-to-cart actions.",
		}),
		ProductsAdded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "storefront_products_added_total",
			Help: "Products added from the admin console.",
		}),
		ProductsRemoved: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "storefront_products_removed_total",
			Help: "Products removed from the admin console.",
		}),
		StorageErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "storefront_storage_errors_total",
			Help: "Failed snapshot writes.",
		}),
		CheckoutRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_checkout_rejected_total",
			Help: "Checkout transitions refused by validation.",
		}, []string{"step"}),
		Advisory: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_advisory_calls_total",
			Help: "Advisory calls by kind and outcome.",
		}, []string{"kind", "outcome"}),
		CatalogSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "storefront_catalog_products",
			Help: "Products currently in the catalog.",
		}),
	}
	if reg != nil {
		reg.MustRegister(
			r.OrdersPlaced, r.Revenue, r.CartAdds, r.ProductsAdded, r.ProductsRemoved,
			r.StorageErrors, r.CheckoutRejected, r.Advisory, r.CatalogSize,
		)
	}
	return r
}
