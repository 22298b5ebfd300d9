package gateway

import (
	"log/slog"
	"net/http"

	"github.com/dwikikusuma/storefront/internal/gateway/middleware"
	identityapp "github.com/dwikikusuma/storefront/internal/identity/app"
	identitydomain "github.com/dwikikusuma/storefront/internal/identity/domain"
	"github.com/dwikikusuma/storefront/internal/storefront"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Deps struct {
	Storefront   *storefront.Storefront
	Identity     *identityapp.Service
	Logger       *slog.Logger
	Metrics      *middleware.HTTPMetrics
	Gatherer     prometheus.Gatherer
	ShareBaseURL string
}

func NewRouter(d Deps) *gin.Engine {
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	if d.Gatherer == nil {
		d.Gatherer = prometheus.DefaultGatherer
	}
	h := NewHandler(d.Storefront, d.Identity, d.ShareBaseURL)

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.Logging(d.Logger.With("component", "http")))
	if d.Metrics != nil {
		r.Use(d.Metrics.Handler())
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true, "persistent": d.Storefront.Persistent()})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{})))

	v1 := r.Group("/v1", middleware.Authenticate(d.Identity))
	{
		v1.POST("/session", h.SignIn)
		v1.GET("/session", h.Session)
		v1.POST("/views", h.Navigate)

		v1.GET("/products", h.ListProducts)
		v1.GET("/products/suggest", h.SuggestProducts)
		v1.GET("/products/:id", h.GetProduct)
		v1.GET("/products/:id/share", h.ShareProduct)
		v1.GET("/categories", h.Categories)
		v1.GET("/recommendations", h.Recommendations)

		v1.GET("/cart", h.GetCart)
		v1.POST("/cart/items", h.AddCartItem)
		v1.POST("/cart/items/:id/increment", h.IncrementCartItem)
		v1.POST("/cart/items/:id/decrement", h.DecrementCartItem)
		v1.DELETE("/cart/items/:id", h.RemoveCartItem)

		v1.POST("/buy-now", h.BuyNow)
		v1.GET("/checkout", h.GetCheckout)
		v1.POST("/checkout/address", h.ProceedToAddress)
		v1.PUT("/checkout/address", h.UpdateAddress)
		v1.POST("/checkout/payment", h.ProceedToPayment)
		v1.PUT("/checkout/payment", h.SelectPayment)
		v1.POST("/checkout/orders", h.PlaceOrder)

		v1.GET("/orders", h.ListOrders)
		v1.GET("/orders/:id", h.GetOrder)
	}

	admin := v1.Group("/admin", middleware.RequireRole(identitydomain.RoleAdmin))
	{
		admin.GET("/overview", h.Overview)
		admin.POST("/products", h.AddProduct)
		admin.PUT("/products/:id", h.ReplaceProduct)
		admin.DELETE("/products/:id", h.RemoveProduct)
		admin.POST("/pricing", h.Pricing)
	}

	return r
}
