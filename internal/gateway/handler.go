package gateway

import (
	"fmt"
	"net/http"

	catalogapp "github.com/dwikikusuma/storefront/internal/catalog/app"
	catalogdomain "github.com/dwikikusuma/storefront/internal/catalog/domain"
	checkoutdomain "github.com/dwikikusuma/storefront/internal/checkout/domain"
	"github.com/dwikikusuma/storefront/internal/gateway/middleware"
	identityapp "github.com/dwikikusuma/storefront/internal/identity/app"
	identitydomain "github.com/dwikikusuma/storefront/internal/identity/domain"
	"github.com/dwikikusuma/storefront/internal/storefront"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	sf        *storefront.Storefront
	identity  *identityapp.Service
	shareBase string
}

func NewHandler(sf *storefront.Storefront, identity *identityapp.Service, shareBase string) *Handler {
	return &Handler{sf: sf, identity: identity, shareBase: shareBase}
}

func bind(c *gin.Context, into any) bool {
	if err := c.ShouldBindJSON(into); err != nil {
		writeError(c, fmt.Errorf("%w: %v", errBadRequest, err))
		return false
	}
	return true
}

// --- session ---

type signInRequest struct {
	Role identitydomain.Role `json:"role" binding:"required"`
}

func (h *Handler) SignIn(c *gin.Context) {
	var req signInRequest
	if !bind(c, &req) {
		return
	}
	u, token, err := h.identity.SignIn(req.Role)
	if err != nil {
		writeError(c, err)
		return
	}
	middleware.LoggerFrom(c).Info("signed in", "user_id", u.ID, "role", u.Role)
	c.JSON(http.StatusOK, gin.H{"user": u, "token": token})
}

func (h *Handler) Session(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"user": middleware.UserFrom(c)})
}

type navigateRequest struct {
	View storefront.View `json:"view" binding:"required"`
}

func (h *Handler) Navigate(c *gin.Context) {
	var req navigateRequest
	if !bind(c, &req) {
		return
	}
	if err := h.sf.Navigate(middleware.UserFrom(c), req.View); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"view": req.View, "checkout": h.sf.Checkout()})
}

// --- catalog ---

func (h *Handler) ListProducts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"products": h.sf.Search(c.Query("q"))})
}

func (h *Handler) SuggestProducts(c *gin.Context) {
	out := h.sf.Suggest(c.Query("q"))
	if out == nil {
		out = []catalogdomain.Product{}
	}
	c.JSON(http.StatusOK, gin.H{"suggestions": out})
}

func (h *Handler) GetProduct(c *gin.Context) {
	p, err := h.sf.Product(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	resp := gin.H{"product": p}
	if d, ok := catalogdomain.DiscountPercent(p); ok {
		resp["discount"] = d
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) ShareProduct(c *gin.Context) {
	p, err := h.sf.Product(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, catalogdomain.ShareFor(p, h.shareBase))
}

func (h *Handler) Categories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": h.sf.CategoryCounts()})
}

func (h *Handler) Recommendations(c *gin.Context) {
	c.JSON(http.StatusOK, h.sf.Recommendations())
}

// --- cart ---

type productRef struct {
	ProductID string `json:"productId" binding:"required"`
}

func (h *Handler) GetCart(c *gin.Context) {
	c.JSON(http.StatusOK, h.sf.Cart())
}

func (h *Handler) AddCartItem(c *gin.Context) {
	var req productRef
	if !bind(c, &req) {
		return
	}
	cart, err := h.sf.AddToCart(req.ProductID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (h *Handler) IncrementCartItem(c *gin.Context) {
	cart, err := h.sf.IncrementItem(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (h *Handler) DecrementCartItem(c *gin.Context) {
	cart, err := h.sf.DecrementItem(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (h *Handler) RemoveCartItem(c *gin.Context) {
	c.JSON(http.StatusOK, h.sf.RemoveFromCart(c.Param("id")))
}

// --- checkout ---

func (h *Handler) GetCheckout(c *gin.Context) {
	c.JSON(http.StatusOK, h.sf.Checkout())
}

func (h *Handler) BuyNow(c *gin.Context) {
	var req productRef
	if !bind(c, &req) {
		return
	}
	st, err := h.sf.BuyNow(req.ProductID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

func (h *Handler) ProceedToAddress(c *gin.Context) {
	st, err := h.sf.ProceedToAddress()
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

func (h *Handler) UpdateAddress(c *gin.Context) {
	var addr checkoutdomain.ShippingAddress
	if !bind(c, &addr) {
		return
	}
	c.JSON(http.StatusOK, h.sf.UpdateAddress(addr))
}

func (h *Handler) ProceedToPayment(c *gin.Context) {
	st, err := h.sf.ProceedToPayment()
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

type paymentRequest struct {
	Method checkoutdomain.PaymentMethod `json:"method" binding:"required"`
}

func (h *Handler) SelectPayment(c *gin.Context) {
	var req paymentRequest
	if !bind(c, &req) {
		return
	}
	st, err := h.sf.SelectPayment(req.Method)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

func (h *Handler) PlaceOrder(c *gin.Context) {
	o, err := h.sf.PlaceOrder(c.Request.Context(), middleware.UserFrom(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, o)
}

// --- orders ---

func (h *Handler) ListOrders(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"orders": h.sf.Orders()})
}

func (h *Handler) GetOrder(c *gin.Context) {
	o, err := h.sf.Order(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

// --- admin ---

// productRequest is the add-asset form; fields left out keep the form defaults.
type productRequest struct {
	Name          string                 `json:"name"`
	Brand         string                 `json:"brand"`
	Category      catalogdomain.Category `json:"category"`
	Price         int64                  `json:"price"`
	OriginalPrice int64                  `json:"originalPrice"`
	Discount      *int                   `json:"discount"`
	Rating        float64                `json:"rating"`
	Reviews       int                    `json:"reviews"`
	Images        []string               `json:"images"`
	Description   string                 `json:"description"`
	Stock         int                    `json:"stock"`
	IsAssured     bool                   `json:"isAssured"`
}

func newProductRequest() productRequest {
	d := catalogdomain.NewDraft()
	return productRequest{
		Category: d.Category,
		Rating:   d.Rating,
		Images:   d.Images,
		Stock:    d.Stock,
	}
}

func (r productRequest) draft() catalogdomain.Draft {
	return catalogdomain.Draft{
		Name:          r.Name,
		Brand:         r.Brand,
		Category:      r.Category,
		Price:         r.Price,
		OriginalPrice: r.OriginalPrice,
		Discount:      r.Discount,
		Rating:        r.Rating,
		Reviews:       r.Reviews,
		Images:        r.Images,
		Description:   r.Description,
		Stock:         r.Stock,
		IsAssured:     r.IsAssured,
	}
}

func (h *Handler) AddProduct(c *gin.Context) {
	req := newProductRequest()
	if !bind(c, &req) {
		return
	}
	p, err := h.sf.AddProduct(c.Request.Context(), req.draft())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// ReplaceProduct overlays the body on the stored product.
func (h *Handler) ReplaceProduct(c *gin.Context) {
	id := c.Param("id")
	p, err := h.sf.Product(id)
	if err != nil {
		writeError(c, err)
		return
	}
	if !bind(c, &p) {
		return
	}
	p.ID = id
	out, err := h.sf.ReplaceProduct(c.Request.Context(), p)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) RemoveProduct(c *gin.Context) {
	id := c.Param("id")
	if !h.sf.RemoveProduct(c.Request.Context(), id) {
		writeError(c, fmt.Errorf("%w: product %q", catalogapp.ErrNotFound, id))
		return
	}
	c.Status(http.StatusNoContent)
}

type pricingRequest struct {
	OriginalPrice int64  `json:"originalPrice"`
	Discount      *int   `json:"discount"`
	Price         *int64 `json:"price"`
}

// Pricing converts between a discount and a selling price for the admin form.
func (h *Handler) Pricing(c *gin.Context) {
	var req pricingRequest
	if !bind(c, &req) {
		return
	}
	switch {
	case req.Discount != nil:
		price, err := catalogdomain.PriceFromDiscount(req.OriginalPrice, *req.Discount)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"originalPrice": req.OriginalPrice, "price": price, "discount": *req.Discount})
	case req.Price != nil:
		d, ok := catalogdomain.DiscountPercent(catalogdomain.Product{Price: *req.Price, OriginalPrice: req.OriginalPrice})
		if !ok {
			writeError(c, fmt.Errorf("%w: original price must be positive", errBadRequest))
			return
		}
		c.JSON(http.StatusOK, gin.H{"originalPrice": req.OriginalPrice, "price": *req.Price, "discount": d})
	default:
		writeError(c, fmt.Errorf("%w: discount or price required", errBadRequest))
	}
}

func (h *Handler) Overview(c *gin.Context) {
	c.JSON(http.StatusOK, h.sf.Dashboard())
}
