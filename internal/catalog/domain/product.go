package domain

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
)

type Category string

const (
	CategoryShoes       Category = "Shoes"
	CategoryPerfumes    Category = "Perfumes"
	CategoryWatches     Category = "Watches"
	CategoryBelts       Category = "Belts"
	CategoryGoggles     Category = "Goggles"
	CategoryElectronics Category = "Electronics"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryShoes,
	CategoryPerfumes,
	CategoryWatches,
	CategoryBelts,
	CategoryGoggles,
	CategoryElectronics,
}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Product is a catalog entry. Prices are whole rupees.
type Product struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Brand         string   `json:"brand"`
	Category      Category `json:"category"`
	Price         int64    `json:"price"`
	OriginalPrice int64    `json:"originalPrice"`
	Rating        float64  `json:"rating"`
	Reviews       int      `json:"reviews"`
	Images        []string `json:"images"`
	Description   string   `json:"description"`
	Stock         int      `json:"stock"`
	IsAssured     bool     `json:"isAssured,omitempty"`
}

// Clone returns a copy that shares no backing arrays with p.
func (p Product) Clone() Product {
	cp := p
	if p.Images != nil {
		cp.Images = append([]string(nil), p.Images...)
	}
	return cp
}

// Draft is the admin "add asset" form.
type Draft struct {
	Name          string
	Brand         string
	Category      Category
	Price         int64
	OriginalPrice int64
	// Discount, when set, derives Price from OriginalPrice.
	Discount    *int
	Rating      float64
	Reviews     int
	Images      []string
	Description string
	Stock       int
	IsAssured   bool
}

// NewDraft returns a form pre-filled the way the admin console opens it.
func NewDraft() Draft {
	return Draft{
		Category: CategoryShoes,
		Rating:   4.5,
		Images:   []string{""},
		Stock:    50,
	}
}

var ErrInvalidDiscount = errors.New("discount must be between 0 and 90")

const MaxDiscount = 90

// DiscountPercent reports round((originalPrice-price)/originalPrice*100).
// ok is false when the product has no usable original price.
func DiscountPercent(p Product) (percent int, ok bool) {
	if p.OriginalPrice <= 0 {
		return 0, false
	}
	ratio := decimal.NewFromInt(p.OriginalPrice - p.Price).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(p.OriginalPrice))
	return int(roundHalfUp(ratio).IntPart()), true
}

// PriceFromDiscount computes round(originalPrice * (1 - discount/100)).
func PriceFromDiscount(originalPrice int64, discount int) (int64, error) {
	if discount < 0 || discount > MaxDiscount {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidDiscount, discount)
	}
	price := decimal.NewFromInt(originalPrice).
		Mul(decimal.NewFromInt(int64(100 - discount))).
		Div(decimal.NewFromInt(100))
	return roundHalfUp(price).IntPart(), nil
}

// roundHalfUp rounds .5 towards positive infinity.
func roundHalfUp(d decimal.Decimal) decimal.Decimal {
	return d.Add(decimal.New(5, -1)).Floor()
}

// Matches reports a case-insensitive substring hit on name, brand or category.
// needle must already be lower-cased.
func (p Product) Matches(needle string) bool {
	return strings.Contains(strings.ToLower(p.Name), needle) ||
		strings.Contains(strings.ToLower(p.Brand), needle) ||
		strings.Contains(strings.ToLower(string(p.Category)), needle)
}

type Share struct {
	Title string `json:"title"`
	Text  string `json:"text"`
	URL   string `json:"url"`
}

// ShareFor builds the deep-link payload for a product.
func ShareFor(p Product, baseURL string) Share {
	q := url.Values{}
	q.Set("product", p.ID)
	return Share{
		Title: fmt.Sprintf("Check out %s on Maharaj Wholesale!", p.Name),
		Text:  fmt.Sprintf("%s - %s. Royal price: ₹%s.", p.Brand, p.Name, groupDigits(p.Price)),
		URL:   strings.TrimRight(baseURL, "/") + "/?" + q.Encode(),
	}
}

// groupDigits formats n with the Indian lakh grouping used on price tags.
func groupDigits(n int64) string {
	neg := n < 0
	if neg {
		n = -n
	}
	s := fmt.Sprintf("%d", n)
	if len(s) > 3 {
		head, tail := s[:len(s)-3], s[len(s)-3:]
		var parts []string
		for len(head) > 2 {
			parts = append([]string{head[len(head)-2:]}, parts...)
			head = head[:len(head)-2]
		}
		if head != "" {
			parts = append([]string{head}, parts...)
		}
		s = strings.Join(parts, ",") + "," + tail
	}
	if neg {
		return "-" + s
	}
	return s
}
