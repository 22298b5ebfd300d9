package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscountPercent(t *testing.T) {
	tests := []struct {
		price, original int64
		want            int
		ok              bool
	}{
		{10400, 12800, 19, true}, // 18.75
		{7600, 8800, 14, true},   // 13.63
		{3600, 5200, 31, true},   // 30.76
		{50, 100, 50, true},
		{100, 100, 0, true},
		{1, 0, 0, false},
	}
	for _, tt := range tests {
		got, ok := DiscountPercent(Product{Price: tt.price, OriginalPrice: tt.original})
		if ok != tt.ok || got != tt.want {
			t.Errorf("DiscountPercent(%d, %d) = (%d, %v), want (%d, %v)", tt.price, tt.original, got, ok, tt.want, tt.ok)
		}
	}
}

func TestPriceFromDiscount(t *testing.T) {
	price, err := PriceFromDiscount(12800, 15)
	require.NoError(t, err)
	assert.Equal(t, int64(10880), price)

	price, err = PriceFromDiscount(999, 50)
	require.NoError(t, err)
	assert.Equal(t, int64(500), price) // 499.5 rounds up

	_, err = PriceFromDiscount(100, 91)
	assert.ErrorIs(t, err, ErrInvalidDiscount)
	_, err = PriceFromDiscount(100, -1)
	assert.ErrorIs(t, err, ErrInvalidDiscount)
}

func TestDiscountRoundTrip(t *testing.T) {
	for _, original := range []int64{100, 149, 999, 5200, 12800, 34300, 99999} {
		for d := 0; d <= MaxDiscount; d++ {
			price, err := PriceFromDiscount(original, d)
			require.NoError(t, err)

			got, ok := DiscountPercent(Product{Price: price, OriginalPrice: original})
			require.True(t, ok)
			if diff := got - d; diff < -1 || diff > 1 {
				t.Fatalf("original=%d discount=%d price=%d recomputed=%d", original, d, price, got)
			}
		}
	}
}

func TestShareFor(t *testing.T) {
	p := Product{ID: "P-42", Name: "Apple Watch Series 9", Brand: "Apple", Price: 131900}

	s := ShareFor(p, "https://shop.example/")
	assert.Equal(t, "Check out Apple Watch Series 9 on Maharaj Wholesale!", s.Title)
	assert.Equal(t, "Apple - Apple Watch Series 9. Royal price: ₹1,31,900.", s.Text)
	assert.Equal(t, "https://shop.example/?product=P-42", s.URL)
}

func TestCloneDetachesImages(t *testing.T) {
	p := Product{Images: []string{"a", "b"}}
	cp := p.Clone()
	cp.Images[0] = "z"
	assert.Equal(t, "a", p.Images[0])
}
