package seed

import "github.com/dwikikusuma/storefront/internal/catalog/domain"

const imgQuery = "?auto=format&fit=crop&q=80&w=600"

func img(id string) string {
	return "https://images.unsplash.com/photo-" + id + imgQuery
}

// Products returns the built-in catalog used when nothing is persisted yet.
func Products() []domain.Product {
	return []domain.Product{
		{
			ID:            "1",
			Name:          "Nike Air Max Pulse",
			Brand:         "Nike",
			Category:      domain.CategoryShoes,
			Price:         10400,
			OriginalPrice: 12800,
			Rating:        4.8,
			Reviews:       1240,
			Images:        []string{img("1542291026-7eec264c27ff"), img("1606107557195-0e29a4b5b4aa"), img("1605405748313-a416a1b84491")},
			Description:   "Iconic cushioning meets a sleek, sporty design. Perfect for everyday style.",
			Stock:         45,
			IsAssured:     true,
		},
		{
			ID:            "2",
			Name:          "Sauvage Eau de Parfum",
			Brand:         "Dior",
			Category:      domain.CategoryPerfumes,
			Price:         7600,
			OriginalPrice: 8800,
			Rating:        4.9,
			Reviews:       5600,
			Images:        []string{img("1541643600914-78b084683601"), img("1594035910387-fea47794261f")},
			Description:   "A powerful and noble fragrance with a raw and fresh trail.",
			Stock:         30,
			IsAssured:     true,
		},
		{
			ID:            "3",
			Name:          "Apple Watch Series 9",
			Brand:         "Apple",
			Category:      domain.CategoryWatches,
			Price:         31900,
			OriginalPrice: 34300,
			Rating:        4.7,
			Reviews:       890,
			Images:        []string{img("1546868871-7041f2a55e12"), img("1579586337278-3befd40fd17a")},
			Description:   "The most powerful watch yet. Features an always-on display and crash detection.",
			Stock:         12,
			IsAssured:     true,
		},
		{
			ID:            "4",
			Name:          "Premium Leather Classic",
			Brand:         "Fossil",
			Category:      domain.CategoryBelts,
			Price:         3600,
			OriginalPrice: 5200,
			Rating:        4.5,
			Reviews:       210,
			Images:        []string{img("1624222247344-550fb80583dc"), img("1553062407-98eeb64c6a62")},
			Description:   "Genuine leather belt with a timeless design for any formal occasion.",
			Stock:         100,
		},
		{
			ID:            "5",
			Name:          "Classic Aviator RB3025",
			Brand:         "Ray-Ban",
			Category:      domain.CategoryGoggles,
			Price:         13200,
			OriginalPrice: 15600,
			Rating:        4.6,
			Reviews:       3400,
			Images:        []string{img("1572635196237-14b3f281503f"), img("1577803645773-f96470509666")},
			Description:   "The original pilot style sunglasses. Timeless and universally loved.",
			Stock:         25,
			IsAssured:     true,
		},
	}
}
