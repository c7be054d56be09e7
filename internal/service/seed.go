package service

import (
	"github.com/shopspring/decimal"
	"github.com/tm-acme-shop/acme-shop-storefront/internal/models"
)

// DefaultProducts returns the catalog a storefront starts with when nothing
// has been persisted yet. A fresh copy is returned on every call.
func DefaultProducts() []models.Product {
	return []models.Product{
		{
			ID:          "1",
			Name:        "Modern Gray Armchair",
			Price:       decimal.RequireFromString("299.99"),
			Image:       "https://images.unsplash.com/photo-1506439773649-6e0eb8cfb237?auto=format&fit=crop&w=800&q=80",
			Description: "Comfortable modern armchair with soft gray upholstery. Perfect for any living room.",
			Category:    "Furniture",
			Featured:    true,
			Sizes:       []string{"Small", "Medium", "Large"},
			Colors:      []string{"Gray", "Beige", "Navy"},
		},
		{
			ID:          "2",
			Name:        "Wooden Coffee Table",
			Price:       decimal.RequireFromString("189.99"),
			Image:       "https://images.unsplash.com/photo-1555041469-a586c61ea9bc?auto=format&fit=crop&w=800&q=80",
			Description: "Elegant wooden coffee table with clean lines and natural finish.",
			Category:    "Furniture",
			Featured:    true,
			Sizes:       []string{"60cm", "80cm", "100cm"},
			Colors:      []string{"Natural Wood", "Dark Walnut", "White Oak"},
		},
		{
			ID:          "3",
			Name:        "Ceramic Table Lamp",
			Price:       decimal.RequireFromString("79.99"),
			Image:       "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?auto=format&fit=crop&w=800&q=80",
			Description: "Beautiful ceramic table lamp with warm lighting.",
			Category:    "Lighting",
			Sizes:       []string{"Small", "Medium"},
			Colors:      []string{"White", "Blue", "Green"},
		},
		{
			ID:          "4",
			Name:        "Decorative Wall Art",
			Price:       decimal.RequireFromString("149.99"),
			Image:       "https://images.unsplash.com/photo-1541961017774-22349e4a1262?auto=format&fit=crop&w=800&q=80",
			Description: "Modern abstract wall art to enhance your space.",
			Category:    "Decor",
			Featured:    true,
			Sizes:       []string{"30x40cm", "50x70cm", "70x100cm"},
			Colors:      []string{"Multi-color", "Black & White", "Blue Tones"},
		},
		{
			ID:          "5",
			Name:        "Velvet Throw Pillow",
			Price:       decimal.RequireFromString("34.99"),
			Image:       "https://images.unsplash.com/photo-1586023492125-27b2c045efd7?auto=format&fit=crop&w=800&q=80",
			Description: "Luxurious velvet throw pillow in rich colors.",
			Category:    "Accessories",
			Sizes:       []string{"40x40cm", "50x50cm", "60x60cm"},
			Colors:      []string{"Burgundy", "Navy", "Emerald", "Gold"},
		},
		{
			ID:          "6",
			Name:        "Scandinavian Dining Chair",
			Price:       decimal.RequireFromString("129.99"),
			Image:       "https://images.unsplash.com/photo-1549497538-303791108f95?auto=format&fit=crop&w=800&q=80",
			Description: "Minimalist dining chair with wooden legs and comfortable seat.",
			Category:    "Furniture",
			Sizes:       []string{"Standard"},
			Colors:      []string{"White", "Gray", "Black", "Natural"},
		},
	}
}
