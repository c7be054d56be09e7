package models

import "github.com/shopspring/decimal"

// Product is a purchasable catalog entry.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Featured    bool            `json:"featured,omitempty"`
	Sizes       []string        `json:"sizes,omitempty"`
	Colors      []string        `json:"colors,omitempty"`
}

// HasSizes reports whether a size must be selected before adding to cart.
func (p Product) HasSizes() bool {
	return len(p.Sizes) > 0
}

// HasColors reports whether a color must be selected before adding to cart.
func (p Product) HasColors() bool {
	return len(p.Colors) > 0
}

// Clone returns a deep copy so callers never share slices with the catalog.
func (p Product) Clone() Product {
	c := p
	if p.Sizes != nil {
		c.Sizes = append([]string(nil), p.Sizes...)
	}
	if p.Colors != nil {
		c.Colors = append([]string(nil), p.Colors...)
	}
	return c
}

// NewProduct is a product before the catalog assigns its id.
type NewProduct struct {
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Featured    bool            `json:"featured,omitempty"`
	Sizes       []string        `json:"sizes,omitempty"`
	Colors      []string        `json:"colors,omitempty"`
}

// WithID builds the stored product.
func (n NewProduct) WithID(id string) Product {
	return Product{
		ID:          id,
		Name:        n.Name,
		Price:       n.Price,
		Image:       n.Image,
		Description: n.Description,
		Category:    n.Category,
		Featured:    n.Featured,
		Sizes:       n.Sizes,
		Colors:      n.Colors,
	}.Clone()
}

// ProductPatch is a partial product update. Nil fields are left untouched.
type ProductPatch struct {
	Name        *string          `json:"name,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Image       *string          `json:"image,omitempty"`
	Description *string          `json:"description,omitempty"`
	Category    *string          `json:"category,omitempty"`
	Featured    *bool            `json:"featured,omitempty"`
	Sizes       *[]string        `json:"sizes,omitempty"`
	Colors      *[]string        `json:"colors,omitempty"`
}

// IsEmpty reports whether the patch changes nothing.
func (p ProductPatch) IsEmpty() bool {
	return p.Name == nil && p.Price == nil && p.Image == nil && p.Description == nil &&
		p.Category == nil && p.Featured == nil && p.Sizes == nil && p.Colors == nil
}

// Apply merges the patch into product and returns the result. The id is
// never changed.
func (p ProductPatch) Apply(product Product) Product {
	out := product.Clone()
	if p.Name != nil {
		out.Name = *p.Name
	}
	if p.Price != nil {
		out.Price = *p.Price
	}
	if p.Image != nil {
		out.Image = *p.Image
	}
	if p.Description != nil {
		out.Description = *p.Description
	}
	if p.Category != nil {
		out.Category = *p.Category
	}
	if p.Featured != nil {
		out.Featured = *p.Featured
	}
	if p.Sizes != nil {
		out.Sizes = append([]string(nil), (*p.Sizes)...)
	}
	if p.Colors != nil {
		out.Colors = append([]string(nil), (*p.Colors)...)
	}
	return out
}
