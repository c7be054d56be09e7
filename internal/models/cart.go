package models

import "github.com/shopspring/decimal"

// CartItem is one cart line. Lines with the same product, size and color merge.
type CartItem struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Image    string          `json:"image"`
	Size     string          `json:"size,omitempty"`
	Color    string          `json:"color,omitempty"`
	Quantity int             `json:"quantity"`
}

// CartKey identifies a cart line.
type CartKey struct {
	ID    string `json:"id" form:"id"`
	Size  string `json:"size,omitempty" form:"size"`
	Color string `json:"color,omitempty" form:"color"`
}

func (i CartItem) Key() CartKey {
	return CartKey{ID: i.ID, Size: i.Size, Color: i.Color}
}

func (i CartItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// ToOrderItem snapshots the line for an order.
func (i CartItem) ToOrderItem() OrderItem {
	return OrderItem{
		ID:       i.ID,
		Name:     i.Name,
		Price:    i.Price,
		Quantity: i.Quantity,
		Size:     i.Size,
		Color:    i.Color,
	}
}

// WishlistItem is one wishlist entry, identified by product id alone.
type WishlistItem struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Image    string          `json:"image"`
	Category string          `json:"category"`
}
