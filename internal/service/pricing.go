package service

import (
	"github.com/shopspring/decimal"
	"github.com/tm-acme-shop/acme-shop-storefront/internal/models"
)

// CartTotal sums price times quantity over every cart line.
func CartTotal(items []models.CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.LineTotal())
	}
	return total
}

// OrderTotal sums price times quantity over every order line.
func OrderTotal(items []models.OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.LineTotal())
	}
	return total
}
