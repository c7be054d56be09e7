package service

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/tm-acme-shop/acme-shop-storefront/internal/logging"
	"github.com/tm-acme-shop/acme-shop-storefront/internal/metrics"
	"github.com/tm-acme-shop/acme-shop-storefront/internal/models"
	"github.com/tm-acme-shop/acme-shop-storefront/internal/repository"
)

// Cart is the shopper's ordered list of cart lines.
type Cart struct {
	mu        sync.RWMutex
	items     []models.CartItem
	persisted *repository.Persisted[[]models.CartItem]
	metrics   *metrics.Metrics
	logger    *logging.LoggerV2
}

func NewCart(store repository.Store, m *metrics.Metrics) *Cart {
	if m == nil {
		m = metrics.NewNop()
	}
	return &Cart{
		persisted: repository.NewPersisted[[]models.CartItem](store, repository.KeyCart),
		metrics:   m,
		logger:    logging.NewLoggerV2("cart"),
	}
}

// Initialize loads the persisted cart. Absent or unreadable values start empty.
func (c *Cart) Initialize(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	stored, ok, err := c.persisted.Load(ctx)
	if err != nil {
		c.logger.Error("Failed to load cart", logging.Fields{"error": err.Error()})
		c.items = nil
		return nil
	}
	if ok {
		c.items = stored
	}
	return nil
}

// Items returns a copy of the cart lines.
func (c *Cart) Items() []models.CartItem {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.CartItem, len(c.items))
	copy(out, c.items)
	return out
}

// Count is the total quantity across all lines.
func (c *Cart) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	n := 0
	for _, item := range c.items {
		n += item.Quantity
	}
	return n
}

func (c *Cart) Total() decimal.Decimal {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return CartTotal(c.items)
}

// Add merges item into the line with the same product, size and color, or
// appends a new line. A quantity below 1 counts as 1.
func (c *Cart) Add(ctx context.Context, item models.CartItem) error {
	if item.Quantity < 1 {
		item.Quantity = 1
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	next := append([]models.CartItem(nil), c.items...)
	if i := indexOfCartLine(next, item.Key()); i >= 0 {
		next[i].Quantity += item.Quantity
	} else {
		next = append(next, item)
	}
	c.items = next

	c.metrics.CartOperations.WithLabelValues("add").Inc()
	return writeThrough(ctx, c.persisted, next, c.logger)
}

// Remove deletes the line identified by key. The bool is false when no such
// line exists.
func (c *Cart) Remove(ctx context.Context, key models.CartKey) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := indexOfCartLine(c.items, key)
	if i < 0 {
		return false, nil
	}

	next := make([]models.CartItem, 0, len(c.items)-1)
	next = append(next, c.items[:i]...)
	next = append(next, c.items[i+1:]...)
	c.items = next

	c.metrics.CartOperations.WithLabelValues("remove").Inc()
	return true, writeThrough(ctx, c.persisted, next, c.logger)
}

// UpdateQuantity sets the quantity of a line. A quantity of 0 or less
// removes the line.
func (c *Cart) UpdateQuantity(ctx context.Context, key models.CartKey, quantity int) (bool, error) {
	if quantity <= 0 {
		return c.Remove(ctx, key)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	i := indexOfCartLine(c.items, key)
	if i < 0 {
		return false, nil
	}

	next := append([]models.CartItem(nil), c.items...)
	next[i].Quantity = quantity
	c.items = next

	c.metrics.CartOperations.WithLabelValues("update_quantity").Inc()
	return true, writeThrough(ctx, c.persisted, next, c.logger)
}

// Clear empties the cart.
func (c *Cart) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = []models.CartItem{}
	c.metrics.CartOperations.WithLabelValues("clear").Inc()
	return writeThrough(ctx, c.persisted, c.items, c.logger)
}

func indexOfCartLine(items []models.CartItem, key models.CartKey) int {
	for i := range items {
		if items[i].Key() == key {
			return i
		}
	}
	return -1
}
