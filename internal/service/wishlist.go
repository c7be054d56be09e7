package service

import (
	"context"
	"sync"

	"github.com/tm-acme-shop/acme-shop-storefront/internal/logging"
	"github.com/tm-acme-shop/acme-shop-storefront/internal/metrics"
	"github.com/tm-acme-shop/acme-shop-storefront/internal/models"
	"github.com/tm-acme-shop/acme-shop-storefront/internal/repository"
)

// Wishlist is the shopper's ordered list of saved products, at most one entry
// per product id.
type Wishlist struct {
	mu        sync.RWMutex
	items     []models.WishlistItem
	persisted *repository.Persisted[[]models.WishlistItem]
	metrics   *metrics.Metrics
	logger    *logging.LoggerV2
}

func NewWishlist(store repository.Store, m *metrics.Metrics) *Wishlist {
	if m == nil {
		m = metrics.NewNop()
	}
	return &Wishlist{
		persisted: repository.NewPersisted[[]models.WishlistItem](store, repository.KeyWishlist),
		metrics:   m,
		logger:    logging.NewLoggerV2("wishlist"),
	}
}

// Initialize loads the persisted wishlist. Absent or unreadable values start
// empty.
func (w *Wishlist) Initialize(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	stored, ok, err := w.persisted.Load(ctx)
	if err != nil {
		w.logger.Error("Failed to load wishlist", logging.Fields{"error": err.Error()})
		w.items = nil
		return nil
	}
	if ok {
		w.items = stored
	}
	return nil
}

func (w *Wishlist) Items() []models.WishlistItem {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]models.WishlistItem, len(w.items))
	copy(out, w.items)
	return out
}

func (w *Wishlist) Contains(id string) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return indexOfWishlistItem(w.items, id) >= 0
}

// Add appends item unless its product is already saved. The bool reports
// whether anything was added.
func (w *Wishlist) Add(ctx context.Context, item models.WishlistItem) (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.addLocked(ctx, item)
}

// Remove deletes the entry for product id. The bool reports whether an entry
// existed.
func (w *Wishlist) Remove(ctx context.Context, id string) (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.removeLocked(ctx, id)
}

// Toggle removes the product if saved, otherwise adds it. The bool is true
// when the product ends up in the wishlist.
func (w *Wishlist) Toggle(ctx context.Context, item models.WishlistItem) (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if indexOfWishlistItem(w.items, item.ID) >= 0 {
		_, err := w.removeLocked(ctx, item.ID)
		return false, err
	}
	_, err := w.addLocked(ctx, item)
	return true, err
}

func (w *Wishlist) addLocked(ctx context.Context, item models.WishlistItem) (bool, error) {
	if indexOfWishlistItem(w.items, item.ID) >= 0 {
		return false, nil
	}

	next := make([]models.WishlistItem, 0, len(w.items)+1)
	next = append(next, w.items...)
	next = append(next, item)
	w.items = next

	w.metrics.WishlistOperations.WithLabelValues("add").Inc()
	return true, writeThrough(ctx, w.persisted, next, w.logger)
}

func (w *Wishlist) removeLocked(ctx context.Context, id string) (bool, error) {
	i := indexOfWishlistItem(w.items, id)
	if i < 0 {
		return false, nil
	}

	next := make([]models.WishlistItem, 0, len(w.items)-1)
	next = append(next, w.items[:i]...)
	next = append(next, w.items[i+1:]...)
	w.items = next

	w.metrics.WishlistOperations.WithLabelValues("remove").Inc()
	return true, writeThrough(ctx, w.persisted, next, w.logger)
}

func indexOfWishlistItem(items []models.WishlistItem, id string) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}
