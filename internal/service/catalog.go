package service

import (
	"context"
	"sync"

	"github.com/tm-acme-shop/acme-shop-storefront/internal/logging"
	"github.com/tm-acme-shop/acme-shop-storefront/internal/metrics"
	"github.com/tm-acme-shop/acme-shop-storefront/internal/models"
	"github.com/tm-acme-shop/acme-shop-storefront/internal/repository"
)

// Catalog is the ordered list of products. Every mutation replaces the list
// with a new slice, so snapshots handed out earlier never change.
type Catalog struct {
	mu        sync.RWMutex
	products  []models.Product
	persisted *repository.Persisted[[]models.Product]
	ids       *IDGenerator
	publisher EventPublisher
	metrics   *metrics.Metrics
	logger    *logging.LoggerV2
}

func NewCatalog(store repository.Store, ids *IDGenerator, publisher EventPublisher, m *metrics.Metrics) *Catalog {
	if m == nil {
		m = metrics.NewNop()
	}
	if publisher == nil {
		publisher = nopPublisher{}
	}
	if ids == nil {
		ids = NewIDGenerator(nil)
	}
	return &Catalog{
		persisted: repository.NewPersisted[[]models.Product](store, repository.KeyProducts),
		ids:       ids,
		publisher: publisher,
		metrics:   m,
		logger:    logging.NewLoggerV2("catalog"),
	}
}

// Initialize loads the persisted catalog, or seeds and persists the default
// catalog when nothing has been stored yet. A stored value that cannot be
// read leaves the default catalog in memory without overwriting the store.
func (c *Catalog) Initialize(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	stored, ok, err := c.persisted.Load(ctx)
	if err != nil {
		c.logger.Error("Failed to load catalog, using defaults", logging.Fields{"error": err.Error()})
		c.products = DefaultProducts()
		return nil
	}

	if ok {
		c.products = stored
		c.logger.Info("Catalog loaded", logging.Fields{"count": len(stored)})
		return nil
	}

	c.products = DefaultProducts()
	c.logger.Info("Catalog seeded with defaults", logging.Fields{"count": len(c.products)})
	return writeThrough(ctx, c.persisted, c.products, c.logger)
}

// Products returns a copy of the catalog in order.
func (c *Catalog) Products() []models.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return cloneProducts(c.products)
}

// Product returns the product with id.
func (c *Catalog) Product(id string) (models.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if i := indexOfProduct(c.products, id); i >= 0 {
		return c.products[i].Clone(), true
	}
	return models.Product{}, false
}

// ByCategory returns the products in category, in catalog order. An empty
// category matches everything.
func (c *Catalog) ByCategory(category string) []models.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]models.Product, 0, len(c.products))
	for _, p := range c.products {
		if category == "" || p.Category == category {
			out = append(out, p.Clone())
		}
	}
	return out
}

// Featured returns the featured products in catalog order.
func (c *Catalog) Featured() []models.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var out []models.Product
	for _, p := range c.products {
		if p.Featured {
			out = append(out, p.Clone())
		}
	}
	return out
}

// Categories returns each category once, in order of first appearance.
func (c *Catalog) Categories() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	seen := make(map[string]bool)
	var out []string
	for _, p := range c.products {
		if !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	return out
}

// Related returns up to limit other products sharing product's category, in
// catalog order.
func (c *Catalog) Related(product models.Product, limit int) []models.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]models.Product, 0, limit)
	for _, p := range c.products {
		if len(out) == limit {
			break
		}
		if p.Category == product.Category && p.ID != product.ID {
			out = append(out, p.Clone())
		}
	}
	return out
}

// Add assigns a new id, appends the product and persists the catalog.
// A non-nil error is either a validation failure (nothing changed) or a
// *errors.PersistError (the product was added in memory).
func (c *Catalog) Add(ctx context.Context, np models.NewProduct) (models.Product, error) {
	if err := ValidateNewProduct(&np); err != nil {
		return models.Product{}, err
	}

	c.mu.Lock()
	product := np.WithID(c.ids.Next(func(id string) bool {
		return indexOfProduct(c.products, id) >= 0
	}))

	next := make([]models.Product, 0, len(c.products)+1)
	next = append(next, c.products...)
	next = append(next, product)
	c.products = next

	persistErr := writeThrough(ctx, c.persisted, next, c.logger)
	c.mu.Unlock()

	c.metrics.CatalogMutations.WithLabelValues("add").Inc()
	c.logger.Info("Product added", logging.Fields{
		"product_id": product.ID,
		"name":       product.Name,
	})
	logPublishError(c.logger, c.publisher.PublishProductCreated(ctx, product), logging.Fields{"product_id": product.ID})

	return product.Clone(), persistErr
}

// Update merges patch into the product with id, keeping its position. The
// bool is false, and nothing is written, when no product has that id.
func (c *Catalog) Update(ctx context.Context, id string, patch models.ProductPatch) (models.Product, bool, error) {
	if err := ValidateProductPatch(&patch); err != nil {
		return models.Product{}, false, err
	}

	c.mu.Lock()
	i := indexOfProduct(c.products, id)
	if i < 0 {
		c.mu.Unlock()
		c.logger.Debug("Update ignored, product not found", logging.Fields{"product_id": id})
		return models.Product{}, false, nil
	}

	next := make([]models.Product, len(c.products))
	copy(next, c.products)
	next[i] = patch.Apply(c.products[i])
	updated := next[i]
	c.products = next

	persistErr := writeThrough(ctx, c.persisted, next, c.logger)
	c.mu.Unlock()

	c.metrics.CatalogMutations.WithLabelValues("update").Inc()
	c.logger.Info("Product updated", logging.Fields{"product_id": id})
	logPublishError(c.logger, c.publisher.PublishProductUpdated(ctx, updated), logging.Fields{"product_id": id})

	return updated.Clone(), true, persistErr
}

// Delete removes the product with id. The bool is false, and nothing is
// written, when no product has that id.
func (c *Catalog) Delete(ctx context.Context, id string) (bool, error) {
	c.mu.Lock()
	i := indexOfProduct(c.products, id)
	if i < 0 {
		c.mu.Unlock()
		c.logger.Debug("Delete ignored, product not found", logging.Fields{"product_id": id})
		return false, nil
	}

	next := make([]models.Product, 0, len(c.products)-1)
	next = append(next, c.products[:i]...)
	next = append(next, c.products[i+1:]...)
	c.products = next

	persistErr := writeThrough(ctx, c.persisted, next, c.logger)
	c.mu.Unlock()

	c.metrics.CatalogMutations.WithLabelValues("delete").Inc()
	c.logger.Info("Product deleted", logging.Fields{"product_id": id})
	logPublishError(c.logger, c.publisher.PublishProductDeleted(ctx, id), logging.Fields{"product_id": id})

	return true, persistErr
}

func indexOfProduct(products []models.Product, id string) int {
	for i := range products {
		if products[i].ID == id {
			return i
		}
	}
	return -1
}

func cloneProducts(products []models.Product) []models.Product {
	out := make([]models.Product, len(products))
	for i, p := range products {
		out[i] = p.Clone()
	}
	return out
}
