package service

import (
	"context"
	"sync"
	"time"

	"github.com/tm-acme-shop/acme-shop-storefront/internal/logging"
	"github.com/tm-acme-shop/acme-shop-storefront/internal/metrics"
	"github.com/tm-acme-shop/acme-shop-storefront/internal/models"
	"github.com/tm-acme-shop/acme-shop-storefront/internal/repository"
)

// Orders is the ordered list of placed orders. Orders are immutable apart
// from the pending -> fulfilled transition.
type Orders struct {
	mu        sync.RWMutex
	orders    []models.Order
	persisted *repository.Persisted[[]models.Order]
	ids       *IDGenerator
	now       func() time.Time
	publisher EventPublisher
	metrics   *metrics.Metrics
	logger    *logging.LoggerV2
}

func NewOrders(store repository.Store, ids *IDGenerator, now func() time.Time, publisher EventPublisher, m *metrics.Metrics) *Orders {
	if m == nil {
		m = metrics.NewNop()
	}
	if now == nil {
		now = time.Now
	}
	if publisher == nil {
		publisher = nopPublisher{}
	}
	if ids == nil {
		ids = NewIDGenerator(nil)
	}
	return &Orders{
		persisted: repository.NewPersisted[[]models.Order](store, repository.KeyOrders),
		ids:       ids,
		now:       now,
		publisher: publisher,
		metrics:   m,
		logger:    logging.NewLoggerV2("orders"),
	}
}

// Initialize loads persisted orders. Absent or unreadable values start empty.
func (o *Orders) Initialize(ctx context.Context) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	stored, ok, err := o.persisted.Load(ctx)
	if err != nil {
		o.logger.Error("Failed to load orders", logging.Fields{"error": err.Error()})
		o.orders = nil
		return nil
	}
	if ok {
		o.orders = stored
	}

	o.logger.Info("Orders loaded", logging.Fields{"count": len(o.orders)})
	return nil
}

// Orders returns a copy of every order in creation order.
func (o *Orders) Orders() []models.Order {
	o.mu.RLock()
	defer o.mu.RUnlock()

	out := make([]models.Order, len(o.orders))
	for i, order := range o.orders {
		out[i] = order.Clone()
	}
	return out
}

// Order returns the order with id.
func (o *Orders) Order(id string) (models.Order, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()

	if i := indexOfOrder(o.orders, id); i >= 0 {
		return o.orders[i].Clone(), true
	}
	return models.Order{}, false
}

// CountByStatus returns how many orders are in each status.
func (o *Orders) CountByStatus() map[models.OrderStatus]int {
	o.mu.RLock()
	defer o.mu.RUnlock()

	counts := map[models.OrderStatus]int{
		models.OrderStatusPending:   0,
		models.OrderStatusFulfilled: 0,
	}
	for _, order := range o.orders {
		counts[order.Status]++
	}
	return counts
}

// Add assigns an id and creation timestamp, sets the status to pending,
// appends the order and persists the list. A returned *errors.PersistError
// means the order exists in memory only.
func (o *Orders) Add(ctx context.Context, no models.NewOrder) (models.Order, error) {
	o.mu.Lock()
	id := o.ids.Next(func(id string) bool {
		return indexOfOrder(o.orders, id) >= 0
	})
	order := no.Build(id, isoTimestamp(o.now()))

	next := make([]models.Order, 0, len(o.orders)+1)
	next = append(next, o.orders...)
	next = append(next, order)
	o.orders = next

	persistErr := writeThrough(ctx, o.persisted, next, o.logger)
	o.mu.Unlock()

	o.metrics.OrderEvents.WithLabelValues("created").Inc()
	o.logger.Info("Order created", logging.Fields{
		"order_id":   order.ID,
		"item_count": len(order.Items),
		"total":      order.Total.String(),
	})
	logPublishError(o.logger, o.publisher.PublishOrderCreated(ctx, order), logging.Fields{"order_id": order.ID})

	return order.Clone(), persistErr
}

// MarkFulfilled moves the order with id to fulfilled. Unknown ids and orders
// that are already fulfilled are left alone and return nil.
func (o *Orders) MarkFulfilled(ctx context.Context, id string) error {
	o.mu.Lock()
	i := indexOfOrder(o.orders, id)
	if i < 0 {
		o.mu.Unlock()
		o.logger.Debug("Fulfillment ignored, order not found", logging.Fields{"order_id": id})
		return nil
	}

	current := o.orders[i]
	if current.Status == models.OrderStatusFulfilled || !current.Status.CanTransitionTo(models.OrderStatusFulfilled) {
		o.mu.Unlock()
		return nil
	}

	next := make([]models.Order, len(o.orders))
	copy(next, o.orders)
	next[i].Status = models.OrderStatusFulfilled
	fulfilled := next[i]
	o.orders = next

	persistErr := writeThrough(ctx, o.persisted, next, o.logger)
	o.mu.Unlock()

	o.metrics.OrderEvents.WithLabelValues("fulfilled").Inc()
	o.logger.Info("Order fulfilled", logging.Fields{"order_id": id})
	logPublishError(o.logger, o.publisher.PublishOrderFulfilled(ctx, fulfilled), logging.Fields{"order_id": id})

	return persistErr
}

func indexOfOrder(orders []models.Order, id string) int {
	for i := range orders {
		if orders[i].ID == id {
			return i
		}
	}
	return -1
}
