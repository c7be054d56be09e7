package events

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/tm-acme-shop/acme-shop-storefront/internal/config"
	"github.com/tm-acme-shop/acme-shop-storefront/internal/logging"
	"github.com/tm-acme-shop/acme-shop-storefront/internal/models"
)

// EventType represents the type of storefront event.
type EventType string

const (
	EventTypeProductCreated EventType = "product.created"
	EventTypeProductUpdated EventType = "product.updated"
	EventTypeProductDeleted EventType = "product.deleted"
	EventTypeOrderCreated   EventType = "order.created"
	EventTypeOrderFulfilled EventType = "order.fulfilled"
)

// StorefrontEvent is the envelope written to the storefront topic.
type StorefrontEvent struct {
	ID        string          `json:"id"`
	Type      EventType       `json:"type"`
	Origin    string          `json:"origin"`
	EntityID  string          `json:"entity_id"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher publishes catalog and order changes to Kafka.
type KafkaPublisher struct {
	writer messageWriter
	origin string
	logger *logging.LoggerV2
}

// NewKafkaPublisher creates a new Kafka-based event publisher.
func NewKafkaPublisher(cfg config.KafkaConfig, origin string, logger *logging.LoggerV2) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.StorefrontTopic,
		Balancer:     &kafka.Hash{},
		WriteTimeout: 10 * time.Second,
		RequiredAcks: kafka.RequireOne,
	}

	return &KafkaPublisher{
		writer: writer,
		origin: origin,
		logger: logger,
	}
}

func (p *KafkaPublisher) PublishProductCreated(ctx context.Context, product models.Product) error {
	return p.publishEntity(ctx, EventTypeProductCreated, product.ID, product)
}

func (p *KafkaPublisher) PublishProductUpdated(ctx context.Context, product models.Product) error {
	return p.publishEntity(ctx, EventTypeProductUpdated, product.ID, product)
}

func (p *KafkaPublisher) PublishProductDeleted(ctx context.Context, id string) error {
	return p.publish(ctx, p.createEvent(EventTypeProductDeleted, id, nil))
}

func (p *KafkaPublisher) PublishOrderCreated(ctx context.Context, order models.Order) error {
	return p.publishEntity(ctx, EventTypeOrderCreated, order.ID, order)
}

func (p *KafkaPublisher) PublishOrderFulfilled(ctx context.Context, order models.Order) error {
	return p.publishEntity(ctx, EventTypeOrderFulfilled, order.ID, order)
}

func (p *KafkaPublisher) publishEntity(ctx context.Context, eventType EventType, id string, entity interface{}) error {
	p.logger.Debug("Publishing storefront event", logging.Fields{
		"event_type": eventType,
		"entity_id":  id,
	})

	data, err := json.Marshal(entity)
	if err != nil {
		return err
	}
	return p.publish(ctx, p.createEvent(eventType, id, data))
}

func (p *KafkaPublisher) createEvent(eventType EventType, entityID string, data []byte) *StorefrontEvent {
	return &StorefrontEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Origin:    p.origin,
		EntityID:  entityID,
		Data:      data,
		Timestamp: time.Now().UTC(),
	}
}

func (p *KafkaPublisher) publish(ctx context.Context, event *StorefrontEvent) error {
	eventData, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(event.EntityID),
		Value: eventData,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.Type)},
			{Key: "event_id", Value: []byte(event.ID)},
			{Key: "origin", Value: []byte(event.Origin)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("Failed to publish event", logging.Fields{
			"event_id":   event.ID,
			"event_type": event.Type,
			"entity_id":  event.EntityID,
			"error":      err.Error(),
		})
		return err
	}

	p.logger.Info("Event published", logging.Fields{
		"event_id":   event.ID,
		"event_type": event.Type,
		"entity_id":  event.EntityID,
	})

	return nil
}

// Close closes the Kafka writer.
func (p *KafkaPublisher) Close() error {
	p.logger.Info("Closing Kafka publisher")
	return p.writer.Close()
}

// NoopPublisher discards every event. Used when events are disabled.
type NoopPublisher struct{}

func (NoopPublisher) PublishProductCreated(context.Context, models.Product) error { return nil }
func (NoopPublisher) PublishProductUpdated(context.Context, models.Product) error { return nil }
func (NoopPublisher) PublishProductDeleted(context.Context, string) error         { return nil }
func (NoopPublisher) PublishOrderCreated(context.Context, models.Order) error     { return nil }
func (NoopPublisher) PublishOrderFulfilled(context.Context, models.Order) error   { return nil }
func (NoopPublisher) Close() error                                                { return nil }

// MockEventPublisher records events for tests.
type MockEventPublisher struct {
	mu     sync.Mutex
	Events []*StorefrontEvent
}

func NewMockEventPublisher() *MockEventPublisher {
	return &MockEventPublisher{
		Events: make([]*StorefrontEvent, 0),
	}
}

func (m *MockEventPublisher) record(eventType EventType, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, &StorefrontEvent{Type: eventType, EntityID: id})
	return nil
}

func (m *MockEventPublisher) PublishProductCreated(ctx context.Context, product models.Product) error {
	return m.record(EventTypeProductCreated, product.ID)
}

func (m *MockEventPublisher) PublishProductUpdated(ctx context.Context, product models.Product) error {
	return m.record(EventTypeProductUpdated, product.ID)
}

func (m *MockEventPublisher) PublishProductDeleted(ctx context.Context, id string) error {
	return m.record(EventTypeProductDeleted, id)
}

func (m *MockEventPublisher) PublishOrderCreated(ctx context.Context, order models.Order) error {
	return m.record(EventTypeOrderCreated, order.ID)
}

func (m *MockEventPublisher) PublishOrderFulfilled(ctx context.Context, order models.Order) error {
	return m.record(EventTypeOrderFulfilled, order.ID)
}

// Types returns the recorded event types in order.
func (m *MockEventPublisher) Types() []EventType {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]EventType, len(m.Events))
	for i, e := range m.Events {
		out[i] = e.Type
	}
	return out
}
