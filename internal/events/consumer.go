package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/tm-acme-shop/acme-shop-storefront/internal/config"
	"github.com/tm-acme-shop/acme-shop-storefront/internal/logging"
)

// FulfillmentEventType represents the type of a warehouse event.
type FulfillmentEventType string

const (
	FulfillmentEventShipped   FulfillmentEventType = "fulfillment.shipped"
	FulfillmentEventDelivered FulfillmentEventType = "fulfillment.delivered"
)

// FulfillmentEvent is read from the fulfillment topic.
type FulfillmentEvent struct {
	ID        string               `json:"id"`
	Type      FulfillmentEventType `json:"type"`
	OrderID   string               `json:"order_id"`
	Timestamp time.Time            `json:"timestamp"`
}

// OrderFulfiller is the operation fulfillment events drive.
type OrderFulfiller interface {
	MarkFulfilled(ctx context.Context, id string) error
}

type messageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

// KafkaConsumer marks orders fulfilled when the warehouse reports them shipped.
type KafkaConsumer struct {
	reader    messageReader
	fulfiller OrderFulfiller
	logger    *logging.LoggerV2
	stopCh    chan struct{}
}

// NewKafkaConsumer creates a new Kafka-based fulfillment consumer.
func NewKafkaConsumer(cfg config.KafkaConfig, fulfiller OrderFulfiller, logger *logging.LoggerV2) *KafkaConsumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Brokers,
		Topic:    cfg.FulfillmentTopic,
		GroupID:  cfg.ConsumerGroup,
		MinBytes: 1,
		MaxBytes: 10e6,
		MaxWait:  time.Second,
	})

	return &KafkaConsumer{
		reader:    reader,
		fulfiller: fulfiller,
		logger:    logger,
		stopCh:    make(chan struct{}),
	}
}

// Start begins consuming events. It returns when ctx is done or Stop is called.
func (c *KafkaConsumer) Start(ctx context.Context) error {
	c.logger.Info("Starting Kafka consumer")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-c.stopCh:
			c.logger.Info("Kafka consumer stopped")
			return nil
		default:
			msg, err := c.reader.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				select {
				case <-c.stopCh:
					c.logger.Info("Kafka consumer stopped")
					return nil
				default:
				}
				c.logger.Error("Failed to read message", logging.Fields{"error": err.Error()})
				continue
			}

			c.handleMessage(ctx, msg)
		}
	}
}

// Stop stops the consumer.
func (c *KafkaConsumer) Stop() {
	close(c.stopCh)
	c.reader.Close()
}

func (c *KafkaConsumer) handleMessage(ctx context.Context, msg kafka.Message) {
	c.logger.Debug("Received message", logging.Fields{
		"topic":     msg.Topic,
		"partition": msg.Partition,
		"offset":    msg.Offset,
	})

	var event FulfillmentEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		c.logger.Error("Failed to unmarshal event", logging.Fields{"error": err.Error()})
		return
	}

	switch event.Type {
	case FulfillmentEventShipped, FulfillmentEventDelivered:
		c.handleFulfilled(ctx, &event)
	default:
		c.logger.Debug("Ignoring unknown event type", logging.Fields{"type": event.Type})
	}
}

func (c *KafkaConsumer) handleFulfilled(ctx context.Context, event *FulfillmentEvent) {
	if event.OrderID == "" {
		c.logger.Warn("Fulfillment event without order id", logging.Fields{"event_id": event.ID})
		return
	}

	c.logger.Info("Handling fulfillment event", logging.Fields{
		"event_id": event.ID,
		"type":     event.Type,
		"order_id": event.OrderID,
	})

	// Unknown ids are a no-op in MarkFulfilled; only storage failures surface here.
	if err := c.fulfiller.MarkFulfilled(ctx, event.OrderID); err != nil {
		c.logger.Error("Failed to mark order fulfilled", logging.Fields{
			"order_id": event.OrderID,
			"error":    err.Error(),
		})
	}
}
