// Package service holds the storefront's state containers and the operations
// the views call on them. Each container keeps the authoritative copy of its
// slice in memory and writes it through to the store after every mutation.
package service

import (
	"context"
	"time"

	"github.com/tm-acme-shop/acme-shop-storefront/internal/errors"
	"github.com/tm-acme-shop/acme-shop-storefront/internal/logging"
	"github.com/tm-acme-shop/acme-shop-storefront/internal/models"
)

// EventPublisher receives catalog and order changes.
type EventPublisher interface {
	PublishProductCreated(ctx context.Context, product models.Product) error
	PublishProductUpdated(ctx context.Context, product models.Product) error
	PublishProductDeleted(ctx context.Context, id string) error
	PublishOrderCreated(ctx context.Context, order models.Order) error
	PublishOrderFulfilled(ctx context.Context, order models.Order) error
}

type nopPublisher struct{}

func (nopPublisher) PublishProductCreated(context.Context, models.Product) error { return nil }
func (nopPublisher) PublishProductUpdated(context.Context, models.Product) error { return nil }
func (nopPublisher) PublishProductDeleted(context.Context, string) error         { return nil }
func (nopPublisher) PublishOrderCreated(context.Context, models.Order) error     { return nil }
func (nopPublisher) PublishOrderFulfilled(context.Context, models.Order) error   { return nil }

// isoTimestamp formats t the way order timestamps are stored:
// UTC, millisecond precision, trailing Z.
func isoTimestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z")
}

// saver is satisfied by repository.Persisted and repository.RawString.
type saver[T any] interface {
	Key() string
	Save(ctx context.Context, value T) error
}

// writeThrough saves value and converts a failure into a *errors.PersistError.
// The caller has already committed value in memory.
func writeThrough[T any](ctx context.Context, s saver[T], value T, logger *logging.LoggerV2) error {
	if err := s.Save(ctx, value); err != nil {
		logger.Error("Failed to persist state", logging.Fields{
			"key":   s.Key(),
			"error": err.Error(),
		})
		return &errors.PersistError{Key: s.Key(), Err: err}
	}
	return nil
}

func logPublishError(logger *logging.LoggerV2, err error, fields logging.Fields) {
	if err == nil {
		return
	}
	fields["error"] = err.Error()
	logger.Error("Failed to publish event", fields)
}
