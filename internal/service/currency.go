package service

import (
	"context"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/tm-acme-shop/acme-shop-storefront/internal/errors"
	"github.com/tm-acme-shop/acme-shop-storefront/internal/logging"
	"github.com/tm-acme-shop/acme-shop-storefront/internal/repository"
)

const DefaultCurrency = "GHS"

// Currency is the display label prefixed to every price. It does no
// conversion.
type Currency struct {
	mu        sync.RWMutex
	label     string
	persisted *repository.RawString
	logger    *logging.LoggerV2
}

func NewCurrency(store repository.Store) *Currency {
	return &Currency{
		label:     DefaultCurrency,
		persisted: repository.NewRawString(store, repository.KeyCurrency),
		logger:    logging.NewLoggerV2("currency"),
	}
}

// Initialize loads the persisted label, falling back to the default.
func (c *Currency) Initialize(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	value, ok, err := c.persisted.Load(ctx)
	if err != nil {
		c.logger.Error("Failed to load currency", logging.Fields{"error": err.Error()})
	}
	if err != nil || !ok || value == "" {
		c.label = DefaultCurrency
		return nil
	}
	c.label = value
	return nil
}

func (c *Currency) Label() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.label
}

// Set replaces the label and persists it.
func (c *Currency) Set(ctx context.Context, label string) error {
	label = strings.TrimSpace(label)
	if label == "" {
		return errors.NewValidationError("currency", "currency label is required")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.label = label
	c.logger.Info("Currency updated", logging.Fields{"currency": label})
	return writeThrough(ctx, c.persisted, label, c.logger)
}

// Format renders price with the current label, e.g. "GHS 299.99".
func (c *Currency) Format(price decimal.Decimal) string {
	return c.Label() + " " + price.StringFixed(2)
}
