package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/tm-acme-shop/acme-shop-storefront/internal/metrics"
	"github.com/tm-acme-shop/acme-shop-storefront/internal/models"
	"github.com/tm-acme-shop/acme-shop-storefront/internal/repository"
)

var testEpoch = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// testClock returns a fixed time that tests can advance.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: testEpoch}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestCatalog(t *testing.T, store repository.Store) (*Catalog, *metrics.Metrics) {
	t.Helper()
	m := metrics.NewNop()
	c := NewCatalog(store, NewIDGenerator(newTestClock().Now), nil, m)
	require.NoError(t, c.Initialize(context.Background()))
	return c, m
}

func newTestStorefront(t *testing.T, store repository.Store) *Storefront {
	t.Helper()
	s := New(store, Options{
		AdminPassword: "admin123",
		Now:           newTestClock().Now,
	})
	require.NoError(t, s.Initialize(context.Background()))
	return s
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func sampleProduct(name, category string) models.NewProduct {
	return models.NewProduct{
		Name:        name,
		Price:       price("10.00"),
		Image:       "https://example.com/" + name + ".jpg",
		Description: name,
		Category:    category,
	}
}
