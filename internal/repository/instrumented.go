package repository

import (
	"context"

	"github.com/tm-acme-shop/acme-shop-storefront/internal/metrics"
)

// InstrumentedStore counts every operation on the wrapped store.
type InstrumentedStore struct {
	next    Store
	metrics *metrics.Metrics
}

func NewInstrumentedStore(next Store, m *metrics.Metrics) *InstrumentedStore {
	return &InstrumentedStore{next: next, metrics: m}
}

func (s *InstrumentedStore) Get(ctx context.Context, key string) (string, bool, error) {
	value, ok, err := s.next.Get(ctx, key)
	result := "hit"
	switch {
	case err != nil:
		result = "error"
	case !ok:
		result = "miss"
	}
	s.metrics.StoreOperations.WithLabelValues(key, "get", result).Inc()
	return value, ok, err
}

func (s *InstrumentedStore) Set(ctx context.Context, key, value string) error {
	err := s.next.Set(ctx, key, value)
	s.metrics.StoreOperations.WithLabelValues(key, "set", resultLabel(err)).Inc()
	return err
}

func (s *InstrumentedStore) Delete(ctx context.Context, key string) error {
	err := s.next.Delete(ctx, key)
	s.metrics.StoreOperations.WithLabelValues(key, "delete", resultLabel(err)).Inc()
	return err
}

func (s *InstrumentedStore) Ping(ctx context.Context) error {
	if p, ok := s.next.(Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}

func (s *InstrumentedStore) Close() error {
	if c, ok := s.next.(Closer); ok {
		return c.Close()
	}
	return nil
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case err == ErrQuotaExceeded:
		return "quota_exceeded"
	case err == ErrStorageDisabled:
		return "disabled"
	default:
		return "error"
	}
}
