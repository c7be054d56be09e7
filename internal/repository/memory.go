package repository

import (
	"context"
	"sync"

	"github.com/tm-acme-shop/acme-shop-storefront/internal/logging"
)

// MemoryStore is an in-process Store with a byte quota, mirroring the
// capacity limits of a browser storage area.
type MemoryStore struct {
	mu       sync.RWMutex
	data     map[string]string
	used     int
	quota    int
	disabled bool
	logger   *logging.LoggerV2
}

// NewMemoryStore creates a store holding at most quota bytes of keys and
// values. A quota <= 0 means unlimited.
func NewMemoryStore(quota int) *MemoryStore {
	return &MemoryStore{
		data:   make(map[string]string),
		quota:  quota,
		logger: logging.NewLoggerV2("memory-store"),
	}
}

// Get returns the value stored under key.
func (m *MemoryStore) Get(ctx context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.disabled {
		return "", false, ErrStorageDisabled
	}

	value, ok := m.data[key]
	return value, ok, nil
}

// Set overwrites key. It fails without modifying anything if the new total
// size would exceed the quota.
func (m *MemoryStore) Set(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.disabled {
		return ErrStorageDisabled
	}

	used := m.used + len(key) + len(value)
	if old, ok := m.data[key]; ok {
		used -= len(key) + len(old)
	}

	if m.quota > 0 && used > m.quota {
		m.logger.Warn("Storage quota exceeded", logging.Fields{
			"key":   key,
			"size":  len(value),
			"used":  m.used,
			"quota": m.quota,
		})
		return ErrQuotaExceeded
	}

	m.data[key] = value
	m.used = used
	return nil
}

// Delete removes key. Missing keys are ignored.
func (m *MemoryStore) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.disabled {
		return ErrStorageDisabled
	}

	if old, ok := m.data[key]; ok {
		m.used -= len(key) + len(old)
		delete(m.data, key)
	}
	return nil
}

// SetDisabled makes every operation fail with ErrStorageDisabled, the way a
// browser behaves with storage turned off.
func (m *MemoryStore) SetDisabled(disabled bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.disabled = disabled
}

// Used returns the number of bytes currently stored.
func (m *MemoryStore) Used() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.used
}
