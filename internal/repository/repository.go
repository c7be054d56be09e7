// Package repository is the storefront's persistence boundary: a string
// key/value store scoped to one storefront origin, plus a typed write-through
// container layered on top of it.
package repository

import (
	"context"
	"errors"
)

// Keys under which state slices are persisted.
const (
	KeyProducts  = "products"
	KeyOrders    = "orders"
	KeyCurrency  = "currency"
	KeyAdminAuth = "adminAuth"
	KeyCart      = "cart"
	KeyWishlist  = "wishlist"
)

var (
	// ErrQuotaExceeded is returned by Set when the write would exceed the
	// store's capacity.
	ErrQuotaExceeded = errors.New("storage quota exceeded")

	// ErrStorageDisabled is returned when the medium refuses all access.
	ErrStorageDisabled = errors.New("storage disabled")
)

// Store maps string keys to serialized values. Writes overwrite
// unconditionally and are visible to subsequent reads on the same origin.
type Store interface {
	// Get returns the stored value and whether the key was present.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Pinger is implemented by stores backed by a remote service.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Closer is implemented by stores holding connections.
type Closer interface {
	Close() error
}
