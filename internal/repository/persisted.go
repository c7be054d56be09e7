package repository

import (
	"context"
	"encoding/json"
	"fmt"
)

// Persisted is a write-through container for one JSON-encoded value.
type Persisted[T any] struct {
	store Store
	key   string
}

func NewPersisted[T any](store Store, key string) *Persisted[T] {
	return &Persisted[T]{store: store, key: key}
}

func (p *Persisted[T]) Key() string {
	return p.key
}

// Load decodes the stored value. The bool is false when the key is absent, in
// which case the zero value is returned.
func (p *Persisted[T]) Load(ctx context.Context) (T, bool, error) {
	var value T

	raw, ok, err := p.store.Get(ctx, p.key)
	if err != nil || !ok {
		return value, false, err
	}

	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		return value, false, fmt.Errorf("decode %s: %w", p.key, err)
	}
	return value, true, nil
}

// Save encodes value and overwrites the key.
func (p *Persisted[T]) Save(ctx context.Context, value T) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", p.key, err)
	}
	return p.store.Set(ctx, p.key, string(data))
}

// Clear removes the key.
func (p *Persisted[T]) Clear(ctx context.Context) error {
	return p.store.Delete(ctx, p.key)
}

// RawString persists a literal string without JSON encoding, for keys such as
// the currency label and the admin marker.
type RawString struct {
	store Store
	key   string
}

func NewRawString(store Store, key string) *RawString {
	return &RawString{store: store, key: key}
}

func (r *RawString) Key() string {
	return r.key
}

func (r *RawString) Load(ctx context.Context) (string, bool, error) {
	return r.store.Get(ctx, r.key)
}

func (r *RawString) Save(ctx context.Context, value string) error {
	return r.store.Set(ctx, r.key, value)
}

func (r *RawString) Clear(ctx context.Context) error {
	return r.store.Delete(ctx, r.key)
}
