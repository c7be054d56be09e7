package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tm-acme-shop/acme-shop-storefront/internal/metrics"
	"github.com/tm-acme-shop/acme-shop-storefront/internal/models"
	"github.com/tm-acme-shop/acme-shop-storefront/internal/repository"
)

func armchairLine(size, color string, qty int) models.CartItem {
	return models.CartItem{
		ID:       "1",
		Name:     "Modern Gray Armchair",
		Price:    price("299.99"),
		Size:     size,
		Color:    color,
		Quantity: qty,
	}
}

func TestCart_AddMergesByIdentity(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore(0)
	m := metrics.NewNop()
	c := NewCart(store, m)
	require.NoError(t, c.Initialize(ctx))

	require.NoError(t, c.Add(ctx, armchairLine("Small", "Gray", 1)))
	require.NoError(t, c.Add(ctx, armchairLine("Small", "Gray", 2)))
	require.NoError(t, c.Add(ctx, armchairLine("Large", "Gray", 0)))

	items := c.Items()
	require.Len(t, items, 2)
	assert.Equal(t, 3, items[0].Quantity)
	assert.Equal(t, "Large", items[1].Size)
	assert.Equal(t, 1, items[1].Quantity, "quantity defaults to 1")

	assert.Equal(t, 4, c.Count())
	assert.Equal(t, "1199.96", c.Total().StringFixed(2))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.CartOperations.WithLabelValues("add")))

	raw, ok, err := store.Get(ctx, repository.KeyCart)
	require.NoError(t, err)
	require.True(t, ok)
	var stored []models.CartItem
	require.NoError(t, json.Unmarshal([]byte(raw), &stored))
	assert.Len(t, stored, 2)
}

func TestCart_UpdateRemoveClear(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore(0)
	c := NewCart(store, nil)
	require.NoError(t, c.Initialize(ctx))

	small := armchairLine("Small", "Gray", 1)
	large := armchairLine("Large", "Navy", 1)
	require.NoError(t, c.Add(ctx, small))
	require.NoError(t, c.Add(ctx, large))

	found, err := c.UpdateQuantity(ctx, small.Key(), 5)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 6, c.Count())

	found, err = c.UpdateQuantity(ctx, models.CartKey{ID: "missing"}, 2)
	require.NoError(t, err)
	assert.False(t, found)

	found, err = c.UpdateQuantity(ctx, small.Key(), 0)
	require.NoError(t, err)
	assert.True(t, found)
	require.Len(t, c.Items(), 1)
	assert.Equal(t, "Large", c.Items()[0].Size)

	found, err = c.Remove(ctx, small.Key())
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, c.Clear(ctx))
	assert.Empty(t, c.Items())
	assert.True(t, c.Total().IsZero())

	raw, _, _ := store.Get(ctx, repository.KeyCart)
	assert.JSONEq(t, "[]", raw)
}

func TestCart_ReloadFromStore(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore(0)

	first := NewCart(store, nil)
	require.NoError(t, first.Initialize(ctx))
	require.NoError(t, first.Add(ctx, armchairLine("Medium", "Beige", 2)))

	second := NewCart(store, nil)
	require.NoError(t, second.Initialize(ctx))
	items := second.Items()
	require.Len(t, items, 1)
	assert.Equal(t, first.Items()[0].Key(), items[0].Key())
	assert.Equal(t, 2, items[0].Quantity)
}

func TestWishlist_ToggleAddRemove(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore(0)
	m := metrics.NewNop()
	w := NewWishlist(store, m)
	require.NoError(t, w.Initialize(ctx))

	lamp := models.WishlistItem{ID: "3", Name: "Ceramic Table Lamp", Price: price("79.99"), Category: "Lighting"}

	added, err := w.Toggle(ctx, lamp)
	require.NoError(t, err)
	assert.True(t, added)
	assert.True(t, w.Contains("3"))

	ok, err := w.Add(ctx, lamp)
	require.NoError(t, err)
	assert.False(t, ok, "one entry per product")
	assert.Len(t, w.Items(), 1)

	added, err = w.Toggle(ctx, lamp)
	require.NoError(t, err)
	assert.False(t, added)
	assert.False(t, w.Contains("3"))

	removed, err := w.Remove(ctx, "3")
	require.NoError(t, err)
	assert.False(t, removed)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.WishlistOperations.WithLabelValues("add")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.WishlistOperations.WithLabelValues("remove")))

	raw, _, _ := store.Get(ctx, repository.KeyWishlist)
	assert.JSONEq(t, "[]", raw)
}

func TestWishlist_ReloadFromStore(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore(0)

	first := NewWishlist(store, nil)
	require.NoError(t, first.Initialize(ctx))
	_, err := first.Add(ctx, models.WishlistItem{ID: "4", Name: "Decorative Wall Art", Price: price("149.99"), Category: "Decor"})
	require.NoError(t, err)

	second := NewWishlist(store, nil)
	require.NoError(t, second.Initialize(ctx))
	assert.True(t, second.Contains("4"))
}
