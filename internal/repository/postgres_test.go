package repository

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tm-acme-shop/acme-shop-storefront/internal/logging"

	_ "github.com/lib/pq"
)

func openTestDatabase(t *testing.T) *sql.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("Integration test - requires TEST_DATABASE_URL")
	}

	db, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.Ping())
	return db
}

func TestPostgresStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	db := openTestDatabase(t)

	store := NewPostgresStore(db, "test-"+t.Name(), logging.NewLoggerV2("test"))
	require.NoError(t, store.EnsureSchema(ctx))
	t.Cleanup(func() { _ = store.Delete(ctx, KeyProducts) })

	_, ok, err := store.Get(ctx, KeyProducts)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, KeyProducts, `[{"id":"1"}]`))
	require.NoError(t, store.Set(ctx, KeyProducts, `[{"id":"2"}]`))

	value, ok, err := store.Get(ctx, KeyProducts)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":"2"}]`, value)

	require.NoError(t, store.Delete(ctx, KeyProducts))
	_, ok, _ = store.Get(ctx, KeyProducts)
	assert.False(t, ok)
}

func TestPostgresStore_OriginIsolation(t *testing.T) {
	ctx := context.Background()
	db := openTestDatabase(t)
	logger := logging.NewLoggerV2("test")

	a := NewPostgresStore(db, "a-"+t.Name(), logger)
	b := NewPostgresStore(db, "b-"+t.Name(), logger)
	require.NoError(t, a.EnsureSchema(ctx))
	t.Cleanup(func() { _ = a.Delete(ctx, KeyCurrency) })

	require.NoError(t, a.Set(ctx, KeyCurrency, "GHS"))

	_, ok, err := b.Get(ctx, KeyCurrency)
	require.NoError(t, err)
	assert.False(t, ok)
}
