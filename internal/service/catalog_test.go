package service

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tm-acme-shop/acme-shop-storefront/internal/errors"
	"github.com/tm-acme-shop/acme-shop-storefront/internal/events"
	"github.com/tm-acme-shop/acme-shop-storefront/internal/metrics"
	"github.com/tm-acme-shop/acme-shop-storefront/internal/models"
	"github.com/tm-acme-shop/acme-shop-storefront/internal/repository"
)

func assertCatalogPersisted(t *testing.T, store repository.Store, c *Catalog) {
	t.Helper()

	raw, ok, err := store.Get(context.Background(), repository.KeyProducts)
	require.NoError(t, err)
	require.True(t, ok, "products key must be written")

	want, err := json.Marshal(c.Products())
	require.NoError(t, err)
	assert.JSONEq(t, string(want), raw)
}

func TestCatalog_SeedsDefaultsOnFirstRun(t *testing.T) {
	store := repository.NewMemoryStore(0)
	c, _ := newTestCatalog(t, store)

	products := c.Products()
	require.Len(t, products, 6)
	assert.Equal(t, "1", products[0].ID)
	assert.Equal(t, "Modern Gray Armchair", products[0].Name)
	assert.Equal(t, "299.99", products[0].Price.StringFixed(2))
	assert.Equal(t, "6", products[5].ID)
	assert.Equal(t, []string{"Furniture", "Lighting", "Decor", "Accessories"}, c.Categories())

	assertCatalogPersisted(t, store, c)
}

func TestCatalog_DoesNotReseedPersistedCatalog(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore(0)

	first, _ := newTestCatalog(t, store)
	_, err := first.Delete(ctx, "1")
	require.NoError(t, err)
	_, err = first.Add(ctx, sampleProduct("Rug", "Decor"))
	require.NoError(t, err)

	second, _ := newTestCatalog(t, store)
	want, err := json.Marshal(first.Products())
	require.NoError(t, err)
	got, err := json.Marshal(second.Products())
	require.NoError(t, err)
	assert.JSONEq(t, string(want), string(got))
	_, ok := second.Product("1")
	assert.False(t, ok, "deleted seed product must not come back")
}

func TestCatalog_EmptyPersistedCatalogStaysEmpty(t *testing.T) {
	store := repository.NewMemoryStore(0)
	require.NoError(t, store.Set(context.Background(), repository.KeyProducts, "[]"))

	c, _ := newTestCatalog(t, store)
	assert.Empty(t, c.Products())
}

func TestCatalog_CorruptValueFallsBackWithoutOverwriting(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore(0)
	require.NoError(t, store.Set(ctx, repository.KeyProducts, "{not json"))

	c, _ := newTestCatalog(t, store)
	assert.Len(t, c.Products(), 6)

	raw, _, _ := store.Get(ctx, repository.KeyProducts)
	assert.Equal(t, "{not json", raw)
}

func TestCatalog_MutationsRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore(0)
	c, m := newTestCatalog(t, store)

	added, err := c.Add(ctx, sampleProduct("Ottoman", "Furniture"))
	require.NoError(t, err)
	assertCatalogPersisted(t, store, c)

	products := c.Products()
	assert.Equal(t, added, products[len(products)-1], "new product goes to the end")

	name := "Velvet Ottoman"
	featured := true
	updated, found, err := c.Update(ctx, added.ID, models.ProductPatch{Name: &name, Featured: &featured})
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Velvet Ottoman", updated.Name)
	assert.Equal(t, added.Price, updated.Price, "unpatched fields are kept")
	assert.Equal(t, added.ID, updated.ID)
	assertCatalogPersisted(t, store, c)

	products = c.Products()
	assert.Equal(t, updated, products[len(products)-1], "update keeps position")

	found, err = c.Delete(ctx, "3")
	require.NoError(t, err)
	assert.True(t, found)
	assertCatalogPersisted(t, store, c)
	assert.Len(t, c.Products(), 6)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.CatalogMutations.WithLabelValues("add")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CatalogMutations.WithLabelValues("update")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CatalogMutations.WithLabelValues("delete")))
}

func TestCatalog_AddAssignsUniqueIDs(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCatalog(t, repository.NewMemoryStore(0))

	seen := make(map[string]bool)
	for _, p := range c.Products() {
		seen[p.ID] = true
	}

	// the clock never moves, so every id comes from the collision bump
	for i := 0; i < 20; i++ {
		p, err := c.Add(ctx, sampleProduct("Stool", "Furniture"))
		require.NoError(t, err)
		assert.False(t, seen[p.ID], "id %s reused", p.ID)
		seen[p.ID] = true
	}
}

func TestCatalog_AddSkipsIDsLoadedFromStore(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore(0)
	clock := newTestClock()
	taken := clock.Now().UnixMilli()

	seed := []models.Product{{ID: strconv.FormatInt(taken, 10), Name: "Existing", Category: "Decor", Price: price("1")}}
	raw, err := json.Marshal(seed)
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, repository.KeyProducts, string(raw)))

	c := NewCatalog(store, NewIDGenerator(clock.Now), nil, nil)
	require.NoError(t, c.Initialize(ctx))

	p, err := c.Add(ctx, sampleProduct("New", "Decor"))
	require.NoError(t, err)
	assert.Equal(t, strconv.FormatInt(taken+1, 10), p.ID)
}

func TestCatalog_UnknownIDsAreNoOps(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore(0)
	c, _ := newTestCatalog(t, store)
	before, _, _ := store.Get(ctx, repository.KeyProducts)

	name := "Ghost"
	_, found, err := c.Update(ctx, "missing", models.ProductPatch{Name: &name})
	assert.NoError(t, err)
	assert.False(t, found)

	found, err = c.Delete(ctx, "missing")
	assert.NoError(t, err)
	assert.False(t, found)

	after, _, _ := store.Get(ctx, repository.KeyProducts)
	assert.Equal(t, before, after)
}

func TestCatalog_ValidationRejectsBeforeMutating(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCatalog(t, repository.NewMemoryStore(0))

	np := sampleProduct("", "Decor")
	_, err := c.Add(ctx, np)
	assert.True(t, errors.IsValidation(err))

	np = sampleProduct("Lamp", "Lighting")
	np.Price = price("-1")
	_, err = c.Add(ctx, np)
	assert.True(t, errors.IsValidation(err))

	empty := " "
	_, _, err = c.Update(ctx, "1", models.ProductPatch{Category: &empty})
	assert.True(t, errors.IsValidation(err))

	assert.Len(t, c.Products(), 6)
}

func TestCatalog_PersistFailureKeepsMemoryState(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore(0)
	c, _ := newTestCatalog(t, store)

	store.SetDisabled(true)
	p, err := c.Add(ctx, sampleProduct("Mirror", "Decor"))
	require.Error(t, err)
	assert.True(t, errors.IsPersist(err))
	assert.ErrorIs(t, err, repository.ErrStorageDisabled)

	got, ok := c.Product(p.ID)
	require.True(t, ok)
	assert.Equal(t, "Mirror", got.Name)
}

func TestCatalog_EmbeddedImagesHitQuota(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore(8 * 1024)
	c, _ := newTestCatalog(t, store)

	np := sampleProduct("Poster", "Decor")
	np.Image = "data:image/png;base64," + strings.Repeat("A", 16*1024)
	_, err := c.Add(ctx, np)

	assert.ErrorIs(t, err, repository.ErrQuotaExceeded)
	assert.Len(t, c.Products(), 7)
}

func TestCatalog_ReadersGetCopies(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCatalog(t, repository.NewMemoryStore(0))

	snapshot := c.Products()
	snapshot[0].Sizes[0] = "Tiny"
	snapshot[0].Name = "Changed"

	p, _ := c.Product("1")
	assert.Equal(t, "Small", p.Sizes[0])
	assert.Equal(t, "Modern Gray Armchair", p.Name)

	before := c.Products()
	_, err := c.Delete(ctx, "1")
	require.NoError(t, err)
	assert.Len(t, before, 6, "earlier snapshots are unaffected by later mutations")
}

func TestCatalog_Queries(t *testing.T) {
	c, _ := newTestCatalog(t, repository.NewMemoryStore(0))

	featured := c.Featured()
	ids := make([]string, len(featured))
	for i, p := range featured {
		ids[i] = p.ID
	}
	assert.Equal(t, []string{"1", "2", "4"}, ids)

	assert.Len(t, c.ByCategory("Furniture"), 3)
	assert.Len(t, c.ByCategory(""), 6)
	assert.Empty(t, c.ByCategory("Garden"))
}

func TestCatalog_Related(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCatalog(t, repository.NewMemoryStore(0))

	// four Furniture products: seeds 1, 2, 6 and this one
	stool, err := c.Add(ctx, sampleProduct("Stool", "Furniture"))
	require.NoError(t, err)

	armchair, _ := c.Product("1")
	related := c.Related(armchair, RelatedLimit)
	ids := make([]string, len(related))
	for i, p := range related {
		ids[i] = p.ID
	}
	assert.Equal(t, []string{"2", "6", stool.ID}, ids)

	lamp, _ := c.Product("3")
	assert.Empty(t, c.Related(lamp, RelatedLimit))

	_, err = c.Add(ctx, sampleProduct("Bench", "Furniture"))
	require.NoError(t, err)
	assert.Len(t, c.Related(armchair, RelatedLimit), 3, "capped at the limit")
}

func TestCatalog_PublishesEvents(t *testing.T) {
	ctx := context.Background()
	pub := events.NewMockEventPublisher()
	c := NewCatalog(repository.NewMemoryStore(0), nil, pub, metrics.NewNop())
	require.NoError(t, c.Initialize(ctx))

	p, err := c.Add(ctx, sampleProduct("Vase", "Decor"))
	require.NoError(t, err)
	newPrice := price("12.50")
	_, _, err = c.Update(ctx, p.ID, models.ProductPatch{Price: &newPrice})
	require.NoError(t, err)
	_, err = c.Delete(ctx, p.ID)
	require.NoError(t, err)
	_, err = c.Delete(ctx, p.ID)
	require.NoError(t, err)

	assert.Equal(t, []events.EventType{
		events.EventTypeProductCreated,
		events.EventTypeProductUpdated,
		events.EventTypeProductDeleted,
	}, pub.Types())
}
