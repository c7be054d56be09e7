package models

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	decimal.MarshalJSONWithoutQuotes = true
	os.Exit(m.Run())
}

func TestProductPatch_Apply(t *testing.T) {
	original := Product{
		ID:       "1",
		Name:     "Modern Gray Armchair",
		Price:    decimal.RequireFromString("299.99"),
		Category: "Furniture",
		Sizes:    []string{"Small", "Medium"},
	}

	name := "Armchair"
	price := decimal.RequireFromString("249.50")
	sizes := []string{"Large"}
	patched := ProductPatch{Name: &name, Price: &price, Sizes: &sizes}.Apply(original)

	assert.Equal(t, "1", patched.ID)
	assert.Equal(t, "Armchair", patched.Name)
	assert.True(t, price.Equal(patched.Price))
	assert.Equal(t, "Furniture", patched.Category)
	assert.Equal(t, []string{"Large"}, patched.Sizes)

	sizes[0] = "Mutated"
	assert.Equal(t, []string{"Large"}, patched.Sizes)
	assert.Equal(t, []string{"Small", "Medium"}, original.Sizes)
}

func TestProductPatch_IsEmpty(t *testing.T) {
	assert.True(t, ProductPatch{}.IsEmpty())

	featured := false
	assert.False(t, ProductPatch{Featured: &featured}.IsEmpty())
}

func TestProduct_JSONShape(t *testing.T) {
	p := Product{
		ID:       "3",
		Name:     "Ceramic Table Lamp",
		Price:    decimal.RequireFromString("79.99"),
		Category: "Lighting",
	}

	data, err := json.Marshal(p)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"price":79.99`)
	assert.NotContains(t, string(data), "featured")
	assert.NotContains(t, string(data), "sizes")

	var decoded Product
	require.NoError(t, json.Unmarshal([]byte(`{"id":"3","price":"79.99"}`), &decoded))
	assert.True(t, p.Price.Equal(decoded.Price))
}

func TestProduct_PriceQuotedUnlessConfigured(t *testing.T) {
	saved := decimal.MarshalJSONWithoutQuotes
	decimal.MarshalJSONWithoutQuotes = false
	defer func() { decimal.MarshalJSONWithoutQuotes = saved }()

	data, err := json.Marshal(Product{ID: "3", Price: decimal.RequireFromString("79.99")})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"price":"79.99"`)
}

func TestOrderStatus_Transitions(t *testing.T) {
	tests := []struct {
		name     string
		from     OrderStatus
		to       OrderStatus
		expected bool
	}{
		{"pending to fulfilled", OrderStatusPending, OrderStatusFulfilled, true},
		{"fulfilled to fulfilled", OrderStatusFulfilled, OrderStatusFulfilled, true},
		{"fulfilled to pending", OrderStatusFulfilled, OrderStatusPending, false},
		{"pending to pending", OrderStatusPending, OrderStatusPending, false},
		{"unknown to fulfilled", OrderStatus("shipped"), OrderStatusFulfilled, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestNewOrder_Build(t *testing.T) {
	order := NewOrder{
		CustomerName: "Ama",
		Items: []OrderItem{
			{ID: "1", Name: "Armchair", Price: decimal.NewFromInt(10), Quantity: 2},
		},
		Total: decimal.NewFromInt(20),
	}.Build("1700000000000", "2024-01-01T00:00:00.000Z")

	assert.Equal(t, OrderStatusPending, order.Status)
	assert.Equal(t, "1700000000000", order.ID)
	assert.Equal(t, "2024-01-01T00:00:00.000Z", order.CreatedAt)
	assert.True(t, decimal.NewFromInt(20).Equal(order.Items[0].LineTotal()))
}

func TestCartItem_Key(t *testing.T) {
	item := CartItem{ID: "1", Size: "Small", Color: "Gray", Quantity: 3, Price: decimal.RequireFromString("1.50")}

	assert.Equal(t, CartKey{ID: "1", Size: "Small", Color: "Gray"}, item.Key())
	assert.True(t, decimal.RequireFromString("4.50").Equal(item.LineTotal()))
	assert.Equal(t, 3, item.ToOrderItem().Quantity)
}
