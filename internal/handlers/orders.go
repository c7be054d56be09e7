package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tm-acme-shop/acme-shop-storefront/internal/models"
)

// ListOrders handles GET /api/v1/admin/orders?status=
func (h *Handlers) ListOrders(c *gin.Context) {
	orders := h.storefront.Orders.Orders()

	if status := c.Query("status"); status != "" {
		s := models.OrderStatus(status)
		if !s.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
			return
		}

		filtered := make([]models.Order, 0, len(orders))
		for _, o := range orders {
			if o.Status == s {
				filtered = append(filtered, o)
			}
		}
		orders = filtered
	}

	c.JSON(http.StatusOK, gin.H{
		"orders":   orders,
		"total":    len(orders),
		"byStatus": h.storefront.Orders.CountByStatus(),
	})
}

// GetOrder handles GET /api/v1/admin/orders/:id
func (h *Handlers) GetOrder(c *gin.Context) {
	order, ok := h.storefront.Orders.Order(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}

// FulfillOrder handles POST /api/v1/admin/orders/:id/fulfill
func (h *Handlers) FulfillOrder(c *gin.Context) {
	id := c.Param("id")

	if _, ok := h.storefront.Orders.Order(id); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return
	}

	err := h.storefront.Orders.MarkFulfilled(c.Request.Context(), id)
	order, _ := h.storefront.Orders.Order(id)
	respond(c, http.StatusOK, gin.H{"order": order}, err)
}
