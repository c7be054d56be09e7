package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tm-acme-shop/acme-shop-storefront/internal/models"
	"github.com/tm-acme-shop/acme-shop-storefront/internal/notify"
	"github.com/tm-acme-shop/acme-shop-storefront/internal/service"
)

type addToCartRequest struct {
	ProductID string `json:"productId" binding:"required"`
	service.Selection
}

type updateQuantityRequest struct {
	models.CartKey
	Quantity *int `json:"quantity" binding:"required"`
}

func (h *Handlers) cartBody() gin.H {
	cart := h.storefront.Cart
	total := cart.Total()
	return gin.H{
		"items":          cart.Items(),
		"count":          cart.Count(),
		"total":          total,
		"formattedTotal": h.storefront.Currency.Format(total),
	}
}

// GetCart handles GET /api/v1/cart
func (h *Handlers) GetCart(c *gin.Context) {
	c.JSON(http.StatusOK, h.cartBody())
}

// AddCartItem handles POST /api/v1/cart/items
func (h *Handlers) AddCartItem(c *gin.Context) {
	var req addToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.logger, err)
		return
	}

	rec := notify.NewRecorder()
	err := h.storefront.AddToCart(c.Request.Context(), rec, req.ProductID, req.Selection)
	if err != nil && !isPersist(err) {
		writeNotifiedError(c, err, rec)
		return
	}

	body := h.cartBody()
	body["notifications"] = rec.Messages()
	respond(c, http.StatusCreated, body, err)
}

// UpdateCartItem handles PATCH /api/v1/cart/items
func (h *Handlers) UpdateCartItem(c *gin.Context) {
	var req updateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.logger, err)
		return
	}

	found, err := h.storefront.Cart.UpdateQuantity(c.Request.Context(), req.CartKey, *req.Quantity)
	if !found && err == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "cart item not found"})
		return
	}
	respond(c, http.StatusOK, h.cartBody(), err)
}

// RemoveCartItem handles DELETE /api/v1/cart/items?id=&size=&color=
func (h *Handlers) RemoveCartItem(c *gin.Context) {
	var key models.CartKey
	if err := c.ShouldBindQuery(&key); err != nil || key.ID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id is required"})
		return
	}

	found, err := h.storefront.Cart.Remove(c.Request.Context(), key)
	if !found && err == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "cart item not found"})
		return
	}
	respond(c, http.StatusOK, h.cartBody(), err)
}

// ClearCart handles DELETE /api/v1/cart
func (h *Handlers) ClearCart(c *gin.Context) {
	err := h.storefront.Cart.Clear(c.Request.Context())
	respond(c, http.StatusOK, h.cartBody(), err)
}
