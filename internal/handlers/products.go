package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tm-acme-shop/acme-shop-storefront/internal/models"
)

// ListProducts handles GET /api/v1/products
func (h *Handlers) ListProducts(c *gin.Context) {
	var products []models.Product

	if featured, _ := strconv.ParseBool(c.Query("featured")); featured {
		products = h.storefront.Catalog.Featured()
	} else {
		products = h.storefront.Catalog.ByCategory(c.Query("category"))
	}
	if products == nil {
		products = []models.Product{}
	}

	c.JSON(http.StatusOK, gin.H{
		"products":   products,
		"count":      len(products),
		"categories": h.storefront.Catalog.Categories(),
		"currency":   h.storefront.Currency.Label(),
	})
}

// GetProduct handles GET /api/v1/products/:id
func (h *Handlers) GetProduct(c *gin.Context) {
	details, err := h.storefront.ProductDetails(c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"product":        details.Product,
		"related":        details.Related,
		"formattedPrice": h.storefront.Currency.Format(details.Product.Price),
		"inWishlist":     h.storefront.Wishlist.Contains(details.Product.ID),
	})
}

// GetCurrency handles GET /api/v1/currency
func (h *Handlers) GetCurrency(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"currency": h.storefront.Currency.Label()})
}
