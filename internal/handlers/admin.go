package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tm-acme-shop/acme-shop-storefront/internal/logging"
	"github.com/tm-acme-shop/acme-shop-storefront/internal/models"
)

type loginRequest struct {
	Password string `json:"password"`
}

type currencyRequest struct {
	Currency string `json:"currency"`
}

// Login handles POST /api/v1/admin/login
func (h *Handlers) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.logger, err)
		return
	}

	ok, err := h.storefront.Session.Login(c.Request.Context(), req.Password)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"authenticated": false,
			"error":         "Invalid password",
		})
		return
	}

	respond(c, http.StatusOK, gin.H{"authenticated": true}, err)
}

// Logout handles POST /api/v1/admin/logout
func (h *Handlers) Logout(c *gin.Context) {
	err := h.storefront.Session.Logout(c.Request.Context())
	respond(c, http.StatusOK, gin.H{"authenticated": false}, err)
}

// SessionStatus handles GET /api/v1/admin/session
func (h *Handlers) SessionStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"authenticated": h.storefront.Session.IsAuthenticated()})
}

// CreateProduct handles POST /api/v1/admin/products
func (h *Handlers) CreateProduct(c *gin.Context) {
	var req models.NewProduct
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.logger, err)
		return
	}

	product, err := h.storefront.Catalog.Add(c.Request.Context(), req)
	respond(c, http.StatusCreated, gin.H{"product": product}, err)
}

// UpdateProduct handles PATCH /api/v1/admin/products/:id
func (h *Handlers) UpdateProduct(c *gin.Context) {
	var patch models.ProductPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, h.logger, err)
		return
	}

	id := c.Param("id")
	product, found, err := h.storefront.Catalog.Update(c.Request.Context(), id, patch)
	if !found && err == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}
	respond(c, http.StatusOK, gin.H{"product": product}, err)
}

// DeleteProduct handles DELETE /api/v1/admin/products/:id
func (h *Handlers) DeleteProduct(c *gin.Context) {
	id := c.Param("id")
	found, err := h.storefront.Catalog.Delete(c.Request.Context(), id)
	if !found && err == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}
	respond(c, http.StatusOK, gin.H{"deleted": id}, err)
}

// UploadImage handles POST /api/v1/admin/images (multipart field "image").
// The returned data URI is meant to be stored as a product's image.
func (h *Handlers) UploadImage(c *gin.Context) {
	fh, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}

	uri, err := h.storefront.Images.HandleMultipartImage(c.Request.Context(), fh)
	if err != nil {
		h.logger.Warn("Image upload rejected", logging.Fields{
			"filename": fh.Filename,
			"error":    err.Error(),
		})
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"image": uri,
		"bytes": fh.Size,
	})
}

// SetCurrency handles PUT /api/v1/admin/currency
func (h *Handlers) SetCurrency(c *gin.Context) {
	var req currencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.logger, err)
		return
	}

	err := h.storefront.Currency.Set(c.Request.Context(), req.Currency)
	respond(c, http.StatusOK, gin.H{"currency": h.storefront.Currency.Label()}, err)
}
