package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetPaymentConfig handles GET /api/v1/payment. Only the public key is
// exposed; checkout hands it to the gateway widget.
func (h *Handlers) GetPaymentConfig(c *gin.Context) {
	p := h.storefront.Payment()
	c.JSON(http.StatusOK, gin.H{
		"publicKey": p.PublicKey,
		"currency":  p.Currency,
		"testMode":  p.TestMode,
	})
}

// GetAdminPaymentConfig handles GET /api/v1/admin/payment
func (h *Handlers) GetAdminPaymentConfig(c *gin.Context) {
	p := h.storefront.Payment()
	c.JSON(http.StatusOK, gin.H{
		"publicKey": p.PublicKey,
		"currency":  p.Currency,
		"testMode":  p.TestMode,
		"keyValid":  p.KeyValid(),
	})
}
