package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tm-acme-shop/acme-shop-storefront/internal/errors"
	"github.com/tm-acme-shop/acme-shop-storefront/internal/logging"
	"github.com/tm-acme-shop/acme-shop-storefront/internal/models"
	"github.com/tm-acme-shop/acme-shop-storefront/internal/notify"
)

type checkoutRequest struct {
	Customer models.CustomerDetails `json:"customer"`
	Payment  models.PaymentDetails  `json:"payment"`
}

// Checkout handles POST /api/v1/checkout
func (h *Handlers) Checkout(c *gin.Context) {
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.logger, err)
		return
	}

	rec := notify.NewRecorder()
	order, err := h.storefront.Checkout(c.Request.Context(), rec, req.Customer, req.Payment)
	if err != nil && !isPersist(err) {
		writeNotifiedError(c, err, rec)
		return
	}

	h.logger.Info("Checkout completed", logging.Fields{
		"order_id":       order.ID,
		"payment_method": order.PaymentMethod,
	})

	respond(c, http.StatusCreated, gin.H{
		"order":          order,
		"formattedTotal": h.storefront.Currency.Format(order.Total),
		"notifications":  rec.Messages(),
	}, err)
}

// isPersist reports whether err only carries persist failures.
func isPersist(err error) bool {
	return errors.IsPersist(err) && !errors.IsValidation(err)
}

// writeNotifiedError maps err like handleError and attaches the notifications
// recorded before the failure.
func writeNotifiedError(c *gin.Context, err error, rec *notify.Recorder) {
	var validationErr *errors.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":         validationErr.Message,
			"details":       validationErr.Details,
			"notifications": rec.Messages(),
		})
		return
	}
	handleError(c, err)
}
