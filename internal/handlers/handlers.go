package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tm-acme-shop/acme-shop-storefront/internal/config"
	"github.com/tm-acme-shop/acme-shop-storefront/internal/errors"
	"github.com/tm-acme-shop/acme-shop-storefront/internal/logging"
	"github.com/tm-acme-shop/acme-shop-storefront/internal/metrics"
	"github.com/tm-acme-shop/acme-shop-storefront/internal/repository"
	"github.com/tm-acme-shop/acme-shop-storefront/internal/service"
)

// Handlers holds all HTTP handlers for the storefront.
type Handlers struct {
	storefront *service.Storefront
	store      repository.Store
	config     *config.Config
	metrics    *metrics.Metrics
	logger     *logging.LoggerV2
}

// NewHandlers creates a new handlers instance. store is only used for
// readiness checks.
func NewHandlers(
	storefront *service.Storefront,
	store repository.Store,
	cfg *config.Config,
	m *metrics.Metrics,
) *Handlers {
	if m == nil {
		m = metrics.NewNop()
	}
	return &Handlers{
		storefront: storefront,
		store:      store,
		config:     cfg,
		metrics:    m,
		logger:     logging.NewLoggerV2("handlers"),
	}
}

// respond writes body with status, or the mapped error. Persist errors do not
// fail the request: the change is live in memory, so the body is sent with a
// warning attached.
func respond(c *gin.Context, status int, body gin.H, err error) {
	if err != nil && !errors.IsPersist(err) {
		handleError(c, err)
		return
	}
	if err != nil {
		body["warning"] = "change applied but not persisted: " + err.Error()
	}
	c.JSON(status, body)
}

func handleError(c *gin.Context, err error) {
	if errors.Is(err, errors.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	if errors.Is(err, errors.ErrUnauthorized) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var validationErr *errors.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   validationErr.Message,
			"details": validationErr.Details,
		})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

func badRequest(c *gin.Context, logger *logging.LoggerV2, err error) {
	logger.Warn("Failed to bind request", logging.Fields{
		"path":  c.FullPath(),
		"error": err.Error(),
	})
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
}
