package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tm-acme-shop/acme-shop-storefront/internal/config"
	"github.com/tm-acme-shop/acme-shop-storefront/internal/handlers"
	"github.com/tm-acme-shop/acme-shop-storefront/internal/logging"
)

type Server struct {
	config   *config.Config
	router   *gin.Engine
	handlers *handlers.Handlers
	gatherer prometheus.Gatherer
	http     *http.Server
	logger   *logging.LoggerV2
}

// New wires the routes. A nil gatherer disables /metrics.
func New(h *handlers.Handlers, cfg *config.Config, gatherer prometheus.Gatherer) *Server {
	router := gin.New()
	router.Use(gin.Recovery())

	s := &Server{
		config:   cfg,
		router:   router,
		handlers: h,
		gatherer: gatherer,
		logger:   logging.NewLoggerV2("server"),
	}

	s.setupRoutes()

	s.http = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	return s
}

// Router exposes the engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

func (s *Server) setupRoutes() {
	h := s.handlers

	s.router.Use(h.RequestLogger(), h.Instrument())

	s.router.GET("/health", h.Health)
	s.router.GET("/ready", h.Ready)
	s.router.GET("/live", h.Live)
	s.router.GET("/version", h.Version)
	if s.gatherer != nil && s.config.Features.EnableMetrics {
		s.router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})))
	}

	v1 := s.router.Group("/api/v1")
	{
		v1.GET("/products", h.ListProducts)
		v1.GET("/products/:id", h.GetProduct)
		v1.GET("/currency", h.GetCurrency)
		v1.GET("/payment", h.GetPaymentConfig)

		v1.GET("/cart", h.GetCart)
		v1.DELETE("/cart", h.ClearCart)
		v1.POST("/cart/items", h.AddCartItem)
		v1.PATCH("/cart/items", h.UpdateCartItem)
		v1.DELETE("/cart/items", h.RemoveCartItem)

		v1.GET("/wishlist", h.GetWishlist)
		v1.POST("/wishlist/:id/toggle", h.ToggleWishlist)
		v1.DELETE("/wishlist/:id", h.RemoveWishlistItem)

		v1.POST("/checkout", h.Checkout)

		v1.POST("/admin/login", h.Login)
		v1.POST("/admin/logout", h.Logout)
		v1.GET("/admin/session", h.SessionStatus)
	}

	admin := v1.Group("/admin", h.RequireAdmin())
	{
		admin.POST("/products", h.CreateProduct)
		admin.PATCH("/products/:id", h.UpdateProduct)
		admin.DELETE("/products/:id", h.DeleteProduct)
		admin.POST("/images", h.UploadImage)

		admin.GET("/orders", h.ListOrders)
		admin.GET("/orders/:id", h.GetOrder)
		admin.POST("/orders/:id/fulfill", h.FulfillOrder)

		admin.PUT("/currency", h.SetCurrency)
		admin.GET("/payment", h.GetAdminPaymentConfig)
	}
}

// Start serves until Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info("Server listening", logging.Fields{"addr": s.http.Addr})
	return s.http.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
