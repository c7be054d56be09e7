package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/shopspring/decimal"
	"github.com/tm-acme-shop/acme-shop-storefront/internal/config"
	"github.com/tm-acme-shop/acme-shop-storefront/internal/events"
	"github.com/tm-acme-shop/acme-shop-storefront/internal/handlers"
	"github.com/tm-acme-shop/acme-shop-storefront/internal/logging"
	"github.com/tm-acme-shop/acme-shop-storefront/internal/metrics"
	"github.com/tm-acme-shop/acme-shop-storefront/internal/repository"
	"github.com/tm-acme-shop/acme-shop-storefront/internal/server"
	"github.com/tm-acme-shop/acme-shop-storefront/internal/service"

	_ "github.com/lib/pq"
)

// eventPublisher is what the storefront publishes through and main closes.
type eventPublisher interface {
	service.EventPublisher
	Close() error
}

func main() {
	// Persisted slices store prices as JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true

	logger := logging.NewLoggerV2("storefront")

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", logging.Fields{"error": err.Error()})
	}
	logging.SetLevel(cfg.LogLevel)
	gin.SetMode(gin.ReleaseMode)

	logging.Infof("Starting storefront on port %d", cfg.Server.Port)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry)

	backend, err := initStore(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize store", logging.Fields{
			"backend": cfg.Store.Backend,
			"error":   err.Error(),
		})
	}
	store := repository.NewInstrumentedStore(backend, m)
	defer store.Close()

	var publisher eventPublisher = events.NoopPublisher{}
	if cfg.Features.EnableStorefrontEvents {
		publisher = events.NewKafkaPublisher(cfg.Kafka, cfg.Store.Origin, logger)
	}
	defer publisher.Close()

	storefront := service.New(store, service.Options{
		AdminPassword:   cfg.Admin.Password,
		Payment:         cfg.Payment,
		MaxImageBytes:   cfg.Media.MaxImageBytes,
		MaxCartQuantity: cfg.Cart.MaxQuantity,
		Publisher:       publisher,
		Metrics:         m,
	})

	ctx := context.Background()
	if err := storefront.Initialize(ctx); err != nil {
		logger.Warn("Storefront initialized without persisting defaults", logging.Fields{"error": err.Error()})
	}

	if !cfg.Payment.KeyValid() {
		logger.Warn("Payment public key has an unexpected prefix", logging.Fields{"currency": cfg.Payment.Currency})
	}

	h := handlers.NewHandlers(storefront, store, cfg, m)
	srv := server.New(h, cfg, registry)

	go func() {
		logger.Info("Server starting", logging.Fields{
			"port":                        cfg.Server.Port,
			"store_backend":               cfg.Store.Backend,
			"enable_storefront_events":    cfg.Features.EnableStorefrontEvents,
			"enable_fulfillment_consumer": cfg.Features.EnableFulfillmentConsumer,
		})
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", logging.Fields{"error": err.Error()})
		}
	}()

	var consumer *events.KafkaConsumer
	if cfg.Features.EnableFulfillmentConsumer {
		consumer = events.NewKafkaConsumer(cfg.Kafka, storefront.Orders, logger)
		go func() {
			if err := consumer.Start(ctx); err != nil {
				logger.Error("Fulfillment consumer failed", logging.Fields{"error": err.Error()})
			}
		}()
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if consumer != nil {
		consumer.Stop()
	}

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", logging.Fields{"error": err.Error()})
	}

	logger.Info("Server exited")
}

func initStore(cfg *config.Config, logger *logging.LoggerV2) (repository.Store, error) {
	switch cfg.Store.Backend {
	case config.StoreBackendMemory:
		return repository.NewMemoryStore(cfg.Store.QuotaBytes), nil

	case config.StoreBackendRedis:
		store := repository.NewRedisStore(cfg.Redis, cfg.Store.Origin)
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ReadTimeout)
		defer cancel()
		if err := store.Ping(ctx); err != nil {
			store.Close()
			return nil, fmt.Errorf("redis ping: %w", err)
		}
		logging.Info("Redis connected", logging.Fields{"addr": cfg.Redis.Addr()})
		return store, nil

	case config.StoreBackendPostgres:
		db, err := initDatabase(cfg)
		if err != nil {
			return nil, err
		}
		store := repository.NewPostgresStore(db, cfg.Store.Origin, logger)
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ReadTimeout)
		defer cancel()
		if err := store.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, fmt.Errorf("ensure schema: %w", err)
		}
		return store, nil
	}

	return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
}

func initDatabase(cfg *config.Config) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.Database.ConnectionString())
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.MaxLifetime)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	logging.Info("Database connected", logging.Fields{
		"host": cfg.Database.Host,
		"name": cfg.Database.Name,
	})

	return db, nil
}
