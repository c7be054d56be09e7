package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Store    StoreConfig    `yaml:"store"`
	Redis    RedisConfig    `yaml:"redis"`
	Database DatabaseConfig `yaml:"database"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Admin    AdminConfig    `yaml:"admin"`
	Payment  PaymentConfig  `yaml:"payment"`
	Media    MediaConfig    `yaml:"media"`
	Cart     CartConfig     `yaml:"cart"`
	Features FeatureFlags   `yaml:"features"`
	LogLevel string         `yaml:"log_level"`
}

type ServerConfig struct {
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// Store backends.
const (
	StoreBackendMemory   = "memory"
	StoreBackendRedis    = "redis"
	StoreBackendPostgres = "postgres"
)

// StoreConfig selects where state slices are persisted. Origin namespaces
// every key, so two storefronts never see each other's state.
type StoreConfig struct {
	Backend    string `yaml:"backend"`
	Origin     string `yaml:"origin"`
	QuotaBytes int    `yaml:"quota_bytes"`
}

type RedisConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type DatabaseConfig struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	User         string        `yaml:"user"`
	Password     string        `yaml:"password"`
	Name         string        `yaml:"name"`
	SSLMode      string        `yaml:"sslmode"`
	MaxOpenConns int           `yaml:"max_open_conns"`
	MaxIdleConns int           `yaml:"max_idle_conns"`
	MaxLifetime  time.Duration `yaml:"max_lifetime"`
}

func (d DatabaseConfig) ConnectionString() string {
	return "host=" + d.Host +
		" port=" + strconv.Itoa(d.Port) +
		" user=" + d.User +
		" password=" + d.Password +
		" dbname=" + d.Name +
		" sslmode=" + d.SSLMode
}

type KafkaConfig struct {
	Brokers          []string `yaml:"brokers"`
	StorefrontTopic  string   `yaml:"storefront_topic"`
	FulfillmentTopic string   `yaml:"fulfillment_topic"`
	ConsumerGroup    string   `yaml:"consumer_group"`
}

// AdminConfig holds the shared admin secret. It is compared as plain text.
type AdminConfig struct {
	Password string `yaml:"password"`
}

// PaymentConfig is the payment gateway's public configuration. The service
// never calls the gateway; the key is only handed to the checkout view.
type PaymentConfig struct {
	PublicKey string `yaml:"public_key"`
	Currency  string `yaml:"currency"`
	TestMode  bool   `yaml:"test_mode"`
}

// ValidatePaystackKey reports whether key has a Paystack public key prefix.
func ValidatePaystackKey(key string) bool {
	return strings.HasPrefix(key, "pk_live_") || strings.HasPrefix(key, "pk_test_")
}

// KeyValid reports whether the configured public key is well-formed.
func (p PaymentConfig) KeyValid() bool {
	return ValidatePaystackKey(p.PublicKey)
}

type MediaConfig struct {
	MaxImageBytes int64 `yaml:"max_image_bytes"`
}

// CartConfig bounds a single add-to-cart request. Every unit is a separate
// cart write.
type CartConfig struct {
	MaxQuantity int `yaml:"max_quantity"`
}

type FeatureFlags struct {
	EnableStorefrontEvents    bool `yaml:"enable_storefront_events"`
	EnableFulfillmentConsumer bool `yaml:"enable_fulfillment_consumer"`
	EnableMetrics             bool `yaml:"enable_metrics"`
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 30 * time.Second,
		},
		Store: StoreConfig{
			Backend:    StoreBackendMemory,
			Origin:     "storefront",
			QuotaBytes: 5 * 1024 * 1024,
		},
		Redis: RedisConfig{
			Host: "localhost",
			Port: 6379,
		},
		Database: DatabaseConfig{
			Host:         "localhost",
			Port:         5432,
			User:         "acme",
			Password:     "acme",
			Name:         "acme_storefront",
			SSLMode:      "disable",
			MaxOpenConns: 10,
			MaxIdleConns: 5,
			MaxLifetime:  5 * time.Minute,
		},
		Kafka: KafkaConfig{
			Brokers:          []string{"localhost:9092"},
			StorefrontTopic:  "storefront.events",
			FulfillmentTopic: "storefront.fulfillment",
			ConsumerGroup:    "storefront",
		},
		Admin: AdminConfig{
			Password: "admin123",
		},
		Payment: PaymentConfig{
			PublicKey: "pk_test_your_paystack_public_key_here",
			Currency:  "GHS",
			TestMode:  true,
		},
		Media: MediaConfig{
			MaxImageBytes: 2 * 1024 * 1024,
		},
		Cart: CartConfig{
			MaxQuantity: 99,
		},
		Features: FeatureFlags{
			EnableMetrics: true,
		},
		LogLevel: "info",
	}
}

// Load builds the configuration from defaults, an optional YAML file named by
// CONFIG_FILE, and finally environment variables.
func Load() (*Config, error) {
	cfg := Default()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Server.Port = getEnvInt("SERVER_PORT", c.Server.Port)
	c.Server.ReadTimeout = getEnvSeconds("SERVER_READ_TIMEOUT", c.Server.ReadTimeout)
	c.Server.WriteTimeout = getEnvSeconds("SERVER_WRITE_TIMEOUT", c.Server.WriteTimeout)
	c.Server.ShutdownTimeout = getEnvSeconds("SERVER_SHUTDOWN_TIMEOUT", c.Server.ShutdownTimeout)

	c.Store.Backend = getEnvString("STORE_BACKEND", c.Store.Backend)
	c.Store.Origin = getEnvString("STORE_ORIGIN", c.Store.Origin)
	c.Store.QuotaBytes = getEnvInt("STORE_QUOTA_BYTES", c.Store.QuotaBytes)

	c.Redis.Host = getEnvString("REDIS_HOST", c.Redis.Host)
	c.Redis.Port = getEnvInt("REDIS_PORT", c.Redis.Port)
	c.Redis.Password = getEnvString("REDIS_PASSWORD", c.Redis.Password)
	c.Redis.DB = getEnvInt("REDIS_DB", c.Redis.DB)

	c.Database.Host = getEnvString("DB_HOST", c.Database.Host)
	c.Database.Port = getEnvInt("DB_PORT", c.Database.Port)
	c.Database.User = getEnvString("DB_USER", c.Database.User)
	c.Database.Password = getEnvString("DB_PASSWORD", c.Database.Password)
	c.Database.Name = getEnvString("DB_NAME", c.Database.Name)
	c.Database.SSLMode = getEnvString("DB_SSLMODE", c.Database.SSLMode)

	if brokers := getEnvString("KAFKA_BROKERS", ""); brokers != "" {
		c.Kafka.Brokers = strings.Split(brokers, ",")
	}
	c.Kafka.StorefrontTopic = getEnvString("KAFKA_STOREFRONT_TOPIC", c.Kafka.StorefrontTopic)
	c.Kafka.FulfillmentTopic = getEnvString("KAFKA_FULFILLMENT_TOPIC", c.Kafka.FulfillmentTopic)
	c.Kafka.ConsumerGroup = getEnvString("KAFKA_CONSUMER_GROUP", c.Kafka.ConsumerGroup)

	c.Admin.Password = getEnvString("ADMIN_PASSWORD", c.Admin.Password)

	c.Payment.PublicKey = getEnvString("PAYSTACK_PUBLIC_KEY", c.Payment.PublicKey)
	c.Payment.Currency = getEnvString("PAYSTACK_CURRENCY", c.Payment.Currency)
	c.Payment.TestMode = getEnvBool("PAYSTACK_TEST_MODE", c.Payment.TestMode)

	c.Media.MaxImageBytes = int64(getEnvInt("MEDIA_MAX_IMAGE_BYTES", int(c.Media.MaxImageBytes)))

	c.Cart.MaxQuantity = getEnvInt("CART_MAX_QUANTITY", c.Cart.MaxQuantity)

	c.Features.EnableStorefrontEvents = getEnvBool("FEATURE_STOREFRONT_EVENTS", c.Features.EnableStorefrontEvents)
	c.Features.EnableFulfillmentConsumer = getEnvBool("FEATURE_FULFILLMENT_CONSUMER", c.Features.EnableFulfillmentConsumer)
	c.Features.EnableMetrics = getEnvBool("FEATURE_METRICS", c.Features.EnableMetrics)

	c.LogLevel = getEnvString("LOG_LEVEL", c.LogLevel)
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvSeconds(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return time.Duration(intValue) * time.Second
		}
	}
	return defaultValue
}
