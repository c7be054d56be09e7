package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, StoreBackendMemory, cfg.Store.Backend)
	assert.Equal(t, "admin123", cfg.Admin.Password)
	assert.Equal(t, "GHS", cfg.Payment.Currency)
	assert.Equal(t, 5*1024*1024, cfg.Store.QuotaBytes)
	assert.Equal(t, 99, cfg.Cart.MaxQuantity)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("STORE_BACKEND", "redis")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("FEATURE_STOREFRONT_EVENTS", "true")
	t.Setenv("SERVER_READ_TIMEOUT", "5")
	t.Setenv("REDIS_PORT", "not-a-number")
	t.Setenv("CART_MAX_QUANTITY", "10")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, StoreBackendRedis, cfg.Store.Backend)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.True(t, cfg.Features.EnableStorefrontEvents)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 6379, cfg.Redis.Port)
	assert.Equal(t, 10, cfg.Cart.MaxQuantity)
}

func TestLoad_YAMLFileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "storefront.yaml")
	content := `
server:
  port: 7000
  read_timeout: 12s
store:
  backend: postgres
  origin: shop.example
payment:
  public_key: pk_live_abc
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("STORE_ORIGIN", "override.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 7000, cfg.Server.Port)
	assert.Equal(t, 12*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, StoreBackendPostgres, cfg.Store.Backend)
	assert.Equal(t, "override.example", cfg.Store.Origin)
	assert.True(t, cfg.Payment.KeyValid())
	// untouched sections keep their defaults
	assert.Equal(t, "localhost", cfg.Redis.Host)
}

func TestLoad_MissingFile(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := Load()
	assert.Error(t, err)
}

func TestValidatePaystackKey(t *testing.T) {
	assert.True(t, ValidatePaystackKey("pk_live_ea993090"))
	assert.True(t, ValidatePaystackKey("pk_test_123"))
	assert.False(t, ValidatePaystackKey("sk_live_123"))
	assert.False(t, ValidatePaystackKey(""))
}

func TestDatabaseConfig_ConnectionString(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p", Name: "n", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=n sslmode=disable", d.ConnectionString())
}
