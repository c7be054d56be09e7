package repository

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/tm-acme-shop/acme-shop-storefront/internal/config"
	"github.com/tm-acme-shop/acme-shop-storefront/internal/logging"
)

// RedisStore implements Store using Redis. Keys are prefixed with the
// storefront origin and never expire.
type RedisStore struct {
	client *redis.Client
	prefix string
	logger *logging.LoggerV2
}

// NewRedisStore creates a Redis-backed store for origin.
func NewRedisStore(cfg config.RedisConfig, origin string) *RedisStore {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return NewRedisStoreWithClient(client, origin)
}

// NewRedisStoreWithClient wraps an existing client.
func NewRedisStoreWithClient(client *redis.Client, origin string) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: origin + ":",
		logger: logging.NewLoggerV2("redis-store"),
	}
}

// Get retrieves a value from Redis.
func (s *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := s.client.Get(ctx, s.prefix+key).Result()
	if err == redis.Nil {
		s.logger.Debug("Key not found", logging.Fields{"key": key})
		return "", false, nil
	}
	if err != nil {
		s.logger.Error("Redis get error", logging.Fields{
			"key":   key,
			"error": err.Error(),
		})
		return "", false, err
	}

	return value, true, nil
}

// Set stores a value without expiry.
func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, s.prefix+key, value, 0).Err(); err != nil {
		s.logger.Error("Redis set error", logging.Fields{
			"key":   key,
			"error": err.Error(),
		})
		return err
	}

	s.logger.Debug("Key stored", logging.Fields{
		"key":  key,
		"size": len(value),
	})
	return nil
}

// Delete removes a key.
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		s.logger.Error("Redis delete error", logging.Fields{
			"key":   key,
			"error": err.Error(),
		})
		return err
	}
	return nil
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
