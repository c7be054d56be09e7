package repository

import (
	"context"
	"database/sql"

	"github.com/tm-acme-shop/acme-shop-storefront/internal/logging"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS storefront_kv (
	origin     TEXT        NOT NULL,
	key        TEXT        NOT NULL,
	value      TEXT        NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	PRIMARY KEY (origin, key)
)`

// PostgresStore implements Store on a single PostgreSQL table keyed by
// (origin, key).
type PostgresStore struct {
	db     *sql.DB
	origin string
	logger *logging.LoggerV2
}

// NewPostgresStore creates a PostgreSQL-backed store for origin.
func NewPostgresStore(db *sql.DB, origin string, logger *logging.LoggerV2) *PostgresStore {
	return &PostgresStore{
		db:     db,
		origin: origin,
		logger: logger,
	}
}

// EnsureSchema creates the key/value table if it does not exist.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schemaSQL); err != nil {
		s.logger.Error("Failed to create storefront_kv table", logging.Fields{"error": err.Error()})
		return err
	}
	return nil
}

// Get retrieves the value stored under key.
func (s *PostgresStore) Get(ctx context.Context, key string) (string, bool, error) {
	s.logger.Debug("Fetching key", logging.Fields{"key": key})

	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM storefront_kv WHERE origin = $1 AND key = $2`,
		s.origin, key,
	).Scan(&value)

	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		s.logger.Error("Failed to fetch key", logging.Fields{
			"key":   key,
			"error": err.Error(),
		})
		return "", false, err
	}

	return value, true, nil
}

// Set upserts key.
func (s *PostgresStore) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO storefront_kv (origin, key, value, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (origin, key)
		DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`,
		s.origin, key, value,
	)
	if err != nil {
		s.logger.Error("Failed to store key", logging.Fields{
			"key":   key,
			"error": err.Error(),
		})
		return err
	}
	return nil
}

// Delete removes key.
func (s *PostgresStore) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM storefront_kv WHERE origin = $1 AND key = $2`,
		s.origin, key,
	)
	if err != nil {
		s.logger.Error("Failed to delete key", logging.Fields{
			"key":   key,
			"error": err.Error(),
		})
	}
	return err
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
