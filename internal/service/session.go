package service

import (
	"context"
	"sync"

	"github.com/tm-acme-shop/acme-shop-storefront/internal/errors"
	"github.com/tm-acme-shop/acme-shop-storefront/internal/logging"
	"github.com/tm-acme-shop/acme-shop-storefront/internal/metrics"
	"github.com/tm-acme-shop/acme-shop-storefront/internal/repository"
)

const authMarker = "true"

// Session is the admin gate: one flag, set by comparing a candidate password
// with a fixed shared secret. The comparison is plain string equality with no
// lockout or hashing; it keeps casual visitors out of the admin views and
// nothing more.
type Session struct {
	mu            sync.RWMutex
	authenticated bool
	secret        string
	marker        *repository.RawString
	metrics       *metrics.Metrics
	logger        *logging.LoggerV2
}

func NewSession(store repository.Store, secret string, m *metrics.Metrics) *Session {
	if m == nil {
		m = metrics.NewNop()
	}
	return &Session{
		secret:  secret,
		marker:  repository.NewRawString(store, repository.KeyAdminAuth),
		metrics: m,
		logger:  logging.NewLoggerV2("session"),
	}
}

// Initialize restores the flag from the persisted marker.
func (s *Session) Initialize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	value, ok, err := s.marker.Load(ctx)
	if err != nil {
		s.logger.Error("Failed to read admin marker", logging.Fields{"error": err.Error()})
		s.authenticated = false
		return nil
	}
	s.authenticated = ok && value == authMarker
	return nil
}

// IsAuthenticated reports whether an admin is logged in.
func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authenticated
}

// Authorize returns errors.ErrUnauthorized unless an admin is logged in.
func (s *Session) Authorize() error {
	if !s.IsAuthenticated() {
		return errors.ErrUnauthorized
	}
	return nil
}

// Login compares password with the secret. On a match the flag is set and
// the marker persisted; on a mismatch nothing changes. The error is only
// ever a *errors.PersistError accompanying a successful login.
func (s *Session) Login(ctx context.Context, password string) (bool, error) {
	if password != s.secret {
		s.metrics.AdminLogins.WithLabelValues("failure").Inc()
		s.logger.Warn("Admin login rejected")
		return false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.authenticated = true
	s.metrics.AdminLogins.WithLabelValues("success").Inc()
	s.logger.Info("Admin logged in")
	return true, writeThrough(ctx, s.marker, authMarker, s.logger)
}

// Logout clears the flag and removes the marker.
func (s *Session) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.authenticated = false
	s.logger.Info("Admin logged out")

	if err := s.marker.Clear(ctx); err != nil {
		s.logger.Error("Failed to clear admin marker", logging.Fields{"error": err.Error()})
		return &errors.PersistError{Key: s.marker.Key(), Err: err}
	}
	return nil
}
