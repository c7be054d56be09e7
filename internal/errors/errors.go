// Package errors defines the error values shared by the storefront packages.
package errors

import (
	stderrors "errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a product or order id does not resolve.
	ErrNotFound = stderrors.New("not found")

	// ErrUnauthorized is returned when an admin operation runs without a session.
	ErrUnauthorized = stderrors.New("unauthorized")
)

// ValidationError describes rejected user input.
type ValidationError struct {
	Field   string            `json:"field"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError creates a validation error for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Details: map[string]string{field: message},
	}
}

// PersistError reports that a state slice could not be written to the store.
// The in-memory state the write was mirroring has already been committed.
type PersistError struct {
	Key string
	Err error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("persist %q: %v", e.Key, e.Err)
}

func (e *PersistError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err is or wraps a *ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return stderrors.As(err, &v)
}

// IsPersist reports whether err is or wraps a *PersistError.
func IsPersist(err error) bool {
	var p *PersistError
	return stderrors.As(err, &p)
}

func New(text string) error {
	return stderrors.New(text)
}

func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}

// Join wraps errs into one error, dropping nils.
func Join(errs ...error) error {
	return stderrors.Join(errs...)
}
