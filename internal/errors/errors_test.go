package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError(t *testing.T) {
	err := NewValidationError("size", "Please select a size")

	assert.Equal(t, "size: Please select a size", err.Error())
	assert.Equal(t, "Please select a size", err.Details["size"])
	assert.True(t, IsValidation(fmt.Errorf("add to cart: %w", err)))
	assert.False(t, IsValidation(ErrNotFound))
}

func TestPersistError_Unwrap(t *testing.T) {
	cause := New("quota exceeded")
	err := &PersistError{Key: "products", Err: cause}

	assert.True(t, Is(err, cause))
	assert.True(t, IsPersist(err))
	assert.Contains(t, err.Error(), `"products"`)

	var target *PersistError
	assert.True(t, As(fmt.Errorf("wrapped: %w", err), &target))
	assert.Equal(t, "products", target.Key)
}
