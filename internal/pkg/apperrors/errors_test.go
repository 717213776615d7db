package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationErrorCollectsViolations(t *testing.T) {
	verr := NewValidationError()
	assert.False(t, verr.HasViolations())

	verr.Add("email", "email is required").Add("password", "too short")
	assert.True(t, verr.HasViolations())
	require.Len(t, verr.Violations, 2)

	assert.Contains(t, verr.Error(), "email: email is required")
	assert.Contains(t, verr.Error(), "password: too short")
}

func TestValidationErrorMatchesSentinel(t *testing.T) {
	verr := NewValidationError().Add("name", "name is required")

	assert.ErrorIs(t, verr, ErrValidationFailed)

	wrapped := fmt.Errorf("submit failed: %w", verr)
	assert.ErrorIs(t, wrapped, ErrValidationFailed)

	extracted, ok := AsValidationError(wrapped)
	require.True(t, ok)
	assert.Len(t, extracted.Violations, 1)
}

func TestAsValidationErrorOnPlainError(t *testing.T) {
	_, ok := AsValidationError(errors.New("boom"))
	assert.False(t, ok)

	_, ok = AsValidationError(ErrValidationFailed)
	assert.False(t, ok, "the bare sentinel carries no violations")
}
