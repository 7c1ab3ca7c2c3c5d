package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRemoteServiceError_FallsBackToReasonPhrase(t *testing.T) {
	err := NewRemoteServiceError("Resend", 503, "")

	assert.Equal(t, "Service Unavailable", err.Message)
	assert.Contains(t, err.Error(), "503")
	assert.Contains(t, err.Error(), "Resend")
}

func TestNewRemoteServiceError_KeepsBody(t *testing.T) {
	err := NewRemoteServiceError("Resend", 422, "invalid audience")

	assert.Equal(t, "error from Resend API: 422 invalid audience", err.Error())
}

func TestErrorsAs_ThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("error creating contact: %w", &ValidationError{Field: "email", Message: "is required"})

	var vErr *ValidationError
	assert.True(t, errors.As(wrapped, &vErr))
	assert.Equal(t, "email", vErr.Field)

	var cErr *ConfigurationError
	assert.False(t, errors.As(wrapped, &cErr))
}

func TestValidationError_WithoutField(t *testing.T) {
	err := &ValidationError{Message: "empty request"}
	assert.Equal(t, "validation error: empty request", err.Error())
}
