// Package apperrors defines the error taxonomy shared by the site's outbound
// integrations. Callers match on the concrete types with errors.As.
package apperrors

import (
	"fmt"
	"net/http"
)

// ValidationError reports missing or malformed caller input
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation error: %s", e.Message)
	}
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
}

// ConfigurationError reports a missing credential or setting that an operator must fix
type ConfigurationError struct {
	Setting string
	Message string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s: %s", e.Setting, e.Message)
}

// RemoteServiceError reports a non-success response from a third-party API
type RemoteServiceError struct {
	Service    string
	StatusCode int
	Message    string
}

func (e *RemoteServiceError) Error() string {
	return fmt.Sprintf("error from %s API: %d %s", e.Service, e.StatusCode, e.Message)
}

// NewRemoteServiceError builds a RemoteServiceError, falling back to the
// standard reason phrase when body is empty
func NewRemoteServiceError(service string, statusCode int, body string) *RemoteServiceError {
	if body == "" {
		body = http.StatusText(statusCode)
	}
	return &RemoteServiceError{Service: service, StatusCode: statusCode, Message: body}
}
