// internal/upstream/errors.go
package upstream

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError is a non-success response from the upstream API. Message carries
// the upstream's own message field verbatim when one was present, otherwise
// a generic fallback, so views can surface it directly.
type APIError struct {
	StatusCode int
	Message    string
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("upstream: %s (status %d)", e.Message, e.StatusCode)
	}
	return fmt.Sprintf("upstream: %s", e.Message)
}

// IsAuthFailure reports whether the upstream rejected the credential. This is
// the only way an expired token is ever discovered; views react by showing a
// sign-in prompt.
func (e *APIError) IsAuthFailure() bool {
	return e.StatusCode == http.StatusUnauthorized
}

// UserMessage returns the message a view should display
func (e *APIError) UserMessage() string {
	return e.Message
}

// AsAPIError unwraps an APIError from err if one is present
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
