package baidu

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions.
var (
	// ErrMissingCredentials is returned when an API key or secret key is empty.
	ErrMissingCredentials = errors.New("baidu: API key and secret key required")

	// ErrNoAccessToken is returned when the token endpoint answers without
	// an access_token field.
	ErrNoAccessToken = errors.New("baidu: response has no access_token")
)

// APIError represents an error response from a Baidu endpoint.
type APIError struct {
	// StatusCode is the HTTP status code.
	StatusCode int

	// Code is the error code from the API (if provided).
	Code string

	// Message is the error message or a prefix of the response body.
	Message string

	// Service identifies which endpoint returned the error.
	Service string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("baidu [%s]: API error %d (%s): %s", e.Service, e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("baidu [%s]: API error %d: %s", e.Service, e.StatusCode, e.Message)
}

// IsUnauthorized returns true for authentication failures (HTTP 401).
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == 401
}

// IsServerError returns true if this is a server-side error (HTTP 5xx).
func (e *APIError) IsServerError() bool {
	return e.StatusCode >= 500 && e.StatusCode < 600
}

// IsRetryable reports whether a later attempt could succeed. Nothing in
// this module retries automatically; callers wait for the next sample.
func (e *APIError) IsRetryable() bool {
	return e.StatusCode == 429 || e.IsServerError()
}

// Truncate returns at most n characters (runes) of s.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
