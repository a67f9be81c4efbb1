package spotify

import (
	"errors"
	"fmt"
	"net/http"
)

// AuthenticationError is returned when the client-credentials exchange
// fails or the token endpoint does not return an access token.
type AuthenticationError struct {
	StatusCode int    // HTTP status from the token endpoint (0 if no response)
	Body       string // Raw response body, for diagnosis
	Message    string // Short description
	Err        error  // Underlying error, if any
}

// Error returns the error message.
func (e *AuthenticationError) Error() string {
	msg := "spotify: authentication failed"
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (status %d)", e.StatusCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *AuthenticationError) Unwrap() error {
	return e.Err
}

// ResponseFormatError is returned when a response body is not shaped the
// way the endpoint documents, e.g. a search page without a "tracks" key.
type ResponseFormatError struct {
	Endpoint string // Request URL
	Reason   string // What was wrong with the body
	Body     string // Raw response body
}

// Error returns the error message.
func (e *ResponseFormatError) Error() string {
	return fmt.Sprintf("spotify: unexpected response from %s: %s", e.Endpoint, e.Reason)
}

// TransportError is returned for network failures and non-2xx responses.
type TransportError struct {
	Endpoint   string // Request URL
	StatusCode int    // HTTP status (0 for network failures)
	Body       string // Raw response body, if a response was received
	Err        error  // Underlying network error, if any
}

// Error returns the error message.
func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("spotify: request to %s failed: %v", e.Endpoint, e.Err)
	}
	return fmt.Sprintf("spotify: request to %s returned status %d: %s", e.Endpoint, e.StatusCode, e.Body)
}

// Unwrap returns the underlying network error.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// Temporary reports whether the failure is one a caller could reasonably
// retry: rate limiting (429) or a server error (5xx).
//
// The client itself never retries.
func (e *TransportError) Temporary() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= http.StatusInternalServerError
}

// Predefined errors for common cases.
var (
	// ErrNoSession is returned when an API call is made before Auth().Login
	// or SetSession.
	ErrNoSession = errors.New("spotify: session required")

	// ErrInvalidConfig is returned when client configuration is invalid.
	ErrInvalidConfig = errors.New("spotify: invalid configuration")

	// ErrBatchTooLarge is returned when a request or batch would carry more
	// identifiers than the endpoint accepts.
	ErrBatchTooLarge = errors.New("spotify: too many identifiers")

	// ErrForeignHost is returned when a paging link points away from the
	// API host.
	ErrForeignHost = errors.New("spotify: next link on a different host")
)
