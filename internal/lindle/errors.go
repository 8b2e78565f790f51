package lindle

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrEmptyBody is returned when an endpoint that must answer with JSON
	// sends nothing.
	ErrEmptyBody = errors.New("empty response body")
	// ErrUnexpectedShape is returned when the top-level JSON value is not
	// the kind the endpoint documents (object vs array).
	ErrUnexpectedShape = errors.New("unexpected response shape")
	// ErrInvalidID is returned before any request is sent when an id would
	// not address a single resource.
	ErrInvalidID = errors.New("invalid id")
)

// APIError represents a non-2xx answer from the Lindle API.
type APIError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error: %s (status: %d)", e.Status, e.StatusCode)
}

// IsNotFound reports whether the server answered 404.
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsUnauthorized reports whether the API key was rejected.
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// DecodeError reports a response body that could not be turned into the
// documented shape, either because it is not valid JSON of the right kind or
// because required fields are missing.
type DecodeError struct {
	Endpoint string
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("invalid response from %s: %v", e.Endpoint, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
