package api

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrMissingBaseURL     = errors.New("api base url is not configured")
	ErrInvalidBaseURL     = errors.New("api base url must start with http:// or https://")
	ErrUnreachable        = errors.New("cannot reach server")
	ErrServerUnavailable  = errors.New("server unavailable")
	ErrUnauthorized       = errors.New("authentication required")
	ErrForbidden          = errors.New("access denied")
	ErrNotFound           = errors.New("resource not found")
	ErrRequestFailed      = errors.New("request failed")
	ErrInvalidResponse    = errors.New("invalid response from server")
	ErrIncompleteShipping = errors.New("shipping name, address and phone are required")
	ErrEmptyOrder         = errors.New("order has no items")
	ErrInvalidStatus      = errors.New("invalid order status")
	ErrInvalidQuantity    = errors.New("quantity must be positive")
	ErrMissingEmail       = errors.New("email is required")
	ErrMissingProductURL  = errors.New("product url is required")
)

// Error is a non-2xx response from the backend.
type Error struct {
	Status  int    `json:"-"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func newError(status int, message string) *Error {
	return &Error{Status: status, Message: message, Err: classify(status)}
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	return fmt.Sprintf("%s (%d): %s", e.Err, e.Status, msg)
}

// Unwrap returns the sentinel matching the status code.
func (e *Error) Unwrap() error { return e.Err }

// StatusCode returns the HTTP status of the response.
func (e *Error) StatusCode() int { return e.Status }

func classify(status int) error {
	switch {
	case status == http.StatusUnauthorized:
		return ErrUnauthorized
	case status == http.StatusForbidden:
		return ErrForbidden
	case status == http.StatusNotFound:
		return ErrNotFound
	case status >= 500:
		return ErrServerUnavailable
	default:
		return ErrRequestFailed
	}
}
