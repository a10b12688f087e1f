package analytics

import (
	"errors"
	"fmt"

	"github.com/katyella/sprig-sample/internal/constants"
)

// Sentinel errors for common conditions.
var (
	// ErrWriteKeyRequired indicates the client was built without a write key.
	ErrWriteKeyRequired = errors.New("analytics: " + constants.ErrWriteKeyRequired)

	// ErrClosed indicates a call was made after Close.
	ErrClosed = errors.New("analytics: " + constants.ErrClientClosed)

	// ErrInvalidMessage indicates a call was made with missing arguments.
	ErrInvalidMessage = errors.New("analytics: invalid message")

	// ErrQueueFull indicates the message queue is at capacity.
	ErrQueueFull = errors.New("analytics: queue is full")

	// ErrUnauthorized indicates the write key was rejected.
	ErrUnauthorized = errors.New("analytics: unauthorized")
)

// APIError represents an error response from the data or control plane.
type APIError struct {
	// HTTPStatus is the HTTP status code.
	HTTPStatus int
	// Message is the body returned by the server, trimmed.
	Message string
	// Endpoint is the path that returned the error.
	Endpoint string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("analytics: %s returned %d: %s", e.Endpoint, e.HTTPStatus, e.Message)
}

// Is implements errors.Is support for sentinel errors.
func (e *APIError) Is(target error) bool {
	return target == ErrUnauthorized && (e.HTTPStatus == 401 || e.HTTPStatus == 403)
}

// IsRetryable returns true if the request may succeed when repeated.
func (e *APIError) IsRetryable() bool {
	return e.HTTPStatus >= constants.HTTPStatusInternalServerError ||
		e.HTTPStatus == constants.HTTPStatusTooManyRequests ||
		e.HTTPStatus == constants.HTTPStatusRequestTimeout
}

// NetworkError wraps network-related errors.
type NetworkError struct {
	Op  string // Operation that failed (e.g., "batch", "sourceConfig")
	Err error  // Underlying error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("analytics: network error during %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// IsTemporary reports whether the error is temporary and may succeed on retry.
func (e *NetworkError) IsTemporary() bool {
	var temp interface{ Temporary() bool }
	if errors.As(e.Err, &temp) {
		return temp.Temporary()
	}
	return true
}

// IsUnauthorized reports whether the error is an authorization error.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}
