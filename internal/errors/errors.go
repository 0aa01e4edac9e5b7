// Package errors provides structured error handling with categories that
// drive the monitor's control flow and HTTP status mapping for the API.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType categorizes an error for control flow, metrics, and responses.
type ErrorType string

const (
	// TypeStartup indicates missing credentials or invalid configuration;
	// the process refuses to start and never retries.
	TypeStartup ErrorType = "startup"
	// TypeTransientFetch indicates the social feed was unreachable for a
	// cycle; the cycle aborts and the scheduler backs off.
	TypeTransientFetch ErrorType = "transient_fetch"
	// TypeLookupMiss indicates a profile was not found; only that author
	// is skipped.
	TypeLookupMiss ErrorType = "lookup_miss"
	// TypeDegraded indicates the sentiment capability failed; the
	// interaction is treated as neutral and processing continues.
	TypeDegraded ErrorType = "degraded"
	// TypeDownstream indicates a score submission or notification failed;
	// logged, never retried within the cycle, never rolls back the store.
	TypeDownstream ErrorType = "downstream"
	// TypeValidation indicates invalid API input (HTTP 400).
	TypeValidation ErrorType = "validation"
	// TypeNotFound indicates a missing resource (HTTP 404).
	TypeNotFound ErrorType = "not_found"
	// TypeInternal indicates an unexpected server-side error (HTTP 500).
	TypeInternal ErrorType = "internal"
)

// Error is a structured error with a type, message, and optional context.
type Error struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]any
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// HTTPStatus returns the appropriate HTTP status code for this error type.
func (e *Error) HTTPStatus() int {
	switch e.Type {
	case TypeValidation:
		return http.StatusBadRequest
	case TypeNotFound, TypeLookupMiss:
		return http.StatusNotFound
	case TypeTransientFetch, TypeDownstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// WithContext adds a context field to the error (chainable).
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

func newError(t ErrorType, message string, cause error) *Error {
	return &Error{Type: t, Message: message, Cause: cause, Context: make(map[string]any)}
}

// StartupError creates a fatal configuration/credential error.
func StartupError(message string, cause error) *Error {
	return newError(TypeStartup, message, cause)
}

// TransientFetchError creates a cycle-aborting feed error.
func TransientFetchError(message string, cause error) *Error {
	return newError(TypeTransientFetch, message, cause)
}

// LookupMissError creates a per-author skip error.
func LookupMissError(message string, cause error) *Error {
	return newError(TypeLookupMiss, message, cause)
}

// DegradedError creates a sentiment-degradation error.
func DegradedError(message string, cause error) *Error {
	return newError(TypeDegraded, message, cause)
}

// DownstreamError creates a submission/notification failure.
func DownstreamError(message string, cause error) *Error {
	return newError(TypeDownstream, message, cause)
}

// ValidationError creates an invalid-input error (HTTP 400).
func ValidationError(message string) *Error {
	return newError(TypeValidation, message, nil)
}

// NotFoundError creates a missing-resource error (HTTP 404).
func NotFoundError(message string) *Error {
	return newError(TypeNotFound, message, nil)
}

// InternalError creates an unexpected server-side error (HTTP 500).
func InternalError(message string, cause error) *Error {
	return newError(TypeInternal, message, cause)
}

// ErrorResponse is the JSON structure sent to API clients.
type ErrorResponse struct {
	Error   string         `json:"error"`
	Type    ErrorType      `json:"type"`
	Context map[string]any `json:"context,omitempty"`
}

// ToResponse converts an Error to an ErrorResponse for serialization.
func (e *Error) ToResponse() ErrorResponse {
	return ErrorResponse{Error: e.Message, Type: e.Type, Context: e.Context}
}

// AsStructuredError converts any error into a structured Error, wrapping
// unknown errors as internal.
func AsStructuredError(err error) *Error {
	if err == nil {
		return nil
	}

	var structuredErr *Error
	if errors.As(err, &structuredErr) {
		return structuredErr
	}

	return InternalError("internal error", err)
}

// IsType reports whether err carries the given category.
func IsType(err error, t ErrorType) bool {
	var structuredErr *Error
	return errors.As(err, &structuredErr) && structuredErr.Type == t
}
