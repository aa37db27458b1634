// Package errors classifies every failure the client can observe: transport
// faults, rejected requests, and local validation. The gateway converts raw
// HTTP outcomes into AppError values and nothing above it ever sees a bare
// transport error.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType represents the category of an error.
type ErrorType string

const (
	// Request-shaped failures reported by the server.
	ErrorTypeValidation   ErrorType = "VALIDATION"
	ErrorTypeNotFound     ErrorType = "NOT_FOUND"
	ErrorTypeConflict     ErrorType = "CONFLICT"
	ErrorTypeUnauthorized ErrorType = "UNAUTHORIZED"
	ErrorTypeForbidden    ErrorType = "FORBIDDEN"

	// Transient failures worth retrying.
	ErrorTypeTimeout     ErrorType = "TIMEOUT"
	ErrorTypeRateLimit   ErrorType = "RATE_LIMIT"
	ErrorTypeUnavailable ErrorType = "UNAVAILABLE"
	ErrorTypeNetwork     ErrorType = "NETWORK"

	// Everything else.
	ErrorTypeInternal ErrorType = "INTERNAL"
)

// AppError is the uniform error shape flowing out of the gateway and the
// retry wrapper.
type AppError struct {
	Type       ErrorType `json:"type"`
	Message    string    `json:"message"`
	Cause      error     `json:"-"`
	HTTPStatus int       `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithCause wraps an underlying error.
func (e *AppError) WithCause(err error) *AppError {
	e.Cause = err
	return e
}

// UserMessage is the human-readable narration shown through the alert
// facade. Server-provided messages win when present.
func (e *AppError) UserMessage() string {
	if e.Message != "" {
		return e.Message
	}
	switch e.Type {
	case ErrorTypeNetwork:
		return "Network error. Please check your connection and try again."
	case ErrorTypeUnauthorized:
		return "Authentication failed. Please log in again."
	case ErrorTypeForbidden:
		return "You do not have permission to perform this action."
	case ErrorTypeNotFound:
		return "The requested resource was not found."
	case ErrorTypeConflict:
		return "This resource already exists."
	case ErrorTypeValidation:
		return "Invalid data provided."
	case ErrorTypeRateLimit:
		return "Too many requests. Please wait a moment and try again."
	case ErrorTypeTimeout, ErrorTypeUnavailable:
		return "Service temporarily unavailable. Please try again later."
	default:
		return "An unexpected error occurred. Please try again."
	}
}

// Constructor functions for common error types

// NewValidationError creates a validation error.
func NewValidationError(message string) *AppError {
	return &AppError{Type: ErrorTypeValidation, Message: message, HTTPStatus: http.StatusBadRequest}
}

// NewNotFoundError creates a not found error.
func NewNotFoundError(resource string) *AppError {
	return &AppError{Type: ErrorTypeNotFound, Message: fmt.Sprintf("%s not found", resource), HTTPStatus: http.StatusNotFound}
}

// NewConflictError creates a conflict error.
func NewConflictError(message string) *AppError {
	return &AppError{Type: ErrorTypeConflict, Message: message, HTTPStatus: http.StatusConflict}
}

// NewUnauthorizedError creates an unauthorized error.
func NewUnauthorizedError(message string) *AppError {
	if message == "" {
		message = "unauthorized"
	}
	return &AppError{Type: ErrorTypeUnauthorized, Message: message, HTTPStatus: http.StatusUnauthorized}
}

// NewForbiddenError creates a forbidden error.
func NewForbiddenError(message string) *AppError {
	if message == "" {
		message = "forbidden"
	}
	return &AppError{Type: ErrorTypeForbidden, Message: message, HTTPStatus: http.StatusForbidden}
}

// NewInternalError creates an internal error.
func NewInternalError(message string) *AppError {
	return &AppError{Type: ErrorTypeInternal, Message: message, HTTPStatus: http.StatusInternalServerError}
}

// NewTimeoutError creates a timeout error.
func NewTimeoutError(operation string) *AppError {
	return &AppError{Type: ErrorTypeTimeout, Message: fmt.Sprintf("operation '%s' timed out", operation), HTTPStatus: http.StatusRequestTimeout}
}

// NewNetworkError creates a transport-level error. Always retryable.
func NewNetworkError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeNetwork, Message: message, Cause: err}
}

// FromStatusCode classifies a non-2xx HTTP response. The message usually
// comes from the server's JSON error body; pass "" to use the default
// narration for the class.
func FromStatusCode(status int, message string) *AppError {
	var t ErrorType
	switch {
	case status == http.StatusUnauthorized:
		t = ErrorTypeUnauthorized
	case status == http.StatusForbidden:
		t = ErrorTypeForbidden
	case status == http.StatusNotFound:
		t = ErrorTypeNotFound
	case status == http.StatusConflict:
		t = ErrorTypeConflict
	case status == http.StatusRequestTimeout:
		t = ErrorTypeTimeout
	case status == http.StatusTooManyRequests:
		t = ErrorTypeRateLimit
	case status == http.StatusBadRequest, status == http.StatusUnprocessableEntity:
		t = ErrorTypeValidation
	case status >= 500:
		t = ErrorTypeUnavailable
	default:
		t = ErrorTypeInternal
	}
	return &AppError{Type: t, Message: message, HTTPStatus: status}
}

// IsRetryable reports whether the failure class is safe to retry:
// transport faults, 5xx, 408 and 429. Auth, permission and validation
// failures are terminal per request.
func IsRetryable(err error) bool {
	appErr := GetAppError(err)
	if appErr == nil {
		return false
	}
	switch appErr.Type {
	case ErrorTypeNetwork, ErrorTypeUnavailable, ErrorTypeTimeout, ErrorTypeRateLimit:
		return true
	}
	return false
}

// Helper functions

// GetAppError extracts an AppError from an error chain.
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// IsType checks if an error is of a specific type.
func IsType(err error, errType ErrorType) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Type == errType
}

// IsUnauthorized checks if an error is an unauthorized error.
func IsUnauthorized(err error) bool {
	return IsType(err, ErrorTypeUnauthorized)
}

// IsForbidden checks if an error is a forbidden error.
func IsForbidden(err error) bool {
	return IsType(err, ErrorTypeForbidden)
}

// IsValidation checks if an error is a validation error.
func IsValidation(err error) bool {
	return IsType(err, ErrorTypeValidation)
}

// IsNotFound checks if an error is a not found error.
func IsNotFound(err error) bool {
	return IsType(err, ErrorTypeNotFound)
}

// Wrap wraps an error with additional context, preserving the type of an
// existing AppError.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	if appErr := GetAppError(err); appErr != nil {
		appErr.Message = fmt.Sprintf("%s: %s", message, appErr.Message)
		return appErr
	}
	return NewInternalError(message).WithCause(err)
}

// Wrapf wraps an error with a formatted message.
func Wrapf(err error, format string, args ...interface{}) error {
	return Wrap(err, fmt.Sprintf(format, args...))
}
