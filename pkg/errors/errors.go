package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// ErrorType represents the kinds of failure the dashboard distinguishes
type ErrorType string

const (
	// ErrorTypeTransport indicates the request never produced a response
	ErrorTypeTransport ErrorType = "TRANSPORT"

	// ErrorTypeRequestFailed indicates the upstream answered with a non-2xx status
	ErrorTypeRequestFailed ErrorType = "REQUEST_FAILED"

	// ErrorTypeUnauthenticated indicates a protected operation was attempted without a token
	ErrorTypeUnauthenticated ErrorType = "UNAUTHENTICATED"

	// ErrorTypeDecode indicates the upstream payload did not have the expected shape
	ErrorTypeDecode ErrorType = "DECODE"

	// ErrorTypeValidation indicates local input could not be turned into a request
	ErrorTypeValidation ErrorType = "VALIDATION"
)

// AppError represents an application error
type AppError struct {
	Type       ErrorType
	Message    string
	StatusCode int
	// Detail is the raw upstream response body, when there was one.
	Detail string
	Err    error
}

// Error implements the error interface
func (e *AppError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Type, e.Message)
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap implements the unwrap interface
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewTransportError creates a new transport error
func NewTransportError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeTransport,
		Message: message,
		Err:     err,
	}
}

// NewRequestFailedError creates an error for a non-success upstream status
func NewRequestFailedError(statusCode int, body string) *AppError {
	return &AppError{
		Type:       ErrorTypeRequestFailed,
		Message:    "request failed",
		StatusCode: statusCode,
		Detail:     strings.TrimSpace(body),
	}
}

// NewUnauthenticatedError creates a new unauthenticated error
func NewUnauthenticatedError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeUnauthenticated,
		Message: message,
	}
}

// NewDecodeError creates a new decode error
func NewDecodeError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeDecode,
		Message: message,
		Err:     err,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: message,
	}
}

// IsType reports whether err wraps an AppError of the given type
func IsType(err error, t ErrorType) bool {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Type == t
	}
	return false
}

// UserMessage returns the text shown in a status region: the upstream body when
// there is one, the message of a validation error, otherwise fallback.
func UserMessage(err error, fallback string) string {
	var appErr *AppError
	if !stderrors.As(err, &appErr) {
		return fallback
	}
	switch {
	case appErr.Detail != "":
		return appErr.Detail
	case appErr.Type == ErrorTypeValidation:
		return appErr.Message
	default:
		return fallback
	}
}
