package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an application error
type Kind string

const (
	// Remote-call failures
	KindAuthentication Kind = "AUTHENTICATION_FAILED"
	KindNotFound       Kind = "NOT_FOUND"
	KindRateLimited    Kind = "RATE_LIMITED"
	KindInputTooLarge  Kind = "INPUT_TOO_LARGE"
	KindModel          Kind = "MODEL_ERROR"

	// Local failures
	KindConfiguration  Kind = "CONFIGURATION_ERROR"
	KindInvalidRequest Kind = "INVALID_REQUEST"
	KindValidation     Kind = "VALIDATION_FAILED"
	KindInternal       Kind = "INTERNAL_ERROR"
)

// Error carries a kind alongside the message so callers can branch on the
// failure class without string matching
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Err
}

// HTTPStatus maps the error kind to an HTTP status code
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindInvalidRequest, KindValidation, KindInputTooLarge:
		return http.StatusBadRequest
	case KindAuthentication:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	case KindRateLimited:
		return http.StatusTooManyRequests
	case KindModel:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// New creates a new application error
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf creates a new application error with a formatted message
func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a kind and message to an existing error
func Wrap(err error, kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf reports the kind of err, or KindInternal when err carries none
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// As extracts an *Error from err's chain, wrapping it as internal otherwise
func As(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, KindInternal, "unexpected error")
}

// Common constructors

// Authentication creates an authentication error
func Authentication(message string) *Error {
	return New(KindAuthentication, message)
}

// NotFound creates a not found error
func NotFound(message string) *Error {
	return New(KindNotFound, message)
}

// RateLimited creates a rate limit error
func RateLimited(message string) *Error {
	return New(KindRateLimited, message)
}

// InputTooLarge creates an input too large error
func InputTooLarge(message string) *Error {
	return New(KindInputTooLarge, message)
}

// Model wraps a model-provider failure
func Model(err error, message string) *Error {
	return Wrap(err, KindModel, message)
}

// Configuration creates a configuration error
func Configuration(message string) *Error {
	return New(KindConfiguration, message)
}

// InvalidRequest creates an invalid request error
func InvalidRequest(message string) *Error {
	return New(KindInvalidRequest, message)
}

// Validation creates a validation error
func Validation(message string) *Error {
	return New(KindValidation, message)
}

// Internal wraps an unexpected failure
func Internal(err error) *Error {
	return Wrap(err, KindInternal, "internal error")
}
