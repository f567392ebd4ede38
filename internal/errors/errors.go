// Package errors provides structured error handling with field attribution and
// HTTP status code mapping.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType represents the category of error for metrics and response formatting.
type ErrorType string

const (
	// TypeValidation indicates invalid input (HTTP 400)
	TypeValidation ErrorType = "validation"
	// TypeNotFound indicates resource not found (HTTP 404)
	TypeNotFound ErrorType = "not_found"
	// TypeConflict indicates resource conflict (HTTP 409)
	TypeConflict ErrorType = "conflict"
	// TypeInternal indicates server-side error (HTTP 500)
	TypeInternal ErrorType = "internal"
	// TypeExternal indicates external service error (HTTP 502)
	TypeExternal ErrorType = "external"
)

// Error is a structured error carrying the form field it is attributed to.
// Field-scoped errors surface in the action envelope as
// {"failed":true,"fieldErrors":{field:[message]}}.
type Error struct {
	Type    ErrorType
	Field   string
	Message string
	Cause   error
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
	case TypeNotFound:
		return http.StatusNotFound
	case TypeConflict:
		return http.StatusConflict
	case TypeExternal:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// ValidationError creates a field-scoped validation error (HTTP 400).
func ValidationError(field, message string) *Error {
	return &Error{Type: TypeValidation, Field: field, Message: message}
}

// NotFoundError creates a field-scoped not-found error (HTTP 404).
func NotFoundError(field, message string) *Error {
	return &Error{Type: TypeNotFound, Field: field, Message: message}
}

// ConflictError creates a field-scoped conflict error (HTTP 409).
func ConflictError(field, message string) *Error {
	return &Error{Type: TypeConflict, Field: field, Message: message}
}

// InternalError creates an internal error (HTTP 500).
func InternalError(message string, cause error) *Error {
	return &Error{Type: TypeInternal, Message: message, Cause: cause}
}

// ExternalError creates an external service error (HTTP 502).
func ExternalError(message string, cause error) *Error {
	return &Error{Type: TypeExternal, Message: message, Cause: cause}
}

// Envelope is the JSON error structure sent to clients. Field-less errors are
// keyed under "form".
type Envelope struct {
	Failed      bool                `json:"failed"`
	FieldErrors map[string][]string `json:"fieldErrors"`
}

// ToEnvelope converts an Error to the field-keyed error envelope.
func (e *Error) ToEnvelope() Envelope {
	field := e.Field
	if field == "" {
		field = "form"
	}
	return Envelope{
		Failed:      true,
		FieldErrors: map[string][]string{field: {e.Message}},
	}
}

// AsStructuredError converts any error into a structured Error.
// If err is already an *Error, returns it unchanged.
// Otherwise wraps it as an internal error.
func AsStructuredError(err error) *Error {
	if err == nil {
		return nil
	}

	var structuredErr *Error
	if errors.As(err, &structuredErr) {
		return structuredErr
	}

	return InternalError("internal server error", err)
}
