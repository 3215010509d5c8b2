package errors

import (
	"net/http"
)

// ErrorKind classifies API errors for status mapping.
type ErrorKind string

const (
	KindValidation      ErrorKind = "validation"
	KindNotFound        ErrorKind = "not_found"
	KindBadRequest      ErrorKind = "bad_request"
	KindPayloadTooLarge ErrorKind = "payload_too_large"
	KindInternal        ErrorKind = "internal"
)

// APIError is the structured error body every failing endpoint returns.
type APIError struct {
	Kind      ErrorKind         `json:"kind"`
	Message   string            `json:"message"`
	Details   map[string]string `json:"details,omitempty"`
	RequestID string            `json:"request_id,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return e.Message
}

// HTTPStatus maps the error kind to a status code.
func (e *APIError) HTTPStatus() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusUnprocessableEntity
	case KindBadRequest:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindPayloadTooLarge:
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

// NewValidationError creates a validation error with field details.
func NewValidationError(message string, fields map[string]string) *APIError {
	return &APIError{Kind: KindValidation, Message: message, Details: fields}
}

// NewBadRequestError creates a bad request error.
func NewBadRequestError(message string) *APIError {
	return &APIError{Kind: KindBadRequest, Message: message}
}

// NewNotFoundError creates a not found error for a resource.
func NewNotFoundError(resource string) *APIError {
	return &APIError{Kind: KindNotFound, Message: resource + " not found"}
}

// NewPayloadTooLargeError creates an oversize-upload error.
func NewPayloadTooLargeError(message string) *APIError {
	return &APIError{Kind: KindPayloadTooLarge, Message: message}
}

// NewInternalError creates a generic internal error.
func NewInternalError(message string) *APIError {
	return &APIError{Kind: KindInternal, Message: message}
}
