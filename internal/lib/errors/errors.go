package errors

import (
	"fmt"
	"net/http"
)

// ErrorCode represents a standardized error code
type ErrorCode string

const (
	// Client errors (4xx)
	ErrCodeValidation       ErrorCode = "VALIDATION_ERROR"
	ErrCodeNotFound         ErrorCode = "NOT_FOUND"
	ErrCodeBadRequest       ErrorCode = "BAD_REQUEST"
	ErrCodeInvalidInput     ErrorCode = "INVALID_INPUT"
	ErrCodeMethodNotAllowed ErrorCode = "METHOD_NOT_ALLOWED"

	// Server errors (5xx)
	ErrCodeInternalError ErrorCode = "INTERNAL_ERROR"
	ErrCodeUpstream      ErrorCode = "UPSTREAM_ERROR"
	ErrCodeTimeout       ErrorCode = "TIMEOUT"
)

// APIError represents a structured API error with code, message, and optional details
type APIError struct {
	Code       ErrorCode         `json:"code"`
	Message    string            `json:"message"`
	Details    map[string]string `json:"details,omitempty"`
	HTTPStatus int               `json:"-"`
}

func (e *APIError) Error() string {
	if len(e.Details) > 0 {
		return fmt.Sprintf("%s: %s (details: %v)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// WithDetail adds a single detail to the error
func (e *APIError) WithDetail(key, value string) *APIError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

func NewValidationError(message string) *APIError {
	return &APIError{
		Code:       ErrCodeValidation,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

func NewNotFoundError(resource string) *APIError {
	return &APIError{
		Code:       ErrCodeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
	}
}

func NewBadRequestError(message string) *APIError {
	return &APIError{
		Code:       ErrCodeBadRequest,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewInvalidInputError creates an invalid input error for a single field
func NewInvalidInputError(field, message string) *APIError {
	return &APIError{
		Code:    ErrCodeInvalidInput,
		Message: "Invalid input",
		Details: map[string]string{
			"field":  field,
			"reason": message,
		},
		HTTPStatus: http.StatusBadRequest,
	}
}

func NewMethodNotAllowedError() *APIError {
	return &APIError{
		Code:       ErrCodeMethodNotAllowed,
		Message:    "Method not allowed",
		HTTPStatus: http.StatusMethodNotAllowed,
	}
}

// NewUpstreamError reports a failure of the Azure Retail Prices API
func NewUpstreamError(service string) *APIError {
	return &APIError{
		Code:    ErrCodeUpstream,
		Message: "Upstream pricing service failed",
		Details: map[string]string{
			"service": service,
		},
		HTTPStatus: http.StatusBadGateway,
	}
}

func NewInternalError(message string) *APIError {
	if message == "" {
		message = "An internal error occurred"
	}
	return &APIError{
		Code:       ErrCodeInternalError,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
	}
}

func NewTimeoutError(operation string) *APIError {
	return &APIError{
		Code:    ErrCodeTimeout,
		Message: "Operation timed out",
		Details: map[string]string{
			"operation": operation,
		},
		HTTPStatus: http.StatusGatewayTimeout,
	}
}
