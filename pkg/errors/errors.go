package errors

import (
	"fmt"
	"net/http"
)

// ErrorType represents different categories of errors
type ErrorType string

const (
	ErrorTypeValidation         ErrorType = "validation"
	ErrorTypeInvalidFileKind    ErrorType = "invalid_file_kind"
	ErrorTypeInsufficientInputs ErrorType = "insufficient_inputs"
	ErrorTypeIndexOutOfRange    ErrorType = "index_out_of_range"
	ErrorTypeInvalidRange       ErrorType = "invalid_range"
	ErrorTypeInvalidChunkSize   ErrorType = "invalid_chunk_size"
	ErrorTypeNoTextAvailable    ErrorType = "no_text_available"
	ErrorTypeUpstreamFailure    ErrorType = "upstream_failure"
	ErrorTypeNotFound           ErrorType = "not_found"
	ErrorTypeInternal           ErrorType = "internal"
)

// AppError represents a structured application error
type AppError struct {
	Type       ErrorType `json:"type"`
	Message    string    `json:"message"`
	Details    string    `json:"details,omitempty"`
	StatusCode int       `json:"-"`
	Cause      error     `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewValidationError creates a new validation error
func NewValidationError(message string, details ...string) *AppError {
	detail := ""
	if len(details) > 0 {
		detail = details[0]
	}
	return &AppError{
		Type:       ErrorTypeValidation,
		Message:    message,
		Details:    detail,
		StatusCode: http.StatusBadRequest,
	}
}

// NewInvalidFileKindError creates an error for uploads that are not PDF files
func NewInvalidFileKindError(message string, details ...string) *AppError {
	detail := ""
	if len(details) > 0 {
		detail = details[0]
	}
	return &AppError{
		Type:       ErrorTypeInvalidFileKind,
		Message:    message,
		Details:    detail,
		StatusCode: http.StatusBadRequest,
	}
}

// NewInsufficientInputsError creates an error for operations lacking required inputs
func NewInsufficientInputsError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeInsufficientInputs,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

// NewIndexOutOfRangeError creates an error for out-of-bounds list or output indices
func NewIndexOutOfRangeError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeIndexOutOfRange,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

// NewInvalidRangeError creates an error for page ranges outside the document bounds
func NewInvalidRangeError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeInvalidRange,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

// NewInvalidChunkSizeError creates an error for non-positive pages-per-file values
func NewInvalidChunkSizeError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeInvalidChunkSize,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

// NewNoTextAvailableError creates an error for exports requested before extraction
func NewNoTextAvailableError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeNoTextAvailable,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

// NewUpstreamFailureError creates an error for failures inside the PDF/DOCX libraries
func NewUpstreamFailureError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeUpstreamFailure,
		Message:    message,
		StatusCode: http.StatusUnprocessableEntity,
		Cause:      cause,
	}
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

// NewInternalError creates a new internal server error
func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// IsType checks if the error is of a specific type
func IsType(err error, errorType ErrorType) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Type == errorType
	}
	return false
}

// GetStatusCode returns the HTTP status code for an error
func GetStatusCode(err error) int {
	if appErr, ok := err.(*AppError); ok {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}
