package domain

import "fmt"

// DomainError represents a domain-specific error
type DomainError struct {
	Code    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError creates a new DomainError
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     nil,
	}
}

// NewDomainErrorWithCause creates a new DomainError with an underlying cause
func NewDomainErrorWithCause(code, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common domain error codes
const (
	ErrCodeValidation       = "VALIDATION_ERROR"
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeAlreadyExists    = "ALREADY_EXISTS"
	ErrCodeInternalError    = "INTERNAL_ERROR"
	ErrCodeInvalidOperation = "INVALID_OPERATION"
	ErrCodeUpstream         = "UPSTREAM_ERROR"
)

// Validation errors
var (
	ErrMissingRequiredField      = NewDomainError(ErrCodeValidation, "missing required field")
	ErrInvalidEmbeddingJobStatus = NewDomainError(ErrCodeValidation, "invalid embedding job status")
	ErrInvalidURL                = NewDomainError(ErrCodeValidation, "invalid url")
	ErrEmptyQuery                = NewDomainError(ErrCodeValidation, "query is required")
)

// Not found errors
var (
	ErrPageNotFound = NewDomainError(ErrCodeNotFound, "page not found")
)

// Already exists errors
var (
	ErrPageAlreadyExists = NewDomainError(ErrCodeAlreadyExists, "page already indexed")
)

// Upstream errors
var (
	ErrLLMUnavailable  = NewDomainError(ErrCodeUpstream, "language model unavailable")
	ErrTMDBUnavailable = NewDomainError(ErrCodeUpstream, "tmdb api unavailable")
)
