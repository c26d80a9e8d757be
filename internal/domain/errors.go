package domain

import (
	"errors"
	"net/http"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
// Implementing this interface enables extensible error handling.
type HTTPError interface {
	error
	StatusCode() int
}

// Domain error types implementing HTTPError interface
type (
	// NotFoundError indicates a resource was not found
	NotFoundError struct {
		Message string
	}

	// ValidationError indicates invalid input
	ValidationError struct {
		Message string
	}

	// StateConflictError indicates an illegal lifecycle transition,
	// e.g. confirming a non-analyzed idea or generating documents twice
	StateConflictError struct {
		Message string
	}

	// UnauthorizedError indicates authentication failure
	UnauthorizedError struct {
		Message string
	}

	// UnavailableError indicates the upstream AI service failed after
	// all retry attempts; clients may retry
	UnavailableError struct {
		Message string
	}
)

// Error implementations
func (e *NotFoundError) Error() string      { return e.Message }
func (e *ValidationError) Error() string    { return e.Message }
func (e *StateConflictError) Error() string { return e.Message }
func (e *UnauthorizedError) Error() string  { return e.Message }
func (e *UnavailableError) Error() string   { return e.Message }

// StatusCode implementations (HTTPError interface)
func (e *NotFoundError) StatusCode() int      { return http.StatusNotFound }
func (e *ValidationError) StatusCode() int    { return http.StatusBadRequest }
func (e *StateConflictError) StatusCode() int { return http.StatusBadRequest }
func (e *UnauthorizedError) StatusCode() int  { return http.StatusUnauthorized }
func (e *UnavailableError) StatusCode() int   { return http.StatusServiceUnavailable }

// Constructors
func NewNotFoundError(msg string) *NotFoundError           { return &NotFoundError{Message: msg} }
func NewValidationError(msg string) *ValidationError       { return &ValidationError{Message: msg} }
func NewStateConflictError(msg string) *StateConflictError { return &StateConflictError{Message: msg} }
func NewUnauthorizedError(msg string) *UnauthorizedError   { return &UnauthorizedError{Message: msg} }
func NewUnavailableError(msg string) *UnavailableError     { return &UnavailableError{Message: msg} }

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound      = errors.New("not found")
	ErrConflict      = errors.New("already exists")
	ErrValidation    = errors.New("validation failed")
	ErrStateConflict = errors.New("illegal state transition")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrUnavailable   = errors.New("service unavailable")
)

// Is implementations let errors.Is() match typed errors against the sentinels
func (e *NotFoundError) Is(target error) bool      { return target == ErrNotFound }
func (e *ValidationError) Is(target error) bool    { return target == ErrValidation }
func (e *StateConflictError) Is(target error) bool { return target == ErrStateConflict }
func (e *UnauthorizedError) Is(target error) bool  { return target == ErrUnauthorized }
func (e *UnavailableError) Is(target error) bool   { return target == ErrUnavailable }

// ConflictError represents a resource conflict with details about the existing resource
type ConflictError struct {
	Message      string // Human-readable error message
	ResourceType string // Type of resource (idea, document, diagram, feature, task)
	ResourceID   string // ID of the existing/conflicting resource
}

// Error implements the error interface
func (e *ConflictError) Error() string {
	return e.Message
}

// StatusCode implements the HTTPError interface
func (e *ConflictError) StatusCode() int {
	return http.StatusConflict
}

// Is allows errors.Is() to match against ErrConflict
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}
