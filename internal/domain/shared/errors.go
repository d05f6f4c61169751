package shared

import (
	"errors"
	"fmt"
)

// DomainError is the base error type for all domain errors
type DomainError struct {
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func NewDomainError(message string) *DomainError {
	return &DomainError{Message: message}
}

var (
	// ErrNoSession is returned when a command needs a logged-in session and none is stored
	ErrNoSession = errors.New("not logged in")

	// ErrOperationInProgress is returned when a batch is already running
	ErrOperationInProgress = errors.New("another operation is in progress")
)

// Remote call errors

// AuthError means the backend rejected the session token (expired or missing)
type AuthError struct {
	*DomainError
}

func NewAuthError(message string) *AuthError {
	if message == "" {
		message = "session expired, please log in again"
	}
	return &AuthError{DomainError: NewDomainError(message)}
}

// NetworkError wraps a transport failure (connection, timeout, bad status)
type NetworkError struct {
	*DomainError
	Cause error
}

func NewNetworkError(cause error) *NetworkError {
	return &NetworkError{
		DomainError: NewDomainError(fmt.Sprintf("network error: %v", cause)),
		Cause:       cause,
	}
}

func (e *NetworkError) Unwrap() error {
	return e.Cause
}

// APIError is a business failure reported inside the response envelope (code < 0)
type APIError struct {
	*DomainError
	Code int
}

func NewAPIError(code int, message string) *APIError {
	if message == "" {
		message = "request failed"
	}
	return &APIError{
		DomainError: NewDomainError(message),
		Code:        code,
	}
}

// IsAuthError reports whether err (or anything it wraps) is an AuthError
func IsAuthError(err error) bool {
	var authErr *AuthError
	return errors.As(err, &authErr)
}

// Validation error

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// NotFoundError is returned when an entity is missing from a fetched snapshot

type NotFoundError struct {
	*DomainError
	Entity string
	ID     int64
}

func NewNotFoundError(entity string, id int64) *NotFoundError {
	return &NotFoundError{
		DomainError: NewDomainError(fmt.Sprintf("%s %d not found", entity, id)),
		Entity:      entity,
		ID:          id,
	}
}
