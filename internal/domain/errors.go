// Package domain defines the core business entities and errors.
package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrInvalidEmail is returned when an email address is malformed.
	ErrInvalidEmail = errors.New("invalid email format")

	// ErrEmptyUpdate is returned when a partial update carries no fields.
	ErrEmptyUpdate = errors.New("no fields to update")

	// ErrUnauthenticated is returned when a request carries no usable identity.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrForbidden is returned when the caller's role does not permit an operation.
	ErrForbidden = errors.New("forbidden")
)

// ValidationError describes a single invalid field.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// Unwrap returns the wrapped sentinel so callers can use errors.Is.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError builds a ValidationError for field. A nil err defaults to ErrValidation.
func NewValidationError(field, message string, err error) *ValidationError {
	if err == nil {
		err = ErrValidation
	}
	return &ValidationError{Field: field, Message: message, Err: err}
}
