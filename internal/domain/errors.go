package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrValidation    = errors.New("validation error")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrConflict      = errors.New("conflict")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Fields returns the errors keyed by field name. When a field has several
// errors the first one wins.
func (e *ValidationError) Fields() map[string]string {
	m := make(map[string]string, len(e.Errors))
	for _, fe := range e.Errors {
		if _, ok := m[fe.Field]; !ok {
			m[fe.Field] = fe.Message
		}
	}
	return m
}

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}
