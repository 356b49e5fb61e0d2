package domain

import (
	"fmt"
)

// ErrNotFound is returned by lookups that have no dedicated error type
type ErrNotFound struct {
	Entity string
	ID     string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found with ID: %s", e.Entity, e.ID)
}

// ErrTemplateNotFound is returned when a template is not found
type ErrTemplateNotFound struct {
	Message string
}

func (e *ErrTemplateNotFound) Error() string {
	return e.Message
}

// ErrCardNotFound is returned when a card is not found
type ErrCardNotFound struct {
	Message string
}

func (e *ErrCardNotFound) Error() string {
	return e.Message
}

// ErrVisualResourceNotFound is returned when a visual resource is not found
type ErrVisualResourceNotFound struct {
	Message string
}

func (e *ErrVisualResourceNotFound) Error() string {
	return e.Message
}

// ValidationError represents an error that occurs due to invalid input or parameters
type ValidationError struct {
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s", e.Message)
}

// NewValidationError creates a new validation error with the given message
func NewValidationError(message string) error {
	return ValidationError{
		Message: message,
	}
}

// IsNotFound reports whether err is one of the not found errors of this package
func IsNotFound(err error) bool {
	switch err.(type) {
	case *ErrNotFound, *ErrTemplateNotFound, *ErrCardNotFound, *ErrVisualResourceNotFound:
		return true
	}
	return false
}
