package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidSectionKind  = errors.New("invalid section kind")
	ErrInvalidSectionField = errors.New("invalid section field")
	ErrIndexOutOfRange     = errors.New("section index out of range")
)

// ErrSectionNotFound is returned by operations that need an existing section,
// such as storing an uploaded image.
type ErrSectionNotFound struct {
	ID string
}

func (e *ErrSectionNotFound) Error() string {
	return fmt.Sprintf("section not found with ID: %s", e.ID)
}

// ValidationError represents an error that occurs due to invalid input or parameters
type ValidationError struct {
	Message string
}

// Error implements the error interface
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s", e.Message)
}

// NewValidationError creates a new validation error with the given message
func NewValidationError(message string) error {
	return ValidationError{
		Message: message,
	}
}

// ErrUploadFailed wraps a storage collaborator failure
type ErrUploadFailed struct {
	SectionID string
	Err       error
}

func (e *ErrUploadFailed) Error() string {
	return fmt.Sprintf("upload for section %s failed: %v", e.SectionID, e.Err)
}

func (e *ErrUploadFailed) Unwrap() error {
	return e.Err
}

// ErrRenderFailed reports a failed authoritative render. No document is
// produced when it is returned.
type ErrRenderFailed struct {
	Stage string
	Err   error
}

func (e *ErrRenderFailed) Error() string {
	return fmt.Sprintf("render failed during %s: %v", e.Stage, e.Err)
}

func (e *ErrRenderFailed) Unwrap() error {
	return e.Err
}
