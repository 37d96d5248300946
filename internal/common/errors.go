// Package common defines sentinel errors and constants shared by the
// storage, service and transport layers. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound           = errors.New("not found")
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrAlreadyExists      = errors.New("already exists")

	// Service-level errors.
	ErrInternal           = errors.New("internal error")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrIncorrectPassword  = errors.New("current password is incorrect")

	// Validation errors, all reported as bad requests.
	ErrValidation       = errors.New("validation error")
	ErrEmailTaken       = errors.New("email already in use")
	ErrNoFieldsToUpdate = errors.New("no fields to update")
	ErrSelfDeletion     = errors.New("cannot delete your own account")
	ErrInvalidRole      = errors.New("invalid role")
)

// ValidationError carries a client-facing message for a rejected input.
// It matches ErrValidation with errors.Is.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NewValidationError returns a ValidationError with the given message.
func NewValidationError(msg string) error {
	return &ValidationError{Message: msg}
}
