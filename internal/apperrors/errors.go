package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates the caller is not allowed to act on the company.
var ErrForbidden = errors.New("forbidden")

// ErrLocked indicates a mutation on an entity that is referenced by an invoice or already booked.
var ErrLocked = errors.New("entity is locked")

// ErrExternalLookup indicates an external collaborator was unavailable or returned unusable data.
// It is logged by the services and never surfaced to callers.
var ErrExternalLookup = errors.New("external lookup failed")

// ErrInvariantViolation signals a programming error such as an unbalanced posting pair.
var ErrInvariantViolation = errors.New("calculation invariant violated")

// ErrInternal is a generic infrastructure failure.
var ErrInternal = errors.New("internal error")

// AppError carries an HTTP-ish status code alongside a wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError wraps err with a code and message.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// Invariant returns an error wrapping ErrInvariantViolation.
func Invariant(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvariantViolation, fmt.Sprintf(format, args...))
}
