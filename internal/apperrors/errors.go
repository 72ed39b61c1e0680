package apperrors

import (
	"errors"
	"fmt"
)

// Sentinel error kinds. Callers classify failures with errors.Is against these.

// ErrValidation indicates that input data failed validation checks or violated a
// business precondition.
var ErrValidation = errors.New("validation error")

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrConflict indicates that the requested state transition conflicts with the
// resource's current state (e.g. a deal that is already finalized).
var ErrConflict = errors.New("state conflict")

// ErrExternalService indicates that an upstream service was unreachable or returned
// a malformed response.
var ErrExternalService = errors.New("external service error")

// ErrDependency indicates a fault in an internal dependency such as the database,
// or internally detected corrupt data.
var ErrDependency = errors.New("dependency error")

// AppError carries a message and an optional cause while unwrapping to one of the
// sentinel kinds above, so both errors.Is(err, ErrX) and err.Error() detail work.
type AppError struct {
	Kind    error
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Kind, e.Cause}
	}
	return []error{e.Kind}
}

// NewAppError creates an AppError of an arbitrary kind with an underlying cause.
func NewAppError(kind error, message string, cause error) *AppError {
	return &AppError{Kind: kind, Message: message, Cause: cause}
}

// NewValidationError creates a validation error with the given message.
func NewValidationError(message string) *AppError {
	return &AppError{Kind: ErrValidation, Message: message}
}

// NewNotFoundError creates a not-found error with the given message.
func NewNotFoundError(message string) *AppError {
	return &AppError{Kind: ErrNotFound, Message: message}
}

// NewConflictError creates a conflict error with the given message.
func NewConflictError(message string) *AppError {
	return &AppError{Kind: ErrConflict, Message: message}
}

// NewExternalServiceError creates an external-service error wrapping cause.
func NewExternalServiceError(message string, cause error) *AppError {
	return &AppError{Kind: ErrExternalService, Message: message, Cause: cause}
}

// NewDependencyError creates a dependency error wrapping cause.
func NewDependencyError(message string, cause error) *AppError {
	return &AppError{Kind: ErrDependency, Message: message, Cause: cause}
}
