// Package models contains data structures for the application's domain models.
package models

import (
	"errors"
	"fmt"
)

// Error codes returned by the graph and ledger operations.
const (
	CodeNotFound          = "NOT_FOUND"
	CodeAlreadyExists     = "ALREADY_EXISTS"
	CodeInvalidOperation  = "INVALID_OPERATION"
	CodeConflictRetryable = "CONFLICT_RETRYABLE"
	CodeStorageFailure    = "STORAGE_FAILURE"
	CodeValidation        = "VALIDATION_ERROR"
)

// AppError represents a custom application error.
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewNotFoundError reports that a referenced user, post, edge, or
// notification does not exist.
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s with ID %v not found", resource, id),
	}
}

// NewAlreadyExistsError reports a duplicate record, such as a second follow
// request for the same ordered pair.
func NewAlreadyExistsError(message string) *AppError {
	return &AppError{
		Code:    CodeAlreadyExists,
		Message: message,
	}
}

// NewInvalidOperationError reports a structurally invalid request, such as a
// self-follow or a malformed identifier.
func NewInvalidOperationError(message string) *AppError {
	return &AppError{
		Code:    CodeInvalidOperation,
		Message: message,
	}
}

// NewConflictRetryableError reports a lost race on a counter or edge update.
// Callers should retry the whole operation.
func NewConflictRetryableError(err error) *AppError {
	return &AppError{
		Code:    CodeConflictRetryable,
		Message: "Concurrent update conflict, retry the operation",
		Err:     err,
	}
}

// NewStorageError reports that the underlying persistence layer failed. It is
// surfaced as-is and never retried by the core.
func NewStorageError(err error) *AppError {
	return &AppError{
		Code:    CodeStorageFailure,
		Message: "Storage unavailable",
		Err:     err,
	}
}

// NewValidationError reports input that fails the allow-list or field rules.
func NewValidationError(message string) *AppError {
	return &AppError{
		Code:    CodeValidation,
		Message: message,
	}
}

func hasCode(err error, code string) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

// IsNotFound reports whether err carries the NOT_FOUND code.
func IsNotFound(err error) bool { return hasCode(err, CodeNotFound) }

// IsAlreadyExists reports whether err carries the ALREADY_EXISTS code.
func IsAlreadyExists(err error) bool { return hasCode(err, CodeAlreadyExists) }

// IsInvalidOperation reports whether err carries the INVALID_OPERATION code.
func IsInvalidOperation(err error) bool { return hasCode(err, CodeInvalidOperation) }

// IsConflictRetryable reports whether err carries the CONFLICT_RETRYABLE code.
func IsConflictRetryable(err error) bool { return hasCode(err, CodeConflictRetryable) }
