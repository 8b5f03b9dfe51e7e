package errors

import (
	"errors"
	"fmt"
)

// ErrorCode classifies an application error
type ErrorCode string

const (
	ErrCodeNotFound     ErrorCode = "NOT_FOUND"
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrCodeForbidden    ErrorCode = "FORBIDDEN"
	ErrCodeValidation   ErrorCode = "VALIDATION_ERROR"
	ErrCodePersistence  ErrorCode = "PERSISTENCE_ERROR"
	ErrCodeInternal     ErrorCode = "INTERNAL_ERROR"
)

// AppError represents an application error
type AppError struct {
	Code    ErrorCode
	Message string
	Field   string // set for validation errors, names the offending field
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with an AppError
func Wrap(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Validation creates a validation error for a specific field. The message is
// safe to surface verbatim to the client.
func Validation(field, message string) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: message,
		Field:   field,
	}
}

func is(err error, code ErrorCode) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// IsNotFound checks if error is NotFound
func IsNotFound(err error) bool {
	return is(err, ErrCodeNotFound)
}

// IsUnauthorized checks if error is Unauthorized
func IsUnauthorized(err error) bool {
	return is(err, ErrCodeUnauthorized)
}

// IsForbidden checks if error is Forbidden
func IsForbidden(err error) bool {
	return is(err, ErrCodeForbidden)
}

// IsValidation checks if error is a validation error
func IsValidation(err error) bool {
	return is(err, ErrCodeValidation)
}

// IsPersistence checks if error is a store-write failure
func IsPersistence(err error) bool {
	return is(err, ErrCodePersistence)
}
