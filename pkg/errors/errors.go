package errors

import (
	"fmt"
)

// ErrorCode represents a unique error code
type ErrorCode int

// AppError represents an application error
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
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

// Common error codes
const (
	ErrNotFound ErrorCode = iota + 1000
	ErrValidation
	ErrTransport
	ErrWriteInFlight
	ErrUnsupported
	ErrNotConfirmed
	ErrInternal
)

func NewNotFound(resource, id string) *AppError {
	return &AppError{
		Code:    ErrNotFound,
		Message: fmt.Sprintf("%s %s not found", resource, id),
	}
}

func NewValidation(message string, err error) *AppError {
	return &AppError{
		Code:    ErrValidation,
		Message: message,
		Err:     err,
	}
}

func NewTransport(operation string, err error) *AppError {
	return &AppError{
		Code:    ErrTransport,
		Message: fmt.Sprintf("backend request failed: %s", operation),
		Err:     err,
	}
}

func NewWriteInFlight(resource string) *AppError {
	return &AppError{
		Code:    ErrWriteInFlight,
		Message: fmt.Sprintf("a write for %s is already in flight", resource),
	}
}

func NewUnsupported(resource, operation string) *AppError {
	return &AppError{
		Code:    ErrUnsupported,
		Message: fmt.Sprintf("%s does not support %s", resource, operation),
	}
}

func NewNotConfirmed(resource string) *AppError {
	return &AppError{
		Code:    ErrNotConfirmed,
		Message: fmt.Sprintf("deleting a %s requires confirmation", resource),
	}
}

func NewInternal(err error) *AppError {
	return &AppError{
		Code:    ErrInternal,
		Message: "internal server error",
		Err:     err,
	}
}

// CodeOf extracts the application error code, ErrInternal for foreign errors.
func CodeOf(err error) ErrorCode {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return ErrInternal
}
