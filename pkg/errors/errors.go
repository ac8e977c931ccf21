package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown        ErrorCode = "UNKNOWN"
	ErrInvalidInput   ErrorCode = "INVALID_INPUT"
	ErrNotFound       ErrorCode = "NOT_FOUND"
	ErrAlreadyExists  ErrorCode = "ALREADY_EXISTS"
	ErrNotImplemented ErrorCode = "NOT_IMPLEMENTED"

	// Subprocess and file resource failures
	ErrIO ErrorCode = "IO"

	// Declaration errors
	ErrUnresolvedPackage ErrorCode = "UNRESOLVED_PACKAGE"
	ErrConfigConflict    ErrorCode = "CONFIG_CONFLICT"

	// Configuration errors
	ErrConfigLoad ErrorCode = "CONFIG_LOAD"

	// Session errors
	ErrConfirm       ErrorCode = "CONFIRM"
	ErrCallback      ErrorCode = "CALLBACK"
	ErrSessionClosed ErrorCode = "SESSION_CLOSED"
)

// YumaError represents a structured error with code and details
type YumaError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *YumaError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *YumaError) Unwrap() error {
	return e.Wrapped
}

// Is matches any YumaError carrying the same code
func (e *YumaError) Is(target error) bool {
	var targetErr *YumaError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new YumaError with the given code and message
func New(code ErrorCode, message string) *YumaError {
	return &YumaError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new YumaError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *YumaError {
	return &YumaError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a YumaError
func Wrap(err error, code ErrorCode, message string) *YumaError {
	if err == nil {
		return nil
	}
	return &YumaError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *YumaError {
	if err == nil {
		return nil
	}
	return &YumaError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *YumaError) WithDetail(key string, value interface{}) *YumaError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var yumaErr *YumaError
	if errors.As(err, &yumaErr) {
		return yumaErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a YumaError
func GetErrorCode(err error) ErrorCode {
	var yumaErr *YumaError
	if errors.As(err, &yumaErr) {
		return yumaErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a YumaError
func GetErrorDetails(err error) map[string]interface{} {
	var yumaErr *YumaError
	if errors.As(err, &yumaErr) {
		return yumaErr.Details
	}
	return nil
}

// Classify wraps err as ErrUnknown unless it already carries a code.
func Classify(err error, message string) error {
	if err == nil {
		return nil
	}
	var yumaErr *YumaError
	if errors.As(err, &yumaErr) {
		return err
	}
	return Wrap(err, ErrUnknown, message)
}
