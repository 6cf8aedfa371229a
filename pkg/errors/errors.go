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
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Routing errors. Each one is local to the file being processed.
	ErrSkippedByFilter     ErrorCode = "SKIPPED_BY_FILTER"
	ErrFileVanished        ErrorCode = "FILE_VANISHED"
	ErrNoRuleMatched       ErrorCode = "NO_RULE_MATCHED"
	ErrDestCreateFailed    ErrorCode = "DEST_CREATE_FAILED"
	ErrDestinationConflict ErrorCode = "DEST_COLLISION"
	ErrMoveFailed          ErrorCode = "MOVE_FAILED"

	// Service errors
	ErrLockHeld ErrorCode = "LOCK_HELD"
	ErrJournal  ErrorCode = "JOURNAL"
	ErrWatch    ErrorCode = "WATCH"
)

// RouteError represents a structured error with code and details
type RouteError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *RouteError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *RouteError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *RouteError) Is(target error) bool {
	var targetErr *RouteError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new RouteError with the given code and message
func New(code ErrorCode, message string) *RouteError {
	return &RouteError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new RouteError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *RouteError {
	return &RouteError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a RouteError
func Wrap(err error, code ErrorCode, message string) *RouteError {
	if err == nil {
		return nil
	}
	return &RouteError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *RouteError {
	if err == nil {
		return nil
	}
	return &RouteError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *RouteError) WithDetail(key string, value interface{}) *RouteError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var routeErr *RouteError
	if errors.As(err, &routeErr) {
		return routeErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a RouteError
func GetErrorCode(err error) ErrorCode {
	var routeErr *RouteError
	if errors.As(err, &routeErr) {
		return routeErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a RouteError
func GetErrorDetails(err error) map[string]interface{} {
	var routeErr *RouteError
	if errors.As(err, &routeErr) {
		return routeErr.Details
	}
	return nil
}
