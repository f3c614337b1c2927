package errors

import (
	"fmt"
)

// ErrorType represents the category of error
type ErrorType int

const (
	// ErrorTypeValidation covers bad input rejected at the boundary
	// (empty text, empty weekday set, non-future scheduled instant).
	ErrorTypeValidation ErrorType = iota
	// ErrorTypeNotFound covers operations on deleted or unknown task ids.
	ErrorTypeNotFound
	// ErrorTypeState covers operations that conflict with a task's current
	// state, e.g. completing an already-completed task or completing a
	// non-recurring task through the recurring path.
	ErrorTypeState
	// ErrorTypeStorage covers repository load/save failures.
	ErrorTypeStorage
	// ErrorTypeSync covers failures talking to the sync server.
	ErrorTypeSync
)

// String returns the string representation of the error type
func (et ErrorType) String() string {
	switch et {
	case ErrorTypeValidation:
		return "validation"
	case ErrorTypeNotFound:
		return "not_found"
	case ErrorTypeState:
		return "state"
	case ErrorTypeStorage:
		return "storage"
	case ErrorTypeSync:
		return "sync"
	default:
		return "unknown"
	}
}

// AppError represents a structured application error
type AppError struct {
	Type    ErrorType
	Message string
	Code    string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type.String(), e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type.String(), e.Message)
}

// Unwrap returns the underlying error for error unwrapping
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is checks if this error matches the target error type
func (e *AppError) Is(target error) bool {
	if appErr, ok := target.(*AppError); ok {
		return e.Type == appErr.Type && e.Code == appErr.Code
	}
	return false
}

// IsType checks if this error is of the specified type
func (e *AppError) IsType(errorType ErrorType) bool {
	return e.Type == errorType
}

// WithContext adds context information to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}
