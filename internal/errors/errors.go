package errors

import (
	"fmt"
	"runtime"
)

// Error types for the failure classes of the checked entry points
type ErrorType string

const (
	ErrorTypeValidation    ErrorType = "validation"
	ErrorTypeStorage       ErrorType = "storage"
	ErrorTypeConfiguration ErrorType = "configuration"
	ErrorTypeCancelled     ErrorType = "cancelled"
)

// StructuredError carries the failing operation, a classification and
// optional key/value context alongside the cause.
type StructuredError struct {
	Type      ErrorType
	Operation string
	Message   string
	Cause     error
	Context   map[string]interface{}
	Stack     []uintptr
}

// Error implements the error interface
func (e *StructuredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %s: %v", e.Type, e.Operation, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Type, e.Operation, e.Message)
}

// Unwrap returns the underlying cause
func (e *StructuredError) Unwrap() error {
	return e.Cause
}

// New creates a new structured error
func New(errType ErrorType, operation, message string) *StructuredError {
	return &StructuredError{
		Type:      errType,
		Operation: operation,
		Message:   message,
		Context:   make(map[string]interface{}),
		Stack:     captureStack(),
	}
}

// Wrap wraps an existing error with additional context
func Wrap(err error, errType ErrorType, operation, message string) *StructuredError {
	if err == nil {
		return nil
	}

	return &StructuredError{
		Type:      errType,
		Operation: operation,
		Message:   message,
		Cause:     err,
		Context:   make(map[string]interface{}),
		Stack:     captureStack(),
	}
}

// WithContext adds context information to an error
func (e *StructuredError) WithContext(key string, value interface{}) *StructuredError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// Is reports whether target is a StructuredError of the same type, so
// callers can match on errors.Is(err, &StructuredError{Type: ...}).
func (e *StructuredError) Is(target error) bool {
	t, ok := target.(*StructuredError)
	return ok && t.Type == e.Type && t.Operation == "" && t.Message == ""
}

// captureStack captures the current stack trace
func captureStack() []uintptr {
	const depth = 32
	var pcs [depth]uintptr
	n := runtime.Callers(3, pcs[:]) // skip Callers, captureStack and the constructor
	return pcs[:n]
}

// NewValidationError reports arguments a checked entry point refused.
func NewValidationError(operation, message string) *StructuredError {
	return New(ErrorTypeValidation, operation, message)
}

// WrapStorageError marks err as a failure reading or writing fixture files.
func WrapStorageError(err error, operation, message string) *StructuredError {
	return Wrap(err, ErrorTypeStorage, operation, message)
}

// WrapConfigurationError marks err as a bad setting. err stays reachable
// through errors.Is, so sentinel checks keep working.
func WrapConfigurationError(err error, operation, message string) *StructuredError {
	return Wrap(err, ErrorTypeConfiguration, operation, message)
}

// WrapCancelled wraps a context error
func WrapCancelled(err error, operation string) *StructuredError {
	return Wrap(err, ErrorTypeCancelled, operation, "search cancelled")
}
