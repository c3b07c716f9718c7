// Package errors provides the structured error type used across clinspect.
// Errors carry a Code that classifies the failure, the operation that
// produced it, and an optional cause, and support errors.Is / errors.As.
package errors

import (
	"errors"
	"fmt"
)

// Code represents error categories for classifying different types of failures.
type Code int

const (
	// Unknown indicates an unclassified error.
	Unknown Code = iota
	// Enumeration indicates that listing platforms or devices failed outright.
	Enumeration
	// PropertyUnavailable indicates a property that legitimately does not exist
	// for the device, version or extension combination.
	PropertyUnavailable
	// PropertyQuery indicates the capability API returned a genuine error while
	// retrieving a property.
	PropertyQuery
	// Probe indicates the work-group probe could not complete.
	Probe
	// OutOfMemory indicates the property scratch buffer could not grow.
	OutOfMemory
	// Configuration indicates a configuration error.
	Configuration
	// Validation indicates a validation failure.
	Validation
	// NotFound indicates a required resource was not found.
	NotFound
	// Unsupported indicates an unsupported operation or platform.
	Unsupported
)

// String returns the string representation of the error code.
func (c Code) String() string {
	switch c {
	case Unknown:
		return "Unknown"
	case Enumeration:
		return "Enumeration"
	case PropertyUnavailable:
		return "PropertyUnavailable"
	case PropertyQuery:
		return "PropertyQuery"
	case Probe:
		return "Probe"
	case OutOfMemory:
		return "OutOfMemory"
	case Configuration:
		return "Configuration"
	case Validation:
		return "Validation"
	case NotFound:
		return "NotFound"
	case Unsupported:
		return "Unsupported"
	default:
		return fmt.Sprintf("Code(%d)", c)
	}
}

// IsFatal reports whether errors of this code terminate the whole run.
func (c Code) IsFatal() bool {
	return c == Enumeration || c == OutOfMemory
}

// Error represents a structured application error with code, message,
// operation context, and optional cause for error chaining.
type Error struct {
	Code    Code   // Error category
	Message string // Human-readable error message
	Op      string // Operation that failed (e.g., "inspect.Enumerate")
	Cause   error  // Underlying error, if any
}

// New creates a new Error with the given code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates a new Error with a formatted message.
func Newf(code Code, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap wraps an existing error with additional context.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

// Wrapf wraps an existing error with a formatted message.
func Wrapf(code Code, cause error, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// WithOp adds operation context to the error and returns the modified error.
// This allows for fluent chaining: errors.New(...).WithOp("operation").
func (e *Error) WithOp(op string) *Error {
	e.Op = op
	return e
}

// Error implements the error interface.
// The format varies based on whether Op and Cause are set:
//   - With Op and Cause: "op: message: cause"
//   - With Op only: "op: message"
//   - With Cause only: "message: cause"
//   - Message only: "message"
func (e *Error) Error() string {
	if e.Op != "" {
		if e.Cause != nil {
			return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Cause)
		}
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is checks if the target error matches this error's code.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// GetCode extracts the error code from an error.
// Returns Unknown if the error is not an *Error type.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return Unknown
}

// IsCode checks if an error has a specific code.
func IsCode(err error, code Code) bool {
	return GetCode(err) == code
}

// IsFatal reports whether err terminates the run (Enumeration or OutOfMemory).
func IsFatal(err error) bool {
	return err != nil && GetCode(err).IsFatal()
}

// Sentinel errors for common cases.
var (
	// ErrNoPlatforms indicates the capability API reported no platforms at all.
	ErrNoPlatforms = New(Enumeration, "no platforms found")
	// ErrOutOfMemory indicates a property buffer could not be allocated.
	ErrOutOfMemory = New(OutOfMemory, "out of memory growing property buffer")
	// ErrUnsupported indicates the native capability API is not compiled in.
	ErrUnsupported = New(Unsupported, "native OpenCL backend not available in this build")
)
