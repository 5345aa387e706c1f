// Package errors provides structured error types for stipple.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the scene core, renderers and CLI
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Structural graph corruption (dangling or cyclic ids) uses the *_MISSING and
// GROUP_REUSE codes and is always fatal to the operation that hit it.
// Builder-level reference problems (CRUMB_MISMATCH, *_OVERFLOW) are reported
// but never abort a batch.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeGroupMissing, "group %d does not exist", id)
//	if errors.Is(err, errors.ErrCodeGroupMissing) {
//	    // Handle dangling reference
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidTheme, origErr, "failed to load %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Dangling references (fatal, not retried)
	ErrCodeGroupMissing Code = "GROUP_MISSING"
	ErrCodeCrumbMissing Code = "CRUMB_MISSING"
	ErrCodeLayerMissing Code = "LAYER_MISSING"

	// Graph structure violations
	ErrCodeGroupReuse Code = "GROUP_REUSE"

	// Builder reference problems (logged, batch continues)
	ErrCodeCrumbMismatch Code = "CRUMB_MISMATCH"
	ErrCodeIndexOverflow Code = "INDEX_OVERFLOW"
	ErrCodePullOverflow  Code = "PULL_OVERFLOW"

	// Theme lookups
	ErrCodeVariationMissing Code = "VARIATION_MISSING"
	ErrCodeGradientMissing  Code = "GRADIENT_MISSING"

	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidTheme  Code = "INVALID_THEME"

	// Resource not found errors
	ErrCodeNotFound Code = "NOT_FOUND"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
// Joined errors (errors.Join) match if any member matches.
func Is(err error, code Code) bool {
	if err == nil {
		return false
	}
	var e *Error
	if errors.As(err, &e) && e.Code == code {
		return true
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, inner := range joined.Unwrap() {
			if Is(inner, code) {
				return true
			}
		}
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// IsFatal reports whether err carries a code that must abort the operation
// that produced it (dangling ids and self-containing groups).
func IsFatal(err error) bool {
	switch GetCode(err) {
	case ErrCodeGroupMissing, ErrCodeCrumbMissing, ErrCodeLayerMissing, ErrCodeGroupReuse:
		return true
	}
	return false
}
