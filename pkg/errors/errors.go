// Package errors provides structured error types for paramgraph.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the codec, the CLI and the HTTP API
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures (bad graphs, bad encodings)
//   - MALFORMED_*: Corrupt or truncated serialized data
//   - NOT_FOUND: Resource not found
//   - INTERNAL_*: Unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidGraph, "input node %d: unknown child %d", i, id)
//	if errors.Is(err, errors.ErrCodeInvalidGraph) {
//	    // Handle validation error
//	}
//
//	// Typed codec errors carry a Code() method and are matched the same way
//	if errors.Is(err, errors.ErrCodeMalformedGraph) {
//	    var m *errors.MalformedGraphError
//	    stderrors.As(err, &m) // m.Offset locates the bad byte
//	}
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidGraph    Code = "INVALID_GRAPH"
	ErrCodeInvalidRootKey  Code = "INVALID_ROOT_KEY"
	ErrCodeInvalidEncoding Code = "INVALID_ENCODING"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"
	ErrCodeInvalidConfig   Code = "INVALID_CONFIG"

	// Serialized data errors
	ErrCodeMalformedGraph   Code = "MALFORMED_GRAPH"
	ErrCodeCapacityExceeded Code = "CAPACITY_EXCEEDED"
	ErrCodeDigestMismatch   Code = "DIGEST_MISMATCH"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

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

// coded is implemented by the typed errors in this package.
type coded interface {
	error
	Code() Code
}

// Is reports whether err has the given error code.
// The outermost coded error in the chain decides: an *Error by its Code field,
// a typed error by its Code method.
func Is(err error, code Code) bool {
	return err != nil && GetCode(err) == code
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if no coded error is found in the chain.
func GetCode(err error) Code {
	for err != nil {
		switch e := err.(type) {
		case *Error:
			return e.Code
		case coded:
			return e.Code()
		}
		err = errors.Unwrap(err)
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

// MalformedGraphError reports a serialized graph blob that cannot be decoded:
// truncated, carrying an unknown format tag, or referencing strings that do
// not exist. Offset is the byte position of the failed read, or -1 when the
// failure is not tied to a position (for example invalid base64url text).
type MalformedGraphError struct {
	Offset int
	Reason string
	Cause  error
}

// Error implements the error interface.
func (e *MalformedGraphError) Error() string {
	msg := "malformed graph blob"
	if e.Offset >= 0 {
		msg = fmt.Sprintf("%s at offset %d", msg, e.Offset)
	}
	msg += ": " + e.Reason
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *MalformedGraphError) Unwrap() error { return e.Cause }

// Code returns the error code for this error type.
func (e *MalformedGraphError) Code() Code { return ErrCodeMalformedGraph }

// InvalidRootKeyError reports a root whose key is missing from the string
// table at encode time. The caller must fix the graph; retrying cannot help.
type InvalidRootKeyError struct {
	Key string
}

// Error implements the error interface.
func (e *InvalidRootKeyError) Error() string {
	return fmt.Sprintf("root key %q is not in the string table", e.Key)
}

// Code returns the error code for this error type.
func (e *InvalidRootKeyError) Code() Code { return ErrCodeInvalidRootKey }
