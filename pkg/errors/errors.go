// Package errors provides structured error types for worldsvg.
//
// Every fatal condition in a run (bad input, broken geometry, bad options,
// failed reads and writes) is reported as an [Error] carrying a
// machine-readable [Code]. The CLI prints the message and exits; tests match
// on the code.
//
// # Error Codes
//
//   - INVALID_*: input or option validation failures
//   - FILE_NOT_FOUND, IO_ERROR: filesystem failures
//   - UNSUPPORTED, INTERNAL_ERROR: everything else
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidGeometry, "point ring has %d points", n)
//	if errors.Is(err, errors.ErrCodeInvalidGeometry) {
//	    // Handle broken geometry
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeIO, origErr, "write %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code is a machine-readable error category.
type Code string

const (
	ErrCodeInvalidInput    Code = "INVALID_INPUT"    // malformed or rejected world input
	ErrCodeInvalidGeometry Code = "INVALID_GEOMETRY" // ring shape does not match its kind
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"   // unknown input or output format
	ErrCodeInvalidConfig   Code = "INVALID_CONFIG"
	ErrCodeInvalidLayer    Code = "INVALID_LAYER"
	ErrCodeInvalidPath     Code = "INVALID_PATH"

	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"
	ErrCodeIO           Code = "IO_ERROR"

	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED" // e.g. rsvg-convert missing
)

// Error pairs a [Code] with a message and an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return string(e.Code) + ": " + e.Message
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap is [New] with an underlying cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Is reports whether any *Error in err's chain carries code, so an IO_ERROR
// wrapping a FILE_NOT_FOUND matches both.
func Is(err error, code Code) bool {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return false
		}
		if e.Code == code {
			return true
		}
		err = e.Cause
	}
	return false
}

// GetCode returns the code of the outermost *Error in err's chain, or "".
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns the message of the outermost *Error without its code
// prefix, or err.Error() for other errors.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
