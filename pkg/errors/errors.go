// Package errors provides structured error types for switchpuzzle.
//
// Every precondition violation detected by the permutation model, the route
// engine or the puzzle loader is reported as an *Error carrying a
// machine-readable Code. Callers can branch on the code to present a
// targeted message instead of a generic failure.
//
// # Error Codes
//
// Codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures
//   - EMPTY_*: Missing stages or stage menus
//   - TOO_MANY_ROUTES: A route product that does not fit in an int
//   - NOT_FOUND_*: Resource not found
//   - INTERNAL_*: Unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidArrangement, "duplicate symbol %d", s)
//	if errors.Is(err, errors.ErrCodeInvalidArrangement) {
//	    // Handle validation error
//	}
//
// Sentinel values also work with the standard library:
//
//	if stderrors.Is(err, errors.ErrEmptyStageList) { ... }
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Core validation errors
	ErrCodeInvalidArrangement Code = "INVALID_ARRANGEMENT"
	ErrCodeInvalidOperation   Code = "INVALID_OPERATION"
	ErrCodeEmptyStageList     Code = "EMPTY_STAGE_LIST"
	ErrCodeEmptyStageMenu     Code = "EMPTY_STAGE_MENU"
	ErrCodeTooManyRoutes      Code = "TOO_MANY_ROUTES"

	// Input validation errors
	ErrCodeInvalidInput       Code = "INVALID_INPUT"
	ErrCodeInvalidFormat      Code = "INVALID_FORMAT"
	ErrCodeInvalidPuzzle      Code = "INVALID_PUZZLE"
	ErrCodeStageCountMismatch Code = "STAGE_COUNT_MISMATCH"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Sentinel errors for use with the standard errors.Is.
// They match any *Error carrying the same code.
var (
	ErrInvalidArrangement = &Error{Code: ErrCodeInvalidArrangement, Message: "invalid arrangement"}
	ErrInvalidOperation   = &Error{Code: ErrCodeInvalidOperation, Message: "invalid operation"}
	ErrEmptyStageList     = &Error{Code: ErrCodeEmptyStageList, Message: "empty stage list"}
	ErrEmptyStageMenu     = &Error{Code: ErrCodeEmptyStageMenu, Message: "empty stage menu"}
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

// Is reports whether target is an *Error with the same code.
// This lets the package sentinels match errors created with New or Wrap.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
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
// It unwraps the error chain and returns true for the first *Error found
// whose code matches.
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

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// RootCode returns the code of the innermost *Error in the chain.
// Wrapping layers such as INVALID_PUZZLE hide the precise cause behind their
// own code; RootCode digs it back out.
func RootCode(err error) Code {
	var code Code
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			break
		}
		code = e.Code
		err = e.Cause
	}
	return code
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix, followed by
// the messages of its causes.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return err.Error()
	}
	if e.Cause == nil {
		return e.Message
	}
	return e.Message + ": " + UserMessage(e.Cause)
}

// IsInputError reports whether err was caused by invalid caller input rather
// than an internal failure.
func IsInputError(err error) bool {
	return IsInputCode(GetCode(err))
}

// IsInputCode reports whether code denotes invalid caller input.
func IsInputCode(code Code) bool {
	switch code {
	case ErrCodeInvalidArrangement, ErrCodeInvalidOperation,
		ErrCodeEmptyStageList, ErrCodeEmptyStageMenu, ErrCodeTooManyRoutes,
		ErrCodeInvalidInput, ErrCodeInvalidFormat,
		ErrCodeInvalidPuzzle, ErrCodeStageCountMismatch:
		return true
	}
	return false
}
