// Package errors carries the coded errors raised by the engine. Callers
// branch on the code (IsNotFound, IsValidation...) instead of on message
// text; wrapping keeps the innermost code and metadata.
package errors

import (
	"errors"
	"fmt"
	"maps"
)

// Code categorizes an error for callers that need to branch on it
type Code string

const (
	CodeUnknown Code = "unknown"

	// CodeInvalidArgument is a bad call: a nil slot, an empty ID, an enum
	// name an AI script does not know
	CodeInvalidArgument Code = "invalid_argument"

	// CodeNotFound is a missing ability, script, aura ref or saved record
	CodeNotFound Code = "not_found"

	// CodeAlreadyExists is a second registration under a taken ID
	CodeAlreadyExists Code = "already_exists"

	// CodeInternal is an engine wiring fault or a failing backend
	CodeInternal Code = "internal"

	// CodeValidation is malformed definition or save data
	CodeValidation Code = "validation"
)

// Error is an engine error with a code and optional metadata such as the
// ability or channel involved
type Error struct {
	Code    Code
	Message string
	Cause   error
	Meta    map[string]any
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Cause }

// WithMeta attaches a key to the error and returns it for chaining
func (e *Error) WithMeta(key string, value any) *Error {
	if e.Meta == nil {
		e.Meta = make(map[string]any)
	}
	e.Meta[key] = value
	return e
}

func coded(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

func codedf(code Code, format string, args ...any) *Error {
	return coded(code, fmt.Sprintf(format, args...))
}

func NotFound(message string) *Error {
	return coded(CodeNotFound, message)
}

func NotFoundf(format string, args ...any) *Error {
	return codedf(CodeNotFound, format, args...)
}

func InvalidArgument(message string) *Error {
	return coded(CodeInvalidArgument, message)
}

func InvalidArgumentf(format string, args ...any) *Error {
	return codedf(CodeInvalidArgument, format, args...)
}

func AlreadyExistsf(format string, args ...any) *Error {
	return codedf(CodeAlreadyExists, format, args...)
}

func Internal(message string) *Error {
	return coded(CodeInternal, message)
}

func Internalf(format string, args ...any) *Error {
	return codedf(CodeInternal, format, args...)
}

func Validation(message string) *Error {
	return coded(CodeValidation, message)
}

func Validationf(format string, args ...any) *Error {
	return codedf(CodeValidation, format, args...)
}

// Wrap adds context to err. A coded cause keeps its code and a copy of its
// metadata; anything else becomes CodeUnknown. Wrap(nil) is nil.
func Wrap(err error, message string) *Error {
	if err == nil {
		return nil
	}

	wrapped := &Error{Code: CodeUnknown, Message: message, Cause: err}
	if inner, ok := asError(err); ok {
		wrapped.Code = inner.Code
		wrapped.Meta = maps.Clone(inner.Meta)
	}
	return wrapped
}

// Wrapf is Wrap with a formatted message
func Wrapf(err error, format string, args ...any) *Error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WrapWithCode is Wrap that overrides the code, used where a library error
// such as a JSON or Redis failure gets an engine meaning
func WrapWithCode(err error, code Code, message string) *Error {
	wrapped := Wrap(err, message)
	if wrapped != nil {
		wrapped.Code = code
	}
	return wrapped
}

func asError(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

func codeOf(err error) Code {
	if e, ok := asError(err); ok {
		return e.Code
	}
	return CodeUnknown
}

func IsNotFound(err error) bool        { return codeOf(err) == CodeNotFound }
func IsInvalidArgument(err error) bool { return codeOf(err) == CodeInvalidArgument }
func IsAlreadyExists(err error) bool   { return codeOf(err) == CodeAlreadyExists }
func IsInternal(err error) bool        { return codeOf(err) == CodeInternal }
func IsValidation(err error) bool      { return codeOf(err) == CodeValidation }

// GetMeta returns the metadata of the outermost coded error
func GetMeta(err error) map[string]any {
	if e, ok := asError(err); ok {
		return e.Meta
	}
	return nil
}
