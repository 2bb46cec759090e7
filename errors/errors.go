package errors

import (
	"fmt"
	"strings"
)

// Kind categorizes the error
type Kind string

const (
	KindNilPointer  Kind = "nil_pointer"
	KindOutOfBounds Kind = "out_of_bounds"
	KindOverflow    Kind = "overflow"
	KindNotFound    Kind = "not_found"
)

// Sentinels for errors.Is checks. Each matches any error of its kind.
var (
	ErrNilPointer  = &Error{Kind: KindNilPointer}
	ErrOutOfBounds = &Error{Kind: KindOutOfBounds}
	ErrOverflow    = &Error{Kind: KindOverflow}
	ErrNotFound    = &Error{Kind: KindNotFound}
)

// Error is the structured error type used throughout the library
type Error struct {
	Kind   Kind
	Detail string
	Cause  error
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteString(string(e.Kind))

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Kind == t.Kind
	}
	return false
}

// Convenience constructors for common error patterns

// NilPointer creates a nil pointer error
func NilPointer(where string) *Error {
	return &Error{
		Kind:   KindNilPointer,
		Detail: fmt.Sprintf("%s: nil pointer", where),
	}
}

// OutOfBounds creates an out of bounds error
func OutOfBounds(offset, length, size uint32) *Error {
	return &Error{
		Kind:   KindOutOfBounds,
		Detail: fmt.Sprintf("offset=%d, length=%d, size=%d", offset, length, size),
	}
}

// Overflow creates an overflow error
func Overflow(what string, value uint64) *Error {
	return &Error{
		Kind:   KindOverflow,
		Detail: fmt.Sprintf("%s %d overflows uint32", what, value),
	}
}

// NotFound creates a not-found error
func NotFound(what string) *Error {
	return &Error{
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s not found", what),
	}
}

// Wrap wraps an existing error with additional context
func Wrap(kind Kind, cause error, detail string) *Error {
	return &Error{
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
