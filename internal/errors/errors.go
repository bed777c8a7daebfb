// Package errors provides a structured error type with wrapping and an error code
package errors

// Always import the project errors package as perr

import (
	stderrs "errors"
	"fmt"
)

// ErrorCode classifies failures so callers can decide how to degrade
type ErrorCode uint16

const (
	// ErrorCodeUnknown is for unclassified errors
	ErrorCodeUnknown ErrorCode = iota

	// ErrorCodeUnavailable is for network failures and timeouts
	ErrorCodeUnavailable

	// ErrorCodeUpstream is for non-2xx answers and API-reported failures
	ErrorCodeUpstream

	// ErrorCodeDecode is for bodies that are not valid JSON
	ErrorCodeDecode

	// ErrorCodeInvalidArgument is for bad search parameters
	ErrorCodeInvalidArgument

	// ErrorCodeNotConfigured is for missing credentials or a disabled API mode
	ErrorCodeNotConfigured
)

// String returns a stable label used in logs and JSON output
func (c ErrorCode) String() string {
	switch c {
	case ErrorCodeUnavailable:
		return "unavailable"
	case ErrorCodeUpstream:
		return "upstream"
	case ErrorCodeDecode:
		return "decode"
	case ErrorCodeInvalidArgument:
		return "invalid_argument"
	case ErrorCodeNotConfigured:
		return "not_configured"
	default:
		return "unknown"
	}
}

// Error is the structured error type
// msg is human facing; code is machine facing; op names the failing operation
type Error struct {
	orig error
	msg  string
	code ErrorCode
	op   string
}

// Error implements the error interface
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := e.msg
	if e.op != "" {
		msg = e.op + ": " + msg
	}
	if e.orig != nil {
		return fmt.Sprintf("%s: %v", msg, e.orig)
	}
	return msg
}

// Unwrap returns the wrapped error, if any
func (e *Error) Unwrap() error { return e.orig }

// Code returns the error code
func (e *Error) Code() ErrorCode { return e.code }

// Op returns the operation label, if set
func (e *Error) Op() string { return e.op }

// WithOp returns a copy of e tagged with op
func (e *Error) WithOp(op string) *Error {
	if e == nil {
		return nil
	}
	c := *e
	c.op = op
	return &c
}

// New creates an *Error with the given code and message
func New(code ErrorCode, msg string) *Error {
	return &Error{code: code, msg: msg}
}

// Newf is New with formatting
func Newf(code ErrorCode, format string, args ...any) *Error {
	return &Error{code: code, msg: fmt.Sprintf(format, args...)}
}

// Wrap wraps orig with a code and message; nil orig returns nil
func Wrap(orig error, code ErrorCode, msg string) error {
	if orig == nil {
		return nil
	}
	return &Error{orig: orig, code: code, msg: msg}
}

// Wrapf is Wrap with formatting
func Wrapf(orig error, code ErrorCode, format string, args ...any) error {
	if orig == nil {
		return nil
	}
	return &Error{orig: orig, code: code, msg: fmt.Sprintf(format, args...)}
}

// As finds the first *Error in the chain
func As(err error) (*Error, bool) {
	var e *Error
	if stderrs.As(err, &e) {
		return e, true
	}
	return nil, false
}

// CodeOf returns the code of the first *Error in the chain, or ErrorCodeUnknown
func CodeOf(err error) ErrorCode {
	if e, ok := As(err); ok {
		return e.code
	}
	return ErrorCodeUnknown
}

// IsCode reports whether err carries code anywhere in its chain
func IsCode(err error, code ErrorCode) bool {
	if err == nil {
		return false
	}
	return CodeOf(err) == code
}

// Is is errors.Is re-exported so callers need only perr
func Is(err, target error) bool { return stderrs.Is(err, target) }
