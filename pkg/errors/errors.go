// Package errors augments the standard errors
// provided by fmt (https://golang.org/src/fmt/errors.go)
// with a Wrap() method to wrap errors without resorting
// to fmt.Errorf("%w", err).
//
// Errors built by this package are designed to be used as shared
// sentinels: Wrap and friends return copies, so wrapping a sentinel
// never mutates it, and Is matches any wrapped copy of a sentinel.
package errors

import (
	stderr "errors"
)

var _ error = New("")

// New Error
func New(msg string) *Error {
	return &Error{msg: msg}
}

// Error augments the standard error interface with a Wrap method.
//
// The main difference with github.com/pkg/errors is that we are wrapping
// errors from errors, not from text.
type Error struct {
	msg   string
	extra string
	err   error
}

// Error message
func (e *Error) Error() string {
	if e.extra != "" {
		return e.msg + ": " + e.extra
	}
	return e.msg
}

// Unwrap nested error
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.err
}

// Wrap a nested error. The receiver is left untouched.
func (e *Error) Wrap(err error) *Error {
	return &Error{msg: e.msg, extra: e.extra, err: err}
}

// WrapMessage wraps a nested error and appends some free-form detail to
// the sentinel message. Matching via Is considers the sentinel message only.
func (e *Error) WrapMessage(err error, extra string) *Error {
	return &Error{msg: e.msg, extra: extra, err: err}
}

// Is of some error type?
func (e *Error) Is(target error) bool {
	if e == target {
		return true
	}
	if t, ok := target.(*Error); ok {
		return e.msg == t.msg
	}
	return false
}

// As finds the first error in err's chain that matches target, and if so, sets target to that error value and returns true.
// (a shortcut to standard lib errors.As)
func As(err error, target interface{}) bool {
	return stderr.As(err, target)
}

// Is reports whether any error in err's chain matches target
// (a shortcut to standard lib errors.As)
func Is(err, target error) bool {
	return stderr.Is(err, target)
}
