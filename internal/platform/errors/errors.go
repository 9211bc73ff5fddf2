// Package errors provides error types and utilities for GokuTrace.
// It extends the standard errors package with context wrapping and the
// sentinels used by the probing pipeline.
package errors

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// Sentinel errors for common failure scenarios
var (
	// ErrTimeout indicates an operation exceeded its time limit
	ErrTimeout = errors.New("operation timed out")

	// ErrRateLimit indicates a rate limit wait could not be satisfied
	ErrRateLimit = errors.New("rate limit exceeded")

	// ErrInvalidInput indicates invalid input was provided
	ErrInvalidInput = errors.New("invalid input")

	// ErrConnectionFailed indicates a connection could not be established
	ErrConnectionFailed = errors.New("connection failed")

	// ErrInvalidResponse indicates a response could not be read or was malformed
	ErrInvalidResponse = errors.New("invalid response")
)

// wrappedError wraps an error with additional context
type wrappedError struct {
	msg   string
	cause error
}

func (e *wrappedError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.cause)
	}
	return e.msg
}

func (e *wrappedError) Unwrap() error {
	return e.cause
}

// Wrap wraps an error with additional context message.
// If err is nil, Wrap returns nil.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &wrappedError{msg: msg, cause: err}
}

// Wrapf wraps an error with a formatted context message.
// If err is nil, Wrapf returns nil.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &wrappedError{msg: fmt.Sprintf(format, args...), cause: err}
}

func Is(err, target error) bool { return errors.Is(err, target) }

func As(err error, target interface{}) bool { return errors.As(err, target) }

func Unwrap(err error) error { return errors.Unwrap(err) }

func New(msg string) error { return errors.New(msg) }

func Errorf(format string, args ...interface{}) error { return fmt.Errorf(format, args...) }

func Join(errs ...error) error { return errors.Join(errs...) }

// IsTimeout reports whether err is a timeout of any flavour: the sentinel,
// a context deadline or a net.Error that says so.
func IsTimeout(err error) bool {
	if err == nil {
		return false
	}
	if Is(err, ErrTimeout) || Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return As(err, &ne) && ne.Timeout()
}

func IsInvalidInput(err error) bool { return Is(err, ErrInvalidInput) }

func IsConnectionFailed(err error) bool { return Is(err, ErrConnectionFailed) }

// Summarize returns at most n runes of err's message.
// A nil error yields "unknown".
func Summarize(err error, n int) string {
	if err == nil {
		return "unknown"
	}
	msg := []rune(err.Error())
	if n >= 0 && len(msg) > n {
		msg = msg[:n]
	}
	return string(msg)
}
