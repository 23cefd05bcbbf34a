// Package errors provides structured error types and exit codes for aspect.
package errors

import (
	"errors"
	"fmt"
)

// Exit codes returned by the aspect CLI.
const (
	ExitSuccess      = 0 // Success
	ExitFailure      = 1 // Tests failed or snapshots differ
	ExitConfigError  = 2 // Configuration error (invalid config, bad snapshot file, etc.)
	ExitUsageError   = 3 // Misuse of an assertion in a suite
	ExitRuntimeError = 4 // Runtime error (I/O, store unavailable, etc.)
)

// ErrorKind represents the type of error.
type ErrorKind int

const (
	KindRuntime ErrorKind = iota
	KindConfig
	KindNotFound
	KindValidation
	KindUsage
)

// AspectError is the base error type for aspect.
type AspectError struct {
	Kind     ErrorKind
	Message  string
	Node     string // Test or group path if applicable
	Strategy string // Comparison strategy if applicable
	Cause    error  // Underlying error
}

func (e *AspectError) Error() string {
	msg := e.Message
	switch {
	case e.Node != "" && e.Strategy != "":
		msg = fmt.Sprintf("[%s] %s: %s", e.Node, e.Strategy, e.Message)
	case e.Node != "":
		msg = fmt.Sprintf("[%s] %s", e.Node, e.Message)
	case e.Strategy != "":
		msg = fmt.Sprintf("%s: %s", e.Strategy, e.Message)
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *AspectError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the appropriate exit code for this error.
func (e *AspectError) ExitCode() int {
	switch e.Kind {
	case KindConfig, KindValidation:
		return ExitConfigError
	case KindUsage:
		return ExitUsageError
	default:
		return ExitRuntimeError
	}
}

// New creates a new runtime error.
func New(message string) *AspectError {
	return &AspectError{
		Kind:    KindRuntime,
		Message: message,
	}
}

// Newf creates a new runtime error with formatting.
func Newf(format string, args ...interface{}) *AspectError {
	return New(fmt.Sprintf(format, args...))
}

// Config creates a new configuration error.
func Config(message string) *AspectError {
	return &AspectError{
		Kind:    KindConfig,
		Message: message,
	}
}

// Configf creates a new configuration error with formatting.
func Configf(format string, args ...interface{}) *AspectError {
	return Config(fmt.Sprintf(format, args...))
}

// Usage creates an error for a strategy invoked on a value category it does
// not support. Usage errors abort the run.
func Usage(strategy, message string) *AspectError {
	return &AspectError{
		Kind:     KindUsage,
		Strategy: strategy,
		Message:  message,
	}
}

// Usagef creates a usage error with formatting.
func Usagef(strategy, format string, args ...interface{}) *AspectError {
	return Usage(strategy, fmt.Sprintf(format, args...))
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) *AspectError {
	return &AspectError{
		Kind:    KindRuntime,
		Message: message,
		Cause:   err,
	}
}

// NotFound creates a not found error.
func NotFound(what, name string) *AspectError {
	return &AspectError{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("%s not found: %s", what, name),
	}
}

// IsUsage reports whether err is, or wraps, a usage error.
func IsUsage(err error) bool {
	var ae *AspectError
	return errors.As(err, &ae) && ae.Kind == KindUsage
}

// GetExitCode returns the exit code for an error.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var ae *AspectError
	if errors.As(err, &ae) {
		return ae.ExitCode()
	}
	return ExitRuntimeError
}
