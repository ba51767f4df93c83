// Package output provides structured output and error handling for the review-cli.
package output

import "errors"

// Exit codes:
// 0 = Success
// 1 = Failure (bad flag value, cancelled selection, file write failure)
// 2 = System error (git failed while building a report)
const (
	ExitSuccess     = 0
	ExitUserError   = 1
	ExitSystemError = 2
)

// ErrCancelled marks errors raised because the user aborted an interactive selection.
var ErrCancelled = errors.New("selection cancelled")

// ErrMaterialization marks errors raised while writing generated files to disk.
var ErrMaterialization = errors.New("materialization failed")

// ExitError is an error that carries an exit code for the CLI.
type ExitError struct {
	Code    int
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause for errors.Is/errors.As support.
func (e *ExitError) Unwrap() error {
	return e.Cause
}

// NewUserError creates a usage error (exit code 1).
// Use for: invalid flag values, missing arguments.
func NewUserError(message string) *ExitError {
	return &ExitError{
		Code:    ExitUserError,
		Message: message,
	}
}

// NewCancelledError creates the error returned when an interactive selection is aborted.
// It exits with code 1 and matches ErrCancelled.
func NewCancelledError() *ExitError {
	return &ExitError{
		Code:    ExitUserError,
		Message: ErrCancelled.Error(),
		Cause:   ErrCancelled,
	}
}

// NewMaterializationError creates an error for directory or file write failures.
// It exits with code 1 and matches both ErrMaterialization and the wrapped cause.
func NewMaterializationError(message string, cause error) *ExitError {
	return &ExitError{
		Code:    ExitUserError,
		Message: message,
		Cause:   &materializationCause{cause: cause},
	}
}

// NewSystemError creates an error for system failures (exit code 2).
// Use for: git operation failures.
func NewSystemError(message string) *ExitError {
	return &ExitError{
		Code:    ExitSystemError,
		Message: message,
	}
}

// NewSystemErrorWithCause creates a system error wrapping an underlying cause.
func NewSystemErrorWithCause(message string, cause error) *ExitError {
	return &ExitError{
		Code:    ExitSystemError,
		Message: message,
		Cause:   cause,
	}
}

// materializationCause tags a write failure with ErrMaterialization while keeping
// the original error reachable through errors.As.
type materializationCause struct {
	cause error
}

func (m *materializationCause) Error() string {
	if m.cause == nil {
		return ErrMaterialization.Error()
	}
	return ErrMaterialization.Error() + ": " + m.cause.Error()
}

func (m *materializationCause) Unwrap() []error {
	if m.cause == nil {
		return []error{ErrMaterialization}
	}
	return []error{ErrMaterialization, m.cause}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitSuccess for nil, ExitUserError for non-ExitError errors.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	// Default to user error for untyped errors
	return ExitUserError
}
