// Package output provides structured output and error handling for the outpost CLI.
package output

import "errors"

// Exit codes:
// 0 = Success
// 1 = User error (bad args, no post root, page without filename)
// 2 = System error (I/O error, config unreadable)
// 3 = Exporter error (external exporter command failed or produced bad output)
const (
	ExitSuccess       = 0
	ExitUserError     = 1
	ExitSystemError   = 2
	ExitExporterError = 3
)

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

// NewUserError creates an error for user-caused issues (exit code 1).
// Use for: bad arguments, cursor outside any task-bearing entry,
// a page export without a filename property.
func NewUserError(message string) *ExitError {
	return &ExitError{
		Code:    ExitUserError,
		Message: message,
	}
}

// NewSystemError creates an error for system failures (exit code 2).
// Use for: file I/O errors, unreadable config.
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

// NewExporterError creates an error for external collaborator failures
// (exit code 3). Use for: exporter command failures, malformed exporter
// output such as missing front-matter markers.
func NewExporterError(message string) *ExitError {
	return &ExitError{
		Code:    ExitExporterError,
		Message: message,
	}
}

// NewExporterErrorWithCause creates an exporter error wrapping an underlying cause.
func NewExporterErrorWithCause(message string, cause error) *ExitError {
	return &ExitError{
		Code:    ExitExporterError,
		Message: message,
		Cause:   cause,
	}
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
