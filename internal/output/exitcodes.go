// Package output defines the errors that end a docco run and their exit codes.
package output

import "errors"

// Exit codes:
// 0 = Success
// 1 = Configuration error (descriptor missing, malformed or invalid)
// 2 = I/O error (source unreadable, output unwritable)
const (
	ExitSuccess     = 0
	ExitConfigError = 1
	ExitIOError     = 2
)

// Kind identifies which collaborator failed
type Kind string

const (
	KindConfigurationUnreadable Kind = "configuration unreadable"
	KindSourceUnreadable        Kind = "source unreadable"
	KindOutputUnwritable        Kind = "output unwritable"
)

// ExitError is a fatal error that carries an exit code for the CLI.
type ExitError struct {
	Code    int
	Kind    Kind
	Path    string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	msg := e.Message
	if e.Path != "" {
		msg += " " + e.Path
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for errors.Is/errors.As support.
func (e *ExitError) Unwrap() error {
	return e.Cause
}

// NewConfigError reports a configuration descriptor that could not be used.
func NewConfigError(path string, cause error) *ExitError {
	return &ExitError{
		Code:    ExitConfigError,
		Kind:    KindConfigurationUnreadable,
		Path:    path,
		Message: "cannot load configuration",
		Cause:   cause,
	}
}

// NewSourceError reports a source file that could not be read.
func NewSourceError(path string, cause error) *ExitError {
	return &ExitError{
		Code:    ExitIOError,
		Kind:    KindSourceUnreadable,
		Path:    path,
		Message: "cannot read source",
		Cause:   cause,
	}
}

// NewOutputError reports a document that could not be written.
func NewOutputError(path string, cause error) *ExitError {
	return &ExitError{
		Code:    ExitIOError,
		Kind:    KindOutputUnwritable,
		Path:    path,
		Message: "cannot write output",
		Cause:   cause,
	}
}

// IsKind reports whether err is an ExitError of the given kind.
func IsKind(err error, kind Kind) bool {
	var exitErr *ExitError
	return errors.As(err, &exitErr) && exitErr.Kind == kind
}

// GetExitCode extracts the exit code from an error.
// Returns ExitSuccess for nil, ExitConfigError for non-ExitError errors.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	// Flag and argument errors from cobra
	return ExitConfigError
}
