package errors

import (
	"fmt"
	"strings"

	crdb "github.com/cockroachdb/errors"
)

// Exit codes for CLI applications.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitUser indicates a user-related error (invalid input, configuration, etc.).
	ExitUser = 1

	// ExitSystem indicates a system-related error (I/O, network, permissions, etc.).
	ExitSystem = 2
)

// Sentinel errors for common failure conditions.
var (
	// ErrNotFound indicates the requested resource was not found.
	ErrNotFound = crdb.New("resource not found")

	// ErrInvalidConfig indicates configuration validation failed.
	ErrInvalidConfig = crdb.New("invalid configuration")

	// ErrAccess indicates the content source could not be opened or read.
	ErrAccess = crdb.New("cannot access solution")

	// ErrIntegrity indicates post-copy verification found corrupt or missing files.
	ErrIntegrity = crdb.New("integrity check failed")

	// ErrNotInstalled indicates an operation needs an install that is not present.
	ErrNotInstalled = crdb.New("solution not installed")

	// ErrConfiguration indicates a required collaborator was not provided.
	ErrConfiguration = crdb.New("manager not configured")
)

// Re-exported helpers so callers only import one errors package.
var (
	New           = crdb.New
	Newf          = crdb.Newf
	Wrap          = crdb.Wrap
	Wrapf         = crdb.Wrapf
	Is            = crdb.Is
	As            = crdb.As
	CombineErrors = crdb.CombineErrors
)

// AccessError reports a content source that could not be opened.
type AccessError struct {
	// Source names the content source (e.g. a directory or URL).
	Source string

	// Err is the underlying cause, if any.
	Err error
}

// NewAccessError creates an AccessError for source caused by err.
func NewAccessError(source string, err error) *AccessError {
	return &AccessError{Source: source, Err: err}
}

func (e *AccessError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("cannot access solution %s", e.Source)
	}
	return fmt.Sprintf("cannot access solution %s: %v", e.Source, e.Err)
}

func (e *AccessError) Unwrap() error {
	return e.Err
}

// Is reports ErrAccess as a match so callers can test the class with errors.Is.
func (e *AccessError) Is(target error) bool {
	return target == ErrAccess
}

// IntegrityError lists the relative paths that failed verification.
type IntegrityError struct {
	Files []string
}

// NewIntegrityError creates an IntegrityError for the given offending files.
func NewIntegrityError(files []string) *IntegrityError {
	return &IntegrityError{Files: files}
}

func (e *IntegrityError) Error() string {
	return "corrupt files: " + strings.Join(e.Files, ", ")
}

// Is reports ErrIntegrity as a match.
func (e *IntegrityError) Is(target error) bool {
	return target == ErrIntegrity
}

// ExitError wraps an error with an exit code and optional suggestion for CLI applications.
// It implements the error interface and supports unwrapping via errors.Unwrap.
type ExitError struct {
	// Err is the underlying error that caused the exit.
	Err error

	// Code is the exit code to return to the operating system.
	Code int

	// Suggestion is an optional actionable suggestion for the user.
	Suggestion string
}

// NewExitError creates an ExitError with the given underlying error and exit code.
// If err is nil, the returned ExitError will have a nil Err field.
func NewExitError(err error, code int) *ExitError {
	return &ExitError{
		Err:  err,
		Code: code,
	}
}

// NewUserError creates an ExitError with ExitUser code and a suggestion.
func NewUserError(err error, suggestion string) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitUser,
		Suggestion: suggestion,
	}
}

// NewSystemError creates an ExitError with ExitSystem code and a suggestion.
func NewSystemError(err error, suggestion string) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitSystem,
		Suggestion: suggestion,
	}
}

// NewConfigError creates an ExitError with ExitUser code and a standard suggestion.
func NewConfigError(err error) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitUser,
		Suggestion: "Check quail.yaml or run: quail status",
	}
}

// Error returns the error message from the underlying error.
// If the underlying error is nil, it returns a generic message with the exit code.
func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit code %d", e.Code)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error, enabling errors.Is and errors.As
// to examine the error chain.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCode maps an error to a process exit code. Errors already carrying an
// ExitError keep their code; integrity and access failures are system errors;
// everything else is a user error.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if crdb.As(err, &exitErr) {
		return exitErr.Code
	}
	if crdb.Is(err, ErrAccess) || crdb.Is(err, ErrIntegrity) {
		return ExitSystem
	}
	return ExitUser
}
