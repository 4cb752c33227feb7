// Package errors provides error handling conventions for quail.
//
// The package wraps [github.com/cockroachdb/errors] so the rest of the code
// base imports a single errors package, and defines the failure classes the
// install lifecycle reports:
//
//   - [ErrAccess] / [AccessError]: the content source could not be opened
//   - [ErrIntegrity] / [IntegrityError]: verification found corrupt or missing files
//   - [ErrNotInstalled]: the operation needs an install that is not present
//   - [ErrConfiguration]: a manager was built without its collaborators
//
// Callers test the class with [Is]:
//
//	if errors.Is(err, errors.ErrNotInstalled) {
//	    // nothing to remove
//	}
//
// # Exit Codes
//
// [ExitError] wraps an underlying error with an exit code and optional
// suggestion for the CLI. [ExitCode] maps any error to an exit code.
package errors
