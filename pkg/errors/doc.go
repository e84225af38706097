// Package errors provides unified error types and display for pyreqs.
//
// This package consolidates all error handling into a single location:
//   - ExitError: Command exit with specific exit code
//   - Hint lookup: Actionable resolution hints for common failures
//
// Error Display:
//
// The package provides consistent error formatting with actionable hints:
//
//	errors.PrintErrorWithHints(os.Stderr, err)
//
// Exit Codes:
//
// Standard exit codes are defined for scripting integration:
//   - ExitSuccess (0): Dependency list produced (possibly empty)
//   - ExitFailure (2): Fatal processing error, e.g. unparseable specifier
//   - ExitUsageError (3): Unusable invocation (bad location, missing metadata,
//     invalid flag value); the command prints its usage text
package errors
