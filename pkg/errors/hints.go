package errors

import (
	"strings"
)

// ErrorHint provides actionable resolution hints for common errors.
//
// Fields:
//   - Pattern: Substring to match in error message (case-insensitive)
//   - Hint: Brief description of the issue
//   - Resolution: Command or action to resolve the issue
type ErrorHint struct {
	// Pattern is a substring to match in error messages (case-insensitive).
	Pattern string

	// Hint is a brief description of the problem.
	Hint string

	// Resolution is a command or action to fix the problem.
	Resolution string
}

// CommonErrorHints maps error patterns to actionable hints.
// These are used by EnhanceErrorWithHint to add context to errors.
var CommonErrorHints = []ErrorHint{
	{
		Pattern:    "invalid requirement",
		Hint:       "A Requires-Dist specifier does not follow the dependency specifier grammar",
		Resolution: "Inspect the METADATA file; the offending specifier is quoted in the error",
	},
	{
		Pattern:    "bad marker",
		Hint:       "An environment marker expression is malformed",
		Resolution: "Markers combine comparisons with 'and'/'or', e.g. python_version < '3.12'",
	},
	{
		Pattern:    "no such file or directory",
		Hint:       "The metadata location does not exist",
		Resolution: "Pass the path of an installed package's .dist-info or .egg-info directory",
	},
	{
		Pattern:    "no metadata files",
		Hint:       "The directory exists but holds neither METADATA nor PKG-INFO",
		Resolution: "Point at the .dist-info/.egg-info directory itself, not its parent",
	},
	{
		Pattern:    "invalid environment override",
		Hint:       "A --set flag value is not of the form key=value",
		Resolution: "Use e.g. --set python_version=3.12",
	},
	{
		Pattern:    "failed to parse",
		Hint:       "Check file syntax",
		Resolution: "Validate the YAML syntax of the config or environment file",
	},
}

// EnhanceErrorWithHint appends a hint line to an error message when a known
// pattern matches.
//
// Parameters:
//   - err: The error to enhance
//
// Returns:
//   - string: The error message, with "Hint: ..." appended when matched
func EnhanceErrorWithHint(err error) string {
	if err == nil {
		return ""
	}

	message := err.Error()
	lowered := strings.ToLower(message)
	for _, hint := range CommonErrorHints {
		if strings.Contains(lowered, strings.ToLower(hint.Pattern)) {
			return message + "\n  Hint: " + hint.Hint + "\n  Resolution: " + hint.Resolution
		}
	}

	return message
}
