package errors

import (
	"fmt"
	"io"
)

// PrintErrorWithHints prints an error with an actionable hint to the writer.
//
// This is the single implementation for error display across all commands.
//
// Parameters:
//   - w: Writer to output to (typically os.Stderr)
//   - err: The error to display
//
// Output format:
//
//	Error: <error message>
//	  Hint: <brief description, when a known pattern matches>
//	  Resolution: <action to fix it>
func PrintErrorWithHints(w io.Writer, err error) {
	if err == nil {
		return
	}

	_, _ = fmt.Fprintf(w, "Error: %s\n", EnhanceErrorWithHint(err))
}
