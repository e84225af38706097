// Package verbose provides opt-in debug logging for pyreqs. Messages go to
// stderr so they never mix with the dependency names printed on stdout,
// which downstream packaging pipelines consume line by line.
package verbose

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Logging levels. Higher levels include lower ones.
const (
	// LevelInfo logs high-level progress (which metadata file, how many specifiers).
	LevelInfo = 1
	// LevelDebug logs intermediate results (resolved environment, parse summaries).
	LevelDebug = 2
	// LevelTrace logs per-specifier decisions.
	LevelTrace = 3
)

var (
	mu      sync.RWMutex
	enabled bool
	level   = LevelTrace
	writer  io.Writer = os.Stderr
)

// Enable turns on verbose logging.
//
// Returns:
//   - None
func Enable() {
	mu.Lock()
	defer mu.Unlock()
	enabled = true
}

// Disable turns off verbose logging.
//
// Returns:
//   - None
func Disable() {
	mu.Lock()
	defer mu.Unlock()
	enabled = false
}

// IsEnabled returns whether verbose logging is currently enabled.
//
// Returns:
//   - bool: true if verbose logging is enabled
func IsEnabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return enabled
}

// SetLevel sets the maximum level that will be logged.
//
// Parameters:
//   - l: One of LevelInfo, LevelDebug, LevelTrace
//
// Returns:
//   - None
func SetLevel(l int) {
	mu.Lock()
	defer mu.Unlock()
	if l >= LevelInfo && l <= LevelTrace {
		level = l
	}
}

// Level returns the configured maximum logging level.
//
// Returns:
//   - int: The current level
func Level() int {
	mu.RLock()
	defer mu.RUnlock()
	return level
}

// SetWriter sets the output writer for verbose messages and returns a
// restore function for tests.
//
// Parameters:
//   - w: The io.Writer to use for output; nil leaves the writer unchanged
//
// Returns:
//   - func(): Restores the previous writer when called
func SetWriter(w io.Writer) func() {
	mu.Lock()
	defer mu.Unlock()
	previous := writer
	if w != nil {
		writer = w
	}
	return func() {
		mu.Lock()
		defer mu.Unlock()
		writer = previous
	}
}

// Infof prints a formatted message at info level.
//
// Parameters:
//   - format: Printf-style format string
//   - args: Variadic arguments to format into the string
//
// Returns:
//   - None
func Infof(format string, args ...any) {
	logf(LevelInfo, format, args...)
}

// Debugf prints a formatted message at debug level.
//
// Parameters:
//   - format: Printf-style format string
//   - args: Variadic arguments to format into the string
//
// Returns:
//   - None
func Debugf(format string, args ...any) {
	logf(LevelDebug, format, args...)
}

// Tracef prints a formatted message at trace level.
//
// Parameters:
//   - format: Printf-style format string
//   - args: Variadic arguments to format into the string
//
// Returns:
//   - None
func Tracef(format string, args ...any) {
	logf(LevelTrace, format, args...)
}

// logf writes a formatted message when verbose logging is enabled and the
// message level is within the configured maximum.
//
// Parameters:
//   - msgLevel: The level of this message
//   - format: Printf-style format string
//   - args: Variadic arguments to format into the string
//
// Returns:
//   - None
func logf(msgLevel int, format string, args ...any) {
	mu.RLock()
	on, maxLevel, w := enabled, level, writer
	mu.RUnlock()

	if !on || msgLevel > maxLevel {
		return
	}
	_, _ = fmt.Fprintf(w, "[DEBUG] "+format+"\n", args...)
}
