package pep508

import (
	"fmt"
	"runtime"
	"sort"
	"strings"
)

// KnownVariables lists the marker variable names defined by the dependency
// specifier grammar. Lookups are not restricted to this set, but the env
// command uses it to present a stable, complete view.
var KnownVariables = []string{
	"os_name",
	"sys_platform",
	"platform_machine",
	"platform_python_implementation",
	"platform_release",
	"platform_system",
	"platform_version",
	"python_version",
	"python_full_version",
	"implementation_name",
	"implementation_version",
	"extra",
}

// versionVariables are the marker variables whose comparisons use
// version-aware ordering instead of lexicographic ordering.
var versionVariables = map[string]bool{
	"python_version":         true,
	"python_full_version":    true,
	"implementation_version": true,
}

// Environment maps marker variable names to their values for the target
// environment. A missing variable evaluates as the empty string (the unset
// state), matching how extras-less evaluation treats "extra".
type Environment map[string]string

// DefaultEnvironment returns the ambient marker environment derivable from
// the running system.
//
// Only OS-level variables have ambient values in this process: os_name,
// sys_platform, platform_system, and platform_machine are populated from the
// Go runtime. Interpreter-specific variables (python_version and friends)
// stay unset until supplied explicitly via a mapping, config file, or flags.
//
// Returns:
//   - Environment: A fresh environment with the ambient values filled in
func DefaultEnvironment() Environment {
	env := Environment{
		"platform_machine": platformMachine(runtime.GOARCH),
	}

	switch runtime.GOOS {
	case "windows":
		env["os_name"] = "nt"
		env["sys_platform"] = "win32"
		env["platform_system"] = "Windows"
	case "darwin":
		env["os_name"] = "posix"
		env["sys_platform"] = "darwin"
		env["platform_system"] = "Darwin"
	default:
		env["os_name"] = "posix"
		env["sys_platform"] = runtime.GOOS
		env["platform_system"] = capitalize(runtime.GOOS)
	}

	return env
}

// Merge overlays explicit values on top of the receiver and returns a new
// environment; the receiver is not modified. Later arguments win.
//
// Parameters:
//   - overlays: Environment mappings to apply in order
//
// Returns:
//   - Environment: A new merged environment
func (e Environment) Merge(overlays ...Environment) Environment {
	merged := make(Environment, len(e))
	for k, v := range e {
		merged[k] = v
	}
	for _, overlay := range overlays {
		for k, v := range overlay {
			merged[k] = v
		}
	}
	return merged
}

// Lookup resolves a marker variable to its value.
//
// Parameters:
//   - name: The marker variable name
//
// Returns:
//   - string: The configured value, or "" when the variable is unset
func (e Environment) Lookup(name string) string {
	if e == nil {
		return ""
	}
	return e[name]
}

// Names returns the variable names present in the environment, sorted.
//
// Returns:
//   - []string: Sorted variable names
func (e Environment) Names() []string {
	names := make([]string, 0, len(e))
	for name := range e {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseAssignment parses a single "key=value" override as accepted by the
// --set flag.
//
// Parameters:
//   - s: The assignment string
//
// Returns:
//   - string: The variable name
//   - string: The value
//   - error: When the string lacks "=" or names an empty variable
func ParseAssignment(s string) (string, string, error) {
	key, value, found := strings.Cut(s, "=")
	key = strings.TrimSpace(key)
	if !found || key == "" {
		return "", "", fmt.Errorf("invalid environment override %q: expected key=value", s)
	}
	return key, strings.TrimSpace(value), nil
}

// capitalize upper-cases the first byte of an ASCII identifier.
//
// Parameters:
//   - s: The identifier to capitalize
//
// Returns:
//   - string: The identifier with its first letter upper-cased
func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// platformMachine translates a Go architecture name to the machine name
// Python's platform module would report.
//
// Parameters:
//   - goarch: The Go architecture identifier
//
// Returns:
//   - string: The equivalent platform_machine value
func platformMachine(goarch string) string {
	switch goarch {
	case "amd64":
		return "x86_64"
	case "386":
		return "i686"
	case "arm64":
		return "aarch64"
	default:
		return goarch
	}
}
