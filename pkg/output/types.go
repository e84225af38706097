package output

import (
	"io"
	"sort"
	"strconv"

	"github.com/iancoleman/orderedmap"

	"github.com/ajxudir/pyreqs/pkg/filter"
	"github.com/ajxudir/pyreqs/pkg/pep508"
)

// DepsResult represents the structured output of the deps command.
//
// Fields:
//   - Summary: Aggregate statistics for the filtering run
//   - Dependencies: Included bare names, in declaration order
//   - Decisions: Per-specifier classification, in declaration order
type DepsResult struct {
	Summary      DepsSummary       `json:"summary" yaml:"summary"`
	Dependencies []string          `json:"dependencies" yaml:"dependencies"`
	Decisions    []filter.Decision `json:"decisions" yaml:"decisions"`
}

// DepsSummary holds summary statistics for a filtering run.
//
// Fields:
//   - Location: The metadata directory that was read
//   - Distribution: The distribution name from the metadata headers
//   - Version: The distribution version from the metadata headers
//   - TotalSpecifiers: Number of declared dependency specifiers
//   - Included: Number of specifiers that passed the filter
//   - Excluded: Number of specifiers that were filtered out
type DepsSummary struct {
	Location        string `json:"location" yaml:"location"`
	Distribution    string `json:"distribution" yaml:"distribution"`
	Version         string `json:"version" yaml:"version"`
	TotalSpecifiers int    `json:"total_specifiers" yaml:"total_specifiers"`
	Included        int    `json:"included" yaml:"included"`
	Excluded        int    `json:"excluded" yaml:"excluded"`
}

// NewDepsResult assembles a DepsResult from filtering decisions.
//
// Parameters:
//   - location: The metadata directory that was read
//   - name: The distribution name
//   - version: The distribution version
//   - decisions: Per-specifier decisions from the filter
//
// Returns:
//   - *DepsResult: The assembled result
func NewDepsResult(location, name, version string, decisions []filter.Decision) *DepsResult {
	result := &DepsResult{
		Summary: DepsSummary{
			Location:        location,
			Distribution:    name,
			Version:         version,
			TotalSpecifiers: len(decisions),
		},
		Dependencies: make([]string, 0, len(decisions)),
		Decisions:    decisions,
	}

	for _, d := range decisions {
		if d.Included {
			result.Dependencies = append(result.Dependencies, d.Name)
			result.Summary.Included++
		} else {
			result.Summary.Excluded++
		}
	}

	return result
}

// WriteEnvironment writes the resolved marker environment in the given
// format.
//
// Raw output prints "key = value" lines. JSON output preserves a stable,
// human-oriented ordering (the well-known marker variables first, extras
// after, each group sorted) via an order-preserving map; plain Go maps
// would lose that ordering.
//
// Parameters:
//   - w: Destination writer
//   - format: The output format
//   - env: The resolved environment
//
// Returns:
//   - error: When writing fails
func WriteEnvironment(w io.Writer, format Format, env pep508.Environment) error {
	names := environmentOrder(env)

	switch format {
	case FormatJSON:
		ordered := orderedmap.New()
		for _, name := range names {
			ordered.Set(name, env.Lookup(name))
		}
		return WriteStructured(w, format, ordered)
	case FormatYAML:
		lines := make([]string, 0, len(names))
		for _, name := range names {
			lines = append(lines, name+": "+quoteYAML(env.Lookup(name)))
		}
		return WriteLines(w, lines)
	default:
		lines := make([]string, 0, len(names))
		for _, name := range names {
			lines = append(lines, name+" = "+env.Lookup(name))
		}
		return WriteLines(w, lines)
	}
}

// environmentOrder returns the environment's variable names in display
// order: well-known marker variables first, then any custom ones, each
// group sorted alphabetically.
//
// Parameters:
//   - env: The environment to order
//
// Returns:
//   - []string: Variable names in display order
func environmentOrder(env pep508.Environment) []string {
	known := make(map[string]bool, len(pep508.KnownVariables))
	var names []string

	wellKnown := append([]string(nil), pep508.KnownVariables...)
	sort.Strings(wellKnown)
	for _, name := range wellKnown {
		known[name] = true
		if _, present := env[name]; present {
			names = append(names, name)
		}
	}

	var custom []string
	for name := range env {
		if !known[name] {
			custom = append(custom, name)
		}
	}
	sort.Strings(custom)

	return append(names, custom...)
}

// quoteYAML renders a scalar value quoted for YAML output, keeping
// version-like values ("3.11") from being read back as floats.
//
// Parameters:
//   - value: The value to quote
//
// Returns:
//   - string: The double-quoted, escaped value
func quoteYAML(value string) string {
	return strconv.Quote(value)
}
