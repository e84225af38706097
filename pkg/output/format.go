// Package output provides formatters for exporting command results. The
// default raw format prints one value per line for pipeline consumption;
// JSON and YAML formats carry the full structured result.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format represents the output format type.
type Format string

const (
	// FormatRaw is the default line-oriented output.
	FormatRaw Format = "raw"
	// FormatJSON outputs data as compact JSON.
	FormatJSON Format = "json"
	// FormatYAML outputs data as YAML.
	FormatYAML Format = "yaml"
)

// ParseFormat parses a format string into a Format type.
//
// The parsing is case-insensitive. The empty string selects the raw default.
//
// Parameters:
//   - s: Format string to parse (e.g., "json", "YAML", "")
//
// Returns:
//   - Format: The parsed format
//   - error: When the string names no supported format
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "raw":
		return FormatRaw, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return FormatRaw, fmt.Errorf("invalid output format %q: expected raw, json, or yaml", s)
	}
}

// IsStructuredFormat returns true if the format carries the full structured
// result rather than bare lines.
//
// Parameters:
//   - f: The format to check
//
// Returns:
//   - bool: true for JSON and YAML, false for raw
func IsStructuredFormat(f Format) bool {
	return f == FormatJSON || f == FormatYAML
}

// WriteStructured marshals a result in the given structured format.
//
// JSON output is compact (single line, trailing newline) for easy parsing
// by tools; YAML output uses the standard block style.
//
// Parameters:
//   - w: Destination writer
//   - format: FormatJSON or FormatYAML
//   - v: The result value to marshal
//
// Returns:
//   - error: When marshaling or writing fails, or the format is not structured
func WriteStructured(w io.Writer, format Format, v any) error {
	switch format {
	case FormatJSON:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case FormatYAML:
		data, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		_, err = w.Write(data)
		return err
	default:
		return fmt.Errorf("format %q is not structured", format)
	}
}

// WriteLines writes one value per line, the raw pipeline format.
//
// Parameters:
//   - w: Destination writer
//   - lines: Values to print
//
// Returns:
//   - error: When writing fails
func WriteLines(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
