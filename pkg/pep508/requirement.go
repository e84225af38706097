// Package pep508 parses Python dependency specifier strings and evaluates
// their environment markers. A specifier combines a package name, an optional
// extras list, optional version constraints or a direct URL reference, and an
// optional ";"-delimited marker expression gating whether the dependency
// applies to a given environment.
package pep508

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	namePattern = regexp.MustCompile(`^[A-Za-z0-9](?:[A-Za-z0-9._-]*[A-Za-z0-9])?`)

	constraintPattern = regexp.MustCompile(`^(===|==|!=|<=|>=|~=|<|>)\s*([A-Za-z0-9._+!*-]+)$`)
)

// ParseError reports a dependency specifier that does not conform to the
// grammar. It aborts the whole filtering run; there is no recovery.
//
// Fields:
//   - Spec: The offending specifier string as supplied
//   - Reason: What failed to parse
type ParseError struct {
	Spec   string
	Reason string
}

// Error implements the error interface.
//
// Returns:
//   - string: A message naming the specifier and the parse failure
func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid requirement %q: %s", e.Spec, e.Reason)
}

// Constraint is a single version clause within a specifier.
//
// Fields:
//   - Op: The comparison operator (e.g., ">=", "==", "~=")
//   - Version: The version operand
type Constraint struct {
	Op      string
	Version string
}

// Requirement is one parsed dependency specifier.
//
// Fields:
//   - Name: The bare package name, qualifiers stripped
//   - Extras: Declared extras (empty when the specifier carries none)
//   - Constraints: Version clauses (retained, never used for filtering)
//   - URL: Direct reference target for "name @ url" specifiers
//   - Marker: The parsed environment marker (nil when absent)
//   - Raw: The original specifier string
type Requirement struct {
	Name        string
	Extras      []string
	Constraints []Constraint
	URL         string
	Marker      *Marker
	Raw         string
}

// ParseRequirement decomposes one raw specifier string into its parts.
//
// It performs the following operations:
//   - Splits off the marker expression at the first ";" outside quotes
//   - Extracts the leading package name
//   - Extracts the bracketed extras list, if any
//   - Parses either a direct URL reference ("@ url") or the comma-separated
//     version constraints (optionally parenthesized)
//   - Parses the marker expression when present
//
// Parameters:
//   - raw: One non-empty dependency specifier string
//
// Returns:
//   - *Requirement: The parsed specifier
//   - error: A *ParseError when the string does not conform to the grammar
func ParseRequirement(raw string) (*Requirement, error) {
	spec := strings.TrimSpace(raw)
	if spec == "" {
		return nil, &ParseError{Spec: raw, Reason: "empty specifier"}
	}

	body, markerText := splitMarker(spec)
	body = strings.TrimSpace(body)

	name := namePattern.FindString(body)
	if name == "" {
		return nil, &ParseError{Spec: raw, Reason: "missing or malformed package name"}
	}

	req := &Requirement{Name: name, Raw: raw}
	rest := strings.TrimSpace(body[len(name):])

	if strings.HasPrefix(rest, "[") {
		end := strings.IndexByte(rest, ']')
		if end < 0 {
			return nil, &ParseError{Spec: raw, Reason: "unbalanced extras bracket"}
		}
		extras, err := parseExtras(rest[1:end])
		if err != nil {
			return nil, &ParseError{Spec: raw, Reason: err.Error()}
		}
		req.Extras = extras
		rest = strings.TrimSpace(rest[end+1:])
	}

	if strings.HasPrefix(rest, "@") {
		url := strings.TrimSpace(rest[1:])
		if url == "" {
			return nil, &ParseError{Spec: raw, Reason: "missing URL after @"}
		}
		req.URL = url
	} else if rest != "" {
		constraints, err := parseConstraints(rest)
		if err != nil {
			return nil, &ParseError{Spec: raw, Reason: err.Error()}
		}
		req.Constraints = constraints
	}

	if markerText != "" {
		marker, err := ParseMarker(markerText)
		if err != nil {
			return nil, &ParseError{Spec: raw, Reason: fmt.Sprintf("bad marker: %v", err)}
		}
		req.Marker = marker
	}

	return req, nil
}

// splitMarker splits a specifier at the first ";" that is not inside a
// quoted string, returning the body and the marker text.
//
// Parameters:
//   - spec: The trimmed specifier string
//
// Returns:
//   - string: The specifier body before the marker delimiter
//   - string: The marker text (empty when no delimiter is present)
func splitMarker(spec string) (string, string) {
	var quote byte
	for i := 0; i < len(spec); i++ {
		ch := spec[i]
		switch {
		case quote != 0:
			if ch == quote {
				quote = 0
			}
		case ch == '\'' || ch == '"':
			quote = ch
		case ch == ';':
			return spec[:i], strings.TrimSpace(spec[i+1:])
		}
	}
	return spec, ""
}

// parseExtras parses the comma-separated contents of an extras bracket.
//
// Parameters:
//   - s: The text between "[" and "]"
//
// Returns:
//   - []string: The extras names in declaration order (nil when empty)
//   - error: When an extras name violates the name charset
func parseExtras(s string) ([]string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	var extras []string
	for _, part := range strings.Split(s, ",") {
		extra := strings.TrimSpace(part)
		if extra == "" || namePattern.FindString(extra) != extra {
			return nil, fmt.Errorf("malformed extra %q", part)
		}
		extras = append(extras, extra)
	}
	return extras, nil
}

// parseConstraints parses a comma-separated list of version clauses,
// optionally wrapped in one pair of parentheses.
//
// Parameters:
//   - s: The constraints text following the name and extras
//
// Returns:
//   - []Constraint: The parsed clauses in declaration order
//   - error: When a clause lacks a valid operator or version
func parseConstraints(s string) ([]Constraint, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "(") {
		if !strings.HasSuffix(s, ")") {
			return nil, fmt.Errorf("unbalanced parenthesis in constraints %q", s)
		}
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	if s == "" {
		return nil, nil
	}

	var constraints []Constraint
	for _, part := range strings.Split(s, ",") {
		clause := strings.TrimSpace(part)
		match := constraintPattern.FindStringSubmatch(clause)
		if match == nil {
			return nil, fmt.Errorf("malformed version constraint %q", clause)
		}
		constraints = append(constraints, Constraint{Op: match[1], Version: match[2]})
	}
	return constraints, nil
}
