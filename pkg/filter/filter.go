// Package filter applies the runtime-dependency filtering policy across a
// sequence of raw dependency specifiers: extras-qualified specifiers are
// dropped unconditionally, markerless specifiers are kept, and marker-gated
// specifiers are kept only when their marker evaluates true against the
// supplied environment.
package filter

import (
	"github.com/ajxudir/pyreqs/pkg/pep508"
	"github.com/ajxudir/pyreqs/pkg/verbose"
)

// Decision reasons reported per specifier.
const (
	// ReasonRequired marks a specifier with no extras and no marker.
	ReasonRequired = "required"
	// ReasonMarkerTrue marks a specifier whose marker evaluated true.
	ReasonMarkerTrue = "marker satisfied"
	// ReasonMarkerFalse marks a specifier whose marker evaluated false.
	ReasonMarkerFalse = "marker not satisfied"
	// ReasonExtras marks a specifier excluded for declaring extras.
	ReasonExtras = "extras bundle"
)

// Decision records how one specifier was classified.
//
// Fields:
//   - Spec: The raw specifier string
//   - Name: The bare package name
//   - Included: Whether the specifier passed the filter
//   - Reason: One of the Reason* constants
type Decision struct {
	Spec     string `json:"spec" yaml:"spec"`
	Name     string `json:"name" yaml:"name"`
	Included bool   `json:"included" yaml:"included"`
	Reason   string `json:"reason" yaml:"reason"`
}

// Runtime filters raw dependency specifiers down to the bare names that are
// unconditionally required in the given environment.
//
// It performs the following operations, per specifier in input order:
//   - Parses the specifier; a parse error aborts the whole run
//   - Excludes specifiers declaring extras, regardless of their marker
//   - Includes markerless specifiers
//   - Includes marker-gated specifiers only when the marker evaluates true
//
// Output preserves input order and is not deduplicated.
//
// Parameters:
//   - specs: Raw dependency specifier strings
//   - env: The marker environment to evaluate against
//
// Returns:
//   - []string: Bare names of included dependencies, in input order
//   - error: The *pep508.ParseError of the first malformed specifier
func Runtime(specs []string, env pep508.Environment) ([]string, error) {
	decisions, err := Classify(specs, env)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(decisions))
	for _, d := range decisions {
		if d.Included {
			names = append(names, d.Name)
		}
	}
	return names, nil
}

// Classify applies the filtering policy and reports a decision per
// specifier. Runtime is a projection of this.
//
// Parameters:
//   - specs: Raw dependency specifier strings
//   - env: The marker environment to evaluate against
//
// Returns:
//   - []Decision: One decision per input specifier, in input order
//   - error: The *pep508.ParseError of the first malformed specifier
func Classify(specs []string, env pep508.Environment) ([]Decision, error) {
	decisions := make([]Decision, 0, len(specs))

	for _, spec := range specs {
		req, err := pep508.ParseRequirement(spec)
		if err != nil {
			return nil, err
		}

		decision := Decision{Spec: req.Raw, Name: req.Name}
		switch {
		case len(req.Extras) > 0:
			decision.Reason = ReasonExtras
		case req.Marker == nil:
			decision.Included = true
			decision.Reason = ReasonRequired
		case req.Marker.Evaluate(env):
			decision.Included = true
			decision.Reason = ReasonMarkerTrue
		default:
			decision.Reason = ReasonMarkerFalse
		}

		verbose.Tracef("Specifier %q: included=%t (%s)", spec, decision.Included, decision.Reason)
		decisions = append(decisions, decision)
	}

	return decisions, nil
}
