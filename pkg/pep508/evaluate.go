package pep508

import (
	"strings"

	"github.com/ajxudir/pyreqs/pkg/pep440"
)

// compareOperands orders two resolved comparison operands.
//
// It performs the following operations:
//   - Determines which marker variable the comparison refers to (either side
//     may be the variable)
//   - Uses version-aware ordering when that variable is version-valued and
//     both operands parse as versions
//   - Falls back to lexicographic string comparison otherwise
//
// Parameters:
//   - lhsVal: Left operand as written (variable or literal)
//   - rhsVal: Right operand as written
//   - lhs: Left operand resolved against the environment
//   - rhs: Right operand resolved against the environment
//
// Returns:
//   - int: Negative if lhs < rhs, zero if equal, positive if lhs > rhs
func compareOperands(lhsVal, rhsVal markerValue, lhs, rhs string) int {
	if isVersionComparison(lhsVal, rhsVal) {
		if cmp, ok := pep440.Compare(lhs, rhs); ok {
			return cmp
		}
	}
	return strings.Compare(lhs, rhs)
}

// isVersionComparison reports whether a comparison involves a version-valued
// marker variable such as python_version.
//
// Parameters:
//   - lhsVal: Left operand as written
//   - rhsVal: Right operand as written
//
// Returns:
//   - bool: True when either side is a version-valued variable
func isVersionComparison(lhsVal, rhsVal markerValue) bool {
	if lhsVal.variable && versionVariables[lhsVal.text] {
		return true
	}
	if rhsVal.variable && versionVariables[rhsVal.text] {
		return true
	}
	return false
}

// compatibleMatch implements the compatible-release operator ("~=").
//
// `v ~= X.Y` holds when v >= X.Y and v shares the X prefix, i.e. the spec
// truncated by one release segment. Operands that do not parse as versions
// degrade to equality.
//
// Parameters:
//   - value: The resolved left operand (the environment value)
//   - spec: The resolved right operand (the specifier version)
//
// Returns:
//   - bool: True when value is a compatible release of spec
func compatibleMatch(value, spec string) bool {
	specVersion, ok := pep440.Parse(spec)
	if !ok || len(specVersion.Release) < 2 {
		return value == spec
	}

	cmp, ok := pep440.Compare(value, spec)
	if !ok || cmp < 0 {
		return false
	}

	prefixLen := len(specVersion.Release) - 1
	valuePrefix, okValue := pep440.Truncated(value, prefixLen)
	specPrefix, okSpec := pep440.Truncated(spec, prefixLen)
	return okValue && okSpec && valuePrefix == specPrefix
}
