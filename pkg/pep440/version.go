// Package pep440 implements parsing and ordering of Python package version
// strings. It understands the common PEP 440 shapes (epochs, release segments,
// pre/post/dev releases, local labels) well enough to order marker operands
// such as python_version correctly, where lexicographic comparison fails
// (e.g. "3.11" must sort before "3.12").
package pep440

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/mod/semver"
)

// Release-cycle ranks used when comparing versions that share a release
// segment: dev releases sort before pre-releases, pre-releases before the
// final release, and post-releases after it.
const (
	rankDev   = -3
	rankPre   = -2
	rankFinal = 0
	rankPost  = 1
)

var (
	versionPattern = regexp.MustCompile(`(?i)^v?(?:(?P<epoch>\d+)!)?(?P<release>\d+(?:\.\d+)*)(?:[._-]?(?P<prel>a|b|c|rc|alpha|beta|pre|preview)[._-]?(?P<pren>\d+)?)?(?:-(?P<postn1>\d+)|[._-]?(?P<postl>post|rev|r)[._-]?(?P<postn2>\d+)?)?(?:[._-]?(?P<devl>dev)[._-]?(?P<devn>\d+)?)?(?:\+(?P<local>[a-z0-9]+(?:[._-][a-z0-9]+)*))?$`)

	releaseOnlyPattern = regexp.MustCompile(`^\d+(?:\.\d+){0,2}$`)
)

// Version is a parsed version string.
//
// Fields:
//   - Epoch: The version epoch (0 unless the string carries an "N!" prefix)
//   - Release: The dotted numeric release segments
//   - Phase: The release-cycle rank (dev, pre, final, post)
//   - PreOrd: Orders pre-release letters (alpha < beta < rc); 0 otherwise
//   - PhaseNum: The numeric component of the pre/post/dev segment
//   - Local: The local version label after "+", if any
type Version struct {
	Epoch    int
	Release  []int
	Phase    int
	PreOrd   int
	PhaseNum int
	Local    string
}

// Parse parses a version string into a Version.
//
// It performs the following operations:
//   - Trims surrounding whitespace and an optional "v" prefix
//   - Matches the PEP 440 grammar via regex with named groups
//   - Extracts epoch, release segments, and pre/post/dev qualifiers
//
// Parameters:
//   - raw: The version string to parse (e.g., "3.11", "1!2.0rc1", "4.0.post1")
//
// Returns:
//   - Version: The parsed version
//   - bool: True when the string conforms to the grammar, false otherwise
func Parse(raw string) (Version, bool) {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" {
		return Version{}, false
	}

	match := versionPattern.FindStringSubmatch(cleaned)
	if match == nil {
		return Version{}, false
	}

	groups := make(map[string]string)
	for i, name := range versionPattern.SubexpNames() {
		if name != "" && i < len(match) {
			groups[name] = match[i]
		}
	}

	v := Version{Phase: rankFinal}

	if groups["epoch"] != "" {
		v.Epoch, _ = strconv.Atoi(groups["epoch"])
	}

	for _, part := range strings.Split(groups["release"], ".") {
		n, err := strconv.Atoi(part)
		if err != nil {
			return Version{}, false
		}
		v.Release = append(v.Release, n)
	}

	switch {
	case groups["devl"] != "":
		v.Phase = rankDev
		v.PhaseNum = atoiDefault(groups["devn"])
	case groups["prel"] != "":
		v.Phase = rankPre
		v.PreOrd = preLetterOrd(groups["prel"])
		v.PhaseNum = atoiDefault(groups["pren"])
	case groups["postn1"] != "" || groups["postl"] != "":
		v.Phase = rankPost
		if groups["postn1"] != "" {
			v.PhaseNum = atoiDefault(groups["postn1"])
		} else {
			v.PhaseNum = atoiDefault(groups["postn2"])
		}
	}

	v.Local = groups["local"]
	return v, true
}

// Compare orders two version strings and reports their relationship.
//
// It performs the following operations:
//   - Uses golang.org/x/mod/semver directly when both strings are plain
//     dotted releases (the overwhelmingly common marker case)
//   - Otherwise parses both sides fully and compares epoch, release
//     segments (zero-padded to equal length), then release-cycle rank
//
// Parameters:
//   - a: The first version string
//   - b: The second version string
//
// Returns:
//   - int: Negative if a < b, zero if equal, positive if a > b
//   - bool: False when either string fails to parse (result is meaningless)
func Compare(a, b string) (int, bool) {
	ta, tb := strings.TrimSpace(a), strings.TrimSpace(b)
	if releaseOnlyPattern.MatchString(ta) && releaseOnlyPattern.MatchString(tb) {
		return semver.Compare("v"+ta, "v"+tb), true
	}

	va, okA := Parse(a)
	vb, okB := Parse(b)
	if !okA || !okB {
		return 0, false
	}

	return compareParsed(va, vb), true
}

// compareParsed compares two parsed versions component by component.
//
// Parameters:
//   - a: The first parsed version
//   - b: The second parsed version
//
// Returns:
//   - int: Negative if a < b, zero if equal, positive if a > b
func compareParsed(a, b Version) int {
	if a.Epoch != b.Epoch {
		return a.Epoch - b.Epoch
	}

	length := len(a.Release)
	if len(b.Release) > length {
		length = len(b.Release)
	}
	for i := 0; i < length; i++ {
		av, bv := 0, 0
		if i < len(a.Release) {
			av = a.Release[i]
		}
		if i < len(b.Release) {
			bv = b.Release[i]
		}
		if av != bv {
			return av - bv
		}
	}

	if a.Phase != b.Phase {
		return a.Phase - b.Phase
	}
	if a.PreOrd != b.PreOrd {
		return a.PreOrd - b.PreOrd
	}
	if a.PhaseNum != b.PhaseNum {
		return a.PhaseNum - b.PhaseNum
	}

	return strings.Compare(a.Local, b.Local)
}

// Truncated returns the version cut to at most n release segments,
// rendered as a dotted string. Used by compatible-release ("~=") checks.
//
// Parameters:
//   - raw: The version string to truncate
//   - n: Maximum number of release segments to keep
//
// Returns:
//   - string: The truncated dotted release (e.g., "3.11.4" with n=2 -> "3.11")
//   - bool: False when the string fails to parse
func Truncated(raw string, n int) (string, bool) {
	v, ok := Parse(raw)
	if !ok || n <= 0 {
		return "", false
	}

	parts := v.Release
	if len(parts) > n {
		parts = parts[:n]
	}

	rendered := make([]string, len(parts))
	for i, p := range parts {
		rendered[i] = strconv.Itoa(p)
	}
	return strings.Join(rendered, "."), true
}

// preLetterOrd maps a pre-release spelling onto its cycle position.
//
// Parameters:
//   - letter: The pre-release spelling captured by the parser
//
// Returns:
//   - int: 0 for alpha, 1 for beta, 2 for release candidates
func preLetterOrd(letter string) int {
	switch strings.ToLower(letter) {
	case "a", "alpha":
		return 0
	case "b", "beta":
		return 1
	default:
		return 2
	}
}

// atoiDefault converts a numeric string to int, returning 0 for empty input.
//
// Parameters:
//   - s: Numeric string, possibly empty
//
// Returns:
//   - int: The parsed value, or 0 when s is empty or invalid
func atoiDefault(s string) int {
	if s == "" {
		return 0
	}
	n, _ := strconv.Atoi(s)
	return n
}
