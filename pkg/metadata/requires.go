package metadata

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// parseRequiresTxt converts an egg-info requires.txt into dependency
// specifier strings.
//
// requires.txt groups requirements into INI-style sections. Section names
// encode the extra and/or marker condition the group is gated on:
//
//	[]            plain runtime requirements (the unnamed leading section)
//	[x]           requirements of extra "x"
//	[:cond]       requirements gated on marker condition cond
//	[x:cond]      requirements of extra "x", additionally gated on cond
//
// Each line becomes a specifier with the section's gate appended as a
// ";"-delimited marker, mirroring how importlib.metadata reports requires
// for egg-info distributions.
//
// Parameters:
//   - r: The requires.txt contents
//
// Returns:
//   - []string: Derived specifier strings in declaration order
//   - error: When reading fails or a section header is unterminated
func parseRequiresTxt(r io.Reader) ([]string, error) {
	var specs []string
	section := ""

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if strings.HasPrefix(line, "[") {
			if !strings.HasSuffix(line, "]") {
				return nil, fmt.Errorf("unterminated section header %q", line)
			}
			section = strings.TrimSpace(line[1 : len(line)-1])
			continue
		}

		specs = append(specs, applySectionGate(line, section))
	}

	return specs, scanner.Err()
}

// applySectionGate appends the marker derived from a requires.txt section
// name to one requirement line.
//
// Parameters:
//   - spec: The requirement line as written
//   - section: The enclosing section name ("" for the leading section)
//
// Returns:
//   - string: The specifier with the section's marker appended, if any
func applySectionGate(spec, section string) string {
	if section == "" {
		return spec
	}

	extra, condition, _ := strings.Cut(section, ":")
	extra = strings.TrimSpace(extra)
	condition = strings.TrimSpace(condition)

	switch {
	case extra != "" && condition != "":
		return fmt.Sprintf("%s; (%s) and extra == %q", spec, condition, extra)
	case extra != "":
		return fmt.Sprintf("%s; extra == %q", spec, extra)
	case condition != "":
		return fmt.Sprintf("%s; %s", spec, condition)
	default:
		return spec
	}
}
