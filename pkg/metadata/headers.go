package metadata

import (
	"bufio"
	"io"
	"strings"
)

// parseHeaders reads the email-style header block at the top of a METADATA
// or PKG-INFO file.
//
// It performs the following operations:
//   - Scans line by line until the first blank line (the description body
//     that follows is ignored)
//   - Splits each line at the first ": " into key and value
//   - Collects Name, Version, repeated Requires-Dist, and repeated
//     Provides-Extra entries
//
// Parameters:
//   - r: The metadata file contents
//
// Returns:
//   - *Distribution: Distribution with header-derived fields populated
//   - error: When reading fails
func parseHeaders(r io.Reader) (*Distribution, error) {
	dist := &Distribution{}
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			break
		}

		key, value, found := strings.Cut(line, ": ")
		if !found {
			// Folded continuation lines and malformed headers carry nothing
			// this tool consumes.
			continue
		}
		value = strings.TrimSpace(value)

		switch key {
		case "Name":
			dist.Name = value
		case "Version":
			dist.Version = value
		case "Requires-Dist":
			if value != "" {
				dist.Requires = append(dist.Requires, value)
			}
		case "Provides-Extra":
			if value != "" {
				dist.ProvidesExtras = append(dist.ProvidesExtras, value)
			}
		}
	}

	return dist, scanner.Err()
}
