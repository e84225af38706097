// Package metadata locates and reads installed-package metadata directories
// (.dist-info or .egg-info) and exposes their declared dependency specifiers.
// It understands the METADATA / PKG-INFO header block and, for egg-info
// layouts that predate Requires-Dist headers, the requires.txt sidecar.
package metadata

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ajxudir/pyreqs/pkg/verbose"
)

// Metadata marker files recognized inside a location, in preference order.
var markerFiles = []string{"METADATA", "PKG-INFO"}

var (
	// ErrLocationNotFound indicates the supplied metadata location does not exist.
	ErrLocationNotFound = errors.New("metadata location does not exist")

	// ErrMetadataMissing indicates the location exists but contains no
	// recognizable metadata files.
	ErrMetadataMissing = errors.New("no metadata files: unable to find METADATA or PKG-INFO")
)

// Distribution is the parsed metadata of one installed package.
//
// Fields:
//   - Name: The distribution name from the metadata headers
//   - Version: The distribution version from the metadata headers
//   - Requires: Declared dependency specifiers (Requires-Dist, or derived
//     from requires.txt for old egg-info layouts), in declaration order
//   - ProvidesExtras: Declared extras names (Provides-Extra headers)
//   - Location: The metadata directory this was read from
//   - SourceFile: The metadata file the headers came from
type Distribution struct {
	Name           string
	Version        string
	Requires       []string
	ProvidesExtras []string
	Location       string
	SourceFile     string
}

// Load reads the metadata directory at location and returns its parsed
// distribution metadata.
//
// It performs the following operations:
//   - Verifies the location exists (ErrLocationNotFound otherwise)
//   - Finds a METADATA or PKG-INFO file inside it (ErrMetadataMissing otherwise)
//   - Parses the header block for name, version, and dependency specifiers
//   - Falls back to a requires.txt sidecar when the headers declare no
//     Requires-Dist (the egg-info layout)
//
// Parameters:
//   - location: Path of an installed package's metadata directory
//
// Returns:
//   - *Distribution: The parsed metadata
//   - error: ErrLocationNotFound, ErrMetadataMissing, or a read failure
func Load(location string) (*Distribution, error) {
	info, err := os.Stat(location)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrLocationNotFound, location)
		}
		return nil, fmt.Errorf("failed to access %s: %w", location, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrLocationNotFound, location)
	}

	markerPath := ""
	for _, name := range markerFiles {
		candidate := filepath.Join(location, name)
		if stat, err := os.Stat(candidate); err == nil && !stat.IsDir() {
			markerPath = candidate
			break
		}
	}
	if markerPath == "" {
		return nil, fmt.Errorf("%w in %s", ErrMetadataMissing, location)
	}

	verbose.Infof("Reading metadata headers from %s", markerPath)

	file, err := os.Open(markerPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", markerPath, err)
	}
	defer func() { _ = file.Close() }()

	dist, err := parseHeaders(file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", markerPath, err)
	}
	dist.Location = location
	dist.SourceFile = markerPath

	if len(dist.Requires) == 0 {
		if err := loadRequiresTxt(dist); err != nil {
			return nil, err
		}
	}

	verbose.Debugf("Distribution %s %s declares %d specifiers", dist.Name, dist.Version, len(dist.Requires))
	return dist, nil
}

// loadRequiresTxt derives dependency specifiers from a requires.txt sidecar,
// when one exists next to the metadata file.
//
// Parameters:
//   - dist: The distribution to populate (Requires must be empty)
//
// Returns:
//   - error: When the sidecar exists but cannot be read
func loadRequiresTxt(dist *Distribution) error {
	path := filepath.Join(dist.Location, "requires.txt")
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	verbose.Infof("No Requires-Dist headers; deriving specifiers from %s", path)

	specs, err := parseRequiresTxt(file)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	dist.Requires = specs
	return nil
}
