package cmd

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ajxudir/pyreqs/pkg/config"
	"github.com/ajxudir/pyreqs/pkg/errors"
	"github.com/ajxudir/pyreqs/pkg/interp"
	"github.com/ajxudir/pyreqs/pkg/pep508"
	"github.com/ajxudir/pyreqs/pkg/verbose"
)

// resolveEnvironment builds the marker environment for a command invocation.
//
// Resolution order, later sources winning:
//   - Ambient defaults derivable from the running system
//   - A probed Python interpreter (--python or the config's python key)
//   - The config file's environment block
//   - A --env YAML mapping file
//   - Individual --set key=value overrides
//
// Parameters:
//   - cfg: The loaded configuration
//   - interpreter: Python executable to probe, or empty
//   - envFile: Path of a YAML environment mapping, or empty
//   - sets: Raw --set assignments
//
// Returns:
//   - pep508.Environment: The merged environment
//   - error: A usage-coded error when a source is malformed
func resolveEnvironment(cfg *config.Config, interpreter, envFile string, sets []string) (pep508.Environment, error) {
	overlays := make([]pep508.Environment, 0, 4)

	if interpreter == "" {
		interpreter = cfg.Python
	}
	if interpreter != "" {
		probed, err := interp.Probe(interpreter)
		if err != nil {
			return nil, errors.NewExitError(errors.ExitUsageError, err)
		}
		overlays = append(overlays, probed)
	}

	if len(cfg.Environment) > 0 {
		overlays = append(overlays, pep508.Environment(cfg.Environment))
	}

	if envFile != "" {
		fileEnv, err := loadEnvironmentFile(envFile)
		if err != nil {
			return nil, errors.NewExitError(errors.ExitUsageError, err)
		}
		overlays = append(overlays, fileEnv)
	}

	if len(sets) > 0 {
		setEnv := make(pep508.Environment, len(sets))
		for _, assignment := range sets {
			key, value, err := pep508.ParseAssignment(assignment)
			if err != nil {
				return nil, errors.NewExitError(errors.ExitUsageError, err)
			}
			setEnv[key] = value
		}
		overlays = append(overlays, setEnv)
	}

	merged := pep508.DefaultEnvironment().Merge(overlays...)
	verbose.Debugf("Resolved marker environment with %d variables", len(merged))
	return merged, nil
}

// loadEnvironmentFile reads a YAML file mapping marker variables to values.
//
// Parameters:
//   - path: Path of the YAML mapping file
//
// Returns:
//   - pep508.Environment: The parsed mapping
//   - error: When reading or decoding fails
func loadEnvironmentFile(path string) (pep508.Environment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read environment file: %w", err)
	}

	env := pep508.Environment{}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	if err := decoder.Decode(&env); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return env, nil
}
