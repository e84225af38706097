// Package config handles configuration loading for pyreqs. It supports an
// optional YAML config file carrying default marker-environment values and
// output preferences, so packaging pipelines can pin the target environment
// once instead of repeating --set flags on every invocation.
package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ajxudir/pyreqs/pkg/verbose"
)

// DefaultFileName is the config file looked up in the working directory
// when no explicit path is given.
const DefaultFileName = ".pyreqs.yml"

// Config is the loaded pyreqs configuration.
//
// Fields:
//   - Environment: Default marker-variable values applied beneath any
//     --env file and --set overrides
//   - Output: Default output format ("raw", "json", or "yaml")
//   - Python: Python interpreter probed for marker values when set
type Config struct {
	Environment map[string]string `yaml:"environment"`
	Output      string            `yaml:"output"`
	Python      string            `yaml:"python"`
}

// Load loads configuration from the specified path or defaults.
//
// If configPath is provided, that file must exist and parse.
// Otherwise .pyreqs.yml in the working directory is used when present,
// and the built-in empty configuration when not.
//
// Parameters:
//   - configPath: Path to the config file, or empty to use defaults
//   - workDir: Working directory searched for the default config file
//
// Returns:
//   - *Config: The loaded configuration (never nil on success)
//   - error: When an explicit file is missing or any file fails to parse
func Load(configPath, workDir string) (*Config, error) {
	if configPath != "" {
		verbose.Infof("Loading config from: %s", configPath)
		cfg, err := loadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		return cfg, nil
	}

	if workDir == "" {
		workDir = "."
	}
	local := filepath.Join(workDir, DefaultFileName)
	if _, err := os.Stat(local); err == nil {
		verbose.Infof("Found local config: %s", local)
		cfg, err := loadFile(local)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		return cfg, nil
	}

	verbose.Debugf("No config file; using built-in defaults")
	return &Config{}, nil
}

// loadFile reads and parses one YAML config file.
//
// Unknown keys are rejected so typos in a pipeline config fail loudly
// instead of being silently ignored.
//
// Parameters:
//   - path: Path of the YAML file
//
// Returns:
//   - *Config: The parsed configuration
//   - error: When reading or strict decoding fails
func loadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration values.
//
// Returns:
//   - error: When the output format is not one of raw, json, yaml
func (c *Config) Validate() error {
	switch c.Output {
	case "", "raw", "json", "yaml":
		return nil
	default:
		return fmt.Errorf("invalid output format %q: expected raw, json, or yaml", c.Output)
	}
}
