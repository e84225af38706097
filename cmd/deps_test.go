package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajxudir/pyreqs/pkg/errors"
	"github.com/ajxudir/pyreqs/pkg/output"
)

// TestRunDepsRaw verifies the deps command in its raw output mode.
//
// It verifies:
//   - Runtime dependencies print one bare name per line
//   - Extras-gated and false-marker specifiers are excluded
//   - Declaration order is preserved
func TestRunDepsRaw(t *testing.T) {
	defer resetDepsFlags(t)()
	dir := writeDistInfo(t, hatchlingMetadata)

	depsSetFlags = []string{"python_version=3.11"}

	var err error
	out := captureStdout(t, func() {
		err = runDeps(depsCmd, []string{dir})
	})
	require.NoError(t, err)

	expected := []string{"editables", "packaging", "pathspec", "pluggy", "tomli", "trove-classifiers"}
	assert.Equal(t, expected, strings.Split(strings.TrimRight(out, "\n"), "\n"))
}

// TestRunDepsMarkerFiltering verifies marker evaluation against the
// supplied environment overrides.
//
// It verifies:
//   - A python_version below the tomli cutoff keeps the dependency
//   - A python_version at the cutoff drops it
func TestRunDepsMarkerFiltering(t *testing.T) {
	dir := writeDistInfo(t, hatchlingMetadata)

	tests := []struct {
		name          string
		pythonVersion string
		wantTomli     bool
	}{
		{name: "below cutoff", pythonVersion: "3.9", wantTomli: true},
		{name: "at cutoff", pythonVersion: "3.12", wantTomli: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer resetDepsFlags(t)()
			depsSetFlags = []string{"python_version=" + tt.pythonVersion}

			var err error
			out := captureStdout(t, func() {
				err = runDeps(depsCmd, []string{dir})
			})
			require.NoError(t, err)
			assert.Equal(t, tt.wantTomli, strings.Contains(out, "tomli"))
		})
	}
}

// TestRunDepsJSON verifies the structured JSON output mode.
//
// It verifies:
//   - The summary reflects the parsed distribution
//   - Decisions carry a reason for every specifier
func TestRunDepsJSON(t *testing.T) {
	defer resetDepsFlags(t)()
	dir := writeDistInfo(t, hatchlingMetadata)

	depsSetFlags = []string{"python_version=3.11"}
	depsOutputFlag = "json"

	var err error
	out := captureStdout(t, func() {
		err = runDeps(depsCmd, []string{dir})
	})
	require.NoError(t, err)

	var result output.DepsResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))

	assert.Equal(t, "hatchling", result.Summary.Distribution)
	assert.Equal(t, "1.11.1", result.Summary.Version)
	assert.Equal(t, 7, result.Summary.TotalSpecifiers)
	assert.Equal(t, 6, result.Summary.Included)
	assert.Equal(t, 1, result.Summary.Excluded)
	assert.Len(t, result.Decisions, 7)
	for _, decision := range result.Decisions {
		assert.NotEmpty(t, decision.Reason)
	}
}

// TestRunDepsExplain verifies the explain table output.
//
// It verifies:
//   - The table carries the expected headers
//   - Excluded specifiers appear with their status
func TestRunDepsExplain(t *testing.T) {
	defer resetDepsFlags(t)()
	dir := writeDistInfo(t, hatchlingMetadata)

	depsSetFlags = []string{"python_version=3.11"}
	depsExplainFlag = true

	var err error
	out := captureStdout(t, func() {
		err = runDeps(depsCmd, []string{dir})
	})
	require.NoError(t, err)

	assert.Contains(t, out, "SPECIFIER")
	assert.Contains(t, out, "STATUS")
	assert.Contains(t, out, "excluded")
	assert.Contains(t, out, "extras bundle")
}

// TestRunDepsEnvFile verifies environment loading from a YAML file.
//
// It verifies:
//   - Values from the file feed marker evaluation
//   - --set overrides win over the file
func TestRunDepsEnvFile(t *testing.T) {
	defer resetDepsFlags(t)()
	dir := writeDistInfo(t, hatchlingMetadata)

	envPath := filepath.Join(t.TempDir(), "env.yml")
	require.NoError(t, os.WriteFile(envPath, []byte("python_version: \"3.12\"\n"), 0644))

	depsEnvFileFlag = envPath
	depsSetFlags = []string{"python_version=3.9"}

	var err error
	out := captureStdout(t, func() {
		err = runDeps(depsCmd, []string{dir})
	})
	require.NoError(t, err)
	assert.Contains(t, out, "tomli")
}

// TestRunDepsConfigFile verifies config-driven defaults.
//
// It verifies:
//   - The environment map from the config feeds marker evaluation
//   - The configured output format applies when no flag is set
func TestRunDepsConfigFile(t *testing.T) {
	defer resetDepsFlags(t)()
	dir := writeDistInfo(t, hatchlingMetadata)

	cfgPath := filepath.Join(t.TempDir(), "pyreqs.yml")
	cfgBody := "environment:\n  python_version: \"3.11\"\noutput: json\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfgBody), 0644))

	depsConfigFlag = cfgPath

	var err error
	out := captureStdout(t, func() {
		err = runDeps(depsCmd, []string{dir})
	})
	require.NoError(t, err)

	var result output.DepsResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Contains(t, result.Dependencies, "tomli")
}

// TestRunDepsLocationNotFound verifies the missing-location usage error.
//
// It verifies:
//   - A nonexistent path yields a usage error exit code
func TestRunDepsLocationNotFound(t *testing.T) {
	defer resetDepsFlags(t)()

	var err error
	captureStdout(t, func() {
		err = runDeps(depsCmd, []string{filepath.Join(t.TempDir(), "missing")})
	})
	require.Error(t, err)
	assert.Equal(t, errors.ExitUsageError, errors.GetExitCode(err))
}

// TestRunDepsMetadataMissing verifies the empty-directory usage error.
//
// It verifies:
//   - A directory without METADATA or PKG-INFO yields a usage error
func TestRunDepsMetadataMissing(t *testing.T) {
	defer resetDepsFlags(t)()

	var err error
	captureStdout(t, func() {
		err = runDeps(depsCmd, []string{t.TempDir()})
	})
	require.Error(t, err)
	assert.Equal(t, errors.ExitUsageError, errors.GetExitCode(err))
}

// TestRunDepsParseError verifies that a malformed specifier aborts the run.
//
// It verifies:
//   - No partial dependency list is printed
//   - The error maps to the failure exit code
func TestRunDepsParseError(t *testing.T) {
	defer resetDepsFlags(t)()
	dir := writeDistInfo(t, `Metadata-Version: 2.1
Name: broken
Version: 0.1
Requires-Dist: good-dep
Requires-Dist: ???not-a-name
`)

	var err error
	out := captureStdout(t, func() {
		err = runDeps(depsCmd, []string{dir})
	})
	require.Error(t, err)
	assert.Equal(t, errors.ExitFailure, errors.GetExitCode(err))
	assert.NotContains(t, out, "good-dep")
}

// TestRunDepsInvalidFlags verifies flag validation errors.
//
// It verifies:
//   - An unknown output format is a usage error
//   - A malformed --set assignment is a usage error
func TestRunDepsInvalidFlags(t *testing.T) {
	dir := writeDistInfo(t, hatchlingMetadata)

	t.Run("bad output format", func(t *testing.T) {
		defer resetDepsFlags(t)()
		depsOutputFlag = "xml"
		err := runDeps(depsCmd, []string{dir})
		require.Error(t, err)
		assert.Equal(t, errors.ExitUsageError, errors.GetExitCode(err))
	})

	t.Run("bad set assignment", func(t *testing.T) {
		defer resetDepsFlags(t)()
		depsSetFlags = []string{"python_version"}
		err := runDeps(depsCmd, []string{dir})
		require.Error(t, err)
		assert.Equal(t, errors.ExitUsageError, errors.GetExitCode(err))
	})
}

// TestRunDepsEggInfo verifies requires.txt fallback parsing.
//
// It verifies:
//   - Section gates translate into markers
//   - Extra sections are excluded from the runtime set
func TestRunDepsEggInfo(t *testing.T) {
	defer resetDepsFlags(t)()

	dir := t.TempDir()
	pkgInfo := "Metadata-Version: 1.2\nName: legacy\nVersion: 0.9\n"
	requires := "requests\n\n[:python_version < \"3.12\"]\ntomli\n\n[dev]\npytest\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "PKG-INFO"), []byte(pkgInfo), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "requires.txt"), []byte(requires), 0644))

	depsSetFlags = []string{"python_version=3.9"}

	var err error
	out := captureStdout(t, func() {
		err = runDeps(depsCmd, []string{dir})
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Equal(t, []string{"requests", "tomli"}, lines)
}
