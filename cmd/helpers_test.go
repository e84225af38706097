package cmd

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// captureStdout runs fn while capturing everything written to os.Stdout.
//
// Parameters:
//   - t: Test context
//   - fn: Function to run while capturing
//
// Returns:
//   - string: The captured output
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()

	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w
	defer func() { os.Stdout = old }()

	fn()

	require.NoError(t, w.Close())
	data, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(data)
}

// writeDistInfo creates a metadata directory holding the given METADATA
// contents.
//
// Parameters:
//   - t: Test context
//   - metadata: The METADATA file contents
//
// Returns:
//   - string: Path of the created directory
func writeDistInfo(t *testing.T, metadata string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "METADATA"), []byte(metadata), 0644))
	return dir
}

// resetDepsFlags restores the deps command's flag variables to their
// defaults and returns a cleanup function re-applying the previous values.
//
// Parameters:
//   - t: Test context
//
// Returns:
//   - func(): Restores the prior flag values
func resetDepsFlags(t *testing.T) func() {
	t.Helper()

	oldEnvFile := depsEnvFileFlag
	oldSets := depsSetFlags
	oldPython := depsPythonFlag
	oldConfig := depsConfigFlag
	oldOutput := depsOutputFlag
	oldExplain := depsExplainFlag

	depsEnvFileFlag = ""
	depsSetFlags = nil
	depsPythonFlag = ""
	depsConfigFlag = ""
	depsOutputFlag = ""
	depsExplainFlag = false

	return func() {
		depsEnvFileFlag = oldEnvFile
		depsSetFlags = oldSets
		depsPythonFlag = oldPython
		depsConfigFlag = oldConfig
		depsOutputFlag = oldOutput
		depsExplainFlag = oldExplain
	}
}

const hatchlingMetadata = `Metadata-Version: 2.1
Name: hatchling
Version: 1.11.1
Requires-Dist: editables>=0.3
Requires-Dist: packaging>=21.3
Requires-Dist: pathspec>=0.10.1
Requires-Dist: pluggy>=1.0.0
Requires-Dist: tomli>=1.2.2; python_version < '3.12'
Requires-Dist: trove-classifiers
Provides-Extra: testing
Requires-Dist: pytest; extra == "testing"
`
