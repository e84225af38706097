package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajxudir/pyreqs/pkg/pep508"
)

// TestRuntimeBasic tests the behavior of Runtime on simple specifiers.
//
// It verifies:
//   - Bare names pass through unchanged
//   - Version constraints are stripped
//   - Empty input yields empty output
func TestRuntimeBasic(t *testing.T) {
	names, err := Runtime([]string{"six"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"six"}, names)

	names, err = Runtime([]string{"six>=6.9"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"six"}, names)

	names, err = Runtime([]string{}, nil)
	require.NoError(t, err)
	assert.Empty(t, names)
}

// TestRuntimeExcludesExtras tests that extras-qualified specifiers are
// excluded unconditionally.
//
// It verifies:
//   - Specifiers with extras markers are dropped regardless of marker truth
//   - Lists that are entirely extras filter to nothing
func TestRuntimeExcludesExtras(t *testing.T) {
	names, err := Runtime([]string{"MarkupSafe>=2.0", `Babel>=2.7; extra == "i18n"`}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"MarkupSafe"}, names)

	names, err = Runtime([]string{`Babel>=2.7; extra == "i18n"`, `pytest; extra == "testing"`}, nil)
	require.NoError(t, err)
	assert.Empty(t, names)

	names, err = Runtime([]string{
		"MarkupSafe>=0.9.2",
		`Babel; extra == "babel"`,
		`lingua; extra == "lingua"`,
		`pytest; extra == "testing"`,
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"MarkupSafe"}, names)

	// Bracketed extras are an extras bundle too, even with a true marker.
	env := pep508.Environment{"python_version": "3.11"}
	names, err = Runtime([]string{`mypkg[feature]; python_version < '3.12'`}, env)
	require.NoError(t, err)
	assert.Empty(t, names)
}

// TestRuntimeMarkers tests marker-gated inclusion.
//
// It verifies:
//   - Markers that evaluate true include the bare name
//   - Markers that evaluate false exclude the specifier
func TestRuntimeMarkers(t *testing.T) {
	env := pep508.Environment{"python_version": "3.11"}

	names, err := Runtime([]string{"tomli>=1.2.2; python_version < '3.11'", "pluggy>=1.0.0"}, env)
	require.NoError(t, err)
	assert.Equal(t, []string{"pluggy"}, names)

	names, err = Runtime([]string{"pluggy", "tomli>=1.2.2; python_version < '3.12'"}, env)
	require.NoError(t, err)
	assert.Equal(t, []string{"pluggy", "tomli"}, names)
}

// TestRuntimeOrderPreserved tests that output order matches input order.
//
// It verifies:
//   - Included names appear in input order with excluded items interleaved
//   - Duplicates are not collapsed
func TestRuntimeOrderPreserved(t *testing.T) {
	env := pep508.Environment{"python_version": "3.11"}
	specs := []string{
		"zebra",
		`omega; extra == "x"`,
		"alpha>=1.0",
		"beta; python_version < '3.0'",
		"zebra",
		"gamma; python_version >= '3.10'",
	}

	names, err := Runtime(specs, env)
	require.NoError(t, err)
	assert.Equal(t, []string{"zebra", "alpha", "zebra", "gamma"}, names)
}

// TestRuntimeHatchling tests the end-to-end hatchling scenario.
//
// It verifies:
//   - A realistic requirement list filters to the expected runtime set
func TestRuntimeHatchling(t *testing.T) {
	env := pep508.Environment{"python_version": "3.11"}
	specs := []string{
		`pytest; extra == "testing"`,
		"editables>=0.3",
		"packaging>=21.3",
		"pathspec>=0.10.1",
		"pluggy>=1.0.0",
		"tomli>=1.2.2; python_version < '3.12'",
		"trove-classifiers",
	}

	names, err := Runtime(specs, env)
	require.NoError(t, err)
	assert.Equal(t, []string{"editables", "packaging", "pathspec", "pluggy", "tomli", "trove-classifiers"}, names)
}

// TestRuntimeYtDlp tests a large mixed requirement list with implementation
// markers, ambient defaults only.
//
// It verifies:
//   - Implementation-gated alternatives resolve against the environment
//   - Extras-qualified build/dev/test tooling is dropped wholesale
func TestRuntimeYtDlp(t *testing.T) {
	env := pep508.DefaultEnvironment().Merge(pep508.Environment{"implementation_name": "cpython"})
	specs := []string{
		"brotli; implementation_name == 'cpython'",
		"brotlicffi; implementation_name != 'cpython'",
		"certifi",
		"mutagen",
		"pycryptodomex",
		"requests<3,>=2.32.2",
		"urllib3<3,>=1.26.17",
		"websockets>=12.0",
		"build; extra == 'build'",
		"hatchling; extra == 'build'",
		"pip; extra == 'build'",
		"setuptools>=71.0.2; extra == 'build'",
		"wheel; extra == 'build'",
		"curl-cffi!=0.6.*,<0.8,>=0.5.10; (os_name != 'nt' and implementation_name == 'cpython') and extra == 'curl-cffi'",
		"curl-cffi==0.5.10; (os_name == 'nt' and implementation_name == 'cpython') and extra == 'curl-cffi'",
		"pre-commit; extra == 'dev'",
		"yt-dlp[static-analysis]; extra == 'dev'",
		"yt-dlp[test]; extra == 'dev'",
		"py2exe>=0.12; extra == 'py2exe'",
		"pyinstaller>=6.7.0; extra == 'pyinstaller'",
		"cffi; extra == 'secretstorage'",
		"secretstorage; extra == 'secretstorage'",
		"autopep8~=2.0; extra == 'static-analysis'",
		"ruff~=0.5.0; extra == 'static-analysis'",
		"pytest~=8.1; extra == 'test'",
	}

	names, err := Runtime(specs, env)
	require.NoError(t, err)
	assert.Equal(t, []string{"brotli", "certifi", "mutagen", "pycryptodomex", "requests", "urllib3", "websockets"}, names)
}

// TestRuntimeParseErrorAborts tests fail-fast behavior on malformed input.
//
// It verifies:
//   - A malformed specifier aborts the whole run with no partial results
//   - The error is a *pep508.ParseError
func TestRuntimeParseErrorAborts(t *testing.T) {
	names, err := Runtime([]string{"good-one", ">=broken", "never-reached"}, nil)
	assert.Nil(t, names)
	require.Error(t, err)

	var parseErr *pep508.ParseError
	assert.ErrorAs(t, err, &parseErr)
}

// TestClassify tests the per-specifier decision reporting.
//
// It verifies:
//   - Each specifier receives the matching reason constant
//   - Decision order follows input order
func TestClassify(t *testing.T) {
	env := pep508.Environment{"python_version": "3.11"}
	decisions, err := Classify([]string{
		"packaging>=21.3",
		"tomli; python_version < '3.12'",
		"tomli; python_version < '3.11'",
		`pytest; extra == "testing"`,
	}, env)
	require.NoError(t, err)
	require.Len(t, decisions, 4)

	assert.Equal(t, Decision{Spec: "packaging>=21.3", Name: "packaging", Included: true, Reason: ReasonRequired}, decisions[0])
	assert.Equal(t, ReasonMarkerTrue, decisions[1].Reason)
	assert.True(t, decisions[1].Included)
	assert.Equal(t, ReasonMarkerFalse, decisions[2].Reason)
	assert.False(t, decisions[2].Included)
	assert.Equal(t, ReasonExtras, decisions[3].Reason)
	assert.False(t, decisions[3].Included)
}
