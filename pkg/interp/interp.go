// Package interp probes a Python interpreter for its marker environment.
// It runs a short inline script that reports the PEP 508 environment
// variables of the interpreter as JSON, giving marker evaluation the exact
// values a pip install run under that interpreter would see.
package interp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"time"

	"github.com/ajxudir/pyreqs/pkg/pep508"
	"github.com/ajxudir/pyreqs/pkg/verbose"
)

// DefaultTimeout bounds a single interpreter invocation.
const DefaultTimeout = 10 * time.Second

// probeScript mirrors the environment reported by Python's own packaging
// machinery, including the releaselevel suffix on implementation_version.
const probeScript = `import json, os, platform, sys

def full_version(info):
    v = "{0.major}.{0.minor}.{0.micro}".format(info)
    if info.releaselevel != "final":
        v += info.releaselevel[0] + str(info.serial)
    return v

print(json.dumps({
    "implementation_name": sys.implementation.name,
    "implementation_version": full_version(sys.implementation.version),
    "os_name": os.name,
    "platform_machine": platform.machine(),
    "platform_python_implementation": platform.python_implementation(),
    "platform_release": platform.release(),
    "platform_system": platform.system(),
    "platform_version": platform.version(),
    "python_full_version": platform.python_version(),
    "python_version": ".".join(platform.python_version_tuple()[:2]),
    "sys_platform": sys.platform,
}))`

// RunFunc is the function signature for interpreter invocation.
//
// Parameters:
//   - ctx: Context for cancellation and timeout control
//   - interpreter: Path or name of the Python executable
//   - script: Inline script passed via -c
//
// Returns:
//   - []byte: Stdout produced by the script
//   - error: Any error that occurred during execution
type RunFunc func(ctx context.Context, interpreter, script string) ([]byte, error)

// Run is the default interpreter invocation function.
//
// This variable holds the implementation used for interpreter probing. It can
// be replaced with a mock implementation for testing.
var Run RunFunc = runScript

// Probe asks the given Python interpreter for its marker environment.
//
// Parameters:
//   - interpreter: Path or name of the Python executable (resolved via PATH)
//
// Returns:
//   - pep508.Environment: The interpreter's marker variables
//   - error: Lookup, execution, or decode error
func Probe(interpreter string) (pep508.Environment, error) {
	ctx, cancel := context.WithTimeout(context.Background(), DefaultTimeout)
	defer cancel()
	return ProbeContext(ctx, interpreter)
}

// ProbeContext asks the given Python interpreter for its marker environment,
// honoring the supplied context for cancellation.
//
// Parameters:
//   - ctx: Context for cancellation and timeout control
//   - interpreter: Path or name of the Python executable (resolved via PATH)
//
// Returns:
//   - pep508.Environment: The interpreter's marker variables
//   - error: Lookup, execution, or decode error
func ProbeContext(ctx context.Context, interpreter string) (pep508.Environment, error) {
	if interpreter == "" {
		return nil, fmt.Errorf("no interpreter given")
	}

	verbose.Debugf("Probing interpreter %s", interpreter)
	output, err := Run(ctx, interpreter, probeScript)
	if err != nil {
		return nil, fmt.Errorf("failed to probe interpreter %q: %w", interpreter, err)
	}

	var env pep508.Environment
	if err := json.Unmarshal(bytes.TrimSpace(output), &env); err != nil {
		return nil, fmt.Errorf("failed to probe interpreter %q: bad report: %w", interpreter, err)
	}

	verbose.Tracef("Interpreter %s reported %d variables", interpreter, len(env))
	return env, nil
}

// runScript executes an inline script with the interpreter.
//
// Parameters:
//   - ctx: Context for cancellation and timeout control
//   - interpreter: Path or name of the Python executable
//   - script: Inline script passed via -c
//
// Returns:
//   - []byte: Stdout produced by the script
//   - error: Lookup or execution error, with stderr appended when available
func runScript(ctx context.Context, interpreter, script string) ([]byte, error) {
	path, err := exec.LookPath(interpreter)
	if err != nil {
		return nil, err
	}

	cmd := exec.CommandContext(ctx, path, "-c", script)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := bytes.TrimSpace(stderr.Bytes()); len(msg) > 0 {
			return nil, fmt.Errorf("%w: %s", err, msg)
		}
		return nil, err
	}

	return stdout.Bytes(), nil
}
