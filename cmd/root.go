// Package cmd implements the command-line interface for pyreqs.
// It provides commands for extracting runtime dependencies from installed
// Python package metadata and inspecting the marker environment they are
// evaluated against.
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ajxudir/pyreqs/pkg/errors"
	"github.com/ajxudir/pyreqs/pkg/verbose"
)

var exitFunc = os.Exit
var verboseFlag bool

var rootCmd = &cobra.Command{
	Use:   "pyreqs",
	Short: "Runtime dependency extractor for installed Python packages",
	Long: `Read an installed package's .dist-info or .egg-info metadata and print
the bare names of its runtime dependencies, one per line. Extras-qualified
specifiers are dropped and environment markers are evaluated against the
target environment, so only dependencies actually required there are reported.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verboseFlag {
			verbose.Enable()
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

// Execute runs the root command and exits with appropriate code:
//   - 0: Success (a possibly empty dependency list was produced)
//   - 2: Fatal processing error (e.g. unparseable specifier)
//   - 3: Usage error (bad metadata location, missing metadata, bad flag value)
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		code := errors.GetExitCode(err)
		errors.PrintErrorWithHints(os.Stderr, err)
		verbose.Infof("Exit code %d: %v", code, err)
		exitFunc(code)
	}
}

// ExecuteTest runs the root command for testing (returns error instead of
// exiting).
//
// Unlike Execute(), this function returns the error directly without calling
// os.Exit, making it suitable for use in test suites.
//
// Returns:
//   - error: Command execution error, or nil on success
func ExecuteTest() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&verboseFlag, "verbose", false, "Enable verbose debug output")

	// Commands ordered logically: info → inspection → extraction
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(envCmd)
	rootCmd.AddCommand(depsCmd)
}
