package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ajxudir/pyreqs/pkg/config"
	"github.com/ajxudir/pyreqs/pkg/errors"
	"github.com/ajxudir/pyreqs/pkg/filter"
	"github.com/ajxudir/pyreqs/pkg/metadata"
	"github.com/ajxudir/pyreqs/pkg/output"
	"github.com/ajxudir/pyreqs/pkg/verbose"
)

var (
	depsEnvFileFlag string
	depsSetFlags    []string
	depsPythonFlag  string
	depsConfigFlag  string
	depsOutputFlag  string
	depsExplainFlag bool
)

var loadDistributionFunc = metadata.Load

var depsCmd = &cobra.Command{
	Use:   "deps <location>",
	Short: "Print the runtime dependencies declared by an installed package",
	Long: `Read the .dist-info or .egg-info directory at <location> and print the
bare name of every runtime dependency, one per line. Specifiers declaring
extras are dropped unconditionally; specifiers gated by an environment
marker are kept only when the marker evaluates true against the target
environment.`,
	Args: cobra.ExactArgs(1),
	RunE: runDeps,
}

func init() {
	depsCmd.Flags().StringVarP(&depsEnvFileFlag, "env", "e", "", "YAML file mapping marker variables to values")
	depsCmd.Flags().StringArrayVarP(&depsSetFlags, "set", "s", nil, "Override one marker variable (key=value, repeatable)")
	depsCmd.Flags().StringVarP(&depsPythonFlag, "python", "p", "", "Python interpreter to probe for marker values")
	depsCmd.Flags().StringVarP(&depsConfigFlag, "config", "c", "", "Config file path")
	depsCmd.Flags().StringVarP(&depsOutputFlag, "output", "o", "", "Output format: json, yaml (default: one name per line)")
	depsCmd.Flags().BoolVar(&depsExplainFlag, "explain", false, "Show a per-specifier decision table instead of bare names")
}

// runDeps executes the deps command.
//
// It performs the following operations:
//   - Loads configuration and resolves the marker environment
//   - Reads the metadata directory (usage error when absent or unrecognizable)
//   - Classifies every declared specifier through the filter policy
//   - Prints bare names, a decision table, or a structured result
//
// Parameters:
//   - cmd: Cobra command instance
//   - args: Exactly one metadata-directory location
//
// Returns:
//   - error: Usage-coded for location/metadata/flag problems, failure-coded
//     for specifier parse errors
func runDeps(cmd *cobra.Command, args []string) error {
	location := args[0]

	cfg, err := config.Load(depsConfigFlag, ".")
	if err != nil {
		return errors.NewExitError(errors.ExitUsageError, err)
	}

	format, err := resolveOutputFormat(depsOutputFlag, cfg)
	if err != nil {
		return errors.NewExitError(errors.ExitUsageError, err)
	}

	env, err := resolveEnvironment(cfg, depsPythonFlag, depsEnvFileFlag, depsSetFlags)
	if err != nil {
		return err
	}

	dist, err := loadDistributionFunc(location)
	if err != nil {
		printUsage(cmd)
		return errors.NewExitError(errors.ExitUsageError, err)
	}

	decisions, err := filter.Classify(dist.Requires, env)
	if err != nil {
		return errors.NewExitError(errors.ExitFailure, err)
	}

	result := output.NewDepsResult(location, dist.Name, dist.Version, decisions)
	verbose.Infof("Included %d of %d specifiers", result.Summary.Included, result.Summary.TotalSpecifiers)

	switch {
	case output.IsStructuredFormat(format):
		return output.WriteStructured(os.Stdout, format, result)
	case depsExplainFlag:
		return output.WriteExplainTable(os.Stdout, result.Decisions)
	default:
		return output.WriteLines(os.Stdout, result.Dependencies)
	}
}

// resolveOutputFormat picks the output format from the flag, falling back
// to the config file default.
//
// Parameters:
//   - flag: The --output flag value
//   - cfg: The loaded configuration
//
// Returns:
//   - output.Format: The effective format
//   - error: When the requested format is unknown
func resolveOutputFormat(flag string, cfg *config.Config) (output.Format, error) {
	if flag == "" {
		flag = cfg.Output
	}
	return output.ParseFormat(flag)
}

// printUsage writes the command's usage text to stderr, shown alongside
// usage-coded errors.
//
// Parameters:
//   - cmd: The command whose usage to print
func printUsage(cmd *cobra.Command) {
	_, _ = fmt.Fprint(os.Stderr, cmd.UsageString())
}
