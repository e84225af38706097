package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ajxudir/pyreqs/pkg/config"
	"github.com/ajxudir/pyreqs/pkg/errors"
	"github.com/ajxudir/pyreqs/pkg/output"
)

var (
	envEnvFileFlag string
	envSetFlags    []string
	envPythonFlag  string
	envConfigFlag  string
	envOutputFlag  string
)

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Show the resolved marker environment",
	Long: `Print the marker environment that deps would evaluate markers against,
after merging ambient defaults, the config file, --env file, and --set
overrides. Useful for checking what a pipeline config actually pins.`,
	Args: cobra.NoArgs,
	RunE: runEnv,
}

func init() {
	envCmd.Flags().StringVarP(&envEnvFileFlag, "env", "e", "", "YAML file mapping marker variables to values")
	envCmd.Flags().StringArrayVarP(&envSetFlags, "set", "s", nil, "Override one marker variable (key=value, repeatable)")
	envCmd.Flags().StringVarP(&envPythonFlag, "python", "p", "", "Python interpreter to probe for marker values")
	envCmd.Flags().StringVarP(&envConfigFlag, "config", "c", "", "Config file path")
	envCmd.Flags().StringVarP(&envOutputFlag, "output", "o", "", "Output format: json, yaml (default: key = value lines)")
}

// runEnv executes the env command.
//
// Parameters:
//   - cmd: Cobra command instance
//   - args: Unused (no positional arguments accepted)
//
// Returns:
//   - error: Usage-coded for config/flag problems
func runEnv(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(envConfigFlag, ".")
	if err != nil {
		return errors.NewExitError(errors.ExitUsageError, err)
	}

	format, err := resolveOutputFormat(envOutputFlag, cfg)
	if err != nil {
		return errors.NewExitError(errors.ExitUsageError, err)
	}

	env, err := resolveEnvironment(cfg, envPythonFlag, envEnvFileFlag, envSetFlags)
	if err != nil {
		return err
	}

	return output.WriteEnvironment(os.Stdout, format, env)
}
