/*
PURPOSE:
  Defines the root Cobra command for the asmgraph CLI.
  Handles global flags, configuration loading and logger setup.

REQUIREMENTS:
  User-specified:
  - Provide a CLI interface.
  - Support global flags like --config, -D (input dir) and --cond.

  Implementation-discovered:
  - Needs to expose an Execute() function for main.go.
  - Every subcommand needs the same layered config, so it is built once in
    PersistentPreRunE.

ARCHITECTURE INTEGRATION:
  - Called by: cmd/asmgraph/main.go
  - Calls: Child commands (plot, list, export)
  - Modifies: package level cfg/runSet (until passed down).

ERROR HANDLING:
  - Returns error to main.go for exit code handling.
  - A malformed condition fails here, before any directory is scanned.

IMPLEMENTATION RULES:
  - Use `PersistentFlags()` for flags available to all subcommands.
  - Keep Run logic in subcommands, Root is usually empty or helps.

USAGE:
  Called by main.go.

SELF-HEALING INSTRUCTIONS:
  - If adding new global flags, add them to init() and applyOverrides().

RELATED FILES:
  - cmd/asmgraph/main.go
  - internal/config/config.go

MAINTENANCE:
  - Update when adding global configuration options.
*/

package cli

import (
	"github.com/spf13/cobra"

	"github.com/daryltucker/asmgraph/internal/condition"
	"github.com/daryltucker/asmgraph/internal/config"
	"github.com/daryltucker/asmgraph/internal/output"
)

var (
	// cfgFile stores the path to the config file (if specified via flag)
	cfgFile string

	inputDirOverride  string
	conditionOverride string
	logFormatOverride string
	verboseOverride   bool

	// cfg and runSet are resolved once per invocation by PersistentPreRunE.
	cfg    *config.Config
	runSet condition.Set

	rootCmd = &cobra.Command{
		Use:   "asmgraph",
		Short: "Select and chart storage simulator results",
		Long: `Scans a tree of storage/caching simulator reports, keeps the runs whose
file names satisfy a condition, parses them and draws comparison charts.

Conditions are comma separated KEY=VALUE pairs over the parameters encoded
in run file names: DD, CD, NM, MS, R, SM, CMA, CMF, BM, and WL for workload
parameters joined by "_" (h, rr, lam, the, ds), e.g.

  --cond "NM=8,SM=n,BM=RAPoSDA,WL=h:24_rr:5"`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./asmgraph.yaml)")
	rootCmd.PersistentFlags().StringVarP(&inputDirOverride, "dir", "D", "", "Root directory of the simulation reports")
	rootCmd.PersistentFlags().StringVar(&conditionOverride, "cond", "", "Run condition, e.g. NM=8,SM=n,WL=h:24_rr:5")
	rootCmd.PersistentFlags().StringVar(&logFormatOverride, "log-format", "", "Log format: text or json")
	rootCmd.PersistentFlags().BoolVarP(&verboseOverride, "verbose", "v", false, "Log every skipped file")
}

func setup(cmd *cobra.Command, args []string) error {
	// 1. Load Config (file + environment)
	loaded, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	// 2. Overrides
	applyOverrides(cmd, loaded)

	if err := output.Configure(cmd.ErrOrStderr(), loaded.LogFormat, loaded.Verbose); err != nil {
		return err
	}

	// 3. Validate what would otherwise fail mid-scan
	set, err := loaded.ConditionSet()
	if err != nil {
		return err
	}

	cfg = loaded
	runSet = set
	return nil
}

func applyOverrides(cmd *cobra.Command, c *config.Config) {
	if inputDirOverride != "" {
		c.InputDir = inputDirOverride
	}
	if cmd.Flags().Changed("cond") {
		c.Condition = conditionOverride
	}
	if logFormatOverride != "" {
		c.LogFormat = logFormatOverride
	}
	if verboseOverride {
		c.Verbose = true
	}
	if len(chartsOverride) > 0 {
		c.Charts = chartsOverride
	}
	if outputOverride != "" {
		c.OutputDir = outputOverride
	}
}
