/*
PURPOSE:
  Defines the 'plot' subcommand.
  Ingests the selected runs and draws the requested charts.

REQUIREMENTS:
  User-specified:
  - Draw one or more of: energy, response, overflow, spin, hit, statetime.

  Implementation-discovered:
  - A chart that lacks data for some run fails alone; remaining charts are
    still drawn and the command reports the failure count at the end.

ARCHITECTURE INTEGRATION:
  - Calls: internal/store.Ingest(), internal/chart.Render()
  - Uses: internal/config (via root.go)

ERROR HANDLING:
  - Returns error if config, scan or any chart fails.

USAGE:
  asmgraph plot -G energy,spin -D ./results --cond "SM=n,WL=h:24"

RELATED FILES:
  - internal/cli/root.go
  - internal/chart/chart.go
*/

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/daryltucker/asmgraph/internal/chart"
	"github.com/daryltucker/asmgraph/internal/output"
	"github.com/daryltucker/asmgraph/internal/store"
)

var chartsOverride []string

var plotCmd = &cobra.Command{
	Use:   "plot",
	Short: "Draw charts of the selected runs",
	Example: `  # Energy and spin charts of every NM=8 run below ./results
  asmgraph plot -G energy,spin -D ./results --cond NM=8

  # Every chart, RAPoSDA runs of the 24h workload only
  asmgraph plot -D ./results --cond "BM=RAPoSDA,WL=h:24"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		kinds, err := cfg.ChartKinds()
		if err != nil {
			return err
		}

		st, err := store.Ingest(cfg.InputDir, runSet)
		if err != nil {
			return err
		}
		if st.Len() == 0 {
			output.Logger.Warn("No runs matched", "dir", cfg.InputDir, "condition", runSet.String())
		}

		results := st.Results()
		failed := 0
		for _, kind := range kinds {
			if err := chart.Render(cmd.OutOrStdout(), kind, results); err != nil {
				output.Logger.Error("Chart failed", "chart", kind, "error", err)
				failed++
				continue
			}
			fmt.Fprintln(cmd.OutOrStdout())
		}

		if failed > 0 {
			return fmt.Errorf("%d of %d charts failed", failed, len(kinds))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(plotCmd)

	plotCmd.Flags().StringSliceVarP(&chartsOverride, "charts", "G", nil, "Comma-separated chart kinds (energy, response, overflow, spin, hit, statetime, all)")
}
