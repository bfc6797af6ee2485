/*
PURPOSE:
  Defines the 'list' subcommand.
  Shows which runs a condition selects and the parameters decoded from
  their names.

REQUIREMENTS:
  User-specified:
  - List the matching runs.

  Implementation-discovered:
  - Useful validation step before drawing charts with a new condition.

ARCHITECTURE INTEGRATION:
  - Calls: internal/store.Ingest(), internal/params.Decode()

ERROR HANDLING:
  - Returns error if the input directory cannot be scanned.

USAGE:
  asmgraph list -D ./results --cond "SM=n"
*/

package cli

import (
	"github.com/spf13/cobra"

	"github.com/daryltucker/asmgraph/internal/chart"
	"github.com/daryltucker/asmgraph/internal/params"
	"github.com/daryltucker/asmgraph/internal/store"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the runs selected by the condition",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := store.Ingest(cfg.InputDir, runSet)
		if err != nil {
			return err
		}

		names := params.Names()
		t := &chart.Table{
			Title:  "Selected runs",
			Header: append([]string{"label"}, names...),
		}
		for _, name := range st.Names() {
			res, _ := st.Get(name)
			decoded, _ := params.Decode(name)

			row := []string{res.XLabel()}
			for _, n := range names {
				row = append(row, decoded[n])
			}
			t.Rows = append(t.Rows, row)
		}
		return chart.Draw(cmd.OutOrStdout(), t)
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
