/*
PURPOSE:
  Defines the 'export' subcommand.
  Writes every selected run to CSV and JSON Lines for external analysis.

REQUIREMENTS:
  User-specified:
  - Results are saved to CSV and JSON formats.

  Implementation-discovered:
  - Absent fields stay empty/omitted so downstream tools can tell them
    apart from zero.

ARCHITECTURE INTEGRATION:
  - Calls: internal/store.Ingest()
  - Uses: internal/output (CSVWriter, JSONWriter)

ERROR HANDLING:
  - Returns error if the output directory or files cannot be created.
  - A failed row write is logged and the export continues.

USAGE:
  asmgraph export -D ./results -o ./out
*/

package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/daryltucker/asmgraph/internal/output"
	"github.com/daryltucker/asmgraph/internal/store"
)

var outputOverride string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the selected runs to results.csv and results.jsonl",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := store.Ingest(cfg.InputDir, runSet)
		if err != nil {
			return err
		}

		// Ensure output directory exists
		if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", cfg.OutputDir, err)
		}

		csvPath := filepath.Join(cfg.OutputDir, "results.csv")
		csvWriter, err := output.NewCSVWriter(csvPath)
		if err != nil {
			return fmt.Errorf("failed to init CSV writer at %s: %w", csvPath, err)
		}
		defer csvWriter.Close()

		jsonPath := filepath.Join(cfg.OutputDir, "results.jsonl")
		jsonWriter, err := output.NewJSONWriter(jsonPath)
		if err != nil {
			return fmt.Errorf("failed to init JSON writer at %s: %w", jsonPath, err)
		}
		defer jsonWriter.Close()

		for _, name := range st.Names() {
			res, _ := st.Get(name)
			if err := csvWriter.Write(name, res); err != nil {
				output.Logger.Error("Failed to write result to CSV", "name", name, "error", err)
			}
			if err := jsonWriter.Write(name, res); err != nil {
				output.Logger.Error("Failed to write result to JSON", "name", name, "error", err)
			}
		}

		output.Logger.Info("Export complete", "runs", st.Len(), "csv", csvPath, "json", jsonPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&outputOverride, "output-dir", "o", "", "Output directory for results (CSV/JSON)")
}
