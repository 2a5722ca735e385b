package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"journal/internal/activity"
	"journal/internal/output"
)

func ExportCmd() *cobra.Command {
	var flags filterFlags
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export journal records as CSV",
		Long:  "Write the records that match the selected categories and time window as CSV with the columns Date, Category, Title, Rating and Notes.",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Verbose lines would corrupt CSV written to stdout
			showVerbose := flags.verbose && out != ""
			s, err := flags.load(showVerbose)
			if err != nil {
				return err
			}

			records := latest(s.filter.Apply(s.journal.Records, s.engine.Today()), 0)

			if out == "" {
				if err := output.WriteCSV(cmd.OutOrStdout(), records); err != nil {
					return fmt.Errorf("failed to export records: %w", err)
				}
				return nil
			}

			if err := writeCSVFile(out, records); err != nil {
				return err
			}

			if showVerbose {
				fmt.Printf("💾 Exported %d records to %s\n", len(records), out)
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&out, "out", "", "Write the CSV to this file instead of stdout")

	return cmd
}

// writeCSVFile exports records to path. A failed close is reported since
// buffered rows may not have reached the disk.
func writeCSVFile(path string, records []activity.Record) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}

	if err := output.WriteCSV(file, records); err != nil {
		file.Close()
		return fmt.Errorf("failed to export records: %w", err)
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close export file: %w", err)
	}
	return nil
}
