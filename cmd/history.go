package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"journal/internal/activity"
	"journal/internal/output"
	"journal/internal/tui"
)

func HistoryCmd() *cobra.Command {
	var flags filterFlags
	var limit int
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List journal records, newest first",
		Long:  "List the records that match the selected categories and time window, most recent first.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateOutput(outputFormat, "tui", "text", "json"); err != nil {
				return err
			}
			if limit < 0 {
				return fmt.Errorf("invalid limit: %d (must be zero or positive)", limit)
			}

			showVerbose := flags.verbose && outputFormat == "text"
			s, err := flags.load(showVerbose)
			if err != nil {
				return err
			}

			if outputFormat == "tui" {
				if err := tui.RunHistory(s.engine, s.journal.Records, s.filter); err == nil {
					return nil
				}
				// Fallback to text output if TUI fails
				outputFormat = "text"
			}

			records := latest(s.filter.Apply(s.journal.Records, s.engine.Today()), limit)

			formatter := output.NewFormatter()
			switch outputFormat {
			case "json":
				fmt.Print(formatter.FormatHistoryJSON(records))
			case "text":
				fmt.Print(formatter.FormatHistory(records))
			}

			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Show at most this many records (0 for all)")
	cmd.Flags().StringVarP(&outputFormat, "output", "o", "tui", "Output format: 'tui', 'text', or 'json'")

	return cmd
}

// latest sorts the records newest first and keeps at most limit of them.
func latest(records []activity.Record, limit int) []activity.Record {
	activity.SortNewestFirst(records)
	if limit > 0 && len(records) > limit {
		return records[:limit]
	}
	return records
}
