package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"journal/internal/analytics"
	"journal/internal/output"
	"journal/internal/tui"
)

func StatsCmd() *cobra.Command {
	var flags filterFlags
	var compact bool
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show the journal dashboard",
		Long:  "Summarize the journal for the selected categories and time window: counts per category, a breakdown of a single category, the monthly evolution of the current year and average ratings.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateOutput(outputFormat, "tui", "text", "json"); err != nil {
				return err
			}

			showVerbose := flags.verbose && outputFormat == "text"
			s, err := flags.load(showVerbose)
			if err != nil {
				return err
			}

			records := s.journal.Records

			switch outputFormat {
			case "tui":
				if err := tui.RunDashboard(s.engine, records, s.filter); err != nil {
					// Fallback to text output if TUI fails
					fmt.Print(output.NewFormatter().FormatDashboard(s.engine.Snapshot(records, s.filter)))
				}
				return nil
			case "json":
				fmt.Print(output.NewFormatter().FormatDashboardJSON(s.engine.Snapshot(records, s.filter)))
			case "text":
				fmt.Print(renderDashboardText(s.engine.Snapshot(records, s.filter), compact))
			}

			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&compact, "compact", false, "Use compact output format (text mode only)")
	cmd.Flags().StringVarP(&outputFormat, "output", "o", "tui", "Output format: 'tui', 'text', or 'json'")

	return cmd
}

func renderDashboardText(d analytics.Dashboard, compact bool) string {
	formatter := output.NewFormatter()
	if compact {
		return formatter.FormatCompactDashboard(d)
	}
	return formatter.FormatDashboard(d)
}
