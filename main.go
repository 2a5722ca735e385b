package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"journal/cmd"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "journal",
		Short: "Explore your personal activity journal",
		Long:  "Journal reads your log of books, films, workouts, concerts and outings and shows counts, breakdowns, monthly evolution and average ratings.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// A missing .env file is not an error
			_ = godotenv.Load()
		},
	}

	rootCmd.AddCommand(cmd.StatsCmd())
	rootCmd.AddCommand(cmd.HistoryCmd())
	rootCmd.AddCommand(cmd.ExportCmd())
	rootCmd.AddCommand(cmd.ConfigCmd())

	if err := fang.Execute(context.Background(), rootCmd); err != nil {
		os.Exit(1)
	}
}
