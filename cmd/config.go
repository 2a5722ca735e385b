package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"journal/internal/config"
)

func ConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration settings",
		Long:  "View and manage configuration settings for the journal CLI.",
	}

	cmd.AddCommand(configShowCmd())
	cmd.AddCommand(configPathCmd())

	return cmd
}

func configShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the current configuration, including JOURNAL_* environment overrides.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			filter := cfg.Filter()

			fmt.Println("Current Configuration:")
			fmt.Printf("\n  Journal: %s", orNotSet(cfg.JournalPath))
			fmt.Printf("\n  Categories: %s", orNotSet(strings.Join(cfg.Categories, ", ")))
			fmt.Printf("\n  Window: %s (%s)", orNotSet(cfg.Window), filter.Window.Label())
			fmt.Printf("\n  Theme: %s", cfg.Theme)
			fmt.Println()

			return nil
		},
	}
}

func configPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		Long:  "Display the path to the configuration file.",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.GetConfigPath()
			if err != nil {
				return fmt.Errorf("failed to get config path: %w", err)
			}

			fmt.Printf("Configuration file: %s\n", path)
			return nil
		},
	}
}

func orNotSet(value string) string {
	if value == "" {
		return "(not set)"
	}
	return value
}
