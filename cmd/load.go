package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"journal/internal/activity"
	"journal/internal/analytics"
	"journal/internal/config"
	"journal/internal/journal"
	"journal/internal/output"
)

// filterFlags are shared by every command that reads the journal.
type filterFlags struct {
	categories []string
	window     string
	today      string
	file       string
	verbose    bool
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringSliceVarP(&f.categories, "category", "c", nil, "Categories to include (reading, film, exercise, concert, leisure); defaults to the configured set")
	cmd.Flags().StringVarP(&f.window, "window", "w", "", "Time window: 'all', 'lastMonth' or 'last7days'; defaults to the configured window")
	cmd.Flags().StringVar(&f.today, "today", "today", "Reference day (today, yesterday, or YYYY-MM-DD)")
	cmd.Flags().StringVarP(&f.file, "file", "f", "", "Journal file (JSON or YAML); defaults to journal_path from the config")
	cmd.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "Enable verbose output for debugging (text mode only)")
}

// session is everything a command needs after flags, config and journal
// file have been resolved.
type session struct {
	engine  *analytics.Engine
	filter  analytics.Filter
	journal *journal.Journal
}

func (f *filterFlags) load(showVerbose bool) (*session, error) {
	today, err := parseDate(f.today)
	if err != nil {
		return nil, fmt.Errorf("invalid date format: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	output.SetTheme(string(cfg.Theme))

	filter := cfg.Filter()
	if len(f.categories) > 0 {
		set, err := parseCategories(f.categories)
		if err != nil {
			return nil, err
		}
		filter.Categories = set
	}
	if f.window != "" {
		window, err := analytics.ParseWindow(f.window)
		if err != nil {
			return nil, err
		}
		filter.Window = window
	}

	path := cfg.JournalPath
	if f.file != "" {
		path = f.file
	}

	if showVerbose {
		fmt.Printf("📂 Reading journal from %s\n", path)
	}

	j, err := journal.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load journal: %w", err)
	}

	if showVerbose {
		fmt.Printf("✓ Loaded %d records\n", len(j.Records))
		for _, skipped := range j.Skipped {
			fmt.Printf("✗ Skipped %v\n", skipped)
		}
		fmt.Printf("🔎 Filter: %s, %s\n\n", filter.Window.Label(), filter.Categories)
	}

	return &session{
		engine:  analytics.New(analytics.WithClock(func() time.Time { return today })),
		filter:  filter,
		journal: j,
	}, nil
}

// parseCategories accepts repeated flags as well as comma separated values.
func parseCategories(values []string) (activity.CategorySet, error) {
	var names []string
	for _, value := range values {
		for _, name := range strings.Split(value, ",") {
			if name = strings.TrimSpace(name); name != "" {
				names = append(names, name)
			}
		}
	}
	return activity.ParseCategorySet(names)
}

func parseDate(dateStr string) (time.Time, error) {
	now := time.Now()

	switch dateStr {
	case "", "today":
		return now, nil
	case "yesterday":
		return now.AddDate(0, 0, -1), nil
	default:
		return time.Parse(activity.DateLayout, dateStr)
	}
}

func validateOutput(outputFormat string, allowed ...string) error {
	for _, format := range allowed {
		if outputFormat == format {
			return nil
		}
	}
	return fmt.Errorf("invalid output format: %s (must be '%s')", outputFormat, strings.Join(allowed, "', '"))
}
