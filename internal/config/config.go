package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"journal/internal/activity"
	"journal/internal/analytics"
)

// Theme selects the colour palette of text and TUI output.
type Theme string

const (
	ThemeAuto  Theme = "auto"
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

type Config struct {
	JournalPath string   `json:"journal_path"`
	Categories  []string `json:"categories,omitempty"`
	Window      string   `json:"window"`
	Theme       Theme    `json:"theme"`
}

func DefaultConfig() *Config {
	journalPath := "journal.json"
	if dir, err := configDir(); err == nil {
		journalPath = filepath.Join(dir, "journal.json")
	}

	categories := make([]string, 0, len(activity.AllCategories))
	for _, c := range activity.AllCategories {
		categories = append(categories, string(c))
	}

	return &Config{
		JournalPath: journalPath,
		Categories:  categories,
		Window:      string(analytics.WindowAll),
		Theme:       ThemeAuto,
	}
}

func Load() (*Config, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}

	// If config file doesn't exist, create default
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		config := DefaultConfig()
		if err := config.Save(); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
		config.applyEnv()
		return config, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	config.applyEnv()
	return config, nil
}

func (c *Config) Save() error {
	configPath, err := getConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	// Create config directory if it doesn't exist
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Filter converts the stored defaults into the dashboard's starting
// filter. Unknown values fall back to the defaults instead of failing.
func (c *Config) Filter() analytics.Filter {
	filter := analytics.DefaultFilter()

	if set, err := activity.ParseCategorySet(c.Categories); err == nil && !set.IsEmpty() {
		filter.Categories = set
	}
	if window, err := analytics.ParseWindow(c.Window); err == nil {
		filter.Window = window
	}
	return filter
}

// applyEnv lets JOURNAL_* environment variables override file values.
func (c *Config) applyEnv() {
	c.JournalPath = getEnv("JOURNAL_PATH", c.JournalPath)
	c.Window = getEnv("JOURNAL_WINDOW", c.Window)
	c.Theme = Theme(strings.ToLower(getEnv("JOURNAL_THEME", string(c.Theme))))
	if categories := getEnv("JOURNAL_CATEGORIES", ""); categories != "" {
		c.Categories = splitAndTrim(categories)
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func splitAndTrim(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// configPathFunc is a function variable to allow testing with different paths
var configPathFunc = defaultConfigPath

func configDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, ".config", "journal"), nil
}

func defaultConfigPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(dir, "config.json"), nil
}

func getConfigPath() (string, error) {
	return configPathFunc()
}

func GetConfigPath() (string, error) {
	return getConfigPath()
}
