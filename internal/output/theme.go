package output

import (
	"os"
	"strings"
	"sync"

	catppuccin "github.com/catppuccin/go"
)

// Palette is the subset of a catppuccin flavor used for styling.
type Palette interface {
	Base() catppuccin.Color
	Surface0() catppuccin.Color
	Surface2() catppuccin.Color
	Overlay0() catppuccin.Color
	Text() catppuccin.Color
	Subtext0() catppuccin.Color
	Subtext1() catppuccin.Color
	Mauve() catppuccin.Color
	Blue() catppuccin.Color
	Green() catppuccin.Color
	Peach() catppuccin.Color
}

var (
	themeMu       sync.RWMutex
	themeOverride string
)

// SetTheme pins the palette to "dark" or "light". Any other value, including
// "auto", restores terminal detection.
func SetTheme(theme string) {
	themeMu.Lock()
	defer themeMu.Unlock()

	switch strings.ToLower(theme) {
	case "dark", "light":
		themeOverride = strings.ToLower(theme)
	default:
		themeOverride = ""
	}
}

// IsDarkMode reports whether dark colours should be used.
func IsDarkMode() bool {
	themeMu.RLock()
	override := themeOverride
	themeMu.RUnlock()

	if override != "" {
		return override == "dark"
	}
	return isDarkTerminal()
}

// CurrentPalette returns Mocha in dark mode and Latte otherwise.
func CurrentPalette() Palette {
	if IsDarkMode() {
		return catppuccin.Mocha
	}
	return catppuccin.Latte
}

// isDarkTerminal detects if the terminal is using a dark theme
func isDarkTerminal() bool {
	// Check for explicit dark mode environment variables
	if theme := os.Getenv("THEME"); theme == "dark" {
		return true
	}
	if theme := os.Getenv("TERMINAL_THEME"); theme == "dark" {
		return true
	}

	// COLORFGBG format is usually "foreground;background"
	if colorScheme := os.Getenv("COLORFGBG"); colorScheme != "" {
		parts := strings.Split(colorScheme, ";")
		if len(parts) >= 2 {
			bg := parts[len(parts)-1]
			return bg == "0" || bg == "1" || bg == "8"
		}
	}

	// Default to light mode if we can't determine
	return false
}
