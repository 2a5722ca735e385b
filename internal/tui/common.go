package tui

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/mattn/go-isatty"

	"journal/internal/output"
)

// CommonStyles contains shared styling for TUI components
type CommonStyles struct {
	Header        lipgloss.Style
	SectionHeader lipgloss.Style
	Selected      lipgloss.Style
	Unselected    lipgloss.Style
	Help          lipgloss.Style
	Border        lipgloss.Style
	StatusBar     lipgloss.Style
	Description   lipgloss.Style
	Inactive      lipgloss.Style
	Date          lipgloss.Style
}

// NewCommonStyles creates a new set of common TUI styles
func NewCommonStyles() *CommonStyles {
	flavor := output.CurrentPalette()

	return &CommonStyles{
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(flavor.Mauve().Hex)).
			Align(lipgloss.Center).
			MarginBottom(1),
		SectionHeader: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(flavor.Green().Hex)).
			MarginTop(1).
			MarginBottom(1),
		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(flavor.Base().Hex)).
			Background(lipgloss.Color(flavor.Blue().Hex)),
		Unselected: lipgloss.NewStyle().
			Foreground(lipgloss.Color(flavor.Subtext0().Hex)),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color(flavor.Subtext1().Hex)).
			Italic(true),
		Border: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(flavor.Surface2().Hex)),
		StatusBar: lipgloss.NewStyle().
			Foreground(lipgloss.Color(flavor.Text().Hex)).
			Background(lipgloss.Color(flavor.Surface0().Hex)).
			PaddingLeft(1).
			PaddingRight(1),
		Description: lipgloss.NewStyle().
			Foreground(lipgloss.Color(flavor.Subtext0().Hex)).
			Italic(true).
			MarginLeft(2),
		Inactive: lipgloss.NewStyle().
			Foreground(lipgloss.Color(flavor.Overlay0().Hex)).
			Strikethrough(true),
		Date: lipgloss.NewStyle().
			Foreground(lipgloss.Color(flavor.Subtext1().Hex)),
	}
}

// IsTerminalCapable checks if the current environment supports TUI
func IsTerminalCapable() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// MinTerminalSize defines minimum required terminal dimensions
const (
	MinTerminalWidth  = 80
	MinTerminalHeight = 20
)

// IsTerminalSizeAdequate checks if terminal is large enough for TUI
func IsTerminalSizeAdequate(width, height int) bool {
	return width >= MinTerminalWidth && height >= MinTerminalHeight
}

// ClampCursor ensures cursor stays within bounds
func ClampCursor(cursor, lower, upper int) int {
	if cursor < lower {
		return lower
	}
	if cursor > upper {
		return upper
	}
	return cursor
}

// UpdateViewport updates viewport offset to keep cursor visible
func UpdateViewport(cursor, viewportOffset, viewportHeight, totalItems int) int {
	if viewportHeight <= 0 {
		return viewportOffset
	}

	// Ensure cursor is visible in viewport
	if cursor < viewportOffset {
		viewportOffset = cursor
	} else if cursor >= viewportOffset+viewportHeight {
		viewportOffset = cursor - viewportHeight + 1
	}

	// Ensure viewport doesn't exceed bounds
	viewportOffset = max(0, viewportOffset)
	maxOffset := max(0, totalItems-viewportHeight)
	viewportOffset = min(viewportOffset, maxOffset)

	return viewportOffset
}

// PanelDimensions holds calculated panel dimensions
type PanelDimensions struct {
	LeftWidth  int
	RightWidth int
	UseSingle  bool
}

// CalculatePanelDimensions calculates optimal panel dimensions for dual-panel layout
func CalculatePanelDimensions(windowWidth int) PanelDimensions {
	minLeftWidth := 30  // Minimum width for left panel
	minRightWidth := 40 // Minimum width for right panel

	leftWidth := max(minLeftWidth, int(float64(windowWidth)*0.4))

	rightWidth := windowWidth - leftWidth - 3 // Remaining for right panel (minus border)
	if rightWidth < minRightWidth {
		rightWidth = minRightWidth
		leftWidth = windowWidth - rightWidth - 3
		if leftWidth < minLeftWidth {
			return PanelDimensions{UseSingle: true}
		}
	}

	return PanelDimensions{
		LeftWidth:  leftWidth,
		RightWidth: rightWidth,
	}
}

// RenderTerminalTooSmallMessage renders the standard "terminal too small" message
func RenderTerminalTooSmallMessage(styles *CommonStyles, width, height int) string {
	return styles.Header.Render("Terminal too small") +
		fmt.Sprintf("\n\nMinimum size: %dx%d", MinTerminalWidth, MinTerminalHeight) +
		fmt.Sprintf("\nCurrent size: %dx%d", width, height) +
		"\n\nPress q to quit"
}

// CreateBorderedPanel creates a panel with consistent border styling
func CreateBorderedPanel(width, height int) lipgloss.Style {
	return lipgloss.NewStyle().
		Width(max(20, width)).
		Height(max(10, height)).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(output.CurrentPalette().Surface2().Hex)).
		Padding(1)
}

// RenderHeader renders a standard TUI header with theme-appropriate styling
func RenderHeader(title string, windowWidth int) string {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(output.CurrentPalette().Mauve().Hex)).
		Width(windowWidth).
		Align(lipgloss.Center).
		MarginBottom(1).
		Render(title)
}

// RenderHelpText renders navigation help text with consistent styling
func RenderHelpText(helpText string, maxWidth int) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(output.CurrentPalette().Subtext1().Hex)).
		Italic(true).
		Width(max(10, maxWidth)).
		Render(helpText)
}

// RenderScrollIndicator renders a scroll position indicator
func RenderScrollIndicator(current, total, maxWidth int) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(output.CurrentPalette().Subtext1().Hex)).
		Align(lipgloss.Right).
		Width(max(10, maxWidth)).
		Render(fmt.Sprintf("[%d/%d]", current, total))
}

// ApplySelectionStyle applies selection styling to text
func ApplySelectionStyle(text string, isSelected bool, maxWidth int) string {
	if isSelected {
		flavor := output.CurrentPalette()
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color(flavor.Base().Hex)).
			Background(lipgloss.Color(flavor.Blue().Hex)).
			Bold(true).
			Width(max(10, maxWidth)).
			Render("> " + text)
	}

	return lipgloss.NewStyle().Width(max(10, maxWidth)).Render("  " + text)
}

// TruncateText truncates text to fit within maxWidth, adding ellipsis if needed
func TruncateText(text string, maxWidth int) string {
	runes := []rune(text)
	if len(runes) <= maxWidth {
		return text
	}

	if maxWidth <= 3 {
		return string(runes[:max(1, maxWidth)])
	}

	return string(runes[:maxWidth-3]) + "..."
}
