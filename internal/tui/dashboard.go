package tui

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"journal/internal/activity"
	"journal/internal/analytics"
	"journal/internal/output"
)

// ErrNotTerminal is returned when stdout cannot host the interactive view.
var ErrNotTerminal = errors.New("terminal does not support TUI")

type screen int

const (
	screenStats screen = iota
	screenHistory
)

const dashboardHelp = "1-5: Toggle category • a: All • w: Window • tab: Stats/History • j/k: Move • q: Quit"

type dashboardModel struct {
	engine       *analytics.Engine
	records      []activity.Record
	filter       analytics.Filter
	dashboard    analytics.Dashboard
	screen       screen
	cursor       int
	offset       int
	scroll       int
	windowHeight int
	windowWidth  int
	styles       *CommonStyles
	formatter    *output.Formatter
	glamourStyle *glamour.TermRenderer
}

func newDashboardModel(engine *analytics.Engine, records []activity.Record, filter analytics.Filter) dashboardModel {
	glamourTheme := "light"
	if output.IsDarkMode() {
		glamourTheme = "dark"
	}
	glamourStyle, err := glamour.NewTermRenderer(glamour.WithStandardStyle(glamourTheme), glamour.WithEmoji())
	if err != nil {
		glamourStyle = nil
	}

	m := dashboardModel{
		engine:       engine,
		records:      records,
		filter:       filter,
		styles:       NewCommonStyles(),
		formatter:    output.NewFormatter(),
		glamourStyle: glamourStyle,
		windowHeight: MinTerminalHeight,
		windowWidth:  MinTerminalWidth,
	}
	m.refresh()
	return m
}

// refresh recomputes every view after a filter change.
func (m *dashboardModel) refresh() {
	m.dashboard = m.engine.Snapshot(m.records, m.filter)
	m.cursor = ClampCursor(m.cursor, 0, max(0, len(m.dashboard.Filtered)-1))
	m.offset = UpdateViewport(m.cursor, m.offset, m.listHeight(), len(m.dashboard.Filtered))
	m.scroll = 0
}

func (m dashboardModel) listHeight() int {
	// header, filter bar, help line and panel borders
	return max(1, m.windowHeight-10)
}

func (m dashboardModel) Init() tea.Cmd {
	return nil
}

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch key := msg.String(); key {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			if m.screen == screenStats {
				m.screen = screenHistory
			} else {
				m.screen = screenStats
			}
			m.scroll = 0
		case "1", "2", "3", "4", "5":
			c := activity.AllCategories[int(key[0]-'1')]
			m.filter.Categories = m.filter.Categories.Toggle(c)
			m.refresh()
		case "a":
			m.filter.Categories = activity.FullCategorySet()
			m.refresh()
		case "w":
			m.filter.Window = m.filter.Window.Next()
			m.refresh()
		case "up", "k":
			m.move(-1)
		case "down", "j":
			m.move(1)
		case "home", "g":
			m.cursor, m.scroll = 0, 0
			m.offset = UpdateViewport(m.cursor, m.offset, m.listHeight(), len(m.dashboard.Filtered))
		case "end", "G":
			m.cursor = max(0, len(m.dashboard.Filtered)-1)
			m.offset = UpdateViewport(m.cursor, m.offset, m.listHeight(), len(m.dashboard.Filtered))
		}

	case tea.WindowSizeMsg:
		m.windowHeight = msg.Height
		m.windowWidth = msg.Width
		m.offset = UpdateViewport(m.cursor, m.offset, m.listHeight(), len(m.dashboard.Filtered))
	}

	return m, nil
}

func (m *dashboardModel) move(delta int) {
	if m.screen == screenStats {
		m.scroll = max(0, m.scroll+delta)
		return
	}
	m.cursor = ClampCursor(m.cursor+delta, 0, max(0, len(m.dashboard.Filtered)-1))
	m.offset = UpdateViewport(m.cursor, m.offset, m.listHeight(), len(m.dashboard.Filtered))
}

func (m dashboardModel) View() string {
	if !IsTerminalSizeAdequate(m.windowWidth, m.windowHeight) {
		return RenderTerminalTooSmallMessage(m.styles, m.windowWidth, m.windowHeight)
	}

	title := fmt.Sprintf("📊 Journal for %s", m.dashboard.Today.Format("January 2, 2006"))

	var body string
	if m.screen == screenStats {
		body = m.renderStats()
	} else {
		body = m.renderHistory()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		RenderHeader(title, m.windowWidth),
		m.renderFilterBar(),
		body,
		RenderHelpText(dashboardHelp, m.windowWidth),
	)
}

func (m dashboardModel) renderFilterBar() string {
	parts := make([]string, 0, len(activity.AllCategories)+1)
	for i, c := range activity.AllCategories {
		label := fmt.Sprintf("%d %s %s", i+1, output.CategoryIcon(c), c.Label())
		if m.filter.Categories.Has(c) {
			parts = append(parts, m.styles.Selected.Render(" "+label+" "))
		} else {
			parts = append(parts, m.styles.Inactive.Render(" "+label+" "))
		}
	}
	parts = append(parts, m.styles.StatusBar.Render("⏱ "+m.filter.Window.Label()))
	return strings.Join(parts, " ")
}

func (m dashboardModel) renderStats() string {
	lines := strings.Split(m.formatter.FormatDashboard(m.dashboard), "\n")

	height := max(1, m.windowHeight-6)
	start := min(m.scroll, max(0, len(lines)-height))
	end := min(len(lines), start+height)

	return strings.Join(lines[start:end], "\n")
}

func (m dashboardModel) renderHistory() string {
	if len(m.dashboard.Filtered) == 0 {
		return m.styles.SectionHeader.Render("No records match the current filter.")
	}

	dimensions := CalculatePanelDimensions(m.windowWidth)
	if dimensions.UseSingle {
		return m.renderRecordList(m.windowWidth)
	}

	leftPanel := CreateBorderedPanel(dimensions.LeftWidth, m.listHeight()).Render(m.renderRecordList(dimensions.LeftWidth - 4))
	rightPanel := m.renderDetailPanel(dimensions.RightWidth)

	return lipgloss.JoinHorizontal(lipgloss.Top, leftPanel, rightPanel)
}

func (m dashboardModel) renderRecordList(width int) string {
	var content strings.Builder
	records := m.dashboard.Filtered

	end := min(len(records), m.offset+m.listHeight())
	for i := m.offset; i < end; i++ {
		r := records[i]
		maxTitleWidth := max(5, width-18)
		line := fmt.Sprintf("%s %s %s", output.FormatDate(r), output.CategoryIcon(r.Category()), TruncateText(r.DisplayTitle(), maxTitleWidth))
		content.WriteString(ApplySelectionStyle(line, i == m.cursor, width))
		content.WriteString("\n")
	}

	if len(records) > m.listHeight() {
		content.WriteString(RenderScrollIndicator(m.cursor+1, len(records), width))
	}

	return content.String()
}

func (m dashboardModel) renderDetailPanel(width int) string {
	panel := CreateBorderedPanel(width, m.listHeight())

	if m.cursor >= len(m.dashboard.Filtered) {
		return panel.Render("Select a record to view details")
	}

	markdown := recordMarkdown(m.dashboard.Filtered[m.cursor])

	rendered := markdown
	if m.glamourStyle != nil {
		if out, err := m.glamourStyle.Render(markdown); err == nil {
			rendered = out
		}
	}

	return panel.Render(rendered)
}

func recordMarkdown(r activity.Record) string {
	var md strings.Builder

	md.WriteString(fmt.Sprintf("# %s %s\n\n", output.CategoryIcon(r.Category()), r.DisplayTitle()))

	md.WriteString("## Details\n\n")
	md.WriteString("| Field | Value |\n")
	md.WriteString("|-------|-------|\n")
	md.WriteString(fmt.Sprintf("| **Date** | %s |\n", output.FormatDate(r)))
	md.WriteString(fmt.Sprintf("| **Category** | %s |\n", r.Category().Label()))

	switch d := r.Details.(type) {
	case activity.Reading:
		md.WriteString(fmt.Sprintf("| **Author** | %s |\n", d.Author))
	case activity.Film:
		if d.Director != "" {
			md.WriteString(fmt.Sprintf("| **Director** | %s |\n", d.Director))
		}
	case activity.Exercise:
		md.WriteString(fmt.Sprintf("| **Sport** | %s |\n", d.Sport))
		md.WriteString(fmt.Sprintf("| **Duration** | %s |\n", output.FormatMinutes(d.DurationMinutes)))
		if d.DistanceKm != nil {
			md.WriteString(fmt.Sprintf("| **Distance** | %.1f km |\n", *d.DistanceKm))
		}
	case activity.Concert:
		if d.Venue != "" {
			md.WriteString(fmt.Sprintf("| **Venue** | %s |\n", d.Venue))
		}
	case activity.Leisure:
		md.WriteString(fmt.Sprintf("| **Type** | %s |\n", d.Kind))
	}

	if rating, ok := r.Rating(); ok {
		md.WriteString(fmt.Sprintf("| **Rating** | %s |\n", output.Stars(rating)))
	}

	if r.Notes != "" {
		md.WriteString("\n## Notes\n\n")
		md.WriteString(r.Notes)
		md.WriteString("\n\n")
	}

	if tags := r.Tags(); len(tags) > 0 {
		md.WriteString("## Tags\n\n")
		for _, tag := range tags {
			md.WriteString(fmt.Sprintf("- `%s`\n", tag))
		}
		md.WriteString("\n")
	}

	return md.String()
}

// RunDashboardForced starts the dashboard, bypassing TTY checks (for testing)
func RunDashboardForced(engine *analytics.Engine, records []activity.Record, filter analytics.Filter) error {
	return runDashboardInternal(engine, records, filter, screenStats, true)
}

// RunDashboard starts the interactive dashboard over the loaded records.
// It returns ErrNotTerminal when stdout is not a terminal so the caller can
// fall back to text output.
func RunDashboard(engine *analytics.Engine, records []activity.Record, filter analytics.Filter) error {
	return runDashboardInternal(engine, records, filter, screenStats, false)
}

// RunHistory starts the dashboard on the record list.
func RunHistory(engine *analytics.Engine, records []activity.Record, filter analytics.Filter) error {
	return runDashboardInternal(engine, records, filter, screenHistory, false)
}

func runDashboardInternal(engine *analytics.Engine, records []activity.Record, filter analytics.Filter, start screen, force bool) error {
	if !force && !IsTerminalCapable() {
		return ErrNotTerminal
	}

	m := newDashboardModel(engine, records, filter)
	m.screen = start

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run dashboard: %w", err)
	}
	return nil
}
