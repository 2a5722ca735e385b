package output

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"

	"journal/internal/activity"
	"journal/internal/analytics"
)

const barWidth = 30

type Formatter struct {
	// Styles for different components
	titleStyle       lipgloss.Style
	headerStyle      lipgloss.Style
	sectionStyle     lipgloss.Style
	labelStyle       lipgloss.Style
	valueStyle       lipgloss.Style
	dateStyle        lipgloss.Style
	descriptionStyle lipgloss.Style
	tagStyle         lipgloss.Style
	borderStyle      lipgloss.Style
}

func NewFormatter() *Formatter {
	flavor := CurrentPalette()

	return &Formatter{
		titleStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(flavor.Mauve().Hex)).
			MarginBottom(1),
		headerStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(flavor.Blue().Hex)).
			MarginTop(1).
			MarginBottom(1),
		sectionStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(flavor.Green().Hex)).
			PaddingLeft(1).
			PaddingRight(1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(flavor.Green().Hex)),
		labelStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color(flavor.Subtext1().Hex)).
			Bold(true),
		valueStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color(flavor.Text().Hex)).
			Bold(true),
		dateStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color(flavor.Subtext1().Hex)).
			Bold(true),
		descriptionStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color(flavor.Subtext0().Hex)).
			PaddingLeft(5).
			Italic(true),
		tagStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color(flavor.Peach().Hex)).
			PaddingLeft(5).
			Italic(true),
		borderStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color(flavor.Surface2().Hex)),
	}
}

// FormatDashboard renders every dashboard view as styled text.
func (f *Formatter) FormatDashboard(d analytics.Dashboard) string {
	var output strings.Builder

	title := fmt.Sprintf("📊 Journal for %s", d.Today.Format("January 2, 2006"))
	output.WriteString(f.titleStyle.Render(title))
	output.WriteString("\n")
	output.WriteString(f.labelStyle.Render(filterLine(d.Filter)))
	output.WriteString("\n")

	stats := fmt.Sprintf("Total records: %d", d.Summary.Total)
	output.WriteString(f.headerStyle.Render(stats))
	output.WriteString("\n\n")

	output.WriteString(f.formatSummarySection(d.Summary))
	output.WriteString(f.formatRatingsSection(d.Filter, d.Ratings))
	if d.Breakdown != nil {
		output.WriteString(f.formatBreakdownSection(*d.Breakdown))
	}
	output.WriteString(f.formatEvolutionSection(d.Evolution))

	return output.String()
}

func (f *Formatter) section(title string) string {
	var section strings.Builder
	section.WriteString(f.sectionStyle.Render(title))
	section.WriteString("\n")
	section.WriteString(f.borderStyle.Render(strings.Repeat("─", 60)))
	section.WriteString("\n")
	return section.String()
}

func (f *Formatter) formatSummarySection(summary analytics.Summary) string {
	var section strings.Builder
	section.WriteString(f.section("🗂️  Categories"))

	highest := 0
	for _, cc := range summary.Counts {
		highest = max(highest, cc.Count)
	}

	for _, cc := range summary.Counts {
		label := fmt.Sprintf("%s %-9s", CategoryIcon(cc.Category), cc.Category.Label())
		bar := lipgloss.NewStyle().
			Foreground(lipgloss.Color(CategoryColor(cc.Category))).
			Render(Bar(cc.Count, highest, barWidth))
		section.WriteString(fmt.Sprintf("%s %s %s\n", label, bar, f.valueStyle.Render(fmt.Sprint(cc.Count))))
	}

	section.WriteString("\n")
	exercise := fmt.Sprintf("%s Exercise time: %s", CategoryIcon(activity.CategoryExercise), FormatMinutes(summary.ExerciseMinutes))
	if summary.ExerciseDistanceKm > 0 {
		exercise += fmt.Sprintf(" · %.1f km", summary.ExerciseDistanceKm)
	}
	section.WriteString(exercise)
	section.WriteString("\n\n")
	return section.String()
}

func (f *Formatter) formatRatingsSection(filter analytics.Filter, ratings map[activity.Category]float64) string {
	var section strings.Builder
	section.WriteString(f.section("⭐ Average rating"))

	for _, c := range filter.Categories.Categories() {
		if !c.Ratable() {
			continue
		}
		average, ok := ratings[c]
		section.WriteString(fmt.Sprintf("%s %-9s %s\n", CategoryIcon(c), c.Label(), FormatRating(average, ok)))
	}

	section.WriteString("\n")
	return section.String()
}

func (f *Formatter) formatBreakdownSection(b analytics.Breakdown) string {
	var section strings.Builder
	section.WriteString(f.section(fmt.Sprintf("%s %s breakdown", CategoryIcon(b.Category), b.Category.Label())))

	if len(b.Entries) == 0 {
		section.WriteString(f.descriptionStyle.Render("Nothing to break down yet."))
		section.WriteString("\n\n")
		return section.String()
	}

	width := 0
	for _, e := range b.Entries {
		width = max(width, len([]rune(e.Key)))
	}

	highest := b.Entries[0].Count
	color := lipgloss.NewStyle().Foreground(lipgloss.Color(CategoryColor(b.Category)))
	for _, e := range b.Entries {
		padding := strings.Repeat(" ", width-len([]rune(e.Key)))
		section.WriteString(fmt.Sprintf("%s%s %s %d\n", e.Key, padding, color.Render(Bar(e.Count, highest, barWidth)), e.Count))
	}

	section.WriteString("\n")
	return section.String()
}

func (f *Formatter) formatEvolutionSection(series analytics.Series) string {
	var section strings.Builder
	section.WriteString(f.section(fmt.Sprintf("📈 Evolution %d", series.Year)))

	section.WriteString(f.labelStyle.Render(fmt.Sprintf("%-5s", "Month")))
	for _, c := range series.Categories {
		section.WriteString(f.labelStyle.Render(fmt.Sprintf(" %9s", c.Label())))
	}
	section.WriteString("\n")

	for _, m := range series.Months {
		section.WriteString(fmt.Sprintf("%-5s", m.Label))
		for _, c := range series.Categories {
			section.WriteString(fmt.Sprintf(" %9d", m.Counts[c]))
		}
		section.WriteString("\n")
	}

	section.WriteString("\n")
	return section.String()
}

// FormatCompactDashboard renders a few lines: totals, ratings and the top
// breakdown entries.
func (f *Formatter) FormatCompactDashboard(d analytics.Dashboard) string {
	var output strings.Builder

	header := fmt.Sprintf("Journal - %d records (%s):", d.Summary.Total, d.Filter.Window.Label())
	output.WriteString(f.titleStyle.Render(header))
	output.WriteString("\n\n")

	for _, cc := range d.Summary.Counts {
		line := fmt.Sprintf("%s %s %d", CategoryIcon(cc.Category), cc.Category.Label(), cc.Count)
		if average, ok := d.Ratings[cc.Category]; ok {
			line += fmt.Sprintf(" (★ %.1f)", average)
		}
		output.WriteString(line)
		output.WriteString("\n")
	}

	if d.Summary.ExerciseMinutes > 0 {
		output.WriteString(fmt.Sprintf("Exercise time: %s\n", FormatMinutes(d.Summary.ExerciseMinutes)))
	}

	if d.Breakdown != nil && len(d.Breakdown.Entries) > 0 {
		top := make([]string, 0, 3)
		for i, e := range d.Breakdown.Entries {
			if i == 3 {
				break
			}
			top = append(top, fmt.Sprintf("%s %d", e.Key, e.Count))
		}
		output.WriteString(fmt.Sprintf("Top: %s\n", strings.Join(top, ", ")))
	}

	return output.String()
}

func (f *Formatter) FormatDashboardJSON(d analytics.Dashboard) string {
	jsonOutput := struct {
		Today     string                        `json:"today"`
		Filter    analytics.Filter              `json:"filter"`
		Summary   analytics.Summary             `json:"summary"`
		Breakdown *analytics.Breakdown          `json:"breakdown"`
		Evolution analytics.Series              `json:"evolution"`
		Ratings   map[activity.Category]float64 `json:"ratings"`
	}{
		Today:     d.Today.Format(activity.DateLayout),
		Filter:    d.Filter,
		Summary:   d.Summary,
		Breakdown: d.Breakdown,
		Evolution: d.Evolution,
		Ratings:   d.Ratings,
	}

	jsonBytes, err := json.MarshalIndent(jsonOutput, "", "  ")
	if err != nil {
		return fmt.Sprintf(`{"error": "Failed to marshal JSON: %s"}`, err.Error())
	}

	return string(jsonBytes) + "\n"
}

// FormatHistory lists records in the order given, grouped under their date.
func (f *Formatter) FormatHistory(records []activity.Record) string {
	if len(records) == 0 {
		return f.headerStyle.Render("No records match the current filter.")
	}

	var output strings.Builder

	title := fmt.Sprintf("📖 History - %d records", len(records))
	output.WriteString(f.titleStyle.Render(title))
	output.WriteString("\n")

	for _, r := range records {
		output.WriteString(f.formatRecord(r))
	}

	return output.String()
}

func (f *Formatter) formatRecord(r activity.Record) string {
	var content strings.Builder

	date := f.dateStyle.Render(FormatDate(r))
	mainLine := fmt.Sprintf("%s %s  %s", date, CategoryIcon(r.Category()), r.DisplayTitle())
	if rating, ok := r.Rating(); ok {
		mainLine += "  " + Stars(rating)
	}
	content.WriteString(mainLine)
	content.WriteString("\n")

	if detail := RecordDetail(r); detail != "" {
		content.WriteString(f.descriptionStyle.Render(detail))
		content.WriteString("\n")
	}

	if r.Notes != "" {
		content.WriteString(f.descriptionStyle.Render(r.Notes))
		content.WriteString("\n")
	}

	if tags := r.Tags(); len(tags) > 0 {
		content.WriteString(f.tagStyle.Render("🏷️  " + strings.Join(tags, ", ")))
		content.WriteString("\n")
	}

	return content.String()
}

func (f *Formatter) FormatHistoryJSON(records []activity.Record) string {
	if records == nil {
		records = []activity.Record{}
	}

	jsonOutput := struct {
		Total   int               `json:"total"`
		Records []activity.Record `json:"records"`
	}{
		Total:   len(records),
		Records: records,
	}

	jsonBytes, err := json.MarshalIndent(jsonOutput, "", "  ")
	if err != nil {
		return fmt.Sprintf(`{"error": "Failed to marshal JSON: %s"}`, err.Error())
	}

	return string(jsonBytes) + "\n"
}

func filterLine(filter analytics.Filter) string {
	names := make([]string, 0, filter.Categories.Len())
	for _, c := range filter.Categories.Categories() {
		names = append(names, c.Label())
	}
	if len(names) == 0 {
		names = append(names, "no categories")
	}
	return fmt.Sprintf("%s · %s", filter.Window.Label(), strings.Join(names, ", "))
}
