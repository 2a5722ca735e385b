package output

import (
	"fmt"
	"strings"

	"journal/internal/activity"
)

// CategoryIcon returns the emoji shown next to a category.
func CategoryIcon(c activity.Category) string {
	icons := map[activity.Category]string{
		activity.CategoryReading:  "📚",
		activity.CategoryFilm:     "🎬",
		activity.CategoryExercise: "💪",
		activity.CategoryConcert:  "🎸",
		activity.CategoryLeisure:  "💃",
	}

	if icon, exists := icons[c]; exists {
		return icon
	}
	return "📌"
}

// CategoryColor returns the chart colour of a category.
func CategoryColor(c activity.Category) string {
	colors := map[activity.Category]string{
		activity.CategoryReading:  "#ff4d4d",
		activity.CategoryFilm:     "#4db8ff",
		activity.CategoryExercise: "#82ca9d",
		activity.CategoryConcert:  "#ff944d",
		activity.CategoryLeisure:  "#ffdb4d",
	}

	if color, exists := colors[c]; exists {
		return color
	}
	return "#888888"
}

// Bar draws a horizontal bar of at most width cells, scaled against highest.
// Any nonzero value gets at least one cell.
func Bar(value, highest, width int) string {
	if value <= 0 || highest <= 0 || width <= 0 {
		return ""
	}
	cells := value * width / highest
	if cells == 0 {
		cells = 1
	}
	return strings.Repeat("█", min(cells, width))
}

// Stars renders a 1-5 rating.
func Stars(rating int) string {
	rating = max(0, min(rating, 5))
	return strings.Repeat("★", rating) + strings.Repeat("☆", 5-rating)
}

// FormatRating renders an average, or a dash when there is nothing to show.
func FormatRating(average float64, ok bool) string {
	if !ok {
		return "–"
	}
	return fmt.Sprintf("★ %.1f", average)
}

// FormatMinutes renders a duration such as "1h 30m".
func FormatMinutes(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%d min", minutes)
	}
	if minutes%60 == 0 {
		return fmt.Sprintf("%dh", minutes/60)
	}
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}

// FormatDate renders the record date as DD/MM/YYYY.
func FormatDate(r activity.Record) string {
	if r.Date.IsZero() {
		return "??/??/????"
	}
	return r.Date.Format("02/01/2006")
}

// RecordDetail returns the secondary line of a record: author, director,
// venue or workout figures.
func RecordDetail(r activity.Record) string {
	switch d := r.Details.(type) {
	case activity.Reading:
		return "by " + d.Author
	case activity.Film:
		if d.Director != "" {
			return "directed by " + d.Director
		}
	case activity.Exercise:
		detail := FormatMinutes(d.DurationMinutes)
		if d.DistanceKm != nil && d.Sport.TracksDistance() {
			detail += fmt.Sprintf(" · %.1f km", *d.DistanceKm)
		}
		return detail
	case activity.Concert:
		if d.Venue != "" {
			return "at " + d.Venue
		}
	case activity.Leisure:
		return string(d.Kind)
	}
	return ""
}
