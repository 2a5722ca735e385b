// Package analytics turns journal records into the filtered, grouped and
// time-bucketed views shown by the dashboard. Every function is pure: the
// same records, filter and day always produce the same views.
package analytics

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"journal/internal/activity"
)

// Window limits records to a trailing number of days.
type Window string

const (
	WindowLast7Days Window = "last7days"
	WindowLastMonth Window = "lastMonth"
	WindowAll       Window = "all"
)

// Windows lists the windows in the order the dashboard cycles through them.
var Windows = []Window{WindowAll, WindowLastMonth, WindowLast7Days}

// ErrUnknownWindow is returned by ParseWindow for unrecognised names.
var ErrUnknownWindow = errors.New("unknown time window")

// ParseWindow resolves a window name. Matching is case-insensitive.
func ParseWindow(name string) (Window, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "all":
		return WindowAll, nil
	case "last7days", "7d", "week":
		return WindowLast7Days, nil
	case "lastmonth", "30d", "month":
		return WindowLastMonth, nil
	}
	return "", fmt.Errorf("%w: %q (must be 'all', 'lastMonth' or 'last7days')", ErrUnknownWindow, name)
}

// Threshold returns the maximum age in days of a record inside the window.
// The second value is false for WindowAll, which has no limit.
func (w Window) Threshold() (int, bool) {
	switch w {
	case WindowLast7Days:
		return 7, true
	case WindowLastMonth:
		return 30, true
	}
	return 0, false
}

// Next returns the window that follows w when cycling.
func (w Window) Next() Window {
	for i, known := range Windows {
		if known == w {
			return Windows[(i+1)%len(Windows)]
		}
	}
	return WindowAll
}

// Label returns a human readable name.
func (w Window) Label() string {
	switch w {
	case WindowLast7Days:
		return "Last 7 days"
	case WindowLastMonth:
		return "Last month"
	}
	return "All time"
}

// Filter holds the live selections of the dashboard. It is never modified
// by this package.
type Filter struct {
	Categories activity.CategorySet `json:"categories"`
	Window     Window               `json:"window"`
}

// DefaultFilter selects every category over all time.
func DefaultFilter() Filter {
	return Filter{Categories: activity.FullCategorySet(), Window: WindowAll}
}

// Apply returns the records that belong to an active category and fall
// inside the window relative to today. Records without a usable date are
// always dropped. Input order is preserved.
func (f Filter) Apply(records []activity.Record, today time.Time) []activity.Record {
	if f.Categories.IsEmpty() {
		return nil
	}

	threshold, limited := f.Window.Threshold()
	day := activity.Day(today)

	var filtered []activity.Record
	for _, r := range records {
		if !f.Categories.Has(r.Category()) || r.Date.IsZero() {
			continue
		}
		if limited && daysBetween(activity.Day(r.Date), day) > threshold {
			continue
		}
		filtered = append(filtered, r)
	}
	return filtered
}

// daysBetween counts whole days from a to b; negative when a is after b.
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}
