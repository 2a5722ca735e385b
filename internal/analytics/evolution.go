package analytics

import (
	"time"

	"journal/internal/activity"
)

// MonthSlot holds the per-category counts of one calendar month.
type MonthSlot struct {
	Month  time.Month                `json:"month"`
	Label  string                    `json:"label"`
	Counts map[activity.Category]int `json:"counts"`
}

// HasData reports whether any category counted a record in the month.
func (m MonthSlot) HasData() bool {
	for _, n := range m.Counts {
		if n > 0 {
			return true
		}
	}
	return false
}

// Series is the monthly evolution chart of the current year, one line per
// active category.
type Series struct {
	Year       int                 `json:"year"`
	Categories []activity.Category `json:"categories"`
	Months     []MonthSlot         `json:"months"`
}

// Values returns the counts of c, one per month slot.
func (s Series) Values(c activity.Category) []int {
	values := make([]int, len(s.Months))
	for i, m := range s.Months {
		values[i] = m.Counts[c]
	}
	return values
}

// Max returns the highest count in the series.
func (s Series) Max() int {
	highest := 0
	for _, m := range s.Months {
		for _, n := range m.Counts {
			highest = max(highest, n)
		}
	}
	return highest
}

// BuildEvolution buckets the filtered records into the months of today's
// year. Records are matched on month index only, so entries from another
// year land in the same bucket as this year's month. The series never runs
// past today's month, and months after the last month with data are
// trimmed; without any data a single January slot is returned so charts
// always have one point.
func BuildEvolution(filtered []activity.Record, categories activity.CategorySet, today time.Time) Series {
	active := categories.Categories()
	series := Series{Year: today.Year(), Categories: active}

	slots := make([]MonthSlot, 12)
	for i := range slots {
		month := time.Month(i + 1)
		slots[i] = MonthSlot{
			Month:  month,
			Label:  month.String()[:3],
			Counts: make(map[activity.Category]int, len(active)),
		}
		for _, c := range active {
			slots[i].Counts[c] = 0
		}
	}

	for _, r := range filtered {
		if r.Date.IsZero() || !categories.Has(r.Category()) {
			continue
		}
		slots[r.Date.Month()-1].Counts[r.Category()]++
	}

	last := 0
	for i := int(today.Month()) - 1; i >= 0; i-- {
		if slots[i].HasData() {
			last = i
			break
		}
	}

	series.Months = slots[:last+1]
	return series
}
