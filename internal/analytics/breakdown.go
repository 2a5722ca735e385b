package analytics

import (
	"sort"

	"journal/internal/activity"
)

// BreakdownEntry is one bar of the detail ranking.
type BreakdownEntry struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// Breakdown ranks the sub-keys of a single category by frequency.
type Breakdown struct {
	Category activity.Category `json:"category"`
	Entries  []BreakdownEntry  `json:"entries"`
}

// Sum adds up every entry count. For tag based categories this can exceed
// the number of records.
func (b Breakdown) Sum() int {
	total := 0
	for _, e := range b.Entries {
		total += e.Count
	}
	return total
}

// BuildBreakdown groups the filtered records of the only active category by
// its sub-key: sport type for exercise, leisure type for leisure and each
// tag for reading, film and concert. It reports false when the active set
// does not hold exactly one category.
func BuildBreakdown(filtered []activity.Record, categories activity.CategorySet) (Breakdown, bool) {
	category, ok := categories.Only()
	if !ok {
		return Breakdown{}, false
	}

	counts := make(map[string]int)
	var order []string
	add := func(key string) {
		if key == "" {
			return
		}
		if _, seen := counts[key]; !seen {
			order = append(order, key)
		}
		counts[key]++
	}

	for _, r := range filtered {
		if r.Category() != category {
			continue
		}
		for _, key := range groupingKeys(r) {
			add(key)
		}
	}

	entries := make([]BreakdownEntry, 0, len(order))
	for _, key := range order {
		entries = append(entries, BreakdownEntry{Key: key, Count: counts[key]})
	}
	// Stable so equal counts keep first-encountered order.
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})

	return Breakdown{Category: category, Entries: entries}, true
}

func groupingKeys(r activity.Record) []string {
	switch d := r.Details.(type) {
	case activity.Exercise:
		return []string{string(d.Sport)}
	case activity.Leisure:
		return []string{string(d.Kind)}
	}
	return r.Tags()
}
