package analytics

import "journal/internal/activity"

// CategoryCount is one slice of the category chart.
type CategoryCount struct {
	Category activity.Category `json:"category"`
	Count    int               `json:"count"`
}

// Summary counts filtered records per category. Counts always holds all
// five categories in canonical order, including empty ones.
type Summary struct {
	Counts             []CategoryCount `json:"counts"`
	Total              int             `json:"total"`
	ExerciseMinutes    int             `json:"exercise_minutes"`
	ExerciseDistanceKm float64         `json:"exercise_distance_km"`
}

// Count returns the number of records counted for c.
func (s Summary) Count(c activity.Category) int {
	for _, cc := range s.Counts {
		if cc.Category == c {
			return cc.Count
		}
	}
	return 0
}

// Summarize builds the category summary of an already filtered set.
func Summarize(filtered []activity.Record) Summary {
	counts := make(map[activity.Category]int, len(activity.AllCategories))
	var summary Summary

	for _, r := range filtered {
		counts[r.Category()]++
		if ex, ok := r.Details.(activity.Exercise); ok {
			summary.ExerciseMinutes += ex.DurationMinutes
			if ex.DistanceKm != nil {
				summary.ExerciseDistanceKm += *ex.DistanceKm
			}
		}
	}

	summary.Counts = make([]CategoryCount, 0, len(activity.AllCategories))
	for _, c := range activity.AllCategories {
		summary.Counts = append(summary.Counts, CategoryCount{Category: c, Count: counts[c]})
	}
	summary.Total = len(filtered)
	return summary
}
