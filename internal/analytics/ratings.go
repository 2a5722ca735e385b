package analytics

import "journal/internal/activity"

// RatingAverages returns the mean rating of each ratable active category.
// Unrated records are left out of both sum and count, and a category with
// nothing to average has no entry at all.
func RatingAverages(filtered []activity.Record, categories activity.CategorySet) map[activity.Category]float64 {
	sums := make(map[activity.Category]int)
	counts := make(map[activity.Category]int)

	for _, r := range filtered {
		c := r.Category()
		if !c.Ratable() || !categories.Has(c) {
			continue
		}
		rating, ok := r.Rating()
		if !ok {
			continue
		}
		sums[c] += rating
		counts[c]++
	}

	averages := make(map[activity.Category]float64, len(counts))
	for c, n := range counts {
		averages[c] = float64(sums[c]) / float64(n)
	}
	return averages
}
