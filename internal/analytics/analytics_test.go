package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"journal/internal/activity"
)

func day(m time.Month, d int) time.Time {
	return time.Date(2024, m, d, 0, 0, 0, 0, time.UTC)
}

func mustRecord(t *testing.T, id int, date time.Time, details activity.Details) activity.Record {
	t.Helper()
	r, err := activity.New(id, date, "", details)
	require.NoError(t, err)
	return r
}

// scenarioRecords is the two-readings-and-a-workout journal used across tests.
func scenarioRecords(t *testing.T) []activity.Record {
	return []activity.Record{
		mustRecord(t, 1, day(time.March, 5), activity.Reading{Title: "A", Author: "X", Rating: 4, Tags: []string{"Drama"}}),
		mustRecord(t, 2, day(time.March, 20), activity.Reading{Title: "B", Author: "Y", Rating: 2, Tags: []string{"Drama", "Comedy"}}),
		mustRecord(t, 3, day(time.April, 1), activity.Exercise{Sport: activity.SportGym, DurationMinutes: 30}),
	}
}

func fixedClock(t time.Time) Option {
	return WithClock(func() time.Time { return t })
}

func TestParseWindow(t *testing.T) {
	tests := []struct {
		input    string
		expected Window
		hasError bool
	}{
		{input: "all", expected: WindowAll},
		{input: "", expected: WindowAll},
		{input: "last7days", expected: WindowLast7Days},
		{input: "7d", expected: WindowLast7Days},
		{input: "lastMonth", expected: WindowLastMonth},
		{input: "MONTH", expected: WindowLastMonth},
		{input: "yesterday", hasError: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseWindow(tt.input)
			if tt.hasError {
				assert.ErrorIs(t, err, ErrUnknownWindow)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestWindow_Next(t *testing.T) {
	assert.Equal(t, WindowLastMonth, WindowAll.Next())
	assert.Equal(t, WindowLast7Days, WindowLastMonth.Next())
	assert.Equal(t, WindowAll, WindowLast7Days.Next())
}

func TestFilter_Apply(t *testing.T) {
	today := time.Date(2024, time.April, 15, 21, 45, 0, 0, time.UTC)
	records := []activity.Record{
		mustRecord(t, 1, day(time.April, 8), activity.Film{Title: "seven days ago"}),
		mustRecord(t, 2, day(time.April, 7), activity.Film{Title: "eight days ago"}),
		mustRecord(t, 3, day(time.March, 16), activity.Film{Title: "thirty days ago"}),
		mustRecord(t, 4, day(time.March, 15), activity.Film{Title: "thirty-one days ago"}),
		mustRecord(t, 5, day(time.April, 20), activity.Film{Title: "future"}),
		mustRecord(t, 6, time.Time{}, activity.Film{Title: "undated"}),
		mustRecord(t, 7, day(time.April, 15), activity.Exercise{Sport: activity.SportYoga, DurationMinutes: 20}),
	}

	ids := func(rs []activity.Record) []int {
		out := make([]int, 0, len(rs))
		for _, r := range rs {
			out = append(out, r.ID)
		}
		return out
	}

	tests := []struct {
		name     string
		filter   Filter
		expected []int
	}{
		{
			name:     "all time keeps every dated record",
			filter:   Filter{Categories: activity.FullCategorySet(), Window: WindowAll},
			expected: []int{1, 2, 3, 4, 5, 7},
		},
		{
			name:     "last 7 days is inclusive",
			filter:   Filter{Categories: activity.FullCategorySet(), Window: WindowLast7Days},
			expected: []int{1, 5, 7},
		},
		{
			name:     "last month is inclusive",
			filter:   Filter{Categories: activity.FullCategorySet(), Window: WindowLastMonth},
			expected: []int{1, 2, 3, 5, 7},
		},
		{
			name:     "category filter",
			filter:   Filter{Categories: activity.NewCategorySet(activity.CategoryExercise), Window: WindowAll},
			expected: []int{7},
		},
		{
			name:     "empty category set",
			filter:   Filter{Window: WindowAll},
			expected: []int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ids(tt.filter.Apply(records, today)))
		})
	}
}

func TestSummarize(t *testing.T) {
	distance := 5.5
	records := append(scenarioRecords(t),
		mustRecord(t, 4, day(time.April, 2), activity.Exercise{Sport: activity.SportRunning, DurationMinutes: 45, DistanceKm: &distance}),
	)

	summary := Summarize(records)

	require.Len(t, summary.Counts, 5)
	for i, c := range activity.AllCategories {
		assert.Equal(t, c, summary.Counts[i].Category)
	}
	assert.Equal(t, 2, summary.Count(activity.CategoryReading))
	assert.Equal(t, 2, summary.Count(activity.CategoryExercise))
	assert.Equal(t, 0, summary.Count(activity.CategoryConcert))
	assert.Equal(t, 4, summary.Total)
	assert.Equal(t, 75, summary.ExerciseMinutes)
	assert.InDelta(t, 5.5, summary.ExerciseDistanceKm, 1e-9)
}

func TestSummarize_Empty(t *testing.T) {
	summary := Summarize(nil)

	assert.Len(t, summary.Counts, 5)
	assert.Zero(t, summary.Total)
	assert.Zero(t, summary.ExerciseMinutes)
}

func TestBuildBreakdown_NotApplicable(t *testing.T) {
	records := scenarioRecords(t)

	_, ok := BuildBreakdown(records, activity.NewCategorySet(activity.CategoryReading, activity.CategoryFilm))
	assert.False(t, ok)

	_, ok = BuildBreakdown(records, 0)
	assert.False(t, ok)
}

func TestBuildBreakdown_Tags(t *testing.T) {
	b, ok := BuildBreakdown(scenarioRecords(t), activity.NewCategorySet(activity.CategoryReading))
	require.True(t, ok)

	assert.Equal(t, activity.CategoryReading, b.Category)
	assert.Equal(t, []BreakdownEntry{{Key: "Drama", Count: 2}, {Key: "Comedy", Count: 1}}, b.Entries)
	assert.Equal(t, 3, b.Sum())
}

func TestBuildBreakdown_TiesKeepFirstSeenOrder(t *testing.T) {
	records := []activity.Record{
		mustRecord(t, 1, day(time.May, 1), activity.Exercise{Sport: activity.SportYoga}),
		mustRecord(t, 2, day(time.May, 2), activity.Exercise{Sport: activity.SportPadel}),
		mustRecord(t, 3, day(time.May, 3), activity.Exercise{Sport: activity.SportGym}),
		mustRecord(t, 4, day(time.May, 4), activity.Exercise{Sport: activity.SportGym}),
		mustRecord(t, 5, day(time.May, 5), activity.Exercise{Sport: activity.SportPadel}),
	}

	b, ok := BuildBreakdown(records, activity.NewCategorySet(activity.CategoryExercise))
	require.True(t, ok)

	assert.Equal(t, []BreakdownEntry{
		{Key: "padel", Count: 2},
		{Key: "gym", Count: 2},
		{Key: "yoga", Count: 1},
	}, b.Entries)
}

func TestBuildBreakdown_Leisure(t *testing.T) {
	records := []activity.Record{
		mustRecord(t, 1, day(time.May, 1), activity.Leisure{Kind: activity.LeisureMuseum, Title: "Prado"}),
		mustRecord(t, 2, day(time.May, 2), activity.Leisure{Kind: activity.LeisureTheater, Title: "Hamlet"}),
		mustRecord(t, 3, day(time.May, 3), activity.Leisure{Kind: activity.LeisureTheater, Title: "Yerma"}),
	}

	b, ok := BuildBreakdown(records, activity.NewCategorySet(activity.CategoryLeisure))
	require.True(t, ok)

	assert.Equal(t, []BreakdownEntry{{Key: "theater", Count: 2}, {Key: "museum", Count: 1}}, b.Entries)
}

func TestBuildBreakdown_EmptySet(t *testing.T) {
	b, ok := BuildBreakdown(nil, activity.NewCategorySet(activity.CategoryFilm))
	require.True(t, ok)
	assert.Empty(t, b.Entries)
	assert.Zero(t, b.Sum())
}

func TestBuildEvolution_TrimsTrailingEmptyMonths(t *testing.T) {
	today := day(time.April, 15)
	categories := activity.NewCategorySet(activity.CategoryReading)
	filtered := Filter{Categories: categories, Window: WindowAll}.Apply(scenarioRecords(t), today)

	series := BuildEvolution(filtered, categories, today)

	assert.Equal(t, 2024, series.Year)
	assert.Equal(t, []activity.Category{activity.CategoryReading}, series.Categories)
	require.Len(t, series.Months, 3)
	assert.Equal(t, "Jan", series.Months[0].Label)
	assert.Equal(t, "Mar", series.Months[2].Label)
	assert.Equal(t, []int{0, 0, 2}, series.Values(activity.CategoryReading))
	assert.Equal(t, 2, series.Max())
}

func TestBuildEvolution_NoDataKeepsJanuary(t *testing.T) {
	categories := activity.NewCategorySet(activity.CategoryFilm, activity.CategoryConcert)

	series := BuildEvolution(nil, categories, day(time.October, 1))

	require.Len(t, series.Months, 1)
	assert.Equal(t, time.January, series.Months[0].Month)
	assert.False(t, series.Months[0].HasData())
	assert.Equal(t, map[activity.Category]int{activity.CategoryFilm: 0, activity.CategoryConcert: 0}, series.Months[0].Counts)
}

func TestBuildEvolution_MergesYearsByMonthIndex(t *testing.T) {
	categories := activity.NewCategorySet(activity.CategoryFilm)
	records := []activity.Record{
		mustRecord(t, 1, time.Date(2023, time.June, 3, 0, 0, 0, 0, time.UTC), activity.Film{Title: "last year"}),
		mustRecord(t, 2, day(time.June, 9), activity.Film{Title: "this year"}),
		mustRecord(t, 3, time.Date(2023, time.November, 9, 0, 0, 0, 0, time.UTC), activity.Film{Title: "late last year"}),
	}

	series := BuildEvolution(records, categories, day(time.July, 1))

	require.Len(t, series.Months, 6)
	values := series.Values(activity.CategoryFilm)
	assert.Equal(t, 2, values[5])
}

func TestBuildEvolution_StopsAtCurrentMonth(t *testing.T) {
	categories := activity.NewCategorySet(activity.CategoryFilm)
	records := []activity.Record{
		mustRecord(t, 1, time.Date(2023, time.November, 9, 0, 0, 0, 0, time.UTC), activity.Film{Title: "late last year"}),
		mustRecord(t, 2, day(time.July, 1), activity.Film{Title: "this month"}),
	}

	series := BuildEvolution(records, categories, day(time.July, 1))

	require.Len(t, series.Months, 7)
	assert.Equal(t, time.January, series.Months[0].Month)
	assert.Equal(t, time.July, series.Months[6].Month)
	assert.Equal(t, []int{0, 0, 0, 0, 0, 0, 1}, series.Values(activity.CategoryFilm))
}

func TestBuildEvolution_OnlyLaterMonthsKeepsJanuary(t *testing.T) {
	categories := activity.NewCategorySet(activity.CategoryFilm)
	records := []activity.Record{
		mustRecord(t, 1, time.Date(2023, time.November, 9, 0, 0, 0, 0, time.UTC), activity.Film{Title: "late last year"}),
	}

	series := BuildEvolution(records, categories, day(time.July, 1))

	require.Len(t, series.Months, 1)
	assert.Equal(t, time.January, series.Months[0].Month)
	assert.False(t, series.Months[0].HasData())
}

func TestBuildEvolution_IgnoresInactiveCategories(t *testing.T) {
	categories := activity.NewCategorySet(activity.CategoryReading)

	series := BuildEvolution(scenarioRecords(t), categories, day(time.December, 1))

	require.Len(t, series.Months, 3)
	for _, m := range series.Months {
		_, present := m.Counts[activity.CategoryExercise]
		assert.False(t, present)
	}
}

func TestRatingAverages(t *testing.T) {
	records := append(scenarioRecords(t),
		mustRecord(t, 4, day(time.May, 1), activity.Film{Title: "unrated"}),
		mustRecord(t, 5, day(time.May, 2), activity.Concert{Singer: "C", Rating: 5}),
	)

	averages := RatingAverages(records, activity.FullCategorySet())

	assert.Equal(t, map[activity.Category]float64{
		activity.CategoryReading: 3.0,
		activity.CategoryConcert: 5.0,
	}, averages)
	_, hasFilm := averages[activity.CategoryFilm]
	assert.False(t, hasFilm)
	_, hasExercise := averages[activity.CategoryExercise]
	assert.False(t, hasExercise)
}

func TestRatingAverages_OnlyActiveCategories(t *testing.T) {
	records := []activity.Record{
		mustRecord(t, 1, day(time.May, 1), activity.Concert{Singer: "C", Rating: 5}),
		mustRecord(t, 2, day(time.May, 2), activity.Leisure{Kind: activity.LeisureClub, Title: "L", Rating: 1}),
	}

	averages := RatingAverages(records, activity.NewCategorySet(activity.CategoryLeisure))

	assert.Equal(t, map[activity.Category]float64{activity.CategoryLeisure: 1.0}, averages)
}

func TestEngine_Scenario(t *testing.T) {
	today := day(time.April, 15)
	engine := New(fixedClock(today))
	records := scenarioRecords(t)
	filter := Filter{Categories: activity.NewCategorySet(activity.CategoryReading), Window: WindowAll}

	summary := engine.Summarize(records, filter)
	assert.Equal(t, 2, summary.Count(activity.CategoryReading))
	assert.Equal(t, 2, summary.Total)
	assert.Equal(t, 0, summary.ExerciseMinutes)

	b, ok := engine.Breakdown(records, filter)
	require.True(t, ok)
	assert.Equal(t, []BreakdownEntry{{Key: "Drama", Count: 2}, {Key: "Comedy", Count: 1}}, b.Entries)

	assert.Equal(t, map[activity.Category]float64{activity.CategoryReading: 3.0}, engine.RatingAverages(records, filter))

	series := engine.Evolution(records, filter, today)
	assert.Equal(t, []int{0, 0, 2}, series.Values(activity.CategoryReading))
}

func TestEngine_AllRecordsOutsideWindow(t *testing.T) {
	engine := New(fixedClock(day(time.August, 1)))
	records := scenarioRecords(t)
	filter := Filter{Categories: activity.FullCategorySet(), Window: WindowLastMonth}

	summary := engine.Summarize(records, filter)
	assert.Zero(t, summary.Total)
	for _, cc := range summary.Counts {
		assert.Zero(t, cc.Count, cc.Category)
	}

	_, ok := engine.Breakdown(records, filter)
	assert.False(t, ok)

	single := Filter{Categories: activity.NewCategorySet(activity.CategoryReading), Window: WindowLastMonth}
	b, ok := engine.Breakdown(records, single)
	require.True(t, ok)
	assert.Empty(t, b.Entries)

	assert.Empty(t, engine.RatingAverages(records, filter))
}

func TestEngine_SummaryTotalMatchesActiveCategories(t *testing.T) {
	engine := New(fixedClock(day(time.April, 15)))
	records := scenarioRecords(t)

	for _, c := range activity.AllCategories {
		set := activity.NewCategorySet(c)
		expected := 0
		for _, r := range records {
			if set.Has(r.Category()) {
				expected++
			}
		}
		summary := engine.Summarize(records, Filter{Categories: set, Window: WindowAll})
		assert.Equal(t, expected, summary.Total, c)
	}
}

func TestEngine_Snapshot(t *testing.T) {
	engine := New(fixedClock(time.Date(2024, time.April, 15, 9, 0, 0, 0, time.UTC)))

	d := engine.Snapshot(scenarioRecords(t), DefaultFilter())

	assert.Equal(t, day(time.April, 15), d.Today)
	assert.Len(t, d.Filtered, 3)
	assert.Equal(t, 3, d.Summary.Total)
	assert.Equal(t, 30, d.Summary.ExerciseMinutes)
	assert.Nil(t, d.Breakdown)
	require.Len(t, d.Evolution.Months, 4)
	assert.Equal(t, []int{0, 0, 0, 1}, d.Evolution.Values(activity.CategoryExercise))
	assert.Equal(t, map[activity.Category]float64{activity.CategoryReading: 3.0}, d.Ratings)

	single := Filter{Categories: activity.NewCategorySet(activity.CategoryExercise), Window: WindowAll}
	d = engine.Snapshot(scenarioRecords(t), single)
	require.NotNil(t, d.Breakdown)
	assert.Equal(t, []BreakdownEntry{{Key: "gym", Count: 1}}, d.Breakdown.Entries)
}
