package analytics

import (
	"time"

	"journal/internal/activity"
)

// Engine exposes the dashboard views over a raw record collection. It
// keeps no state between calls; each call reads the clock at most once.
type Engine struct {
	now func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock replaces time.Now as the source of "today".
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// New creates an engine reading the wall clock unless configured otherwise.
func New(opts ...Option) *Engine {
	e := &Engine{now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Today returns the current calendar day according to the engine clock.
func (e *Engine) Today() time.Time {
	return activity.Day(e.now())
}

// Summarize counts the filtered records per category.
func (e *Engine) Summarize(records []activity.Record, f Filter) Summary {
	return Summarize(f.Apply(records, e.Today()))
}

// Breakdown ranks the sub-keys of the single active category. It reports
// false when the filter does not select exactly one category.
func (e *Engine) Breakdown(records []activity.Record, f Filter) (Breakdown, bool) {
	if f.Categories.Len() != 1 {
		return Breakdown{}, false
	}
	return BuildBreakdown(f.Apply(records, e.Today()), f.Categories)
}

// Evolution buckets the filtered records by month of today's year.
func (e *Engine) Evolution(records []activity.Record, f Filter, today time.Time) Series {
	return BuildEvolution(f.Apply(records, today), f.Categories, today)
}

// RatingAverages returns the mean rating per ratable active category.
func (e *Engine) RatingAverages(records []activity.Record, f Filter) map[activity.Category]float64 {
	return RatingAverages(f.Apply(records, e.Today()), f.Categories)
}

// Dashboard is a consistent snapshot of every view for one filter and day.
type Dashboard struct {
	Today     time.Time                     `json:"today"`
	Filter    Filter                        `json:"filter"`
	Filtered  []activity.Record             `json:"records"`
	Summary   Summary                       `json:"summary"`
	Breakdown *Breakdown                    `json:"breakdown,omitempty"`
	Evolution Series                        `json:"evolution"`
	Ratings   map[activity.Category]float64 `json:"ratings"`
}

// Snapshot computes all views from a single filtering pass.
func (e *Engine) Snapshot(records []activity.Record, f Filter) Dashboard {
	today := e.Today()
	filtered := f.Apply(records, today)

	d := Dashboard{
		Today:     today,
		Filter:    f,
		Filtered:  filtered,
		Summary:   Summarize(filtered),
		Evolution: BuildEvolution(filtered, f.Categories, today),
		Ratings:   RatingAverages(filtered, f.Categories),
	}
	if b, ok := BuildBreakdown(filtered, f.Categories); ok {
		d.Breakdown = &b
	}
	return d
}
