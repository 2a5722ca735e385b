// Package journal reads the journal file: one table of entries per
// category, stored as JSON or YAML.
package journal

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"journal/internal/activity"
)

// Entry is the stored shape of a record. Which fields are used depends on
// the table the entry sits in.
type Entry struct {
	ID              int      `json:"id" yaml:"id"`
	Date            string   `json:"date" yaml:"date"`
	Title           string   `json:"title,omitempty" yaml:"title,omitempty"`
	Author          string   `json:"author,omitempty" yaml:"author,omitempty"`
	Director        string   `json:"director,omitempty" yaml:"director,omitempty"`
	Singer          string   `json:"singer,omitempty" yaml:"singer,omitempty"`
	Venue           string   `json:"venue,omitempty" yaml:"venue,omitempty"`
	SportType       string   `json:"sport_type,omitempty" yaml:"sport_type,omitempty"`
	DurationMinutes int      `json:"duration_minutes,omitempty" yaml:"duration_minutes,omitempty"`
	DistanceKm      *float64 `json:"distance_km,omitempty" yaml:"distance_km,omitempty"`
	LeisureType     string   `json:"leisure_type,omitempty" yaml:"leisure_type,omitempty"`
	Rating          int      `json:"rating,omitempty" yaml:"rating,omitempty"`
	Tags            []string `json:"tags,omitempty" yaml:"tags,omitempty"`
	Notes           string   `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// Tables maps a table name (a category or one of its aliases) to its entries.
type Tables map[string][]Entry

// Skipped describes an entry that could not be turned into a record.
type Skipped struct {
	Table string
	Index int
	Err   error
}

func (s Skipped) Error() string {
	if s.Index < 0 {
		return fmt.Sprintf("%s: %v", s.Table, s.Err)
	}
	return fmt.Sprintf("%s[%d]: %v", s.Table, s.Index, s.Err)
}

func (s Skipped) Unwrap() error {
	return s.Err
}

// Journal is the loaded content of a journal file.
type Journal struct {
	Path    string
	Records []activity.Record
	Skipped []Skipped
}

// Load reads and decodes the journal file at path. The format is chosen
// from the extension: .yaml and .yml are YAML, anything else is JSON.
func Load(path string) (*Journal, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read journal file: %w", err)
	}

	tables, err := Decode(data, formatOf(path))
	if err != nil {
		return nil, fmt.Errorf("failed to parse journal file %s: %w", path, err)
	}

	records, skipped := tables.Records()
	return &Journal{
		Path:    path,
		Records: records,
		Skipped: skipped,
	}, nil
}

// Format identifies the encoding of a journal file.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

func formatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

// Decode parses raw journal content.
func Decode(data []byte, format Format) (Tables, error) {
	var tables Tables
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &tables); err != nil {
			return nil, err
		}
	default:
		if err := json.Unmarshal(data, &tables); err != nil {
			return nil, err
		}
	}
	return tables, nil
}

// Records converts every table into records, newest first. Entries that
// fail validation are reported instead of aborting the whole load.
func (t Tables) Records() ([]activity.Record, []Skipped) {
	var records []activity.Record
	var skipped []Skipped

	// Map iteration order is random; walk tables in a fixed order so the
	// result only depends on the file content.
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		category, err := activity.ParseCategory(name)
		if err != nil {
			skipped = append(skipped, Skipped{Table: name, Index: -1, Err: err})
			continue
		}
		for i, entry := range t[name] {
			r, err := entry.Record(category)
			if err != nil {
				skipped = append(skipped, Skipped{Table: name, Index: i, Err: err})
				continue
			}
			records = append(records, r)
		}
	}

	activity.SortNewestFirst(records)
	return records, skipped
}

// Record builds the typed record for an entry of the given category. An
// unreadable date leaves the record undated rather than failing.
func (e Entry) Record(category activity.Category) (activity.Record, error) {
	var details activity.Details
	switch category {
	case activity.CategoryReading:
		details = activity.Reading{Title: e.Title, Author: e.Author, Rating: e.Rating, Tags: e.Tags}
	case activity.CategoryFilm:
		details = activity.Film{Title: e.Title, Director: e.Director, Rating: e.Rating, Tags: e.Tags}
	case activity.CategoryExercise:
		details = activity.Exercise{
			Sport:           activity.SportType(e.SportType),
			DurationMinutes: e.DurationMinutes,
			DistanceKm:      e.DistanceKm,
		}
	case activity.CategoryConcert:
		details = activity.Concert{Singer: e.Singer, Venue: e.Venue, Rating: e.Rating, Tags: e.Tags}
	case activity.CategoryLeisure:
		details = activity.Leisure{Kind: activity.LeisureType(e.LeisureType), Title: e.Title, Rating: e.Rating}
	default:
		return activity.Record{}, fmt.Errorf("%w: %q", activity.ErrUnknownCategory, category)
	}

	return activity.New(e.ID, ParseDate(e.Date), e.Notes, details)
}

// ParseDate reads a calendar date (YYYY-MM-DD) or an RFC 3339 timestamp.
// It returns the zero time when neither layout matches.
func ParseDate(value string) time.Time {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(activity.DateLayout, value); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t
	}
	return time.Time{}
}
