package activity

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

// ErrInvalidRecord wraps every validation failure returned by New.
var ErrInvalidRecord = errors.New("invalid record")

// SportType is the grouping key of exercise records.
type SportType string

const (
	SportGym      SportType = "gym"
	SportRunning  SportType = "running"
	SportYoga     SportType = "yoga"
	SportPadel    SportType = "padel"
	SportSwimming SportType = "swimming"
	SportCycling  SportType = "cycling"
	SportPilates  SportType = "pilates"
	SportOther    SportType = "other"
)

var sportTypes = []SportType{
	SportGym, SportRunning, SportYoga, SportPadel,
	SportSwimming, SportCycling, SportPilates, SportOther,
}

func (s SportType) valid() bool {
	for _, known := range sportTypes {
		if s == known {
			return true
		}
	}
	return false
}

// TracksDistance reports whether a distance is meaningful for the sport.
func (s SportType) TracksDistance() bool {
	return s == SportRunning || s == SportSwimming || s == SportCycling
}

// LeisureType is the grouping key of leisure records.
type LeisureType string

const (
	LeisureTheater LeisureType = "theater"
	LeisureMuseum  LeisureType = "museum"
	LeisureClub    LeisureType = "club"
	LeisureOther   LeisureType = "other"
)

func (l LeisureType) valid() bool {
	switch l {
	case LeisureTheater, LeisureMuseum, LeisureClub, LeisureOther:
		return true
	}
	return false
}

// Details holds the category-specific fields of a record. It is implemented
// only by the five variant types of this package.
type Details interface {
	Category() Category
	validate() error
	normalize() Details
}

// Rated is implemented by variants that carry a rating.
type Rated interface {
	GetRating() int
}

// Tagged is implemented by variants that carry free-form tags.
type Tagged interface {
	GetTags() []string
}

type Reading struct {
	Title  string   `json:"title"`
	Author string   `json:"author"`
	Rating int      `json:"rating,omitempty"`
	Tags   []string `json:"tags,omitempty"`
}

type Film struct {
	Title    string   `json:"title"`
	Director string   `json:"director,omitempty"`
	Rating   int      `json:"rating,omitempty"`
	Tags     []string `json:"tags,omitempty"`
}

// Exercise records never carry a rating.
type Exercise struct {
	Sport           SportType `json:"sport_type"`
	DurationMinutes int       `json:"duration_minutes"`
	DistanceKm      *float64  `json:"distance_km,omitempty"`
}

type Concert struct {
	Singer string   `json:"singer"`
	Venue  string   `json:"venue,omitempty"`
	Rating int      `json:"rating,omitempty"`
	Tags   []string `json:"tags,omitempty"`
}

type Leisure struct {
	Kind   LeisureType `json:"leisure_type"`
	Title  string      `json:"title"`
	Rating int         `json:"rating,omitempty"`
}

func (Reading) Category() Category  { return CategoryReading }
func (Film) Category() Category     { return CategoryFilm }
func (Exercise) Category() Category { return CategoryExercise }
func (Concert) Category() Category  { return CategoryConcert }
func (Leisure) Category() Category  { return CategoryLeisure }

func (d Reading) GetRating() int { return d.Rating }
func (d Film) GetRating() int    { return d.Rating }
func (d Concert) GetRating() int { return d.Rating }
func (d Leisure) GetRating() int { return d.Rating }

func (d Reading) GetTags() []string { return d.Tags }
func (d Film) GetTags() []string    { return d.Tags }
func (d Concert) GetTags() []string { return d.Tags }

func (d Reading) validate() error {
	if err := required("title", d.Title); err != nil {
		return err
	}
	if err := required("author", d.Author); err != nil {
		return err
	}
	return checkRating(d.Rating)
}

func (d Film) validate() error {
	if err := required("title", d.Title); err != nil {
		return err
	}
	return checkRating(d.Rating)
}

func (d Exercise) validate() error {
	if !d.Sport.valid() {
		return fmt.Errorf("unknown sport type %q", d.Sport)
	}
	if d.DurationMinutes < 0 {
		return fmt.Errorf("duration must not be negative, got %d", d.DurationMinutes)
	}
	if d.DistanceKm != nil && *d.DistanceKm < 0 {
		return fmt.Errorf("distance must not be negative, got %g", *d.DistanceKm)
	}
	return nil
}

func (d Concert) validate() error {
	if err := required("singer", d.Singer); err != nil {
		return err
	}
	return checkRating(d.Rating)
}

func (d Leisure) validate() error {
	if !d.Kind.valid() {
		return fmt.Errorf("unknown leisure type %q", d.Kind)
	}
	if err := required("title", d.Title); err != nil {
		return err
	}
	return checkRating(d.Rating)
}

func (d Reading) normalize() Details {
	d.Title, d.Author = strings.TrimSpace(d.Title), strings.TrimSpace(d.Author)
	d.Tags = normalizeTags(d.Tags)
	return d
}

func (d Film) normalize() Details {
	d.Title, d.Director = strings.TrimSpace(d.Title), strings.TrimSpace(d.Director)
	d.Tags = normalizeTags(d.Tags)
	return d
}

func (d Exercise) normalize() Details {
	d.Sport = SportType(strings.ToLower(strings.TrimSpace(string(d.Sport))))
	return d
}

func (d Concert) normalize() Details {
	d.Singer, d.Venue = strings.TrimSpace(d.Singer), strings.TrimSpace(d.Venue)
	d.Tags = normalizeTags(d.Tags)
	return d
}

func (d Leisure) normalize() Details {
	d.Kind = LeisureType(strings.ToLower(strings.TrimSpace(string(d.Kind))))
	d.Title = strings.TrimSpace(d.Title)
	return d
}

func required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s is required", field)
	}
	return nil
}

// checkRating accepts 0 for unrated legacy entries.
func checkRating(rating int) error {
	if rating < 0 || rating > 5 {
		return fmt.Errorf("rating must be between 1 and 5, got %d", rating)
	}
	return nil
}

// normalizeTags treats tags as a set: blanks and repeats are dropped,
// first-seen order is kept.
func normalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Record is a single journal entry. A zero Date marks an entry whose date
// could not be read; such records never pass a filter.
type Record struct {
	ID      int
	Date    time.Time
	Notes   string
	Details Details
}

// DateLayout is the calendar-date layout used by journal files and output.
const DateLayout = "2006-01-02"

// MarshalJSON writes the record with its category and a calendar date.
func (r Record) MarshalJSON() ([]byte, error) {
	var date string
	if !r.Date.IsZero() {
		date = r.Date.Format(DateLayout)
	}
	return json.Marshal(struct {
		ID       int      `json:"id"`
		Category Category `json:"category"`
		Date     string   `json:"date,omitempty"`
		Notes    string   `json:"notes,omitempty"`
		Details  Details  `json:"details"`
	}{r.ID, r.Category(), date, r.Notes, r.Details})
}

// New validates details and builds a record.
func New(id int, date time.Time, notes string, details Details) (Record, error) {
	if details == nil {
		return Record{}, fmt.Errorf("%w: missing details", ErrInvalidRecord)
	}
	details = details.normalize()
	if err := details.validate(); err != nil {
		return Record{}, fmt.Errorf("%w: %s #%d: %v", ErrInvalidRecord, details.Category(), id, err)
	}
	if !date.IsZero() {
		date = Day(date)
	}
	return Record{
		ID:      id,
		Date:    date,
		Notes:   strings.TrimSpace(notes),
		Details: details,
	}, nil
}

// Category returns the discriminant of the record.
func (r Record) Category() Category {
	if r.Details == nil {
		return ""
	}
	return r.Details.Category()
}

// Rating returns the record's rating; false for exercise and unrated entries.
func (r Record) Rating() (int, bool) {
	rated, ok := r.Details.(Rated)
	if !ok || rated.GetRating() <= 0 {
		return 0, false
	}
	return rated.GetRating(), true
}

// Tags returns the record's tags, nil for categories without tags.
func (r Record) Tags() []string {
	if tagged, ok := r.Details.(Tagged); ok {
		return tagged.GetTags()
	}
	return nil
}

// DisplayTitle returns the line shown for the record in history lists.
func (r Record) DisplayTitle() string {
	switch d := r.Details.(type) {
	case Reading:
		return d.Title
	case Film:
		return d.Title
	case Exercise:
		return string(d.Sport)
	case Concert:
		return d.Singer
	case Leisure:
		if d.Title != "" {
			return d.Title
		}
		return string(d.Kind)
	}
	return ""
}

// Day truncates t to midnight UTC of its calendar day.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SortNewestFirst orders records by date, most recent first. Records
// sharing a date keep their relative order.
func SortNewestFirst(records []Record) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Date.After(records[j].Date)
	})
}

// GroupByCategory groups records by their category
func GroupByCategory(records []Record) map[Category][]Record {
	groups := make(map[Category][]Record)
	for _, r := range records {
		groups[r.Category()] = append(groups[r.Category()], r)
	}
	return groups
}
