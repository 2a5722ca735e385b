// Package activity defines the journal record model: the five fixed
// categories and one record variant per category.
package activity

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Category represents one of the five fixed journal categories.
type Category string

const (
	CategoryReading  Category = "reading"
	CategoryFilm     Category = "film"
	CategoryExercise Category = "exercise"
	CategoryConcert  Category = "concert"
	CategoryLeisure  Category = "leisure"
)

// AllCategories lists every category in canonical display order.
var AllCategories = []Category{
	CategoryReading,
	CategoryFilm,
	CategoryExercise,
	CategoryConcert,
	CategoryLeisure,
}

// ErrUnknownCategory is returned when a category name cannot be resolved.
var ErrUnknownCategory = errors.New("unknown category")

var categoryAliases = map[string]Category{
	"reading":  CategoryReading,
	"book":     CategoryReading,
	"books":    CategoryReading,
	"film":     CategoryFilm,
	"films":    CategoryFilm,
	"movie":    CategoryFilm,
	"movies":   CategoryFilm,
	"exercise": CategoryExercise,
	"sport":    CategoryExercise,
	"sports":   CategoryExercise,
	"concert":  CategoryConcert,
	"concerts": CategoryConcert,
	"leisure":  CategoryLeisure,
	"outing":   CategoryLeisure,
	"outings":  CategoryLeisure,
	// Spanish table names
	"libros":     CategoryReading,
	"peliculas":  CategoryFilm,
	"deporte":    CategoryExercise,
	"conciertos": CategoryConcert,
	"ocio":       CategoryLeisure,
}

// ParseCategory resolves a category name or alias, case-insensitively.
func ParseCategory(name string) (Category, error) {
	if c, ok := categoryAliases[strings.ToLower(strings.TrimSpace(name))]; ok {
		return c, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, name)
}

// Ratable reports whether records of the category carry a 1-5 rating.
func (c Category) Ratable() bool {
	return c.valid() && c != CategoryExercise
}

// Label returns the capitalised display name.
func (c Category) Label() string {
	if c == "" {
		return ""
	}
	return strings.ToUpper(string(c[:1])) + string(c[1:])
}

func (c Category) valid() bool {
	return c.bit() != 0
}

func (c Category) bit() CategorySet {
	for i, known := range AllCategories {
		if known == c {
			return 1 << i
		}
	}
	return 0
}

// CategorySet is a set of categories. The zero value is the empty set.
type CategorySet uint8

// NewCategorySet builds a set from the given categories. Unknown values are ignored.
func NewCategorySet(categories ...Category) CategorySet {
	var s CategorySet
	for _, c := range categories {
		s = s.Add(c)
	}
	return s
}

// FullCategorySet returns the set holding all five categories.
func FullCategorySet() CategorySet {
	return NewCategorySet(AllCategories...)
}

// ParseCategorySet resolves a list of names into a set.
func ParseCategorySet(names []string) (CategorySet, error) {
	var s CategorySet
	for _, name := range names {
		c, err := ParseCategory(name)
		if err != nil {
			return 0, err
		}
		s = s.Add(c)
	}
	return s, nil
}

func (s CategorySet) Has(c Category) bool {
	bit := c.bit()
	return bit != 0 && s&bit != 0
}

func (s CategorySet) Add(c Category) CategorySet {
	return s | c.bit()
}

func (s CategorySet) Remove(c Category) CategorySet {
	return s &^ c.bit()
}

func (s CategorySet) Toggle(c Category) CategorySet {
	return s ^ c.bit()
}

// Len returns the number of categories in the set.
func (s CategorySet) Len() int {
	n := 0
	for _, c := range AllCategories {
		if s.Has(c) {
			n++
		}
	}
	return n
}

func (s CategorySet) IsEmpty() bool {
	return s.Len() == 0
}

// Categories returns the members in canonical order.
func (s CategorySet) Categories() []Category {
	out := make([]Category, 0, len(AllCategories))
	for _, c := range AllCategories {
		if s.Has(c) {
			out = append(out, c)
		}
	}
	return out
}

// Only returns the single member when the set holds exactly one category.
func (s CategorySet) Only() (Category, bool) {
	if s.Len() != 1 {
		return "", false
	}
	return s.Categories()[0], true
}

func (s CategorySet) String() string {
	names := make([]string, 0, len(AllCategories))
	for _, c := range s.Categories() {
		names = append(names, string(c))
	}
	return strings.Join(names, ",")
}

// MarshalJSON writes the set as a list of category names.
func (s CategorySet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Categories())
}

// UnmarshalJSON reads a list of category names.
func (s *CategorySet) UnmarshalJSON(data []byte) error {
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return err
	}
	parsed, err := ParseCategorySet(names)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
