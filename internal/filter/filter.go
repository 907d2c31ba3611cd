// Package filter implements the in-memory multi-facet filtering shared by the
// admin list endpoints (reviews, offers, content flags, retainer contracts,
// promotional videos). Each screen declares a Definition with its searchable
// fields and facet predicates; applying a State narrows the record list with a
// logical AND across the free-text search and every facet.
package filter

import (
	"strconv"
	"strings"
)

// All is the reserved facet value meaning "no restriction on this facet".
const All = "all"

// State holds the user-selected filter values for one screen.
// The zero value of every facet is the All sentinel, which matches everything.
type State struct {
	Search string
	Facets map[string]string
}

// NewState builds the identity state for the supplied facet names.
func NewState(facets ...string) State {
	values := make(map[string]string, len(facets))
	for _, name := range facets {
		values[name] = All
	}
	return State{Facets: values}
}

// Facet returns the selected value for a facet, defaulting to All.
func (s State) Facet(name string) string {
	if s.Facets == nil {
		return All
	}
	value, ok := s.Facets[name]
	if !ok || value == "" {
		return All
	}
	return value
}

// Set records a facet selection, treating empty as All.
func (s *State) Set(name, value string) {
	if s.Facets == nil {
		s.Facets = make(map[string]string)
	}
	if value == "" {
		value = All
	}
	s.Facets[name] = value
}

// HasActive reports whether any facet or the search term narrows the result.
func (s State) HasActive() bool {
	if strings.TrimSpace(s.Search) != "" {
		return true
	}
	for _, value := range s.Facets {
		if value != All && value != "" {
			return true
		}
	}
	return false
}

// Clear resets the search term and every facet to the All sentinel in one step.
func (s *State) Clear() {
	s.Search = ""
	for name := range s.Facets {
		s.Facets[name] = All
	}
}

// Predicate evaluates one facet selection against a record. It is only invoked
// for selections other than the All sentinel.
type Predicate[T any] func(record T, value string) bool

// Definition describes how one screen's records are searched and faceted.
type Definition[T any] struct {
	searchFields []func(T) *string
	facetOrder   []string
	facets       map[string]Predicate[T]
}

// NewDefinition constructs an empty filter definition.
func NewDefinition[T any]() *Definition[T] {
	return &Definition[T]{facets: make(map[string]Predicate[T])}
}

// Search registers the fields consulted by the free-text search. Fields
// returning nil are skipped rather than matched as empty strings.
func (d *Definition[T]) Search(fields ...func(T) *string) *Definition[T] {
	d.searchFields = append(d.searchFields, fields...)
	return d
}

// Facet registers a named facet predicate.
func (d *Definition[T]) Facet(name string, predicate Predicate[T]) *Definition[T] {
	if _, exists := d.facets[name]; !exists {
		d.facetOrder = append(d.facetOrder, name)
	}
	d.facets[name] = predicate
	return d
}

// State builds the identity state covering this definition's facets.
func (d *Definition[T]) State() State {
	return NewState(d.facetOrder...)
}

// Apply returns the records matching the supplied state, preserving input
// order. It is a pure function: the input slice is never mutated and the
// default state returns every record.
func (d *Definition[T]) Apply(records []T, state State) []T {
	search := strings.ToLower(strings.TrimSpace(state.Search))

	out := make([]T, 0, len(records))
	for _, record := range records {
		if search != "" && !d.matchesSearch(record, search) {
			continue
		}
		if !d.matchesFacets(record, state) {
			continue
		}
		out = append(out, record)
	}
	return out
}

func (d *Definition[T]) matchesSearch(record T, loweredTerm string) bool {
	for _, field := range d.searchFields {
		value := field(record)
		if value == nil {
			continue
		}
		if strings.Contains(strings.ToLower(*value), loweredTerm) {
			return true
		}
	}
	return false
}

func (d *Definition[T]) matchesFacets(record T, state State) bool {
	for _, name := range d.facetOrder {
		value := state.Facet(name)
		if value == All {
			continue
		}
		if !d.facets[name](record, value) {
			return false
		}
	}
	return true
}

// Equals matches records whose field equals the selected value exactly.
func Equals[T any](get func(T) string) Predicate[T] {
	return func(record T, value string) bool {
		return get(record) == value
	}
}

// Rating matches ordinal rating buckets. "4plus" selects ratings >= 4,
// "3orless" selects ratings <= 3, and a plain integer selects that exact
// rating. Unknown bucket names match nothing.
func Rating[T any](get func(T) int) Predicate[T] {
	return func(record T, value string) bool {
		rating := get(record)
		switch value {
		case "4plus":
			return rating >= 4
		case "3orless":
			return rating <= 3
		default:
			exact, err := strconv.Atoi(value)
			if err != nil {
				return false
			}
			return rating == exact
		}
	}
}

// Tristate maps an all/true/false selection onto a boolean field. The truthy
// and falsy labels are the screen's own vocabulary, e.g. "responded" and
// "awaiting". Unknown labels match nothing.
func Tristate[T any](get func(T) bool, truthy, falsy string) Predicate[T] {
	return func(record T, value string) bool {
		switch value {
		case truthy:
			return get(record)
		case falsy:
			return !get(record)
		default:
			return false
		}
	}
}
