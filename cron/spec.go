// Package cron implements a cron expression parser and a cyclic-index based
// date/time resolver: given an instant, compute the next instant a schedule
// is due to fire.
package cron

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

// Sentinel errors returned while building a Spec. Parse wraps these with
// the offending field name and value via fmt.Errorf's %w verb.
var (
	ErrFieldEmpty      = errors.New("cron: field has no allowed values")
	ErrFieldOutOfRange = errors.New("cron: field value out of range")
	ErrFieldDuplicate  = errors.New("cron: field contains a duplicate value")
)

// DefaultMaxYearSearch bounds how many years past the reference instant's
// year the resolver will search before concluding a schedule can never
// fire again (e.g. "February 30th"). It does not apply to a Spec with an
// explicit year list, whose last year is the bound instead. See
// WithMaxYearSearch.
const DefaultMaxYearSearch = 4

// Spec is a fully parsed, validated cron schedule: one allowed-value ring
// per field, plus the day-of-month/day-of-week disjunction mode. It is
// immutable and safe for concurrent use by multiple resolvers (each Next
// call below works against fresh cloned rings).
type Spec struct {
	seconds      []int
	minutes      []int
	hours        []int
	months       []int
	day          *dayFieldSpec
	years        []int // explicit year list; nil means "unrestricted"
	maxYearSpan  int
	source       string
}

type dayFieldSpec struct {
	monthRestricted bool
	monthValues     []int
	weekRestricted  bool
	weekValues      []int
}

// SpecOption configures NewSpec.
type SpecOption func(*Spec)

// WithMaxYearSearch overrides DefaultMaxYearSearch for a Spec built without
// an explicit year list.
func WithMaxYearSearch(years int) SpecOption {
	return func(s *Spec) {
		s.maxYearSpan = years
	}
}

// WithYears restricts the schedule to the given calendar years.
func WithYears(years []int) SpecOption {
	return func(s *Spec) {
		s.years = years
	}
}

// NewSpec validates and builds a Spec directly from field value sets,
// bypassing the string parser. Every values slice may contain its entries
// in any order; NewSpec sorts them, and rejects a slice that is empty,
// holds a value outside the field's valid range, or holds a duplicate.
func NewSpec(
	seconds, minutes, hours []int,
	domRestricted bool, dom []int,
	months []int,
	dowRestricted bool, dow []int,
	opts ...SpecOption,
) (*Spec, error) {
	secs, err := normalizeField("seconds", 0, 59, seconds)
	if err != nil {
		return nil, err
	}
	mins, err := normalizeField("minutes", 0, 59, minutes)
	if err != nil {
		return nil, err
	}
	hrs, err := normalizeField("hours", 0, 23, hours)
	if err != nil {
		return nil, err
	}
	mos, err := normalizeField("months", 1, 12, months)
	if err != nil {
		return nil, err
	}
	domVals, err := normalizeField("day-of-month", 1, 31, dom)
	if err != nil {
		return nil, err
	}
	dowVals, err := normalizeField("day-of-week", 0, 6, dow)
	if err != nil {
		return nil, err
	}

	s := &Spec{
		seconds: secs,
		minutes: mins,
		hours:   hrs,
		months:  mos,
		day: &dayFieldSpec{
			monthRestricted: domRestricted,
			monthValues:     domVals,
			weekRestricted:  dowRestricted,
			weekValues:      dowVals,
		},
		maxYearSpan: DefaultMaxYearSearch,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func normalizeField(name string, min, max int, values []int) ([]int, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrFieldEmpty, name)
	}
	sorted := append([]int(nil), values...)
	sort.Ints(sorted)
	for i, v := range sorted {
		if v < min || v > max {
			return nil, fmt.Errorf("%w: %s value %d not in [%d,%d]", ErrFieldOutOfRange, name, v, min, max)
		}
		if i > 0 && sorted[i] == sorted[i-1] {
			return nil, fmt.Errorf("%w: %s value %d", ErrFieldDuplicate, name, v)
		}
	}
	return sorted, nil
}

// newDayField builds a fresh DayField cursor; called once per resolution
// since DayField (unlike Field) holds no state worth preserving between
// independent Next calls.
func (s *Spec) newDayField() *DayField {
	return NewDayField(s.day.monthRestricted, s.day.monthValues, s.day.weekRestricted, s.day.weekValues)
}

// String returns the original expression text, if this Spec was produced
// by Parse/MustParse.
func (s *Spec) String() string {
	return s.source
}

// Next returns the earliest instant strictly after from that satisfies the
// schedule, in from's own location, or the zero time.Time if from is zero
// or no such instant exists within the search bound (see
// DefaultMaxYearSearch / WithMaxYearSearch / WithYears).
func (s *Spec) Next(from time.Time) time.Time {
	return newResolver(s, from.Location()).Next(from)
}
