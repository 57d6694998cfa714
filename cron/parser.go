// Copyright (c) 2019,CAO HONGJU. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cron

import (
	"fmt"
	"strconv"
	"strings"
)

// MustParse is like Parse but panics if spec is malformed.
func MustParse(spec string) *Spec {
	s, err := Parse(spec)
	if err != nil {
		panic(err)
	}
	return s
}

// Parse builds a Spec from a standard six- or seven-field cron expression
// (seconds minutes hours day-of-month month day-of-week [year]), a five-field
// expression omitting seconds, or one of the named shorthands (@yearly,
// @monthly, @weekly, @daily, @hourly). Month and day-of-week fields accept
// either numbers or English names/abbreviations. "?" is accepted as a
// synonym for "*" in the day-of-month and day-of-week fields, following the
// POSIX convention of using it to mark whichever of the pair is not the one
// actually restricting the schedule.
func Parse(spec string) (*Spec, error) {
	src := strings.TrimSpace(spec)
	if len(src) == 0 {
		return nil, fmt.Errorf("cron: empty expression")
	}

	if strings.HasPrefix(src, "@") {
		return parseNamedExpression(src)
	}

	fields := strings.Fields(src)
	switch len(fields) {
	case 5, 6, 7:
	default:
		return nil, fmt.Errorf("cron: expected 5, 6 or 7 fields, got %d", len(fields))
	}

	b := &specBuilder{source: spec}

	start := 0
	if len(fields) == 5 {
		b.seconds = []int{0}
		start = 1
	}
	for i, p := 0, start; i < len(fields); i, p = i+1, p+1 {
		if err := fieldParsers[p].parse(b, fields[i]); err != nil {
			return nil, err
		}
	}

	return b.build()
}

func parseNamedExpression(spec string) (*Spec, error) {
	switch spec {
	case "@yearly", "@annually":
		return Parse("0 0 0 1 1 *")
	case "@monthly":
		return Parse("0 0 0 1 * *")
	case "@weekly":
		return Parse("0 0 0 * * 0")
	case "@daily", "@midnight":
		return Parse("0 0 0 * * *")
	case "@hourly":
		return Parse("0 0 * * * *")
	}
	return nil, fmt.Errorf("cron: unrecognized named expression %q", spec)
}

// specBuilder accumulates the raw value sets read off the wire while a
// Spec is being parsed, before normalizeField sorts each one and rejects
// it if empty, out of range or holding a duplicate.
type specBuilder struct {
	source string

	seconds []int
	minutes []int
	hours   []int
	months  []int

	dom           []int
	domRestricted bool
	dow           []int
	dowRestricted bool

	years    []int
	yearsSet bool
}

func (b *specBuilder) build() (*Spec, error) {
	secs, err := normalizeField("seconds", 0, 59, b.seconds)
	if err != nil {
		return nil, err
	}
	mins, err := normalizeField("minutes", 0, 59, b.minutes)
	if err != nil {
		return nil, err
	}
	hrs, err := normalizeField("hours", 0, 23, b.hours)
	if err != nil {
		return nil, err
	}
	mos, err := normalizeField("months", 1, 12, b.months)
	if err != nil {
		return nil, err
	}
	domVals, err := normalizeField("day-of-month", 1, 31, b.dom)
	if err != nil {
		return nil, err
	}
	dowVals, err := normalizeField("day-of-week", 0, 6, b.dow)
	if err != nil {
		return nil, err
	}

	s := &Spec{
		seconds: secs,
		minutes: mins,
		hours:   hrs,
		months:  mos,
		day: &dayFieldSpec{
			monthRestricted: b.domRestricted,
			monthValues:     domVals,
			weekRestricted:  b.dowRestricted,
			weekValues:      dowVals,
		},
		maxYearSpan: DefaultMaxYearSearch,
		source:      b.source,
	}
	if b.yearsSet {
		yrs, err := normalizeField("year", 1970, 2099, b.years)
		if err != nil {
			return nil, err
		}
		s.years = yrs
	}
	return s, nil
}

// fieldParser knows how to turn one whitespace-delimited token of a cron
// expression into entries appended to a specBuilder field.
type fieldParser struct {
	name       string
	min, max   int
	atoi       func(string) (int, bool)
	populateTo func(b *specBuilder, begin, end, step int)
	// markRestricted, if set, records whether the field text named actual
	// values rather than "*"/"?" (only day-of-month and day-of-week care).
	markRestricted func(b *specBuilder, restricted bool)
}

var fieldParsers = []fieldParser{
	{"second", 0, 59, atoi, func(b *specBuilder, begin, end, step int) {
		for i := begin; i <= end; i += step {
			b.seconds = append(b.seconds, i)
		}
	}, nil},
	{"minute", 0, 59, atoi, func(b *specBuilder, begin, end, step int) {
		for i := begin; i <= end; i += step {
			b.minutes = append(b.minutes, i)
		}
	}, nil},
	{"hour", 0, 23, atoi, func(b *specBuilder, begin, end, step int) {
		for i := begin; i <= end; i += step {
			b.hours = append(b.hours, i)
		}
	}, nil},
	{"day of month", 1, 31, atoi, func(b *specBuilder, begin, end, step int) {
		for i := begin; i <= end; i += step {
			b.dom = append(b.dom, i)
		}
	}, func(b *specBuilder, restricted bool) { b.domRestricted = restricted }},
	{"month", 1, 12, atomi, func(b *specBuilder, begin, end, step int) {
		for i := begin; i <= end; i += step {
			b.months = append(b.months, i)
		}
	}, nil},
	{"day of week", 0, 6, atowi, func(b *specBuilder, begin, end, step int) {
		for i := begin; i <= end; i += step {
			b.dow = append(b.dow, i)
		}
	}, func(b *specBuilder, restricted bool) { b.dowRestricted = restricted }},
	{"year", 1970, 2099, atoi, func(b *specBuilder, begin, end, step int) {
		b.yearsSet = true
		for i := begin; i <= end; i += step {
			b.years = append(b.years, i)
		}
	}, nil},
}

const errPattern = "cron: syntax error in %s field: %q"

func (fp *fieldParser) parse(b *specBuilder, field string) error {
	if fp.markRestricted != nil {
		fp.markRestricted(b, field != "*" && field != "?")
	}
	for _, entry := range strings.Split(field, ",") {
		if err := fp.parseEntry(b, entry); err != nil {
			return err
		}
	}
	return nil
}

func (fp *fieldParser) parseStep(b *specBuilder, entry string, step int) bool {
	if entry == "*" || entry == "?" {
		fp.populateTo(b, fp.min, fp.max, step)
		return true
	}

	idx := strings.IndexByte(entry, '-')
	if idx == -1 {
		n, ok := fp.atoi(entry)
		if !ok || !fp.isValid(n) {
			return false
		}
		fp.populateTo(b, n, fp.max, step)
		return true
	}

	begin, ok := fp.atoi(entry[:idx])
	if !ok || !fp.isValid(begin) {
		return false
	}
	end, ok := fp.atoi(entry[idx+1:])
	if !ok || !fp.isValid(end) {
		return false
	}
	fp.populateTo(b, begin, end, step)
	return true
}

func (fp *fieldParser) parseEntry(b *specBuilder, entry string) error {
	if entry == "*" || entry == "?" {
		fp.populateTo(b, fp.min, fp.max, 1)
		return nil
	}

	if idx := strings.IndexByte(entry, '/'); idx != -1 {
		step, ok := fp.atoi(entry[idx+1:])
		if !ok || step < 1 || step > fp.max-fp.min {
			return fmt.Errorf(errPattern, fp.name, entry)
		}
		if !fp.parseStep(b, entry[:idx], step) {
			return fmt.Errorf(errPattern, fp.name, entry)
		}
		return nil
	}

	if strings.IndexByte(entry, '-') != -1 {
		if !fp.parseStep(b, entry, 1) {
			return fmt.Errorf(errPattern, fp.name, entry)
		}
		return nil
	}

	n, ok := fp.atoi(entry)
	if !ok || !fp.isValid(n) {
		return fmt.Errorf(errPattern, fp.name, entry)
	}
	fp.populateTo(b, n, n, 1)
	return nil
}

func (fp *fieldParser) isValid(n int) bool {
	return n >= fp.min && n <= fp.max
}

func atoi(s string) (int, bool) {
	i, err := strconv.Atoi(s)
	return i, err == nil
}

func atowi(s string) (int, bool) {
	switch strings.ToLower(s) {
	case `0`, `sun`, `sunday`:
		return 0, true
	case `1`, `mon`, `monday`:
		return 1, true
	case `2`, `tue`, `tuesday`:
		return 2, true
	case `3`, `wed`, `wednesday`:
		return 3, true
	case `4`, `thu`, `thursday`:
		return 4, true
	case `5`, `fri`, `friday`:
		return 5, true
	case `6`, `sat`, `saturday`:
		return 6, true
	case `7`: // POSIX allows 7 as a second name for Sunday
		return 0, true
	default:
		return 0, false
	}
}

func atomi(s string) (int, bool) {
	switch strings.ToLower(s) {
	case `1`, `jan`, `january`:
		return 1, true
	case `2`, `feb`, `february`:
		return 2, true
	case `3`, `mar`, `march`:
		return 3, true
	case `4`, `apr`, `april`:
		return 4, true
	case `5`, `may`:
		return 5, true
	case `6`, `jun`, `june`:
		return 6, true
	case `7`, `jul`, `july`:
		return 7, true
	case `8`, `aug`, `august`:
		return 8, true
	case `9`, `sep`, `september`:
		return 9, true
	case `10`, `oct`, `october`:
		return 10, true
	case `11`, `nov`, `november`:
		return 11, true
	case `12`, `dec`, `december`:
		return 12, true
	default:
		return 0, false
	}
}
