package cron

// dayKind classifies how a day-of-month field and a day-of-week field
// combine, per the POSIX rule: if both are restricted away from "every
// day", a date matches if it satisfies either one (disjunction); if only
// one is restricted, the other is irrelevant.
type dayKind int

const (
	dayKindMonth dayKind = iota
	dayKindWeek
	dayKindBoth
)

// DayField evaluates the day-of-month / day-of-week pair as a single unit.
// Unlike Field, it holds no cursor state between calls: every call takes
// the actual calendar reference (the day-of-month and day-of-week of the
// instant being resolved) and searches fresh, matching the one concrete,
// worked-through implementation of this logic in the corpus, where the day
// rings are reset before every search rather than carrying a cursor
// forward.
type DayField struct {
	kind  dayKind
	month *Ring // allowed days-of-month, 1..31
	week  *Ring // allowed days-of-week, 0 (Sunday) .. 6 (Saturday)
}

// NewDayField builds a day evaluator. monthRestricted/weekRestricted record
// whether each field was given explicitly (not "*") in the source
// expression; per POSIX, "both restricted" is the only case that produces
// disjunction.
func NewDayField(monthRestricted bool, monthValues []int, weekRestricted bool, weekValues []int) *DayField {
	d := &DayField{
		month: NewRing(monthValues),
		week:  NewRing(weekValues),
	}
	switch {
	case monthRestricted && weekRestricted:
		d.kind = dayKindBoth
	case weekRestricted && !monthRestricted:
		d.kind = dayKindWeek
	default:
		d.kind = dayKindMonth
	}
	return d
}

// Kind reports which of the three disjunction modes this field uses.
func (d *DayField) Kind() dayKind {
	return d.kind
}

// FirstAfter returns the day-of-month to use, given the day-of-month and
// day-of-week of the reference instant, whether a unit below (hours) has
// already overflowed and therefore requires the day to strictly advance,
// and the calendar month/year the search is scoped to (needed to know the
// month's true length and to detect an out-of-range day). wrapped reports
// whether no valid day exists from the search start (dayOfMonth, or the
// day after it under lowerOverflow) through monthLen, meaning the caller
// must carry into the next month.
func (d *DayField) FirstAfter(dayOfMonth, dayOfWeek int, lowerOverflow bool, month, year int) (day int, wrapped bool) {
	monthLen := daysInMonth(month, year)
	switch d.kind {
	case dayKindMonth:
		return d.firstAfterMonth(dayOfMonth, lowerOverflow, monthLen)
	case dayKindWeek:
		return d.firstAfterWeek(dayOfMonth, dayOfWeek, lowerOverflow, monthLen)
	default:
		mDay, mOverflow := d.firstAfterMonth(dayOfMonth, lowerOverflow, monthLen)
		wDay, wOverflow := d.firstAfterWeek(dayOfMonth, dayOfWeek, lowerOverflow, monthLen)
		switch {
		case mOverflow == wOverflow:
			if mDay <= wDay {
				return mDay, mOverflow
			}
			return wDay, wOverflow
		case !mOverflow:
			return mDay, false
		default:
			return wDay, false
		}
	}
}

// Matches reports whether dayOfMonth paired with dayOfWeek, under this
// field's disjunction mode, marks a date as satisfying the schedule. Unlike
// FirstAfter, this is a pure membership test and does not touch either
// ring's cursor.
func (d *DayField) Matches(dayOfMonth, dayOfWeek int) bool {
	switch d.kind {
	case dayKindMonth:
		return d.month.Contains(dayOfMonth)
	case dayKindWeek:
		return d.week.Contains(dayOfWeek)
	default:
		return d.month.Contains(dayOfMonth) || d.week.Contains(dayOfWeek)
	}
}

func (d *DayField) firstAfterMonth(dayOfMonth int, lowerOverflow bool, monthLen int) (int, bool) {
	d.month.Reset()
	target := dayOfMonth
	if lowerOverflow {
		target++
	}
	v, wrapped := d.month.SearchGE(target)
	if wrapped || v > monthLen {
		d.month.Reset()
		return d.month.Peek(), true
	}
	return v, false
}

func (d *DayField) firstAfterWeek(dayOfMonth, dayOfWeek int, lowerOverflow bool, monthLen int) (int, bool) {
	d.week.Reset()
	target := dayOfWeek
	if lowerOverflow {
		target++
	}
	w, _ := d.week.SearchGE(target)
	diff := mod(w-dayOfWeek, 7)
	if lowerOverflow && diff == 0 {
		// A single-weekday ring searched with target = dayOfWeek+1 wraps
		// straight back to dayOfWeek itself (mod 7 erases the +1). The
		// caller requires strict advancement, so treat it as a full week.
		diff = 7
	}
	day := dayOfMonth + diff
	if day > monthLen {
		return day, true
	}
	return day, false
}

func daysInMonth(month, year int) int {
	switch month {
	case 1, 3, 5, 7, 8, 10, 12:
		return 31
	case 4, 6, 9, 11:
		return 30
	case 2:
		if isLeapYear(year) {
			return 29
		}
		return 28
	default:
		return 30
	}
}

func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
