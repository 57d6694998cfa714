package cron

import "time"

// resolver computes the next instant a Spec is due to fire, following the
// same top-down structure as a classic cron engine: walk the fields from
// year down to second looking for the first one that does not already
// match fromTime, then hand off to that field's "next" step, which finds
// the nearest later allowed value and resets every field below it to its
// minimum. Each "next" step that exhausts its own field's ring carries
// into the field above it. The cyclic-index Field/DayField types do the
// actual searching; this file only sequences them.
type resolver struct {
	spec    *Spec
	seconds *Field
	minutes *Field
	hours   *Field
	months  *Field
	day     *DayField
	loc     *time.Location
	maxYear int
}

func newResolver(s *Spec, loc *time.Location) *resolver {
	if loc == nil {
		loc = time.UTC
	}
	return &resolver{
		spec:    s,
		seconds: newField(NewRing(s.seconds)),
		minutes: newField(NewRing(s.minutes)),
		hours:   newField(NewRing(s.hours)),
		months:  newField(NewRing(s.months)),
		day:     s.newDayField(),
		loc:     loc,
	}
}

// Next returns the earliest instant strictly after from that satisfies the
// schedule, or the zero time.Time if from is itself zero or no matching
// instant exists within the search bound (an exhausted explicit year list,
// or maxYearSpan years searched past from's year with no match, e.g. a
// "February 30th" schedule).
func (r *resolver) Next(from time.Time) time.Time {
	if from.IsZero() {
		return from
	}
	from = from.In(r.loc)
	r.maxYear = from.Year() + r.spec.maxYearSpan
	if r.spec.years != nil {
		r.maxYear = r.spec.years[len(r.spec.years)-1]
	}

	year, ok := r.matchYear(from.Year())
	if !ok {
		return time.Time{}
	}
	if year != from.Year() {
		return r.nextYear(from)
	}

	month, ok := r.seekField(r.months, int(from.Month()))
	if !ok {
		return r.nextYear(from)
	}
	if month != int(from.Month()) {
		return r.nextMonth(from)
	}

	weekday := int(dayOfWeekFor(year, month, from.Day()))
	if !r.day.Matches(from.Day(), weekday) {
		return r.nextDayOfMonth(from)
	}

	hour, ok := r.seekField(r.hours, from.Hour())
	if !ok {
		return r.nextDayOfMonth(from)
	}
	if hour != from.Hour() {
		return r.nextHour(from)
	}

	minute, ok := r.seekField(r.minutes, from.Minute())
	if !ok {
		return r.nextHour(from)
	}
	if minute != from.Minute() {
		return r.nextMinute(from)
	}
	if _, ok := r.seekField(r.seconds, from.Second()); !ok {
		return r.nextMinute(from)
	}
	return r.nextSecond(from)
}

// seekField finds the least allowed value >= v. Since Field's cursor-based
// contract is built for the successor cascade, seekField uses a
// throwaway Field over the same ring values for this membership-style
// query so it never disturbs the resolver's own field cursors.
func (r *resolver) seekField(f *Field, v int) (int, bool) {
	tmp := newField(f.ring.Clone())
	tmp.ring.Reset()
	val, wrapped := tmp.FirstAfter(v, false)
	return val, !wrapped
}

func (r *resolver) matchYear(year int) (int, bool) {
	if r.spec.years == nil {
		if year > r.maxYear {
			log.Debug("no matching year within %d years of %d, giving up", r.spec.maxYearSpan, year-1-r.spec.maxYearSpan)
			return 0, false
		}
		return year, true
	}
	for _, y := range r.spec.years {
		if y >= year {
			return y, true
		}
	}
	log.Debug("explicit year list exhausted before %d, giving up", year)
	return 0, false
}

func (r *resolver) nextYear(t time.Time) time.Time {
	year, ok := r.matchYear(t.Year() + 1)
	if !ok {
		return time.Time{}
	}
	month := r.months.ring.Values()[0]
	return r.settleFromMonth(year, month, t.Location())
}

func (r *resolver) nextMonth(t time.Time) time.Time {
	month, ok := r.seekField(r.months, int(t.Month())+1)
	if !ok {
		return r.nextYear(t)
	}
	return r.settleFromMonth(t.Year(), month, t.Location())
}

// settleFromMonth lands on the earliest valid day of (year, month),
// carrying into the following month (or year) if that month has no valid
// day at all (e.g. day-of-month 31 in a 30-day month).
func (r *resolver) settleFromMonth(year, month int, loc *time.Location) time.Time {
	weekday := int(dayOfWeekFor(year, month, 1))
	day, wrapped := r.day.FirstAfter(1, weekday, false, month, year)
	if wrapped {
		return r.nextMonth(time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc))
	}
	return time.Date(year, time.Month(month), day,
		r.hours.ring.Values()[0], r.minutes.ring.Values()[0], r.seconds.ring.Values()[0], 0, loc)
}

func (r *resolver) nextDayOfMonth(t time.Time) time.Time {
	weekday := int(dayOfWeekFor(t.Year(), int(t.Month()), t.Day()))
	day, wrapped := r.day.FirstAfter(t.Day(), weekday, true, int(t.Month()), t.Year())
	if wrapped {
		return r.nextMonth(t)
	}
	return time.Date(t.Year(), t.Month(), day,
		r.hours.ring.Values()[0], r.minutes.ring.Values()[0], r.seconds.ring.Values()[0], 0, t.Location())
}

func (r *resolver) nextHour(t time.Time) time.Time {
	hour, ok := r.seekField(r.hours, t.Hour()+1)
	if !ok {
		return r.nextDayOfMonth(t)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), hour,
		r.minutes.ring.Values()[0], r.seconds.ring.Values()[0], 0, t.Location())
}

func (r *resolver) nextMinute(t time.Time) time.Time {
	minute, ok := r.seekField(r.minutes, t.Minute()+1)
	if !ok {
		return r.nextHour(t)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), minute,
		r.seconds.ring.Values()[0], 0, t.Location())
}

func (r *resolver) nextSecond(t time.Time) time.Time {
	second, ok := r.seekField(r.seconds, t.Second()+1)
	if !ok {
		return r.nextMinute(t)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), second, 0, t.Location())
}

// dayOfWeekFor computes the day of week (0=Sunday..6=Saturday) without
// needing the final hour/minute/second fields resolved yet.
func dayOfWeekFor(year, month, day int) time.Weekday {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC).Weekday()
}
