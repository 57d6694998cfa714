package cron

import "time"

// Iterator is a lazy, non-restartable stream of the instants a Schedule is
// due, starting strictly after some reference time. It owns its own
// resolver state (whatever Schedule it was built from): each call to Next
// returns the current due time and advances by asking that same schedule
// for the successor of what it just returned, the way spec.md's
// successor_of_current contract describes. Once exhausted — the
// underlying schedule itself ends, a count bound is reached, or a deadline
// bound is reached — every subsequent Next call returns the zero time and
// false; an Iterator can never rewind or restart.
type Iterator struct {
	schedule  Schedule
	current   time.Time
	mode      iterMode
	remaining int
	deadline  time.Time
}

type iterMode int

const (
	iterInfinite iterMode = iota
	iterFinite
	iterDeadline
)

// NewIterator returns an unbounded iterator over schedule, due strictly
// after from.
func NewIterator(schedule Schedule, from time.Time) *Iterator {
	return &Iterator{schedule: schedule, current: schedule.Next(from), mode: iterInfinite}
}

// NewCountIterator returns an iterator that yields at most n instants.
// n <= 0 yields none.
func NewCountIterator(schedule Schedule, from time.Time, n int) *Iterator {
	it := &Iterator{schedule: schedule, mode: iterFinite, remaining: n}
	if n > 0 {
		it.current = schedule.Next(from)
	}
	return it
}

// NewDeadlineIterator returns an iterator that yields instants strictly
// before deadline and stops once the next candidate would fall on or after
// it.
func NewDeadlineIterator(schedule Schedule, from, deadline time.Time) *Iterator {
	it := &Iterator{schedule: schedule, mode: iterDeadline, deadline: deadline}
	if candidate := schedule.Next(from); !candidate.IsZero() && candidate.Before(deadline) {
		it.current = candidate
	}
	return it
}

// Next returns the next due instant and true, or the zero time and false
// once the iterator is exhausted.
func (it *Iterator) Next() (time.Time, bool) {
	if it.current.IsZero() {
		return time.Time{}, false
	}
	due := it.current

	switch it.mode {
	case iterFinite:
		it.remaining--
		if it.remaining <= 0 {
			it.current = time.Time{}
			return due, true
		}
		it.current = it.schedule.Next(due)
	case iterDeadline:
		candidate := it.schedule.Next(due)
		if candidate.IsZero() || !candidate.Before(it.deadline) {
			it.current = time.Time{}
		} else {
			it.current = candidate
		}
	default:
		it.current = it.schedule.Next(due)
	}
	return due, true
}
