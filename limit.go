package cronsched

import (
	"time"

	"github.com/cnotch/cronsched/cron"
)

// Limit bounds how many times a scheduled job may fire (spec.md §3): it is
// one of unlimited, a count of remaining fires, or a deadline at or after
// which no fire occurs. The zero value, Unlimited, never bounds a job.
type Limit struct {
	kind     limitKind
	count    int
	deadline time.Time
}

type limitKind int

const (
	limitUnlimited limitKind = iota
	limitCount
	limitDeadline
)

// Unlimited lets a job fire for as long as its schedule keeps producing
// instants.
var Unlimited = Limit{}

// Count bounds a job to at most n fires, counted from the moment it is
// scheduled.
func Count(n int) Limit {
	return Limit{kind: limitCount, count: n}
}

// Deadline bounds a job so that it never fires at or after d (spec.md §9's
// resolved "strict inequality" convention).
func Deadline(d time.Time) Limit {
	return Limit{kind: limitDeadline, deadline: d}
}

// iterator builds the cron.Iterator this limit implies over schedule,
// starting strictly after from — the job record's schedule iterator
// (spec.md §4.D) is just this limit's bound applied to the job's Schedule.
func (l Limit) iterator(schedule cron.Schedule, from time.Time) *cron.Iterator {
	switch l.kind {
	case limitCount:
		return cron.NewCountIterator(schedule, from, l.count)
	case limitDeadline:
		return cron.NewDeadlineIterator(schedule, from, l.deadline)
	default:
		return cron.NewIterator(schedule, from)
	}
}
