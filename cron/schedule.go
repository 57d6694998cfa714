// Copyright (c) 2019,CAO HONGJU. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cron

import "time"

// Schedule describes a job's duty cycle: given an instant, Next returns the
// next later instant the schedule is due, or the zero time.Time to mean
// "never again". A *Spec already satisfies Schedule; Union/Minus/Intersect
// let callers compose several schedules (cron-derived or otherwise) into
// one without the job board or dispatcher knowing the difference.
type Schedule interface {
	Next(time.Time) time.Time
}

// ScheduleFunc adapts an ordinary function to the Schedule interface.
type ScheduleFunc func(time.Time) time.Time

// Next calls f.
func (f ScheduleFunc) Next(t time.Time) time.Time {
	return f(t)
}

// Union returns a schedule due whenever l or r is due (l ∪ r).
func Union(l, r Schedule) Schedule {
	return &union{l: l, r: r}
}

type union struct {
	l Schedule
	r Schedule
}

func (u *union) Next(t time.Time) time.Time {
	t1 := u.l.Next(t)
	t2 := u.r.Next(t)
	if t1.IsZero() {
		return t2
	}
	if t2.IsZero() || t1.Before(t2) {
		return t1
	}
	return t2
}

// Minus returns a schedule due whenever l is due and r is not (l - r).
func Minus(l, r Schedule) Schedule {
	return &minus{l: l, r: r}
}

type minus struct {
	l Schedule
	r Schedule
}

func (m *minus) Next(t time.Time) time.Time {
	t1 := m.l.Next(t)
	t2 := m.r.Next(t)

	for {
		if t2.IsZero() {
			return t1
		}
		if t1.Before(t2) {
			return t1
		}
		if t1.Equal(t2) {
			// r also fires at t1; that instant is excluded, try the next one.
			t1 = m.l.Next(t1)
			t2 = m.r.Next(t2)
			continue
		}
		for !t2.IsZero() && t1.After(t2) {
			t2 = m.r.Next(t2)
		}
	}
}

// Intersect returns a schedule due only at instants both l and r are due
// (l ∩ r).
func Intersect(l, r Schedule) Schedule {
	return &intersect{l: l, r: r}
}

type intersect struct {
	l Schedule
	r Schedule
}

func (i *intersect) Next(t time.Time) time.Time {
	t1 := i.l.Next(t)
	t2 := i.r.Next(t)
	for {
		if t1.IsZero() || t2.IsZero() {
			return time.Time{}
		}
		if t1.Equal(t2) {
			return t1
		}
		if t1.Before(t2) {
			t1 = i.l.Next(t1)
		} else {
			t2 = i.r.Next(t2)
		}
	}
}
