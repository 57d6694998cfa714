package cron

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func parseT(layout, value string) time.Time {
	t, err := time.Parse(layout, value)
	if err != nil {
		panic(err)
	}
	return t
}

const schedLayout = "2006-01-02 15:04:05"

func TestUnion(t *testing.T) {
	// due at minute 0 or minute 30
	l := MustParse("0 0 * * * *")
	r := MustParse("0 30 * * * *")
	u := Union(l, r)

	from := parseT(schedLayout, "2024-01-01 00:10:00")
	next := u.Next(from)
	assert.Equal(t, "2024-01-01 00:30:00", next.Format(schedLayout))

	next = u.Next(next)
	assert.Equal(t, "2024-01-01 01:00:00", next.Format(schedLayout))
}

func TestMinus(t *testing.T) {
	// every minute, minus the top of every hour
	l := MustParse("0 * * * * *")
	r := MustParse("0 0 * * * *")
	m := Minus(l, r)

	from := parseT(schedLayout, "2024-01-01 00:59:00")
	next := m.Next(from)
	// 01:00:00 is excluded since r is also due there; 01:01:00 survives.
	assert.Equal(t, "2024-01-01 01:01:00", next.Format(schedLayout))
}

func TestIntersect(t *testing.T) {
	// every 15 minutes, intersected with every 20 minutes -> only :00
	l := MustParse("0 */15 * * * *")
	r := MustParse("0 */20 * * * *")
	i := Intersect(l, r)

	from := parseT(schedLayout, "2024-01-01 00:00:00")
	next := i.Next(from)
	assert.Equal(t, "2024-01-01 01:00:00", next.Format(schedLayout))
}

func TestScheduleFunc(t *testing.T) {
	calls := 0
	s := ScheduleFunc(func(t time.Time) time.Time {
		calls++
		return t.Add(time.Minute)
	})

	from := parseT(schedLayout, "2024-01-01 00:00:00")
	next := s.Next(from)
	assert.Equal(t, 1, calls)
	assert.Equal(t, "2024-01-01 00:01:00", next.Format(schedLayout))
}
