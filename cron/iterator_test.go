package cron

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func mustTime(t *testing.T, layout, value string) time.Time {
	t.Helper()
	tm, err := time.Parse(layout, value)
	if err != nil {
		t.Fatalf("parsing %q: %v", value, err)
	}
	return tm
}

func TestIterator_Unbounded(t *testing.T) {
	s := MustParse("0 * * * *")
	from := mustTime(t, "2006-01-02 15:04:05", "2013-01-01 00:00:00")
	it := NewIterator(s, from)

	var got []string
	for i := 0; i < 3; i++ {
		due, ok := it.Next()
		assert.True(t, ok)
		got = append(got, due.Format("2006-01-02 15:04:05"))
	}
	assert.Equal(t, []string{
		"2013-01-01 01:00:00",
		"2013-01-01 02:00:00",
		"2013-01-01 03:00:00",
	}, got)
}

func TestIterator_Count(t *testing.T) {
	s := MustParse("0 * * * *")
	from := mustTime(t, "2006-01-02 15:04:05", "2013-01-01 00:00:00")
	it := NewCountIterator(s, from, 2)

	_, ok := it.Next()
	assert.True(t, ok)
	_, ok = it.Next()
	assert.True(t, ok)
	_, ok = it.Next()
	assert.False(t, ok, "third call must be exhausted after a count of 2")
}

func TestIterator_Count_Zero(t *testing.T) {
	s := MustParse("0 * * * *")
	from := mustTime(t, "2006-01-02 15:04:05", "2013-01-01 00:00:00")
	it := NewCountIterator(s, from, 0)

	_, ok := it.Next()
	assert.False(t, ok)
}

func TestIterator_Deadline_StrictlyExcludesBoundary(t *testing.T) {
	s := MustParse("0 * * * *")
	from := mustTime(t, "2006-01-02 15:04:05", "2013-01-01 00:00:00")
	deadline := mustTime(t, "2006-01-02 15:04:05", "2013-01-01 02:00:00")
	it := NewDeadlineIterator(s, from, deadline)

	due, ok := it.Next()
	assert.True(t, ok)
	assert.Equal(t, "2013-01-01 01:00:00", due.Format("2006-01-02 15:04:05"))

	// The next candidate (02:00:00) lands exactly on the deadline, which is
	// excluded, so the iterator must be exhausted here.
	_, ok = it.Next()
	assert.False(t, ok)
}
