package cronsched

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These exercise the package-level wrappers against the default Scheduler,
// which init already starts; none of them stop it, since other tests in
// this package share it.

func TestGlobalDefaultSchedulerRunning(t *testing.T) {
	assert.True(t, defaultSchd.Active())
}

func TestGlobalAfterFunc(t *testing.T) {
	done := make(chan struct{})
	id := AfterFunc(5*time.Millisecond, func(ctx context.Context) error {
		close(done)
		return nil
	})
	assert.GreaterOrEqual(t, id, int64(0))

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("global After task never fired")
	}
}

func TestGlobalCronFunc(t *testing.T) {
	_, err := CronFunc("not valid", Unlimited, func(ctx context.Context) error { return nil })
	assert.Error(t, err)

	id, err := CronFunc("* * * * * *", Count(1), func(ctx context.Context) error { return nil })
	require.NoError(t, err)
	assert.GreaterOrEqual(t, id, int64(0))
}

func TestGlobalScheduleAndDeschedule(t *testing.T) {
	before := Count()
	id := Schedule(ScheduleFuncStub(func(t time.Time) time.Time { return t.Add(time.Hour) }), Unlimited, noop)
	assert.Equal(t, before+1, Count())

	require.NoError(t, Deschedule(id))
	assert.ErrorIs(t, Deschedule(id), ErrAlreadyDescheduled)
	assert.ErrorIs(t, Deschedule(id+1_000_000), ErrUnknownJob)
}

func TestGlobalLocation(t *testing.T) {
	assert.Equal(t, time.Local, Location())
}

func TestGlobalPeriodFunc(t *testing.T) {
	id := PeriodFunc(time.Millisecond, time.Hour, Count(1), func(ctx context.Context) error { return nil })
	assert.GreaterOrEqual(t, id, int64(0))
}
