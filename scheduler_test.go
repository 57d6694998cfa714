package cronsched

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchedulerLifecycle(t *testing.T) {
	s := New()
	assert.False(t, s.Active())

	s.Start()
	assert.True(t, s.Active())

	// Start is a no-op while already running.
	s.Start()
	assert.True(t, s.Active())

	s.Stop()
	assert.False(t, s.Active())

	// Stop is a no-op while already stopped.
	s.Stop()
	assert.False(t, s.Active())

	s.Restart()
	assert.True(t, s.Active())
	s.Stop()
}

func TestSchedulerScheduleWhileStopped(t *testing.T) {
	s := New()
	id := s.After(time.Hour, noop)
	assert.Equal(t, int64(0), id)
	assert.Equal(t, 1, s.Count())
}

func TestSchedulerAfterFires(t *testing.T) {
	s := New(WithDispatchTimeout(time.Second))
	s.Start()
	defer s.Stop()

	var fired int32
	done := make(chan struct{})
	s.AfterFunc(5*time.Millisecond, func(ctx context.Context) error {
		atomic.StoreInt32(&fired, 1)
		close(done)
		return nil
	})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("task never fired")
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&fired))
}

func TestSchedulerPeriodRespectsCount(t *testing.T) {
	s := New(WithDispatchTimeout(time.Second))
	s.Start()
	defer s.Stop()

	var mu sync.Mutex
	var runs int
	allDone := make(chan struct{})

	s.PeriodFunc(time.Millisecond, 5*time.Millisecond, Count(3), func(ctx context.Context) error {
		mu.Lock()
		runs++
		n := runs
		mu.Unlock()
		if n == 3 {
			close(allDone)
		}
		return nil
	})

	select {
	case <-allDone:
	case <-time.After(3 * time.Second):
		t.Fatal("did not observe 3 runs")
	}

	// give any (incorrect) extra fire a chance to land before asserting
	time.Sleep(50 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 3, runs)
}

func TestSchedulerDescheduleStopsFutureFires(t *testing.T) {
	s := New(WithDispatchTimeout(time.Second))
	s.Start()
	defer s.Stop()

	var ran int32
	id := s.PeriodFunc(5*time.Millisecond, 5*time.Millisecond, Unlimited, func(ctx context.Context) error {
		atomic.AddInt32(&ran, 1)
		return nil
	})

	require.NoError(t, s.Deschedule(id))
	assert.ErrorIs(t, s.Deschedule(id), ErrAlreadyDescheduled)
	assert.ErrorIs(t, s.Deschedule(id+1000), ErrUnknownJob)

	// The first fire would land after the 5ms delay plus the clock's 300ms
	// padding; wait past that and confirm it never happened.
	time.Sleep(500 * time.Millisecond)
	assert.Equal(t, int32(0), atomic.LoadInt32(&ran))
}

func TestSchedulerImpossibleScheduleAccepted(t *testing.T) {
	s := New()
	// Feb 30th never occurs; the job is accepted but will be silently
	// evicted the first time the clock considers it.
	id, err := s.Cron("0 0 0 30 2 *", Unlimited, noop)
	require.NoError(t, err)
	assert.Equal(t, int64(0), id)
	assert.Equal(t, 1, s.Count())
}
