package cronsched

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cnotch/cronsched/cron"
	"github.com/cnotch/cronsched/worker"
	"github.com/ecnepsnai/logtic"
)

var log = logtic.Connect("scheduler")

// state is the dispatcher/clock lifecycle of spec.md §4.G:
// Stopped -> Starting -> Running -> Stopping -> Stopped.
type state int32

const (
	stateStopped state = iota
	stateStarting
	stateRunning
	stateStopping
)

const (
	defaultDispatchTimeout = 2 * time.Second
	sleepPadding           = 300 * time.Millisecond // see spec.md §5/§9 "Padding"
	parkInterval           = time.Hour               // sleep when the board is empty
)

// Scheduler is a cron-driven in-process job scheduler (spec.md §1): tasks
// are registered against a cron expression or any other Schedule, and a
// single clock goroutine dispatches each task to a bounded worker runtime
// at every matching instant. The zero value is not usable; construct with
// New.
type Scheduler struct {
	mu    sync.Mutex
	board *board
	loc   *time.Location

	workers         int
	queueDepth      int
	dispatchTimeout time.Duration
	panicHandler    func(id int64, r interface{})

	rt *worker.Runtime

	state     int32 // accessed only via sync/atomic; holds a state value
	wake      chan struct{}
	stop      chan struct{}
	clockDone chan struct{}
}

// New returns a new Scheduler in the Stopped state. Call Start to begin
// dispatching; jobs may be registered with Schedule/Cron/After/Period at
// any time, whether or not the scheduler is currently running.
func New(opts ...Option) *Scheduler {
	s := &Scheduler{
		loc:             time.Local,
		workers:         worker.DefaultWorkers,
		dispatchTimeout: defaultDispatchTimeout,
		wake:            make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt.apply(s)
	}
	s.board = newBoard(s.loc)
	return s
}

// Start transitions the scheduler from Stopped to Running and launches the
// clock. It is a no-op unless the scheduler is currently Stopped (spec.md
// §7 Lifecycle).
func (s *Scheduler) Start() {
	if !atomic.CompareAndSwapInt32(&s.state, int32(stateStopped), int32(stateStarting)) {
		return
	}

	var opts []worker.Option
	if s.panicHandler != nil {
		opts = append(opts, worker.WithPanicHandler(s.panicHandler))
	}
	s.rt = worker.New(s.workers, s.queueDepth, opts...)
	s.stop = make(chan struct{})
	s.clockDone = make(chan struct{})

	atomic.StoreInt32(&s.state, int32(stateRunning))
	go s.run()
}

// Stop transitions the scheduler to Stopped: it signals the clock to
// exit, joins it, then drains the worker runtime to completion. A no-op
// unless the scheduler is currently Running.
func (s *Scheduler) Stop() {
	if !atomic.CompareAndSwapInt32(&s.state, int32(stateRunning), int32(stateStopping)) {
		return
	}
	close(s.stop)
	<-s.clockDone
	s.rt.Stop()
	atomic.StoreInt32(&s.state, int32(stateStopped))
}

// Restart stops then starts the scheduler. Instants that should have fired
// during the gap are not replayed (spec.md §5).
func (s *Scheduler) Restart() {
	s.Stop()
	s.Start()
}

// Active reports whether the scheduler is currently Running.
func (s *Scheduler) Active() bool {
	return atomic.LoadInt32(&s.state) == int32(stateRunning)
}

// Location returns the IANA zone instants are resolved and reported in.
func (s *Scheduler) Location() *time.Location {
	return s.loc
}

// Count returns the number of jobs currently on the board.
func (s *Scheduler) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.board.jobs)
}

// Schedule registers task against schedule, bounded by limit, and returns
// its id (spec.md §4.F/§6). The job is live on the board immediately,
// whether or not the scheduler is Running.
func (s *Scheduler) Schedule(schedule cron.Schedule, limit Limit, task Task) int64 {
	s.mu.Lock()
	id := s.board.schedule(task, schedule, limit)
	s.mu.Unlock()
	s.pulse()
	return id
}

// Cron parses expr (see package cron's wire format) and schedules task
// against it, bounded by limit.
func (s *Scheduler) Cron(expr string, limit Limit, task Task) (int64, error) {
	spec, err := cron.Parse(expr)
	if err != nil {
		return 0, err
	}
	return s.Schedule(spec, limit, task), nil
}

// CronFunc is Cron for a plain function.
func (s *Scheduler) CronFunc(expr string, limit Limit, f func(ctx context.Context) error) (int64, error) {
	return s.Cron(expr, limit, TaskFunc(f))
}

// After schedules task to run once, delay after this call.
func (s *Scheduler) After(delay time.Duration, task Task) int64 {
	return s.Schedule(&afterSchedule{delay: delay}, Unlimited, task)
}

// AfterFunc is After for a plain function.
func (s *Scheduler) AfterFunc(delay time.Duration, f func(ctx context.Context) error) int64 {
	return s.After(delay, TaskFunc(f))
}

// Period schedules task to run first after initialDelay, then every
// period thereafter, bounded by limit. If task takes longer than period
// to run, overlapping invocations are possible (spec.md §4.G's "fires are
// not guaranteed to start at the due instant").
func (s *Scheduler) Period(initialDelay, period time.Duration, limit Limit, task Task) int64 {
	return s.Schedule(&periodSchedule{initialDelay: initialDelay, period: period}, limit, task)
}

// PeriodFunc is Period for a plain function.
func (s *Scheduler) PeriodFunc(initialDelay, period time.Duration, limit Limit, f func(ctx context.Context) error) int64 {
	return s.Period(initialDelay, period, limit, TaskFunc(f))
}

// Deschedule marks id for eviction the next time it surfaces as the heap
// minimum (spec.md §4.F/§7 "Scheduling"). In-flight fires already handed
// to the worker runtime complete; no fire begins strictly after this
// call's linearisation point at the board's mutex.
func (s *Scheduler) Deschedule(id int64) error {
	s.mu.Lock()
	err := s.board.deschedule(id)
	s.mu.Unlock()
	if err == nil {
		s.pulse()
	}
	return err
}

// pulse wakes a sleeping clock so it reconsiders the board's minimum
// before its next sleep (spec.md §4.G "schedule ... pulses the wake
// signal"). Non-blocking: a pending, unconsumed pulse is sufficient.
func (s *Scheduler) pulse() {
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// run is the clock: it sleeps until the board's earliest due time (padded
// per spec.md §9), then pops and dispatches whatever is due, woken early
// by pulse or stopped by Stop. The board's mutex is never held across a
// sleep or a worker dispatch (spec.md §5).
func (s *Scheduler) run() {
	defer close(s.clockDone)
	for {
		s.mu.Lock()
		due, has := s.board.peekNext()
		s.mu.Unlock()

		var wait time.Duration
		if !has {
			wait = parkInterval
		} else {
			wait = time.Until(due)
			if wait < 0 {
				wait = 0
			}
			wait += sleepPadding
		}
		timer := time.NewTimer(wait)

		select {
		case <-s.stop:
			timer.Stop()
			return
		case <-s.wake:
			timer.Stop()
			continue
		case <-timer.C:
		}

		s.mu.Lock()
		id, task, ok := s.board.tryPopDue(time.Now().In(s.loc))
		s.mu.Unlock()
		if !ok {
			continue
		}

		log.Debug("dispatching job %d", id)
		if !s.rt.Dispatch(worker.Item{ID: id, Task: task}, s.dispatchTimeout) {
			log.Warn("dropped fire for job %d: worker dispatch timed out", id)
		}
	}
}

// afterSchedule is a Schedule that is due exactly once, delay after it was
// first asked.
type afterSchedule struct {
	called bool
	delay  time.Duration
}

func (a *afterSchedule) Next(t time.Time) time.Time {
	if a.called {
		return time.Time{}
	}
	a.called = true
	return t.Add(a.delay)
}

// periodSchedule is due first at initialDelay, then every period
// thereafter, indefinitely.
type periodSchedule struct {
	called               bool
	initialDelay, period time.Duration
}

func (p *periodSchedule) Next(t time.Time) time.Time {
	d := p.period
	if !p.called {
		d = p.initialDelay
		p.called = true
	}
	return t.Add(d)
}
