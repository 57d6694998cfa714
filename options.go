package cronsched

import "time"

// Option configures a Scheduler at New.
type Option interface {
	apply(*Scheduler)
}

// optionFunc wraps a func so it satisfies the Option interface.
type optionFunc func(*Scheduler)

func (f optionFunc) apply(s *Scheduler) {
	f(s)
}

// WithLocation sets the IANA zone (spec.md §6) instants are resolved and
// reported in. The default is time.Local.
func WithLocation(loc *time.Location) Option {
	return optionFunc(func(s *Scheduler) {
		if loc != nil {
			s.loc = loc
		}
	})
}

// WithWorkers bounds the worker runtime's concurrency (spec.md §4.H). The
// default is worker.DefaultWorkers.
func WithWorkers(n int) Option {
	return optionFunc(func(s *Scheduler) {
		s.workers = n
	})
}

// WithQueueDepth bounds the capacity of the channel the clock dispatches
// due tasks onto (spec.md §4.G/§5's bounded MPSC channel).
func WithQueueDepth(n int) Option {
	return optionFunc(func(s *Scheduler) {
		s.queueDepth = n
	})
}

// WithDispatchTimeout bounds how long the clock waits for worker capacity
// before logging and moving on (spec.md §4.G step 4 / §7 "Dispatch").
func WithDispatchTimeout(d time.Duration) Option {
	return optionFunc(func(s *Scheduler) {
		if d > 0 {
			s.dispatchTimeout = d
		}
	})
}

// WithPanicHandler overrides the default log-and-continue handler invoked
// when a task panics; it receives the job id (for correlation with
// logging) and the recovered value.
func WithPanicHandler(h func(id int64, r interface{})) Option {
	return optionFunc(func(s *Scheduler) {
		s.panicHandler = h
	})
}
