// Package worker implements the bounded concurrent task runtime a
// Scheduler dispatches due jobs onto (spec.md §4.H): a channel of
// (id, task) pairs, a fixed worker concurrency, and a drain-on-stop
// shutdown. Its contract is deliberately the only thing fixed by the
// scheduler core — spec.md §1 treats the concrete worker pool as an
// external collaborator — so it lives in its own package behind a small
// interface a host could replace with a different runtime.
package worker

import (
	"context"
	"sync"
	"time"

	"github.com/ecnepsnai/logtic"
)

var log = logtic.Connect("worker")

// DefaultWorkers is the worker concurrency a Runtime uses when none is
// configured, per spec.md §4.H ("default small, e.g., 4").
const DefaultWorkers = 4

// Runnable is the task-dispatch contract: Run is invoked once per fire, on
// a fresh goroutine, and its outcome (success or error) completes that
// fire. Run does not observe cancellation directly; ctx is only present
// for tasks that choose to watch it while Stop drains in-flight work.
type Runnable interface {
	Run(ctx context.Context) error
}

// RunnableFunc adapts a plain function to Runnable.
type RunnableFunc func(ctx context.Context) error

// Run calls f.
func (f RunnableFunc) Run(ctx context.Context) error {
	return f(ctx)
}

// Item pairs an opaque id — used only for logging, never interpreted by
// the runtime — with the task to invoke.
type Item struct {
	ID   int64
	Task Runnable
}

// Runtime is a bounded worker pool: it accepts Items on a channel, spawns
// each onto a goroutine bounded by a semaphore, and on Stop ceases
// accepting new work and waits for everything in flight to finish.
// Recovered panics and task errors are logged, never propagated to the
// caller (spec.md §7's "Task" error kind).
type Runtime struct {
	items chan Item
	sem   chan struct{}
	wg    sync.WaitGroup

	onPanic func(id int64, r interface{})

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

// Option configures a Runtime at construction.
type Option func(*Runtime)

// WithPanicHandler overrides the default log-and-continue panic handler.
func WithPanicHandler(f func(id int64, r interface{})) Option {
	return func(rt *Runtime) { rt.onPanic = f }
}

// New starts a Runtime with the given worker concurrency and dispatch
// queue depth. workers <= 0 falls back to DefaultWorkers; queueDepth <= 0
// falls back to workers.
func New(workers, queueDepth int, opts ...Option) *Runtime {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if queueDepth <= 0 {
		queueDepth = workers
	}

	ctx, cancel := context.WithCancel(context.Background())
	rt := &Runtime{
		items:  make(chan Item, queueDepth),
		sem:    make(chan struct{}, workers),
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(rt)
	}

	go rt.run()
	return rt
}

func (rt *Runtime) run() {
	defer close(rt.done)
	for {
		select {
		case <-rt.ctx.Done():
			rt.wg.Wait()
			return
		case item, ok := <-rt.items:
			if !ok {
				rt.wg.Wait()
				return
			}
			rt.spawn(item)
		}
	}
}

func (rt *Runtime) spawn(item Item) {
	rt.sem <- struct{}{}
	rt.wg.Add(1)
	go func() {
		defer rt.wg.Done()
		defer func() { <-rt.sem }()
		defer func() {
			if r := recover(); r != nil {
				if rt.onPanic != nil {
					rt.onPanic(item.ID, r)
				} else {
					log.Error("job %d panicked: %v", item.ID, r)
				}
			}
		}()

		if err := item.Task.Run(rt.ctx); err != nil {
			log.Warn("job %d finished with error: %v", item.ID, err)
		}
	}()
}

// Dispatch hands item to the runtime, blocking up to timeout for queue
// capacity. It returns false on timeout or once Stop has been called, so
// the caller (the scheduler's clock, spec.md §4.G) can log and continue
// rather than block indefinitely on worker capacity.
func (rt *Runtime) Dispatch(item Item, timeout time.Duration) bool {
	select {
	case <-rt.ctx.Done():
		return false
	default:
	}
	select {
	case rt.items <- item:
		return true
	case <-time.After(timeout):
		return false
	case <-rt.ctx.Done():
		return false
	}
}

// Stop ceases accepting new work and blocks until every task already
// in flight has completed.
func (rt *Runtime) Stop() {
	rt.cancel()
	<-rt.done
}
