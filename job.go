package cronsched

import (
	"time"

	"github.com/cnotch/cronsched/cron"
	"github.com/cnotch/cronsched/worker"
)

// Task is the work a scheduled job performs. Run is invoked by the worker
// runtime on a fresh goroutine every time the job's schedule is due;
// per spec.md §4.E it does not observe cancellation directly — the
// runtime, not the task, mediates Stop.
type Task = worker.Runnable

// TaskFunc adapts a plain function to Task.
type TaskFunc = worker.RunnableFunc

// job is one entry on a board (spec.md §4.E): an id, the task to run, the
// schedule iterator producing its fire times, and the next due instant.
// The zero time.Time for next means no future fires remain. Mutated only
// by the board under the Scheduler's lock.
type job struct {
	index int // heap index; -1 when not on the heap

	id       int64
	task     Task
	iterator *cron.Iterator
	next     time.Time
}

// newJob builds a job whose schedule iterator is bounded by limit,
// starting strictly after from, and primes its first due instant.
func newJob(id int64, task Task, schedule cron.Schedule, limit Limit, from time.Time) *job {
	j := &job{
		id:       id,
		task:     task,
		index:    -1,
		iterator: limit.iterator(schedule, from),
	}
	j.advance()
	return j
}

// advance pulls the next due instant from the job's iterator, or clears
// next to the zero Time once the iterator is exhausted.
func (j *job) advance() {
	next, ok := j.iterator.Next()
	if !ok {
		j.next = time.Time{}
		return
	}
	j.next = next
}
