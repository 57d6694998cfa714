package cronsched

import (
	"container/heap"
	"time"

	"github.com/cnotch/cronsched/cron"
)

// board is the job board of spec.md §4.F: a min-heap of jobs keyed on
// next-fire-time (ties broken by id), a side set of ids marked for
// deschedule, and a monotonically increasing id counter that is never
// recycled. board is not itself safe for concurrent use — the Scheduler
// serializes every access behind its own mutex.
type board struct {
	jobs        queue
	descheduled map[int64]bool
	nextID      int64
	loc         *time.Location
}

func newBoard(loc *time.Location) *board {
	return &board{
		jobs:        make(queue, 0, 16),
		descheduled: make(map[int64]bool),
		loc:         loc,
	}
}

// schedule registers a new job against schedule, bounded by limit, and
// returns its id. A schedule that can never fire (e.g. "Feb 30") is still
// accepted — it is evicted silently the first time it surfaces as the
// heap minimum (spec.md §8 scenario 6).
func (b *board) schedule(task Task, schedule cron.Schedule, limit Limit) int64 {
	id := b.nextID
	b.nextID++
	heap.Push(&b.jobs, newJob(id, task, schedule, limit, time.Now().In(b.loc)))
	return id
}

// peekNext reports the board's earliest next-fire-time, or false if the
// board holds no jobs.
func (b *board) peekNext() (time.Time, bool) {
	if len(b.jobs) == 0 {
		return time.Time{}, false
	}
	return b.jobs[0].next, true
}

// tryPopDue pops and returns the due task at the heap minimum, advancing
// and re-inserting its job with the next fire time, if the minimum is due
// at or before now. Descheduled or terminal jobs at the minimum are
// dropped silently and the next candidate is tried in their place. ok is
// false if the board is empty or its minimum is still in the future.
func (b *board) tryPopDue(now time.Time) (id int64, task Task, ok bool) {
	for len(b.jobs) > 0 {
		head := b.jobs[0]

		if head.next.IsZero() {
			heap.Pop(&b.jobs)
			continue
		}
		if head.next.After(now) {
			return 0, nil, false
		}

		heap.Pop(&b.jobs)
		if b.descheduled[head.id] {
			continue
		}

		id, task = head.id, head.task
		head.advance()
		if !head.next.IsZero() {
			heap.Push(&b.jobs, head)
		}
		return id, task, true
	}
	return 0, nil, false
}

// deschedule marks id for eviction the next time it surfaces as the heap
// minimum. It returns ErrUnknownJob for an id this board never issued, or
// ErrAlreadyDescheduled if id was already marked by an earlier call — the
// mark, once set, is removed only by clear, so a repeat call (even after
// the job has since been evicted) keeps reporting ErrAlreadyDescheduled.
func (b *board) deschedule(id int64) error {
	if id < 0 || id >= b.nextID {
		return ErrUnknownJob
	}
	if b.descheduled[id] {
		return ErrAlreadyDescheduled
	}
	b.descheduled[id] = true
	return nil
}

// clear empties the board. Ids already handed out are not reused.
func (b *board) clear() {
	b.jobs = b.jobs[:0]
	b.descheduled = make(map[int64]bool)
}
