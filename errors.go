package cronsched

import "errors"

// Sentinel errors returned by Scheduler.Deschedule, per spec.md §7's
// "Scheduling" error kind: neither is fatal, both are returned rather than
// logged since they are a direct response to a caller-supplied id.
var (
	// ErrUnknownJob is returned for an id this Scheduler never issued.
	ErrUnknownJob = errors.New("cronsched: unknown job id")
	// ErrAlreadyDescheduled is returned when id was already marked for
	// deschedule by an earlier call.
	ErrAlreadyDescheduled = errors.New("cronsched: job already marked for deschedule")
)
