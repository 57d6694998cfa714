package cronsched

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cnotch/cronsched/cron"
)

var defaultSchd = New()

func init() {
	defaultSchd.Start()

	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	go handleSignal(c)
}

func handleSignal(c <-chan os.Signal) {
	for sig := range c {
		switch sig {
		case syscall.SIGTERM, syscall.SIGINT:
			log.Warn("default scheduler received signal `%s`, exiting...", sig.String())
			defaultSchd.Stop()
			os.Exit(0)
		}
	}
}

// Cron registers task against expr (see package cron's wire format) on the
// package-level default Scheduler, bounded by limit.
func Cron(expr string, limit Limit, task Task) (int64, error) {
	return defaultSchd.Cron(expr, limit, task)
}

// CronFunc is Cron for a plain function.
func CronFunc(expr string, limit Limit, f func(ctx context.Context) error) (int64, error) {
	return defaultSchd.CronFunc(expr, limit, f)
}

// After schedules task to run once, delay after this call, on the default
// Scheduler.
func After(delay time.Duration, task Task) int64 {
	return defaultSchd.After(delay, task)
}

// AfterFunc is After for a plain function.
func AfterFunc(delay time.Duration, f func(ctx context.Context) error) int64 {
	return defaultSchd.AfterFunc(delay, f)
}

// Period schedules task to run first after initialDelay, then every
// period thereafter, bounded by limit, on the default Scheduler.
func Period(initialDelay, period time.Duration, limit Limit, task Task) int64 {
	return defaultSchd.Period(initialDelay, period, limit, task)
}

// PeriodFunc is Period for a plain function.
func PeriodFunc(initialDelay, period time.Duration, limit Limit, f func(ctx context.Context) error) int64 {
	return defaultSchd.PeriodFunc(initialDelay, period, limit, f)
}

// Schedule registers task against schedule on the default Scheduler,
// bounded by limit.
func Schedule(schedule cron.Schedule, limit Limit, task Task) int64 {
	return defaultSchd.Schedule(schedule, limit, task)
}

// Deschedule marks id for eviction on the default Scheduler.
func Deschedule(id int64) error {
	return defaultSchd.Deschedule(id)
}

// Count returns the job count of the default Scheduler.
func Count() int {
	return defaultSchd.Count()
}

// Location returns the time zone location of the default Scheduler.
func Location() *time.Location {
	return defaultSchd.Location()
}
