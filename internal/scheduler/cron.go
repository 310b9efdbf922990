package scheduler

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// CronRunner drives ProcessRecurring on a cron cadence. The scheduler itself
// has no notion of time-driven invocation; this is the external trigger.
type CronRunner struct {
	cron      *cron.Cron
	scheduler *RecurringScheduler
	logger    *slog.Logger
}

func NewCronRunner(scheduler *RecurringScheduler, logger *slog.Logger) *CronRunner {
	cronLogger := cron.PrintfLogger(slog.NewLogLogger(logger.Handler(), slog.LevelInfo))
	c := cron.New(cron.WithChain(cron.Recover(cronLogger)))

	return &CronRunner{
		cron:      c,
		scheduler: scheduler,
		logger:    logger,
	}
}

// Start registers the processing job under the given cron expression and
// starts the runner.
func (r *CronRunner) Start(schedule string) error {
	if _, err := r.cron.AddFunc(schedule, r.scheduler.ProcessRecurring); err != nil {
		return err
	}
	r.cron.Start()
	r.logger.Info("recurring processor scheduled", "schedule", schedule)
	return nil
}

// Stop stops the runner; the returned context is done once in-flight jobs
// finish.
func (r *CronRunner) Stop() context.Context {
	return r.cron.Stop()
}
