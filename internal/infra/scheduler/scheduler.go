package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// DelayWaiter pauses the poll loop for a fixed delay measured from the end of
// the previous cycle, so cycles never overlap.
type DelayWaiter struct {
	schedule cron.ConstantDelaySchedule
	now      func() time.Time
	logger   *logrus.Entry
}

// NewDelayWaiter builds a waiter for the given period. Periods below one second
// are rounded up to one second.
func NewDelayWaiter(period time.Duration, logger *logrus.Entry) *DelayWaiter {
	return &DelayWaiter{
		schedule: cron.Every(period),
		now:      time.Now,
		logger:   logger.WithField("component", "scheduler"),
	}
}

// Period returns the effective delay between two cycles.
func (w *DelayWaiter) Period() time.Duration {
	return w.schedule.Delay
}

// NextRun returns when the next cycle starts if the current one ended at t.
func (w *DelayWaiter) NextRun(t time.Time) time.Time {
	return w.schedule.Next(t)
}

// Wait blocks until the next run time or until ctx is done.
func (w *DelayWaiter) Wait(ctx context.Context) error {
	now := w.now()
	next := w.NextRun(now)
	w.logger.WithField("next_poll_at", next.Format(time.RFC3339)).Debug("Waiting for the next poll")

	timer := time.NewTimer(next.Sub(now))
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
