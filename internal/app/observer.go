package app

import "time"

// Observer receives counters about the poll loop. The metrics package implements it.
type Observer interface {
	CycleFinished(outcome Outcome, duration time.Duration)
	NotificationAttempted(kind string, delivered bool)
}

// NopObserver ignores everything.
type NopObserver struct{}

func (NopObserver) CycleFinished(Outcome, time.Duration) {}
func (NopObserver) NotificationAttempted(string, bool) {}
