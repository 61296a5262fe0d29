// internal/app/poller.go
package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"homework_status_bot/internal/domain/homework"
	"homework_status_bot/internal/domain/notification"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Outcome is the result kind of a single poll cycle.
type Outcome string

const (
	OutcomeNotified  Outcome = "NOTIFIED"  // a new status message was sent
	OutcomeDuplicate Outcome = "DUPLICATE" // same message as last time, suppressed
	OutcomeEmpty     Outcome = "EMPTY"     // no homeworks in the window
	OutcomeFailed    Outcome = "FAILED"    // schema or transport error, reported to the chat
	OutcomeAborted   Outcome = "ABORTED"   // shutdown or unexpected error, nothing reported
)

// CycleResult describes what a poll cycle did.
// Err is set only for OutcomeFailed (a *homework.SchemaError or *homework.TransportError)
// and OutcomeAborted.
type CycleResult struct {
	CycleID string
	Outcome Outcome
	Message string
	Err     error
}

// Waiter blocks between two cycles.
type Waiter interface {
	Wait(ctx context.Context) error
}

// Snapshot is a point-in-time copy of the loop state for read-only consumers.
type Snapshot struct {
	Cursor      int64
	LastMessage string
	LastOutcome Outcome
	LastCycleAt time.Time
	Cycles      int
}

// Poller owns the poll cursor and the last delivered message and runs the
// poll, validate, parse, notify, wait cycle.
type Poller struct {
	source   homework.Source
	notifier MessageNotifier
	waiter   Waiter
	observer Observer
	logger   *logrus.Entry

	// Written only by the cycle goroutine; mu lets Snapshot run concurrently.
	mu          sync.RWMutex
	cursor      int64
	lastSent    string
	lastOutcome Outcome
	lastCycleAt time.Time
	cycles      int
}

func NewPoller(
	source homework.Source,
	notifier MessageNotifier,
	waiter Waiter,
	observer Observer,
	logger *logrus.Entry,
	startCursor int64,
) *Poller {
	if observer == nil {
		observer = NopObserver{}
	}
	return &Poller{
		source:   source,
		notifier: notifier,
		waiter:   waiter,
		observer: observer,
		logger:   logger.WithField("component", "poller"),
		cursor:   startCursor,
	}
}

// Run executes cycles until ctx is cancelled. A failing cycle never stops the loop.
func (p *Poller) Run(ctx context.Context) error {
	p.logger.WithField("cursor", p.Snapshot().Cursor).Info("Poll loop started")
	for {
		p.RunCycle(ctx)

		if err := p.waiter.Wait(ctx); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				p.logger.Info("Poll loop stopped")
				return nil
			}
			return fmt.Errorf("wait between cycles: %w", err)
		}
	}
}

// RunCycle performs exactly one poll cycle without the trailing wait.
func (p *Poller) RunCycle(ctx context.Context) CycleResult {
	started := time.Now()
	cycleID := uuid.NewString()
	logCtx := p.logger.WithField("cycle_id", cycleID)

	result := p.poll(ctx, logCtx, cycleID)
	result.CycleID = cycleID

	switch result.Outcome {
	case OutcomeFailed:
		logCtx.WithError(result.Err).Error("Poll cycle failed")
		p.notifier.Notify(ctx, Message{
			Kind:    notification.KindFailure,
			Text:    FailureMessage(result.Err),
			CycleID: cycleID,
			Cursor:  p.Snapshot().Cursor,
		})
	case OutcomeAborted:
		if ctx.Err() != nil {
			logCtx.WithError(result.Err).Warn("Poll cycle interrupted by shutdown")
		} else {
			logCtx.WithError(result.Err).Error("Poll cycle aborted by an unexpected error")
		}
	}

	p.mu.Lock()
	p.lastOutcome = result.Outcome
	p.lastCycleAt = time.Now()
	p.cycles++
	p.mu.Unlock()

	p.observer.CycleFinished(result.Outcome, time.Since(started))
	return result
}

func (p *Poller) poll(ctx context.Context, logCtx *logrus.Entry, cycleID string) CycleResult {
	cursor := p.Snapshot().Cursor

	raw, err := p.source.FetchStatuses(ctx, cursor)
	if err != nil {
		return classify(ctx, err)
	}

	resp, err := homework.ValidateResponse(raw)
	if err != nil {
		return classify(ctx, err)
	}
	logCtx.WithField("count", len(resp.Homeworks)).Info("Homework list received")

	if len(resp.Homeworks) == 0 {
		// An empty window carries no new cursor information: keep polling from the same point.
		logCtx.Info("No new homework statuses")
		return CycleResult{Outcome: OutcomeEmpty}
	}

	text, err := homework.ParseStatus(resp.Homeworks[0])
	if err != nil {
		return classify(ctx, err)
	}

	p.mu.RLock()
	duplicate := text == p.lastSent
	p.mu.RUnlock()

	if duplicate {
		logCtx.Debug("Status unchanged since last notification, skipping")
		p.advance(resp.CurrentDate)
		return CycleResult{Outcome: OutcomeDuplicate, Message: text}
	}

	p.notifier.Notify(ctx, Message{
		Kind:    notification.KindStatusChange,
		Text:    text,
		CycleID: cycleID,
		Cursor:  cursor,
	})
	p.mu.Lock()
	p.lastSent = text
	p.mu.Unlock()
	p.advance(resp.CurrentDate)

	return CycleResult{Outcome: OutcomeNotified, Message: text}
}

// advance moves the cursor forward; it never goes back.
func (p *Poller) advance(next int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if next > p.cursor {
		p.cursor = next
		return
	}
	if next < p.cursor {
		p.logger.WithFields(logrus.Fields{
			"cursor":      p.cursor,
			"next_cursor": next,
		}).Warn("API returned a cursor in the past, keeping the current one")
	}
}

// Snapshot returns a copy of the loop state. Safe for concurrent use.
func (p *Poller) Snapshot() Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return Snapshot{
		Cursor:      p.cursor,
		LastMessage: p.lastSent,
		LastOutcome: p.lastOutcome,
		LastCycleAt: p.lastCycleAt,
		Cycles:      p.cycles,
	}
}

// classify maps an error to a cycle outcome. Only schema and transport errors are
// retryable cycle failures; anything caused by shutdown aborts the cycle quietly.
func classify(ctx context.Context, err error) CycleResult {
	if ctx.Err() != nil {
		return CycleResult{Outcome: OutcomeAborted, Err: err}
	}
	var schemaErr *homework.SchemaError
	var transportErr *homework.TransportError
	if errors.As(err, &schemaErr) || errors.As(err, &transportErr) {
		return CycleResult{Outcome: OutcomeFailed, Err: err}
	}
	return CycleResult{Outcome: OutcomeAborted, Err: err}
}

// FailureMessage renders the chat message for a failed cycle.
func FailureMessage(err error) string {
	return fmt.Sprintf("Program failure: %v", err)
}
