package wizard

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-BookingWizard/internal/domain"
)

// Save triggers and results reported to metrics
const (
	triggerAuto   = "auto"
	triggerManual = "manual"

	resultOK      = "ok"
	resultError   = "error"
	resultSkipped = "skipped"
	resultStale   = "stale"
)

// Autosaver debounced draft persistence for one session
type Autosaver struct {
	ctx       context.Context
	store     DraftStore
	userID    int64
	snapshot  func() domain.BookingDraft
	debouncer *Debouncer
	timeout   time.Duration
	metrics   Metrics
	logger    Logger
}

// NewAutosaver snapshot is called when a save actually runs, so the latest draft is saved
func NewAutosaver(
	ctx context.Context,
	store DraftStore,
	userID int64,
	snapshot func() domain.BookingDraft,
	scheduler Scheduler,
	delay time.Duration,
	timeout time.Duration,
	metrics Metrics,
	logger Logger,
) *Autosaver {
	a := &Autosaver{
		ctx:      ctx,
		store:    store,
		userID:   userID,
		snapshot: snapshot,
		timeout:  timeout,
		metrics:  metrics,
		logger:   logger,
	}
	a.debouncer = NewDebouncer(scheduler, delay, a.flush)
	return a
}

// Changed schedules a save after the quiet period, replacing any pending one
func (a *Autosaver) Changed() {
	a.debouncer.Trigger()
}

// SaveNow cancels the pending save and saves immediately
func (a *Autosaver) SaveNow(ctx context.Context) error {
	a.debouncer.Cancel()

	draft := a.snapshot()
	if err := a.store.Save(ctx, a.userID, draft); err != nil {
		a.metrics.ObserveDraftSave(triggerManual, resultError)
		return fmt.Errorf("%w: SaveNow - user=%d: %v", ErrDraftSave, a.userID, err)
	}

	a.metrics.ObserveDraftSave(triggerManual, resultOK)
	return nil
}

// Stop drops the pending save
func (a *Autosaver) Stop() {
	a.debouncer.Cancel()
}

// Pending reports whether a save is scheduled
func (a *Autosaver) Pending() bool {
	return a.debouncer.Pending()
}

// flush runs on the scheduler goroutine. Failures are logged only: the next edit schedules another save.
func (a *Autosaver) flush() {
	if a.ctx.Err() != nil {
		return
	}

	draft := a.snapshot()
	if !draft.HasPersistableContent() {
		a.metrics.ObserveDraftSave(triggerAuto, resultSkipped)
		return
	}

	ctx, cancel := context.WithTimeout(a.ctx, a.timeout)
	defer cancel()

	if err := a.store.Save(ctx, a.userID, draft); err != nil {
		a.metrics.ObserveDraftSave(triggerAuto, resultError)
		a.logger.Warn("Wizard: autosave failed for user=%d: %v", a.userID, err)
		return
	}

	a.metrics.ObserveDraftSave(triggerAuto, resultOK)
}
