package wizard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/m04kA/SMC-BookingWizard/internal/domain"
	"github.com/m04kA/SMC-BookingWizard/internal/integrations/marketplace"
	"github.com/m04kA/SMC-BookingWizard/internal/service/pricing"
	createBooking "github.com/m04kA/SMC-BookingWizard/internal/usecase/create_booking"
)

// Lookup kinds reported to metrics
const (
	lookupHoliday  = "holiday"
	lookupEstimate = "estimate"
)

// Session one booking wizard of one user.
// All state is guarded by mu; network calls run on their own goroutines and
// write back through resolve* methods, which drop responses superseded by a
// newer request of the same kind.
type Session struct {
	id             string
	userID         int64
	cleaner        domain.Cleaner
	idempotencyKey string
	createdAt      time.Time

	deps      *dependencies
	ctx       context.Context
	cancel    context.CancelFunc
	autosaver *Autosaver
	inflight  sync.WaitGroup

	mu           sync.Mutex
	draft        domain.BookingDraft
	steps        *StepController
	lastActivity time.Time
	closed       bool

	holiday        *domain.Holiday
	holidayLoading bool
	holidaySeq     uint64

	estimatePrice     *float64
	estimateAvailable bool
	estimateLoading   bool
	estimateSeq       uint64

	breakdown domain.PriceBreakdown
	notices   []domain.Notice

	submitting bool
	booking    *domain.CreatedBooking
}

func newSession(deps *dependencies, id, idempotencyKey string, userID int64, cleaner domain.Cleaner, draft domain.BookingDraft) *Session {
	ctx, cancel := context.WithCancel(context.Background())
	now := deps.clock.Now()

	s := &Session{
		id:             id,
		userID:         userID,
		cleaner:        cleaner,
		idempotencyKey: idempotencyKey,
		createdAt:      now,
		deps:           deps,
		ctx:            ctx,
		cancel:         cancel,
		draft:          draft,
		steps:          NewStepController(),
		lastActivity:   now,
	}
	s.autosaver = NewAutosaver(
		ctx,
		deps.drafts,
		userID,
		s.snapshot,
		deps.scheduler,
		deps.cfg.AutosaveDelay,
		deps.cfg.SaveTimeout,
		deps.metrics,
		deps.logger,
	)
	return s
}

// start issues the initial lookups for a freshly created or restored draft
func (s *Session) start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.recomputeLocked()
	s.requestEstimateLocked()
	if s.draft.ScheduledDate != "" {
		s.requestHolidayLocked(s.draft.ScheduledDate)
	}
}

func (s *Session) ID() string { return s.id }

func (s *Session) UserID() int64 { return s.userID }

// IdempotencyKey sent with the booking-create request of this session
func (s *Session) IdempotencyKey() string { return s.idempotencyKey }

// View current state of the session
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

// UpdateDraft applies one form edit. A date change starts a holiday lookup,
// a service/duration/add-on change starts a price estimate, any change
// restarts the autosave quiet period.
func (s *Session) UpdateDraft(patch domain.DraftPatch) (View, error) {
	s.mu.Lock()
	if err := s.checkEditableLocked(); err != nil {
		s.mu.Unlock()
		return View{}, err
	}

	changes, err := patch.Apply(&s.draft)
	if err != nil {
		s.mu.Unlock()
		return View{}, fmt.Errorf("%w: %w", ErrInvalidDraft, err)
	}

	s.lastActivity = s.deps.clock.Now()
	if changes.DateChanged {
		s.requestHolidayLocked(s.draft.ScheduledDate)
	}
	if changes.PricingChanged {
		s.requestEstimateLocked()
	}
	s.recomputeLocked()
	view := s.viewLocked()
	s.mu.Unlock()

	if changes.Changed {
		s.autosaver.Changed()
	}
	return view, nil
}

// Advance moves to the next step; no-op on the confirm step.
// Navigation is frozen while a submission is pending and after it succeeded.
func (s *Session) Advance() (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkEditableLocked(); err != nil {
		return View{}, err
	}
	s.steps.Advance()
	s.lastActivity = s.deps.clock.Now()
	return s.viewLocked(), nil
}

// Retreat moves to the previous step; no-op on the first step
func (s *Session) Retreat() (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkEditableLocked(); err != nil {
		return View{}, err
	}
	s.steps.Retreat()
	s.lastActivity = s.deps.clock.Now()
	return s.viewLocked(), nil
}

// SaveDraft manual "Save Draft": bypasses the debounce and saves right away.
// A failure is returned to the caller and no notice is posted.
func (s *Session) SaveDraft(ctx context.Context) (View, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return View{}, ErrSessionClosed
	}
	s.lastActivity = s.deps.clock.Now()
	s.mu.Unlock()

	if err := s.autosaver.SaveNow(ctx); err != nil {
		s.deps.logger.Warn("Wizard: manual save failed: session=%s, user=%d: %v", s.id, s.userID, err)
		return View{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.postLocked(domain.NoticeSuccess, "Draft saved", "You can come back and finish your booking later.")
	return s.viewLocked(), nil
}

// Submit creates the booking from the confirm step.
// On failure the wizard stays on the confirm step and an error notice carries
// the backend message, so the user can fix the draft and retry.
func (s *Session) Submit(ctx context.Context) (View, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return View{}, ErrSessionClosed
	}
	switch {
	case s.booking != nil:
		s.mu.Unlock()
		return View{}, ErrAlreadySubmitted
	case s.submitting:
		s.mu.Unlock()
		return View{}, ErrSubmissionInProgress
	case !s.steps.IsTerminal():
		s.mu.Unlock()
		return View{}, ErrNotTerminalStep
	}

	s.submitting = true
	s.lastActivity = s.deps.clock.Now()
	req := &createBooking.Request{
		UserID:         s.userID,
		CleanerID:      s.cleaner.ID,
		Draft:          s.draft.Clone(),
		IdempotencyKey: s.idempotencyKey,
	}
	s.mu.Unlock()

	created, err := s.deps.creator.Execute(ctx, req)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.submitting = false

	if err != nil {
		s.deps.metrics.ObserveSubmission(resultError)
		s.postLocked(domain.NoticeError, "Booking failed", createBooking.UserMessage(err))
		return s.viewLocked(), err
	}

	s.booking = created
	s.deps.metrics.ObserveSubmission(resultOK)
	s.postLocked(domain.NoticeSuccess, "Booking created", "Your cleaner will confirm the booking shortly.")
	s.deps.logger.Info("Wizard: booking submitted: session=%s, user=%d, booking=%s", s.id, s.userID, created.ID)
	return s.viewLocked(), nil
}

// WaitIdle blocks until every lookup issued so far has resolved
func (s *Session) WaitIdle() {
	s.inflight.Wait()
}

// Close stops the pending autosave, cancels in-flight lookups and detaches subscribers
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()

	s.autosaver.Stop()
	s.cancel()
	s.deps.notifier.CloseSession(s.id)
	s.inflight.Wait()
}

// idleSince time of the last user action
func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActivity
}

func (s *Session) snapshot() domain.BookingDraft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft.Clone()
}

func (s *Session) checkEditableLocked() error {
	switch {
	case s.closed:
		return ErrSessionClosed
	case s.booking != nil:
		return ErrAlreadySubmitted
	case s.submitting:
		return ErrSubmissionInProgress
	}
	return nil
}

// requestHolidayLocked empty date clears the holiday synchronously
func (s *Session) requestHolidayLocked(date string) {
	s.holidaySeq++
	seq := s.holidaySeq
	s.holiday = nil

	if date == "" {
		s.holidayLoading = false
		return
	}
	s.holidayLoading = true

	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()

		ctx, cancel := context.WithTimeout(s.ctx, s.deps.cfg.LookupTimeout)
		defer cancel()

		h, err := s.deps.holidays.LookupHoliday(ctx, date)
		s.resolveHoliday(seq, date, h, err)
	}()
}

// resolveHoliday lookup errors are treated as "no holiday" and never shown
func (s *Session) resolveHoliday(seq uint64, date string, h *domain.Holiday, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.holidaySeq || s.closed {
		s.deps.metrics.ObserveLookup(lookupHoliday, resultStale)
		return
	}

	if err != nil {
		s.deps.metrics.ObserveLookup(lookupHoliday, resultError)
		if !errors.Is(err, context.Canceled) {
			s.deps.logger.Warn("Wizard: holiday lookup failed: session=%s, date=%s: %v", s.id, date, err)
		}
		h = nil
	} else {
		s.deps.metrics.ObserveLookup(lookupHoliday, resultOK)
	}

	s.holiday = h
	s.holidayLoading = false
	s.recomputeLocked()
}

func (s *Session) requestEstimateLocked() {
	s.estimateSeq++
	seq := s.estimateSeq
	s.estimateLoading = true

	addOns := domain.NormalizeAddOns(s.draft.AddOns)
	if addOns == nil {
		addOns = []string{}
	}
	req := &marketplace.EstimateRequest{
		CleanerID:     s.cleaner.ID,
		ServiceType:   string(s.draft.ServiceType),
		DurationHours: s.draft.DurationHours,
		AddOns:        addOns,
	}

	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()

		ctx, cancel := context.WithTimeout(s.ctx, s.deps.cfg.LookupTimeout)
		defer cancel()

		est, err := s.deps.marketplace.EstimatePrice(ctx, req)
		s.resolveEstimate(seq, est, err)
	}()
}

// resolveEstimate a failed estimate falls back to the degraded breakdown
func (s *Session) resolveEstimate(seq uint64, est *marketplace.Estimate, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.estimateSeq || s.closed {
		s.deps.metrics.ObserveLookup(lookupEstimate, resultStale)
		return
	}

	s.estimateLoading = false
	if err != nil || est == nil {
		s.deps.metrics.ObserveLookup(lookupEstimate, resultError)
		if err != nil && !errors.Is(err, context.Canceled) {
			s.deps.logger.Warn("Wizard: price estimate failed: session=%s: %v", s.id, err)
		}
		s.estimatePrice = nil
		s.estimateAvailable = false
	} else {
		s.deps.metrics.ObserveLookup(lookupEstimate, resultOK)
		price := est.Price
		s.estimatePrice = &price
		s.estimateAvailable = true
	}
	s.recomputeLocked()
}

// recomputeLocked replaces the breakdown wholesale
func (s *Session) recomputeLocked() {
	s.breakdown = pricing.Calculate(pricing.Input{
		EstimateAvailable: s.estimateAvailable,
		BaseRate:          s.cleaner.PricePerHour,
		DurationHours:     s.draft.DurationHours,
		AddOns:            s.draft.AddOns,
		Holiday:           s.holiday,
	})
}

// postLocked keeps the last MaxSessionNotices notices and pushes the new one to subscribers
func (s *Session) postLocked(level domain.NoticeLevel, title, message string) {
	n := domain.Notice{
		Level:     level,
		Title:     title,
		Message:   message,
		CreatedAt: s.deps.clock.Now().UTC(),
	}
	s.notices = append(s.notices, n)
	if over := len(s.notices) - domain.MaxSessionNotices; over > 0 {
		s.notices = append([]domain.Notice(nil), s.notices[over:]...)
	}
	s.deps.notifier.Notify(s.id, n)
}
