package wizard

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/SMC-BookingWizard/internal/domain"
	"github.com/m04kA/SMC-BookingWizard/internal/integrations/marketplace"
	createBooking "github.com/m04kA/SMC-BookingWizard/internal/usecase/create_booking"
	"github.com/m04kA/SMC-BookingWizard/pkg/logger"
)

// fakeScheduler manual clock: timers fire only on Advance
type fakeScheduler struct {
	mu     sync.Mutex
	now    time.Duration
	timers []*fakeTimer
}

type fakeTimer struct {
	s       *fakeScheduler
	at      time.Duration
	f       func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

func (s *fakeScheduler) AfterFunc(d time.Duration, f func()) Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &fakeTimer{s: s, at: s.now + d, f: f}
	s.timers = append(s.timers, t)
	return t
}

func (s *fakeScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	s.now += d
	var due []*fakeTimer
	for _, t := range s.timers {
		if !t.stopped && !t.fired && t.at <= s.now {
			t.fired = true
			due = append(due, t)
		}
	}
	s.mu.Unlock()

	sort.SliceStable(due, func(i, j int) bool { return due[i].at < due[j].at })
	for _, t := range due {
		t.f()
	}
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Add(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

type fakeStore struct {
	mu      sync.Mutex
	saved   *domain.BookingDraft
	saves   []domain.BookingDraft
	loadErr error
	saveErr error
}

func (s *fakeStore) Load(context.Context, int64) (*domain.BookingDraft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	if s.saved == nil {
		return nil, nil
	}
	d := s.saved.Clone()
	return &d, nil
}

func (s *fakeStore) Save(_ context.Context, _ int64, d domain.BookingDraft) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saves = append(s.saves, d.Clone())
	return nil
}

func (s *fakeStore) Saves() []domain.BookingDraft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.BookingDraft(nil), s.saves...)
}

func (s *fakeStore) SetSaveErr(err error) {
	s.mu.Lock()
	s.saveErr = err
	s.mu.Unlock()
}

type fakeMarketplace struct {
	cleaners map[string]*marketplace.Cleaner
	estimate func(req *marketplace.EstimateRequest) (*marketplace.Estimate, error)
}

func (m *fakeMarketplace) GetCleaner(_ context.Context, id string) (*marketplace.Cleaner, error) {
	c, ok := m.cleaners[id]
	if !ok {
		return nil, marketplace.ErrCleanerNotFound
	}
	return c, nil
}

func (m *fakeMarketplace) EstimatePrice(_ context.Context, req *marketplace.EstimateRequest) (*marketplace.Estimate, error) {
	if m.estimate == nil {
		return &marketplace.Estimate{Price: 99}, nil
	}
	return m.estimate(req)
}

type fakeHolidays struct {
	lookup func(date string) (*domain.Holiday, error)
}

func (h *fakeHolidays) LookupHoliday(_ context.Context, date string) (*domain.Holiday, error) {
	if h.lookup == nil {
		return nil, nil
	}
	return h.lookup(date)
}

type fakeCreator struct {
	mu      sync.Mutex
	calls   []*createBooking.Request
	execute func(req *createBooking.Request) (*createBooking.Response, error)
}

func (c *fakeCreator) Execute(_ context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	c.mu.Lock()
	c.calls = append(c.calls, req)
	exec := c.execute
	c.mu.Unlock()

	if exec == nil {
		return &domain.CreatedBooking{ID: "bk-1", Status: domain.StatusPending}, nil
	}
	return exec(req)
}

func (c *fakeCreator) Calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.calls)
}

type fakeNotifier struct {
	mu      sync.Mutex
	notices []domain.Notice
	closed  []string
}

func (n *fakeNotifier) Notify(_ string, notice domain.Notice) {
	n.mu.Lock()
	n.notices = append(n.notices, notice)
	n.mu.Unlock()
}

func (n *fakeNotifier) CloseSession(id string) {
	n.mu.Lock()
	n.closed = append(n.closed, id)
	n.mu.Unlock()
}

type fakeMetrics struct {
	mu     sync.Mutex
	counts map[string]int
	active int
}

func (m *fakeMetrics) inc(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.counts == nil {
		m.counts = make(map[string]int)
	}
	m.counts[key]++
}

func (m *fakeMetrics) ObserveDraftSave(trigger, result string) { m.inc("save:" + trigger + ":" + result) }
func (m *fakeMetrics) ObserveLookup(kind, result string)       { m.inc("lookup:" + kind + ":" + result) }
func (m *fakeMetrics) ObserveSubmission(result string)         { m.inc("submit:" + result) }

func (m *fakeMetrics) SetActiveSessions(n int) {
	m.mu.Lock()
	m.active = n
	m.mu.Unlock()
}

func (m *fakeMetrics) Count(key string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counts[key]
}

type harness struct {
	manager  *Manager
	sched    *fakeScheduler
	clock    *fakeClock
	store    *fakeStore
	market   *fakeMarketplace
	holidays *fakeHolidays
	creator  *fakeCreator
	notifier *fakeNotifier
	metrics  *fakeMetrics
}

const (
	testUser    = int64(42)
	testCleaner = "cl-1"
)

func newHarness() *harness {
	rate := 30.0
	h := &harness{
		sched: &fakeScheduler{},
		clock: &fakeClock{now: time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)},
		store: &fakeStore{},
		market: &fakeMarketplace{cleaners: map[string]*marketplace.Cleaner{
			testCleaner: {ID: testCleaner, Name: "Ana", PricePerHour: &rate, Rating: 4.9, ReviewsCount: 120},
			"cl-norate": {ID: "cl-norate", Name: "New"},
		}},
		holidays: &fakeHolidays{},
		creator:  &fakeCreator{},
		notifier: &fakeNotifier{},
		metrics:  &fakeMetrics{},
	}
	h.manager = NewManager(Dependencies{
		Drafts:      h.store,
		Marketplace: h.market,
		Holidays:    h.holidays,
		Creator:     h.creator,
		Notifier:    h.notifier,
		Metrics:     h.metrics,
		Logger:      logger.Nop(),
		Scheduler:   h.sched,
		Clock:       h.clock,
	}, DefaultConfig())
	return h
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
