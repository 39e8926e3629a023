package wizard

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-BookingWizard/internal/domain"
	"github.com/m04kA/SMC-BookingWizard/internal/integrations/marketplace"
)

// Config параметры визарда
type Config struct {
	AutosaveDelay time.Duration // тишина после последней правки перед автосохранением
	SaveTimeout   time.Duration // таймаут одного автосохранения
	LookupTimeout time.Duration // таймаут запросов праздника и оценки цены
	SessionTTL    time.Duration // сессия без действий дольше TTL удаляется Sweep
}

// DefaultConfig значения по умолчанию
func DefaultConfig() Config {
	return Config{
		AutosaveDelay: domain.AutosaveDelay,
		SaveTimeout:   5 * time.Second,
		LookupTimeout: 5 * time.Second,
		SessionTTL:    30 * time.Minute,
	}
}

// Dependencies внешние зависимости визарда
type Dependencies struct {
	Drafts      DraftStore
	Marketplace MarketplaceClient
	Holidays    HolidayLookup
	Creator     BookingCreator
	Notifier    Notifier
	Metrics     Metrics
	Logger      Logger

	// Scheduler и Clock необязательны: по умолчанию time.AfterFunc и time.Now
	Scheduler Scheduler
	Clock     TimeProvider
}

type dependencies struct {
	drafts      DraftStore
	marketplace MarketplaceClient
	holidays    HolidayLookup
	creator     BookingCreator
	notifier    Notifier
	metrics     Metrics
	logger      Logger
	scheduler   Scheduler
	clock       TimeProvider
	cfg         Config
}

// Manager реестр активных сессий визарда
type Manager struct {
	deps *dependencies

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewManager создает новый экземпляр менеджера сессий
func NewManager(deps Dependencies, cfg Config) *Manager {
	d := &dependencies{
		drafts:      deps.Drafts,
		marketplace: deps.Marketplace,
		holidays:    deps.Holidays,
		creator:     deps.Creator,
		notifier:    deps.Notifier,
		metrics:     deps.Metrics,
		logger:      deps.Logger,
		scheduler:   deps.Scheduler,
		clock:       deps.Clock,
		cfg:         cfg,
	}
	if d.scheduler == nil {
		d.scheduler = RealScheduler{}
	}
	if d.clock == nil {
		d.clock = &RealTimeProvider{}
	}
	if d.notifier == nil {
		d.notifier = NopNotifier{}
	}
	if d.metrics == nil {
		d.metrics = nopMetrics{}
	}

	return &Manager{
		deps:     d,
		sessions: make(map[string]*Session),
	}
}

// Start открывает визард для клинера
// Сохранённый черновик пользователя подмешивается к значениям по умолчанию;
// ошибка загрузки черновика не мешает открыть визард
func (m *Manager) Start(ctx context.Context, userID int64, cleanerID string) (*Session, error) {
	cleanerID = strings.TrimSpace(cleanerID)
	if cleanerID == "" {
		return nil, ErrCleanerRequired
	}

	// 1. Получаем клинера
	resp, err := m.deps.marketplace.GetCleaner(ctx, cleanerID)
	if err != nil {
		if errors.Is(err, marketplace.ErrCleanerNotFound) {
			m.deps.logger.Warn("Wizard: cleaner id=%s not found", cleanerID)
			return nil, ErrCleanerNotFound
		}
		m.deps.logger.Error("Wizard: failed to get cleaner id=%s: %v", cleanerID, err)
		return nil, fmt.Errorf("%w: Start - get cleaner: %v", ErrInternal, err)
	}
	cleaner := resp.ToDomain()

	// 2. Восстанавливаем черновик
	draft := domain.NewBookingDraft()
	restored := false
	saved, err := m.deps.drafts.Load(ctx, userID)
	if err != nil {
		m.deps.logger.Warn("Wizard: failed to load draft for user=%d: %v", userID, err)
	} else if saved != nil {
		draft = draft.Merge(*saved)
		restored = true
	}

	// 3. Создаем сессию
	s := newSession(m.deps, uuid.NewString(), uuid.NewString(), userID, *cleaner, draft)
	if restored {
		s.mu.Lock()
		s.postLocked(domain.NoticeInfo, "Draft restored", "We restored your unfinished booking.")
		s.mu.Unlock()
	}
	s.start()

	m.mu.Lock()
	m.sessions[s.id] = s
	active := len(m.sessions)
	m.mu.Unlock()

	m.deps.metrics.SetActiveSessions(active)
	m.deps.logger.Info("Wizard: session started: id=%s, user=%d, cleaner=%s, restored=%t", s.id, userID, cleanerID, restored)
	return s, nil
}

// Get возвращает сессию пользователя
func (m *Manager) Get(sessionID string, userID int64) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[sessionID]
	m.mu.RUnlock()

	if !ok {
		return nil, ErrSessionNotFound
	}
	if s.userID != userID {
		return nil, ErrAccessDenied
	}
	return s, nil
}

// Close закрывает сессию пользователя
func (m *Manager) Close(sessionID string, userID int64) error {
	s, err := m.Get(sessionID, userID)
	if err != nil {
		return err
	}

	m.remove(s)
	m.deps.logger.Info("Wizard: session closed: id=%s, user=%d", sessionID, userID)
	return nil
}

// Sweep закрывает сессии, неактивные дольше SessionTTL; возвращает их количество
func (m *Manager) Sweep(now time.Time) int {
	m.mu.RLock()
	var expired []*Session
	for _, s := range m.sessions {
		if now.Sub(s.idleSince()) > m.deps.cfg.SessionTTL {
			expired = append(expired, s)
		}
	}
	m.mu.RUnlock()

	for _, s := range expired {
		m.remove(s)
	}
	if len(expired) > 0 {
		m.deps.logger.Info("Wizard: swept %d idle sessions", len(expired))
	}
	return len(expired)
}

// Run периодически вызывает Sweep до отмены ctx
func (m *Manager) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			m.Sweep(now)
		}
	}
}

// Shutdown закрывает все сессии
func (m *Manager) Shutdown() {
	m.mu.Lock()
	all := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		all = append(all, s)
	}
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()

	for _, s := range all {
		s.Close()
	}
	m.deps.metrics.SetActiveSessions(0)
}

// Active количество открытых сессий
func (m *Manager) Active() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

func (m *Manager) remove(s *Session) {
	m.mu.Lock()
	delete(m.sessions, s.id)
	active := len(m.sessions)
	m.mu.Unlock()

	s.Close()
	m.deps.metrics.SetActiveSessions(active)
}
