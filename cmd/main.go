package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	closeSessionHandler "github.com/m04kA/SMC-BookingWizard/internal/api/handlers/close_session"
	getDraftHandler "github.com/m04kA/SMC-BookingWizard/internal/api/handlers/get_draft"
	getSessionHandler "github.com/m04kA/SMC-BookingWizard/internal/api/handlers/get_session"
	navigateStepHandler "github.com/m04kA/SMC-BookingWizard/internal/api/handlers/navigate_step"
	putDraftHandler "github.com/m04kA/SMC-BookingWizard/internal/api/handlers/put_draft"
	quotePriceHandler "github.com/m04kA/SMC-BookingWizard/internal/api/handlers/quote_price"
	saveDraftHandler "github.com/m04kA/SMC-BookingWizard/internal/api/handlers/save_draft"
	sessionNoticesHandler "github.com/m04kA/SMC-BookingWizard/internal/api/handlers/session_notices"
	startSessionHandler "github.com/m04kA/SMC-BookingWizard/internal/api/handlers/start_session"
	submitBookingHandler "github.com/m04kA/SMC-BookingWizard/internal/api/handlers/submit_booking"
	updateDraftHandler "github.com/m04kA/SMC-BookingWizard/internal/api/handlers/update_draft"
	"github.com/m04kA/SMC-BookingWizard/internal/api/middleware"
	"github.com/m04kA/SMC-BookingWizard/internal/config"
	"github.com/m04kA/SMC-BookingWizard/internal/infra/broker"
	holidayCache "github.com/m04kA/SMC-BookingWizard/internal/infra/cache/holiday"
	draftRepo "github.com/m04kA/SMC-BookingWizard/internal/infra/storage/draft"
	marketplaceClient "github.com/m04kA/SMC-BookingWizard/internal/integrations/marketplace"
	"github.com/m04kA/SMC-BookingWizard/internal/realtime"
	draftsService "github.com/m04kA/SMC-BookingWizard/internal/service/drafts"
	createBookingUC "github.com/m04kA/SMC-BookingWizard/internal/usecase/create_booking"
	"github.com/m04kA/SMC-BookingWizard/internal/wizard"
	"github.com/m04kA/SMC-BookingWizard/pkg/dbmetrics"
	"github.com/m04kA/SMC-BookingWizard/pkg/logger"
	"github.com/m04kA/SMC-BookingWizard/pkg/metrics"
)

// eventPublisher публикация событий бронирования с закрытием соединения
type eventPublisher interface {
	createBookingUC.EventPublisher
	Close() error
}

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-BookingWizard...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	// nil *metrics.Metrics безопасен: все методы no-op
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем репозиторий черновиков (с метриками или без)
	var draftRepository *draftRepo.Repository
	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		draftRepository = draftRepo.NewRepository(wrappedDB)
		log.Info("Database metrics collection started")
	} else {
		draftRepository = draftRepo.NewRepository(db)
	}

	// Подключаемся к Redis (кеш праздников)
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		pingCtx, pingCancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			// Кеш необязателен: без Redis праздники запрашиваются напрямую
			log.Warn("Redis is unavailable at %s, holiday cache disabled: %v", cfg.Redis.Addr, err)
			redisClient = nil
		} else {
			log.Info("Connected to Redis at %s", cfg.Redis.Addr)
		}
		pingCancel()
	}

	// Инициализируем клиента маркетплейса
	marketplace := marketplaceClient.NewClient(
		cfg.Marketplace.URL,
		cfg.Marketplace.Token,
		time.Duration(cfg.Marketplace.Timeout)*time.Second,
		log,
	)
	log.Info("Marketplace client initialized (url=%s, timeout=%ds)", cfg.Marketplace.URL, cfg.Marketplace.Timeout)

	holidays := holidayCache.NewCache(
		redisClient,
		marketplace,
		time.Duration(cfg.Redis.HolidayTTL)*time.Second,
		log,
	)

	// Инициализируем публикацию событий
	var publisher eventPublisher = broker.NopPublisher{}
	if cfg.Kafka.Enabled {
		publisher = broker.NewKafkaPublisher(
			cfg.Kafka.Brokers,
			cfg.Kafka.Topic,
			time.Duration(cfg.Kafka.WriteTimeout)*time.Second,
			log,
		)
		log.Info("Kafka publisher initialized (brokers=%v, topic=%s)", cfg.Kafka.Brokers, cfg.Kafka.Topic)
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			log.Error("Failed to close event publisher: %v", err)
		}
	}()

	// Инициализируем сервисы и use cases
	draftSvc := draftsService.NewService(draftRepository, log)
	createBookingUseCase := createBookingUC.NewUseCase(marketplace, publisher, log)

	// Realtime уведомления и менеджер сессий визарда
	hub := realtime.NewHub(log)

	wizardManager := wizard.NewManager(wizard.Dependencies{
		Drafts:      draftSvc,
		Marketplace: marketplace,
		Holidays:    holidays,
		Creator:     createBookingUseCase,
		Notifier:    hub,
		Metrics:     metricsCollector,
		Logger:      log,
	}, wizard.Config{
		AutosaveDelay: cfg.Wizard.AutosaveDelay(),
		SaveTimeout:   time.Duration(cfg.Wizard.SaveTimeout) * time.Second,
		LookupTimeout: time.Duration(cfg.Wizard.LookupTimeout) * time.Second,
		SessionTTL:    time.Duration(cfg.Wizard.SessionTTL) * time.Second,
	})

	bgCtx, stopBackground := context.WithCancel(context.Background())
	defer stopBackground()
	go wizardManager.Run(bgCtx, time.Duration(cfg.Wizard.SweepInterval)*time.Second)

	// Инициализируем handlers
	startSession := startSessionHandler.NewHandler(wizardManager, log)
	getSession := getSessionHandler.NewHandler(wizardManager, log)
	updateDraft := updateDraftHandler.NewHandler(wizardManager, log)
	navigateStep := navigateStepHandler.NewHandler(wizardManager, log)
	saveDraft := saveDraftHandler.NewHandler(wizardManager, log)
	submitBooking := submitBookingHandler.NewHandler(wizardManager, log)
	closeSession := closeSessionHandler.NewHandler(wizardManager, log)
	sessionNotices := sessionNoticesHandler.NewHandler(wizardManager, hub, cfg.Server.AllowedOrigins, log)
	getDraft := getDraftHandler.NewHandler(draftSvc, log)
	putDraft := putDraftHandler.NewHandler(draftSvc, log)
	quotePrice := quotePriceHandler.NewHandler(log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Расчёт разбивки цены
	api.HandleFunc("/pricing/quote", quotePrice.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
		protected.Use(limiter.Middleware)
		go runLimiterCleanup(bgCtx, limiter, log)
		log.Info("Rate limiting enabled (rps=%.1f, burst=%d)", cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	}

	// --- Сессии визарда ---
	protected.HandleFunc("/wizard/sessions", startSession.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/wizard/sessions/{sessionId}", getSession.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/wizard/sessions/{sessionId}", closeSession.Handle).Methods(http.MethodDelete)

	// Правка формы и навигация по шагам
	protected.HandleFunc("/wizard/sessions/{sessionId}/draft", updateDraft.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/wizard/sessions/{sessionId}/next", navigateStep.HandleNext).Methods(http.MethodPost)
	protected.HandleFunc("/wizard/sessions/{sessionId}/back", navigateStep.HandleBack).Methods(http.MethodPost)

	// Ручное сохранение черновика и создание бронирования
	protected.HandleFunc("/wizard/sessions/{sessionId}/draft/save", saveDraft.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/wizard/sessions/{sessionId}/submit", submitBooking.Handle).Methods(http.MethodPost)

	// Websocket с уведомлениями сессии
	protected.HandleFunc("/wizard/sessions/{sessionId}/notices", sessionNotices.Handle).Methods(http.MethodGet)

	// --- Хранилище черновиков ---
	protected.HandleFunc("/drafts/booking", getDraft.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/drafts/booking", putDraft.Handle).Methods(http.MethodPut)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем фоновые задачи и сбор метрик connection pool
	stopBackground()
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Сессии закрываются после HTTP сервера: отложенные автосохранения отбрасываются
	wizardManager.Shutdown()
	log.Info("Wizard sessions closed")

	log.Info("Server stopped gracefully")
}

// runLimiterCleanup удаляет лимитеры неактивных пользователей
func runLimiterCleanup(ctx context.Context, limiter *middleware.RateLimiter, log *logger.Logger) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := limiter.Cleanup(now); n > 0 {
				log.Debug("Rate limiter: removed %d idle entries", n)
			}
		}
	}
}
