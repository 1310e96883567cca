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

	cancelBookingHandler "github.com/felixnatanaelbutarbutar/KMH-CounselingService/internal/api/handlers/cancel_booking"
	decideBookingHandler "github.com/felixnatanaelbutarbutar/KMH-CounselingService/internal/api/handlers/decide_booking"
	getAvailabilityHandler "github.com/felixnatanaelbutarbutar/KMH-CounselingService/internal/api/handlers/get_availability"
	getBookingHandler "github.com/felixnatanaelbutarbutar/KMH-CounselingService/internal/api/handlers/get_booking"
	getPolicyHandler "github.com/felixnatanaelbutarbutar/KMH-CounselingService/internal/api/handlers/get_policy"
	getRequesterBookingsHandler "github.com/felixnatanaelbutarbutar/KMH-CounselingService/internal/api/handlers/get_requester_bookings"
	listBookingsHandler "github.com/felixnatanaelbutarbutar/KMH-CounselingService/internal/api/handlers/list_bookings"
	listEventsHandler "github.com/felixnatanaelbutarbutar/KMH-CounselingService/internal/api/handlers/list_events"
	submitBookingHandler "github.com/felixnatanaelbutarbutar/KMH-CounselingService/internal/api/handlers/submit_booking"
	updatePolicyHandler "github.com/felixnatanaelbutarbutar/KMH-CounselingService/internal/api/handlers/update_policy"
	"github.com/felixnatanaelbutarbutar/KMH-CounselingService/internal/api/middleware"
	"github.com/felixnatanaelbutarbutar/KMH-CounselingService/internal/config"
	"github.com/felixnatanaelbutarbutar/KMH-CounselingService/internal/domain"
	bookingRepo "github.com/felixnatanaelbutarbutar/KMH-CounselingService/internal/infra/storage/booking"
	policyRepo "github.com/felixnatanaelbutarbutar/KMH-CounselingService/internal/infra/storage/policy"
	identityServiceClient "github.com/felixnatanaelbutarbutar/KMH-CounselingService/internal/integrations/identityservice"
	bookingsService "github.com/felixnatanaelbutarbutar/KMH-CounselingService/internal/service/bookings"
	policyService "github.com/felixnatanaelbutarbutar/KMH-CounselingService/internal/service/policy"
	decideBookingUC "github.com/felixnatanaelbutarbutar/KMH-CounselingService/internal/usecase/decide_booking"
	getAvailabilityUC "github.com/felixnatanaelbutarbutar/KMH-CounselingService/internal/usecase/get_availability"
	listEventsUC "github.com/felixnatanaelbutarbutar/KMH-CounselingService/internal/usecase/list_events"
	submitBookingUC "github.com/felixnatanaelbutarbutar/KMH-CounselingService/internal/usecase/submit_booking"
	"github.com/felixnatanaelbutarbutar/KMH-CounselingService/pkg/dbmetrics"
	"github.com/felixnatanaelbutarbutar/KMH-CounselingService/pkg/logger"
	"github.com/felixnatanaelbutarbutar/KMH-CounselingService/pkg/metrics"
	"github.com/felixnatanaelbutarbutar/KMH-CounselingService/pkg/simpletxmanager"
	"github.com/felixnatanaelbutarbutar/KMH-CounselingService/pkg/txmanager"
)

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

	log.Info("Starting KMH-CounselingService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
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

	// Собираем шаблон слотов из конфигурации
	blockedWeekday, err := cfg.Template.ParsedBlockedWeekday()
	if err != nil {
		log.Fatal("Failed to parse slot template: %v", err)
	}
	template, err := domain.NewSlotTemplate(cfg.Template.Slots, blockedWeekday, cfg.Template.LeadDays)
	if err != nil {
		log.Fatal("Failed to build slot template: %v", err)
	}
	log.Info("Slot template loaded: %d slots, blocked weekday=%s, lead days=%d",
		template.SlotCount(), blockedWeekday, cfg.Template.LeadDays)

	// Инициализируем клиент IdentityService
	identityClient := identityServiceClient.NewClient(
		cfg.IdentityService.URL,
		time.Duration(cfg.IdentityService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration client initialized (IdentityService=%s timeout=%ds)",
		cfg.IdentityService.URL, cfg.IdentityService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository *bookingRepo.Repository
		policyRepository  *policyRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		// Инициализируем репозитории с обёрткой метрик
		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		policyRepository = policyRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		// Инициализируем репозитории без метрик
		bookingRepository = bookingRepo.NewRepository(db)
		policyRepository = policyRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		identityClient,
		log,
	)
	policySvc := policyService.NewService(
		policyRepository,
		identityClient,
		log,
	)

	// Инициализируем use cases
	submitBookingUseCase := submitBookingUC.NewUseCase(
		template,
		bookingRepository,
		policyRepository,
		identityClient,
		log,
	)

	decideBookingUseCase := decideBookingUC.NewUseCase(
		bookingRepository,
		policyRepository,
		identityClient,
		txMgr,
		log,
	)

	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		template,
		bookingRepository,
		identityClient,
		log,
	)

	listEventsUseCase := listEventsUC.NewUseCase(
		template,
		bookingRepository,
		identityClient,
		log,
	)

	// Инициализируем handlers
	// Консультант по умолчанию берется из конфигурации шаблона
	defaultCounselorID := cfg.Template.CounselorID
	submitBooking := submitBookingHandler.NewHandler(submitBookingUseCase, defaultCounselorID, metricsCollector, log)
	decideBooking := decideBookingHandler.NewHandler(decideBookingUseCase, metricsCollector, log)
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, defaultCounselorID, log)
	listEvents := listEventsHandler.NewHandler(listEventsUseCase, defaultCounselorID, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getRequesterBookings := getRequesterBookingsHandler.NewHandler(bookingSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, defaultCounselorID, log)
	getPolicy := getPolicyHandler.NewHandler(policySvc, defaultCounselorID, log)
	updatePolicy := updatePolicyHandler.NewHandler(policySvc, defaultCounselorID, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Доступность слотов на дату
	api.HandleFunc("/availability", getAvailability.Handle).Methods(http.MethodGet)

	// События календаря за период
	api.HandleFunc("/calendar-events", listEvents.Handle).Methods(http.MethodGet)

	// Текущая политика планировщика
	api.HandleFunc("/policy", getPolicy.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// Ограничение частоты подачи заявок
	submitRoute := protected.NewRoute().Subrouter()
	if cfg.RateLimit.Enabled {
		rateLimiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
		submitRoute.Use(rateLimiter.Middleware())
		log.Info("Rate limiting enabled for booking submission (rps=%.2f, burst=%d)",
			cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}

	// --- Заявки ---
	// Подача заявки на консультацию
	submitRoute.HandleFunc("/bookings", submitBooking.Handle).Methods(http.MethodPost)

	// Список заявок консультанта (для сотрудников)
	protected.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)

	// Получение заявки по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Решение по заявке (approve/reject)
	protected.HandleFunc("/bookings/{bookingId}/decision", decideBooking.Handle).Methods(http.MethodPatch)

	// Отмена заявки студентом
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// История заявок студента
	protected.HandleFunc("/requesters/{requesterId}/bookings", getRequesterBookings.Handle).Methods(http.MethodGet)

	// --- Политика планировщика (для сотрудников) ---
	protected.HandleFunc("/policy", updatePolicy.Handle).Methods(http.MethodPut)

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

	// Останавливаем сбор метрик connection pool
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

	log.Info("Server stopped gracefully")
}
