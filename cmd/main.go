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

	cancelBookingHandler "github.com/m04kA/Salon-BookingService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/Salon-BookingService/internal/api/handlers/create_booking"
	getAvailableDatesHandler "github.com/m04kA/Salon-BookingService/internal/api/handlers/get_available_dates"
	getAvailableSlotsHandler "github.com/m04kA/Salon-BookingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/Salon-BookingService/internal/api/handlers/get_booking"
	listBookingsHandler "github.com/m04kA/Salon-BookingService/internal/api/handlers/list_bookings"
	lookupBookingHandler "github.com/m04kA/Salon-BookingService/internal/api/handlers/lookup_booking"
	updateBookingStatusHandler "github.com/m04kA/Salon-BookingService/internal/api/handlers/update_booking_status"
	"github.com/m04kA/Salon-BookingService/internal/api/middleware"
	"github.com/m04kA/Salon-BookingService/internal/config"
	bookingRepo "github.com/m04kA/Salon-BookingService/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/Salon-BookingService/internal/infra/storage/catalog"
	clientRepo "github.com/m04kA/Salon-BookingService/internal/infra/storage/client"
	policyRepo "github.com/m04kA/Salon-BookingService/internal/infra/storage/policy"
	scheduleRepo "github.com/m04kA/Salon-BookingService/internal/infra/storage/schedule"
	notifierClient "github.com/m04kA/Salon-BookingService/internal/integrations/notifier"
	bookingsService "github.com/m04kA/Salon-BookingService/internal/service/bookings"
	createBookingUC "github.com/m04kA/Salon-BookingService/internal/usecase/create_booking"
	getAvailableDatesUC "github.com/m04kA/Salon-BookingService/internal/usecase/get_available_dates"
	getAvailableSlotsUC "github.com/m04kA/Salon-BookingService/internal/usecase/get_available_slots"
	"github.com/m04kA/Salon-BookingService/pkg/dbmetrics"
	"github.com/m04kA/Salon-BookingService/pkg/logger"
	"github.com/m04kA/Salon-BookingService/pkg/metrics"
	"github.com/m04kA/Salon-BookingService/pkg/simpletxmanager"
	"github.com/m04kA/Salon-BookingService/pkg/txmanager"
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

	log.Info("Starting Salon-BookingService...")
	log.Info("Configuration loaded from config.toml")

	// Таймзона салона: все расчёты доступности выполняются в ней
	location, err := time.LoadLocation(cfg.Business.Timezone)
	if err != nil {
		log.Fatal("Failed to load business timezone %q: %v", cfg.Business.Timezone, err)
	}
	log.Info("Business timezone: %s", cfg.Business.Timezone)

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

	// Инициализируем клиента уведомлений
	notifier := notifierClient.NewClient(
		cfg.Notifier.URL,
		time.Duration(cfg.Notifier.Timeout)*time.Second,
		cfg.Notifier.Enabled,
		log,
	)
	log.Info("Notifier client initialized (url=%s, timeout=%ds, enabled=%t)",
		cfg.Notifier.URL, cfg.Notifier.Timeout, cfg.Notifier.Enabled)

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository  *bookingRepo.Repository
		scheduleRepository *scheduleRepo.Repository
		catalogRepository  *catalogRepo.Repository
		policyRepository   *policyRepo.Repository
		clientRepository   *clientRepo.Repository
	)

	// Интерфейс transaction manager, общий для обеих реализаций
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
		DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		catalogRepository = catalogRepo.NewRepository(wrappedDB)
		policyRepository = policyRepo.NewRepository(wrappedDB)
		clientRepository = clientRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		catalogRepository = catalogRepo.NewRepository(db)
		policyRepository = policyRepo.NewRepository(db)
		clientRepository = clientRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Проверяем политику бронирования на старте: некорректные значения
	// в настройках лучше обнаружить до первого запроса
	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 5*time.Second)
	policy, err := policyRepository.GetBookingPolicy(startupCtx)
	cancelStartup()
	if err != nil {
		log.Fatal("Failed to load booking policy: %v", err)
	}
	if err := policy.Validate(); err != nil {
		log.Fatal("Invalid booking policy in settings: %v", err)
	}
	log.Info("Booking policy loaded: buffer=%dm, minAdvance=%dh, maxAdvance=%dd, granularity=%dm",
		policy.BufferMinutes, policy.MinAdvanceHours, policy.MaxAdvanceDays, policy.SlotGranularityMinutes)

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		notifier,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		scheduleRepository,
		catalogRepository,
		policyRepository,
		clientRepository,
		notifier,
		txMgr,
		location,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		scheduleRepository,
		catalogRepository,
		policyRepository,
		location,
		log,
	)

	getAvailableDatesUseCase := getAvailableDatesUC.NewUseCase(
		scheduleRepository,
		catalogRepository,
		policyRepository,
		location,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getAvailableDates := getAvailableDatesHandler.NewHandler(getAvailableDatesUseCase, log)
	lookupBooking := lookupBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Доступные даты месяца
	api.HandleFunc("/providers/{providerId}/services/{serviceId}/available-dates",
		getAvailableDates.Handle).Methods(http.MethodGet)

	// Доступные слоты на дату
	api.HandleFunc("/providers/{providerId}/services/{serviceId}/slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Создание бронирования
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Поиск бронирования по коду подтверждения
	api.HandleFunc("/bookings/lookup/{code}", lookupBooking.Handle).Methods(http.MethodGet)

	// Отмена бронирования (клиент по коду подтверждения, персонал по заголовку)
	api.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// Бронирование по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Список бронирований с фильтрацией
	protected.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)

	// Перевод статуса бронирования
	protected.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)

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
