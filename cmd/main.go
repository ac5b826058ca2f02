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

	addReviewHandler "github.com/glamly/BSP-SchedulingService/internal/api/handlers/add_review"
	cancelAppointmentHandler "github.com/glamly/BSP-SchedulingService/internal/api/handlers/cancel_appointment"
	getAppointmentHandler "github.com/glamly/BSP-SchedulingService/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/glamly/BSP-SchedulingService/internal/api/handlers/get_available_slots"
	getClientAppointmentsHandler "github.com/glamly/BSP-SchedulingService/internal/api/handlers/get_client_appointments"
	getProviderAppointmentsHandler "github.com/glamly/BSP-SchedulingService/internal/api/handlers/get_provider_appointments"
	getProviderProfileHandler "github.com/glamly/BSP-SchedulingService/internal/api/handlers/get_provider_profile"
	manageFavoritesHandler "github.com/glamly/BSP-SchedulingService/internal/api/handlers/manage_favorites"
	manageProviderServicesHandler "github.com/glamly/BSP-SchedulingService/internal/api/handlers/manage_provider_services"
	requestAppointmentHandler "github.com/glamly/BSP-SchedulingService/internal/api/handlers/request_appointment"
	requestVerificationHandler "github.com/glamly/BSP-SchedulingService/internal/api/handlers/request_verification"
	updateAppointmentStatusHandler "github.com/glamly/BSP-SchedulingService/internal/api/handlers/update_appointment_status"
	updateAvailabilityHandler "github.com/glamly/BSP-SchedulingService/internal/api/handlers/update_availability"
	"github.com/glamly/BSP-SchedulingService/internal/api/middleware"
	"github.com/glamly/BSP-SchedulingService/internal/config"
	"github.com/glamly/BSP-SchedulingService/internal/infra/notify"
	appointmentRepo "github.com/glamly/BSP-SchedulingService/internal/infra/storage/appointment"
	clientRepo "github.com/glamly/BSP-SchedulingService/internal/infra/storage/client"
	providerRepo "github.com/glamly/BSP-SchedulingService/internal/infra/storage/provider"
	appointmentsService "github.com/glamly/BSP-SchedulingService/internal/service/appointments"
	clientsService "github.com/glamly/BSP-SchedulingService/internal/service/clients"
	providersService "github.com/glamly/BSP-SchedulingService/internal/service/providers"
	getAvailableSlotsUC "github.com/glamly/BSP-SchedulingService/internal/usecase/get_available_slots"
	requestAppointmentUC "github.com/glamly/BSP-SchedulingService/internal/usecase/request_appointment"
	"github.com/glamly/BSP-SchedulingService/pkg/dbmetrics"
	"github.com/glamly/BSP-SchedulingService/pkg/logger"
	"github.com/glamly/BSP-SchedulingService/pkg/metrics"
	"github.com/glamly/BSP-SchedulingService/pkg/simpletxmanager"
	"github.com/glamly/BSP-SchedulingService/pkg/txmanager"
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

	log.Info("Starting BSP-SchedulingService...")
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

	// Инициализируем публикацию событий для сервиса уведомлений
	var eventPublisher appointmentsService.EventPublisher
	if cfg.Kafka.Enabled {
		kafkaPublisher := notify.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer kafkaPublisher.Close()
		eventPublisher = kafkaPublisher
		log.Info("Kafka event publisher initialized (brokers=%v, topic=%s)", cfg.Kafka.Brokers, cfg.Kafka.Topic)
	} else {
		eventPublisher = notify.NopPublisher{}
		log.Info("Kafka disabled, appointment events will not be published")
	}

	// Интерфейс для transaction manager (используется в сервисах и usecases)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}

	// Инициализируем репозитории (с метриками или без)
	var (
		appointmentRepository *appointmentRepo.Repository
		providerRepository    *providerRepo.Repository
		clientRepository      *clientRepo.Repository
		txMgr                 TxManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		providerRepository = providerRepo.NewRepository(wrappedDB)
		clientRepository = clientRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		appointmentRepository = appointmentRepo.NewRepository(db)
		providerRepository = providerRepo.NewRepository(db)
		clientRepository = clientRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	appointmentsSvc := appointmentsService.NewService(
		appointmentRepository,
		txMgr,
		eventPublisher,
		log,
	)
	providersSvc := providersService.NewService(
		providerRepository,
		txMgr,
		log,
	)
	clientsSvc := clientsService.NewService(
		clientRepository,
		providerRepository,
		log,
	)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		appointmentRepository,
		providerRepository,
		log,
	)
	requestAppointmentUseCase := requestAppointmentUC.NewUseCase(
		appointmentRepository,
		providerRepository,
		txMgr,
		eventPublisher,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	requestAppointment := requestAppointmentHandler.NewHandler(requestAppointmentUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	updateAppointmentStatus := updateAppointmentStatusHandler.NewHandler(appointmentsSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentsSvc, log)
	getClientAppointments := getClientAppointmentsHandler.NewHandler(appointmentsSvc, log)
	getProviderAppointments := getProviderAppointmentsHandler.NewHandler(appointmentsSvc, log)
	getProviderProfile := getProviderProfileHandler.NewHandler(providersSvc, log)
	updateAvailability := updateAvailabilityHandler.NewHandler(providersSvc, log)
	manageProviderServices := manageProviderServicesHandler.NewHandler(providersSvc, log)
	addReview := addReviewHandler.NewHandler(providersSvc, log)
	requestVerification := requestVerificationHandler.NewHandler(providersSvc, log)
	manageFavorites := manageFavoritesHandler.NewHandler(clientsSvc, log)

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

	// Ограничитель частоты запросов (если включен)
	if cfg.RateLimit.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		limiter := middleware.NewRateLimiter(
			rdb,
			cfg.RateLimit.Limit,
			time.Duration(cfg.RateLimit.WindowSeconds)*time.Second,
			"rl",
			log,
		)
		api.Use(limiter.Middleware())
		log.Info("Rate limiter enabled (limit=%d, window=%ds, redis=%s)",
			cfg.RateLimit.Limit, cfg.RateLimit.WindowSeconds, cfg.Redis.Addr)
	}

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Публичный профиль мастера: расписание, услуги, отзывы
	api.HandleFunc("/providers/{providerId}", getProviderProfile.Handle).Methods(http.MethodGet)

	// Свободные слоты мастера для услуги на дату
	api.HandleFunc("/providers/{providerId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Записи ---
	// Создание записи (статус pending)
	protected.HandleFunc("/appointments", requestAppointment.Handle).Methods(http.MethodPost)

	// Получение записи по ID
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)

	// Подтверждение или отклонение записи мастером
	protected.HandleFunc("/appointments/{appointmentId}/status", updateAppointmentStatus.Handle).Methods(http.MethodPatch)

	// Отмена подтвержденной записи
	protected.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)

	// --- Клиенты ---
	// История записей клиента
	protected.HandleFunc("/clients/{clientId}/appointments", getClientAppointments.Handle).Methods(http.MethodGet)

	// Избранные мастера клиента
	protected.HandleFunc("/clients/{clientId}/favorites", manageFavorites.HandleList).Methods(http.MethodGet)
	protected.HandleFunc("/clients/{clientId}/favorites/{providerId}", manageFavorites.HandleAdd).Methods(http.MethodPost)
	protected.HandleFunc("/clients/{clientId}/favorites/{providerId}", manageFavorites.HandleRemove).Methods(http.MethodDelete)

	// --- Кабинет мастера ---
	// Записи мастера за день / по статусу
	protected.HandleFunc("/providers/{providerId}/appointments", getProviderAppointments.Handle).Methods(http.MethodGet)

	// Обновление недельного расписания
	protected.HandleFunc("/providers/{providerId}/availability", updateAvailability.Handle).Methods(http.MethodPut)

	// Управление услугами
	protected.HandleFunc("/providers/{providerId}/services", manageProviderServices.HandleAdd).Methods(http.MethodPost)
	protected.HandleFunc("/providers/{providerId}/services/{serviceId}", manageProviderServices.HandleRemove).Methods(http.MethodDelete)

	// Отзывы
	protected.HandleFunc("/providers/{providerId}/reviews", addReview.Handle).Methods(http.MethodPost)

	// Запрос верификации профиля
	protected.HandleFunc("/providers/{providerId}/verification-request", requestVerification.Handle).Methods(http.MethodPost)

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
