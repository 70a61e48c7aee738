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

	commitLessonHandler "github.com/m04kA/DS-SchedulingService/internal/api/handlers/commit_lesson"
	computeAvailabilityHandler "github.com/m04kA/DS-SchedulingService/internal/api/handlers/compute_availability"
	deleteScheduleConfigHandler "github.com/m04kA/DS-SchedulingService/internal/api/handlers/delete_schedule_config"
	getLessonHandler "github.com/m04kA/DS-SchedulingService/internal/api/handlers/get_lesson"
	getScheduleConfigHandler "github.com/m04kA/DS-SchedulingService/internal/api/handlers/get_schedule_config"
	getSchoolLessonsHandler "github.com/m04kA/DS-SchedulingService/internal/api/handlers/get_school_lessons"
	getStudentLessonsHandler "github.com/m04kA/DS-SchedulingService/internal/api/handlers/get_student_lessons"
	listScheduleConfigsHandler "github.com/m04kA/DS-SchedulingService/internal/api/handlers/list_schedule_configs"
	updateLessonStatusHandler "github.com/m04kA/DS-SchedulingService/internal/api/handlers/update_lesson_status"
	updateScheduleConfigHandler "github.com/m04kA/DS-SchedulingService/internal/api/handlers/update_schedule_config"
	"github.com/m04kA/DS-SchedulingService/internal/api/middleware"
	"github.com/m04kA/DS-SchedulingService/internal/config"
	"github.com/m04kA/DS-SchedulingService/internal/infra/idempotency"
	configRepo "github.com/m04kA/DS-SchedulingService/internal/infra/storage/config"
	instructorRepo "github.com/m04kA/DS-SchedulingService/internal/infra/storage/instructor"
	lessonRepo "github.com/m04kA/DS-SchedulingService/internal/infra/storage/lesson"
	"github.com/m04kA/DS-SchedulingService/internal/infra/storage/migrator"
	outboxRepo "github.com/m04kA/DS-SchedulingService/internal/infra/storage/outbox"
	"github.com/m04kA/DS-SchedulingService/internal/integrations/notifier"
	configService "github.com/m04kA/DS-SchedulingService/internal/service/config"
	lessonsService "github.com/m04kA/DS-SchedulingService/internal/service/lessons"
	commitLessonUC "github.com/m04kA/DS-SchedulingService/internal/usecase/commit_lesson"
	computeAvailabilityUC "github.com/m04kA/DS-SchedulingService/internal/usecase/compute_availability"
	outboxWorker "github.com/m04kA/DS-SchedulingService/internal/worker/outbox"
	"github.com/m04kA/DS-SchedulingService/migrations"
	"github.com/m04kA/DS-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/DS-SchedulingService/pkg/logger"
	"github.com/m04kA/DS-SchedulingService/pkg/metrics"
	"github.com/m04kA/DS-SchedulingService/pkg/txmanager"
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

	log.Info("Starting DS-SchedulingService...")

	// Инициализируем метрики (если включены)
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

	// Применяем миграции
	if cfg.Database.AutoMigrate {
		mg, err := migrator.NewMigrator(db, migrations.FS, log)
		if err != nil {
			log.Fatal("Failed to create migrator: %v", err)
		}
		if err := mg.Run(context.Background()); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
	}

	// Оборачиваем БД (с метриками или без)
	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}

	txMgr := txmanager.NewTransactionManager(wrappedDB).WithMaxAttempts(cfg.Database.MaxTxAttempts)

	// Инициализируем репозитории
	lessonRepository := lessonRepo.NewRepository(wrappedDB)
	instructorRepository := instructorRepo.NewRepository(wrappedDB)
	configRepository := configRepo.NewRepository(wrappedDB)
	outboxRepository := outboxRepo.NewRepository(wrappedDB)

	// Подключаемся к Redis (если настроен)
	var (
		redisClient *redis.Client
		idemStore   commitLessonUC.IdempotencyStore
	)
	if cfg.Redis.Enabled() {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			// Redis не обязателен, идемпотентность деградирует до отключённой
			log.Warn("Redis is not reachable at %s: %v", cfg.Redis.Addr, err)
		}
		cancel()

		idemStore = idempotency.NewStore(redisClient, time.Duration(cfg.Redis.IdempotencyTTL)*time.Second)
		log.Info("Idempotency store enabled (redis=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.IdempotencyTTL)
	} else {
		log.Warn("Redis is not configured, idempotency keys are ignored")
	}

	// Инициализируем диспетчер уведомлений
	dispatcher, err := notifier.New(notifier.Options{
		Driver:   cfg.Notifier.Driver,
		BaseURL:  cfg.Notifier.URL,
		Timeout:  time.Duration(cfg.Notifier.Timeout) * time.Second,
		QueueKey: cfg.Notifier.QueueKey,
	}, redisClient, log)
	if err != nil {
		log.Fatal("Failed to initialize notifier: %v", err)
	}
	log.Info("Notifier initialized (driver=%s)", cfg.Notifier.Driver)

	// Запускаем релей outbox
	relayCtx, stopRelay := context.WithCancel(context.Background())
	var relayDone <-chan struct{}
	if cfg.Outbox.Enabled {
		relay := outboxWorker.NewRelay(outboxRepository, txMgr, dispatcher, metricsCollector, log, outboxWorker.Options{
			Interval:    time.Duration(cfg.Outbox.Interval) * time.Second,
			Timeout:     time.Duration(cfg.Outbox.Timeout) * time.Second,
			BatchSize:   cfg.Outbox.BatchSize,
			MaxAttempts: cfg.Outbox.MaxAttempts,
		})
		relayDone = relay.Start(relayCtx)
		log.Info("Outbox relay started (interval=%ds, batch=%d)", cfg.Outbox.Interval, cfg.Outbox.BatchSize)
	} else {
		done := make(chan struct{})
		close(done)
		relayDone = done
	}

	// Инициализируем сервисы
	lessonSvc := lessonsService.NewService(lessonRepository, txMgr, log)
	configSvc := configService.NewService(configRepository, txMgr, log)

	// Инициализируем use cases
	computeAvailabilityUseCase := computeAvailabilityUC.NewUseCase(
		instructorRepository,
		lessonRepository,
		configRepository,
		txMgr,
		metricsCollector,
		log,
	)

	commitLessonUseCase := commitLessonUC.NewUseCase(
		instructorRepository,
		lessonRepository,
		outboxRepository,
		idemStore,
		txMgr,
		metricsCollector,
		log,
	)

	// Инициализируем handlers
	computeAvailability := computeAvailabilityHandler.NewHandler(computeAvailabilityUseCase, log)
	commitLesson := commitLessonHandler.NewHandler(commitLessonUseCase, log)
	getLesson := getLessonHandler.NewHandler(lessonSvc, log)
	getSchoolLessons := getSchoolLessonsHandler.NewHandler(lessonSvc, log)
	getStudentLessons := getStudentLessonsHandler.NewHandler(lessonSvc, log)
	updateLessonStatus := updateLessonStatusHandler.NewHandler(lessonSvc, log)
	getScheduleConfig := getScheduleConfigHandler.NewHandler(configSvc, log)
	listScheduleConfigs := listScheduleConfigsHandler.NewHandler(configSvc, log)
	updateScheduleConfig := updateScheduleConfigHandler.NewHandler(configSvc, log)
	deleteScheduleConfig := deleteScheduleConfigHandler.NewHandler(configSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.UserID)

	// ============================================================
	// READ ROUTES
	// ============================================================

	// Карта свободных слотов на дату
	api.HandleFunc("/schools/{schoolId}/availability", computeAvailability.Handle).Methods(http.MethodGet)

	// --- Занятия ---
	api.HandleFunc("/lessons/{lessonId}", getLesson.Handle).Methods(http.MethodGet)
	api.HandleFunc("/schools/{schoolId}/lessons", getSchoolLessons.Handle).Methods(http.MethodGet)
	api.HandleFunc("/students/{studentId}/lessons", getStudentLessons.Handle).Methods(http.MethodGet)

	// --- Конфигурация расписания ---
	api.HandleFunc("/schools/{schoolId}/schedule-config", getScheduleConfig.Handle).Methods(http.MethodGet)
	api.HandleFunc("/schools/{schoolId}/schedule-configs", listScheduleConfigs.Handle).Methods(http.MethodGet)

	// ============================================================
	// WRITE ROUTES (с ограничением частоты запросов)
	// ============================================================

	writes := api.PathPrefix("").Subrouter()
	if cfg.RateLimit.Enabled {
		writes.Use(middleware.RateLimit(cfg.RateLimit.PerSecond, cfg.RateLimit.Burst, log))
		log.Info("Rate limit enabled for writes (rps=%.1f, burst=%d)", cfg.RateLimit.PerSecond, cfg.RateLimit.Burst)
	}

	// Создание занятия
	writes.HandleFunc("/lessons", commitLesson.Handle).Methods(http.MethodPost)

	// Смена статуса занятия
	writes.HandleFunc("/lessons/{lessonId}/status", updateLessonStatus.Handle).Methods(http.MethodPatch)

	// Создание, замена и удаление конфигурации расписания
	writes.HandleFunc("/schools/{schoolId}/schedule-config", updateScheduleConfig.Handle).Methods(http.MethodPut)
	writes.HandleFunc("/schools/{schoolId}/schedule-config", deleteScheduleConfig.Handle).Methods(http.MethodDelete)

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

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Останавливаем релей и дожидаемся текущей пачки
	stopRelay()
	select {
	case <-relayDone:
		log.Info("Outbox relay stopped")
	case <-shutdownCtx.Done():
		log.Warn("Outbox relay did not stop in time")
	}

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}
