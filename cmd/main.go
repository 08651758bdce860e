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

	appointmentsPageHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/appointments_page"
	createAppointmentHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/create_appointment"
	getAllAppointmentsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_all_appointments"
	getAppointmentsByDayHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_appointments_by_day"
	getAvailableSlotsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_available_slots"
	getServicesHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_services"
	getUpcomingAppointmentsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_upcoming_appointments"
	healthHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/health"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/config"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	appointmentsService "github.com/m04kA/SMC-AppointmentService/internal/service/appointments"
	"github.com/m04kA/SMC-AppointmentService/internal/service/catalog"
	"github.com/m04kA/SMC-AppointmentService/internal/service/validator"
	createAppointmentUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_appointment"
	getAvailableSlotsUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/metrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/txmanager"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
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

	log.Info("Starting SMC-AppointmentService...")

	loc := cfg.Scheduling.Location()
	log.Info("Scheduling: timezone=%s, end_time_mode=%s, serialize_bookings=%t, strict_services=%t, require_vehicle=%t",
		loc, cfg.Scheduling.EndTimeMode, cfg.Scheduling.Serialize(), cfg.Scheduling.StrictServices, cfg.Scheduling.RequireVehicle)
	if !cfg.Scheduling.Serialize() {
		log.Warn("serialize_bookings is disabled: concurrent requests for the same time may both be accepted")
	}

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

	// Без метрик обертка работает как прозрачный прокси
	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Database.DBName, stopMetricsCh)

	// Репозиторий и схема
	repository := appointmentRepo.NewRepository(wrappedDB)

	initCtx, initCancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := repository.CreateTable(initCtx); err != nil {
		initCancel()
		log.Fatal("Failed to create appointments table: %v", err)
	}
	initCancel()
	log.Info("Appointments table is ready")

	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Каталог услуг
	serviceCatalog, err := catalog.New(cfg.Catalog.Entries())
	if err != nil {
		log.Fatal("Failed to build service catalog: %v", err)
	}
	calculator := catalog.NewCalculator(serviceCatalog, cfg.Scheduling.StrictServices)
	log.Info("Service catalog loaded: %d services", serviceCatalog.Len())

	// Сервисы
	endTimeMode := domain.EndTimeMode(cfg.Scheduling.EndTimeMode)
	appointmentValidator := validator.New(
		repository,
		validator.Policy{
			RequireVehicle: cfg.Scheduling.RequireVehicle,
			EndTimeMode:    endTimeMode,
		},
		loc,
	)
	appointmentsSvc := appointmentsService.NewService(repository, loc, log)

	// Use cases
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		repository,
		appointmentValidator,
		calculator,
		txMgr,
		metricsCollector,
		createAppointmentUC.Options{
			EndTimeMode:       endTimeMode,
			SerializeBookings: cfg.Scheduling.Serialize(),
			Location:          loc,
		},
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		repository,
		calculator,
		getAvailableSlotsUC.WorkingHours{
			OpenTime:    types.TimeString(cfg.Scheduling.OpenTime),
			CloseTime:   types.TimeString(cfg.Scheduling.CloseTime),
			StepMinutes: cfg.Scheduling.SlotStepMinutes,
		},
		loc,
		log,
	)

	// Handlers
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, loc, log)
	getAllAppointments := getAllAppointmentsHandler.NewHandler(appointmentsSvc, log)
	getUpcomingAppointments := getUpcomingAppointmentsHandler.NewHandler(appointmentsSvc, log)
	getAppointmentsByDay := getAppointmentsByDayHandler.NewHandler(appointmentsSvc, loc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, loc, log)
	getServices := getServicesHandler.NewHandler(serviceCatalog, log)
	appointmentsPage := appointmentsPageHandler.NewHandler(appointmentsSvc, loc, log)
	health := healthHandler.NewHandler(wrappedDB, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID, middleware.AccessLog(log))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health", health.Handle).Methods(http.MethodGet)

	// HTML страницы
	r.HandleFunc("/appointments", appointmentsPage.HandleUpcoming).Methods(http.MethodGet)
	r.HandleFunc("/appointments/{date}", appointmentsPage.HandleDay).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// --- Записи ---
	api.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)
	api.HandleFunc("/appointments", getAllAppointments.Handle).Methods(http.MethodGet)
	api.HandleFunc("/appointments/upcoming", getUpcomingAppointments.Handle).Methods(http.MethodGet)
	api.HandleFunc("/appointments/day/{date}", getAppointmentsByDay.Handle).Methods(http.MethodGet)
	api.HandleFunc("/appointments/day/{date}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// --- Каталог ---
	api.HandleFunc("/services", getServices.Handle).Methods(http.MethodGet)

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
	close(stopMetricsCh)

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
