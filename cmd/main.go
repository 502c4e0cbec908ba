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

	attachReportHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/attach_report"
	deleteAppointmentHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/delete_appointment"
	getAppointmentHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_available_slots"
	listAppointmentsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/list_appointments"
	removeReportHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/remove_report"
	reserveAppointmentHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/reserve_appointment"
	updatePrescriptionHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/update_prescription"
	watchAppointmentsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/watch_appointments"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/config"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-AppointmentService/internal/infra/storage/migrations"
	appointmentsService "github.com/m04kA/SMC-AppointmentService/internal/service/appointments"
	getAvailableSlotsUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_available_slots"
	reserveAppointmentUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/reserve_appointment"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/metrics"
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
	log.Info("Configuration loaded from config.toml")

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
	if err := migrations.Up(context.Background(), db); err != nil {
		log.Fatal("Failed to apply migrations: %v", err)
	}
	log.Info("Database migrations applied")

	// Собираем расписание клиники и каталог лечений из конфигурации
	schedule := buildSchedule(cfg.Clinic)
	treatments := domain.TreatmentCatalog(cfg.Clinic.Treatments)
	log.Info("Clinic schedule: %d windows, slot duration %d min, %d treatments",
		len(schedule.Windows), schedule.SlotDurationMinutes, len(treatments))

	// Инициализируем репозиторий (с метриками или без)
	var repository *appointmentRepo.Repository

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")
		repository = appointmentRepo.NewRepository(wrappedDB)
	} else {
		repository = appointmentRepo.NewRepository(db)
	}

	// Инициализируем наблюдателя за изменениями записей (LISTEN/NOTIFY)
	watcher, err := appointmentRepo.NewWatcher(cfg.Database.DSN(), repository, log)
	if err != nil {
		log.Fatal("Failed to start appointment watcher: %v", err)
	}
	defer watcher.Close()
	log.Info("Appointment watcher started")

	// Инициализируем сервис записей
	apptSvc := appointmentsService.NewService(repository, watcher, log)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		schedule,
		cfg.Clinic.PastSlotInclusive,
		repository,
		log,
	)

	reserveAppointmentUseCase := reserveAppointmentUC.NewUseCase(
		schedule,
		treatments,
		cfg.Clinic.PastSlotInclusive,
		repository,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	reserveAppointment := reserveAppointmentHandler.NewHandler(reserveAppointmentUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(apptSvc, log)
	listAppointments := listAppointmentsHandler.NewHandler(apptSvc, log)
	watchAppointments := watchAppointmentsHandler.NewHandler(apptSvc, log)
	updatePrescription := updatePrescriptionHandler.NewHandler(apptSvc, log)
	attachReport := attachReportHandler.NewHandler(apptSvc, log)
	removeReport := removeReportHandler.NewHandler(apptSvc, log)
	deleteAppointment := deleteAppointmentHandler.NewHandler(apptSvc, log)

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

	// Доступные слоты на дату
	api.HandleFunc("/slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Запись на приём
	api.HandleFunc("/appointments", reserveAppointment.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-Staff-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// Список записей (опционально по дате)
	protected.HandleFunc("/appointments", listAppointments.Handle).Methods(http.MethodGet)

	// Живая лента записей на дату (SSE)
	protected.HandleFunc("/appointments/watch", watchAppointments.Handle).Methods(http.MethodGet)

	// Получение записи по ID
	protected.HandleFunc("/appointments/{id:[0-9]+}", getAppointment.Handle).Methods(http.MethodGet)

	// Удаление записи (освобождает слот)
	protected.HandleFunc("/appointments/{id:[0-9]+}", deleteAppointment.Handle).Methods(http.MethodDelete)

	// Назначение врача
	protected.HandleFunc("/appointments/{id:[0-9]+}/prescription", updatePrescription.Handle).Methods(http.MethodPatch)

	// Отчёты
	protected.HandleFunc("/appointments/{id:[0-9]+}/reports", attachReport.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/appointments/{id:[0-9]+}/reports/{index:[0-9]+}", removeReport.Handle).Methods(http.MethodDelete)

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

// buildSchedule собирает доменное расписание из конфигурации.
// Значения окон уже провалидированы при загрузке конфига.
func buildSchedule(clinic config.Clinic) domain.ClinicSchedule {
	windows := make([]domain.ScheduleWindow, len(clinic.Windows))
	for i, w := range clinic.Windows {
		windows[i] = domain.ScheduleWindow{
			Open:  types.TimeString(w.Open),
			Close: types.TimeString(w.Close),
		}
	}

	return domain.ClinicSchedule{
		Windows:             windows,
		SlotDurationMinutes: clinic.SlotDurationMinutes,
	}
}
