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

	bookAppointmentHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/book_appointment"
	cancelAppointmentHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/cancel_appointment"
	createPaymentHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/create_payment"
	createServiceHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/create_service"
	deleteBookingConfigHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/delete_booking_config"
	getAppointmentHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_available_slots"
	getBookingConfigsHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_booking_configs"
	getClientAppointmentsHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_client_appointments"
	getEmployeeScheduleHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_employee_schedule"
	getInvoiceHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_invoice"
	getSalonAppointmentsHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_salon_appointments"
	getServiceHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_service"
	getSettingsHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_settings"
	listAuditEventsHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/list_audit_events"
	listInvoicePaymentsHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/list_invoice_payments"
	listInvoicesHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/list_invoices"
	listServicesHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/list_services"
	loginUserHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/login_user"
	refundPaymentHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/refund_payment"
	registerUserHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/register_user"
	rescheduleAppointmentHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/reschedule_appointment"
	saveBookingConfigHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/save_booking_config"
	updateAppointmentStatusHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/update_appointment_status"
	updateEmployeeScheduleHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/update_employee_schedule"
	updateServiceHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/update_service"
	updateSettingsHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/update_settings"
	voidInvoiceHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/void_invoice"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonService/internal/config"
	"github.com/m04kA/SMC-SalonService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/appointment"
	auditlogRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/auditlog"
	bookingConfigRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/bookingconfig"
	catalogRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/catalog"
	invoiceRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/invoice"
	paymentRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/payment"
	scheduleRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/schedule"
	settingsRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/settings"
	userRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/user"
	cardGatewayClient "github.com/m04kA/SMC-SalonService/internal/integrations/cardgateway"
	notifierClient "github.com/m04kA/SMC-SalonService/internal/integrations/notifier"
	"github.com/m04kA/SMC-SalonService/internal/jobs"
	appointmentsService "github.com/m04kA/SMC-SalonService/internal/service/appointments"
	auditService "github.com/m04kA/SMC-SalonService/internal/service/audit"
	authService "github.com/m04kA/SMC-SalonService/internal/service/auth"
	bookingConfigService "github.com/m04kA/SMC-SalonService/internal/service/bookingconfig"
	catalogService "github.com/m04kA/SMC-SalonService/internal/service/catalog"
	invoicesService "github.com/m04kA/SMC-SalonService/internal/service/invoices"
	paymentsService "github.com/m04kA/SMC-SalonService/internal/service/payments"
	schedulesService "github.com/m04kA/SMC-SalonService/internal/service/schedules"
	settingsService "github.com/m04kA/SMC-SalonService/internal/service/settings"
	bookAppointmentUC "github.com/m04kA/SMC-SalonService/internal/usecase/book_appointment"
	completeAppointmentUC "github.com/m04kA/SMC-SalonService/internal/usecase/complete_appointment"
	getAvailableSlotsUC "github.com/m04kA/SMC-SalonService/internal/usecase/get_available_slots"
	rescheduleAppointmentUC "github.com/m04kA/SMC-SalonService/internal/usecase/reschedule_appointment"
	"github.com/m04kA/SMC-SalonService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonService/pkg/logger"
	"github.com/m04kA/SMC-SalonService/pkg/metrics"
	"github.com/m04kA/SMC-SalonService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-SalonService/pkg/tokens"
	"github.com/m04kA/SMC-SalonService/pkg/txmanager"
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

	log.Info("Starting SMC-SalonService...")
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

	// Менеджер JWT токенов
	tokenManager := tokens.NewManager(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLMins)*time.Minute)

	// Инициализируем интеграционных клиентов
	notifier := notifierClient.NewClient(
		cfg.Notifier.URL,
		time.Duration(cfg.Notifier.Timeout)*time.Second,
		log,
	)
	cardGateway := cardGatewayClient.NewClient(cfg.CardGateway.APIKey, log)
	log.Info("Integration clients initialized (Notifier=%s timeout=%ds)",
		cfg.Notifier.URL, cfg.Notifier.Timeout)

	// Интерфейс для transaction manager (используется в сервисах и usecases)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	// Инициализируем репозитории (с метриками или без)
	var (
		userRepository          *userRepo.Repository
		scheduleRepository      *scheduleRepo.Repository
		catalogRepository       *catalogRepo.Repository
		appointmentRepository   *appointmentRepo.Repository
		bookingConfigRepository *bookingConfigRepo.Repository
		settingsRepository      *settingsRepo.Repository
		invoiceRepository       *invoiceRepo.Repository
		paymentRepository       *paymentRepo.Repository
		auditlogRepository      *auditlogRepo.Repository
	)

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		userRepository = userRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		catalogRepository = catalogRepo.NewRepository(wrappedDB)
		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		bookingConfigRepository = bookingConfigRepo.NewRepository(wrappedDB)
		settingsRepository = settingsRepo.NewRepository(wrappedDB)
		invoiceRepository = invoiceRepo.NewRepository(wrappedDB)
		paymentRepository = paymentRepo.NewRepository(wrappedDB)
		auditlogRepository = auditlogRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		userRepository = userRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		catalogRepository = catalogRepo.NewRepository(db)
		appointmentRepository = appointmentRepo.NewRepository(db)
		bookingConfigRepository = bookingConfigRepo.NewRepository(db)
		settingsRepository = settingsRepo.NewRepository(db)
		invoiceRepository = invoiceRepo.NewRepository(db)
		paymentRepository = paymentRepo.NewRepository(db)
		auditlogRepository = auditlogRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	auditSvc := auditService.NewService(auditlogRepository, log)
	authSvc := authService.NewService(userRepository, tokenManager, auditSvc, txMgr, log)
	appointmentsSvc := appointmentsService.NewService(appointmentRepository, notifier, auditSvc, txMgr, log)
	schedulesSvc := schedulesService.NewService(scheduleRepository, userRepository, auditSvc, txMgr, log)
	catalogSvc := catalogService.NewService(catalogRepository, auditSvc, txMgr, log)
	bookingConfigSvc := bookingConfigService.NewService(bookingConfigRepository, auditSvc, txMgr, log)
	settingsSvc := settingsService.NewService(settingsRepository, auditSvc, txMgr, log)
	invoicesSvc := invoicesService.NewService(invoiceRepository, settingsRepository, auditSvc, txMgr, log)
	paymentsSvc := paymentsService.NewService(paymentRepository, invoiceRepository, cardGateway, auditSvc, txMgr, log)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		appointmentRepository,
		scheduleRepository,
		userRepository,
		catalogRepository,
		bookingConfigSvc,
		settingsSvc,
		log,
	)
	bookAppointmentUseCase := bookAppointmentUC.NewUseCase(
		appointmentRepository,
		scheduleRepository,
		userRepository,
		catalogRepository,
		bookingConfigSvc,
		settingsSvc,
		notifier,
		auditSvc,
		txMgr,
		log,
	)
	rescheduleAppointmentUseCase := rescheduleAppointmentUC.NewUseCase(
		appointmentRepository,
		scheduleRepository,
		bookingConfigSvc,
		settingsSvc,
		notifier,
		auditSvc,
		txMgr,
		log,
	)
	completeAppointmentUseCase := completeAppointmentUC.NewUseCase(
		appointmentRepository,
		invoicesSvc,
		auditSvc,
		txMgr,
		log,
	)

	// Инициализируем handlers
	registerUser := registerUserHandler.NewHandler(authSvc, log)
	loginUser := loginUserHandler.NewHandler(authSvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	bookAppointment := bookAppointmentHandler.NewHandler(bookAppointmentUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentsSvc, log)
	rescheduleAppointment := rescheduleAppointmentHandler.NewHandler(rescheduleAppointmentUseCase, log)
	updateAppointmentStatus := updateAppointmentStatusHandler.NewHandler(appointmentsSvc, completeAppointmentUseCase, log)
	getClientAppointments := getClientAppointmentsHandler.NewHandler(appointmentsSvc, log)
	getSalonAppointments := getSalonAppointmentsHandler.NewHandler(appointmentsSvc, log)
	getEmployeeSchedule := getEmployeeScheduleHandler.NewHandler(schedulesSvc, log)
	updateEmployeeSchedule := updateEmployeeScheduleHandler.NewHandler(schedulesSvc, log)
	createService := createServiceHandler.NewHandler(catalogSvc, log)
	listServices := listServicesHandler.NewHandler(catalogSvc, log)
	getService := getServiceHandler.NewHandler(catalogSvc, log)
	updateService := updateServiceHandler.NewHandler(catalogSvc, log)
	getInvoice := getInvoiceHandler.NewHandler(invoicesSvc, log)
	listInvoices := listInvoicesHandler.NewHandler(invoicesSvc, log)
	voidInvoice := voidInvoiceHandler.NewHandler(invoicesSvc, log)
	createPayment := createPaymentHandler.NewHandler(paymentsSvc, log)
	refundPayment := refundPaymentHandler.NewHandler(paymentsSvc, log)
	listInvoicePayments := listInvoicePaymentsHandler.NewHandler(paymentsSvc, log)
	listAuditEvents := listAuditEventsHandler.NewHandler(auditSvc, log)
	getBookingConfigs := getBookingConfigsHandler.NewHandler(bookingConfigSvc, log)
	saveBookingConfig := saveBookingConfigHandler.NewHandler(bookingConfigSvc, log)
	deleteBookingConfig := deleteBookingConfigHandler.NewHandler(bookingConfigSvc, log)
	getSettings := getSettingsHandler.NewHandler(settingsSvc, log)
	updateSettings := updateSettingsHandler.NewHandler(settingsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Регистрация и вход
	api.HandleFunc("/auth/register", registerUser.Handle).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", loginUser.Handle).Methods(http.MethodPost)

	// Каталог услуг доступен без аутентификации
	api.HandleFunc("/services", listServices.Handle).Methods(http.MethodGet)
	api.HandleFunc("/services/{serviceId}", getService.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют Bearer токен)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(tokenManager))

	// --- Доступные слоты ---
	protected.HandleFunc("/employees/{employeeId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// --- Записи ---
	protected.HandleFunc("/appointments", bookAppointment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{appointmentId}/reschedule", rescheduleAppointment.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/users/me/appointments", getClientAppointments.Handle).Methods(http.MethodGet)

	// --- Расписания сотрудников ---
	protected.HandleFunc("/employees/{employeeId}/schedule", getEmployeeSchedule.Handle).Methods(http.MethodGet)

	// --- Счета ---
	protected.HandleFunc("/invoices", listInvoices.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/invoices/{invoiceId}", getInvoice.Handle).Methods(http.MethodGet)

	// ============================================================
	// STAFF ROUTES (сотрудник или администратор)
	// ============================================================

	staff := protected.PathPrefix("").Subrouter()
	staff.Use(middleware.RequireRoles(domain.RoleAdmin, domain.RoleEmployee))

	staff.HandleFunc("/appointments", getSalonAppointments.Handle).Methods(http.MethodGet)
	staff.HandleFunc("/appointments/{appointmentId}/status", updateAppointmentStatus.Handle).Methods(http.MethodPatch)
	staff.HandleFunc("/employees/{employeeId}/schedule", updateEmployeeSchedule.Handle).Methods(http.MethodPut)
	staff.HandleFunc("/invoices/{invoiceId}/payments", listInvoicePayments.Handle).Methods(http.MethodGet)
	staff.HandleFunc("/payments", createPayment.Handle).Methods(http.MethodPost)
	staff.HandleFunc("/settings", getSettings.Handle).Methods(http.MethodGet)

	// ============================================================
	// ADMIN ROUTES (только администратор)
	// ============================================================

	admin := protected.PathPrefix("").Subrouter()
	admin.Use(middleware.RequireRoles(domain.RoleAdmin))

	// Создание staff-пользователей администратором
	admin.HandleFunc("/users", registerUser.Handle).Methods(http.MethodPost)

	admin.HandleFunc("/services", createService.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/services/{serviceId}", updateService.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/invoices/{invoiceId}/void", voidInvoice.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/payments/{paymentId}/refund", refundPayment.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/audit-events", listAuditEvents.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/booking-configs", getBookingConfigs.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/booking-configs", saveBookingConfig.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/booking-configs", deleteBookingConfig.Handle).Methods(http.MethodDelete)
	admin.HandleFunc("/settings", updateSettings.Handle).Methods(http.MethodPut)

	// Фоновые задачи: напоминания и отметка неявок
	var scheduler *jobs.Scheduler
	if cfg.Jobs.Enabled {
		scheduler = jobs.NewScheduler(time.Minute, log)

		reminderJob := jobs.NewReminderJob(appointmentRepository, notifier, settingsSvc, cfg.Jobs.ReminderLeadMinutes, log)
		if err := scheduler.AddJob("reminder", cfg.Jobs.ReminderSpec, reminderJob); err != nil {
			log.Fatal("Failed to register reminder job: %v", err)
		}

		noShowJob := jobs.NewNoShowJob(appointmentRepository, settingsSvc, cfg.Jobs.NoShowGraceMinutes, log)
		if err := scheduler.AddJob("no_show", cfg.Jobs.NoShowSpec, noShowJob); err != nil {
			log.Fatal("Failed to register no-show job: %v", err)
		}

		scheduler.Start()
	}

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

	// Останавливаем фоновые задачи
	if scheduler != nil {
		scheduler.Stop()
	}

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
