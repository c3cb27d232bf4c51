package book_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/schedule"
	userRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/user"
	"github.com/m04kA/SMC-SalonService/internal/integrations/notifier"
	"github.com/m04kA/SMC-SalonService/pkg/ptr"
)

// UseCase use case создания записи клиента
type UseCase struct {
	apptRepo       AppointmentRepository
	scheduleRepo   ScheduleRepository
	userRepo       UserRepository
	catalogRepo    CatalogRepository
	configRes      ConfigResolver
	settings       SettingsProvider
	notifierClient NotifierClient
	auditRecorder  AuditRecorder
	txManager      TransactionManager
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	apptRepo AppointmentRepository,
	scheduleRepo ScheduleRepository,
	userRepo UserRepository,
	catalogRepo CatalogRepository,
	configRes ConfigResolver,
	settings SettingsProvider,
	notifierClient NotifierClient,
	auditRecorder AuditRecorder,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		apptRepo:       apptRepo,
		scheduleRepo:   scheduleRepo,
		userRepo:       userRepo,
		catalogRepo:    catalogRepo,
		configRes:      configRes,
		settings:       settings,
		notifierClient: notifierClient,
		auditRecorder:  auditRecorder,
		txManager:      txManager,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// Execute выполняет use case создания записи
// Проверка конфликта и вставка выполняются в сериализуемой транзакции
// с блокировкой записей сотрудника на день (FOR UPDATE): две конкурирующие
// попытки занять один слот не могут пройти обе
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("BookAppointment: client=%d, employee=%d, service=%d, date=%s, time=%s",
		req.ClientID, req.EmployeeID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("BookAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем сотрудника
	if _, err := uc.userRepo.GetEmployeeByID(ctx, req.EmployeeID); err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			uc.logger.Warn("BookAppointment: employee id=%d not found", req.EmployeeID)
			return nil, ErrEmployeeNotFound
		}
		uc.logger.Error("BookAppointment: failed to get employee id=%d: %v", req.EmployeeID, err)
		return nil, fmt.Errorf("%w: failed to get employee: %w", ErrInternal, err)
	}

	// 3. Получаем услугу - длительность и цена фиксируются на момент записи
	service, err := uc.catalogRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		uc.logger.Warn("BookAppointment: service id=%d not found: %v", req.ServiceID, err)
		return nil, ErrServiceNotFound
	}
	if !service.IsActive {
		uc.logger.Warn("BookAppointment: service id=%d is inactive", req.ServiceID)
		return nil, ErrServiceInactive
	}

	// 4. Текущее время в таймзоне салона
	loc := time.UTC
	if settings, err := uc.settings.GetDomain(ctx); err == nil {
		loc = settings.Location()
	} else {
		uc.logger.Warn("BookAppointment: failed to load salon settings, using UTC: %v", err)
	}
	now := uc.timeProvider.Now().In(loc)

	// 5. Недельное расписание сотрудника
	schedule, err := uc.scheduleRepo.GetByEmployee(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			uc.logger.Warn("BookAppointment: employee=%d has no schedule", req.EmployeeID)
			return nil, ErrEmployeeNotWorking
		}
		uc.logger.Error("BookAppointment: failed to get schedule for employee=%d: %v", req.EmployeeID, err)
		return nil, fmt.Errorf("%w: failed to get schedule: %w", ErrInternal, err)
	}

	day := schedule.DayFor(req.Date)
	if !day.IsWorking {
		uc.logger.Warn("BookAppointment: employee=%d is not working on %s",
			req.EmployeeID, req.Date.Format(domain.DateFormat))
		return nil, ErrEmployeeNotWorking
	}

	var result *domain.Appointment

	// 6. Операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Действующая конфигурация бронирования
		config, err := uc.configRes.Resolve(txCtx, ptr.Ptr(req.EmployeeID), ptr.Ptr(req.ServiceID))
		if err != nil {
			uc.logger.Error("BookAppointment: failed to resolve config: %v", err)
			return fmt.Errorf("%w: failed to resolve config: %w", ErrInternal, err)
		}

		// 6.2. Дата в пределах горизонта бронирования
		if err := validateDate(req.Date, now, config.AdvanceBookingDays); err != nil {
			uc.logger.Warn("BookAppointment: date validation failed: %v", err)
			return err
		}

		// 6.3. Минимальное время до записи
		if err := validateNotice(req.Date, req.StartTime, now, config.MinNoticeMinutes); err != nil {
			uc.logger.Warn("BookAppointment: notice validation failed: %v", err)
			return err
		}

		// 6.4. Слот в сетке и помещается в рабочий интервал
		if err := validateSlotFits(day, req.StartTime, service.DurationMinutes, config.SlotGranularityMinutes); err != nil {
			uc.logger.Warn("BookAppointment: slot validation failed: %v", err)
			return err
		}

		// 6.5. Активные записи сотрудника на дату с блокировкой (FOR UPDATE)
		filter := domain.SalonAppointmentsFilter{
			EmployeeID:      ptr.Ptr(req.EmployeeID),
			StartDate:       &req.Date,
			EndDate:         &req.Date,
			IncludeInactive: false,
		}
		appointments, err := uc.apptRepo.GetWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("BookAppointment: failed to get appointments: %v", err)
			return fmt.Errorf("%w: failed to get appointments: %w", ErrInternal, err)
		}

		// 6.6. Проверяем конфликт с учётом buffer
		if hasConflict(req.StartTime, service.DurationMinutes, config.BufferMinutes, appointments) {
			uc.logger.Warn("BookAppointment: slot %s %s conflicts with an existing appointment",
				req.Date.Format(domain.DateFormat), req.StartTime)
			return ErrSlotConflict
		}

		// 6.7. Создаем запись со снапшотом данных услуги
		appt := &domain.Appointment{
			ClientID:        req.ClientID,
			EmployeeID:      req.EmployeeID,
			ServiceID:       req.ServiceID,
			AppointmentDate: req.Date,
			StartTime:       req.StartTime,
			DurationMinutes: service.DurationMinutes,
			Status:          domain.StatusPending,
			ServiceName:     service.Name,
			ServicePrice:    service.Price,
			Notes:           req.Notes,
		}

		created, err := uc.apptRepo.Create(txCtx, appt)
		if err != nil {
			uc.logger.Error("BookAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %w", ErrInternal, err)
		}

		detail := fmt.Sprintf("employee=%d, service=%d, date=%s, time=%s",
			req.EmployeeID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)
		if err := uc.auditRecorder.Record(txCtx, req.ClientID, domain.AuditActionAppointmentBooked,
			domain.AuditEntityAppointment, fmt.Sprintf("%d", created.ID), &detail); err != nil {
			return err
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("BookAppointment: successfully created appointment id=%d", result.ID)

	// Уведомляем клиента; недоступность рассылки не отменяет запись
	msg := notifier.Message{
		UserID:  req.ClientID,
		Event:   notifier.EventAppointmentBooked,
		Subject: "Запись создана",
		Body: fmt.Sprintf("Вы записаны на %s к %s, %s %s",
			result.ServiceName, fmt.Sprintf("сотруднику #%d", result.EmployeeID),
			result.AppointmentDate.Format(domain.DateFormat), result.StartTime),
	}
	_ = uc.notifierClient.SendWithGracefulDegradation(ctx, msg)

	return &Response{
		ID:              result.ID,
		ClientID:        result.ClientID,
		EmployeeID:      result.EmployeeID,
		ServiceID:       result.ServiceID,
		AppointmentDate: result.AppointmentDate,
		StartTime:       result.StartTime,
		DurationMinutes: result.DurationMinutes,
		Status:          string(result.Status),
		ServiceName:     result.ServiceName,
		ServicePrice:    result.ServicePrice,
		Notes:           result.Notes,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}
