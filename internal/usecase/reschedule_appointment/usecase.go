package reschedule_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	apptRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/appointment"
	scheduleRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-SalonService/internal/integrations/notifier"
	"github.com/m04kA/SMC-SalonService/pkg/ptr"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// UseCase use case переноса записи на другой слот
type UseCase struct {
	apptRepo       AppointmentRepository
	scheduleRepo   ScheduleRepository
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
		configRes:      configRes,
		settings:       settings,
		notifierClient: notifierClient,
		auditRecorder:  auditRecorder,
		txManager:      txManager,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// Execute выполняет use case переноса записи
// Новый слот проверяется по тем же правилам, что и при создании записи;
// сама переносимая запись из проверки конфликта исключается
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleAppointment: appointment=%d, user=%d, newDate=%s, newTime=%s",
		req.AppointmentID, req.UserID, req.NewDate.Format(domain.DateFormat), req.NewStartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем запись и проверяем доступ
	appt, err := uc.apptRepo.GetByID(ctx, req.AppointmentID)
	if err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			uc.logger.Warn("RescheduleAppointment: appointment id=%d not found", req.AppointmentID)
			return nil, ErrAppointmentNotFound
		}
		uc.logger.Error("RescheduleAppointment: failed to get appointment id=%d: %v", req.AppointmentID, err)
		return nil, fmt.Errorf("%w: failed to get appointment: %w", ErrInternal, err)
	}

	if err := checkAccess(appt, req.UserID, req.UserRole); err != nil {
		uc.logger.Warn("RescheduleAppointment: access denied for user=%d to appointment id=%d",
			req.UserID, req.AppointmentID)
		return nil, err
	}

	if !appt.CanBeRescheduled() {
		uc.logger.Warn("RescheduleAppointment: appointment id=%d cannot be rescheduled, status=%s",
			req.AppointmentID, appt.Status)
		return nil, ErrCannotReschedule
	}

	// 3. Текущее время в таймзоне салона
	loc := time.UTC
	if settings, err := uc.settings.GetDomain(ctx); err == nil {
		loc = settings.Location()
	} else {
		uc.logger.Warn("RescheduleAppointment: failed to load salon settings, using UTC: %v", err)
	}
	now := uc.timeProvider.Now().In(loc)

	// 4. Расписание сотрудника на новую дату
	schedule, err := uc.scheduleRepo.GetByEmployee(ctx, appt.EmployeeID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			uc.logger.Warn("RescheduleAppointment: employee=%d has no schedule", appt.EmployeeID)
			return nil, ErrEmployeeNotWorking
		}
		uc.logger.Error("RescheduleAppointment: failed to get schedule for employee=%d: %v", appt.EmployeeID, err)
		return nil, fmt.Errorf("%w: failed to get schedule: %w", ErrInternal, err)
	}

	day := schedule.DayFor(req.NewDate)
	if !day.IsWorking {
		uc.logger.Warn("RescheduleAppointment: employee=%d is not working on %s",
			appt.EmployeeID, req.NewDate.Format(domain.DateFormat))
		return nil, ErrEmployeeNotWorking
	}

	// 5. Операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		config, err := uc.configRes.Resolve(txCtx, ptr.Ptr(appt.EmployeeID), ptr.Ptr(appt.ServiceID))
		if err != nil {
			uc.logger.Error("RescheduleAppointment: failed to resolve config: %v", err)
			return fmt.Errorf("%w: failed to resolve config: %w", ErrInternal, err)
		}

		if err := validateDate(req.NewDate, now, config.AdvanceBookingDays); err != nil {
			uc.logger.Warn("RescheduleAppointment: date validation failed: %v", err)
			return err
		}

		if err := validateNotice(req.NewDate, req.NewStartTime, now, config.MinNoticeMinutes); err != nil {
			uc.logger.Warn("RescheduleAppointment: notice validation failed: %v", err)
			return err
		}

		if err := validateSlotFits(day, req.NewStartTime, appt.DurationMinutes, config.SlotGranularityMinutes); err != nil {
			uc.logger.Warn("RescheduleAppointment: slot validation failed: %v", err)
			return err
		}

		// Активные записи сотрудника на новую дату с блокировкой (FOR UPDATE)
		filter := domain.SalonAppointmentsFilter{
			EmployeeID:      ptr.Ptr(appt.EmployeeID),
			StartDate:       &req.NewDate,
			EndDate:         &req.NewDate,
			IncludeInactive: false,
		}
		appointments, err := uc.apptRepo.GetWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("RescheduleAppointment: failed to get appointments: %v", err)
			return fmt.Errorf("%w: failed to get appointments: %w", ErrInternal, err)
		}

		if hasConflict(req.NewStartTime, appt.DurationMinutes, config.BufferMinutes, appointments, appt.ID) {
			uc.logger.Warn("RescheduleAppointment: slot %s %s conflicts with an existing appointment",
				req.NewDate.Format(domain.DateFormat), req.NewStartTime)
			return ErrSlotConflict
		}

		if err := uc.apptRepo.Reschedule(txCtx, appt.ID, req.NewDate, req.NewStartTime); err != nil {
			if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			uc.logger.Error("RescheduleAppointment: failed to reschedule appointment id=%d: %v", appt.ID, err)
			return fmt.Errorf("%w: failed to reschedule: %w", ErrInternal, err)
		}

		detail := fmt.Sprintf("%s %s -> %s %s",
			appt.AppointmentDate.Format(domain.DateFormat), appt.StartTime,
			req.NewDate.Format(domain.DateFormat), req.NewStartTime)
		return uc.auditRecorder.Record(txCtx, req.UserID, domain.AuditActionAppointmentMoved,
			domain.AuditEntityAppointment, fmt.Sprintf("%d", appt.ID), &detail)
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("RescheduleAppointment: successfully rescheduled appointment id=%d", appt.ID)

	// Уведомляем клиента; недоступность рассылки не отменяет перенос
	msg := notifier.Message{
		UserID:  appt.ClientID,
		Event:   notifier.EventAppointmentRescheduled,
		Subject: "Запись перенесена",
		Body: fmt.Sprintf("Ваша запись на %s перенесена на %s %s",
			appt.ServiceName, req.NewDate.Format(domain.DateFormat), req.NewStartTime),
	}
	_ = uc.notifierClient.SendWithGracefulDegradation(ctx, msg)

	return &Response{
		ID:              appt.ID,
		ClientID:        appt.ClientID,
		EmployeeID:      appt.EmployeeID,
		ServiceID:       appt.ServiceID,
		AppointmentDate: req.NewDate,
		StartTime:       req.NewStartTime,
		DurationMinutes: appt.DurationMinutes,
		Status:          string(appt.Status),
	}, nil
}

// checkAccess проверяет права на перенос записи
// Клиент переносит только свою запись, сотрудник - назначенную на него,
// администратор - любую
func checkAccess(appt *domain.Appointment, userID int64, userRole string) error {
	if appt.ClientID == userID {
		return nil
	}
	if userRole == string(domain.RoleAdmin) {
		return nil
	}
	if userRole == string(domain.RoleEmployee) && appt.EmployeeID == userID {
		return nil
	}
	return ErrAccessDenied
}

// hasConflict проверяет пересечение нового слота с активными записями,
// исключая саму переносимую запись
func hasConflict(startTime types.TimeString, durationMinutes, bufferMinutes int, appointments []*domain.Appointment, excludeID int64) bool {
	paddedStart := startTime.Minutes() - bufferMinutes
	paddedEnd := startTime.Minutes() + durationMinutes + bufferMinutes

	for _, other := range appointments {
		if other.ID == excludeID || !other.IsActive() {
			continue
		}
		otherStart := other.StartTime.Minutes()
		otherEnd := otherStart + other.DurationMinutes

		if otherStart < paddedEnd && otherEnd > paddedStart {
			return true
		}
	}

	return false
}
