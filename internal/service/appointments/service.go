package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	apptRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-SalonService/internal/integrations/notifier"
	"github.com/m04kA/SMC-SalonService/internal/service/appointments/models"
)

// Service сервис для работы с записями клиентов
type Service struct {
	apptRepo       AppointmentRepository
	notifierClient NotifierClient
	auditRecorder  AuditRecorder
	txManager      TransactionManager
	logger         Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	apptRepo AppointmentRepository,
	notifierClient NotifierClient,
	auditRecorder AuditRecorder,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		apptRepo:       apptRepo,
		notifierClient: notifierClient,
		auditRecorder:  auditRecorder,
		txManager:      txManager,
		logger:         logger,
	}
}

// GetByID получает запись по ID
// Клиент видит только свою запись, сотрудник - запись, назначенную на него,
// администратор - любую
func (s *Service) GetByID(ctx context.Context, id int64, userID int64, userRole string) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d for user=%d", id, userID)

	appt, err := s.apptRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %w", ErrInternal, err)
	}

	if err := s.checkAccess(appt, userID, userRole); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to appointment id=%d", userID, id)
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched appointment id=%d", id)
	return models.FromDomainAppointment(appt), nil
}

// GetClientAppointments получает историю записей клиента
// Опционально фильтрует по статусу
func (s *Service) GetClientAppointments(ctx context.Context, req *models.GetClientAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetClientAppointments: fetching appointments for client=%d", req.ClientID)

	var domainStatus *domain.AppointmentStatus
	if req.Status != nil {
		status, err := models.ToDomainAppointmentStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetClientAppointments: invalid status=%s for client=%d", *req.Status, req.ClientID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	appointments, err := s.apptRepo.GetByClientID(ctx, req.ClientID, domainStatus)
	if err != nil {
		s.logger.Error("GetClientAppointments: repository error for client=%d: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: GetClientAppointments - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("GetClientAppointments: successfully fetched %d appointments for client=%d",
		len(appointments), req.ClientID)
	return models.FromDomainAppointmentList(appointments), nil
}

// GetSalonAppointments получает записи салона с гибкой фильтрацией
// Поддерживает фильтрацию по сотруднику, клиенту, периоду и статусу
// Сотрудник видит только свои записи, администратор - все
func (s *Service) GetSalonAppointments(ctx context.Context, req *models.GetSalonAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetSalonAppointments: fetching appointments for user=%d role=%s", req.UserID, req.UserRole)

	// Сотрудник может смотреть только собственное расписание
	if req.UserRole == string(domain.RoleEmployee) {
		if req.EmployeeID != nil && *req.EmployeeID != req.UserID {
			s.logger.Warn("GetSalonAppointments: employee=%d requested appointments of employee=%d",
				req.UserID, *req.EmployeeID)
			return nil, ErrAccessDenied
		}
		employeeID := req.UserID
		req.EmployeeID = &employeeID
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetSalonAppointments: invalid filter for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	appointments, err := s.apptRepo.GetWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetSalonAppointments: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetSalonAppointments - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("GetSalonAppointments: successfully fetched %d appointments", len(appointments))
	return models.FromDomainAppointmentList(appointments), nil
}

// Cancel отменяет запись
// Клиент может отменить только свою запись (cancelled_by_client)
// Сотрудник и администратор отменяют от имени салона (cancelled_by_salon)
func (s *Service) Cancel(ctx context.Context, appointmentID int64, req *models.CancelAppointmentRequest) error {
	s.logger.Info("Cancel: cancelling appointment id=%d by user=%d", appointmentID, req.UserID)

	appt, err := s.apptRepo.GetByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Cancel: appointment id=%d not found", appointmentID)
			return ErrAppointmentNotFound
		}
		s.logger.Error("Cancel: repository error for appointment id=%d: %v", appointmentID, err)
		return fmt.Errorf("%w: Cancel - repository error: %w", ErrInternal, err)
	}

	if !appt.CanBeCancelled() {
		s.logger.Warn("Cancel: appointment id=%d cannot be cancelled, status=%s", appointmentID, appt.Status)
		return ErrCannotCancel
	}

	// Определяем статус отмены в зависимости от роли
	var cancelStatus domain.AppointmentStatus
	switch {
	case appt.ClientID == req.UserID:
		cancelStatus = domain.StatusCancelledByClient
	case req.UserRole == string(domain.RoleAdmin):
		cancelStatus = domain.StatusCancelledBySalon
	case req.UserRole == string(domain.RoleEmployee) && appt.EmployeeID == req.UserID:
		cancelStatus = domain.StatusCancelledBySalon
	default:
		s.logger.Warn("Cancel: access denied for user=%d to cancel appointment id=%d", req.UserID, appointmentID)
		return ErrAccessDenied
	}

	// Отмена и запись в журнал аудита выполняются в одной транзакции
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.apptRepo.Cancel(ctx, appointmentID, cancelStatus, req.CancellationReason); err != nil {
			if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			return fmt.Errorf("%w: Cancel - repository error: %w", ErrInternal, err)
		}

		detail := fmt.Sprintf("status=%s, reason=%s", cancelStatus, req.CancellationReason)
		return s.auditRecorder.Record(ctx, req.UserID, domain.AuditActionAppointmentCancel,
			domain.AuditEntityAppointment, fmt.Sprintf("%d", appointmentID), &detail)
	})
	if err != nil {
		if errors.Is(err, ErrAppointmentNotFound) {
			return err
		}
		s.logger.Error("Cancel: transaction failed for appointment id=%d: %v", appointmentID, err)
		return err
	}

	// Уведомляем клиента; недоступность рассылки не отменяет операцию
	if cancelStatus == domain.StatusCancelledBySalon {
		msg := notifier.Message{
			UserID:  appt.ClientID,
			Event:   notifier.EventAppointmentCancelled,
			Subject: "Запись отменена",
			Body: fmt.Sprintf("Ваша запись на %s %s отменена салоном",
				appt.AppointmentDate.Format(domain.DateFormat), appt.StartTime.String()),
		}
		_ = s.notifierClient.SendWithGracefulDegradation(ctx, msg)
	}

	s.logger.Info("Cancel: successfully cancelled appointment id=%d with status=%s", appointmentID, cancelStatus)
	return nil
}

// UpdateStatus обновляет статус записи
// Доступно сотруднику, на которого назначена запись, и администратору
// Переход проверяется по матрице допустимых статусов
func (s *Service) UpdateStatus(ctx context.Context, appointmentID int64, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating appointment id=%d to status=%s by user=%d",
		appointmentID, req.Status, req.UserID)

	appt, err := s.apptRepo.GetByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			s.logger.Warn("UpdateStatus: appointment id=%d not found", appointmentID)
			return ErrAppointmentNotFound
		}
		s.logger.Error("UpdateStatus: repository error for appointment id=%d: %v", appointmentID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %w", ErrInternal, err)
	}

	if err := s.checkStaffAccess(appt, req.UserID, req.UserRole); err != nil {
		return err
	}

	newStatus, err := models.ToDomainAppointmentStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for appointment id=%d", req.Status, appointmentID)
		return fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	if !domain.ValidStatusTransition(appt.Status, newStatus) {
		s.logger.Warn("UpdateStatus: invalid transition %s -> %s for appointment id=%d",
			appt.Status, newStatus, appointmentID)
		return ErrInvalidTransition
	}

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.apptRepo.UpdateStatus(ctx, appointmentID, newStatus); err != nil {
			if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			return fmt.Errorf("%w: UpdateStatus - repository error: %w", ErrInternal, err)
		}

		detail := fmt.Sprintf("%s -> %s", appt.Status, newStatus)
		return s.auditRecorder.Record(ctx, req.UserID, domain.AuditActionAppointmentStatus,
			domain.AuditEntityAppointment, fmt.Sprintf("%d", appointmentID), &detail)
	})
	if err != nil {
		if errors.Is(err, ErrAppointmentNotFound) {
			return err
		}
		s.logger.Error("UpdateStatus: transaction failed for appointment id=%d: %v", appointmentID, err)
		return err
	}

	s.logger.Info("UpdateStatus: successfully updated appointment id=%d to status=%s", appointmentID, newStatus)
	return nil
}

// Вспомогательные методы

// checkAccess проверяет, что пользователь имеет доступ к записи
func (s *Service) checkAccess(appt *domain.Appointment, userID int64, userRole string) error {
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

// checkStaffAccess проверяет, что пользователь управляет записью от имени салона
func (s *Service) checkStaffAccess(appt *domain.Appointment, userID int64, userRole string) error {
	if userRole == string(domain.RoleAdmin) {
		return nil
	}
	if userRole == string(domain.RoleEmployee) && appt.EmployeeID == userID {
		return nil
	}
	s.logger.Warn("checkStaffAccess: user=%d role=%s has no access to appointment id=%d",
		userID, userRole, appt.ID)
	return ErrAccessDenied
}
