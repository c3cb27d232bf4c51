package complete_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	apptRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/appointment"
	invoicesService "github.com/m04kA/SMC-SalonService/internal/service/invoices"
	"github.com/m04kA/SMC-SalonService/pkg/ptr"
)

// UseCase use case завершения записи с выставлением счёта
// Перевод статуса и создание счёта выполняются в одной транзакции
type UseCase struct {
	apptRepo      AppointmentRepository
	invoiceIssuer InvoiceIssuer
	auditRecorder AuditRecorder
	txManager     TransactionManager
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	apptRepo AppointmentRepository,
	invoiceIssuer InvoiceIssuer,
	auditRecorder AuditRecorder,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		apptRepo:      apptRepo,
		invoiceIssuer: invoiceIssuer,
		auditRecorder: auditRecorder,
		txManager:     txManager,
		logger:        logger,
	}
}

// Execute выполняет use case завершения записи
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CompleteAppointment: appointment=%d, user=%d", req.AppointmentID, req.UserID)

	// 1. Валидация входных данных
	if req.AppointmentID <= 0 {
		return nil, fmt.Errorf("%w: appointmentID must be positive", ErrInvalidInput)
	}
	if req.UserID <= 0 {
		return nil, fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	// 2. Получаем запись
	appt, err := uc.apptRepo.GetByID(ctx, req.AppointmentID)
	if err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			uc.logger.Warn("CompleteAppointment: appointment id=%d not found", req.AppointmentID)
			return nil, ErrAppointmentNotFound
		}
		uc.logger.Error("CompleteAppointment: failed to get appointment id=%d: %v", req.AppointmentID, err)
		return nil, fmt.Errorf("%w: failed to get appointment: %w", ErrInternal, err)
	}

	// 3. Завершать запись может админ или назначенный сотрудник
	role := domain.Role(req.UserRole)
	if role != domain.RoleAdmin && !(role == domain.RoleEmployee && appt.EmployeeID == req.UserID) {
		uc.logger.Warn("CompleteAppointment: access denied for user=%d to appointment id=%d",
			req.UserID, req.AppointmentID)
		return nil, ErrAccessDenied
	}

	// 4. Проверяем допустимость перехода статуса
	if !domain.ValidStatusTransition(appt.Status, domain.StatusCompleted) {
		uc.logger.Warn("CompleteAppointment: invalid transition %s -> %s for appointment id=%d",
			appt.Status, domain.StatusCompleted, req.AppointmentID)
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, appt.Status, domain.StatusCompleted)
	}

	// 5. Транзакция: смена статуса + счёт + аудит
	var invoice *domain.Invoice
	err = uc.txManager.Do(ctx, func(ctx context.Context) error {
		if err := uc.apptRepo.UpdateStatus(ctx, appt.ID, domain.StatusCompleted); err != nil {
			return fmt.Errorf("%w: failed to update status: %w", ErrInternal, err)
		}

		invoice, err = uc.invoiceIssuer.IssueForAppointment(ctx, appt, req.UserID)
		if err != nil {
			if errors.Is(err, invoicesService.ErrAlreadyInvoiced) {
				return ErrAlreadyInvoiced
			}
			return err
		}

		detail := fmt.Sprintf("%s -> %s", appt.Status, domain.StatusCompleted)
		return uc.auditRecorder.Record(ctx, req.UserID, domain.AuditActionAppointmentStatus,
			domain.AuditEntityAppointment, fmt.Sprintf("%d", appt.ID), ptr.Ptr(detail))
	})
	if err != nil {
		if errors.Is(err, ErrAlreadyInvoiced) {
			return nil, err
		}
		uc.logger.Error("CompleteAppointment: transaction failed for appointment id=%d: %v", appt.ID, err)
		return nil, err
	}

	uc.logger.Info("CompleteAppointment: appointment id=%d completed, invoice number=%s issued",
		appt.ID, invoice.Number)

	return &Response{
		AppointmentID: appt.ID,
		Status:        string(domain.StatusCompleted),
		Invoice:       fromDomainInvoice(invoice),
	}, nil
}
