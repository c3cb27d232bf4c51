package invoices

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	invoiceRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/invoice"
	"github.com/m04kA/SMC-SalonService/internal/service/invoices/models"
)

// Service сервис для работы со счетами
type Service struct {
	invoiceRepo   InvoiceRepository
	settingsRepo  SettingsRepository
	auditRecorder AuditRecorder
	txManager     TransactionManager
	logger        Logger
}

// NewService создает новый экземпляр сервиса счетов
func NewService(
	invoiceRepo InvoiceRepository,
	settingsRepo SettingsRepository,
	auditRecorder AuditRecorder,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		invoiceRepo:   invoiceRepo,
		settingsRepo:  settingsRepo,
		auditRecorder: auditRecorder,
		txManager:     txManager,
		logger:        logger,
	}
}

// IssueForAppointment выставляет счёт по завершённой записи
// Налог считается от ставки из настроек салона, суммы округляются до копеек
// Вызывается внутри транзакции завершения записи
func (s *Service) IssueForAppointment(ctx context.Context, appt *domain.Appointment, actorID int64) (*domain.Invoice, error) {
	s.logger.Info("IssueForAppointment: issuing invoice for appointment id=%d", appt.ID)

	// Повторное выставление счёта по одной записи запрещено
	if _, err := s.invoiceRepo.GetByAppointmentID(ctx, appt.ID); err == nil {
		s.logger.Warn("IssueForAppointment: appointment id=%d already invoiced", appt.ID)
		return nil, ErrAlreadyInvoiced
	} else if !errors.Is(err, invoiceRepo.ErrInvoiceNotFound) {
		s.logger.Error("IssueForAppointment: failed to check existing invoice for appointment id=%d: %v", appt.ID, err)
		return nil, fmt.Errorf("%w: IssueForAppointment - repository error: %w", ErrInternal, err)
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		s.logger.Error("IssueForAppointment: failed to load salon settings: %v", err)
		return nil, fmt.Errorf("%w: IssueForAppointment - settings error: %w", ErrInternal, err)
	}

	amount := roundMoney(appt.ServicePrice)
	taxAmount := roundMoney(amount * settings.TaxRatePercent / 100)

	inv := &domain.Invoice{
		Number:        uuid.NewString(),
		AppointmentID: appt.ID,
		ClientID:      appt.ClientID,
		Amount:        amount,
		TaxAmount:     taxAmount,
		Total:         roundMoney(amount + taxAmount),
		Currency:      settings.Currency,
		Status:        domain.InvoiceStatusIssued,
	}

	created, err := s.invoiceRepo.Create(ctx, inv)
	if err != nil {
		s.logger.Error("IssueForAppointment: failed to create invoice for appointment id=%d: %v", appt.ID, err)
		return nil, fmt.Errorf("%w: IssueForAppointment - repository error: %w", ErrInternal, err)
	}

	if err := s.auditRecorder.Record(ctx, actorID, domain.AuditActionInvoiceIssued,
		domain.AuditEntityInvoice, created.Number, nil); err != nil {
		return nil, err
	}

	s.logger.Info("IssueForAppointment: successfully issued invoice number=%s for appointment id=%d",
		created.Number, appt.ID)
	return created, nil
}

// GetByID получает счёт по ID
// Клиент видит только свои счета, персонал - любые
func (s *Service) GetByID(ctx context.Context, id int64, userID int64, userRole string) (*models.InvoiceResponse, error) {
	s.logger.Info("GetByID: fetching invoice id=%d for user=%d", id, userID)

	inv, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, invoiceRepo.ErrInvoiceNotFound) {
			s.logger.Warn("GetByID: invoice id=%d not found", id)
			return nil, ErrInvoiceNotFound
		}
		s.logger.Error("GetByID: repository error for invoice id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %w", ErrInternal, err)
	}

	if !domain.Role(userRole).IsStaff() && inv.ClientID != userID {
		s.logger.Warn("GetByID: access denied for user=%d to invoice id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainInvoice(inv), nil
}

// List получает счета с фильтрацией
// Клиент видит только свои счета, персонал - все
func (s *Service) List(ctx context.Context, req *models.ListInvoicesRequest) (*models.InvoiceListResponse, error) {
	s.logger.Info("List: fetching invoices for user=%d role=%s", req.UserID, req.UserRole)

	// Клиент может смотреть только собственные счета
	if !domain.Role(req.UserRole).IsStaff() {
		clientID := req.UserID
		req.ClientID = &clientID
	}

	limit := req.Limit
	if limit == 0 || limit > 200 {
		limit = 50
	}

	filter := domain.InvoicesFilter{
		ClientID:  req.ClientID,
		Status:    req.Status,
		StartDate: req.From,
		EndDate:   req.To,
		Limit:     limit,
		Offset:    req.Offset,
	}

	invoices, err := s.invoiceRepo.ListWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d invoices", len(invoices))
	return models.FromDomainInvoiceList(invoices), nil
}

// Void аннулирует счёт
// Доступно только администраторам; оплаченный счёт сначала должен быть возвращён
func (s *Service) Void(ctx context.Context, id int64, userID int64) error {
	s.logger.Info("Void: voiding invoice id=%d by user=%d", id, userID)

	inv, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, invoiceRepo.ErrInvoiceNotFound) {
			s.logger.Warn("Void: invoice id=%d not found", id)
			return ErrInvoiceNotFound
		}
		s.logger.Error("Void: repository error for invoice id=%d: %v", id, err)
		return fmt.Errorf("%w: Void - repository error: %w", ErrInternal, err)
	}

	if !inv.CanBeVoided() {
		s.logger.Warn("Void: invoice id=%d cannot be voided, status=%s", id, inv.Status)
		return ErrCannotVoid
	}

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.invoiceRepo.MarkVoided(ctx, id); err != nil {
			if errors.Is(err, invoiceRepo.ErrInvoiceNotFound) {
				return ErrInvoiceNotFound
			}
			return fmt.Errorf("%w: Void - repository error: %w", ErrInternal, err)
		}
		return s.auditRecorder.Record(ctx, userID, domain.AuditActionInvoiceVoided,
			domain.AuditEntityInvoice, inv.Number, nil)
	})
	if err != nil {
		if errors.Is(err, ErrInvoiceNotFound) {
			return err
		}
		s.logger.Error("Void: transaction failed for invoice id=%d: %v", id, err)
		return err
	}

	s.logger.Info("Void: successfully voided invoice id=%d", id)
	return nil
}

// roundMoney округляет сумму до двух знаков
func roundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}
