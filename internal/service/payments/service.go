package payments

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	invoiceRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/invoice"
	paymentRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/payment"
	"github.com/m04kA/SMC-SalonService/internal/service/payments/models"
)

// Service сервис для работы с платежами
type Service struct {
	paymentRepo   PaymentRepository
	invoiceRepo   InvoiceRepository
	cardGateway   CardGateway
	auditRecorder AuditRecorder
	txManager     TransactionManager
	logger        Logger
}

// NewService создает новый экземпляр сервиса платежей
func NewService(
	paymentRepo PaymentRepository,
	invoiceRepo InvoiceRepository,
	cardGateway CardGateway,
	auditRecorder AuditRecorder,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		paymentRepo:   paymentRepo,
		invoiceRepo:   invoiceRepo,
		cardGateway:   cardGateway,
		auditRecorder: auditRecorder,
		txManager:     txManager,
		logger:        logger,
	}
}

// Capture принимает оплату счёта наличными или картой
// Карточный платёж сначала проводится через платёжный шлюз,
// затем платёж и статус счёта фиксируются в одной транзакции
func (s *Service) Capture(ctx context.Context, req *models.CreatePaymentRequest) (*models.PaymentResponse, error) {
	s.logger.Info("Capture: capturing payment for invoice=%d method=%s by user=%d",
		req.InvoiceID, req.Method, req.UserID)

	method := domain.PaymentMethod(req.Method)
	if !method.IsValid() {
		s.logger.Warn("Capture: invalid payment method=%s", req.Method)
		return nil, fmt.Errorf("%w: invalid payment method", ErrInvalidInput)
	}

	inv, err := s.invoiceRepo.GetByID(ctx, req.InvoiceID)
	if err != nil {
		if errors.Is(err, invoiceRepo.ErrInvoiceNotFound) {
			s.logger.Warn("Capture: invoice id=%d not found", req.InvoiceID)
			return nil, ErrInvoiceNotFound
		}
		s.logger.Error("Capture: repository error for invoice id=%d: %v", req.InvoiceID, err)
		return nil, fmt.Errorf("%w: Capture - repository error: %w", ErrInternal, err)
	}

	if !inv.CanBePaid() {
		s.logger.Warn("Capture: invoice id=%d cannot be paid, status=%s", req.InvoiceID, inv.Status)
		return nil, ErrInvoiceNotPayable
	}

	payment := &domain.Payment{
		InvoiceID: inv.ID,
		Method:    method,
		Amount:    inv.Total,
		Currency:  inv.Currency,
		Status:    domain.PaymentStatusCaptured,
	}

	// Карточный платёж проводим через шлюз до фиксации в БД
	if method == domain.PaymentMethodCard {
		intentID, err := s.cardGateway.Charge(
			toMinorUnits(inv.Total),
			inv.Currency,
			fmt.Sprintf("Invoice %s", inv.Number),
		)
		if err != nil {
			s.logger.Warn("Capture: card charge declined for invoice id=%d: %v", req.InvoiceID, err)
			return nil, fmt.Errorf("%w: %w", ErrChargeDeclined, err)
		}
		payment.GatewayIntentID = &intentID
	}

	var created *domain.Payment
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		var err error
		created, err = s.paymentRepo.Create(ctx, payment)
		if err != nil {
			return fmt.Errorf("%w: Capture - repository error: %w", ErrInternal, err)
		}
		if err := s.invoiceRepo.MarkPaid(ctx, inv.ID); err != nil {
			return fmt.Errorf("%w: Capture - mark invoice paid: %w", ErrInternal, err)
		}
		detail := fmt.Sprintf("method=%s, amount=%.2f %s", method, inv.Total, inv.Currency)
		return s.auditRecorder.Record(ctx, req.UserID, domain.AuditActionPaymentCaptured,
			domain.AuditEntityPayment, fmt.Sprintf("%d", created.ID), &detail)
	})
	if err != nil {
		// Списание в шлюзе уже прошло, но платёж не зафиксирован - требуется ручной разбор
		if payment.GatewayIntentID != nil {
			s.logger.Error("Capture: CRITICAL - card charge %s succeeded but payment was not persisted: %v",
				*payment.GatewayIntentID, err)
		} else {
			s.logger.Error("Capture: transaction failed for invoice id=%d: %v", req.InvoiceID, err)
		}
		return nil, err
	}

	s.logger.Info("Capture: successfully captured payment id=%d for invoice=%d", created.ID, inv.ID)
	return models.FromDomainPayment(created), nil
}

// Refund возвращает платёж
// Карточный платёж возвращается через шлюз, счёт снова становится issued
// Доступно только администраторам
func (s *Service) Refund(ctx context.Context, paymentID int64, userID int64) error {
	s.logger.Info("Refund: refunding payment id=%d by user=%d", paymentID, userID)

	payment, err := s.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, paymentRepo.ErrPaymentNotFound) {
			s.logger.Warn("Refund: payment id=%d not found", paymentID)
			return ErrPaymentNotFound
		}
		s.logger.Error("Refund: repository error for payment id=%d: %v", paymentID, err)
		return fmt.Errorf("%w: Refund - repository error: %w", ErrInternal, err)
	}

	if !payment.CanBeRefunded() {
		s.logger.Warn("Refund: payment id=%d cannot be refunded, status=%s", paymentID, payment.Status)
		return ErrCannotRefund
	}

	// Возврат в шлюзе проводим до фиксации в БД
	if payment.Method == domain.PaymentMethodCard && payment.GatewayIntentID != nil {
		if err := s.cardGateway.Refund(*payment.GatewayIntentID); err != nil {
			s.logger.Error("Refund: gateway refund failed for payment id=%d: %v", paymentID, err)
			return fmt.Errorf("%w: Refund - gateway error: %w", ErrInternal, err)
		}
	}

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.paymentRepo.MarkRefunded(ctx, paymentID); err != nil {
			return fmt.Errorf("%w: Refund - repository error: %w", ErrInternal, err)
		}
		if err := s.invoiceRepo.Reopen(ctx, payment.InvoiceID); err != nil {
			return fmt.Errorf("%w: Refund - reopen invoice: %w", ErrInternal, err)
		}
		detail := fmt.Sprintf("amount=%.2f %s", payment.Amount, payment.Currency)
		return s.auditRecorder.Record(ctx, userID, domain.AuditActionPaymentRefunded,
			domain.AuditEntityPayment, fmt.Sprintf("%d", paymentID), &detail)
	})
	if err != nil {
		s.logger.Error("Refund: transaction failed for payment id=%d: %v", paymentID, err)
		return err
	}

	s.logger.Info("Refund: successfully refunded payment id=%d", paymentID)
	return nil
}

// ListByInvoice получает платежи по счёту
func (s *Service) ListByInvoice(ctx context.Context, invoiceID int64) (*models.PaymentListResponse, error) {
	s.logger.Info("ListByInvoice: fetching payments for invoice=%d", invoiceID)

	payments, err := s.paymentRepo.ListByInvoice(ctx, invoiceID)
	if err != nil {
		s.logger.Error("ListByInvoice: repository error for invoice=%d: %v", invoiceID, err)
		return nil, fmt.Errorf("%w: ListByInvoice - repository error: %w", ErrInternal, err)
	}

	return models.FromDomainPaymentList(payments), nil
}

// toMinorUnits конвертирует сумму в минорные единицы валюты
func toMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
