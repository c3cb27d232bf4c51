package payments

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// PaymentRepository интерфейс репозитория платежей
type PaymentRepository interface {
	Create(ctx context.Context, p *domain.Payment) (*domain.Payment, error)
	GetByID(ctx context.Context, id int64) (*domain.Payment, error)
	ListByInvoice(ctx context.Context, invoiceID int64) ([]*domain.Payment, error)
	MarkRefunded(ctx context.Context, id int64) error
}

// InvoiceRepository интерфейс репозитория счетов
type InvoiceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Invoice, error)
	MarkPaid(ctx context.Context, id int64) error
	Reopen(ctx context.Context, id int64) error
}

// CardGateway интерфейс платежного шлюза для карточных платежей
type CardGateway interface {
	Charge(amountMinor int64, currency string, description string) (string, error)
	Refund(intentID string) error
}

// AuditRecorder интерфейс записи событий в журнал аудита
type AuditRecorder interface {
	Record(ctx context.Context, actorID int64, action, entityType, entityID string, detail *string) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
