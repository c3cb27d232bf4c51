package invoices

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// InvoiceRepository интерфейс репозитория счетов
type InvoiceRepository interface {
	Create(ctx context.Context, inv *domain.Invoice) (*domain.Invoice, error)
	GetByID(ctx context.Context, id int64) (*domain.Invoice, error)
	GetByAppointmentID(ctx context.Context, appointmentID int64) (*domain.Invoice, error)
	ListWithFilter(ctx context.Context, filter domain.InvoicesFilter) ([]*domain.Invoice, error)
	MarkVoided(ctx context.Context, id int64) error
}

// SettingsRepository интерфейс репозитория настроек салона
type SettingsRepository interface {
	Get(ctx context.Context) (*domain.SalonSettings, error)
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
