package bookingconfig

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// ConfigRepository интерфейс репозитория конфигурации бронирования
type ConfigRepository interface {
	Upsert(ctx context.Context, config *domain.BookingConfig) (*domain.BookingConfig, error)
	GetByEmployeeAndService(ctx context.Context, employeeID *int64, serviceID *int64) (*domain.BookingConfig, error)
	GetConfigWithHierarchy(ctx context.Context, employeeID *int64, serviceID *int64) (*domain.BookingConfig, error)
	GetAll(ctx context.Context) ([]*domain.BookingConfig, error)
	DeleteByEmployeeAndService(ctx context.Context, employeeID *int64, serviceID *int64) error
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
