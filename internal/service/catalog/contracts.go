package catalog

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// CatalogRepository интерфейс репозитория услуг салона
type CatalogRepository interface {
	Create(ctx context.Context, svc *domain.SalonService) (*domain.SalonService, error)
	GetByID(ctx context.Context, id int64) (*domain.SalonService, error)
	List(ctx context.Context, activeOnly bool) ([]*domain.SalonService, error)
	Update(ctx context.Context, id int64, svc *domain.SalonService) (*domain.SalonService, error)
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
