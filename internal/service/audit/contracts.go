package audit

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// AuditRepository интерфейс репозитория журнала аудита
type AuditRepository interface {
	Insert(ctx context.Context, event *domain.AuditEvent) error
	ListWithFilter(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditEvent, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
