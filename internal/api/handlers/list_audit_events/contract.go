package list_audit_events

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

type AuditService interface {
	List(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditEvent, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
