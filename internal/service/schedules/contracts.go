package schedules

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// ScheduleRepository интерфейс репозитория расписаний сотрудников
type ScheduleRepository interface {
	GetByEmployee(ctx context.Context, employeeID int64) (*domain.WeeklySchedule, error)
	Replace(ctx context.Context, schedule *domain.WeeklySchedule) error
}

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	GetEmployeeByID(ctx context.Context, id int64) (*domain.User, error)
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
