package book_appointment

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/integrations/notifier"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
	GetWithFilter(ctx context.Context, filter domain.SalonAppointmentsFilter) ([]*domain.Appointment, error)
}

// ScheduleRepository интерфейс репозитория расписаний сотрудников
type ScheduleRepository interface {
	GetByEmployee(ctx context.Context, employeeID int64) (*domain.WeeklySchedule, error)
}

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	GetEmployeeByID(ctx context.Context, id int64) (*domain.User, error)
}

// CatalogRepository интерфейс репозитория услуг
type CatalogRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.SalonService, error)
}

// ConfigResolver возвращает действующую конфигурацию бронирования
type ConfigResolver interface {
	Resolve(ctx context.Context, employeeID *int64, serviceID *int64) (*domain.BookingConfig, error)
}

// SettingsProvider возвращает настройки салона
type SettingsProvider interface {
	GetDomain(ctx context.Context) (*domain.SalonSettings, error)
}

// NotifierClient интерфейс клиента сервиса уведомлений
type NotifierClient interface {
	SendWithGracefulDegradation(ctx context.Context, msg notifier.Message) error
}

// AuditRecorder интерфейс записи событий в журнал аудита
type AuditRecorder interface {
	Record(ctx context.Context, actorID int64, action, entityType, entityID string, detail *string) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
