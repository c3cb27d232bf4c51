package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
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
// для пары (сотрудник, услуга) с учетом иерархии приоритетов
type ConfigResolver interface {
	Resolve(ctx context.Context, employeeID *int64, serviceID *int64) (*domain.BookingConfig, error)
}

// SettingsProvider возвращает настройки салона (таймзона для расчёта "сегодня")
type SettingsProvider interface {
	GetDomain(ctx context.Context) (*domain.SalonSettings, error)
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
