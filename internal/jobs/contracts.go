// Package jobs фоновые задачи: напоминания о записях и отметка неявок
package jobs

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/integrations/notifier"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetDueForReminder(ctx context.Context, now time.Time, leadMinutes int) ([]*domain.Appointment, error)
	MarkReminded(ctx context.Context, id int64) error
	MarkNoShows(ctx context.Context, now time.Time, graceMinutes int) (int64, error)
}

// NotifierClient интерфейс клиента сервиса уведомлений
type NotifierClient interface {
	SendWithGracefulDegradation(ctx context.Context, msg notifier.Message) error
}

// SettingsProvider возвращает настройки салона
type SettingsProvider interface {
	GetDomain(ctx context.Context) (*domain.SalonSettings, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
