package auth

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// TokenManager интерфейс выпуска токенов доступа
type TokenManager interface {
	Generate(userID int64, role string) (string, error)
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
