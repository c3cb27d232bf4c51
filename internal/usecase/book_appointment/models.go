package book_appointment

import (
	"time"

	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	ClientID   int64            // ID клиента (из токена)
	EmployeeID int64            // ID сотрудника
	ServiceID  int64            // ID услуги
	Date       time.Time        // Дата записи (без времени)
	StartTime  types.TimeString // Время начала (например, "10:00")
	Notes      *string          // Пожелания клиента (опционально)
}

// Response модель ответа с созданной записью
type Response struct {
	ID              int64            // ID созданной записи
	ClientID        int64            // ID клиента
	EmployeeID      int64            // ID сотрудника
	ServiceID       int64            // ID услуги
	AppointmentDate time.Time        // Дата записи
	StartTime       types.TimeString // Время начала
	DurationMinutes int              // Длительность услуги в минутах
	Status          string           // Статус записи

	// Денормализованные данные услуги на момент записи
	ServiceName  string  // Название услуги
	ServicePrice float64 // Цена услуги
	Notes        *string // Пожелания клиента

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
