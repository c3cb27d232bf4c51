package reschedule_appointment

import (
	"time"

	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// Request модель запроса на перенос записи
type Request struct {
	AppointmentID int64            // ID записи
	UserID        int64            // ID инициатора (из токена)
	UserRole      string           // Роль инициатора
	NewDate       time.Time        // Новая дата (без времени)
	NewStartTime  types.TimeString // Новое время начала
}

// Response модель ответа с перенесённой записью
type Response struct {
	ID              int64            // ID записи
	ClientID        int64            // ID клиента
	EmployeeID      int64            // ID сотрудника
	ServiceID       int64            // ID услуги
	AppointmentDate time.Time        // Новая дата записи
	StartTime       types.TimeString // Новое время начала
	DurationMinutes int              // Длительность услуги в минутах
	Status          string           // Статус записи
}
