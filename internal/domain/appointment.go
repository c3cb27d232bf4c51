package domain

import (
	"time"

	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending           AppointmentStatus = "pending"
	StatusConfirmed         AppointmentStatus = "confirmed"
	StatusInProgress        AppointmentStatus = "in_progress"
	StatusCompleted         AppointmentStatus = "completed"
	StatusCancelledByClient AppointmentStatus = "cancelled_by_client"
	StatusCancelledBySalon  AppointmentStatus = "cancelled_by_salon"
	StatusNoShow            AppointmentStatus = "no_show"
)

// Appointment represents a client appointment with an employee for a catalog service
type Appointment struct {
	ID              int64
	ClientID        int64
	EmployeeID      int64
	ServiceID       int64
	AppointmentDate time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          AppointmentStatus

	// Denormalized service data for history
	ServiceName  string
	ServicePrice float64
	Notes        *string

	CancellationReason *string
	CancelledAt        *time.Time

	// Когда было отправлено напоминание (nil - ещё не отправлялось)
	RemindedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the appointment still occupies its time slot
func (a *Appointment) IsActive() bool {
	return a.Status != StatusCancelledByClient &&
		a.Status != StatusCancelledBySalon &&
		a.Status != StatusNoShow
}

// CanBeCancelled returns true if the appointment can be cancelled
func (a *Appointment) CanBeCancelled() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

// CanBeRescheduled returns true if the appointment can be moved to another slot
func (a *Appointment) CanBeRescheduled() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

// IsCancelled returns true if the appointment has been cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == StatusCancelledByClient || a.Status == StatusCancelledBySalon
}

// IsFinished returns true if the appointment reached a terminal state
func (a *Appointment) IsFinished() bool {
	return a.Status == StatusCompleted || a.Status == StatusNoShow || a.IsCancelled()
}

// EndTime возвращает время окончания записи
func (a *Appointment) EndTime() (types.TimeString, error) {
	return a.StartTime.AddMinutes(a.DurationMinutes)
}

// ValidStatusTransition проверяет допустимость перехода статуса силами сотрудника
// Отмена идёт через отдельную операцию Cancel и здесь не участвует
func ValidStatusTransition(from, to AppointmentStatus) bool {
	switch from {
	case StatusPending:
		return to == StatusConfirmed || to == StatusNoShow
	case StatusConfirmed:
		return to == StatusInProgress || to == StatusCompleted || to == StatusNoShow
	case StatusInProgress:
		return to == StatusCompleted
	default:
		return false
	}
}

// SalonAppointmentsFilter фильтр для получения записей салона
type SalonAppointmentsFilter struct {
	EmployeeID      *int64             // Фильтр по сотруднику (опционально)
	ClientID        *int64             // Фильтр по клиенту (опционально)
	StartDate       *time.Time         // Начало периода (опционально)
	EndDate         *time.Time         // Конец периода (опционально)
	Status          *AppointmentStatus // Фильтр по статусу (опционально)
	IncludeInactive bool               // Включать ли отменённые и no-show записи
}
