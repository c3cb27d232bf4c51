package reschedule_appointment

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("reschedule_appointment: appointment not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("reschedule_appointment: access denied")

	// ErrCannotReschedule возвращается, когда запись нельзя перенести
	ErrCannotReschedule = errors.New("reschedule_appointment: appointment cannot be rescheduled")

	// ErrInvalidDate возвращается при некорректной дате записи
	ErrInvalidDate = errors.New("reschedule_appointment: invalid appointment date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("reschedule_appointment: date is too far in the future")

	// ErrEmployeeNotWorking возвращается, когда сотрудник не работает в указанный день
	ErrEmployeeNotWorking = errors.New("reschedule_appointment: employee is not working on this date")

	// ErrInvalidTimeSlot возвращается, когда время не совпадает с сеткой слотов
	ErrInvalidTimeSlot = errors.New("reschedule_appointment: invalid time slot")

	// ErrSlotConflict возвращается, когда новый слот пересекается с другой записью
	ErrSlotConflict = errors.New("reschedule_appointment: slot conflicts with an existing appointment")

	// ErrTooLateToBook возвращается при нарушении minNoticeMinutes
	ErrTooLateToBook = errors.New("reschedule_appointment: too late to book this slot")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reschedule_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reschedule_appointment: internal error")
)
