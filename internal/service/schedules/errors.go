package schedules

import "errors"

var (
	// ErrEmployeeNotFound возвращается, когда сотрудник не найден
	ErrEmployeeNotFound = errors.New("employee not found")

	// ErrScheduleNotFound возвращается, когда расписание сотрудника не задано
	ErrScheduleNotFound = errors.New("schedule not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidSchedule возвращается при некорректном расписании
	ErrInvalidSchedule = errors.New("invalid schedule")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
