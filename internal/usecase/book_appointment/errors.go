package book_appointment

import "errors"

var (
	// ErrEmployeeNotFound возвращается, когда сотрудник не найден или неактивен
	ErrEmployeeNotFound = errors.New("book_appointment: employee not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("book_appointment: service not found")

	// ErrServiceInactive возвращается, когда услуга снята с продажи
	ErrServiceInactive = errors.New("book_appointment: service is not active")

	// ErrInvalidDate возвращается при некорректной дате записи
	ErrInvalidDate = errors.New("book_appointment: invalid appointment date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("book_appointment: date is too far in the future")

	// ErrEmployeeNotWorking возвращается, когда сотрудник не работает в указанный день
	ErrEmployeeNotWorking = errors.New("book_appointment: employee is not working on this date")

	// ErrInvalidTimeSlot возвращается, когда время не совпадает с сеткой слотов
	// или услуга не помещается в рабочий интервал
	ErrInvalidTimeSlot = errors.New("book_appointment: invalid time slot")

	// ErrSlotConflict возвращается, когда слот пересекается с существующей записью
	ErrSlotConflict = errors.New("book_appointment: slot conflicts with an existing appointment")

	// ErrTooLateToBook возвращается при нарушении minNoticeMinutes
	ErrTooLateToBook = errors.New("book_appointment: too late to book this slot")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("book_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("book_appointment: internal error")
)
