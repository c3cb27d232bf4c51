package complete_appointment

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("complete_appointment: appointment not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("complete_appointment: access denied")

	// ErrInvalidTransition возвращается, когда запись нельзя перевести в завершённый статус
	ErrInvalidTransition = errors.New("complete_appointment: invalid status transition")

	// ErrAlreadyInvoiced возвращается, когда по записи уже выставлен счёт
	ErrAlreadyInvoiced = errors.New("complete_appointment: appointment already invoiced")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("complete_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("complete_appointment: internal error")
)
