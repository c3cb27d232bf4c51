package invoices

import "errors"

var (
	// ErrInvoiceNotFound возвращается, когда счёт не найден
	ErrInvoiceNotFound = errors.New("invoice not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrCannotVoid возвращается, когда счёт не может быть аннулирован
	ErrCannotVoid = errors.New("invoice cannot be voided")

	// ErrAlreadyInvoiced возвращается при повторной попытке выставить счёт по записи
	ErrAlreadyInvoiced = errors.New("appointment already invoiced")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
