package payments

import "errors"

var (
	// ErrInvoiceNotFound возвращается, когда счёт не найден
	ErrInvoiceNotFound = errors.New("invoice not found")

	// ErrPaymentNotFound возвращается, когда платёж не найден
	ErrPaymentNotFound = errors.New("payment not found")

	// ErrInvoiceNotPayable возвращается, когда счёт нельзя оплатить
	ErrInvoiceNotPayable = errors.New("invoice cannot be paid")

	// ErrCannotRefund возвращается, когда платёж нельзя вернуть
	ErrCannotRefund = errors.New("payment cannot be refunded")

	// ErrChargeDeclined возвращается, когда платёжный шлюз отклонил списание
	ErrChargeDeclined = errors.New("charge declined by gateway")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
