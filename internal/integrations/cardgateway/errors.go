package cardgateway

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("cardgateway client: internal error")

	// ErrChargeDeclined возвращается, когда платежный шлюз отклонил списание
	ErrChargeDeclined = errors.New("cardgateway client: charge declined")

	// ErrRefundFailed возвращается при неудачной попытке возврата средств
	ErrRefundFailed = errors.New("cardgateway client: refund failed")
)
