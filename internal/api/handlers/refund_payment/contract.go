package refund_payment

import "context"

type PaymentService interface {
	Refund(ctx context.Context, paymentID int64, userID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
