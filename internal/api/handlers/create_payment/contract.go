package create_payment

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/service/payments/models"
)

type PaymentService interface {
	Capture(ctx context.Context, req *models.CreatePaymentRequest) (*models.PaymentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
