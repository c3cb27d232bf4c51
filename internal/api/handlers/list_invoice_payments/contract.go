package list_invoice_payments

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/service/payments/models"
)

type PaymentService interface {
	ListByInvoice(ctx context.Context, invoiceID int64) (*models.PaymentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
