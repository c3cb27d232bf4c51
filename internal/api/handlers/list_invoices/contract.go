package list_invoices

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/service/invoices/models"
)

type InvoiceService interface {
	List(ctx context.Context, req *models.ListInvoicesRequest) (*models.InvoiceListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
