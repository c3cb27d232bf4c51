package list_invoice_payments

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/service/payments"
)

const (
	msgInvalidInvoiceID = "некорректный ID счёта"
	msgInvoiceNotFound  = "счёт не найден"
)

type Handler struct {
	service PaymentService
	logger  Logger
}

func NewHandler(service PaymentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/invoices/{invoiceId}/payments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	invoiceID, err := strconv.ParseInt(vars["invoiceId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /invoices/{id}/payments - Invalid invoice ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInvoiceID)
		return
	}

	result, err := h.service.ListByInvoice(r.Context(), invoiceID)
	if err != nil {
		switch {
		case errors.Is(err, payments.ErrInvoiceNotFound):
			h.logger.Warn("GET /invoices/{id}/payments - Invoice not found: invoice_id=%d", invoiceID)
			handlers.RespondNotFound(w, msgInvoiceNotFound)

		default:
			h.logger.Error("GET /invoices/{id}/payments - Failed to list payments: invoice_id=%d, error=%v",
				invoiceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /invoices/{id}/payments - Payments retrieved: invoice_id=%d, count=%d",
		invoiceID, len(result.Payments))
	handlers.RespondJSON(w, http.StatusOK, result)
}
