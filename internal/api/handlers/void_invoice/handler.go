package void_invoice

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonService/internal/service/invoices"
)

const (
	msgInvalidInvoiceID = "некорректный ID счёта"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgNotFound         = "счёт не найден"
	msgCannotVoid       = "счёт нельзя аннулировать в текущем статусе"
)

type Handler struct {
	service InvoiceService
	logger  Logger
}

func NewHandler(service InvoiceService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/invoices/{invoiceId}/void
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	invoiceID, err := strconv.ParseInt(vars["invoiceId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /invoices/{id}/void - Invalid invoice ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInvoiceID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /invoices/{id}/void - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	err = h.service.Void(r.Context(), invoiceID, userID)
	if err != nil {
		switch {
		case errors.Is(err, invoices.ErrInvoiceNotFound):
			h.logger.Warn("PATCH /invoices/{id}/void - Invoice not found: invoice_id=%d", invoiceID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, invoices.ErrCannotVoid):
			h.logger.Warn("PATCH /invoices/{id}/void - Cannot void: invoice_id=%d", invoiceID)
			handlers.RespondBadRequest(w, msgCannotVoid)

		default:
			h.logger.Error("PATCH /invoices/{id}/void - Failed to void invoice: invoice_id=%d, error=%v",
				invoiceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /invoices/{id}/void - Invoice voided successfully: invoice_id=%d, user_id=%d",
		invoiceID, userID)
	handlers.RespondJSON(w, http.StatusOK, nil)
}
