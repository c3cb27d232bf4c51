package create_payment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonService/internal/service/payments"
	"github.com/m04kA/SMC-SalonService/internal/service/payments/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvoiceNotFound    = "счёт не найден"
	msgInvoiceNotPayable  = "счёт нельзя оплатить в текущем статусе"
	msgChargeDeclined     = "платёж отклонён платёжным шлюзом"
	msgInvalidPayment     = "некорректные данные платежа"
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

// Handle POST /api/v1/payments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePaymentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /payments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /payments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}
	req.UserID = userID

	result, err := h.service.Capture(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, payments.ErrInvoiceNotFound):
			h.logger.Warn("POST /payments - Invoice not found: invoice_id=%d", req.InvoiceID)
			handlers.RespondNotFound(w, msgInvoiceNotFound)

		case errors.Is(err, payments.ErrInvoiceNotPayable):
			h.logger.Warn("POST /payments - Invoice not payable: invoice_id=%d", req.InvoiceID)
			handlers.RespondConflict(w, msgInvoiceNotPayable)

		case errors.Is(err, payments.ErrChargeDeclined):
			h.logger.Warn("POST /payments - Charge declined: invoice_id=%d", req.InvoiceID)
			handlers.RespondError(w, http.StatusPaymentRequired, msgChargeDeclined)

		case errors.Is(err, payments.ErrInvalidInput):
			h.logger.Warn("POST /payments - Invalid payment data: %v", err)
			handlers.RespondBadRequest(w, msgInvalidPayment)

		default:
			h.logger.Error("POST /payments - Failed to capture payment: invoice_id=%d, error=%v",
				req.InvoiceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /payments - Payment captured successfully: payment_id=%d, invoice_id=%d, user_id=%d",
		result.ID, req.InvoiceID, userID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
