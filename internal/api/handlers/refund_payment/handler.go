package refund_payment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonService/internal/service/payments"
)

const (
	msgInvalidPaymentID = "некорректный ID платежа"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgNotFound         = "платёж не найден"
	msgCannotRefund     = "платёж нельзя вернуть в текущем статусе"
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

// Handle PATCH /api/v1/payments/{paymentId}/refund
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	paymentID, err := strconv.ParseInt(vars["paymentId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /payments/{id}/refund - Invalid payment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPaymentID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /payments/{id}/refund - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	err = h.service.Refund(r.Context(), paymentID, userID)
	if err != nil {
		switch {
		case errors.Is(err, payments.ErrPaymentNotFound):
			h.logger.Warn("PATCH /payments/{id}/refund - Payment not found: payment_id=%d", paymentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, payments.ErrCannotRefund):
			h.logger.Warn("PATCH /payments/{id}/refund - Cannot refund: payment_id=%d", paymentID)
			handlers.RespondBadRequest(w, msgCannotRefund)

		default:
			h.logger.Error("PATCH /payments/{id}/refund - Failed to refund payment: payment_id=%d, error=%v",
				paymentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /payments/{id}/refund - Payment refunded successfully: payment_id=%d, user_id=%d",
		paymentID, userID)
	handlers.RespondJSON(w, http.StatusOK, nil)
}
