package list_invoices

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonService/internal/service/invoices"
)

const (
	msgMissingUserID = "отсутствует ID пользователя"
	msgInvalidParams = "некорректные параметры запроса"
	msgForbidden     = "доступ запрещен"
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

// Handle GET /api/v1/invoices
// Query params: clientId, status, from, to, limit, offset (опционально)
// Клиент видит только собственные счета
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /invoices - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}
	userRole, _ := middleware.GetUserRole(r.Context())

	query := r.URL.Query()
	serviceReq, err := ToServiceRequest(
		userID,
		userRole,
		query.Get("clientId"),
		query.Get("status"),
		query.Get("from"),
		query.Get("to"),
		query.Get("limit"),
		query.Get("offset"),
	)
	if err != nil {
		h.logger.Warn("GET /invoices - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.List(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, invoices.ErrAccessDenied):
			h.logger.Warn("GET /invoices - Access denied: user_id=%d", userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, invoices.ErrInvalidInput):
			h.logger.Warn("GET /invoices - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /invoices - Failed to list invoices: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /invoices - Invoices retrieved: user_id=%d, count=%d", userID, len(result.Invoices))
	handlers.RespondJSON(w, http.StatusOK, result)
}
