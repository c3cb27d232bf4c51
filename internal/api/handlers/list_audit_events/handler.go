package list_audit_events

import (
	"net/http"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
)

const msgInvalidParams = "некорректные параметры запроса"

type Handler struct {
	service AuditService
	logger  Logger
}

func NewHandler(service AuditService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/audit-events
// Query params: actorId, action, entityType, from, to, limit, offset (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter, err := ToDomainFilter(
		query.Get("actorId"),
		query.Get("action"),
		query.Get("entityType"),
		query.Get("from"),
		query.Get("to"),
		query.Get("limit"),
		query.Get("offset"),
	)
	if err != nil {
		h.logger.Warn("GET /audit-events - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	events, err := h.service.List(r.Context(), filter)
	if err != nil {
		h.logger.Error("GET /audit-events - Failed to list audit events: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /audit-events - Audit events retrieved: count=%d", len(events))
	handlers.RespondJSON(w, http.StatusOK, FromDomainEvents(events))
}
