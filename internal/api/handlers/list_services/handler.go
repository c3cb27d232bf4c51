package list_services

import (
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonService/internal/domain"
)

const msgInvalidParams = "некорректные параметры запроса"

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/services
// Query params: includeInactive (опционально, учитывается только для персонала)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	activeOnly := true

	if includeInactiveStr := r.URL.Query().Get("includeInactive"); includeInactiveStr != "" {
		includeInactive, err := strconv.ParseBool(includeInactiveStr)
		if err != nil {
			h.logger.Warn("GET /services - Invalid includeInactive value: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)
			return
		}

		// Неактивные услуги видит только персонал
		role, _ := middleware.GetUserRole(r.Context())
		if includeInactive && domain.Role(role).IsStaff() {
			activeOnly = false
		}
	}

	result, err := h.service.List(r.Context(), activeOnly)
	if err != nil {
		h.logger.Error("GET /services - Failed to list services: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /services - Services retrieved: count=%d", len(result.Services))
	handlers.RespondJSON(w, http.StatusOK, result)
}
