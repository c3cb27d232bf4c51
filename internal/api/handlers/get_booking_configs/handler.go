package get_booking_configs

import (
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
)

const (
	msgInvalidEmployeeID = "некорректный ID сотрудника"
	msgInvalidServiceID  = "некорректный ID услуги"
)

type Handler struct {
	service BookingConfigService
	logger  Logger
}

func NewHandler(service BookingConfigService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/booking-configs
// Query params: employeeId, serviceId (опциональные) - при наличии хотя бы одного
// возвращается действующая конфигурация с учётом иерархии, иначе полный список
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := parseOptionalID(r, "employeeId")
	if !ok {
		h.logger.Warn("GET /booking-configs - Invalid employee ID: %q", r.URL.Query().Get("employeeId"))
		handlers.RespondBadRequest(w, msgInvalidEmployeeID)
		return
	}
	serviceID, ok := parseOptionalID(r, "serviceId")
	if !ok {
		h.logger.Warn("GET /booking-configs - Invalid service ID: %q", r.URL.Query().Get("serviceId"))
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	if employeeID != nil || serviceID != nil {
		resolved, err := h.service.GetEffective(r.Context(), employeeID, serviceID)
		if err != nil {
			h.logger.Error("GET /booking-configs - Failed to resolve config: error=%v", err)
			handlers.RespondInternalError(w)
			return
		}

		h.logger.Info("GET /booking-configs - Effective config resolved")
		handlers.RespondJSON(w, http.StatusOK, resolved)
		return
	}

	result, err := h.service.GetAll(r.Context())
	if err != nil {
		h.logger.Error("GET /booking-configs - Failed to list configs: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /booking-configs - Configs retrieved: count=%d", len(result.Configs))
	handlers.RespondJSON(w, http.StatusOK, result)
}

// parseOptionalID читает опциональный числовой query параметр
// Возвращает (nil, true) при отсутствии параметра и (nil, false) при некорректном значении
func parseOptionalID(r *http.Request, name string) (*int64, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, true
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil, false
	}
	return &id, true
}
