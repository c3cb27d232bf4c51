package delete_booking_config

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonService/internal/service/bookingconfig"
	"github.com/m04kA/SMC-SalonService/internal/service/bookingconfig/models"
)

const (
	msgInvalidParams = "некорректные параметры запроса"
	msgMissingUserID = "отсутствует ID пользователя"
	msgNotFound      = "конфигурация не найдена"
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

// Handle DELETE /api/v1/booking-configs
// Query params: employeeId, serviceId (опционально, отсутствие означает NULL-уровень)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /booking-configs - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	req := &models.DeleteConfigRequest{UserID: userID}

	if employeeIDStr := r.URL.Query().Get("employeeId"); employeeIDStr != "" {
		employeeID, err := strconv.ParseInt(employeeIDStr, 10, 64)
		if err != nil {
			h.logger.Warn("DELETE /booking-configs - Invalid employee ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)
			return
		}
		req.EmployeeID = &employeeID
	}

	if serviceIDStr := r.URL.Query().Get("serviceId"); serviceIDStr != "" {
		serviceID, err := strconv.ParseInt(serviceIDStr, 10, 64)
		if err != nil {
			h.logger.Warn("DELETE /booking-configs - Invalid service ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)
			return
		}
		req.ServiceID = &serviceID
	}

	err := h.service.Delete(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookingconfig.ErrConfigNotFound):
			h.logger.Warn("DELETE /booking-configs - Config not found")
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("DELETE /booking-configs - Failed to delete config: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /booking-configs - Config deleted successfully: user_id=%d", userID)
	handlers.RespondJSON(w, http.StatusOK, nil)
}
