package save_booking_config

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonService/internal/service/bookingconfig"
	"github.com/m04kA/SMC-SalonService/internal/service/bookingconfig/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidConfig      = "некорректная конфигурация бронирования"
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

// Handle PUT /api/v1/booking-configs
// Пара (employeeId, serviceId) в теле задаёт уровень иерархии
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.SaveConfigRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /booking-configs - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /booking-configs - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}
	req.UserID = userID

	result, err := h.service.Save(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, bookingconfig.ErrInvalidConfig):
			h.logger.Warn("PUT /booking-configs - Invalid config: %v", err)
			handlers.RespondBadRequest(w, msgInvalidConfig)

		default:
			h.logger.Error("PUT /booking-configs - Failed to save config: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /booking-configs - Config saved successfully: config_id=%d, user_id=%d", result.ID, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
