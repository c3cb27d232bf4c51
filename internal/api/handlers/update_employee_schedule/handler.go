package update_employee_schedule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonService/internal/service/schedules"
	"github.com/m04kA/SMC-SalonService/internal/service/schedules/models"
)

const (
	msgInvalidEmployeeID  = "некорректный ID сотрудника"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgEmployeeNotFound   = "сотрудник не найден"
	msgForbidden          = "доступ запрещен"
	msgInvalidSchedule    = "некорректное расписание"
)

// UpdateScheduleRequest HTTP request model
type UpdateScheduleRequest struct {
	Days []models.DayScheduleInput `json:"days"`
}

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/employees/{employeeId}/schedule
// Сотрудник меняет только своё расписание, администратор - любое
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	employeeID, err := strconv.ParseInt(vars["employeeId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /employees/{id}/schedule - Invalid employee ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEmployeeID)
		return
	}

	var req UpdateScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /employees/{id}/schedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /employees/{id}/schedule - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}
	userRole, _ := middleware.GetUserRole(r.Context())

	result, err := h.service.Update(r.Context(), &models.UpdateScheduleRequest{
		EmployeeID: employeeID,
		UserID:     userID,
		UserRole:   userRole,
		Days:       req.Days,
	})
	if err != nil {
		switch {
		case errors.Is(err, schedules.ErrEmployeeNotFound):
			h.logger.Warn("PUT /employees/{id}/schedule - Employee not found: employee_id=%d", employeeID)
			handlers.RespondNotFound(w, msgEmployeeNotFound)

		case errors.Is(err, schedules.ErrAccessDenied):
			h.logger.Warn("PUT /employees/{id}/schedule - Access denied: employee_id=%d, user_id=%d",
				employeeID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, schedules.ErrInvalidSchedule):
			h.logger.Warn("PUT /employees/{id}/schedule - Invalid schedule: %v", err)
			handlers.RespondBadRequest(w, msgInvalidSchedule)

		default:
			h.logger.Error("PUT /employees/{id}/schedule - Failed to update schedule: employee_id=%d, error=%v",
				employeeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /employees/{id}/schedule - Schedule updated successfully: employee_id=%d, user_id=%d",
		employeeID, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
