package get_employee_schedule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/service/schedules"
)

const (
	msgInvalidEmployeeID = "некорректный ID сотрудника"
	msgEmployeeNotFound  = "сотрудник не найден"
	msgScheduleNotFound  = "расписание не найдено"
)

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

// Handle GET /api/v1/employees/{employeeId}/schedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	employeeID, err := strconv.ParseInt(vars["employeeId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /employees/{id}/schedule - Invalid employee ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEmployeeID)
		return
	}

	result, err := h.service.GetByEmployee(r.Context(), employeeID)
	if err != nil {
		switch {
		case errors.Is(err, schedules.ErrEmployeeNotFound):
			h.logger.Warn("GET /employees/{id}/schedule - Employee not found: employee_id=%d", employeeID)
			handlers.RespondNotFound(w, msgEmployeeNotFound)

		case errors.Is(err, schedules.ErrScheduleNotFound):
			h.logger.Warn("GET /employees/{id}/schedule - Schedule not found: employee_id=%d", employeeID)
			handlers.RespondNotFound(w, msgScheduleNotFound)

		default:
			h.logger.Error("GET /employees/{id}/schedule - Failed to get schedule: employee_id=%d, error=%v",
				employeeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /employees/{id}/schedule - Schedule retrieved: employee_id=%d", employeeID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
