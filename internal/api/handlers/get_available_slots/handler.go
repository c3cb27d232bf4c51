package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	getAvailableSlots "github.com/m04kA/SMC-SalonService/internal/usecase/get_available_slots"
)

const (
	msgInvalidEmployeeID = "некорректный ID сотрудника"
	msgInvalidServiceID  = "некорректный ID услуги"
	msgMissingServiceID  = "ID услуги обязателен"
	msgMissingFrom       = "параметр from обязателен"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidRange      = "некорректный диапазон дат"
	msgRangeTooWide      = "слишком широкий диапазон дат"
	msgEmployeeNotFound  = "сотрудник не найден"
	msgServiceNotFound   = "услуга не найдена"
	msgServiceInactive   = "услуга недоступна"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/employees/{employeeId}/available-slots
// Query params: serviceId (обязательный), from (обязательный, YYYY-MM-DD), to (опциональный)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	employeeID, err := strconv.ParseInt(vars["employeeId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /employees/{id}/available-slots - Invalid employee ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEmployeeID)
		return
	}

	serviceIDStr := r.URL.Query().Get("serviceId")
	if serviceIDStr == "" {
		h.logger.Warn("GET /employees/{id}/available-slots - Missing service ID")
		handlers.RespondBadRequest(w, msgMissingServiceID)
		return
	}

	serviceID, err := strconv.ParseInt(serviceIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /employees/{id}/available-slots - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	fromStr := r.URL.Query().Get("from")
	if fromStr == "" {
		h.logger.Warn("GET /employees/{id}/available-slots - Missing from date")
		handlers.RespondBadRequest(w, msgMissingFrom)
		return
	}
	toStr := r.URL.Query().Get("to")

	userID, _ := middleware.GetUserID(r.Context())

	useCaseReq, err := ToUseCaseRequest(userID, employeeID, serviceID, fromStr, toStr)
	if err != nil {
		h.logger.Warn("GET /employees/{id}/available-slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrEmployeeNotFound):
			h.logger.Warn("GET /employees/{id}/available-slots - Employee not found: employee_id=%d", employeeID)
			handlers.RespondNotFound(w, msgEmployeeNotFound)

		case errors.Is(err, getAvailableSlots.ErrServiceNotFound):
			h.logger.Warn("GET /employees/{id}/available-slots - Service not found: service_id=%d", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailableSlots.ErrServiceInactive):
			h.logger.Warn("GET /employees/{id}/available-slots - Service inactive: service_id=%d", serviceID)
			handlers.RespondBadRequest(w, msgServiceInactive)

		case errors.Is(err, getAvailableSlots.ErrRangeTooWide):
			h.logger.Warn("GET /employees/{id}/available-slots - Range too wide: employee_id=%d", employeeID)
			handlers.RespondBadRequest(w, msgRangeTooWide)

		case errors.Is(err, getAvailableSlots.ErrInvalidDateRange), errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /employees/{id}/available-slots - Invalid request: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRange)

		default:
			h.logger.Error("GET /employees/{id}/available-slots - Failed to get slots: employee_id=%d, error=%v",
				employeeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /employees/{id}/available-slots - Slots retrieved: employee_id=%d, service_id=%d, days=%d",
		employeeID, serviceID, len(result.Days))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
