package book_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	bookAppointment "github.com/m04kA/SMC-SalonService/internal/usecase/book_appointment"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateOrTime  = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgSlotConflict       = "выбранный временной слот уже занят"
	msgEmployeeNotFound   = "сотрудник не найден"
	msgServiceNotFound    = "услуга не найдена"
	msgServiceInactive    = "услуга недоступна"
	msgEmployeeNotWorking = "сотрудник не работает в выбранную дату"
	msgInvalidDate        = "некорректная дата записи"
	msgDateTooFar         = "дата записи слишком далеко в будущем"
	msgInvalidTimeSlot    = "некорректный временной слот"
	msgTooLateToBook      = "слишком поздно для записи на этот слот"
	msgInvalidInput       = "некорректные данные запроса"
)

type Handler struct {
	useCase BookAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase BookAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req BookAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Клиентом записи всегда выступает аутентифицированный пользователь
	clientID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /appointments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(clientID)
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, bookAppointment.ErrSlotConflict):
			h.logger.Warn("POST /appointments - Slot conflict: client_id=%d, employee_id=%d", clientID, req.EmployeeID)
			handlers.RespondConflict(w, msgSlotConflict)

		case errors.Is(err, bookAppointment.ErrEmployeeNotFound):
			h.logger.Warn("POST /appointments - Employee not found: employee_id=%d", req.EmployeeID)
			handlers.RespondNotFound(w, msgEmployeeNotFound)

		case errors.Is(err, bookAppointment.ErrServiceNotFound):
			h.logger.Warn("POST /appointments - Service not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, bookAppointment.ErrServiceInactive):
			h.logger.Warn("POST /appointments - Service inactive: service_id=%d", req.ServiceID)
			handlers.RespondBadRequest(w, msgServiceInactive)

		case errors.Is(err, bookAppointment.ErrEmployeeNotWorking):
			h.logger.Warn("POST /appointments - Employee not working: employee_id=%d, date=%s",
				req.EmployeeID, req.Date)
			handlers.RespondBadRequest(w, msgEmployeeNotWorking)

		case errors.Is(err, bookAppointment.ErrInvalidDate):
			h.logger.Warn("POST /appointments - Invalid date: client_id=%d, date=%s", clientID, req.Date)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, bookAppointment.ErrDateTooFarInFuture):
			h.logger.Warn("POST /appointments - Date too far in future: client_id=%d, date=%s", clientID, req.Date)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, bookAppointment.ErrInvalidTimeSlot):
			h.logger.Warn("POST /appointments - Invalid time slot: client_id=%d, time=%s", clientID, req.StartTime)
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, bookAppointment.ErrTooLateToBook):
			h.logger.Warn("POST /appointments - Too late to book: client_id=%d, time=%s", clientID, req.StartTime)
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, bookAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /appointments - Failed to book appointment: client_id=%d, employee_id=%d, error=%v",
				clientID, req.EmployeeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment booked successfully: appointment_id=%d, client_id=%d",
		result.ID, clientID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
