package update_appointment_status

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/service/appointments"
	"github.com/m04kA/SMC-SalonService/internal/service/appointments/models"
	completeAppointment "github.com/m04kA/SMC-SalonService/internal/usecase/complete_appointment"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgMissingUserID        = "отсутствует ID пользователя"
	msgNotFound             = "запись не найдена"
	msgForbidden            = "доступ запрещен"
	msgInvalidTransition    = "недопустимый переход статуса"
	msgAlreadyInvoiced      = "по записи уже выставлен счёт"
	msgInvalidStatus        = "некорректный статус записи"
)

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type Handler struct {
	service         AppointmentService
	completeUseCase CompleteAppointmentUseCase
	logger          Logger
}

func NewHandler(service AppointmentService, completeUseCase CompleteAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		service:         service,
		completeUseCase: completeUseCase,
		logger:          logger,
	}
}

// Handle PATCH /api/v1/appointments/{appointmentId}/status
// Перевод в completed идёт через отдельный use case: вместе со сменой
// статуса в той же транзакции выставляется счёт
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	appointmentID, err := strconv.ParseInt(vars["appointmentId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /appointments/{id}/status - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	var req UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /appointments/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /appointments/{id}/status - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}
	userRole, _ := middleware.GetUserRole(r.Context())

	if req.Status == string(domain.StatusCompleted) {
		h.handleComplete(w, r, appointmentID, userID, userRole)
		return
	}

	err = h.service.UpdateStatus(r.Context(), appointmentID, &models.UpdateStatusRequest{
		UserID:   userID,
		UserRole: userRole,
		Status:   req.Status,
	})
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound):
			h.logger.Warn("PATCH /appointments/{id}/status - Appointment not found: appointment_id=%d", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, appointments.ErrAccessDenied):
			h.logger.Warn("PATCH /appointments/{id}/status - Access denied: appointment_id=%d, user_id=%d",
				appointmentID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, appointments.ErrInvalidTransition):
			h.logger.Warn("PATCH /appointments/{id}/status - Invalid transition: appointment_id=%d, status=%s",
				appointmentID, req.Status)
			handlers.RespondBadRequest(w, msgInvalidTransition)

		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("PATCH /appointments/{id}/status - Invalid status: status=%s", req.Status)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("PATCH /appointments/{id}/status - Failed to update status: appointment_id=%d, error=%v",
				appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /appointments/{id}/status - Status updated successfully: appointment_id=%d, status=%s",
		appointmentID, req.Status)
	handlers.RespondJSON(w, http.StatusOK, nil)
}

func (h *Handler) handleComplete(w http.ResponseWriter, r *http.Request, appointmentID, userID int64, userRole string) {
	result, err := h.completeUseCase.Execute(r.Context(), &completeAppointment.Request{
		AppointmentID: appointmentID,
		UserID:        userID,
		UserRole:      userRole,
	})
	if err != nil {
		switch {
		case errors.Is(err, completeAppointment.ErrAppointmentNotFound):
			h.logger.Warn("PATCH /appointments/{id}/status - Appointment not found: appointment_id=%d", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, completeAppointment.ErrAccessDenied):
			h.logger.Warn("PATCH /appointments/{id}/status - Access denied: appointment_id=%d, user_id=%d",
				appointmentID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, completeAppointment.ErrInvalidTransition):
			h.logger.Warn("PATCH /appointments/{id}/status - Invalid transition to completed: appointment_id=%d",
				appointmentID)
			handlers.RespondBadRequest(w, msgInvalidTransition)

		case errors.Is(err, completeAppointment.ErrAlreadyInvoiced):
			h.logger.Warn("PATCH /appointments/{id}/status - Already invoiced: appointment_id=%d", appointmentID)
			handlers.RespondConflict(w, msgAlreadyInvoiced)

		default:
			h.logger.Error("PATCH /appointments/{id}/status - Failed to complete appointment: appointment_id=%d, error=%v",
				appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /appointments/{id}/status - Appointment completed, invoice issued: appointment_id=%d, invoice=%s",
		appointmentID, result.Invoice.Number)
	handlers.RespondJSON(w, http.StatusOK, result)
}
