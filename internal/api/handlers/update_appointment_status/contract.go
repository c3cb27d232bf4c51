package update_appointment_status

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/service/appointments/models"
	completeAppointment "github.com/m04kA/SMC-SalonService/internal/usecase/complete_appointment"
)

type AppointmentService interface {
	UpdateStatus(ctx context.Context, appointmentID int64, req *models.UpdateStatusRequest) error
}

// CompleteAppointmentUseCase завершает запись и выставляет счёт
type CompleteAppointmentUseCase interface {
	Execute(ctx context.Context, req *completeAppointment.Request) (*completeAppointment.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
