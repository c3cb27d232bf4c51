package reschedule_appointment

import (
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	rescheduleAppointment "github.com/m04kA/SMC-SalonService/internal/usecase/reschedule_appointment"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// RescheduleAppointmentRequest HTTP request model
type RescheduleAppointmentRequest struct {
	NewDate      string `json:"newDate"`      // "2026-03-15"
	NewStartTime string `json:"newStartTime"` // "10:00"
}

// RescheduledResponse HTTP response model
type RescheduledResponse struct {
	ID              int64  `json:"id"`
	ClientID        int64  `json:"clientId"`
	EmployeeID      int64  `json:"employeeId"`
	ServiceID       int64  `json:"serviceId"`
	Date            string `json:"date"`
	StartTime       string `json:"startTime"`
	DurationMinutes int    `json:"durationMinutes"`
	Status          string `json:"status"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RescheduleAppointmentRequest) ToUseCaseRequest(appointmentID, userID int64, userRole string) (*rescheduleAppointment.Request, error) {
	newDate, err := time.Parse(domain.DateFormat, r.NewDate)
	if err != nil {
		return nil, err
	}

	newStartTime, err := types.NewTimeStringFromString(r.NewStartTime)
	if err != nil {
		return nil, err
	}

	return &rescheduleAppointment.Request{
		AppointmentID: appointmentID,
		UserID:        userID,
		UserRole:      userRole,
		NewDate:       newDate,
		NewStartTime:  newStartTime,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *rescheduleAppointment.Response) *RescheduledResponse {
	return &RescheduledResponse{
		ID:              resp.ID,
		ClientID:        resp.ClientID,
		EmployeeID:      resp.EmployeeID,
		ServiceID:       resp.ServiceID,
		Date:            resp.AppointmentDate.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
	}
}
