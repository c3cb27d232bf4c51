package cancel_appointment

import (
	"github.com/m04kA/SMC-SalonService/internal/service/appointments/models"
)

// CancelAppointmentRequest HTTP request model
type CancelAppointmentRequest struct {
	CancellationReason *string `json:"cancellationReason,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *CancelAppointmentRequest) ToServiceRequest(userID int64, userRole string) *models.CancelAppointmentRequest {
	reason := ""
	if r.CancellationReason != nil {
		reason = *r.CancellationReason
	}

	return &models.CancelAppointmentRequest{
		UserID:             userID,
		UserRole:           userRole,
		CancellationReason: reason,
	}
}
