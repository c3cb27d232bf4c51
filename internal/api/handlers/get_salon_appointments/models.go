package get_salon_appointments

import (
	"fmt"
	"strconv"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/service/appointments/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров
func ToServiceRequest(
	userID int64,
	userRole string,
	employeeIDStr string,
	clientIDStr string,
	statusStr string,
	fromStr string,
	toStr string,
	includeInactiveStr string,
) (*models.GetSalonAppointmentsRequest, error) {
	req := &models.GetSalonAppointmentsRequest{
		UserID:          userID,
		UserRole:        userRole,
		IncludeInactive: false,
	}

	if employeeIDStr != "" {
		employeeID, err := strconv.ParseInt(employeeIDStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid employeeId value: %w", err)
		}
		req.EmployeeID = &employeeID
	}

	if clientIDStr != "" {
		clientID, err := strconv.ParseInt(clientIDStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid clientId value: %w", err)
		}
		req.ClientID = &clientID
	}

	if statusStr != "" {
		req.Status = &statusStr
	}

	if fromStr != "" {
		from, err := time.Parse(domain.DateFormat, fromStr)
		if err != nil {
			return nil, err
		}
		req.StartDate = &from
	}

	if toStr != "" {
		to, err := time.Parse(domain.DateFormat, toStr)
		if err != nil {
			return nil, err
		}
		req.EndDate = &to
	}

	if includeInactiveStr != "" {
		includeInactive, err := strconv.ParseBool(includeInactiveStr)
		if err != nil {
			return nil, fmt.Errorf("invalid includeInactive value: %w", err)
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}
