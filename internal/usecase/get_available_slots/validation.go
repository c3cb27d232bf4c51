package get_available_slots

import (
	"fmt"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.EmployeeID <= 0 {
		return fmt.Errorf("%w: employeeID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.FromDate.IsZero() || req.ToDate.IsZero() {
		return fmt.Errorf("%w: from and to dates are required", ErrInvalidInput)
	}

	if req.ToDate.Before(req.FromDate) {
		return fmt.Errorf("%w: to date is before from date", ErrInvalidDateRange)
	}

	days := int(req.ToDate.Sub(req.FromDate).Hours()/24) + 1
	if days > domain.MaxAvailabilityRangeDays {
		return fmt.Errorf("%w: at most %d days per request", ErrRangeTooWide, domain.MaxAvailabilityRangeDays)
	}

	return nil
}
