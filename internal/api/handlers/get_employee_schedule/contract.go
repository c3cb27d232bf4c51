package get_employee_schedule

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/service/schedules/models"
)

type ScheduleService interface {
	GetByEmployee(ctx context.Context, employeeID int64) (*models.ScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
