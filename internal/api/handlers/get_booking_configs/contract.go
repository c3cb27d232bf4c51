package get_booking_configs

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/service/bookingconfig/models"
)

type BookingConfigService interface {
	GetAll(ctx context.Context) (*models.ConfigListResponse, error)
	GetEffective(ctx context.Context, employeeID *int64, serviceID *int64) (*models.ResolvedConfigResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
