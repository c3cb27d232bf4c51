package delete_booking_config

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/service/bookingconfig/models"
)

type BookingConfigService interface {
	Delete(ctx context.Context, req *models.DeleteConfigRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
