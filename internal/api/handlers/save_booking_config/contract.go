package save_booking_config

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/service/bookingconfig/models"
)

type BookingConfigService interface {
	Save(ctx context.Context, req *models.SaveConfigRequest) (*models.ConfigResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
