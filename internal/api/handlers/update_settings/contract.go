package update_settings

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/service/settings"
)

type SettingsService interface {
	Update(ctx context.Context, req *settings.UpdateSettingsRequest) (*settings.SettingsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
