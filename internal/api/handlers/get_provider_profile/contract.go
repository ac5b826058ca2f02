package get_provider_profile

import (
	"context"

	"github.com/glamly/BSP-SchedulingService/internal/service/providers/models"
)

type ProviderService interface {
	GetProfile(ctx context.Context, providerID int64) (*models.ProfileResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
