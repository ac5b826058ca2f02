package update_availability

import (
	"context"

	"github.com/glamly/BSP-SchedulingService/internal/service/providers/models"
)

type ProviderService interface {
	UpdateAvailability(ctx context.Context, providerID int64, req *models.UpdateAvailabilityRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
