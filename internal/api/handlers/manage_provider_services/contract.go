package manage_provider_services

import (
	"context"

	"github.com/glamly/BSP-SchedulingService/internal/service/providers/models"
)

type ProviderService interface {
	AddService(ctx context.Context, providerID int64, req *models.AddServiceRequest) (*models.ServiceResponse, error)
	RemoveService(ctx context.Context, providerID, serviceID, actorID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
