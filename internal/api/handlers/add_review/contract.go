package add_review

import (
	"context"

	"github.com/glamly/BSP-SchedulingService/internal/service/providers/models"
)

type ProviderService interface {
	AddReview(ctx context.Context, providerID int64, req *models.AddReviewRequest) (*models.ReviewResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
