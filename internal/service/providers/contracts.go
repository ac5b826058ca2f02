package providers

import (
	"context"

	"github.com/glamly/BSP-SchedulingService/internal/domain"
)

// ProviderRepository интерфейс репозитория мастеров
type ProviderRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Provider, error)
	ReplaceAvailability(ctx context.Context, providerID int64, week domain.WeekSchedule) error
	AddService(ctx context.Context, svc *domain.Service) (*domain.Service, error)
	RemoveService(ctx context.Context, providerID, serviceID int64) error
	ListReviews(ctx context.Context, providerID int64) ([]domain.Review, error)
	AddReview(ctx context.Context, review *domain.Review) (*domain.Review, error)
	MarkVerificationRequested(ctx context.Context, providerID int64) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
