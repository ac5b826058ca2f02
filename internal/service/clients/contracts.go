package clients

import (
	"context"

	"github.com/glamly/BSP-SchedulingService/internal/domain"
)

// ClientRepository интерфейс репозитория клиентов
type ClientRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Client, error)
	AddFavorite(ctx context.Context, clientID, providerID int64) error
	RemoveFavorite(ctx context.Context, clientID, providerID int64) error
}

// ProviderRepository интерфейс для проверки существования мастера
type ProviderRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Provider, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
