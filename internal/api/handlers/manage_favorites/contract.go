package manage_favorites

import (
	"context"

	"github.com/glamly/BSP-SchedulingService/internal/service/clients/models"
)

type ClientService interface {
	ListFavorites(ctx context.Context, clientID, actorID int64) (*models.FavoritesResponse, error)
	AddFavorite(ctx context.Context, clientID, providerID, actorID int64) error
	RemoveFavorite(ctx context.Context, clientID, providerID, actorID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
