package clients

import (
	"context"
	"errors"
	"fmt"

	"github.com/glamly/BSP-SchedulingService/internal/domain"
	clientRepo "github.com/glamly/BSP-SchedulingService/internal/infra/storage/client"
	providerRepo "github.com/glamly/BSP-SchedulingService/internal/infra/storage/provider"
	"github.com/glamly/BSP-SchedulingService/internal/service/clients/models"
)

// Service сервис клиентов: избранные мастера
type Service struct {
	clientRepo   ClientRepository
	providerRepo ProviderRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса клиентов
func NewService(clientRepo ClientRepository, providerRepo ProviderRepository, logger Logger) *Service {
	return &Service{
		clientRepo:   clientRepo,
		providerRepo: providerRepo,
		logger:       logger,
	}
}

// ListFavorites возвращает избранных мастеров клиента
// Мастера, удаленные после добавления в избранное, пропускаются
func (s *Service) ListFavorites(ctx context.Context, clientID, actorID int64) (*models.FavoritesResponse, error) {
	if clientID != actorID {
		s.logger.Warn("ListFavorites: actor=%d is not client=%d", actorID, clientID)
		return nil, ErrAccessDenied
	}

	client, err := s.getClient(ctx, clientID)
	if err != nil {
		return nil, err
	}

	resp := &models.FavoritesResponse{
		Favorites: make([]models.FavoriteProviderResponse, 0, len(client.Favorites)),
	}

	for _, providerID := range client.Favorites {
		provider, err := s.providerRepo.GetByID(ctx, providerID)
		if err != nil {
			if errors.Is(err, providerRepo.ErrProviderNotFound) {
				continue
			}
			s.logger.Error("ListFavorites: failed to fetch provider=%d: %v", providerID, err)
			return nil, fmt.Errorf("%w: ListFavorites - fetch provider: %v", ErrInternal, err)
		}
		resp.Favorites = append(resp.Favorites, models.FromDomainProvider(provider))
	}

	return resp, nil
}

// AddFavorite добавляет мастера в избранное клиента
// Повторное добавление остается no-op
func (s *Service) AddFavorite(ctx context.Context, clientID, providerID, actorID int64) error {
	if clientID != actorID {
		s.logger.Warn("AddFavorite: actor=%d is not client=%d", actorID, clientID)
		return ErrAccessDenied
	}

	if _, err := s.getClient(ctx, clientID); err != nil {
		return err
	}

	if _, err := s.providerRepo.GetByID(ctx, providerID); err != nil {
		if errors.Is(err, providerRepo.ErrProviderNotFound) {
			s.logger.Warn("AddFavorite: provider=%d not found", providerID)
			return ErrProviderNotFound
		}
		s.logger.Error("AddFavorite: failed to fetch provider=%d: %v", providerID, err)
		return fmt.Errorf("%w: AddFavorite - fetch provider: %v", ErrInternal, err)
	}

	if err := s.clientRepo.AddFavorite(ctx, clientID, providerID); err != nil {
		s.logger.Error("AddFavorite: failed to add provider=%d for client=%d: %v", providerID, clientID, err)
		return fmt.Errorf("%w: AddFavorite - insert: %v", ErrInternal, err)
	}

	s.logger.Info("AddFavorite: provider=%d added to favorites of client=%d", providerID, clientID)
	return nil
}

// RemoveFavorite убирает мастера из избранного клиента
// Удаление отсутствующего избранного остается no-op
func (s *Service) RemoveFavorite(ctx context.Context, clientID, providerID, actorID int64) error {
	if clientID != actorID {
		s.logger.Warn("RemoveFavorite: actor=%d is not client=%d", actorID, clientID)
		return ErrAccessDenied
	}

	if _, err := s.getClient(ctx, clientID); err != nil {
		return err
	}

	if err := s.clientRepo.RemoveFavorite(ctx, clientID, providerID); err != nil {
		s.logger.Error("RemoveFavorite: failed to remove provider=%d for client=%d: %v", providerID, clientID, err)
		return fmt.Errorf("%w: RemoveFavorite - delete: %v", ErrInternal, err)
	}

	s.logger.Info("RemoveFavorite: provider=%d removed from favorites of client=%d", providerID, clientID)
	return nil
}

func (s *Service) getClient(ctx context.Context, clientID int64) (*domain.Client, error) {
	client, err := s.clientRepo.GetByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, clientRepo.ErrClientNotFound) {
			s.logger.Warn("client id=%d not found", clientID)
			return nil, ErrClientNotFound
		}
		s.logger.Error("failed to fetch client id=%d: %v", clientID, err)
		return nil, fmt.Errorf("%w: fetch client: %v", ErrInternal, err)
	}
	return client, nil
}
