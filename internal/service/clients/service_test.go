package clients

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glamly/BSP-SchedulingService/internal/domain"
	clientRepo "github.com/glamly/BSP-SchedulingService/internal/infra/storage/client"
	providerRepo "github.com/glamly/BSP-SchedulingService/internal/infra/storage/provider"
)

type stubClientRepo struct {
	clients map[int64]*domain.Client

	addedProviderID   int64
	removedProviderID int64
}

func (s *stubClientRepo) GetByID(_ context.Context, id int64) (*domain.Client, error) {
	c, ok := s.clients[id]
	if !ok {
		return nil, clientRepo.ErrClientNotFound
	}
	cp := *c
	return &cp, nil
}

func (s *stubClientRepo) AddFavorite(_ context.Context, _, providerID int64) error {
	s.addedProviderID = providerID
	return nil
}

func (s *stubClientRepo) RemoveFavorite(_ context.Context, _, providerID int64) error {
	s.removedProviderID = providerID
	return nil
}

type stubProviderRepo struct {
	providers map[int64]*domain.Provider
}

func (s *stubProviderRepo) GetByID(_ context.Context, id int64) (*domain.Provider, error) {
	p, ok := s.providers[id]
	if !ok {
		return nil, providerRepo.ErrProviderNotFound
	}
	return p, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestListFavorites(t *testing.T) {
	cRepo := &stubClientRepo{clients: map[int64]*domain.Client{
		10: {ID: 10, Name: "Sophie", Favorites: []int64{1, 2, 3}},
	}}
	pRepo := &stubProviderRepo{providers: map[int64]*domain.Provider{
		1: {ID: 1, Name: "Salon Éclat", Domain: "coiffure", Verified: true},
		// мастер 2 удален
		3: {ID: 3, Name: "Onglerie Luna", Domain: "onglerie"},
	}}
	svc := NewService(cRepo, pRepo, nopLogger{})

	resp, err := svc.ListFavorites(context.Background(), 10, 10)
	require.NoError(t, err)
	require.Len(t, resp.Favorites, 2)
	assert.Equal(t, "Salon Éclat", resp.Favorites[0].Name)
	assert.True(t, resp.Favorites[0].Verified)
	assert.Equal(t, int64(3), resp.Favorites[1].ID)
}

func TestListFavorites_AccessDenied(t *testing.T) {
	svc := NewService(&stubClientRepo{}, &stubProviderRepo{}, nopLogger{})

	_, err := svc.ListFavorites(context.Background(), 10, 11)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestAddFavorite(t *testing.T) {
	cRepo := &stubClientRepo{clients: map[int64]*domain.Client{10: {ID: 10}}}
	pRepo := &stubProviderRepo{providers: map[int64]*domain.Provider{1: {ID: 1}}}
	svc := NewService(cRepo, pRepo, nopLogger{})

	require.NoError(t, svc.AddFavorite(context.Background(), 10, 1, 10))
	assert.Equal(t, int64(1), cRepo.addedProviderID)

	t.Run("unknown provider", func(t *testing.T) {
		err := svc.AddFavorite(context.Background(), 10, 42, 10)
		assert.ErrorIs(t, err, ErrProviderNotFound)
	})

	t.Run("unknown client", func(t *testing.T) {
		err := svc.AddFavorite(context.Background(), 99, 1, 99)
		assert.ErrorIs(t, err, ErrClientNotFound)
	})
}

func TestRemoveFavorite(t *testing.T) {
	cRepo := &stubClientRepo{clients: map[int64]*domain.Client{10: {ID: 10, Favorites: []int64{1}}}}
	svc := NewService(cRepo, &stubProviderRepo{}, nopLogger{})

	require.NoError(t, svc.RemoveFavorite(context.Background(), 10, 1, 10))
	assert.Equal(t, int64(1), cRepo.removedProviderID)

	// Удаление мастера, которого нет в избранном, не ошибка
	require.NoError(t, svc.RemoveFavorite(context.Background(), 10, 7, 10))
}
