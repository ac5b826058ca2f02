package models

import "github.com/glamly/BSP-SchedulingService/internal/domain"

// FavoriteProviderResponse краткая карточка мастера в избранном
type FavoriteProviderResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Domain   string `json:"domain"`
	Verified bool   `json:"verified"`
}

// FavoritesResponse список избранных мастеров клиента
type FavoritesResponse struct {
	Favorites []FavoriteProviderResponse `json:"favorites"`
}

// FromDomainProvider конвертирует мастера в карточку избранного
func FromDomainProvider(p *domain.Provider) FavoriteProviderResponse {
	return FavoriteProviderResponse{
		ID:       p.ID,
		Name:     p.Name,
		Domain:   p.Domain,
		Verified: p.Verified,
	}
}
