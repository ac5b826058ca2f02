package domain

import "time"

// Client is a service buyer who books appointments and can mark
// providers as favorites.
type Client struct {
	ID        int64
	Name      string
	Favorites []int64 // provider ids

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsFavorite reports whether the provider is in the client's favorites.
func (c *Client) IsFavorite(providerID int64) bool {
	for _, id := range c.Favorites {
		if id == providerID {
			return true
		}
	}
	return false
}
