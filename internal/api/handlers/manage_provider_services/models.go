package manage_provider_services

import (
	"github.com/glamly/BSP-SchedulingService/internal/service/providers/models"
)

// AddServiceRequest HTTP request model
type AddServiceRequest struct {
	Name            string  `json:"name"`
	DurationMinutes int     `json:"durationMinutes"`
	Price           float64 `json:"price"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *AddServiceRequest) ToServiceRequest(actorID int64) *models.AddServiceRequest {
	return &models.AddServiceRequest{
		ActorID:         actorID,
		Name:            r.Name,
		DurationMinutes: r.DurationMinutes,
		Price:           r.Price,
	}
}
