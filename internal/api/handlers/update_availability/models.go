package update_availability

import (
	"github.com/glamly/BSP-SchedulingService/internal/service/providers/models"
)

// UpdateAvailabilityRequest HTTP request model
// Расписание заменяется целиком, по одному дню не обновляется
type UpdateAvailabilityRequest struct {
	Week models.WeekScheduleDTO `json:"week"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdateAvailabilityRequest) ToServiceRequest(actorID int64) *models.UpdateAvailabilityRequest {
	return &models.UpdateAvailabilityRequest{
		ActorID: actorID,
		Week:    r.Week,
	}
}
