package update_appointment_status

import (
	"github.com/glamly/BSP-SchedulingService/internal/service/appointments/models"
)

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Status string `json:"status"` // "confirmed" или "refused"
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdateStatusRequest) ToServiceRequest(actorID int64) *models.SetStatusRequest {
	return &models.SetStatusRequest{
		ActorID: actorID,
		Status:  r.Status,
	}
}
