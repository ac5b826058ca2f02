package add_review

import (
	"github.com/glamly/BSP-SchedulingService/internal/service/providers/models"
)

// AddReviewRequest HTTP request model
type AddReviewRequest struct {
	Rating  int    `json:"rating"` // 1..5
	Comment string `json:"comment"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *AddReviewRequest) ToServiceRequest(authorID int64) *models.AddReviewRequest {
	return &models.AddReviewRequest{
		AuthorID: authorID,
		Rating:   r.Rating,
		Comment:  r.Comment,
	}
}
