package models

import (
	"time"

	"github.com/glamly/BSP-SchedulingService/internal/domain"
	"github.com/glamly/BSP-SchedulingService/pkg/types"
)

// Request модели

// DayScheduleDTO расписание мастера на один день недели
type DayScheduleDTO struct {
	Active bool   `json:"active"`
	Open   string `json:"open,omitempty"`  // "09:00"
	Close  string `json:"close,omitempty"` // "17:00"
}

// WeekScheduleDTO недельное расписание мастера
type WeekScheduleDTO struct {
	Monday    DayScheduleDTO `json:"monday"`
	Tuesday   DayScheduleDTO `json:"tuesday"`
	Wednesday DayScheduleDTO `json:"wednesday"`
	Thursday  DayScheduleDTO `json:"thursday"`
	Friday    DayScheduleDTO `json:"friday"`
	Saturday  DayScheduleDTO `json:"saturday"`
	Sunday    DayScheduleDTO `json:"sunday"`
}

// UpdateAvailabilityRequest запрос на замену недельного расписания
type UpdateAvailabilityRequest struct {
	ActorID int64           `json:"actorId"`
	Week    WeekScheduleDTO `json:"week"`
}

// AddServiceRequest запрос на добавление услуги
type AddServiceRequest struct {
	ActorID         int64   `json:"actorId"`
	Name            string  `json:"name"`
	DurationMinutes int     `json:"durationMinutes"`
	Price           float64 `json:"price"`
}

// AddReviewRequest запрос на добавление отзыва
type AddReviewRequest struct {
	AuthorID int64  `json:"authorId"`
	Rating   int    `json:"rating"`
	Comment  string `json:"comment"`
}

// ToDomain конвертирует DTO в domain расписание
// Время выходных дней игнорируется
func (w *WeekScheduleDTO) ToDomain() (domain.WeekSchedule, error) {
	var week domain.WeekSchedule

	days := []struct {
		day time.Weekday
		dto DayScheduleDTO
	}{
		{time.Monday, w.Monday},
		{time.Tuesday, w.Tuesday},
		{time.Wednesday, w.Wednesday},
		{time.Thursday, w.Thursday},
		{time.Friday, w.Friday},
		{time.Saturday, w.Saturday},
		{time.Sunday, w.Sunday},
	}

	for _, d := range days {
		if !d.dto.Active {
			week.SetDay(d.day, domain.DaySchedule{})
			continue
		}

		open, err := types.NewTimeStringFromString(d.dto.Open)
		if err != nil {
			return week, err
		}
		closeTime, err := types.NewTimeStringFromString(d.dto.Close)
		if err != nil {
			return week, err
		}

		week.SetDay(d.day, domain.DaySchedule{
			Active: true,
			Open:   open,
			Close:  closeTime,
		})
	}

	return week, nil
}

// Response модели

// ServiceResponse услуга мастера
type ServiceResponse struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	DurationMinutes int     `json:"durationMinutes"`
	Price           float64 `json:"price"`
}

// ReviewResponse отзыв о мастере
type ReviewResponse struct {
	ID        int64     `json:"id"`
	AuthorID  int64     `json:"authorId"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

// ReviewStatsResponse агрегат отзывов мастера
type ReviewStatsResponse struct {
	Count   int     `json:"count"`
	Average float64 `json:"average"`
}

// ProfileResponse профиль мастера с расписанием, услугами и отзывами
type ProfileResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Domain      string `json:"domain"`
	Description string `json:"description"`

	Verified                bool `json:"verified"`
	VerificationRequested   bool `json:"verificationRequested"`
	EligibleForVerification bool `json:"eligibleForVerification"`

	Availability WeekScheduleDTO     `json:"availability"`
	Services     []ServiceResponse   `json:"services"`
	Reviews      []ReviewResponse    `json:"reviews"`
	ReviewStats  ReviewStatsResponse `json:"reviewStats"`
}

// FromDomainProfile собирает DTO профиля из domain моделей
func FromDomainProfile(p *domain.Provider, reviews []domain.Review, stats domain.ReviewStats, eligible bool) *ProfileResponse {
	resp := &ProfileResponse{
		ID:                      p.ID,
		Name:                    p.Name,
		Domain:                  p.Domain,
		Description:             p.Description,
		Verified:                p.Verified,
		VerificationRequested:   p.VerificationRequestedAt != nil,
		EligibleForVerification: eligible,
		Availability:            fromDomainWeek(p.Availability),
		Services:                make([]ServiceResponse, 0, len(p.Services)),
		Reviews:                 make([]ReviewResponse, 0, len(reviews)),
		ReviewStats: ReviewStatsResponse{
			Count:   stats.Count,
			Average: stats.Average,
		},
	}

	for _, svc := range p.Services {
		resp.Services = append(resp.Services, FromDomainService(svc))
	}

	for _, review := range reviews {
		resp.Reviews = append(resp.Reviews, ReviewResponse{
			ID:        review.ID,
			AuthorID:  review.AuthorID,
			Rating:    review.Rating,
			Comment:   review.Comment,
			CreatedAt: review.CreatedAt,
		})
	}

	return resp
}

// FromDomainService конвертирует услугу в DTO
func FromDomainService(svc domain.Service) ServiceResponse {
	return ServiceResponse{
		ID:              svc.ID,
		Name:            svc.Name,
		DurationMinutes: svc.DurationMinutes,
		Price:           svc.Price,
	}
}

func fromDomainWeek(week domain.WeekSchedule) WeekScheduleDTO {
	return WeekScheduleDTO{
		Monday:    fromDomainDay(week.Monday),
		Tuesday:   fromDomainDay(week.Tuesday),
		Wednesday: fromDomainDay(week.Wednesday),
		Thursday:  fromDomainDay(week.Thursday),
		Friday:    fromDomainDay(week.Friday),
		Saturday:  fromDomainDay(week.Saturday),
		Sunday:    fromDomainDay(week.Sunday),
	}
}

func fromDomainDay(day domain.DaySchedule) DayScheduleDTO {
	dto := DayScheduleDTO{Active: day.Active}
	if day.Active {
		dto.Open = day.Open.String()
		dto.Close = day.Close.String()
	}
	return dto
}
