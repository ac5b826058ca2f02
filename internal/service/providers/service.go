package providers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/glamly/BSP-SchedulingService/internal/domain"
	providerRepo "github.com/glamly/BSP-SchedulingService/internal/infra/storage/provider"
	"github.com/glamly/BSP-SchedulingService/internal/service/providers/models"
)

// Service сервис профилей мастеров: расписание, услуги, отзывы, верификация
type Service struct {
	providerRepo ProviderRepository
	txManager    TransactionManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса мастеров
func NewService(providerRepo ProviderRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		providerRepo: providerRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// GetProfile получает профиль мастера с расписанием, услугами и отзывами
// Агрегат отзывов и флаг верификации считаются заново при каждом запросе
func (s *Service) GetProfile(ctx context.Context, providerID int64) (*models.ProfileResponse, error) {
	s.logger.Info("GetProfile: fetching provider id=%d", providerID)

	provider, err := s.getProvider(ctx, providerID)
	if err != nil {
		return nil, err
	}

	reviews, err := s.providerRepo.ListReviews(ctx, providerID)
	if err != nil {
		s.logger.Error("GetProfile: failed to list reviews for provider=%d: %v", providerID, err)
		return nil, fmt.Errorf("%w: GetProfile - list reviews: %v", ErrInternal, err)
	}

	stats := domain.CalculateReviewStats(reviews)
	eligible := domain.EligibleForVerification(stats)

	return models.FromDomainProfile(provider, reviews, stats, eligible), nil
}

// UpdateAvailability заменяет недельное расписание мастера целиком
// Замена атомарна: семь дней перезаписываются в одной транзакции
func (s *Service) UpdateAvailability(ctx context.Context, providerID int64, req *models.UpdateAvailabilityRequest) error {
	if req.ActorID != providerID {
		s.logger.Warn("UpdateAvailability: actor=%d is not provider=%d", req.ActorID, providerID)
		return ErrAccessDenied
	}

	week, err := req.Week.ToDomain()
	if err != nil {
		s.logger.Warn("UpdateAvailability: invalid schedule for provider=%d: %v", providerID, err)
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := validateWeek(week); err != nil {
		s.logger.Warn("UpdateAvailability: invalid schedule for provider=%d: %v", providerID, err)
		return err
	}

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		if _, err := s.getProvider(txCtx, providerID); err != nil {
			return err
		}
		if err := s.providerRepo.ReplaceAvailability(txCtx, providerID, week); err != nil {
			return fmt.Errorf("%w: UpdateAvailability - replace: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("UpdateAvailability: schedule replaced for provider=%d", providerID)
	return nil
}

// AddService добавляет услугу в прайс мастера
func (s *Service) AddService(ctx context.Context, providerID int64, req *models.AddServiceRequest) (*models.ServiceResponse, error) {
	if req.ActorID != providerID {
		s.logger.Warn("AddService: actor=%d is not provider=%d", req.ActorID, providerID)
		return nil, ErrAccessDenied
	}

	if err := validateService(req); err != nil {
		s.logger.Warn("AddService: invalid service for provider=%d: %v", providerID, err)
		return nil, err
	}

	if _, err := s.getProvider(ctx, providerID); err != nil {
		return nil, err
	}

	created, err := s.providerRepo.AddService(ctx, &domain.Service{
		ProviderID:      providerID,
		Name:            strings.TrimSpace(req.Name),
		DurationMinutes: req.DurationMinutes,
		Price:           req.Price,
	})
	if err != nil {
		s.logger.Error("AddService: failed to add service for provider=%d: %v", providerID, err)
		return nil, fmt.Errorf("%w: AddService - insert: %v", ErrInternal, err)
	}

	s.logger.Info("AddService: service id=%d added for provider=%d", created.ID, providerID)
	resp := models.FromDomainService(*created)
	return &resp, nil
}

// RemoveService удаляет услугу из прайса мастера
// Существующие записи на эту услугу не затрагиваются: они хранят
// денормализованные имя и цену
func (s *Service) RemoveService(ctx context.Context, providerID, serviceID, actorID int64) error {
	if actorID != providerID {
		s.logger.Warn("RemoveService: actor=%d is not provider=%d", actorID, providerID)
		return ErrAccessDenied
	}

	err := s.providerRepo.RemoveService(ctx, providerID, serviceID)
	if err != nil {
		if errors.Is(err, providerRepo.ErrServiceNotFound) {
			return ErrServiceNotFound
		}
		s.logger.Error("RemoveService: failed to remove service=%d for provider=%d: %v", serviceID, providerID, err)
		return fmt.Errorf("%w: RemoveService - delete: %v", ErrInternal, err)
	}

	s.logger.Info("RemoveService: service id=%d removed for provider=%d", serviceID, providerID)
	return nil
}

// AddReview добавляет отзыв о мастере
// Отзывы неизменяемы: редактирование и удаление не поддерживаются
func (s *Service) AddReview(ctx context.Context, providerID int64, req *models.AddReviewRequest) (*models.ReviewResponse, error) {
	if req.AuthorID == providerID {
		s.logger.Warn("AddReview: provider=%d cannot review themselves", providerID)
		return nil, fmt.Errorf("%w: provider cannot review themselves", ErrInvalidInput)
	}

	if req.Rating < domain.MinRating || req.Rating > domain.MaxRating {
		return nil, fmt.Errorf("%w: rating must be between %d and %d", ErrInvalidInput, domain.MinRating, domain.MaxRating)
	}

	comment := strings.TrimSpace(req.Comment)
	if comment == "" {
		return nil, fmt.Errorf("%w: comment must not be empty", ErrInvalidInput)
	}
	if len(comment) > domain.MaxCommentLength {
		return nil, fmt.Errorf("%w: comment is too long", ErrInvalidInput)
	}

	if _, err := s.getProvider(ctx, providerID); err != nil {
		return nil, err
	}

	created, err := s.providerRepo.AddReview(ctx, &domain.Review{
		ProviderID: providerID,
		AuthorID:   req.AuthorID,
		Rating:     req.Rating,
		Comment:    comment,
	})
	if err != nil {
		s.logger.Error("AddReview: failed to add review for provider=%d: %v", providerID, err)
		return nil, fmt.Errorf("%w: AddReview - insert: %v", ErrInternal, err)
	}

	s.logger.Info("AddReview: review id=%d added for provider=%d by author=%d", created.ID, providerID, req.AuthorID)
	return &models.ReviewResponse{
		ID:        created.ID,
		AuthorID:  created.AuthorID,
		Rating:    created.Rating,
		Comment:   created.Comment,
		CreatedAt: created.CreatedAt,
	}, nil
}

// RequestVerification отправляет запрос на верификацию мастера
// Порог проверяется по текущему набору отзывов в момент вызова
func (s *Service) RequestVerification(ctx context.Context, providerID, actorID int64) error {
	if actorID != providerID {
		s.logger.Warn("RequestVerification: actor=%d is not provider=%d", actorID, providerID)
		return ErrAccessDenied
	}

	return s.txManager.Do(ctx, func(txCtx context.Context) error {
		provider, err := s.getProvider(txCtx, providerID)
		if err != nil {
			return err
		}

		if provider.Verified {
			return ErrAlreadyVerified
		}
		if provider.VerificationRequestedAt != nil {
			return ErrAlreadyRequested
		}

		reviews, err := s.providerRepo.ListReviews(txCtx, providerID)
		if err != nil {
			return fmt.Errorf("%w: RequestVerification - list reviews: %v", ErrInternal, err)
		}

		stats := domain.CalculateReviewStats(reviews)
		if !domain.EligibleForVerification(stats) {
			s.logger.Warn("RequestVerification: provider=%d not eligible (count=%d avg=%.2f)",
				providerID, stats.Count, stats.Average)
			return ErrNotEligible
		}

		if err := s.providerRepo.MarkVerificationRequested(txCtx, providerID); err != nil {
			return fmt.Errorf("%w: RequestVerification - mark: %v", ErrInternal, err)
		}

		s.logger.Info("RequestVerification: verification requested for provider=%d", providerID)
		return nil
	})
}

func (s *Service) getProvider(ctx context.Context, providerID int64) (*domain.Provider, error) {
	provider, err := s.providerRepo.GetByID(ctx, providerID)
	if err != nil {
		if errors.Is(err, providerRepo.ErrProviderNotFound) {
			s.logger.Warn("provider id=%d not found", providerID)
			return nil, ErrProviderNotFound
		}
		s.logger.Error("failed to fetch provider id=%d: %v", providerID, err)
		return nil, fmt.Errorf("%w: fetch provider: %v", ErrInternal, err)
	}
	return provider, nil
}

// validateWeek проверяет, что у каждого рабочего дня окно непустое
func validateWeek(week domain.WeekSchedule) error {
	days := []struct {
		name string
		day  domain.DaySchedule
	}{
		{"monday", week.Monday},
		{"tuesday", week.Tuesday},
		{"wednesday", week.Wednesday},
		{"thursday", week.Thursday},
		{"friday", week.Friday},
		{"saturday", week.Saturday},
		{"sunday", week.Sunday},
	}

	for _, d := range days {
		if !d.day.Active {
			continue
		}
		if !d.day.Open.IsBefore(d.day.Close) {
			return fmt.Errorf("%w: %s: open time must be before close time", ErrInvalidInput, d.name)
		}
	}
	return nil
}

func validateService(req *models.AddServiceRequest) error {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return fmt.Errorf("%w: service name must not be empty", ErrInvalidInput)
	}
	if len(name) > domain.MaxServiceNameLength {
		return fmt.Errorf("%w: service name is too long", ErrInvalidInput)
	}
	if req.DurationMinutes < domain.MinServiceDurationMinutes || req.DurationMinutes > domain.MaxServiceDurationMinutes {
		return fmt.Errorf("%w: duration must be between %d and %d minutes",
			ErrInvalidInput, domain.MinServiceDurationMinutes, domain.MaxServiceDurationMinutes)
	}
	if req.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}
	return nil
}
