package providers

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glamly/BSP-SchedulingService/internal/domain"
	providerRepo "github.com/glamly/BSP-SchedulingService/internal/infra/storage/provider"
	"github.com/glamly/BSP-SchedulingService/internal/service/providers/models"
	"github.com/glamly/BSP-SchedulingService/pkg/types"
)

// --- stubs ---

type stubProviderRepo struct {
	providers map[int64]*domain.Provider
	reviews   map[int64][]domain.Review

	replacedWeek          *domain.WeekSchedule
	addedService          *domain.Service
	removedServiceID      int64
	addedReview           *domain.Review
	verificationRequested bool

	removeServiceErr error
}

func (s *stubProviderRepo) GetByID(_ context.Context, id int64) (*domain.Provider, error) {
	p, ok := s.providers[id]
	if !ok {
		return nil, providerRepo.ErrProviderNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *stubProviderRepo) ReplaceAvailability(_ context.Context, _ int64, week domain.WeekSchedule) error {
	s.replacedWeek = &week
	return nil
}

func (s *stubProviderRepo) AddService(_ context.Context, svc *domain.Service) (*domain.Service, error) {
	created := *svc
	created.ID = 100
	created.CreatedAt = time.Now()
	s.addedService = &created
	return &created, nil
}

func (s *stubProviderRepo) RemoveService(_ context.Context, _, serviceID int64) error {
	if s.removeServiceErr != nil {
		return s.removeServiceErr
	}
	s.removedServiceID = serviceID
	return nil
}

func (s *stubProviderRepo) ListReviews(_ context.Context, providerID int64) ([]domain.Review, error) {
	return s.reviews[providerID], nil
}

func (s *stubProviderRepo) AddReview(_ context.Context, review *domain.Review) (*domain.Review, error) {
	created := *review
	created.ID = 200
	created.CreatedAt = time.Now()
	s.addedReview = &created
	return &created, nil
}

func (s *stubProviderRepo) MarkVerificationRequested(_ context.Context, _ int64) error {
	s.verificationRequested = true
	return nil
}

type stubTxManager struct{}

func (stubTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// --- helpers ---

func mustTime(t *testing.T, s string) types.TimeString {
	t.Helper()
	ts, err := types.NewTimeStringFromString(s)
	require.NoError(t, err)
	return ts
}

func makeProvider(t *testing.T, id int64) *domain.Provider {
	t.Helper()
	return &domain.Provider{
		ID:     id,
		Name:   "Salon Éclat",
		Domain: "coiffure",
		Availability: domain.WeekSchedule{
			Monday: domain.DaySchedule{
				Active: true,
				Open:   mustTime(t, "09:00"),
				Close:  mustTime(t, "17:00"),
			},
		},
		Services: []domain.Service{
			{ID: 1, ProviderID: id, Name: "Coupe femme", DurationMinutes: 45, Price: 45},
		},
	}
}

func makeReviews(n int, rating int) []domain.Review {
	reviews := make([]domain.Review, 0, n)
	for i := 0; i < n; i++ {
		reviews = append(reviews, domain.Review{
			ID:         int64(i + 1),
			ProviderID: 1,
			AuthorID:   int64(100 + i),
			Rating:     rating,
			Comment:    "Très satisfaite",
		})
	}
	return reviews
}

func newTestService(repo *stubProviderRepo) *Service {
	return NewService(repo, stubTxManager{}, nopLogger{})
}

// --- GetProfile ---

func TestGetProfile(t *testing.T) {
	repo := &stubProviderRepo{
		providers: map[int64]*domain.Provider{1: makeProvider(t, 1)},
		reviews:   map[int64][]domain.Review{1: makeReviews(4, 5)},
	}
	svc := newTestService(repo)

	resp, err := svc.GetProfile(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, "Salon Éclat", resp.Name)
	assert.Equal(t, 4, resp.ReviewStats.Count)
	assert.InDelta(t, 5.0, resp.ReviewStats.Average, 0.001)
	assert.True(t, resp.EligibleForVerification)
	assert.True(t, resp.Availability.Monday.Active)
	assert.Equal(t, "09:00", resp.Availability.Monday.Open)
	assert.False(t, resp.Availability.Tuesday.Active)
	require.Len(t, resp.Services, 1)
}

func TestGetProfile_NotFound(t *testing.T) {
	svc := newTestService(&stubProviderRepo{providers: map[int64]*domain.Provider{}})

	_, err := svc.GetProfile(context.Background(), 42)
	assert.ErrorIs(t, err, ErrProviderNotFound)
}

func TestGetProfile_EligibilityRecomputed(t *testing.T) {
	repo := &stubProviderRepo{
		providers: map[int64]*domain.Provider{1: makeProvider(t, 1)},
		reviews:   map[int64][]domain.Review{1: makeReviews(2, 5)},
	}
	svc := newTestService(repo)

	resp, err := svc.GetProfile(context.Background(), 1)
	require.NoError(t, err)
	assert.False(t, resp.EligibleForVerification)

	// Третий отзыв переводит мастера через порог без перезапуска
	repo.reviews[1] = makeReviews(3, 5)

	resp, err = svc.GetProfile(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, resp.EligibleForVerification)
}

// --- UpdateAvailability ---

func TestUpdateAvailability(t *testing.T) {
	repo := &stubProviderRepo{providers: map[int64]*domain.Provider{1: makeProvider(t, 1)}}
	svc := newTestService(repo)

	req := &models.UpdateAvailabilityRequest{
		ActorID: 1,
		Week: models.WeekScheduleDTO{
			Monday:  models.DayScheduleDTO{Active: true, Open: "10:00", Close: "18:00"},
			Tuesday: models.DayScheduleDTO{Active: false},
		},
	}

	require.NoError(t, svc.UpdateAvailability(context.Background(), 1, req))

	require.NotNil(t, repo.replacedWeek)
	assert.True(t, repo.replacedWeek.Monday.Active)
	assert.Equal(t, "10:00", repo.replacedWeek.Monday.Open.String())
	assert.False(t, repo.replacedWeek.Tuesday.Active)
}

func TestUpdateAvailability_Validation(t *testing.T) {
	repo := &stubProviderRepo{providers: map[int64]*domain.Provider{1: makeProvider(t, 1)}}
	svc := newTestService(repo)

	t.Run("actor mismatch", func(t *testing.T) {
		err := svc.UpdateAvailability(context.Background(), 1, &models.UpdateAvailabilityRequest{ActorID: 2})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("open after close", func(t *testing.T) {
		err := svc.UpdateAvailability(context.Background(), 1, &models.UpdateAvailabilityRequest{
			ActorID: 1,
			Week: models.WeekScheduleDTO{
				Monday: models.DayScheduleDTO{Active: true, Open: "18:00", Close: "09:00"},
			},
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.Nil(t, repo.replacedWeek)
	})

	t.Run("open equals close", func(t *testing.T) {
		err := svc.UpdateAvailability(context.Background(), 1, &models.UpdateAvailabilityRequest{
			ActorID: 1,
			Week: models.WeekScheduleDTO{
				Monday: models.DayScheduleDTO{Active: true, Open: "09:00", Close: "09:00"},
			},
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("malformed time", func(t *testing.T) {
		err := svc.UpdateAvailability(context.Background(), 1, &models.UpdateAvailabilityRequest{
			ActorID: 1,
			Week: models.WeekScheduleDTO{
				Monday: models.DayScheduleDTO{Active: true, Open: "9am", Close: "17:00"},
			},
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

// --- services ---

func TestAddService(t *testing.T) {
	repo := &stubProviderRepo{providers: map[int64]*domain.Provider{1: makeProvider(t, 1)}}
	svc := newTestService(repo)

	resp, err := svc.AddService(context.Background(), 1, &models.AddServiceRequest{
		ActorID:         1,
		Name:            "Brushing",
		DurationMinutes: 30,
		Price:           25,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(100), resp.ID)
	assert.Equal(t, "Brushing", repo.addedService.Name)
}

func TestAddService_Validation(t *testing.T) {
	repo := &stubProviderRepo{providers: map[int64]*domain.Provider{1: makeProvider(t, 1)}}
	svc := newTestService(repo)

	tests := []struct {
		name string
		req  models.AddServiceRequest
		want error
	}{
		{"actor mismatch", models.AddServiceRequest{ActorID: 2, Name: "X", DurationMinutes: 30}, ErrAccessDenied},
		{"empty name", models.AddServiceRequest{ActorID: 1, Name: "  ", DurationMinutes: 30}, ErrInvalidInput},
		{"duration too short", models.AddServiceRequest{ActorID: 1, Name: "X", DurationMinutes: 2}, ErrInvalidInput},
		{"duration too long", models.AddServiceRequest{ActorID: 1, Name: "X", DurationMinutes: 500}, ErrInvalidInput},
		{"negative price", models.AddServiceRequest{ActorID: 1, Name: "X", DurationMinutes: 30, Price: -1}, ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.AddService(context.Background(), 1, &tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestRemoveService(t *testing.T) {
	repo := &stubProviderRepo{providers: map[int64]*domain.Provider{1: makeProvider(t, 1)}}
	svc := newTestService(repo)

	require.NoError(t, svc.RemoveService(context.Background(), 1, 5, 1))
	assert.Equal(t, int64(5), repo.removedServiceID)

	repo.removeServiceErr = providerRepo.ErrServiceNotFound
	err := svc.RemoveService(context.Background(), 1, 6, 1)
	assert.ErrorIs(t, err, ErrServiceNotFound)

	err = svc.RemoveService(context.Background(), 1, 5, 2)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

// --- reviews ---

func TestAddReview(t *testing.T) {
	repo := &stubProviderRepo{providers: map[int64]*domain.Provider{1: makeProvider(t, 1)}}
	svc := newTestService(repo)

	resp, err := svc.AddReview(context.Background(), 1, &models.AddReviewRequest{
		AuthorID: 10,
		Rating:   5,
		Comment:  "  Très professionnelle  ",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(200), resp.ID)
	assert.Equal(t, "Très professionnelle", repo.addedReview.Comment)
}

func TestAddReview_Validation(t *testing.T) {
	repo := &stubProviderRepo{providers: map[int64]*domain.Provider{1: makeProvider(t, 1)}}
	svc := newTestService(repo)

	tests := []struct {
		name string
		req  models.AddReviewRequest
	}{
		{"self review", models.AddReviewRequest{AuthorID: 1, Rating: 5, Comment: "ok"}},
		{"rating too low", models.AddReviewRequest{AuthorID: 10, Rating: 0, Comment: "ok"}},
		{"rating too high", models.AddReviewRequest{AuthorID: 10, Rating: 6, Comment: "ok"}},
		{"empty comment", models.AddReviewRequest{AuthorID: 10, Rating: 4, Comment: "   "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.AddReview(context.Background(), 1, &tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Nil(t, repo.addedReview)
		})
	}
}

// --- verification ---

func TestRequestVerification(t *testing.T) {
	t.Run("eligible provider", func(t *testing.T) {
		repo := &stubProviderRepo{
			providers: map[int64]*domain.Provider{1: makeProvider(t, 1)},
			reviews:   map[int64][]domain.Review{1: makeReviews(3, 4)},
		}
		svc := newTestService(repo)

		require.NoError(t, svc.RequestVerification(context.Background(), 1, 1))
		assert.True(t, repo.verificationRequested)
	})

	t.Run("below threshold", func(t *testing.T) {
		repo := &stubProviderRepo{
			providers: map[int64]*domain.Provider{1: makeProvider(t, 1)},
			reviews:   map[int64][]domain.Review{1: makeReviews(5, 3)},
		}
		svc := newTestService(repo)

		err := svc.RequestVerification(context.Background(), 1, 1)
		assert.ErrorIs(t, err, ErrNotEligible)
		assert.False(t, repo.verificationRequested)
	})

	t.Run("too few reviews", func(t *testing.T) {
		repo := &stubProviderRepo{
			providers: map[int64]*domain.Provider{1: makeProvider(t, 1)},
			reviews:   map[int64][]domain.Review{1: makeReviews(2, 5)},
		}
		svc := newTestService(repo)

		err := svc.RequestVerification(context.Background(), 1, 1)
		assert.ErrorIs(t, err, ErrNotEligible)
	})

	t.Run("already verified", func(t *testing.T) {
		provider := makeProvider(t, 1)
		provider.Verified = true
		repo := &stubProviderRepo{
			providers: map[int64]*domain.Provider{1: provider},
			reviews:   map[int64][]domain.Review{1: makeReviews(3, 5)},
		}
		svc := newTestService(repo)

		err := svc.RequestVerification(context.Background(), 1, 1)
		assert.ErrorIs(t, err, ErrAlreadyVerified)
	})

	t.Run("already requested", func(t *testing.T) {
		provider := makeProvider(t, 1)
		now := time.Now()
		provider.VerificationRequestedAt = &now
		repo := &stubProviderRepo{
			providers: map[int64]*domain.Provider{1: provider},
			reviews:   map[int64][]domain.Review{1: makeReviews(3, 5)},
		}
		svc := newTestService(repo)

		err := svc.RequestVerification(context.Background(), 1, 1)
		assert.ErrorIs(t, err, ErrAlreadyRequested)
	})

	t.Run("actor mismatch", func(t *testing.T) {
		repo := &stubProviderRepo{
			providers: map[int64]*domain.Provider{1: makeProvider(t, 1)},
			reviews:   map[int64][]domain.Review{1: makeReviews(3, 5)},
		}
		svc := newTestService(repo)

		err := svc.RequestVerification(context.Background(), 1, 2)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})
}
