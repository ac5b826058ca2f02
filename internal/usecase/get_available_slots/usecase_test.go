package get_available_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glamly/BSP-SchedulingService/internal/domain"
	providerRepo "github.com/glamly/BSP-SchedulingService/internal/infra/storage/provider"
)

type stubApptRepo struct {
	appointments []*domain.Appointment
	err          error
	calls        int
}

func (s *stubApptRepo) GetByProviderWithFilter(_ context.Context, _ domain.ProviderAppointmentsFilter) ([]*domain.Appointment, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.appointments, nil
}

type stubProviderRepo struct {
	provider *domain.Provider
}

func (s *stubProviderRepo) GetByID(_ context.Context, id int64) (*domain.Provider, error) {
	if s.provider == nil || s.provider.ID != id {
		return nil, providerRepo.ErrProviderNotFound
	}
	return s.provider, nil
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testProvider(t *testing.T) *domain.Provider {
	t.Helper()
	return &domain.Provider{
		ID: 1,
		Availability: domain.WeekSchedule{
			Monday: window(t, "09:00", "17:00"),
		},
		Services: []domain.Service{
			{ID: 5, ProviderID: 1, Name: "Coupe femme", DurationMinutes: 30, Price: 45},
		},
	}
}

func newTestUseCase(apptRepo *stubApptRepo, provider *domain.Provider, now time.Time) *UseCase {
	uc := NewUseCase(apptRepo, &stubProviderRepo{provider: provider}, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: now}
	return uc
}

var (
	// Понедельник
	testDate = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	testNow  = time.Date(2026, 3, 1, 14, 0, 0, 0, time.UTC)
)

func TestExecute(t *testing.T) {
	apptRepo := &stubApptRepo{appointments: []*domain.Appointment{confirmedAppt(t, "10:00", 30)}}
	uc := newTestUseCase(apptRepo, testProvider(t), testNow)

	resp, err := uc.Execute(context.Background(), &Request{
		UserID:     10,
		ProviderID: 1,
		ServiceID:  5,
		Date:       testDate,
	})
	require.NoError(t, err)

	assert.Equal(t, 30, resp.DurationMinutes)
	got := slotStrings(resp.Slots)
	assert.NotContains(t, got, "10:00")
	assert.Contains(t, got, "10:30")
}

func TestExecute_CurrentDayOfferedInFull(t *testing.T) {
	// Запрос на сегодня во второй половине дня: утренние слоты не отсекаются
	apptRepo := &stubApptRepo{}
	uc := newTestUseCase(apptRepo, testProvider(t), testDate.Add(14*time.Hour))

	resp, err := uc.Execute(context.Background(), &Request{
		UserID:     10,
		ProviderID: 1,
		ServiceID:  5,
		Date:       testDate,
	})
	require.NoError(t, err)
	assert.Equal(t, "09:00", resp.Slots[0].String())
	assert.Len(t, resp.Slots, 31)
}

func TestExecute_PastDate(t *testing.T) {
	uc := newTestUseCase(&stubApptRepo{}, testProvider(t), testNow)

	_, err := uc.Execute(context.Background(), &Request{
		UserID:     10,
		ProviderID: 1,
		ServiceID:  5,
		Date:       testNow.AddDate(0, 0, -1),
	})
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_InactiveDay(t *testing.T) {
	apptRepo := &stubApptRepo{}
	uc := newTestUseCase(apptRepo, testProvider(t), testNow)

	// Вторник не настроен и потому выходной
	resp, err := uc.Execute(context.Background(), &Request{
		UserID:     10,
		ProviderID: 1,
		ServiceID:  5,
		Date:       testDate.AddDate(0, 0, 1),
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
	assert.Zero(t, apptRepo.calls)
}

func TestExecute_ProviderNotFound(t *testing.T) {
	uc := newTestUseCase(&stubApptRepo{}, nil, testNow)

	_, err := uc.Execute(context.Background(), &Request{
		UserID:     10,
		ProviderID: 1,
		ServiceID:  5,
		Date:       testDate,
	})
	assert.ErrorIs(t, err, ErrProviderNotFound)
}

func TestExecute_ServiceNotFound(t *testing.T) {
	uc := newTestUseCase(&stubApptRepo{}, testProvider(t), testNow)

	_, err := uc.Execute(context.Background(), &Request{
		UserID:     10,
		ProviderID: 1,
		ServiceID:  42,
		Date:       testDate,
	})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_UpstreamFailureYieldsNoSlots(t *testing.T) {
	apptRepo := &stubApptRepo{err: errors.New("connection refused")}
	uc := newTestUseCase(apptRepo, testProvider(t), testNow)

	resp, err := uc.Execute(context.Background(), &Request{
		UserID:     10,
		ProviderID: 1,
		ServiceID:  5,
		Date:       testDate,
	})
	assert.ErrorIs(t, err, ErrInternal)
	assert.Nil(t, resp)
}

func TestExecute_Validation(t *testing.T) {
	uc := newTestUseCase(&stubApptRepo{}, testProvider(t), testNow)

	tests := []struct {
		name string
		req  Request
	}{
		{"zero provider", Request{ServiceID: 5, Date: testDate}},
		{"zero service", Request{ProviderID: 1, Date: testDate}},
		{"zero date", Request{ProviderID: 1, ServiceID: 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), &tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_FreshOccupiedSetEachCall(t *testing.T) {
	apptRepo := &stubApptRepo{}
	uc := newTestUseCase(apptRepo, testProvider(t), testNow)

	req := &Request{UserID: 10, ProviderID: 1, ServiceID: 5, Date: testDate}

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Len(t, resp.Slots, 31)

	// Между вызовами другой клиент подтвердил запись
	apptRepo.appointments = []*domain.Appointment{confirmedAppt(t, "09:00", 30)}

	resp, err = uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.NotContains(t, slotStrings(resp.Slots), "09:00")
	assert.Equal(t, 2, apptRepo.calls)
}
