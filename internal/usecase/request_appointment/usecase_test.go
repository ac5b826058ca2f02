package request_appointment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glamly/BSP-SchedulingService/internal/domain"
	"github.com/glamly/BSP-SchedulingService/internal/infra/notify"
	providerRepo "github.com/glamly/BSP-SchedulingService/internal/infra/storage/provider"
	"github.com/glamly/BSP-SchedulingService/pkg/types"
)

type stubApptRepo struct {
	confirmed []*domain.Appointment
	created   *domain.Appointment
	createErr error
}

func (s *stubApptRepo) Create(_ context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	created := *appt
	created.ID = 77
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	s.created = &created
	return &created, nil
}

func (s *stubApptRepo) GetByProviderWithFilter(_ context.Context, _ domain.ProviderAppointmentsFilter) ([]*domain.Appointment, error) {
	return s.confirmed, nil
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

type stubTxManager struct {
	calls int
}

func (s *stubTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	s.calls++
	return fn(ctx)
}

type stubPublisher struct {
	events []notify.AppointmentEvent
	err    error
}

func (s *stubPublisher) Publish(_ context.Context, event notify.AppointmentEvent) error {
	if s.err != nil {
		return s.err
	}
	s.events = append(s.events, event)
	return nil
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

func mustTime(t *testing.T, s string) types.TimeString {
	t.Helper()
	ts, err := types.NewTimeStringFromString(s)
	require.NoError(t, err)
	return ts
}

var (
	// Понедельник
	testDate = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	testNow  = time.Date(2026, 3, 1, 14, 0, 0, 0, time.UTC)
)

func testProvider(t *testing.T) *domain.Provider {
	t.Helper()
	return &domain.Provider{
		ID: 1,
		Availability: domain.WeekSchedule{
			Monday: domain.DaySchedule{
				Active: true,
				Open:   mustTime(t, "09:00"),
				Close:  mustTime(t, "17:00"),
			},
		},
		Services: []domain.Service{
			{ID: 5, ProviderID: 1, Name: "Coupe femme", DurationMinutes: 30, Price: 45},
		},
	}
}

func newTestUseCase(apptRepo *stubApptRepo, provider *domain.Provider) (*UseCase, *stubTxManager, *stubPublisher) {
	tx := &stubTxManager{}
	pub := &stubPublisher{}
	uc := NewUseCase(apptRepo, &stubProviderRepo{provider: provider}, tx, pub, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: testNow}
	return uc, tx, pub
}

func validRequest(t *testing.T) *Request {
	t.Helper()
	return &Request{
		ClientID:   10,
		ProviderID: 1,
		ServiceID:  5,
		Date:       testDate,
		StartTime:  mustTime(t, "10:00"),
	}
}

func TestExecute(t *testing.T) {
	apptRepo := &stubApptRepo{}
	uc, tx, pub := newTestUseCase(apptRepo, testProvider(t))

	resp, err := uc.Execute(context.Background(), validRequest(t))
	require.NoError(t, err)

	assert.Equal(t, int64(77), resp.ID)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, 30, resp.DurationMinutes)
	assert.Equal(t, "Coupe femme", resp.ServiceName)
	assert.InDelta(t, 45.0, resp.ServicePrice, 0.001)
	assert.Equal(t, 1, tx.calls)

	require.NotNil(t, apptRepo.created)
	assert.Equal(t, domain.StatusPending, apptRepo.created.Status)

	require.Len(t, pub.events, 1)
	assert.Equal(t, notify.EventAppointmentRequested, pub.events[0].Type)
	assert.Equal(t, int64(77), pub.events[0].AppointmentID)
}

func TestExecute_SlotNotOffered(t *testing.T) {
	tests := []struct {
		name      string
		startTime string
		confirmed []*domain.Appointment
	}{
		{"before opening", "08:45", nil},
		{"does not fit before close", "16:45", nil},
		{"off the grid", "10:05", nil},
		{"overlaps confirmed", "10:15", []*domain.Appointment{{
			ID:              2,
			ProviderID:      1,
			StartTime:       mustTimeNoT("10:30"),
			DurationMinutes: 30,
			Status:          domain.StatusConfirmed,
		}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apptRepo := &stubApptRepo{confirmed: tt.confirmed}
			uc, _, _ := newTestUseCase(apptRepo, testProvider(t))

			req := validRequest(t)
			req.StartTime = mustTime(t, tt.startTime)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrSlotNotAvailable)
			assert.Nil(t, apptRepo.created)
		})
	}
}

func TestExecute_TouchingConfirmedAllowed(t *testing.T) {
	apptRepo := &stubApptRepo{confirmed: []*domain.Appointment{{
		ID:              2,
		ProviderID:      1,
		StartTime:       mustTimeNoT("10:30"),
		DurationMinutes: 30,
		Status:          domain.StatusConfirmed,
	}}}
	uc, _, _ := newTestUseCase(apptRepo, testProvider(t))

	// 10:00-10:30 граничит с 10:30-11:00
	resp, err := uc.Execute(context.Background(), validRequest(t))
	require.NoError(t, err)
	assert.Equal(t, int64(77), resp.ID)
}

func TestExecute_ProviderClosed(t *testing.T) {
	uc, _, _ := newTestUseCase(&stubApptRepo{}, testProvider(t))

	req := validRequest(t)
	req.Date = testDate.AddDate(0, 0, 1) // вторник не настроен

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrProviderClosed)
}

func TestExecute_PastDate(t *testing.T) {
	uc, _, _ := newTestUseCase(&stubApptRepo{}, testProvider(t))

	req := validRequest(t)
	req.Date = testNow.AddDate(0, 0, -1)

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_ProviderNotFound(t *testing.T) {
	uc, _, _ := newTestUseCase(&stubApptRepo{}, nil)

	_, err := uc.Execute(context.Background(), validRequest(t))
	assert.ErrorIs(t, err, ErrProviderNotFound)
}

func TestExecute_ServiceNotFound(t *testing.T) {
	uc, _, _ := newTestUseCase(&stubApptRepo{}, testProvider(t))

	req := validRequest(t)
	req.ServiceID = 42

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_PublishFailureDoesNotFail(t *testing.T) {
	apptRepo := &stubApptRepo{}
	uc, _, pub := newTestUseCase(apptRepo, testProvider(t))
	pub.err = errors.New("broker down")

	resp, err := uc.Execute(context.Background(), validRequest(t))
	require.NoError(t, err)
	assert.Equal(t, int64(77), resp.ID)
}

func TestExecute_CreateFailure(t *testing.T) {
	apptRepo := &stubApptRepo{createErr: errors.New("connection refused")}
	uc, _, pub := newTestUseCase(apptRepo, testProvider(t))

	_, err := uc.Execute(context.Background(), validRequest(t))
	assert.ErrorIs(t, err, ErrInternal)
	assert.Empty(t, pub.events)
}

// mustTimeNoT для табличных литералов, где *testing.T недоступен
func mustTimeNoT(s string) types.TimeString {
	ts, err := types.NewTimeStringFromString(s)
	if err != nil {
		panic(err)
	}
	return ts
}
