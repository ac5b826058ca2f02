package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/glamly/BSP-SchedulingService/internal/domain"
	providerRepo "github.com/glamly/BSP-SchedulingService/internal/infra/storage/provider"
	"github.com/glamly/BSP-SchedulingService/pkg/types"
)

// UseCase use case для получения доступных слотов для записи
type UseCase struct {
	apptRepo     AppointmentRepository
	providerRepo ProviderRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	apptRepo AppointmentRepository,
	providerRepo ProviderRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		apptRepo:     apptRepo,
		providerRepo: providerRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения доступных слотов
// Занятые интервалы читаются заново при каждом вызове: другие клиенты
// могли подтвердить записи между запросами
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: user=%d, provider=%d, service=%d, date=%s",
		req.UserID, req.ProviderID, req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Даты в прошлом не предлагаются
	if isDateInPast(req.Date, now) {
		uc.logger.Warn("GetAvailableSlots: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, ErrInvalidDate
	}

	// 4. Получаем мастера с расписанием и услугами
	provider, err := uc.providerRepo.GetByID(ctx, req.ProviderID)
	if err != nil {
		if errors.Is(err, providerRepo.ErrProviderNotFound) {
			uc.logger.Warn("GetAvailableSlots: provider id=%d not found", req.ProviderID)
			return nil, ErrProviderNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get provider id=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: failed to get provider: %v", ErrInternal, err)
	}

	// 5. Ищем услугу у мастера
	service, ok := provider.ServiceByID(req.ServiceID)
	if !ok {
		uc.logger.Warn("GetAvailableSlots: service id=%d not found for provider id=%d",
			req.ServiceID, req.ProviderID)
		return nil, ErrServiceNotFound
	}

	// 6. Разрешаем рабочее окно на день недели запрошенной даты
	window := provider.Availability.ForDate(req.Date)
	if !window.Active {
		uc.logger.Info("GetAvailableSlots: provider id=%d is not working on %s",
			req.ProviderID, req.Date.Format(domain.DateFormat))
		return uc.emptyResponse(req, service.DurationMinutes), nil
	}

	// 7. Читаем подтвержденные записи мастера на эту дату
	// Только confirmed занимает интервал, pending не блокирует слоты
	confirmedStatus := domain.StatusConfirmed
	filter := domain.ProviderAppointmentsFilter{
		ProviderID: req.ProviderID,
		Date:       &req.Date,
		Status:     &confirmedStatus,
	}

	occupied, err := uc.apptRepo.GetByProviderWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	// 8. Генерируем свободные слоты
	slots, err := generateSlots(window, service.DurationMinutes, occupied)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
	}

	uc.logger.Info("GetAvailableSlots: generated %d slots for provider=%d, service=%d, date=%s",
		len(slots), req.ProviderID, req.ServiceID, req.Date.Format(domain.DateFormat))

	return &Response{
		Date:            req.Date,
		ProviderID:      req.ProviderID,
		ServiceID:       req.ServiceID,
		DurationMinutes: service.DurationMinutes,
		Slots:           slots,
	}, nil
}

func (uc *UseCase) emptyResponse(req *Request, durationMinutes int) *Response {
	return &Response{
		Date:            req.Date,
		ProviderID:      req.ProviderID,
		ServiceID:       req.ServiceID,
		DurationMinutes: durationMinutes,
		Slots:           []types.TimeString{},
	}
}
