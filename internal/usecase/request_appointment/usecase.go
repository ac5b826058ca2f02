package request_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/glamly/BSP-SchedulingService/internal/domain"
	"github.com/glamly/BSP-SchedulingService/internal/infra/notify"
	providerRepo "github.com/glamly/BSP-SchedulingService/internal/infra/storage/provider"
)

// UseCase use case для создания записи к мастеру
type UseCase struct {
	apptRepo     AppointmentRepository
	providerRepo ProviderRepository
	txManager    TransactionManager
	events       EventPublisher
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	apptRepo AppointmentRepository,
	providerRepo ProviderRepository,
	txManager TransactionManager,
	events EventPublisher,
	logger Logger,
) *UseCase {
	return &UseCase{
		apptRepo:     apptRepo,
		providerRepo: providerRepo,
		txManager:    txManager,
		events:       events,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания записи
// Запись создается в статусе pending и сама по себе слот не занимает,
// но запрошенное время обязано входить в текущий список свободных слотов.
// Проверка и вставка выполняются в сериализуемой транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RequestAppointment: client=%d, provider=%d, service=%d, date=%s, time=%s",
		req.ClientID, req.ProviderID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RequestAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Даты в прошлом не принимаются
	if isDateInPast(req.Date, now) {
		uc.logger.Warn("RequestAppointment: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, ErrInvalidDate
	}

	// 4. Получаем мастера с расписанием и услугами
	provider, err := uc.providerRepo.GetByID(ctx, req.ProviderID)
	if err != nil {
		if errors.Is(err, providerRepo.ErrProviderNotFound) {
			uc.logger.Warn("RequestAppointment: provider id=%d not found", req.ProviderID)
			return nil, ErrProviderNotFound
		}
		uc.logger.Error("RequestAppointment: failed to get provider id=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: failed to get provider: %v", ErrInternal, err)
	}

	// 5. Ищем услугу у мастера
	service, ok := provider.ServiceByID(req.ServiceID)
	if !ok {
		uc.logger.Warn("RequestAppointment: service id=%d not found for provider id=%d",
			req.ServiceID, req.ProviderID)
		return nil, ErrServiceNotFound
	}

	// 6. Разрешаем рабочее окно на день недели запрошенной даты
	window := provider.Availability.ForDate(req.Date)
	if !window.Active {
		uc.logger.Warn("RequestAppointment: provider id=%d is not working on %s",
			req.ProviderID, req.Date.Format(domain.DateFormat))
		return nil, ErrProviderClosed
	}

	var result *domain.Appointment

	// 7. Проверка слота и вставка в одной сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 7.1. Читаем подтвержденные записи мастера на эту дату с блокировкой
		confirmedStatus := domain.StatusConfirmed
		filter := domain.ProviderAppointmentsFilter{
			ProviderID: req.ProviderID,
			Date:       &req.Date,
			Status:     &confirmedStatus,
		}

		occupied, err := uc.apptRepo.GetByProviderWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("RequestAppointment: failed to get appointments: %v", err)
			return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
		}

		// 7.2. Запрошенное время обязано быть слотом, который генератор
		// выдал бы в этот момент
		if err := validateSlotOffered(window, req.StartTime, service.DurationMinutes, occupied); err != nil {
			uc.logger.Warn("RequestAppointment: slot %s is not offered: %v", req.StartTime, err)
			return err
		}

		// 7.3. Создаем запись в статусе pending с денормализацией услуги
		appt := &domain.Appointment{
			ClientID:        req.ClientID,
			ProviderID:      req.ProviderID,
			ServiceID:       req.ServiceID,
			Date:            req.Date,
			StartTime:       req.StartTime,
			DurationMinutes: service.DurationMinutes,
			Status:          domain.StatusPending,
			ServiceName:     service.Name,
			ServicePrice:    service.Price,
		}

		created, err := uc.apptRepo.Create(txCtx, appt)
		if err != nil {
			uc.logger.Error("RequestAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("RequestAppointment: successfully created appointment id=%d", result.ID)

	// 8. Уведомление best-effort: ошибка публикации не влияет на результат
	uc.publishRequested(ctx, result)

	return &Response{
		ID:              result.ID,
		ClientID:        result.ClientID,
		ProviderID:      result.ProviderID,
		ServiceID:       result.ServiceID,
		Date:            result.Date,
		StartTime:       result.StartTime,
		DurationMinutes: result.DurationMinutes,
		Status:          string(result.Status),
		ServiceName:     result.ServiceName,
		ServicePrice:    result.ServicePrice,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}

func (uc *UseCase) publishRequested(ctx context.Context, appt *domain.Appointment) {
	event := notify.NewAppointmentEvent(notify.EventAppointmentRequested)
	event.AppointmentID = appt.ID
	event.ClientID = appt.ClientID
	event.ProviderID = appt.ProviderID
	event.Date = appt.Date.Format(domain.DateFormat)
	event.StartTime = appt.StartTime.String()
	event.ServiceName = appt.ServiceName

	if err := uc.events.Publish(ctx, event); err != nil {
		uc.logger.Warn("RequestAppointment: failed to publish event for appointment id=%d: %v", appt.ID, err)
	}
}
