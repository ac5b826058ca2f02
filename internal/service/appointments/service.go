package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/glamly/BSP-SchedulingService/internal/domain"
	"github.com/glamly/BSP-SchedulingService/internal/infra/notify"
	apptRepo "github.com/glamly/BSP-SchedulingService/internal/infra/storage/appointment"
	"github.com/glamly/BSP-SchedulingService/internal/service/appointments/models"
)

// Service сервис жизненного цикла записей
type Service struct {
	apptRepo  AppointmentRepository
	txManager TransactionManager
	events    EventPublisher
	logger    Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	apptRepo AppointmentRepository,
	txManager TransactionManager,
	events EventPublisher,
	logger Logger,
) *Service {
	return &Service{
		apptRepo:  apptRepo,
		txManager: txManager,
		events:    events,
		logger:    logger,
	}
}

// GetByID получает запись по ID
// Доступ только для клиента или мастера этой записи
func (s *Service) GetByID(ctx context.Context, id int64, actorID int64) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d for actor=%d", id, actorID)

	appt, err := s.apptRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if appt.ClientID != actorID && appt.ProviderID != actorID {
		s.logger.Warn("GetByID: access denied for actor=%d to appointment id=%d", actorID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainAppointment(appt), nil
}

// GetClientAppointments получает историю записей клиента (сначала новые)
func (s *Service) GetClientAppointments(ctx context.Context, clientID int64, actorID int64) (*models.AppointmentListResponse, error) {
	if clientID != actorID {
		s.logger.Warn("GetClientAppointments: actor=%d is not client=%d", actorID, clientID)
		return nil, ErrAccessDenied
	}

	appointments, err := s.apptRepo.GetByClientID(ctx, clientID)
	if err != nil {
		s.logger.Error("GetClientAppointments: repository error for client=%d: %v", clientID, err)
		return nil, fmt.Errorf("%w: GetClientAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetClientAppointments: fetched %d appointments for client=%d", len(appointments), clientID)
	return models.FromDomainAppointmentList(appointments), nil
}

// GetProviderAppointments получает записи мастера с фильтрацией по дате и статусу
// Доступно только самому мастеру
func (s *Service) GetProviderAppointments(ctx context.Context, req *models.ProviderAppointmentsRequest) (*models.AppointmentListResponse, error) {
	if req.ProviderID != req.ActorID {
		s.logger.Warn("GetProviderAppointments: actor=%d is not provider=%d", req.ActorID, req.ProviderID)
		return nil, ErrAccessDenied
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetProviderAppointments: invalid filter for provider=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: invalid status filter", ErrInvalidInput)
	}

	appointments, err := s.apptRepo.GetByProviderWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetProviderAppointments: repository error for provider=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: GetProviderAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetProviderAppointments: fetched %d appointments for provider=%d", len(appointments), req.ProviderID)
	return models.FromDomainAppointmentList(appointments), nil
}

// SetStatus меняет статус записи (подтверждение или отказ мастером)
// Выполняется в сериализуемой транзакции: переход в confirmed заново
// читает подтвержденные записи мастера на эту дату с блокировкой и
// отклоняет подтверждение при пересечении интервалов. Из двух
// конкурентных подтверждений одного слота выигрывает ровно одно.
func (s *Service) SetStatus(ctx context.Context, appointmentID int64, req *models.SetStatusRequest) error {
	newStatus := domain.AppointmentStatus(req.Status)
	if !domain.ValidStatus(newStatus) || newStatus == domain.StatusPending {
		s.logger.Warn("SetStatus: invalid status=%q for appointment id=%d", req.Status, appointmentID)
		return ErrInvalidStatus
	}

	s.logger.Info("SetStatus: appointment id=%d -> %s by actor=%d", appointmentID, newStatus, req.ActorID)

	var updated *domain.Appointment

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Читаем запись с блокировкой строки
		appt, err := s.apptRepo.GetByID(txCtx, appointmentID)
		if err != nil {
			if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			return fmt.Errorf("%w: SetStatus - repository error: %v", ErrInternal, err)
		}

		// 2. Проверяем права актора на этот переход
		if err := checkActor(appt, req.ActorID, newStatus); err != nil {
			s.logger.Warn("SetStatus: access denied for actor=%d on appointment id=%d", req.ActorID, appointmentID)
			return err
		}

		// 3. Валидируем переход по таблице состояний
		// Повторная установка того же статуса - ошибка, а не no-op
		if !domain.CanTransition(appt.Status, newStatus) {
			s.logger.Warn("SetStatus: transition %s -> %s rejected for appointment id=%d",
				appt.Status, newStatus, appointmentID)
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, appt.Status, newStatus)
		}

		// 4. Переход в confirmed занимает интервал - проверяем, что он
		// не пересекается с другими подтвержденными записями
		if newStatus == domain.StatusConfirmed {
			if err := s.checkSlotFree(txCtx, appt); err != nil {
				return err
			}
		}

		if err := s.apptRepo.UpdateStatus(txCtx, appointmentID, newStatus); err != nil {
			return fmt.Errorf("%w: SetStatus - update status: %v", ErrInternal, err)
		}

		appt.Status = newStatus
		updated = appt
		return nil
	})

	if err != nil {
		return err
	}

	s.logger.Info("SetStatus: appointment id=%d is now %s", appointmentID, newStatus)

	// Уведомление best-effort: ошибка публикации не откатывает переход
	s.publishEvent(ctx, updated)

	return nil
}

// Cancel отменяет подтвержденную запись
// Клиент может отменить свою запись, мастер - любую свою
func (s *Service) Cancel(ctx context.Context, appointmentID int64, req *models.CancelRequest) error {
	s.logger.Info("Cancel: cancelling appointment id=%d by actor=%d", appointmentID, req.ActorID)

	if len(req.Reason) > domain.MaxCancellationReasonLength {
		return fmt.Errorf("%w: cancellation reason is too long", ErrInvalidInput)
	}

	var cancelled *domain.Appointment

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		appt, err := s.apptRepo.GetByID(txCtx, appointmentID)
		if err != nil {
			if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}

		if appt.ClientID != req.ActorID && appt.ProviderID != req.ActorID {
			s.logger.Warn("Cancel: access denied for actor=%d on appointment id=%d", req.ActorID, appointmentID)
			return ErrAccessDenied
		}

		// Отменить можно только подтвержденную запись: pending решается
		// мастером (confirm/refuse), терминальные статусы неизменяемы
		if !domain.CanTransition(appt.Status, domain.StatusCancelled) {
			s.logger.Warn("Cancel: transition %s -> %s rejected for appointment id=%d",
				appt.Status, domain.StatusCancelled, appointmentID)
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, appt.Status, domain.StatusCancelled)
		}

		if err := s.apptRepo.Cancel(txCtx, appointmentID, req.Reason); err != nil {
			return fmt.Errorf("%w: Cancel - update: %v", ErrInternal, err)
		}

		appt.Status = domain.StatusCancelled
		cancelled = appt
		return nil
	})

	if err != nil {
		return err
	}

	s.logger.Info("Cancel: appointment id=%d cancelled", appointmentID)
	s.publishEvent(ctx, cancelled)

	return nil
}

// checkSlotFree проверяет, что интервал записи не пересекается с другими
// подтвержденными записями мастера на эту дату
// Вызывается только внутри транзакции (строки блокируются FOR UPDATE)
func (s *Service) checkSlotFree(txCtx context.Context, appt *domain.Appointment) error {
	confirmedStatus := domain.StatusConfirmed
	filter := domain.ProviderAppointmentsFilter{
		ProviderID: appt.ProviderID,
		Date:       &appt.Date,
		Status:     &confirmedStatus,
	}

	confirmed, err := s.apptRepo.GetByProviderWithFilter(txCtx, filter)
	if err != nil {
		return fmt.Errorf("%w: checkSlotFree - repository error: %v", ErrInternal, err)
	}

	apptEnd, err := appt.End()
	if err != nil {
		return fmt.Errorf("%w: checkSlotFree - appointment interval: %v", ErrInternal, err)
	}

	for _, other := range confirmed {
		if other.ID == appt.ID {
			continue
		}

		otherEnd, err := other.End()
		if err != nil {
			return fmt.Errorf("%w: checkSlotFree - appointment id=%d interval: %v", ErrInternal, other.ID, err)
		}

		if domain.Overlaps(appt.StartTime, apptEnd, other.StartTime, otherEnd) {
			s.logger.Warn("checkSlotFree: appointment id=%d overlaps confirmed id=%d (%s-%s vs %s-%s)",
				appt.ID, other.ID, appt.StartTime, apptEnd, other.StartTime, otherEnd)
			return ErrSlotTaken
		}
	}

	return nil
}

// checkActor проверяет права актора на целевой статус
// confirmed/refused - только мастер, cancelled - клиент или мастер
func checkActor(appt *domain.Appointment, actorID int64, newStatus domain.AppointmentStatus) error {
	switch newStatus {
	case domain.StatusConfirmed, domain.StatusRefused:
		if appt.ProviderID != actorID {
			return ErrAccessDenied
		}
	case domain.StatusCancelled:
		if appt.ClientID != actorID && appt.ProviderID != actorID {
			return ErrAccessDenied
		}
	default:
		return ErrInvalidStatus
	}
	return nil
}

// publishEvent публикует событие смены статуса (best-effort)
func (s *Service) publishEvent(ctx context.Context, appt *domain.Appointment) {
	if appt == nil {
		return
	}

	var eventType notify.EventType
	switch appt.Status {
	case domain.StatusPending:
		eventType = notify.EventAppointmentRequested
	case domain.StatusConfirmed:
		eventType = notify.EventAppointmentConfirmed
	case domain.StatusRefused:
		eventType = notify.EventAppointmentRefused
	case domain.StatusCancelled:
		eventType = notify.EventAppointmentCancelled
	default:
		return
	}

	event := notify.NewAppointmentEvent(eventType)
	event.AppointmentID = appt.ID
	event.ClientID = appt.ClientID
	event.ProviderID = appt.ProviderID
	event.Date = appt.Date.Format(domain.DateFormat)
	event.StartTime = appt.StartTime.String()
	event.ServiceName = appt.ServiceName

	if err := s.events.Publish(ctx, event); err != nil {
		s.logger.Warn("publishEvent: failed to publish %s for appointment id=%d: %v", eventType, appt.ID, err)
	}
}
