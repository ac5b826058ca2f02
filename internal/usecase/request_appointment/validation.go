package request_appointment

import (
	"fmt"
	"time"

	"github.com/glamly/BSP-SchedulingService/internal/domain"
	"github.com/glamly/BSP-SchedulingService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ClientID <= 0 {
		return fmt.Errorf("%w: clientID must be positive", ErrInvalidInput)
	}

	if req.ProviderID <= 0 {
		return fmt.Errorf("%w: providerID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid start time: %v", ErrInvalidInput, err)
	}

	return nil
}

// isDateInPast проверяет, что дата раньше сегодняшнего дня
// Сегодняшний день доступен целиком, отсечки по текущему времени нет
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}

// validateSlotOffered проверяет, что запрошенное время входит в список
// слотов, который генератор выдал бы прямо сейчас: начало лежит на сетке
// от начала окна, интервал помещается в окно и не пересекается ни с одной
// подтвержденной записью
func validateSlotOffered(
	window domain.DaySchedule,
	start types.TimeString,
	durationMinutes int,
	occupied []*domain.Appointment,
) error {
	if start.IsBefore(window.Open) {
		return ErrSlotNotAvailable
	}

	startMin, err := start.Minutes()
	if err != nil {
		return fmt.Errorf("%w: start time: %v", ErrInternal, err)
	}
	openMin, err := window.Open.Minutes()
	if err != nil {
		return fmt.Errorf("%w: window open time: %v", ErrInternal, err)
	}
	if (startMin-openMin)%domain.SlotStepMinutes != 0 {
		return ErrSlotNotAvailable
	}

	end, err := start.AddMinutes(durationMinutes)
	if err != nil {
		return ErrSlotNotAvailable
	}
	if end.IsAfter(window.Close) {
		return ErrSlotNotAvailable
	}

	for _, appt := range occupied {
		if !appt.OccupiesSlot() {
			continue
		}

		apptEnd, err := appt.End()
		if err != nil {
			return fmt.Errorf("%w: appointment id=%d interval: %v", ErrInternal, appt.ID, err)
		}

		if domain.Overlaps(start, end, appt.StartTime, apptEnd) {
			return ErrSlotNotAvailable
		}
	}

	return nil
}
