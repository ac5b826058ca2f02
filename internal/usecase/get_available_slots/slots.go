package get_available_slots

import (
	"github.com/glamly/BSP-SchedulingService/internal/domain"
	"github.com/glamly/BSP-SchedulingService/pkg/types"
)

// generateSlots генерирует свободные времена начала для услуги длительностью
// durationMinutes в рабочем окне [window.Open, window.Close)
//
// Курсор стартует с начала окна и двигается с фиксированным шагом
// domain.SlotStepMinutes. Кандидат [cursor, cursor+duration) выдается, если
// он помещается в окно и не пересекается ни с одной подтвержденной записью.
// Длительность не обязана быть кратной шагу: к сетке привязан только курсор.
//
// Примеры для окна 09:00-17:00 и записи 10:00-10:30:
// - Кандидат 09:45-10:15 → пересечение, слот не выдается
// - Кандидат 09:30-10:00 → граничат, слот выдается
// - Кандидат 10:30-11:00 → граничат, слот выдается
func generateSlots(
	window domain.DaySchedule,
	durationMinutes int,
	occupied []*domain.Appointment,
) ([]types.TimeString, error) {
	slots := make([]types.TimeString, 0)

	if !window.Active {
		return slots, nil
	}

	cursor := window.Open

	for cursor.IsBefore(window.Close) {
		candidateEnd, err := cursor.AddMinutes(durationMinutes)
		if err != nil {
			// Кандидат вылез за полночь, дальше будет только хуже
			break
		}
		if candidateEnd.IsAfter(window.Close) {
			break
		}

		free, err := isFree(cursor, candidateEnd, occupied)
		if err != nil {
			return nil, err
		}
		if free {
			slots = append(slots, cursor)
		}

		cursor, err = cursor.AddMinutes(domain.SlotStepMinutes)
		if err != nil {
			break
		}
	}

	return slots, nil
}

// isFree проверяет, что кандидат не пересекается ни с одним занятым интервалом
// Интервал занимают только записи в статусе confirmed
func isFree(candidateStart, candidateEnd types.TimeString, occupied []*domain.Appointment) (bool, error) {
	for _, appt := range occupied {
		if !appt.OccupiesSlot() {
			continue
		}

		apptEnd, err := appt.End()
		if err != nil {
			return false, err
		}

		if domain.Overlaps(candidateStart, candidateEnd, appt.StartTime, apptEnd) {
			return false, nil
		}
	}
	return true, nil
}
