package get_available_slots

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glamly/BSP-SchedulingService/internal/domain"
	"github.com/glamly/BSP-SchedulingService/pkg/types"
)

func mustTime(t *testing.T, s string) types.TimeString {
	t.Helper()
	ts, err := types.NewTimeStringFromString(s)
	require.NoError(t, err)
	return ts
}

func window(t *testing.T, open, closeAt string) domain.DaySchedule {
	t.Helper()
	return domain.DaySchedule{
		Active: true,
		Open:   mustTime(t, open),
		Close:  mustTime(t, closeAt),
	}
}

func confirmedAppt(t *testing.T, start string, duration int) *domain.Appointment {
	t.Helper()
	return &domain.Appointment{
		ID:              1,
		ProviderID:      1,
		Date:            time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		StartTime:       mustTime(t, start),
		DurationMinutes: duration,
		Status:          domain.StatusConfirmed,
	}
}

func slotStrings(slots []types.TimeString) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = s.String()
	}
	return out
}

func TestGenerateSlots_EmptyDay(t *testing.T) {
	slots, err := generateSlots(window(t, "09:00", "17:00"), 30, nil)
	require.NoError(t, err)

	// Курсор 09:00..16:30 с шагом 15, последний кандидат 16:30-17:00
	require.Len(t, slots, 31)
	assert.Equal(t, "09:00", slots[0].String())
	assert.Equal(t, "09:15", slots[1].String())
	assert.Equal(t, "16:30", slots[30].String())

	// Слоты строго по возрастанию
	for i := 1; i < len(slots); i++ {
		assert.True(t, slots[i-1].IsBefore(slots[i]))
	}
}

func TestGenerateSlots_ExcludesOverlapping(t *testing.T) {
	booked := []*domain.Appointment{confirmedAppt(t, "10:00", 30)}

	slots, err := generateSlots(window(t, "09:00", "17:00"), 30, booked)
	require.NoError(t, err)

	got := slotStrings(slots)

	// Кандидаты, пересекающие [10:00, 10:30), исключены
	assert.NotContains(t, got, "09:45")
	assert.NotContains(t, got, "10:00")
	assert.NotContains(t, got, "10:15")

	// Граничащие кандидаты остаются
	assert.Contains(t, got, "09:30")
	assert.Contains(t, got, "10:30")
}

func TestGenerateSlots_DurationFillsWindow(t *testing.T) {
	slots, err := generateSlots(window(t, "09:00", "17:00"), 480, nil)
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, "09:00", slots[0].String())
}

func TestGenerateSlots_DurationExceedsWindow(t *testing.T) {
	slots, err := generateSlots(window(t, "09:00", "17:00"), 481, nil)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGenerateSlots_InactiveDay(t *testing.T) {
	slots, err := generateSlots(domain.DaySchedule{Active: false}, 30, nil)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGenerateSlots_DurationNotMultipleOfStep(t *testing.T) {
	// Длительность 50 не кратна шагу 15: к сетке привязан только курсор
	slots, err := generateSlots(window(t, "09:00", "10:30"), 50, nil)
	require.NoError(t, err)

	// 09:00-09:50, 09:15-10:05, 09:30-10:20; 09:45-10:35 уже не влезает
	assert.Equal(t, []string{"09:00", "09:15", "09:30"}, slotStrings(slots))
}

func TestGenerateSlots_PendingDoesNotBlock(t *testing.T) {
	pending := confirmedAppt(t, "10:00", 30)
	pending.Status = domain.StatusPending
	cancelled := confirmedAppt(t, "11:00", 30)
	cancelled.Status = domain.StatusCancelled

	slots, err := generateSlots(window(t, "09:00", "17:00"), 30, []*domain.Appointment{pending, cancelled})
	require.NoError(t, err)

	got := slotStrings(slots)
	assert.Contains(t, got, "10:00")
	assert.Contains(t, got, "11:00")
	assert.Len(t, slots, 31)
}

func TestGenerateSlots_FullyBookedDay(t *testing.T) {
	booked := []*domain.Appointment{confirmedAppt(t, "09:00", 480)}

	slots, err := generateSlots(window(t, "09:00", "17:00"), 30, booked)
	require.NoError(t, err)
	assert.Empty(t, slots)
}
