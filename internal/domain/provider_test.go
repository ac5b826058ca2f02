package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWeekSchedule_ForDate(t *testing.T) {
	var week WeekSchedule
	week.Monday = DaySchedule{Active: true, Open: "09:00", Close: "18:00"}
	week.Saturday = DaySchedule{Active: true, Open: "10:00", Close: "14:00"}

	// 2026-03-02 is a Monday
	monday := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	day := week.ForDate(monday)
	assert.True(t, day.Active)
	assert.Equal(t, "09:00", day.Open.String())

	saturday := monday.AddDate(0, 0, 5)
	day = week.ForDate(saturday)
	assert.True(t, day.Active)
	assert.Equal(t, "10:00", day.Open.String())

	// Unconfigured weekday resolves to an inactive zero schedule
	sunday := monday.AddDate(0, 0, 6)
	day = week.ForDate(sunday)
	assert.False(t, day.Active)
}

func TestWeekSchedule_SetDay(t *testing.T) {
	var week WeekSchedule
	week.SetDay(time.Wednesday, DaySchedule{Active: true, Open: "08:00", Close: "12:00"})

	wednesday := time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)
	assert.True(t, week.ForDate(wednesday).Active)
	assert.Equal(t, "08:00", week.Wednesday.Open.String())
}

func TestProvider_ServiceByID(t *testing.T) {
	p := Provider{Services: []Service{
		{ID: 1, Name: "Coupe femme", DurationMinutes: 45, Price: 40},
		{ID: 2, Name: "Brushing", DurationMinutes: 30, Price: 25},
	}}

	svc, ok := p.ServiceByID(2)
	assert.True(t, ok)
	assert.Equal(t, "Brushing", svc.Name)

	_, ok = p.ServiceByID(99)
	assert.False(t, ok)
}
