package domain

import (
	"time"

	"github.com/glamly/BSP-SchedulingService/pkg/types"
)

// DaySchedule is the working window of a provider on one weekday.
// The window is half-open: [Open, Close).
type DaySchedule struct {
	Active bool
	Open   types.TimeString
	Close  types.TimeString
}

// WeekSchedule is a provider's recurring weekly availability.
// A weekday the provider never configured is simply inactive.
type WeekSchedule struct {
	Monday    DaySchedule
	Tuesday   DaySchedule
	Wednesday DaySchedule
	Thursday  DaySchedule
	Friday    DaySchedule
	Saturday  DaySchedule
	Sunday    DaySchedule
}

// ForDate resolves the schedule of the weekday the given date falls on.
func (w WeekSchedule) ForDate(date time.Time) DaySchedule {
	switch date.Weekday() {
	case time.Monday:
		return w.Monday
	case time.Tuesday:
		return w.Tuesday
	case time.Wednesday:
		return w.Wednesday
	case time.Thursday:
		return w.Thursday
	case time.Friday:
		return w.Friday
	case time.Saturday:
		return w.Saturday
	case time.Sunday:
		return w.Sunday
	default:
		return DaySchedule{}
	}
}

// SetDay replaces the schedule of one weekday.
func (w *WeekSchedule) SetDay(day time.Weekday, schedule DaySchedule) {
	switch day {
	case time.Monday:
		w.Monday = schedule
	case time.Tuesday:
		w.Tuesday = schedule
	case time.Wednesday:
		w.Wednesday = schedule
	case time.Thursday:
		w.Thursday = schedule
	case time.Friday:
		w.Friday = schedule
	case time.Saturday:
		w.Saturday = schedule
	case time.Sunday:
		w.Sunday = schedule
	}
}

// Service is one offering of a provider (e.g. a 45-minute haircut).
type Service struct {
	ID              int64
	ProviderID      int64
	Name            string
	DurationMinutes int
	Price           float64
	CreatedAt       time.Time
}

// Provider is a beauty professional offering services to clients.
type Provider struct {
	ID          int64
	Name        string
	Domain      string // e.g. "coiffure", "onglerie"
	Description string

	Verified                bool
	VerificationRequestedAt *time.Time

	Availability WeekSchedule
	Services     []Service

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ServiceByID finds a service in the provider's offering list.
func (p *Provider) ServiceByID(serviceID int64) (Service, bool) {
	for _, svc := range p.Services {
		if svc.ID == serviceID {
			return svc, true
		}
	}
	return Service{}, false
}
