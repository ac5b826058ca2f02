package domain

import (
	"time"

	"github.com/glamly/BSP-SchedulingService/pkg/types"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusRefused   AppointmentStatus = "refused"
	StatusCancelled AppointmentStatus = "cancelled"
)

// allowedTransitions is the appointment state machine. Statuses only move
// forward: pending is resolved to confirmed or refused by the provider,
// a confirmed appointment can still be cancelled, and refused/cancelled
// are terminal. Same-status updates are not listed on purpose: repeating
// a transition is an error, not a no-op.
var allowedTransitions = map[AppointmentStatus][]AppointmentStatus{
	StatusPending:   {StatusConfirmed, StatusRefused},
	StatusConfirmed: {StatusCancelled},
	StatusRefused:   {},
	StatusCancelled: {},
}

// CanTransition reports whether the state machine permits moving from
// one status to another.
func CanTransition(from, to AppointmentStatus) bool {
	for _, allowed := range allowedTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// ValidStatus reports whether s is a known appointment status.
func ValidStatus(s AppointmentStatus) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusRefused, StatusCancelled:
		return true
	default:
		return false
	}
}

// Appointment represents a booking request between a client and a provider.
// Appointments are never physically deleted: refused and cancelled rows
// stay in place as history.
type Appointment struct {
	ID              int64
	ClientID        int64
	ProviderID      int64
	ServiceID       int64
	Date            time.Time // calendar date, time part is meaningless
	StartTime       types.TimeString
	DurationMinutes int
	Status          AppointmentStatus

	// Denormalized service data for history: renaming or deleting a
	// service later must not rewrite existing appointments.
	ServiceName  string
	ServicePrice float64

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// OccupiesSlot reports whether the appointment blocks its interval for
// other clients. Only confirmed appointments occupy time: a pending
// request does not take the slot until the provider accepts it, and a
// refusal or cancellation frees it.
func (a *Appointment) OccupiesSlot() bool {
	return a.Status == StatusConfirmed
}

// IsTerminal reports whether the appointment admits no further transitions.
func (a *Appointment) IsTerminal() bool {
	return len(allowedTransitions[a.Status]) == 0
}

// End returns the exclusive end of the appointment interval.
func (a *Appointment) End() (types.TimeString, error) {
	return a.StartTime.AddMinutes(a.DurationMinutes)
}

// ProviderAppointmentsFilter narrows provider appointment queries.
type ProviderAppointmentsFilter struct {
	ProviderID int64              // required
	Date       *time.Time         // single calendar date (optional)
	Status     *AppointmentStatus // optional
}
