package notify

import (
	"time"

	"github.com/google/uuid"
)

// EventType identifies what happened to an appointment.
type EventType string

const (
	EventAppointmentRequested EventType = "appointment.requested"
	EventAppointmentConfirmed EventType = "appointment.confirmed"
	EventAppointmentRefused   EventType = "appointment.refused"
	EventAppointmentCancelled EventType = "appointment.cancelled"
)

// AppointmentEvent is the message published for downstream notification
// consumers (email, in-app). The scheduling service only emits; delivery
// is someone else's concern.
type AppointmentEvent struct {
	EventID       string    `json:"event_id"`
	Type          EventType `json:"type"`
	AppointmentID int64     `json:"appointment_id"`
	ClientID      int64     `json:"client_id"`
	ProviderID    int64     `json:"provider_id"`
	Date          string    `json:"date"`       // YYYY-MM-DD
	StartTime     string    `json:"start_time"` // HH:MM
	ServiceName   string    `json:"service_name"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// NewAppointmentEvent builds an event with a fresh id and timestamp.
func NewAppointmentEvent(eventType EventType) AppointmentEvent {
	return AppointmentEvent{
		EventID:    uuid.NewString(),
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
	}
}
