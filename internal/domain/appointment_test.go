package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from AppointmentStatus
		to   AppointmentStatus
		want bool
	}{
		{name: "pending to confirmed", from: StatusPending, to: StatusConfirmed, want: true},
		{name: "pending to refused", from: StatusPending, to: StatusRefused, want: true},
		{name: "confirmed to cancelled", from: StatusConfirmed, to: StatusCancelled, want: true},

		// Same-status transitions are rejected, not treated as no-ops
		{name: "confirmed to confirmed", from: StatusConfirmed, to: StatusConfirmed, want: false},
		{name: "pending to pending", from: StatusPending, to: StatusPending, want: false},

		// Terminal states admit nothing
		{name: "refused to confirmed", from: StatusRefused, to: StatusConfirmed, want: false},
		{name: "refused to cancelled", from: StatusRefused, to: StatusCancelled, want: false},
		{name: "cancelled to confirmed", from: StatusCancelled, to: StatusConfirmed, want: false},
		{name: "cancelled to pending", from: StatusCancelled, to: StatusPending, want: false},

		// The machine never moves backward
		{name: "confirmed to pending", from: StatusConfirmed, to: StatusPending, want: false},
		{name: "confirmed to refused", from: StatusConfirmed, to: StatusRefused, want: false},
		{name: "pending to cancelled", from: StatusPending, to: StatusCancelled, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to))
		})
	}
}

func TestAppointment_OccupiesSlot(t *testing.T) {
	for status, want := range map[AppointmentStatus]bool{
		StatusPending:   false,
		StatusConfirmed: true,
		StatusRefused:   false,
		StatusCancelled: false,
	} {
		a := Appointment{Status: status}
		assert.Equal(t, want, a.OccupiesSlot(), "status %s", status)
	}
}

func TestAppointment_IsTerminal(t *testing.T) {
	assert.False(t, (&Appointment{Status: StatusPending}).IsTerminal())
	assert.False(t, (&Appointment{Status: StatusConfirmed}).IsTerminal())
	assert.True(t, (&Appointment{Status: StatusRefused}).IsTerminal())
	assert.True(t, (&Appointment{Status: StatusCancelled}).IsTerminal())
}

func TestValidStatus(t *testing.T) {
	assert.True(t, ValidStatus(StatusPending))
	assert.True(t, ValidStatus(StatusCancelled))
	assert.False(t, ValidStatus("en attente"))
	assert.False(t, ValidStatus(""))
}
