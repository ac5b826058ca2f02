package request_appointment

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/glamly/BSP-SchedulingService/internal/domain"
	"github.com/glamly/BSP-SchedulingService/pkg/types"
)

func TestValidateSlotOffered_GridFromWindowOpen(t *testing.T) {
	// Сетка считается от начала окна, а не от полуночи
	window := domain.DaySchedule{
		Active: true,
		Open:   types.TimeString("09:10"),
		Close:  types.TimeString("17:10"),
	}

	tests := []struct {
		name    string
		start   string
		wantErr error
	}{
		{"on grid at open", "09:10", nil},
		{"on grid mid window", "10:25", nil},
		{"round time off this grid", "10:00", ErrSlotNotAvailable},
		{"one minute off", "09:11", ErrSlotNotAvailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateSlotOffered(window, types.TimeString(tt.start), 30, nil)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestValidateSlotOffered_MalformedWindow(t *testing.T) {
	// Испорченное время открытия из хранилища не должно пропускать слот
	window := domain.DaySchedule{
		Active: true,
		Open:   types.TimeString("9:00"),
		Close:  types.TimeString("17:00"),
	}

	err := validateSlotOffered(window, types.TimeString("10:00"), 30, nil)
	assert.ErrorIs(t, err, ErrInternal)
}
