package update_appointment_status

import (
	"context"

	"github.com/glamly/BSP-SchedulingService/internal/service/appointments/models"
)

type AppointmentService interface {
	SetStatus(ctx context.Context, appointmentID int64, req *models.SetStatusRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
