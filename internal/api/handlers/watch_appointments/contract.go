package watch_appointments

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
)

// AppointmentsService интерфейс сервиса записей
type AppointmentsService interface {
	WatchByDate(ctx context.Context, date time.Time) (<-chan *models.AppointmentListResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...any)
	Warn(format string, v ...any)
	Error(format string, v ...any)
}
