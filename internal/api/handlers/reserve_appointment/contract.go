package reserve_appointment

import (
	"context"

	reserveAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/reserve_appointment"
)

// ReserveAppointmentUseCase интерфейс use case бронирования слота
type ReserveAppointmentUseCase interface {
	Execute(ctx context.Context, req *reserveAppointment.Request) (*reserveAppointment.Response, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...any)
	Warn(format string, v ...any)
	Error(format string, v ...any)
}
