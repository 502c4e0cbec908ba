package delete_appointment

import "context"

// AppointmentsService интерфейс сервиса записей
type AppointmentsService interface {
	Delete(ctx context.Context, id int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...any)
	Warn(format string, v ...any)
	Error(format string, v ...any)
}
