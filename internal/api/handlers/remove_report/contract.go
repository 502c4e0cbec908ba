package remove_report

import "context"

// AppointmentsService интерфейс сервиса записей
type AppointmentsService interface {
	RemoveReport(ctx context.Context, id int64, index int) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...any)
	Warn(format string, v ...any)
	Error(format string, v ...any)
}
