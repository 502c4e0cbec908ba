package appointments

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	List(ctx context.Context, date *time.Time) ([]*domain.Appointment, error)
	UpdatePrescription(ctx context.Context, id int64, prescription *string) error
	UpdateReports(ctx context.Context, id int64, reports domain.ReportList) error
	Delete(ctx context.Context, id int64) error
}

// AppointmentWatcher интерфейс живой подписки на изменения записей
type AppointmentWatcher interface {
	WatchByDate(ctx context.Context, date time.Time) (<-chan []*domain.Appointment, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
