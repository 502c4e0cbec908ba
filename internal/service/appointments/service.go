package appointments

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
)

// Service сервис для работы с подтверждёнными записями.
// Операции изменяют одну запись по ID и не затрагивают инвариант
// уникальности слота - он принадлежит исключительно бронированию.
type Service struct {
	appointmentRepo AppointmentRepository
	watcher         AppointmentWatcher
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	watcher AppointmentWatcher,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		watcher:         watcher,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// GetByID получает запись по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d", id)

	appt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainAppointment(appt), nil
}

// List получает записи с опциональной фильтрацией по дате
func (s *Service) List(ctx context.Context, req *models.ListAppointmentsRequest) (*models.AppointmentListResponse, error) {
	if req.Date != nil {
		s.logger.Info("List: fetching appointments for date=%s", req.Date.Format(domain.DateFormat))
	} else {
		s.logger.Info("List: fetching all appointments")
	}

	appointments, err := s.appointmentRepo.List(ctx, req.Date)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d appointments", len(appointments))
	return models.FromDomainAppointmentList(appointments), nil
}

// UpdatePrescription обновляет назначение врача.
// Пустая строка очищает назначение.
func (s *Service) UpdatePrescription(ctx context.Context, id int64, req *models.UpdatePrescriptionRequest) error {
	s.logger.Info("UpdatePrescription: appointment id=%d", id)

	if len(req.Prescription) > domain.MaxPrescriptionLength {
		s.logger.Warn("UpdatePrescription: prescription too long for appointment id=%d", id)
		return fmt.Errorf("%w: prescription is too long", ErrInvalidInput)
	}

	var prescription *string
	if trimmed := strings.TrimSpace(req.Prescription); trimmed != "" {
		prescription = &trimmed
	}

	if err := s.appointmentRepo.UpdatePrescription(ctx, id, prescription); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("UpdatePrescription: appointment id=%d not found", id)
			return ErrAppointmentNotFound
		}
		s.logger.Error("UpdatePrescription: repository error for appointment id=%d: %v", id, err)
		return fmt.Errorf("%w: UpdatePrescription - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdatePrescription: updated appointment id=%d", id)
	return nil
}

// AttachReport прикрепляет ссылку на загруженный отчёт к записи.
// Сам файл хранится во внешнем хранилище, здесь только имя и URL.
func (s *Service) AttachReport(ctx context.Context, id int64, req *models.AttachReportRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("AttachReport: appointment id=%d, report=%s", id, req.Name)

	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.URL) == "" {
		s.logger.Warn("AttachReport: missing report name or url for appointment id=%d", id)
		return nil, fmt.Errorf("%w: report name and url are required", ErrInvalidInput)
	}
	if len(req.Name) > domain.MaxReportNameLength {
		s.logger.Warn("AttachReport: report name too long for appointment id=%d", id)
		return nil, fmt.Errorf("%w: report name is too long", ErrInvalidInput)
	}

	appt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("AttachReport: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("AttachReport: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: AttachReport - repository error: %v", ErrInternal, err)
	}

	appt.Reports = append(appt.Reports, domain.Report{
		Name:       req.Name,
		URL:        req.URL,
		UploadedAt: s.timeProvider.Now().UTC(),
	})

	if err := s.appointmentRepo.UpdateReports(ctx, id, appt.Reports); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("AttachReport: failed to save reports for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: AttachReport - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("AttachReport: attached report to appointment id=%d, total=%d", id, len(appt.Reports))
	return models.FromDomainAppointment(appt), nil
}

// RemoveReport удаляет отчёт записи по индексу
func (s *Service) RemoveReport(ctx context.Context, id int64, index int) error {
	s.logger.Info("RemoveReport: appointment id=%d, index=%d", id, index)

	appt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("RemoveReport: appointment id=%d not found", id)
			return ErrAppointmentNotFound
		}
		s.logger.Error("RemoveReport: repository error for appointment id=%d: %v", id, err)
		return fmt.Errorf("%w: RemoveReport - repository error: %v", ErrInternal, err)
	}

	if index < 0 || index >= len(appt.Reports) {
		s.logger.Warn("RemoveReport: report index=%d out of range for appointment id=%d", index, id)
		return ErrReportNotFound
	}

	appt.Reports = append(appt.Reports[:index], appt.Reports[index+1:]...)

	if err := s.appointmentRepo.UpdateReports(ctx, id, appt.Reports); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			return ErrAppointmentNotFound
		}
		s.logger.Error("RemoveReport: failed to save reports for appointment id=%d: %v", id, err)
		return fmt.Errorf("%w: RemoveReport - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("RemoveReport: removed report from appointment id=%d, remaining=%d", id, len(appt.Reports))
	return nil
}

// Delete физически удаляет запись и освобождает её слот
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: appointment id=%d", id)

	if err := s.appointmentRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Delete: appointment id=%d not found", id)
			return ErrAppointmentNotFound
		}
		s.logger.Error("Delete: repository error for appointment id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: deleted appointment id=%d", id)
	return nil
}

// WatchByDate возвращает канал снапшотов записей на дату.
// Каждое изменение таблицы записей, затрагивающее дату, приводит
// к отправке свежего снапшота. Канал закрывается при отмене контекста.
func (s *Service) WatchByDate(ctx context.Context, date time.Time) (<-chan *models.AppointmentListResponse, error) {
	s.logger.Info("WatchByDate: subscribing to date=%s", date.Format(domain.DateFormat))

	snapshots, err := s.watcher.WatchByDate(ctx, date)
	if err != nil {
		s.logger.Error("WatchByDate: failed to subscribe for date=%s: %v", date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: WatchByDate - subscribe error: %v", ErrInternal, err)
	}

	out := make(chan *models.AppointmentListResponse, 1)

	go func() {
		defer close(out)
		for snapshot := range snapshots {
			select {
			case out <- models.FromDomainAppointmentList(snapshot):
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, nil
}
