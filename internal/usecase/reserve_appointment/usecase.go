package reserve_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
)

// UseCase use case бронирования слота.
//
// Состояния одной попытки: валидация -> предварительная проверка доступности ->
// условная вставка -> {подтверждено | слот занят | ошибка хранилища}.
// Предварительная проверка - только для быстрой обратной связи; гарантию
// уникальности даёт исключительно условная вставка в хранилище.
type UseCase struct {
	schedule          domain.ClinicSchedule
	treatments        domain.TreatmentCatalog
	pastSlotInclusive bool
	appointmentRepo   AppointmentRepository
	timeProvider      TimeProvider
	logger            Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	schedule domain.ClinicSchedule,
	treatments domain.TreatmentCatalog,
	pastSlotInclusive bool,
	appointmentRepo AppointmentRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		schedule:          schedule,
		treatments:        treatments,
		pastSlotInclusive: pastSlotInclusive,
		appointmentRepo:   appointmentRepo,
		timeProvider:      &RealTimeProvider{},
		logger:            logger,
	}
}

// Execute выполняет use case бронирования слота
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ReserveAppointment: date=%s, time=%s, treatment=%s, patientType=%s",
		req.Date.Format(domain.DateFormat), req.StartTime, req.Treatment, req.PatientType)

	// 1. Валидация входных данных (без обращений к хранилищу)
	if err := uc.validateRequest(req); err != nil {
		uc.logger.Warn("ReserveAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Дата не в прошлом, слот на сегодня ещё не прошёл
	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("ReserveAppointment: date validation failed: %v", err)
		return nil, err
	}
	if err := validateSlotNotPast(req.Date, req.StartTime, now, uc.pastSlotInclusive); err != nil {
		uc.logger.Warn("ReserveAppointment: slot time validation failed: %v", err)
		return nil, err
	}

	// 4. Предварительная проверка доступности по текущим записям.
	// Между этим чтением и вставкой другой клиент может занять слот,
	// поэтому проверка не даёт гарантий - она лишь ускоряет отказ.
	appointments, err := uc.appointmentRepo.GetByDate(ctx, req.Date)
	if err != nil {
		uc.logger.Error("ReserveAppointment: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	for _, appt := range appointments {
		if appt.StartTime == req.StartTime {
			uc.logger.Warn("ReserveAppointment: slot %s %s already taken (advisory check)",
				req.Date.Format(domain.DateFormat), req.StartTime)
			return nil, ErrSlotTaken
		}
	}

	// 5. Условная вставка - точка, где решается гонка.
	// Из N конкурирующих попыток на один слот ровно одна получает запись,
	// остальные - ErrSlotTaken от хранилища.
	appt := &domain.Appointment{
		Date:        req.Date,
		StartTime:   req.StartTime,
		PatientName: req.PatientName,
		Phone:       req.Phone,
		Email:       req.Email,
		Treatment:   req.Treatment,
		PatientType: req.PatientType,
		Reports:     domain.ReportList{},
	}

	created, err := uc.appointmentRepo.CreateIfFree(ctx, appt)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrSlotTaken) {
			uc.logger.Warn("ReserveAppointment: slot %s %s taken by concurrent writer",
				req.Date.Format(domain.DateFormat), req.StartTime)
			return nil, ErrSlotTaken
		}
		uc.logger.Error("ReserveAppointment: failed to create appointment: %v", err)
		return nil, fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
	}

	uc.logger.Info("ReserveAppointment: confirmed appointment id=%d for slot %s",
		created.ID, created.SlotKey())

	return fromDomain(created), nil
}
