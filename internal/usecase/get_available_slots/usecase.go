package get_available_slots

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// UseCase use case для получения доступных слотов на дату
type UseCase struct {
	schedule          domain.ClinicSchedule
	pastSlotInclusive bool
	appointmentRepo   AppointmentRepository
	timeProvider      TimeProvider
	logger            Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	schedule domain.ClinicSchedule,
	pastSlotInclusive bool,
	appointmentRepo AppointmentRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		schedule:          schedule,
		pastSlotInclusive: pastSlotInclusive,
		appointmentRepo:   appointmentRepo,
		timeProvider:      &RealTimeProvider{},
		logger:            logger,
	}
}

// Execute выполняет use case получения доступных слотов.
// Порядок фильтрации: каталог слотов -> минус занятые -> минус прошедшие
// (только если дата - сегодня). Пустой результат - валидный ответ, не ошибка.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: date=%s", req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if req.Date.IsZero() {
		uc.logger.Warn("GetAvailableSlots: date is required")
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Для прошедших дат слотов нет
	if isDateInPast(req.Date, now) {
		uc.logger.Info("GetAvailableSlots: date %s is in the past", req.Date.Format(domain.DateFormat))
		return uc.buildResponse(req.Date, []types.TimeString{}), nil
	}

	// 4. Генерируем каталог слотов дня
	candidates := uc.schedule.GenerateSlots()

	// 5. Получаем записи на эту дату и убираем занятые слоты
	appointments, err := uc.appointmentRepo.GetByDate(ctx, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	available := filterBookedSlots(candidates, appointments)

	// 6. Если дата - сегодня, убираем прошедшие слоты
	if isSameDay(req.Date, now) {
		available = filterPastSlots(available, types.NewTimeString(now), uc.pastSlotInclusive)
	}

	uc.logger.Info("GetAvailableSlots: %d of %d slots available for date=%s",
		len(available), len(candidates), req.Date.Format(domain.DateFormat))

	return uc.buildResponse(req.Date, available), nil
}

func (uc *UseCase) buildResponse(date time.Time, slots []types.TimeString) *Response {
	return &Response{
		Date:                date,
		SlotDurationMinutes: uc.schedule.SlotDurationMinutes,
		Slots:               slots,
		Groups:              groupByWindow(uc.schedule, slots),
	}
}
